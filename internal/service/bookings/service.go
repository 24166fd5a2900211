package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	settings     SettingsProvider
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	settings SettingsProvider,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		settings:     settings,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetStaffBookings получает бронирования сотрудника на календарный день
// По умолчанию возвращает только занимающие слот бронирования;
// IncludeInactive добавляет отменённые, завершённые и неявки
func (s *Service) GetStaffBookings(ctx context.Context, req *models.GetStaffBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetStaffBookings: staff=%d, date=%s, includeInactive=%t",
		req.StaffID, req.Date.Format(domain.DateFormat), req.IncludeInactive)

	if req.StaffID <= 0 {
		return nil, fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	settings, err := s.settings.GetOrCreate(ctx)
	if err != nil {
		s.logger.Error("GetStaffBookings: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	from, to := scheduling.DayBounds(req.Date, settings.Location())
	bookings, err := s.bookingRepo.ListByStaffInRange(ctx, req.StaffID, from, to, req.IncludeInactive)
	if err != nil {
		s.logger.Error("GetStaffBookings: repository error for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: GetStaffBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStaffBookings: fetched %d bookings for staff=%d", len(bookings), req.StaffID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus переводит подтвержденное бронирование в completed или no_show
// Остальные переходы выполняются профильными операциями (подтверждение, отмена)
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, status string) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking=%d, status=%s", bookingID, status)

	target, err := models.ToDomainBookingStatus(status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", status, bookingID)
		return nil, ErrInvalidStatus
	}
	if target != domain.StatusCompleted && target != domain.StatusNoShow {
		s.logger.Warn("UpdateStatus: status=%s is not reachable via this operation", status)
		return nil, ErrInvalidTransition
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// completed и no_show достижимы только из confirmed
	if booking.Status != domain.StatusConfirmed {
		s.logger.Warn("UpdateStatus: booking id=%d is %s, cannot move to %s", bookingID, booking.Status, target)
		return nil, ErrInvalidTransition
	}

	now := s.timeProvider.Now()
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, target, now); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrInvalidTransition
		}
		s.logger.Error("UpdateStatus: failed to update booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.publisher.StatusChanged(ctx, bookingID, string(target))
	s.logger.Info("UpdateStatus: booking id=%d moved to %s", bookingID, target)

	return s.GetByID(ctx, bookingID)
}

// HandleOrderPlaced обрабатывает событие размещения заказа из сервиса корзин
//
// Подтверждает held бронирование, для которого была создана корзина.
// Идемпотентно: повторная доставка события с тем же orderID не меняет
// уже подтвержденное бронирование
func (s *Service) HandleOrderPlaced(ctx context.Context, req *models.OrderPlacedRequest) (*models.BookingResponse, error) {
	s.logger.Info("HandleOrderPlaced: booking=%d, order=%s, mode=%s, paid=%d",
		req.BookingID, req.OrderID, req.PaymentMode, req.AmountPaid)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: booking_id must be positive", ErrInvalidInput)
	}
	if req.OrderID == "" {
		return nil, fmt.Errorf("%w: order_id is required", ErrInvalidInput)
	}
	mode, ok := domain.ValidPaymentMode(req.PaymentMode)
	if !ok || mode == domain.PaymentModePayInStore {
		return nil, fmt.Errorf("%w: unexpected payment mode %q", ErrInvalidInput, req.PaymentMode)
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("HandleOrderPlaced: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("HandleOrderPlaced: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: HandleOrderPlaced - repository error: %v", ErrInternal, err)
	}

	// Повторная доставка уже обработанного события
	if booking.Status == domain.StatusConfirmed && booking.OrderID != nil && *booking.OrderID == req.OrderID {
		s.logger.Info("HandleOrderPlaced: booking id=%d already confirmed by order=%s", booking.ID, req.OrderID)
		return models.FromDomainBooking(booking), nil
	}

	if booking.Status != domain.StatusHeld {
		s.logger.Warn("HandleOrderPlaced: booking id=%d is %s, cannot confirm", booking.ID, booking.Status)
		return nil, ErrInvalidTransition
	}

	if booking.PaymentMode == nil || *booking.PaymentMode != mode {
		s.logger.Warn("HandleOrderPlaced: payment mode mismatch for booking id=%d", booking.ID)
		return nil, ErrPaymentModeMismatch
	}

	now := s.timeProvider.Now()
	if booking.HoldExpired(now) {
		// Оплата прошла, слот еще не отдан другому - подтверждаем
		s.logger.Warn("HandleOrderPlaced: hold for booking id=%d expired, confirming anyway", booking.ID)
	}

	if err := s.bookingRepo.ConfirmWithOrder(ctx, booking.ID, req.OrderID, req.AmountPaid, now); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("HandleOrderPlaced: booking id=%d is no longer held", booking.ID)
			return nil, ErrInvalidTransition
		}
		s.logger.Error("HandleOrderPlaced: failed to confirm booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: HandleOrderPlaced - repository error: %v", ErrInternal, err)
	}

	s.publisher.StatusChanged(ctx, booking.ID, string(domain.StatusConfirmed))
	s.logger.Info("HandleOrderPlaced: booking id=%d confirmed by order=%s", booking.ID, req.OrderID)

	return s.GetByID(ctx, booking.ID)
}
