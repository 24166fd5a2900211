package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
)

// UseCase use case отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	settings     SettingsProvider
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settings SettingsProvider,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settings:     settings,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, admin=%t", req.BookingID, req.IsAdmin)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем бронирование
	b, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 4. Терминальные статусы отмене не подлежат
	if !b.CanBeCancelled() {
		uc.logger.Warn("CancelBooking: booking id=%d is %s, cannot cancel", b.ID, b.Status)
		return nil, ErrAlreadyFinalized
	}

	// 5. Проверяем окно отмены; администратору окно не мешает
	if !req.IsAdmin {
		settings, err := uc.settings.GetOrCreate(ctx)
		if err != nil {
			uc.logger.Error("CancelBooking: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}

		deadline := b.StartAt.Add(-settings.CancellationWindow())
		if now.After(deadline) {
			uc.logger.Warn("CancelBooking: booking id=%d starts at %s, within %dh cancellation window",
				b.ID, b.StartAt, settings.CancellationWindowHours)
			return nil, ErrWithinCancellationWindow
		}
	}

	// 6. Отменяем
	if err := uc.bookingRepo.Cancel(ctx, b.ID, req.Reason, now); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			// Статус сменился между чтением и обновлением
			uc.logger.Warn("CancelBooking: booking id=%d is no longer cancellable", b.ID)
			return nil, ErrAlreadyFinalized
		}
		uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", b.ID, err)
		return nil, fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
	}

	// 7. Публикуем событие: для оплаченных бронирований оно запускает возврат
	uc.publisher.BookingCancelled(ctx, b.ID, b.OrderID)
	uc.logger.Info("CancelBooking: booking id=%d cancelled", b.ID)

	return &Response{
		BookingID:   b.ID,
		Status:      string(domain.StatusCancelled),
		Reason:      req.Reason,
		CancelledAt: now,
	}, nil
}
