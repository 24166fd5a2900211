package hold_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/check_slot"
)

// Код SQLSTATE обрыва сериализуемой транзакции
const pgSerializationFailure = "40001"

// UseCase use case создания удержания слота
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	settings     SettingsProvider
	slotChecker  SlotChecker
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	settings SettingsProvider,
	slotChecker SlotChecker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		settings:     settings,
		slotChecker:  slotChecker,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания удержания
// Использует сериализуемую транзакцию для предотвращения гонки данных;
// ограничение в БД остается последней линией защиты от двойного бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("HoldBooking: staff=%d, service=%d, start=%s",
		req.StaffID, req.ServiceID, req.StartAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("HoldBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и настройки
	now := uc.timeProvider.Now()

	settings, err := uc.settings.GetOrCreate(ctx)
	if err != nil {
		uc.logger.Error("HoldBooking: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 3. Гостевые бронирования могут быть запрещены настройками
	if req.CustomerID == nil && !settings.AllowGuestBookings {
		uc.logger.Warn("HoldBooking: guest booking rejected, guest bookings are disabled")
		return nil, ErrGuestBookingsDisabled
	}

	// 4. Получаем услугу
	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("HoldBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("HoldBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("HoldBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 5. Конец интервала: длительность услуги + буфер
	endAt := req.StartAt.Add(time.Duration(service.TotalDurationMinutes()) * time.Minute)

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Освобождаем просроченные удержания сотрудника:
		// exclusion constraint не видит hold_expires_at, поэтому мертвые
		// held строки должны быть переведены в cancelled до вставки
		released, err := uc.bookingRepo.ReleaseExpiredHolds(txCtx, req.StaffID, now)
		if err != nil {
			uc.logger.Error("HoldBooking: failed to release expired holds: %v", err)
			return fmt.Errorf("%w: failed to release expired holds: %v", ErrInternal, err)
		}
		if released > 0 {
			uc.logger.Info("HoldBooking: released %d expired holds for staff=%d", released, req.StaffID)
		}

		// 6.2. Проверяем доступность слота той же логикой, что и выдача слотов
		check, err := uc.slotChecker.Execute(txCtx, &check_slot.Request{
			StaffID: req.StaffID,
			StartAt: req.StartAt,
			EndAt:   endAt,
		})
		if err != nil {
			uc.logger.Error("HoldBooking: slot check failed: %v", err)
			return fmt.Errorf("%w: slot check failed: %v", ErrInternal, err)
		}
		if !check.Available {
			uc.logger.Warn("HoldBooking: slot not available: %s", check.Reason)
			return fmt.Errorf("%w: %s", ErrSlotNotAvailable, check.Reason)
		}

		// 6.3. Создаем удержание со снимком цены услуги
		holdExpiresAt := now.Add(settings.HoldDuration())
		booking := &domain.Booking{
			StaffID:       req.StaffID,
			ServiceID:     req.ServiceID,
			CustomerID:    req.CustomerID,
			StartAt:       req.StartAt,
			EndAt:         endAt,
			Status:        domain.StatusHeld,
			HoldExpiresAt: &holdExpiresAt,
			// Снимок данных услуги на момент удержания
			ServiceName:   service.Name,
			PriceAmount:   service.PriceAmount,
			CurrencyCode:  service.CurrencyCode,
			DepositAmount: service.CalculateDeposit(service.PriceAmount),
			// Контакты гостя
			GuestName:  req.GuestName,
			GuestEmail: req.GuestEmail,
			GuestPhone: req.GuestPhone,
			// Заметки
			Notes: req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("HoldBooking: slot taken concurrently, staff=%d, start=%s",
					req.StaffID, req.StartAt.Format(time.RFC3339))
				return ErrSlotConflict
			}
			uc.logger.Error("HoldBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Обрыв сериализуемой транзакции - это гонка за слот,
		// а не сбой: клиент может сразу повторить запрос
		if isSerializationFailure(err) {
			uc.logger.Warn("HoldBooking: serializable transaction aborted, staff=%d, start=%s",
				req.StaffID, req.StartAt.Format(time.RFC3339))
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	uc.logger.Info("HoldBooking: successfully created hold id=%d, expires_at=%s",
		result.ID, result.HoldExpiresAt.Format(time.RFC3339))

	// Конвертируем в response
	return &Response{
		ID:            result.ID,
		StaffID:       result.StaffID,
		ServiceID:     result.ServiceID,
		CustomerID:    result.CustomerID,
		StartAt:       result.StartAt,
		EndAt:         result.EndAt,
		Status:        string(result.Status),
		HoldExpiresAt: *result.HoldExpiresAt,
		ServiceName:   result.ServiceName,
		PriceAmount:   result.PriceAmount,
		CurrencyCode:  result.CurrencyCode,
		DepositAmount: result.DepositAmount,
		GuestName:     result.GuestName,
		GuestEmail:    result.GuestEmail,
		GuestPhone:    result.GuestPhone,
		Notes:         result.Notes,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

// isSerializationFailure проверяет, что ошибка - обрыв SERIALIZABLE
// транзакции (SQLSTATE 40001), обычно на коммите
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgSerializationFailure
}
