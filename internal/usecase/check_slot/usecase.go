package check_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	staffRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

// UseCase use case проверки доступности конкретного слота
//
// Проверка использует те же правила, что и генерация слотов: слот,
// попавший в выдачу GetAvailableSlots, проходит эту проверку, пока
// его не занял кто-то другой
type UseCase struct {
	bookingRepo  BookingRepository
	staffRepo    StaffRepository
	ruleRepo     RuleRepository
	settings     SettingsProvider
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	staffRepo StaffRepository,
	ruleRepo RuleRepository,
	settings SettingsProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		staffRepo:    staffRepo,
		ruleRepo:     ruleRepo,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет проверку доступности слота
//
// Недоступный слот - не ошибка: возвращается Response с причиной.
// Ошибки возвращаются только при некорректном запросе или сбое хранилища
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и настройки
	now := uc.timeProvider.Now()

	settings, err := uc.settings.GetOrCreate(ctx)
	if err != nil {
		uc.logger.Error("CheckSlot: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	loc := settings.Location()

	// 3. Начало в прошлом или вне сетки слотов
	if !req.StartAt.After(now) {
		return unavailable(ReasonStartInPast), nil
	}
	if !scheduling.IsOnBoundary(req.StartAt.In(loc), domain.SlotStepMinutes) {
		return unavailable(ReasonOffGrid), nil
	}

	// 4. Сотрудник существует и активен
	member, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			return unavailable(ReasonStaffNotFound), nil
		}
		uc.logger.Error("CheckSlot: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !member.Active {
		return unavailable(ReasonStaffInactive), nil
	}

	// 5. Разрешаем правило доступности на дату начала слота
	// Момент переводится в таймзону настроек до выборки, чтобы разовые
	// правила фильтровались по местному календарному дню
	rules, err := uc.ruleRepo.ListApplicable(ctx, req.StaffID, scheduling.DayOfWeek(req.StartAt.In(loc)), req.StartAt.In(loc))
	if err != nil {
		uc.logger.Error("CheckSlot: failed to list rules for staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to list availability rules: %v", ErrInternal, err)
	}

	rule := scheduling.ResolveRule(rules, req.StartAt, loc)
	if rule == nil {
		return unavailable(ReasonNoSchedule), nil
	}
	if rule.Blocks() {
		return unavailable(ReasonDayBlocked), nil
	}

	// 6. Интервал целиком внутри рабочего окна
	if !scheduling.WindowContains(rule.StartTime, rule.EndTime, req.StartAt, loc, req.StartAt, req.EndAt) {
		return unavailable(ReasonOutsideWindow), nil
	}

	// 7. Нет пересечений с активными бронированиями
	bookings, err := uc.bookingRepo.ListActiveByStaffInRange(ctx, req.StaffID, req.StartAt, req.EndAt, now)
	if err != nil {
		uc.logger.Error("CheckSlot: failed to list bookings for staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}
	for _, b := range bookings {
		if scheduling.Overlaps(req.StartAt, req.EndAt, b.StartAt, b.EndAt) {
			return unavailable(ReasonSlotOccupied), nil
		}
	}

	return &Response{Available: true}, nil
}
