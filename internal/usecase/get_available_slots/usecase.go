package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	staffRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	bookingRepo  BookingRepository
	staffRepo    StaffRepository
	ruleRepo     RuleRepository
	catalogRepo  CatalogRepository
	settings     SettingsProvider
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	staffRepo StaffRepository,
	ruleRepo RuleRepository,
	catalogRepo CatalogRepository,
	settings SettingsProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		staffRepo:    staffRepo,
		ruleRepo:     ruleRepo,
		catalogRepo:  catalogRepo,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и настройки
	now := uc.timeProvider.Now()

	settings, err := uc.settings.GetOrCreate(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	loc := settings.Location()

	// 3. Дата запроса - календарный день в таймзоне настроек:
	// привязываем к местной полуночи, чтобы не уехать на сутки
	// при отрицательном смещении от UTC
	day := scheduling.LocalDate(req.Date, loc)

	// 4. Дата в прошлом не обслуживается
	if scheduling.DateInPast(day, now, loc) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	// 5. Получаем услугу
	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 6. Определяем список сотрудников
	staffList, err := uc.resolveStaff(ctx, req.StaffID)
	if err != nil {
		return nil, err
	}

	// 7. Для каждого сотрудника вычисляем свободные слоты на дату
	slots := make([]Slot, 0)
	for _, member := range staffList {
		staffSlots, err := uc.slotsForStaff(ctx, member, service, day, now, loc)
		if err != nil {
			return nil, err
		}
		slots = append(slots, staffSlots...)
	}

	// 8. Сортируем по времени начала, затем по имени сотрудника
	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].StartAt.Equal(slots[j].StartAt) {
			return slots[i].StartAt.Before(slots[j].StartAt)
		}
		return slots[i].StaffName < slots[j].StaffName
	})

	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%d, date=%s",
		len(slots), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}

// resolveStaff возвращает сотрудников, по которым строится расписание:
// конкретного активного сотрудника из запроса либо всех активных
func (uc *UseCase) resolveStaff(ctx context.Context, staffID *int64) ([]*domain.Staff, error) {
	if staffID != nil {
		member, err := uc.staffRepo.GetByID(ctx, *staffID)
		if err != nil {
			if errors.Is(err, staffRepo.ErrStaffNotFound) {
				uc.logger.Warn("GetAvailableSlots: staff id=%d not found", *staffID)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get staff id=%d: %v", *staffID, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
		if !member.Active {
			uc.logger.Warn("GetAvailableSlots: staff id=%d is inactive", *staffID)
			return nil, ErrStaffInactive
		}
		return []*domain.Staff{member}, nil
	}

	staffList, err := uc.staffRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list active staff: %v", err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}
	return staffList, nil
}
