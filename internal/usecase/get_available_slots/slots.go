package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

// slotsForStaff вычисляет свободные слоты сотрудника на дату
//
// Шаги:
//  1. Разрешаем правило доступности на дату (blocked > exception > recurring)
//  2. Генерируем кандидатов с шагом сетки от начала рабочего окна
//  3. Отбрасываем кандидатов, начавшихся в прошлом, вылезающих за окно
//     или пересекающихся с активными бронированиями
func (uc *UseCase) slotsForStaff(
	ctx context.Context,
	member *domain.Staff,
	service *domain.Service,
	date time.Time,
	now time.Time,
	loc *time.Location,
) ([]Slot, error) {
	rules, err := uc.ruleRepo.ListApplicable(ctx, member.ID, scheduling.DayOfWeek(date.In(loc)), date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list rules for staff id=%d: %v", member.ID, err)
		return nil, fmt.Errorf("%w: failed to list availability rules: %v", ErrInternal, err)
	}

	rule := scheduling.ResolveRule(rules, date, loc)
	if rule == nil || rule.Blocks() {
		return nil, nil
	}

	starts := scheduling.GenerateSlotStarts(rule.StartTime, rule.EndTime, date, domain.SlotStepMinutes, loc)
	if len(starts) == 0 {
		return nil, nil
	}

	totalDuration := time.Duration(service.TotalDurationMinutes()) * time.Minute

	dayStart, dayEnd := scheduling.DayBounds(date, loc)
	bookings, err := uc.bookingRepo.ListActiveByStaffInRange(ctx, member.ID, dayStart, dayEnd.Add(totalDuration), now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list bookings for staff id=%d: %v", member.ID, err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	slots := make([]Slot, 0, len(starts))
	for _, start := range starts {
		end := start.Add(totalDuration)

		if !start.After(now) {
			continue
		}
		if !scheduling.WindowContains(rule.StartTime, rule.EndTime, date, loc, start, end) {
			continue
		}
		if overlapsAny(bookings, start, end) {
			continue
		}

		slots = append(slots, Slot{
			StaffID:   member.ID,
			StaffName: member.Name,
			StartAt:   start,
			EndAt:     end,
		})
	}

	return slots, nil
}

// overlapsAny проверяет пересечение кандидата с активными бронированиями
func overlapsAny(bookings []*domain.Booking, start, end time.Time) bool {
	for _, b := range bookings {
		if scheduling.Overlaps(start, end, b.StartAt, b.EndAt) {
			return true
		}
	}
	return false
}
