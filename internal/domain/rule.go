package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// RuleType вариант правила доступности
type RuleType string

const (
	// RuleRecurring еженедельное окно по дню недели
	RuleRecurring RuleType = "recurring"

	// RuleException окно на конкретную дату, перекрывает еженедельное правило
	RuleException RuleType = "exception"

	// RuleBlocked полная недоступность на конкретную дату
	RuleBlocked RuleType = "blocked"
)

var (
	// ErrInvalidRule возвращается, когда поля правила не соответствуют его типу
	ErrInvalidRule = errors.New("invalid availability rule")
)

// AvailabilityRule правило доступности сотрудника
// Поля вариантов:
//   - recurring: DayOfWeek (понедельник = 0 ... воскресенье = 6) + окно [StartTime, EndTime)
//   - exception: SpecificDate + окно [StartTime, EndTime)
//   - blocked:   только SpecificDate
//
// Для пары (сотрудник, дата) применимо не более одного правила,
// приоритет: blocked > exception > recurring
type AvailabilityRule struct {
	ID      int64
	StaffID int64
	Type    RuleType

	DayOfWeek    *int       // только для recurring
	SpecificDate *time.Time // только для exception и blocked

	StartTime types.TimeString // пустое для blocked
	EndTime   types.TimeString // пустое для blocked

	// IsAvailable = false превращает окно в недоступное без блокировки всего дня
	IsAvailable bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет, что заполнены ровно те поля, которые требует тип правила
func (r *AvailabilityRule) Validate() error {
	switch r.Type {
	case RuleRecurring:
		if r.DayOfWeek == nil || *r.DayOfWeek < 0 || *r.DayOfWeek > 6 {
			return fmt.Errorf("%w: recurring rule requires day_of_week in [0..6]", ErrInvalidRule)
		}
		if r.SpecificDate != nil {
			return fmt.Errorf("%w: recurring rule must not carry specific_date", ErrInvalidRule)
		}
		return r.validateWindow()

	case RuleException:
		if r.SpecificDate == nil {
			return fmt.Errorf("%w: exception rule requires specific_date", ErrInvalidRule)
		}
		if r.DayOfWeek != nil {
			return fmt.Errorf("%w: exception rule must not carry day_of_week", ErrInvalidRule)
		}
		return r.validateWindow()

	case RuleBlocked:
		if r.SpecificDate == nil {
			return fmt.Errorf("%w: blocked rule requires specific_date", ErrInvalidRule)
		}
		if r.DayOfWeek != nil || !r.StartTime.IsZero() || !r.EndTime.IsZero() {
			return fmt.Errorf("%w: blocked rule must not carry day_of_week or time window", ErrInvalidRule)
		}
		return nil

	default:
		return fmt.Errorf("%w: unknown rule type %q", ErrInvalidRule, r.Type)
	}
}

func (r *AvailabilityRule) validateWindow() error {
	if err := r.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start_time: %v", ErrInvalidRule, err)
	}
	if err := r.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end_time: %v", ErrInvalidRule, err)
	}
	if !r.StartTime.IsBefore(r.EndTime) && r.StartTime != r.EndTime {
		return fmt.Errorf("%w: start_time must not be after end_time", ErrInvalidRule)
	}
	return nil
}

// Blocks returns true if the rule makes the whole day unavailable
func (r *AvailabilityRule) Blocks() bool {
	return r.Type == RuleBlocked || !r.IsAvailable
}
