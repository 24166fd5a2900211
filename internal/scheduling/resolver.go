package scheduling

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ResolveRule выбирает единственное применимое правило доступности на дату
//
// Приоритет, от высшего к низшему:
//  1. blocked с совпадающей датой - весь день недоступен
//  2. exception с совпадающей датой - перекрывает еженедельное расписание
//  3. recurring с совпадающим днем недели
//
// Первое совпадение выигрывает, правила низшего приоритета игнорируются.
// Возвращает nil, если ни одно правило не применимо - у сотрудника
// нет расписания на этот день
func ResolveRule(rules []*domain.AvailabilityRule, date time.Time, loc *time.Location) *domain.AvailabilityRule {
	for _, rule := range rules {
		if rule.Type == domain.RuleBlocked && matchesDate(rule, date, loc) {
			return rule
		}
	}

	for _, rule := range rules {
		if rule.Type == domain.RuleException && matchesDate(rule, date, loc) {
			return rule
		}
	}

	dow := DayOfWeek(date.In(loc))
	for _, rule := range rules {
		if rule.Type == domain.RuleRecurring && rule.DayOfWeek != nil && *rule.DayOfWeek == dow {
			return rule
		}
	}

	return nil
}

// matchesDate сравнивает дату правила с днем date в указанной таймзоне
// SpecificDate - чистая календарная дата (полночь в таймзоне хранения),
// пересчет ее момента в loc сдвинул бы день при отрицательном смещении
func matchesDate(rule *domain.AvailabilityRule, date time.Time, loc *time.Location) bool {
	if rule.SpecificDate == nil {
		return false
	}
	y1, m1, d1 := rule.SpecificDate.Date()
	y2, m2, d2 := date.In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
