package scheduling

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// DayOfWeek возвращает день недели с понедельником = 0 и воскресеньем = 6
// time.Weekday считает с воскресенья = 0, поэтому нужен сдвиг
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// IsOnBoundary проверяет, что момент лежит на сетке слотов:
// количество минут с начала суток кратно step, секунды нулевые
func IsOnBoundary(t time.Time, stepMinutes int) bool {
	if stepMinutes <= 0 {
		return false
	}
	if t.Second() != 0 || t.Nanosecond() != 0 {
		return false
	}
	minutes := t.Hour()*60 + t.Minute()
	return minutes%stepMinutes == 0
}

// SameCalendarDay проверяет, что два момента приходятся на один
// календарный день в указанной таймзоне
func SameCalendarDay(a, b time.Time, loc *time.Location) bool {
	y1, m1, d1 := a.In(loc).Date()
	y2, m2, d2 := b.In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// LocalDate заново привязывает календарную дату к полуночи в указанной
// таймзоне. Дата берется из значения как записана, без пересчета момента:
// "2025-10-14 UTC" остается 14-м числом и в таймзоне западнее UTC
func LocalDate(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DateInPast проверяет, что календарная дата раньше сегодняшнего дня
// в указанной таймзоне. Дата сравнивается как записана, момент now
// пересчитывается в loc; сравниваются строки YYYY-MM-DD, а не моменты
func DateInPast(date, now time.Time, loc *time.Location) bool {
	return date.Format(domain.DateFormat) < now.In(loc).Format(domain.DateFormat)
}

// DayBounds возвращает границы календарного дня в указанной таймзоне
// как полуоткрытый интервал [start, end). Дата берется как записана
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
