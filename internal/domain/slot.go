package domain

import "time"

// AvailableSlot represents a time slot available for booking
// Интервал [StartAt, EndAt) включает длительность услуги и буфер
type AvailableSlot struct {
	StaffID   int64
	StaffName string
	StartAt   time.Time
	EndAt     time.Time
}

// Duration возвращает длительность слота
func (s *AvailableSlot) Duration() time.Duration {
	return s.EndAt.Sub(s.StartAt)
}
