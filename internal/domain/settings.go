package domain

import "time"

// BookingSettings глобальные настройки движка бронирования
// Единственная запись, лениво создается с дефолтами при первом чтении
type BookingSettings struct {
	ID                         int64
	AllowGuestBookings         bool
	DefaultHoldDurationMinutes int
	CancellationWindowHours    int
	Timezone                   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultBookingSettings возвращает настройки по умолчанию
func DefaultBookingSettings() *BookingSettings {
	return &BookingSettings{
		AllowGuestBookings:         DefaultAllowGuestBookings,
		DefaultHoldDurationMinutes: DefaultHoldDurationMinutes,
		CancellationWindowHours:    DefaultCancellationWindowHours,
		Timezone:                   DefaultTimezone,
	}
}

// Location возвращает IANA-локацию настроек
// При некорректном значении возвращает UTC
func (s *BookingSettings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// HoldDuration возвращает длительность удержания слота
func (s *BookingSettings) HoldDuration() time.Duration {
	return time.Duration(s.DefaultHoldDurationMinutes) * time.Minute
}

// CancellationWindow возвращает окно отмены
func (s *BookingSettings) CancellationWindow() time.Duration {
	return time.Duration(s.CancellationWindowHours) * time.Hour
}
