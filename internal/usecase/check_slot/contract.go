package check_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListActiveByStaffInRange получает активные бронирования сотрудника,
	// пересекающиеся с интервалом [from, to)
	ListActiveByStaffInRange(ctx context.Context, staffID int64, from, to, now time.Time) ([]*domain.Booking, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
}

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	ListApplicable(ctx context.Context, staffID int64, dayOfWeek int, date time.Time) ([]*domain.AvailabilityRule, error)
}

// SettingsProvider интерфейс доступа к глобальным настройкам бронирования
type SettingsProvider interface {
	GetOrCreate(ctx context.Context) (*domain.BookingSettings, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
