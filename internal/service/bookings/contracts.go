package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByStaffInRange(ctx context.Context, staffID int64, from, to time.Time, includeInactive bool) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, now time.Time) error
	ConfirmWithOrder(ctx context.Context, id int64, orderID string, amountPaid int64, now time.Time) error
}

// SettingsProvider интерфейс доступа к глобальным настройкам бронирования
type SettingsProvider interface {
	GetOrCreate(ctx context.Context) (*domain.BookingSettings, error)
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	StatusChanged(ctx context.Context, bookingID int64, to string)
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
