package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)

	// Cancel переводит held или confirmed бронирование в cancelled
	Cancel(ctx context.Context, id int64, reason *string, now time.Time) error
}

// SettingsProvider интерфейс доступа к глобальным настройкам бронирования
type SettingsProvider interface {
	GetOrCreate(ctx context.Context) (*domain.BookingSettings, error)
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	BookingCancelled(ctx context.Context, bookingID int64, orderID *string)
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
