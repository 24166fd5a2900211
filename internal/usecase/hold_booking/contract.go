package hold_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/check_slot"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// Create вставляет бронирование; при пересечении с активным
	// бронированием возвращает booking.ErrSlotTaken
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)

	// ReleaseExpiredHolds переводит просроченные held бронирования
	// сотрудника в cancelled, освобождая слоты для ограничения в БД
	ReleaseExpiredHolds(ctx context.Context, staffID int64, now time.Time) (int64, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// SettingsProvider интерфейс доступа к глобальным настройкам бронирования
type SettingsProvider interface {
	GetOrCreate(ctx context.Context) (*domain.BookingSettings, error)
}

// SlotChecker интерфейс проверки доступности слота
// Внутри транзакции чтения выполняются с блокировкой строк
type SlotChecker interface {
	Execute(ctx context.Context, req *check_slot.Request) (*check_slot.Response, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
