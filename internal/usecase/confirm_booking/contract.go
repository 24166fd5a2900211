package confirm_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/cartservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)

	// Confirm переводит held бронирование в confirmed с указанным способом оплаты
	Confirm(ctx context.Context, id int64, mode domain.PaymentMode, now time.Time) error

	// SetPaymentMode фиксирует выбранный способ оплаты, не меняя статус
	SetPaymentMode(ctx context.Context, id int64, mode domain.PaymentMode, now time.Time) error
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// CartServiceClient интерфейс клиента сервиса корзин
type CartServiceClient interface {
	CreateCart(ctx context.Context, req *cartservice.CreateCartRequest) (*cartservice.Cart, error)
	GetRegion(ctx context.Context, regionID string) (*cartservice.Region, error)
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	PaymentInitiated(ctx context.Context, bookingID int64, mode string, cartID string)
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
