package events

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// LogPublisher публикует доменные события в лог
// Внешнего брокера у сервиса нет: события пишутся структурированной
// строкой, по которой их забирает пайплайн доставки уведомлений
type LogPublisher struct {
	log     Logger
	metrics *metrics.Metrics
}

// NewLogPublisher создает новый экземпляр публикатора
// metrics может быть nil, если сбор метрик выключен
func NewLogPublisher(log Logger, m *metrics.Metrics) *LogPublisher {
	return &LogPublisher{log: log, metrics: m}
}

// PaymentInitiated публикует событие начала онлайн-оплаты бронирования
func (p *LogPublisher) PaymentInitiated(_ context.Context, bookingID int64, mode string, cartID string) {
	p.log.Info("event: payment_initiated booking_id=%d payment_mode=%s cart_id=%s", bookingID, mode, cartID)
	if p.metrics != nil {
		p.metrics.IncBookingTransition("payment_initiated")
	}
}

// BookingCancelled публикует событие отмены бронирования
// Для оплаченных бронирований orderID дает платежному контуру зацепку для возврата
func (p *LogPublisher) BookingCancelled(_ context.Context, bookingID int64, orderID *string) {
	if orderID != nil {
		p.log.Info("event: booking_cancelled booking_id=%d order_id=%s", bookingID, *orderID)
	} else {
		p.log.Info("event: booking_cancelled booking_id=%d", bookingID)
	}
	if p.metrics != nil {
		p.metrics.IncBookingTransition("cancelled")
	}
}

// StatusChanged публикует смену статуса бронирования
func (p *LogPublisher) StatusChanged(_ context.Context, bookingID int64, to string) {
	p.log.Info("event: booking_status_changed booking_id=%d to=%s", bookingID, to)
	if p.metrics != nil {
		p.metrics.IncBookingTransition(to)
	}
}
