package events

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type captureLogger struct {
	lines []string
}

func (l *captureLogger) Info(format string, v ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *captureLogger) Warn(string, ...interface{})  {}
func (l *captureLogger) Error(string, ...interface{}) {}

func TestLogPublisher_EventLines(t *testing.T) {
	log := &captureLogger{}
	// metrics == nil: сбор метрик выключен, публикация не должна падать
	p := NewLogPublisher(log, nil)

	ctx := context.Background()
	p.PaymentInitiated(ctx, 42, "deposit", "cart_01")
	p.StatusChanged(ctx, 42, "confirmed")
	p.BookingCancelled(ctx, 43, ptr.Ptr("order_77"))
	p.BookingCancelled(ctx, 44, nil)

	assert.Equal(t, []string{
		"event: payment_initiated booking_id=42 payment_mode=deposit cart_id=cart_01",
		"event: booking_status_changed booking_id=42 to=confirmed",
		"event: booking_cancelled booking_id=43 order_id=order_77",
		"event: booking_cancelled booking_id=44",
	}, log.lines)
}

func TestLogPublisher_WithMetrics(t *testing.T) {
	log := &captureLogger{}
	p := NewLogPublisher(log, metrics.New("events-test"))

	ctx := context.Background()
	// Все три события инкрементируют счетчик переходов
	p.PaymentInitiated(ctx, 42, "full", "cart_02")
	p.StatusChanged(ctx, 42, "confirmed")
	p.BookingCancelled(ctx, 42, nil)

	assert.Len(t, log.lines, 3)
}
