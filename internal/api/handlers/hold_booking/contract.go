package hold_booking

import (
	"context"

	holdBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/hold_booking"
)

type HoldBookingUseCase interface {
	Execute(ctx context.Context, req *holdBooking.Request) (*holdBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
