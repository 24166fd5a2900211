package cancel_booking

import (
	"time"

	cancelBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	BookingID   int64   `json:"bookingId"`
	Status      string  `json:"status"`
	Reason      *string `json:"reason,omitempty"`
	CancelledAt string  `json:"cancelledAt"` // ISO 8601
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		BookingID:   resp.BookingID,
		Status:      resp.Status,
		Reason:      resp.Reason,
		CancelledAt: resp.CancelledAt.Format(time.RFC3339),
	}
}
