package confirm_booking

import (
	"time"

	confirmBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/confirm_booking"
)

// ConfirmBookingRequest HTTP request model
type ConfirmBookingRequest struct {
	PaymentMode string  `json:"paymentMode"` // pay_in_store | deposit | full
	RegionID    *string `json:"regionId,omitempty"`
}

// ConfirmBookingResponse HTTP response model
// cartId и amountDue присутствуют только для онлайн-оплаты
type ConfirmBookingResponse struct {
	BookingID   int64   `json:"bookingId"`
	Outcome     string  `json:"outcome"` // confirmed | checkout_required
	Status      string  `json:"status"`
	PaymentMode string  `json:"paymentMode"`
	CartID      *string `json:"cartId,omitempty"`
	AmountDue   *int64  `json:"amountDue,omitempty"`
	ConfirmedAt *string `json:"confirmedAt,omitempty"` // ISO 8601
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmBooking.Response) *ConfirmBookingResponse {
	out := &ConfirmBookingResponse{
		BookingID:   resp.BookingID,
		Outcome:     string(resp.Outcome),
		Status:      resp.Status,
		PaymentMode: resp.PaymentMode,
		CartID:      resp.CartID,
	}

	if resp.Outcome == confirmBooking.OutcomeCheckoutRequired {
		amountDue := resp.AmountDue
		out.AmountDue = &amountDue
	}

	if resp.ConfirmedAt != nil {
		confirmedStr := resp.ConfirmedAt.Format(time.RFC3339)
		out.ConfirmedAt = &confirmedStr
	}

	return out
}
