package hold_booking

import (
	"time"

	holdBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/hold_booking"
)

// HoldBookingRequest HTTP request model
type HoldBookingRequest struct {
	StaffID   int64  `json:"staffId"`
	ServiceID int64  `json:"serviceId"`
	StartAt   string `json:"startAt"` // ISO 8601

	GuestName  *string `json:"guestName,omitempty"`
	GuestEmail *string `json:"guestEmail,omitempty"`
	GuestPhone *string `json:"guestPhone,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

// HoldBookingResponse HTTP response model
type HoldBookingResponse struct {
	ID         int64  `json:"id"`
	StaffID    int64  `json:"staffId"`
	ServiceID  int64  `json:"serviceId"`
	CustomerID *int64 `json:"customerId,omitempty"`

	StartAt       string `json:"startAt"`
	EndAt         string `json:"endAt"`
	Status        string `json:"status"`
	HoldExpiresAt string `json:"holdExpiresAt"`

	ServiceName   string `json:"serviceName"`
	PriceAmount   int64  `json:"priceAmount"`
	CurrencyCode  string `json:"currencyCode"`
	DepositAmount int64  `json:"depositAmount"`

	GuestName  *string `json:"guestName,omitempty"`
	GuestEmail *string `json:"guestEmail,omitempty"`
	GuestPhone *string `json:"guestPhone,omitempty"`

	Notes *string `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *HoldBookingRequest) ToUseCaseRequest(customerID *int64) (*holdBooking.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	return &holdBooking.Request{
		StaffID:    r.StaffID,
		ServiceID:  r.ServiceID,
		StartAt:    startAt,
		CustomerID: customerID,
		GuestName:  r.GuestName,
		GuestEmail: r.GuestEmail,
		GuestPhone: r.GuestPhone,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *holdBooking.Response) *HoldBookingResponse {
	return &HoldBookingResponse{
		ID:            resp.ID,
		StaffID:       resp.StaffID,
		ServiceID:     resp.ServiceID,
		CustomerID:    resp.CustomerID,
		StartAt:       resp.StartAt.Format(time.RFC3339),
		EndAt:         resp.EndAt.Format(time.RFC3339),
		Status:        resp.Status,
		HoldExpiresAt: resp.HoldExpiresAt.Format(time.RFC3339),
		ServiceName:   resp.ServiceName,
		PriceAmount:   resp.PriceAmount,
		CurrencyCode:  resp.CurrencyCode,
		DepositAmount: resp.DepositAmount,
		GuestName:     resp.GuestName,
		GuestEmail:    resp.GuestEmail,
		GuestPhone:    resp.GuestPhone,
		Notes:         resp.Notes,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
