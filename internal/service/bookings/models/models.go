package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetStaffBookingsRequest запрос на получение бронирований сотрудника на дату
type GetStaffBookingsRequest struct {
	StaffID         int64     `json:"staffId"`
	Date            time.Time `json:"date"`
	IncludeInactive bool      `json:"includeInactive,omitempty"` // Включить отменённые и завершенные
}

// OrderPlacedRequest событие размещения заказа из сервиса корзин
// Metadata корзины возвращает booking_id и payment_mode, записанные при создании
type OrderPlacedRequest struct {
	BookingID   int64  `json:"booking_id"`
	OrderID     string `json:"order_id"`
	PaymentMode string `json:"payment_mode"`
	AmountPaid  int64  `json:"amount_paid"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64  `json:"id"`
	StaffID    int64  `json:"staffId"`
	ServiceID  int64  `json:"serviceId"`
	CustomerID *int64 `json:"customerId,omitempty"`

	StartAt       time.Time  `json:"startAt"`
	EndAt         time.Time  `json:"endAt"`
	Status        string     `json:"status"`
	HoldExpiresAt *time.Time `json:"holdExpiresAt,omitempty"`

	// Снимок данных услуги на момент удержания
	ServiceName   string `json:"serviceName"`
	PriceAmount   int64  `json:"priceAmount"`
	CurrencyCode  string `json:"currencyCode"`
	DepositAmount int64  `json:"depositAmount"`

	PaymentMode *string `json:"paymentMode,omitempty"`
	AmountPaid  int64   `json:"amountPaid"`
	OrderID     *string `json:"orderId,omitempty"`

	GuestName  *string `json:"guestName,omitempty"`
	GuestEmail *string `json:"guestEmail,omitempty"`
	GuestPhone *string `json:"guestPhone,omitempty"`

	Notes *string `json:"notes,omitempty"`

	ConfirmedAt        *time.Time `json:"confirmedAt,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		StaffID:            b.StaffID,
		ServiceID:          b.ServiceID,
		CustomerID:         b.CustomerID,
		StartAt:            b.StartAt,
		EndAt:              b.EndAt,
		Status:             string(b.Status),
		HoldExpiresAt:      b.HoldExpiresAt,
		ServiceName:        b.ServiceName,
		PriceAmount:        b.PriceAmount,
		CurrencyCode:       b.CurrencyCode,
		DepositAmount:      b.DepositAmount,
		AmountPaid:         b.AmountPaid,
		OrderID:            b.OrderID,
		GuestName:          b.GuestName,
		GuestEmail:         b.GuestEmail,
		GuestPhone:         b.GuestPhone,
		Notes:              b.Notes,
		ConfirmedAt:        b.ConfirmedAt,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.PaymentMode != nil {
		mode := string(*b.PaymentMode)
		resp.PaymentMode = &mode
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	switch s {
	case domain.StatusHeld,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusNoShow:
		return s, nil
	}

	return "", ErrInvalidStatus
}
