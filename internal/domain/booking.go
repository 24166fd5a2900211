package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusHeld      BookingStatus = "held"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// PaymentMode способ оплаты бронирования
// Выбирается в момент подтверждения, до этого поле пустое
type PaymentMode string

const (
	PaymentModePayInStore PaymentMode = "pay_in_store"
	PaymentModeDeposit    PaymentMode = "deposit"
	PaymentModeFull       PaymentMode = "full"
)

// Booking represents an appointment reservation in the system
// Интервал [StartAt, EndAt) полуоткрытый, оба значения - моменты в UTC
type Booking struct {
	ID         int64
	StaffID    int64
	ServiceID  int64
	CustomerID *int64 // nil = гостевое бронирование

	StartAt time.Time
	EndAt   time.Time
	Status  BookingStatus

	// HoldExpiresAt задан только пока бронирование в статусе held
	HoldExpiresAt *time.Time

	// Denormalized pricing snapshot taken at hold time
	ServiceName   string
	PriceAmount   int64 // минорные единицы валюты (копейки, центы)
	CurrencyCode  string
	DepositAmount int64

	PaymentMode *PaymentMode
	AmountPaid  int64
	OrderID     *string

	// Контакты гостя (заполняются при CustomerID == nil)
	GuestName  *string
	GuestEmail *string
	GuestPhone *string

	Notes *string

	ConfirmedAt        *time.Time
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot at the given moment
// Held бронирование с истекшим hold_expires_at слот больше не занимает
func (b *Booking) IsActive(now time.Time) bool {
	switch b.Status {
	case StatusConfirmed:
		return true
	case StatusHeld:
		return !b.HoldExpired(now)
	default:
		return false
	}
}

// HoldExpired returns true if the hold has expired by the given moment
func (b *Booking) HoldExpired(now time.Time) bool {
	return b.Status == StatusHeld && b.HoldExpiresAt != nil && !b.HoldExpiresAt.After(now)
}

// IsTerminal returns true if no further transitions are allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted || b.Status == StatusNoShow
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusHeld || b.Status == StatusConfirmed
}

// CanBeConfirmed returns true if the booking is held and the hold has not expired
func (b *Booking) CanBeConfirmed(now time.Time) bool {
	return b.Status == StatusHeld && !b.HoldExpired(now)
}

// IsGuest returns true if the booking was made without a customer account
func (b *Booking) IsGuest() bool {
	return b.CustomerID == nil
}

// ValidPaymentMode проверяет, что строка - допустимый способ оплаты
func ValidPaymentMode(s string) (PaymentMode, bool) {
	switch PaymentMode(s) {
	case PaymentModePayInStore, PaymentModeDeposit, PaymentModeFull:
		return PaymentMode(s), true
	default:
		return "", false
	}
}
