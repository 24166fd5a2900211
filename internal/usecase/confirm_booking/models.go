package confirm_booking

import "time"

// Request модель запроса на подтверждение бронирования
type Request struct {
	BookingID   int64
	PaymentMode string

	// RegionID переопределяет регион услуги для онлайн-оплаты
	RegionID *string
}

// Outcome исход подтверждения
type Outcome string

const (
	// OutcomeConfirmed бронирование подтверждено сразу (оплата на месте)
	OutcomeConfirmed Outcome = "confirmed"

	// OutcomeCheckoutRequired создана корзина, бронирование будет
	// подтверждено событием размещения заказа
	OutcomeCheckoutRequired Outcome = "checkout_required"
)

// Response модель ответа на подтверждение
// CartID и AmountDue заполняются только при OutcomeCheckoutRequired
type Response struct {
	BookingID   int64
	Outcome     Outcome
	Status      string
	PaymentMode string

	CartID    *string
	AmountDue int64

	ConfirmedAt *time.Time
}
