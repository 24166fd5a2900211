package hold_booking

import "time"

// Request модель запроса на создание удержания слота
type Request struct {
	StaffID   int64
	ServiceID int64
	StartAt   time.Time

	// CustomerID nil означает гостевое бронирование
	CustomerID *int64

	GuestName  *string
	GuestEmail *string
	GuestPhone *string

	Notes *string
}

// Response модель ответа с созданным удержанием
type Response struct {
	ID         int64
	StaffID    int64
	ServiceID  int64
	CustomerID *int64

	StartAt       time.Time
	EndAt         time.Time
	Status        string
	HoldExpiresAt time.Time

	ServiceName   string
	PriceAmount   int64
	CurrencyCode  string
	DepositAmount int64

	GuestName  *string
	GuestEmail *string
	GuestPhone *string

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
