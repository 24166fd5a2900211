package cancel_booking

import "time"

// Request модель запроса на отмену бронирования
// IsAdmin позволяет персоналу отменять внутри окна отмены
type Request struct {
	BookingID int64
	Reason    *string
	IsAdmin   bool
}

// Response модель ответа на отмену
type Response struct {
	BookingID   int64
	Status      string
	Reason      *string
	CancelledAt time.Time
}
