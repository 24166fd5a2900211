package hold_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceInactive возвращается, когда услуга отключена
	ErrServiceInactive = errors.New("service is inactive")

	// ErrSlotNotAvailable возвращается, когда слот не прошел проверку доступности
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrSlotConflict возвращается, когда слот заняли конкурентно
	ErrSlotConflict = errors.New("slot was taken by a concurrent booking")

	// ErrGuestBookingsDisabled возвращается, когда гостевые бронирования запрещены настройками
	ErrGuestBookingsDisabled = errors.New("guest bookings are disabled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
