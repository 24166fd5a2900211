package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAlreadyFinalized возвращается, когда бронирование уже в терминальном статусе
	ErrAlreadyFinalized = errors.New("booking is already finalized")

	// ErrWithinCancellationWindow возвращается при отмене слишком близко к началу
	ErrWithinCancellationWindow = errors.New("booking starts within the cancellation window")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
