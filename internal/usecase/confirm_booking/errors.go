package confirm_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrNotHeld возвращается, когда бронирование не в статусе held
	ErrNotHeld = errors.New("booking is not held")

	// ErrHoldExpired возвращается, когда удержание уже истекло
	ErrHoldExpired = errors.New("booking hold has expired")

	// ErrServiceNotFound возвращается, когда услуга бронирования не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrPaymentModeNotAllowed возвращается, когда услуга не поддерживает выбранный способ оплаты
	ErrPaymentModeNotAllowed = errors.New("payment mode is not allowed for this service")

	// ErrDepositRequired возвращается при попытке оплаты на месте для услуги с депозитом
	ErrDepositRequired = errors.New("service requires a deposit")

	// ErrDepositNotConfigured возвращается при выборе депозита для услуги без депозитной политики
	ErrDepositNotConfigured = errors.New("service has no deposit policy")

	// ErrRegionRequired возвращается, когда для онлайн-оплаты не определен регион
	ErrRegionRequired = errors.New("region is required for online payment")

	// ErrRegionNotFound возвращается, когда регион не найден в сервисе корзин
	ErrRegionNotFound = errors.New("region not found")

	// ErrCartCreationFailed возвращается, когда сервис корзин отклонил создание корзины
	ErrCartCreationFailed = errors.New("cart creation failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
