package cartservice

import "errors"

var (
	// ErrRegionNotFound возвращается, когда регион не найден
	ErrRegionNotFound = errors.New("cartservice client: region not found")

	// ErrCartRejected возвращается, когда сервис корзин отклонил создание корзины
	ErrCartRejected = errors.New("cartservice client: cart creation rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("cartservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("cartservice client: invalid response")
)
