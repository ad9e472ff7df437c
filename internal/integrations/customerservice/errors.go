package customerservice

import "errors"

var (
	// ErrInvalidPayload возвращается, когда сервис отклонил данные клиента/автомобиля
	ErrInvalidPayload = errors.New("customerservice client: payload rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("customerservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("customerservice client: invalid response")
)
