package userservice

import "errors"

var (
	// ErrContactNotFound возвращается, когда пользователь не найден в UserService
	ErrContactNotFound = errors.New("user contact not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// UserService недоступен, напоминание уходит только с идентификаторами
	ErrServiceDegraded = errors.New("userservice unavailable: graceful degradation applied")
)
