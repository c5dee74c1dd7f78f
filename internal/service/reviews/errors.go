package reviews

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("salon not found")

	// ErrAccessDenied возвращается, когда отзыв пытается оставить не клиент записи
	ErrAccessDenied = errors.New("access denied")

	// ErrNotCompleted возвращается, когда запись ещё не завершена
	ErrNotCompleted = errors.New("review is allowed only for completed appointments")

	// ErrAlreadyReviewed возвращается при повторном отзыве на запись
	ErrAlreadyReviewed = errors.New("appointment already reviewed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
