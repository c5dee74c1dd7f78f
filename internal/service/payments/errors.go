package payments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("salon not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotPay возвращается для отменённых записей и неявок
	ErrCannotPay = errors.New("appointment cannot be paid")

	// ErrAlreadyPaid возвращается, если у записи уже есть успешная оплата
	ErrAlreadyPaid = errors.New("appointment already paid")

	// ErrPaymentDeclined возвращается, когда платёжная система отклонила оплату
	ErrPaymentDeclined = errors.New("payment declined")

	// ErrPaymentUnavailable возвращается, когда оплата картой не настроена
	ErrPaymentUnavailable = errors.New("card payments are unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
