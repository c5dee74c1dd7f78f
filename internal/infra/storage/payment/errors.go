package payment

import "errors"

var (
	// ErrAlreadyPaid возвращается при попытке второй успешной оплаты одной записи
	ErrAlreadyPaid = errors.New("payment.repository: appointment already paid")

	// ErrDuplicateExternalID возвращается, если оплата с таким PaymentIntent уже сохранена
	ErrDuplicateExternalID = errors.New("payment.repository: duplicate external id")

	// ErrPaymentNotFound возвращается, когда оплата не найдена
	ErrPaymentNotFound = errors.New("payment.repository: payment not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
