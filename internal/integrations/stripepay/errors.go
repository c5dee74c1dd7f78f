package stripepay

import "errors"

var (
	// ErrNotConfigured возвращается, когда секретный ключ Stripe не задан
	ErrNotConfigured = errors.New("stripe client: secret key is not configured")

	// ErrCardDeclined возвращается, когда Stripe отклонил платёж
	ErrCardDeclined = errors.New("stripe client: payment declined")

	// ErrInternal возвращается при прочих ошибках Stripe API
	ErrInternal = errors.New("stripe client: internal error")
)
