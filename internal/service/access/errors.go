package access

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("access: salon not found")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("access: internal error")
)
