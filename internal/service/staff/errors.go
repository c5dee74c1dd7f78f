package staff

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден в салоне
	ErrStaffNotFound = errors.New("staff not found")

	// ErrStaffAlreadyExists возвращается, когда пользователь уже числится в салоне
	ErrStaffAlreadyExists = errors.New("user already belongs to salon")

	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("salon not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
