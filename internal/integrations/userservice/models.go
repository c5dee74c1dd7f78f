package userservice

// Contact контактные данные клиента из UserService
type Contact struct {
	UserID     int64   `json:"user_id"`
	Name       string  `json:"name"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty"`
	TelegramID *int64  `json:"telegram_id,omitempty"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
