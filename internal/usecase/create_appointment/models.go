package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID       int64            // ID клиента (из X-User-ID)
	SalonID        int64            // ID салона
	StaffID        int64            // ID мастера
	ServiceID      int64            // ID услуги
	Date           time.Time        // Дата записи (без времени)
	StartTime      types.TimeString // Время начала (например, "10:00")
	Notes          *string          // Комментарий клиента (опционально)
	IdempotencyKey *string          // Ключ повтора запроса (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	ClientID        int64
	SalonID         int64
	StaffID         int64
	ServiceID       int64
	AppointmentDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string

	// Денормализованные данные
	ServiceName  string
	ServicePrice float64
	Notes        *string

	// Replayed true, если запись уже была создана ранее с тем же ключом идемпотентности
	Replayed bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
