package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	SalonID    int64     // ID салона из URL
	StaffID    int64     // ID мастера
	ServiceID  int64     // ID услуги
	Date       time.Time // Дата (без времени)
	Generation int64     // Номер запроса клиента, возвращается как есть
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time
	SalonID         int64
	StaffID         int64
	ServiceID       int64
	DurationMinutes int // 0, если услуга не найдена
	Generation      int64
	Slots           []types.TimeString
}
