package notifications

import "time"

// ReminderEventType тип события напоминания о записи
const ReminderEventType = "appointment.reminder.v1"

// ReminderEvent напоминание клиенту о предстоящей записи
type ReminderEvent struct {
	EventID         string    `json:"eventId"`
	AppointmentID   int64     `json:"appointmentId"`
	SalonID         int64     `json:"salonId"`
	StaffID         int64     `json:"staffId"`
	ClientID        int64     `json:"clientId"`
	ServiceName     string    `json:"serviceName"`
	AppointmentDate string    `json:"appointmentDate"` // "2026-03-15"
	StartTime       string    `json:"startTime"`       // "10:00"
	StartsAt        time.Time `json:"startsAt"`
	Contact         *Contact  `json:"contact,omitempty"` // nil, если UserService недоступен
	CreatedAt       time.Time `json:"createdAt"`
}

// Contact контакт клиента для доставки напоминания
type Contact struct {
	Name       string  `json:"name"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty"`
	TelegramID *int64  `json:"telegramId,omitempty"`
}
