package reminders

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifications"
	"github.com/m04kA/SMC-SalonService/internal/integrations/userservice"
)

// AppointmentRepository интерфейс для работы с записями
type AppointmentRepository interface {
	// Возвращает записи, начинающиеся в [from, to], по возрастанию начала, не более limit
	GetAwaitingReminder(ctx context.Context, from, to time.Time, limit int) ([]*domain.Appointment, error)
	MarkReminderSent(ctx context.Context, id int64, sentAt time.Time) error
}

// ContactProvider источник контактов клиентов (UserService)
type ContactProvider interface {
	GetContactWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.Contact, error)
}

// EventPublisher публикация событий напоминаний
type EventPublisher interface {
	PublishReminder(ctx context.Context, event *notifications.ReminderEvent) error
}

// ReminderRecorder метрики рассылки
type ReminderRecorder interface {
	ReminderSent(service string)
	ReminderFailed(service, stage string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
