package payments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/stripepay"
	"github.com/m04kA/SMC-SalonService/internal/service/access"
)

// PaymentRepository интерфейс репозитория оплат
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	HasSucceeded(ctx context.Context, appointmentID int64) (bool, error)
	GetCardAttempts(ctx context.Context, appointmentID int64) ([]*domain.Payment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Payment, error)
	GetBySalonAndPeriod(ctx context.Context, salonID int64, from, to time.Time) ([]*domain.Payment, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
}

// CardGateway создание платежей картой (Stripe)
type CardGateway interface {
	CreateIntent(ctx context.Context, req stripepay.IntentRequest) (*stripepay.Intent, error)
	GetIntent(ctx context.Context, id string) (*stripepay.Intent, error)
}

// AccessResolver определяет роль пользователя в салоне
type AccessResolver interface {
	Resolve(ctx context.Context, salonID, userID int64) (*access.Access, error)
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
