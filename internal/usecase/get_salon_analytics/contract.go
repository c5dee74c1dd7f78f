package get_salon_analytics

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/access"
)

// AppointmentRepository интерфейс для работы с записями
type AppointmentRepository interface {
	GetBySalonWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// PaymentRepository интерфейс для работы с оплатами
type PaymentRepository interface {
	GetBySalonAndPeriod(ctx context.Context, salonID int64, from, to time.Time) ([]*domain.Payment, error)
}

// ReviewRepository интерфейс для работы с отзывами
type ReviewRepository interface {
	GetBySalonAndPeriod(ctx context.Context, salonID int64, from, to time.Time) ([]*domain.Review, error)
}

// AccessResolver определяет роль пользователя в салоне
type AccessResolver interface {
	Resolve(ctx context.Context, salonID, userID int64) (*access.Access, error)
}

// TransactionManager выполняет чтение в одной транзакции
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
