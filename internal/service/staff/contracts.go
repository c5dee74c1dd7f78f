package staff

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/access"
)

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	Create(ctx context.Context, s *domain.Staff) (*domain.Staff, error)
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	GetBySalonID(ctx context.Context, salonID int64, activeOnly bool) ([]*domain.Staff, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByStaffID(ctx context.Context, staffID int64) ([]*domain.WorkingWindow, error)
	ReplaceForStaff(ctx context.Context, staffID int64, windows []*domain.WorkingWindow) ([]*domain.WorkingWindow, error)
}

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
}

// AccessResolver определяет роль пользователя в салоне
type AccessResolver interface {
	Resolve(ctx context.Context, salonID, userID int64) (*access.Access, error)
}

// TransactionManager выполняет функцию в транзакции
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
