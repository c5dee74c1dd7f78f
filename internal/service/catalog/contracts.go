package catalog

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/access"
)

// CatalogRepository интерфейс репозитория услуг салона
type CatalogRepository interface {
	Create(ctx context.Context, s *domain.SalonService) (*domain.SalonService, error)
	GetByID(ctx context.Context, id int64) (*domain.SalonService, error)
	GetBySalonID(ctx context.Context, salonID int64, activeOnly bool) ([]*domain.SalonService, error)
	Update(ctx context.Context, s *domain.SalonService) (*domain.SalonService, error)
}

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
}

// AccessResolver определяет роль пользователя в салоне
type AccessResolver interface {
	Resolve(ctx context.Context, salonID, userID int64) (*access.Access, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
