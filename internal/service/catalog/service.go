package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonService/internal/service/access"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
)

// Service сервис каталога услуг салона
type Service struct {
	catalogRepo CatalogRepository
	salonRepo   SalonRepository
	resolver    AccessResolver
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	catalogRepo CatalogRepository,
	salonRepo SalonRepository,
	resolver AccessResolver,
	logger Logger,
) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		salonRepo:   salonRepo,
		resolver:    resolver,
		logger:      logger,
	}
}

// List получает активные услуги салона
// Публичный метод - доступен всем
func (s *Service) List(ctx context.Context, salonID int64) (*models.ServiceListResponse, error) {
	s.logger.Info("List: fetching services for salon=%d", salonID)

	if _, err := s.salonRepo.GetByID(ctx, salonID); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("List: salon id=%d not found", salonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("List: failed to get salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: List - get salon: %v", ErrInternal, err)
	}

	services, err := s.catalogRepo.GetBySalonID(ctx, salonID, true)
	if err != nil {
		s.logger.Error("List: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d services for salon=%d", len(services), salonID)
	return models.FromDomainServiceList(services), nil
}

// Create добавляет услугу в каталог
// Доступно только владельцу и администраторам салона
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service for salon=%d by user=%d", req.SalonID, req.UserID)

	req.Name = strings.TrimSpace(req.Name)
	service := req.ToDomainService()

	if err := validateService(service); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkManagerAccess(ctx, "Create", req.SalonID, req.UserID); err != nil {
		return nil, err
	}

	created, err := s.catalogRepo.Create(ctx, service)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created service id=%d for salon=%d", created.ID, req.SalonID)
	return models.FromDomainService(created), nil
}

// Update обновляет услугу (в том числе снимает её с записи через isActive=false)
// Доступно только владельцу и администраторам салона
func (s *Service) Update(ctx context.Context, serviceID int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d in salon=%d by user=%d", serviceID, req.SalonID, req.UserID)

	// 1. Получаем существующую услугу
	service, err := s.catalogRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}
	if service.SalonID != req.SalonID {
		s.logger.Warn("Update: service id=%d does not belong to salon=%d", serviceID, req.SalonID)
		return nil, ErrServiceNotFound
	}

	// 2. Валидируем копию с применёнными изменениями
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	updated := *service
	req.ApplyToService(&updated)

	if err := validateService(&updated); err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", serviceID, err)
		return nil, err
	}

	// 3. Проверяем права доступа
	if err := s.checkManagerAccess(ctx, "Update", service.SalonID, req.UserID); err != nil {
		return nil, err
	}

	result, err := s.catalogRepo.Update(ctx, &updated)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found during update", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated service id=%d", serviceID)
	return models.FromDomainService(result), nil
}

// Вспомогательные методы

// checkManagerAccess проверяет, что пользователь владелец или администратор салона
func (s *Service) checkManagerAccess(ctx context.Context, op string, salonID, userID int64) error {
	a, err := s.resolver.Resolve(ctx, salonID, userID)
	if err != nil {
		if errors.Is(err, access.ErrSalonNotFound) {
			return ErrSalonNotFound
		}
		s.logger.Error("%s: failed to resolve role of user=%d in salon=%d: %v", op, userID, salonID, err)
		return fmt.Errorf("%w: %s - resolve access: %v", ErrInternal, op, err)
	}

	if !a.Role.CanManageSalon() {
		s.logger.Warn("%s: user=%d with role=%s cannot manage salon=%d", op, userID, a.Role, salonID)
		return ErrAccessDenied
	}

	return nil
}

// validateService валидирует параметры услуги
func validateService(s *domain.SalonService) error {
	if s.Name == "" || utf8.RuneCountInString(s.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if s.DurationMinutes < domain.MinServiceDurationMinutes || s.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	if s.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	return nil
}
