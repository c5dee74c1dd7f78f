package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SalonService/internal/service/access"
	"github.com/m04kA/SMC-SalonService/internal/service/staff/models"
)

// Service сервис сотрудников салона и их расписаний
type Service struct {
	staffRepo    StaffRepository
	scheduleRepo ScheduleRepository
	salonRepo    SalonRepository
	resolver     AccessResolver
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса сотрудников
func NewService(
	staffRepo StaffRepository,
	scheduleRepo ScheduleRepository,
	salonRepo SalonRepository,
	resolver AccessResolver,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		staffRepo:    staffRepo,
		scheduleRepo: scheduleRepo,
		salonRepo:    salonRepo,
		resolver:     resolver,
		txManager:    txManager,
		logger:       logger,
	}
}

// List получает активных сотрудников салона
// Публичный метод - доступен всем
func (s *Service) List(ctx context.Context, salonID int64) (*models.StaffListResponse, error) {
	s.logger.Info("List: fetching staff for salon=%d", salonID)

	if err := s.checkSalon(ctx, "List", salonID); err != nil {
		return nil, err
	}

	list, err := s.staffRepo.GetBySalonID(ctx, salonID, true)
	if err != nil {
		s.logger.Error("List: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d staff members for salon=%d", len(list), salonID)
	return models.FromDomainStaffList(list), nil
}

// Add добавляет сотрудника в салон
// Владелец добавляет администраторов и мастеров, администратор только мастеров
func (s *Service) Add(ctx context.Context, req *models.AddStaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("Add: adding user=%d as %s to salon=%d by user=%d", req.MemberUserID, req.Role, req.SalonID, req.UserID)

	member := &domain.Staff{
		SalonID:  req.SalonID,
		UserID:   req.MemberUserID,
		Name:     strings.TrimSpace(req.Name),
		Role:     domain.StaffRole(req.Role),
		IsActive: true,
	}

	if err := validateStaff(member); err != nil {
		s.logger.Warn("Add: validation failed: %v", err)
		return nil, err
	}

	a, err := s.resolve(ctx, "Add", req.SalonID, req.UserID)
	if err != nil {
		return nil, err
	}

	switch a.Role {
	case domain.RoleOwner:
	case domain.RoleAdmin:
		if member.Role == domain.StaffRoleAdmin {
			s.logger.Warn("Add: admin user=%d cannot add admins to salon=%d", req.UserID, req.SalonID)
			return nil, ErrAccessDenied
		}
	case domain.RoleEmployee, domain.RoleClient:
		s.logger.Warn("Add: user=%d with role=%s cannot add staff to salon=%d", req.UserID, a.Role, req.SalonID)
		return nil, ErrAccessDenied
	}

	created, err := s.staffRepo.Create(ctx, member)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffAlreadyExists) {
			s.logger.Warn("Add: user=%d already belongs to salon=%d", req.MemberUserID, req.SalonID)
			return nil, ErrStaffAlreadyExists
		}
		s.logger.Error("Add: repository error: %v", err)
		return nil, fmt.Errorf("%w: Add - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Add: successfully added staff id=%d to salon=%d", created.ID, req.SalonID)
	return models.FromDomainStaff(created), nil
}

// GetSchedule получает недельное расписание мастера
// Публичный метод - доступен всем
func (s *Service) GetSchedule(ctx context.Context, salonID, staffID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for staff=%d in salon=%d", staffID, salonID)

	if err := s.checkSalon(ctx, "GetSchedule", salonID); err != nil {
		return nil, err
	}

	if _, err := s.getMember(ctx, "GetSchedule", salonID, staffID); err != nil {
		return nil, err
	}

	windows, err := s.scheduleRepo.GetByStaffID(ctx, staffID)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSchedule: successfully fetched %d windows for staff=%d", len(windows), staffID)
	return models.FromDomainSchedule(staffID, windows), nil
}

// ReplaceSchedule заменяет недельное расписание мастера целиком
// Доступно владельцу, администраторам и самому мастеру
func (s *Service) ReplaceSchedule(ctx context.Context, req *models.ReplaceScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("ReplaceSchedule: replacing schedule of staff=%d in salon=%d by user=%d, windows=%d",
		req.StaffID, req.SalonID, req.UserID, len(req.Windows))

	windows, err := req.ToDomainWindows()
	if err != nil {
		s.logger.Warn("ReplaceSchedule: validation failed for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	a, err := s.resolve(ctx, "ReplaceSchedule", req.SalonID, req.UserID)
	if err != nil {
		return nil, err
	}

	if _, err := s.getMember(ctx, "ReplaceSchedule", req.SalonID, req.StaffID); err != nil {
		return nil, err
	}

	if !a.Role.CanManageSalon() && a.StaffID() != req.StaffID {
		s.logger.Warn("ReplaceSchedule: user=%d cannot edit schedule of staff=%d", req.UserID, req.StaffID)
		return nil, ErrAccessDenied
	}

	var saved []*domain.WorkingWindow
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.scheduleRepo.ReplaceForStaff(ctx, req.StaffID, windows)
		return err
	})
	if err != nil {
		s.logger.Error("ReplaceSchedule: failed to save schedule of staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: ReplaceSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceSchedule: successfully saved %d windows for staff=%d", len(saved), req.StaffID)
	return models.FromDomainSchedule(req.StaffID, saved), nil
}

// Вспомогательные методы

func (s *Service) checkSalon(ctx context.Context, op string, salonID int64) error {
	salon, err := s.salonRepo.GetByID(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("%s: salon id=%d not found", op, salonID)
			return ErrSalonNotFound
		}
		s.logger.Error("%s: failed to get salon id=%d: %v", op, salonID, err)
		return fmt.Errorf("%w: %s - get salon: %v", ErrInternal, op, err)
	}
	if !salon.IsActive {
		s.logger.Warn("%s: salon id=%d is inactive", op, salonID)
		return ErrSalonNotFound
	}
	return nil
}

// getMember возвращает активного сотрудника, принадлежащего салону
func (s *Service) getMember(ctx context.Context, op string, salonID, staffID int64) (*domain.Staff, error) {
	member, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("%s: staff id=%d not found", op, staffID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("%s: repository error for staff id=%d: %v", op, staffID, err)
		return nil, fmt.Errorf("%w: %s - get staff: %v", ErrInternal, op, err)
	}
	if member.SalonID != salonID || !member.IsActive {
		s.logger.Warn("%s: staff id=%d is not an active member of salon=%d", op, staffID, salonID)
		return nil, ErrStaffNotFound
	}
	return member, nil
}

func (s *Service) resolve(ctx context.Context, op string, salonID, userID int64) (*access.Access, error) {
	a, err := s.resolver.Resolve(ctx, salonID, userID)
	if err != nil {
		if errors.Is(err, access.ErrSalonNotFound) {
			return nil, ErrSalonNotFound
		}
		s.logger.Error("%s: failed to resolve role of user=%d in salon=%d: %v", op, userID, salonID, err)
		return nil, fmt.Errorf("%w: %s - resolve access: %v", ErrInternal, op, err)
	}
	return a, nil
}

// validateStaff валидирует данные нового сотрудника
func validateStaff(s *domain.Staff) error {
	if s.UserID <= 0 {
		return fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}

	if s.Name == "" || utf8.RuneCountInString(s.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if !s.Role.Valid() {
		return fmt.Errorf("%w: role must be admin or employee", ErrInvalidInput)
	}

	return nil
}
