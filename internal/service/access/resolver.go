package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
)

// Access результат определения роли пользователя в салоне
type Access struct {
	Salon *domain.Salon
	Role  domain.Role
	Staff *domain.Staff // nil для владельца без записи сотрудника и для клиентов
}

// StaffID ID записи сотрудника или 0
func (a *Access) StaffID() int64 {
	if a.Staff == nil {
		return 0
	}
	return a.Staff.ID
}

// Resolver определяет роль пользователя в салоне только по данным сервера.
// Владелец: salons.owner_id, далее активная запись staff, иначе клиент.
type Resolver struct {
	salonRepo SalonRepository
	staffRepo StaffRepository
	logger    Logger
}

// NewResolver создает новый экземпляр Resolver
func NewResolver(salonRepo SalonRepository, staffRepo StaffRepository, logger Logger) *Resolver {
	return &Resolver{
		salonRepo: salonRepo,
		staffRepo: staffRepo,
		logger:    logger,
	}
}

// Resolve возвращает салон и роль пользователя в нём
func (r *Resolver) Resolve(ctx context.Context, salonID, userID int64) (*Access, error) {
	salon, err := r.salonRepo.GetByID(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			r.logger.Warn("Resolve: salon id=%d not found", salonID)
			return nil, ErrSalonNotFound
		}
		r.logger.Error("Resolve: failed to get salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: Resolve - get salon: %v", ErrInternal, err)
	}

	result := &Access{Salon: salon, Role: domain.RoleClient}

	member, err := r.staffRepo.GetActiveBySalonAndUser(ctx, salonID, userID)
	switch {
	case err == nil:
		result.Staff = member
		result.Role = domain.RoleFromStaff(member.Role)
	case errors.Is(err, staffRepo.ErrStaffNotFound):
	default:
		r.logger.Error("Resolve: failed to get staff for salon=%d, user=%d: %v", salonID, userID, err)
		return nil, fmt.Errorf("%w: Resolve - get staff: %v", ErrInternal, err)
	}

	if salon.OwnerID == userID {
		result.Role = domain.RoleOwner
	}

	return result, nil
}

// ResolveRole возвращает только роль пользователя в салоне
func (r *Resolver) ResolveRole(ctx context.Context, salonID, userID int64) (domain.Role, error) {
	a, err := r.Resolve(ctx, salonID, userID)
	if err != nil {
		return domain.RoleClient, err
	}
	return a.Role, nil
}
