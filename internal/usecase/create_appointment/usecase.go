package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
	scheduleRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/schedule"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

// UseCase use case для создания записи к мастеру
type UseCase struct {
	appointmentRepo AppointmentRepository
	salonRepo       SalonRepository
	staffRepo       StaffRepository
	catalogRepo     CatalogRepository
	scheduleRepo    ScheduleRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	salonRepo SalonRepository,
	staffRepo StaffRepository,
	catalogRepo CatalogRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		salonRepo:       salonRepo,
		staffRepo:       staffRepo,
		catalogRepo:     catalogRepo,
		scheduleRepo:    scheduleRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка свободного времени и вставка идут в одной сериализуемой транзакции,
// записи мастера на дату блокируются (FOR UPDATE).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, salon=%d, staff=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.SalonID, req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Повтор запроса с тем же ключом возвращает уже созданную запись
	var key *uuid.UUID
	if req.IdempotencyKey != nil {
		k := idempotencyKey(req.ClientID, *req.IdempotencyKey)
		key = &k

		existing, err := uc.appointmentRepo.GetByIdempotencyKey(ctx, k)
		if err == nil {
			uc.logger.Info("CreateAppointment: replaying appointment id=%d for key=%s", existing.ID, k)
			return toResponse(existing, true), nil
		}
		if !errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Error("CreateAppointment: failed to check idempotency key: %v", err)
			return nil, fmt.Errorf("%w: failed to check idempotency key: %v", ErrInternal, err)
		}
	}

	now := uc.timeProvider.Now()
	day := dateOnly(req.Date, now.Location())

	// 3. Салон, мастер и услуга
	salon, err := uc.getSalon(ctx, req.SalonID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.getStaff(ctx, req.SalonID, req.StaffID); err != nil {
		return nil, err
	}

	service, err := uc.getService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	// 4. Политика записи салона
	if err := validateDate(day, now, salon); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	if err := validateNotice(day, req.StartTime, now, salon.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("CreateAppointment: notice validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 5. Проверка слота и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		window, err := uc.scheduleRepo.GetByStaffAndWeekday(txCtx, req.StaffID, day.Weekday())
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrWindowNotFound) {
				uc.logger.Warn("CreateAppointment: staff=%d has no window on %s", req.StaffID, day.Weekday())
				return ErrStaffNotWorking
			}
			uc.logger.Error("CreateAppointment: failed to get working window: %v", err)
			return fmt.Errorf("%w: failed to get working window: %v", ErrInternal, err)
		}
		if !window.IsOpen() {
			uc.logger.Warn("CreateAppointment: staff=%d does not work on %s", req.StaffID, day.Weekday())
			return ErrStaffNotWorking
		}

		appointments, err := uc.appointmentRepo.GetByStaffAndDate(txCtx, req.StaffID, day)
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateAppointment: concurrent booking while locking staff=%d day: %v", req.StaffID, err)
			return err
		}
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		free := domain.AvailableSlots(window, service.DurationMinutes, domain.BookedIntervals(appointments))
		if !domain.ContainsSlot(free, req.StartTime) {
			if !domain.ContainsSlot(domain.AvailableSlots(window, service.DurationMinutes, nil), req.StartTime) {
				uc.logger.Warn("CreateAppointment: time=%s is outside the working grid of staff=%d", req.StartTime, req.StaffID)
				return fmt.Errorf("%w: %s is not a start of a %d minutes slot", ErrInvalidTimeSlot, req.StartTime, service.DurationMinutes)
			}
			uc.logger.Warn("CreateAppointment: time=%s of staff=%d is already taken", req.StartTime, req.StaffID)
			return ErrSlotNotAvailable
		}

		appointment := &domain.Appointment{
			SalonID:         req.SalonID,
			StaffID:         req.StaffID,
			ServiceID:       req.ServiceID,
			ClientID:        req.ClientID,
			AppointmentDate: day,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
			// Денормализация данных услуги
			ServiceName:    service.Name,
			ServicePrice:   service.Price,
			Notes:          req.Notes,
			IdempotencyKey: key,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		return uc.handleTxError(ctx, key, err)
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)
	return toResponse(result, false), nil
}

// handleTxError разбирает ошибку транзакции: гонка за ключ идемпотентности отдаёт
// запись победителя, конфликт сериализации означает, что слот заняли параллельно
func (uc *UseCase) handleTxError(ctx context.Context, key *uuid.UUID, err error) (*Response, error) {
	switch {
	case errors.Is(err, appointmentRepo.ErrDuplicateIdempotencyKey) && key != nil:
		existing, getErr := uc.appointmentRepo.GetByIdempotencyKey(ctx, *key)
		if getErr != nil {
			uc.logger.Error("CreateAppointment: failed to load appointment by key=%s: %v", key, getErr)
			return nil, fmt.Errorf("%w: failed to load appointment by idempotency key: %v", ErrInternal, getErr)
		}
		uc.logger.Info("CreateAppointment: concurrent request created appointment id=%d", existing.ID)
		return toResponse(existing, true), nil

	case errors.Is(err, txmanager.ErrSerializationFailure):
		uc.logger.Warn("CreateAppointment: serialization conflict: %v", err)
		return nil, ErrSlotNotAvailable

	case errors.Is(err, ErrStaffNotWorking), errors.Is(err, ErrInvalidTimeSlot),
		errors.Is(err, ErrSlotNotAvailable), errors.Is(err, ErrInternal):
		return nil, err
	}

	uc.logger.Error("CreateAppointment: transaction failed: %v", err)
	return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
}

func (uc *UseCase) getSalon(ctx context.Context, salonID int64) (*domain.Salon, error) {
	salon, err := uc.salonRepo.GetByID(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("CreateAppointment: salon id=%d not found", salonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}
	if !salon.IsActive {
		uc.logger.Warn("CreateAppointment: salon id=%d is inactive", salonID)
		return nil, ErrSalonNotFound
	}
	return salon, nil
}

func (uc *UseCase) getStaff(ctx context.Context, salonID, staffID int64) (*domain.Staff, error) {
	member, err := uc.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateAppointment: staff id=%d not found", staffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if member.SalonID != salonID || !member.IsActive {
		uc.logger.Warn("CreateAppointment: staff id=%d does not work in salon id=%d", staffID, salonID)
		return nil, ErrStaffNotFound
	}
	return member, nil
}

func (uc *UseCase) getService(ctx context.Context, salonID, serviceID int64) (*domain.SalonService, error) {
	service, err := uc.catalogRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.SalonID != salonID || !service.IsBookable() {
		uc.logger.Warn("CreateAppointment: service id=%d is not bookable in salon id=%d", serviceID, salonID)
		return nil, ErrServiceNotFound
	}
	return service, nil
}

func toResponse(a *domain.Appointment, replayed bool) *Response {
	return &Response{
		ID:              a.ID,
		ClientID:        a.ClientID,
		SalonID:         a.SalonID,
		StaffID:         a.StaffID,
		ServiceID:       a.ServiceID,
		AppointmentDate: a.AppointmentDate,
		StartTime:       a.StartTime,
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		ServiceName:     a.ServiceName,
		ServicePrice:    a.ServicePrice,
		Notes:           a.Notes,
		Replayed:        replayed,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
