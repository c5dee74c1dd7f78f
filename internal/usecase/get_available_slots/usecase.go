package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
	scheduleRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/schedule"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// UseCase use case для получения свободного времени мастера
type UseCase struct {
	salonRepo       SalonRepository
	staffRepo       StaffRepository
	catalogRepo     CatalogRepository
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	recorder        SlotsRecorder
	serviceName     string
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	salonRepo SalonRepository,
	staffRepo StaffRepository,
	catalogRepo CatalogRepository,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	recorder SlotsRecorder,
	serviceName string,
	logger Logger,
) *UseCase {
	return &UseCase{
		salonRepo:       salonRepo,
		staffRepo:       staffRepo,
		catalogRepo:     catalogRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		recorder:        recorder,
		serviceName:     serviceName,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Отсутствие услуги или рабочего окна не ошибка: возвращается пустой список.
// Ошибки хранилища пробрасываются наверх.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: salon=%d, staff=%d, service=%d, date=%s, generation=%d",
		req.SalonID, req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat), req.Generation)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	day := dateOnly(req.Date, now.Location())

	resp := &Response{
		Date:       day,
		SalonID:    req.SalonID,
		StaffID:    req.StaffID,
		ServiceID:  req.ServiceID,
		Generation: req.Generation,
		Slots:      []types.TimeString{},
	}

	// 2. Салон и его политика записи
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("GetAvailableSlots: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %w", ErrInternal, err)
	}
	if !salon.IsActive {
		uc.logger.Warn("GetAvailableSlots: salon id=%d is inactive", req.SalonID)
		return nil, ErrSalonNotFound
	}

	// 3. Мастер должен работать в этом салоне, иначе данных для расчёта нет
	member, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Info("GetAvailableSlots: staff id=%d not found", req.StaffID)
			return uc.done(resp), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %w", ErrInternal, err)
	}
	if member.SalonID != req.SalonID || !member.IsActive {
		uc.logger.Info("GetAvailableSlots: staff id=%d does not work in salon id=%d", req.StaffID, req.SalonID)
		return uc.done(resp), nil
	}

	// 4. Прошедшие даты и даты за пределами горизонта записи
	if !isDateBookable(day, now, salon) {
		uc.logger.Info("GetAvailableSlots: date=%s is not bookable for salon=%d", day.Format(domain.DateFormat), req.SalonID)
		return uc.done(resp), nil
	}

	// 5. Длительность услуги
	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Info("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return uc.done(resp), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}
	if service.SalonID != req.SalonID || !service.IsBookable() {
		uc.logger.Info("GetAvailableSlots: service id=%d is not bookable in salon=%d", req.ServiceID, req.SalonID)
		return uc.done(resp), nil
	}
	resp.DurationMinutes = service.DurationMinutes

	// 6. Рабочее окно мастера на день недели
	window, err := uc.scheduleRepo.GetByStaffAndWeekday(ctx, req.StaffID, day.Weekday())
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrWindowNotFound) {
			uc.logger.Info("GetAvailableSlots: staff=%d has no window on %s", req.StaffID, day.Weekday())
			return uc.done(resp), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get window for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get working window: %w", ErrInternal, err)
	}

	// 7. Занятые интервалы
	appointments, err := uc.appointmentRepo.GetByStaffAndDate(ctx, req.StaffID, day)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}

	// 8. Расчёт и отсечение по минимальному времени до записи
	slots := domain.AvailableSlots(window, service.DurationMinutes, domain.BookedIntervals(appointments))
	resp.Slots = filterByNotice(slots, day, now, salon.MinBookingNoticeMinutes)

	uc.logger.Info("GetAvailableSlots: generated %d slots for staff=%d, service=%d, date=%s",
		len(resp.Slots), req.StaffID, req.ServiceID, day.Format(domain.DateFormat))

	return uc.done(resp), nil
}

func (uc *UseCase) done(resp *Response) *Response {
	if uc.recorder != nil {
		uc.recorder.SlotsComputed(uc.serviceName, len(resp.Slots))
	}
	return resp
}
