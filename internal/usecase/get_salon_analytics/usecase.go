package get_salon_analytics

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/access"
)

// UseCase use case для получения аналитики салона
type UseCase struct {
	appointmentRepo AppointmentRepository
	paymentRepo     PaymentRepository
	reviewRepo      ReviewRepository
	resolver        AccessResolver
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	paymentRepo PaymentRepository,
	reviewRepo ReviewRepository,
	resolver AccessResolver,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		paymentRepo:     paymentRepo,
		reviewRepo:      reviewRepo,
		resolver:        resolver,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute собирает аналитику салона за период.
// Записи отбираются по дате визита, оплаты и отзывы по дате создания.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSalonAnalytics: salon=%d, user=%d", req.SalonID, req.UserID)

	// 1. Период
	period, err := domain.ResolvePeriod(req.StartDate, req.EndDate, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("GetSalonAnalytics: invalid period for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Права доступа
	a, err := uc.resolver.Resolve(ctx, req.SalonID, req.UserID)
	if err != nil {
		if errors.Is(err, access.ErrSalonNotFound) {
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetSalonAnalytics: failed to resolve role of user=%d in salon=%d: %v", req.UserID, req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to resolve access: %w", ErrInternal, err)
	}
	if !a.Role.CanManageSalon() {
		uc.logger.Warn("GetSalonAnalytics: user=%d with role=%s cannot read analytics of salon=%d", req.UserID, a.Role, req.SalonID)
		return nil, ErrAccessDenied
	}

	// 3. Данные за период в одной транзакции
	var (
		appointments []*domain.Appointment
		payments     []*domain.Payment
		reviews      []*domain.Review
	)
	from, to := period.Bounds()

	err = uc.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error

		appointments, err = uc.appointmentRepo.GetBySalonWithFilter(ctx, domain.AppointmentsFilter{
			SalonID:         req.SalonID,
			StartDate:       &period.Start,
			EndDate:         &period.End,
			IncludeInactive: true,
		})
		if err != nil {
			return fmt.Errorf("failed to get appointments: %w", err)
		}

		payments, err = uc.paymentRepo.GetBySalonAndPeriod(ctx, req.SalonID, from, to)
		if err != nil {
			return fmt.Errorf("failed to get payments: %w", err)
		}

		reviews, err = uc.reviewRepo.GetBySalonAndPeriod(ctx, req.SalonID, from, to)
		if err != nil {
			return fmt.Errorf("failed to get reviews: %w", err)
		}

		return nil
	})
	if err != nil {
		uc.logger.Error("GetSalonAnalytics: failed to load data for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	// 4. Агрегация
	summary := domain.Aggregate(appointments, payments, reviews)

	uc.logger.Info("GetSalonAnalytics: salon=%d, period=%s..%s, appointments=%d, revenue=%.2f, reviews=%d",
		req.SalonID, period.Start.Format(domain.DateFormat), period.End.Format(domain.DateFormat),
		summary.TotalAppointments, summary.TotalRevenue, summary.ReviewCount)

	return &Response{
		SalonID:   req.SalonID,
		StartDate: period.Start,
		EndDate:   period.End,
		Summary:   summary,
	}, nil
}
