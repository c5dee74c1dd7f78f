package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	paymentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-SalonService/internal/integrations/stripepay"
	"github.com/m04kA/SMC-SalonService/internal/service/access"
	"github.com/m04kA/SMC-SalonService/internal/service/payments/models"
)

// Service сервис оплат записей
type Service struct {
	paymentRepo     PaymentRepository
	appointmentRepo AppointmentRepository
	gateway         CardGateway
	resolver        AccessResolver
	currency        string
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса оплат
func NewService(
	paymentRepo PaymentRepository,
	appointmentRepo AppointmentRepository,
	gateway CardGateway,
	resolver AccessResolver,
	currency string,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo:     paymentRepo,
		appointmentRepo: appointmentRepo,
		gateway:         gateway,
		resolver:        resolver,
		currency:        strings.ToLower(currency),
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Pay оплачивает запись
// Картой платит только клиент записи (создаётся PaymentIntent), наличные отмечает сотрудник салона.
// Повторный вызов картой после подтверждения на клиенте переводит оплату в succeeded
func (s *Service) Pay(ctx context.Context, appointmentID int64, req *models.PayRequest) (*models.PaymentResponse, error) {
	s.logger.Info("Pay: paying appointment id=%d by user=%d, method=%s", appointmentID, req.UserID, req.Method)

	method := domain.PaymentMethod(req.Method)
	if !method.Valid() {
		return nil, fmt.Errorf("%w: method must be card or cash", ErrInvalidInput)
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Pay: appointment id=%d not found", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Pay: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Pay - get appointment: %v", ErrInternal, err)
	}

	if err := s.checkPayer(ctx, appointment, method, req.UserID); err != nil {
		return nil, err
	}

	if !appointment.CanBePaid() {
		s.logger.Warn("Pay: appointment id=%d cannot be paid, status=%s", appointmentID, appointment.Status)
		return nil, ErrCannotPay
	}

	paid, err := s.paymentRepo.HasSucceeded(ctx, appointmentID)
	if err != nil {
		s.logger.Error("Pay: failed to check payments of appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Pay - check payments: %v", ErrInternal, err)
	}
	if paid {
		s.logger.Warn("Pay: appointment id=%d already paid", appointmentID)
		return nil, ErrAlreadyPaid
	}

	if method == domain.PaymentMethodCard {
		return s.payByCard(ctx, appointment)
	}

	payment := &domain.Payment{
		AppointmentID: appointment.ID,
		SalonID:       appointment.SalonID,
		ClientID:      appointment.ClientID,
		Amount:        appointment.ServicePrice,
		Currency:      s.currency,
		Method:        domain.PaymentMethodCash,
		Status:        domain.PaymentStatusSucceeded,
	}

	created, err := s.paymentRepo.Create(ctx, payment)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrAlreadyPaid) {
			s.logger.Warn("Pay: appointment id=%d was paid concurrently", appointmentID)
			return nil, ErrAlreadyPaid
		}
		s.logger.Error("Pay: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Pay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Pay: successfully created payment id=%d for appointment id=%d, status=%s", created.ID, appointmentID, created.Status)
	return models.FromDomainPayment(created), nil
}

// List получает оплаты салона за период
// Доступно только владельцу и администраторам салона
func (s *Service) List(ctx context.Context, req *models.ListPaymentsRequest) (*models.PaymentListResponse, error) {
	s.logger.Info("List: fetching payments for salon=%d by user=%d", req.SalonID, req.UserID)

	period, err := domain.ResolvePeriod(req.StartDate, req.EndDate, s.timeProvider.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	a, err := s.resolve(ctx, "List", req.SalonID, req.UserID)
	if err != nil {
		return nil, err
	}
	if !a.Role.CanManageSalon() {
		s.logger.Warn("List: user=%d with role=%s cannot read payments of salon=%d", req.UserID, a.Role, req.SalonID)
		return nil, ErrAccessDenied
	}

	from, to := period.Bounds()
	list, err := s.paymentRepo.GetBySalonAndPeriod(ctx, req.SalonID, from, to)
	if err != nil {
		s.logger.Error("List: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d payments for salon=%d", len(list), req.SalonID)
	return models.FromDomainPaymentList(period.Start, period.End, list), nil
}

// Вспомогательные методы

// checkPayer проверяет, кто может провести оплату выбранным способом
func (s *Service) checkPayer(ctx context.Context, appointment *domain.Appointment, method domain.PaymentMethod, userID int64) error {
	switch method {
	case domain.PaymentMethodCard:
		if appointment.ClientID != userID {
			s.logger.Warn("Pay: user=%d is not the client of appointment id=%d", userID, appointment.ID)
			return ErrAccessDenied
		}
	case domain.PaymentMethodCash:
		a, err := s.resolve(ctx, "Pay", appointment.SalonID, userID)
		if err != nil {
			return err
		}
		if !a.Role.IsStaff() {
			s.logger.Warn("Pay: user=%d is not a staff member of salon=%d", userID, appointment.SalonID)
			return ErrAccessDenied
		}
	}
	return nil
}

// payByCard не плодит оплаты на каждый вызов: незавершённый PaymentIntent сверяется
// со Stripe. Успешный переводит оплату в succeeded, отменённый в failed и открывает новую попытку
func (s *Service) payByCard(ctx context.Context, appointment *domain.Appointment) (*models.PaymentResponse, error) {
	attempts, err := s.paymentRepo.GetCardAttempts(ctx, appointment.ID)
	if err != nil {
		s.logger.Error("Pay: failed to get card payments of appointment id=%d: %v", appointment.ID, err)
		return nil, fmt.Errorf("%w: Pay - get card payments: %v", ErrInternal, err)
	}

	for _, p := range attempts {
		if p.Status != domain.PaymentStatusPending || p.ExternalID == nil {
			continue
		}
		resp, err := s.syncPending(ctx, p)
		if err != nil || resp != nil {
			return resp, err
		}
	}

	intent, err := s.createIntent(ctx, appointment, len(attempts)+1)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		AppointmentID: appointment.ID,
		SalonID:       appointment.SalonID,
		ClientID:      appointment.ClientID,
		Amount:        appointment.ServicePrice,
		Currency:      s.currency,
		Method:        domain.PaymentMethodCard,
		Status:        domain.PaymentStatusPending,
		ExternalID:    &intent.ID,
	}

	created, err := s.paymentRepo.Create(ctx, payment)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrDuplicateExternalID) {
			// Параллельный запрос с тем же ключом идемпотентности уже сохранил этот PaymentIntent
			s.logger.Warn("Pay: payment intent %s of appointment id=%d was stored concurrently", intent.ID, appointment.ID)
			return s.findByIntent(ctx, appointment.ID, intent)
		}
		s.logger.Error("Pay: repository error for appointment id=%d: %v", appointment.ID, err)
		return nil, fmt.Errorf("%w: Pay - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainPayment(created)
	resp.ClientSecret = &intent.ClientSecret

	s.logger.Info("Pay: successfully created payment id=%d for appointment id=%d, status=%s", created.ID, appointment.ID, created.Status)
	return resp, nil
}

// syncPending сверяет незавершённую оплату со Stripe
// nil без ошибки означает, что PaymentIntent отменён и нужна новая попытка
func (s *Service) syncPending(ctx context.Context, p *domain.Payment) (*models.PaymentResponse, error) {
	intent, err := s.gateway.GetIntent(ctx, *p.ExternalID)
	if err != nil {
		if errors.Is(err, stripepay.ErrNotConfigured) {
			return nil, ErrPaymentUnavailable
		}
		s.logger.Error("Pay: failed to get payment intent %s: %v", *p.ExternalID, err)
		return nil, fmt.Errorf("%w: Pay - get intent: %v", ErrInternal, err)
	}

	switch intent.Status {
	case stripepay.IntentStatusSucceeded:
		updated, err := s.paymentRepo.UpdateStatus(ctx, p.ID, domain.PaymentStatusSucceeded)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrAlreadyPaid) {
				s.logger.Warn("Pay: appointment id=%d was paid concurrently", p.AppointmentID)
				return nil, ErrAlreadyPaid
			}
			s.logger.Error("Pay: failed to confirm payment id=%d: %v", p.ID, err)
			return nil, fmt.Errorf("%w: Pay - confirm payment: %v", ErrInternal, err)
		}
		s.logger.Info("Pay: payment id=%d of appointment id=%d confirmed by stripe", p.ID, p.AppointmentID)
		return models.FromDomainPayment(updated), nil

	case stripepay.IntentStatusCanceled:
		if _, err := s.paymentRepo.UpdateStatus(ctx, p.ID, domain.PaymentStatusFailed); err != nil {
			s.logger.Error("Pay: failed to mark payment id=%d as failed: %v", p.ID, err)
			return nil, fmt.Errorf("%w: Pay - fail payment: %v", ErrInternal, err)
		}
		s.logger.Warn("Pay: payment intent %s of appointment id=%d was canceled", intent.ID, p.AppointmentID)
		return nil, nil
	}

	s.logger.Info("Pay: payment id=%d of appointment id=%d is still pending, intent status=%s", p.ID, p.AppointmentID, intent.Status)
	resp := models.FromDomainPayment(p)
	resp.ClientSecret = &intent.ClientSecret
	return resp, nil
}

func (s *Service) findByIntent(ctx context.Context, appointmentID int64, intent *stripepay.Intent) (*models.PaymentResponse, error) {
	attempts, err := s.paymentRepo.GetCardAttempts(ctx, appointmentID)
	if err != nil {
		s.logger.Error("Pay: failed to get card payments of appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Pay - get card payments: %v", ErrInternal, err)
	}

	for _, p := range attempts {
		if p.ExternalID != nil && *p.ExternalID == intent.ID {
			resp := models.FromDomainPayment(p)
			resp.ClientSecret = &intent.ClientSecret
			return resp, nil
		}
	}

	s.logger.Error("Pay: payment with intent %s of appointment id=%d disappeared", intent.ID, appointmentID)
	return nil, fmt.Errorf("%w: Pay - payment with intent %s not found", ErrInternal, intent.ID)
}

func (s *Service) createIntent(ctx context.Context, appointment *domain.Appointment, attempt int) (*stripepay.Intent, error) {
	intent, err := s.gateway.CreateIntent(ctx, stripepay.IntentRequest{
		AppointmentID:  appointment.ID,
		SalonID:        appointment.SalonID,
		ClientID:       appointment.ClientID,
		AmountMinor:    domain.AmountMinorUnits(appointment.ServicePrice),
		Currency:       s.currency,
		IdempotencyKey: fmt.Sprintf("appointment-payment-%d-%d", appointment.ID, attempt),
	})
	if err != nil {
		switch {
		case errors.Is(err, stripepay.ErrNotConfigured):
			return nil, ErrPaymentUnavailable
		case errors.Is(err, stripepay.ErrCardDeclined):
			return nil, fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
		}
		s.logger.Error("Pay: failed to create payment intent for appointment id=%d: %v", appointment.ID, err)
		return nil, fmt.Errorf("%w: Pay - create intent: %v", ErrInternal, err)
	}
	return intent, nil
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
