package create_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/payments"
	"github.com/m04kA/SMC-SalonService/internal/service/payments/models"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidMethod        = "способ оплаты должен быть card или cash"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgCannotPay            = "запись не может быть оплачена"
	msgAlreadyPaid          = "запись уже оплачена"
	msgDeclined             = "платеж отклонен"
	msgUnavailable          = "оплата картой временно недоступна"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/payments - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/{id}/payments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.PayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Pay(r.Context(), appointmentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/payments - Invalid method: %s", req.Method)
			handlers.RespondBadRequest(w, msgInvalidMethod)

		case errors.Is(err, payments.ErrAppointmentNotFound), errors.Is(err, payments.ErrSalonNotFound):
			h.logger.Warn("POST /appointments/{id}/payments - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("POST /appointments/{id}/payments - Access denied: appointment_id=%d, user_id=%d, method=%s",
				appointmentID, userID, req.Method)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, payments.ErrCannotPay):
			h.logger.Warn("POST /appointments/{id}/payments - Cannot pay: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgCannotPay)

		case errors.Is(err, payments.ErrAlreadyPaid):
			h.logger.Warn("POST /appointments/{id}/payments - Already paid: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgAlreadyPaid)

		case errors.Is(err, payments.ErrPaymentDeclined):
			h.logger.Warn("POST /appointments/{id}/payments - Payment declined: appointment_id=%d, %v", appointmentID, err)
			handlers.RespondError(w, http.StatusPaymentRequired, msgDeclined)

		case errors.Is(err, payments.ErrPaymentUnavailable):
			h.logger.Warn("POST /appointments/{id}/payments - Card payments unavailable: appointment_id=%d", appointmentID)
			handlers.RespondServiceUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("POST /appointments/{id}/payments - Failed to pay: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/payments - Payment created successfully: appointment_id=%d, payment_id=%d, status=%s",
		appointmentID, result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
