package get_salon_analytics

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	getSalonAnalytics "github.com/m04kA/SMC-SalonService/internal/usecase/get_salon_analytics"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidPeriod  = "некорректный период (YYYY-MM-DD, startDate не позже endDate)"
	msgSalonNotFound  = "салон не найден"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	useCase GetSalonAnalyticsUseCase
	logger  Logger
}

func NewHandler(useCase GetSalonAnalyticsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/analytics
// Query params: startDate, endDate (опционально, по умолчанию последние 30 дней)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathID(r, "salonId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/analytics - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /salons/{id}/analytics - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	startDate, err := handlers.QueryDate(r, "startDate")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/analytics - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	endDate, err := handlers.QueryDate(r, "endDate")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/analytics - Invalid end date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSalonAnalytics.Request{
		UserID:    userID,
		SalonID:   salonID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSalonAnalytics.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/analytics - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, getSalonAnalytics.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/analytics - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, getSalonAnalytics.ErrAccessDenied):
			h.logger.Warn("GET /salons/{id}/analytics - Access denied: salon_id=%d, user_id=%d", salonID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /salons/{id}/analytics - Failed to build analytics: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /salons/{id}/analytics - Analytics built successfully: salon_id=%d, period=%s..%s, appointments=%d",
		salonID, response.StartDate, response.EndDate, response.TotalAppointments)
	handlers.RespondJSON(w, http.StatusOK, response)
}
