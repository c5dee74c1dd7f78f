package get_staff_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/staff"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgInvalidStaffID = "некорректный ID мастера"
	msgSalonNotFound  = "салон не найден"
	msgStaffNotFound  = "мастер не найден"
)

type Handler struct {
	service StaffService
	logger  Logger
}

func NewHandler(service StaffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/staff/{staffId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathID(r, "salonId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/staff/{id}/schedule - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	staffID, err := handlers.PathID(r, "staffId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/staff/{id}/schedule - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	result, err := h.service.GetSchedule(r.Context(), salonID, staffID)
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/staff/{id}/schedule - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, staff.ErrStaffNotFound):
			h.logger.Warn("GET /salons/{id}/staff/{id}/schedule - Staff not found: salon_id=%d, staff_id=%d",
				salonID, staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		default:
			h.logger.Error("GET /salons/{id}/staff/{id}/schedule - Failed to get schedule: staff_id=%d, error=%v",
				staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/staff/{id}/schedule - Schedule retrieved successfully: staff_id=%d, windows=%d",
		staffID, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}
