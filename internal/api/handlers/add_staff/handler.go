package add_staff

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/staff"
	"github.com/m04kA/SMC-SalonService/internal/service/staff/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidData        = "некорректные данные сотрудника"
	msgSalonNotFound      = "салон не найден"
	msgForbidden          = "доступ запрещен"
	msgAlreadyExists      = "пользователь уже работает в салоне"
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

// Handle POST /api/v1/salons/{salonId}/staff
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathID(r, "salonId")
	if err != nil {
		h.logger.Warn("POST /salons/{id}/staff - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /salons/{id}/staff - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.AddStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/staff - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.SalonID = salonID

	result, err := h.service.Add(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrInvalidInput):
			h.logger.Warn("POST /salons/{id}/staff - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, staff.ErrSalonNotFound):
			h.logger.Warn("POST /salons/{id}/staff - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, staff.ErrAccessDenied):
			h.logger.Warn("POST /salons/{id}/staff - Access denied: salon_id=%d, user_id=%d, role=%s",
				salonID, userID, req.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, staff.ErrStaffAlreadyExists):
			h.logger.Warn("POST /salons/{id}/staff - Already exists: salon_id=%d, member_user_id=%d",
				salonID, req.MemberUserID)
			handlers.RespondConflict(w, msgAlreadyExists)

		default:
			h.logger.Error("POST /salons/{id}/staff - Failed to add staff: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons/{id}/staff - Staff added successfully: salon_id=%d, staff_id=%d", salonID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
