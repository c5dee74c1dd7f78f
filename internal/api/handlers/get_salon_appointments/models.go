package get_salon_appointments

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// date задает один день, startDate/endDate период; одновременно их указывать нельзя.
func ToServiceRequest(r *http.Request, salonID, userID int64) (*models.GetSalonAppointmentsRequest, error) {
	req := &models.GetSalonAppointmentsRequest{
		UserID:  userID,
		SalonID: salonID,
		Status:  handlers.QueryString(r, "status"),
	}

	staffID, err := handlers.QueryID(r, "staffId")
	if err != nil {
		return nil, fmt.Errorf("staffId: %w", err)
	}
	req.StaffID = staffID

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		return nil, err
	}
	startDate, err := handlers.QueryDate(r, "startDate")
	if err != nil {
		return nil, err
	}
	endDate, err := handlers.QueryDate(r, "endDate")
	if err != nil {
		return nil, err
	}

	switch {
	case date != nil && (startDate != nil || endDate != nil):
		return nil, errors.New("date cannot be combined with startDate/endDate")
	case date != nil:
		req.StartDate = date
		req.EndDate = date
	default:
		req.StartDate = startDate
		req.EndDate = endDate
	}

	if raw := r.URL.Query().Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
