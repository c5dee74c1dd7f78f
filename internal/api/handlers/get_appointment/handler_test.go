package get_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeService struct {
	userID int64
	err    error
}

func (f *fakeService) GetByID(_ context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		withUser   bool
		err        error
		wantStatus int
	}{
		{"ok", "1", true, nil, http.StatusOK},
		{"bad id", "abc", true, nil, http.StatusBadRequest},
		{"no user", "1", false, nil, http.StatusUnauthorized},
		{"not found", "1", true, appointments.ErrAppointmentNotFound, http.StatusNotFound},
		{"stranger", "1", true, appointments.ErrAccessDenied, http.StatusForbidden},
		{"internal", "1", true, appointments.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/appointments/"+tt.id, nil),
				map[string]string{"appointmentId": tt.id})
			if tt.withUser {
				req = req.WithContext(middleware.WithUserID(req.Context(), 500))
			}
			rec := httptest.NewRecorder()

			NewHandler(svc, logger.NewNop()).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, int64(500), svc.userID)
			}
		})
	}
}
