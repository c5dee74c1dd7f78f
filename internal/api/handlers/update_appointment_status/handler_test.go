package update_appointment_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeService struct {
	req *models.UpdateStatusRequest
	err error
}

func (f *fakeService) UpdateStatus(_ context.Context, _ int64, req *models.UpdateStatusRequest) error {
	f.req = req
	return f.err
}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/1/status", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"appointmentId": "1"})
	req = req.WithContext(middleware.WithUserID(req.Context(), 200))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, `{"status":"confirmed"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, &models.UpdateStatusRequest{UserID: 200, Status: "confirmed"}, svc.req)

	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"broken body", `{"status":`, nil, http.StatusBadRequest},
		{"unknown status", `{"status":"done"}`, appointments.ErrInvalidInput, http.StatusBadRequest},
		{"invalid transition", `{"status":"completed"}`, appointments.ErrInvalidTransition, http.StatusConflict},
		{"access denied", `{"status":"confirmed"}`, appointments.ErrAccessDenied, http.StatusForbidden},
		{"not found", `{"status":"confirmed"}`, appointments.ErrAppointmentNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
