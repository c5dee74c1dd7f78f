package get_user_appointments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeService struct {
	req *models.GetClientAppointmentsRequest
}

func (f *fakeService) GetClientAppointments(_ context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	f.req = req
	return &models.AppointmentListResponse{Appointments: []models.AppointmentResponse{{ID: 1}}}, nil
}

func serve(svc *fakeService, url, pathUserID string, callerID int64) *httptest.ResponseRecorder {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, url, nil), map[string]string{"userId": pathUserID})
	req = req.WithContext(middleware.WithUserID(req.Context(), callerID))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_OwnHistory(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/?status=completed", "500", 500)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.req.Status)
	assert.Equal(t, "completed", *svc.req.Status)

	var resp models.AppointmentListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(1), resp.Appointments[0].ID)
}

func TestHandle_OtherUserForbidden(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/", "501", 500)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, svc.req)
}
