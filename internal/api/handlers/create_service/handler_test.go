package create_service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeService struct {
	req *models.CreateServiceRequest
	err error
}

func (f *fakeService) Create(_ context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ServiceResponse{ID: 5, SalonID: req.SalonID, Name: req.Name, DurationMinutes: req.DurationMinutes}, nil
}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/salons/1/services", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"salonId": "1"})
	req = req.WithContext(middleware.WithUserID(req.Context(), 100))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, `{"name":"Стрижка","durationMinutes":60,"price":1500}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(100), svc.req.UserID)
	assert.Equal(t, int64(1), svc.req.SalonID)
	assert.Equal(t, 60, svc.req.DurationMinutes)
}

func TestHandle_SalonIDFromBodyRejected(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, `{"salonId":2,"name":"Стрижка","durationMinutes":60,"price":1500}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.req)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{catalog.ErrInvalidInput, http.StatusBadRequest},
		{catalog.ErrSalonNotFound, http.StatusNotFound},
		{catalog.ErrAccessDenied, http.StatusForbidden},
		{catalog.ErrInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := serve(&fakeService{err: tt.err}, `{"name":"Стрижка","durationMinutes":60,"price":1500}`)
		assert.Equal(t, tt.wantStatus, rec.Code, tt.err.Error())
	}
}
