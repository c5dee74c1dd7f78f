package create_payment

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/payments"
	"github.com/m04kA/SMC-SalonService/internal/service/payments/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type fakeService struct {
	req *models.PayRequest
	err error
}

func (f *fakeService) Pay(_ context.Context, appointmentID int64, req *models.PayRequest) (*models.PaymentResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.PaymentResponse{
		ID:            1,
		AppointmentID: appointmentID,
		Method:        req.Method,
		Status:        "pending",
		ClientSecret:  ptr.Ptr("pi_123_secret_456"),
	}, nil
}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/7/payments", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"appointmentId": "7"})
	req = req.WithContext(middleware.WithUserID(req.Context(), 500))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Card(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, `{"method":"card"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(500), svc.req.UserID)
	assert.Contains(t, rec.Body.String(), `"clientSecret":"pi_123_secret_456"`)
}

func TestHandle_UserIDFromBodyRejected(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, `{"method":"cash","userId":100}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.req)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{payments.ErrInvalidInput, http.StatusBadRequest},
		{payments.ErrAppointmentNotFound, http.StatusNotFound},
		{payments.ErrAccessDenied, http.StatusForbidden},
		{payments.ErrCannotPay, http.StatusConflict},
		{payments.ErrAlreadyPaid, http.StatusConflict},
		{fmt.Errorf("%w: card_declined", payments.ErrPaymentDeclined), http.StatusPaymentRequired},
		{payments.ErrPaymentUnavailable, http.StatusServiceUnavailable},
		{payments.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, `{"method":"card"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
