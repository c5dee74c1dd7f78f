package get_salon_analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	getSalonAnalytics "github.com/m04kA/SMC-SalonService/internal/usecase/get_salon_analytics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeUseCase struct {
	req *getSalonAnalytics.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getSalonAnalytics.Request) (*getSalonAnalytics.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}

	summary := domain.NewAnalyticsSummary()
	summary.TotalAppointments = 3
	summary.AppointmentsByStatus[domain.StatusCompleted] = 2
	summary.AppointmentsByStatus[domain.StatusNoShow] = 1
	summary.AppointmentsByStaff[30] = 3
	summary.TotalRevenue = 3000
	summary.RevenueByMethod[domain.PaymentMethodCash] = 3000
	summary.RatingDistribution[5] = 1

	return &getSalonAnalytics.Response{
		SalonID:   req.SalonID,
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Summary:   summary,
	}, nil
}

func serve(uc *fakeUseCase, url string) *httptest.ResponseRecorder {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, url, nil), map[string]string{"salonId": "1"})
	req = req.WithContext(middleware.WithUserID(req.Context(), 100))
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/?startDate=2026-03-02&endDate=2026-03-31")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(100), uc.req.UserID)
	require.NotNil(t, uc.req.StartDate)
	assert.Equal(t, "2026-03-02", uc.req.StartDate.Format(domain.DateFormat))

	var resp AnalyticsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-03-02", resp.StartDate)
	assert.Equal(t, 3, resp.TotalAppointments)
	assert.Equal(t, 2, resp.AppointmentsByStatus["completed"])
	assert.Equal(t, 3, resp.AppointmentsByStaff["30"])
	assert.Equal(t, 3000.0, resp.RevenueByMethod["cash"])
	assert.Len(t, resp.RatingDistribution, 5)
	assert.Equal(t, 1, resp.RatingDistribution["5"])
}

func TestHandle_DefaultPeriod(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, uc.req.StartDate)
	assert.Nil(t, uc.req.EndDate)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		err        error
		wantStatus int
	}{
		{"bad date", "/?startDate=yesterday", nil, http.StatusBadRequest},
		{"inverted period", "/", getSalonAnalytics.ErrInvalidInput, http.StatusBadRequest},
		{"not a manager", "/", getSalonAnalytics.ErrAccessDenied, http.StatusForbidden},
		{"unknown salon", "/", getSalonAnalytics.ErrSalonNotFound, http.StatusNotFound},
		{"internal", "/", getSalonAnalytics.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.url)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
