package reviews

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	reviewRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/review"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonService/internal/service/reviews/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

const clientID int64 = 500

type fakeReviews struct {
	byAppointment map[int64]*domain.Review
	bySalon       map[int64][]*domain.Review
}

func (f *fakeReviews) Create(_ context.Context, rv *domain.Review) (*domain.Review, error) {
	if _, ok := f.byAppointment[rv.AppointmentID]; ok {
		return nil, reviewRepo.ErrReviewAlreadyExists
	}
	rv.ID = int64(len(f.byAppointment) + 1)
	f.byAppointment[rv.AppointmentID] = rv
	return rv, nil
}

func (f *fakeReviews) GetBySalonID(_ context.Context, salonID int64) ([]*domain.Review, error) {
	return f.bySalon[salonID], nil
}

type fakeAppointments map[int64]*domain.Appointment

func (f fakeAppointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if a, ok := f[id]; ok {
		return a, nil
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

type fakeSalons struct{}

func (fakeSalons) GetByID(_ context.Context, id int64) (*domain.Salon, error) {
	if id == 1 || id == 2 {
		return &domain.Salon{ID: id}, nil
	}
	return nil, salonRepo.ErrSalonNotFound
}

func newService() (*Service, *fakeReviews) {
	reviews := &fakeReviews{
		byAppointment: map[int64]*domain.Review{},
		bySalon: map[int64][]*domain.Review{
			1: {{ID: 1, SalonID: 1, Rating: 5}, {ID: 2, SalonID: 1, Rating: 4}, {ID: 3, SalonID: 1, Rating: 3}},
		},
	}
	appointments := fakeAppointments{
		1: {ID: 1, SalonID: 1, StaffID: 30, ServiceID: 7, ClientID: clientID, Status: domain.StatusCompleted},
		2: {ID: 2, SalonID: 1, StaffID: 30, ServiceID: 7, ClientID: clientID, Status: domain.StatusConfirmed},
		3: {ID: 3, SalonID: 1, StaffID: 30, ServiceID: 7, ClientID: clientID, Status: domain.StatusCancelledByClient},
	}
	return NewService(reviews, appointments, fakeSalons{}, logger.NewNop()), reviews
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name          string
		appointmentID int64
		req           models.CreateReviewRequest
		wantErr       error
	}{
		{"completed appointment", 1, models.CreateReviewRequest{UserID: clientID, Rating: 5, Comment: ptr.Ptr(" Отлично ")}, nil},
		{"not the client", 1, models.CreateReviewRequest{UserID: 600, Rating: 5}, ErrAccessDenied},
		{"confirmed appointment", 2, models.CreateReviewRequest{UserID: clientID, Rating: 5}, ErrNotCompleted},
		{"cancelled appointment", 3, models.CreateReviewRequest{UserID: clientID, Rating: 1}, ErrNotCompleted},
		{"missing appointment", 9, models.CreateReviewRequest{UserID: clientID, Rating: 5}, ErrAppointmentNotFound},
		{"rating too low", 1, models.CreateReviewRequest{UserID: clientID, Rating: 0}, ErrInvalidInput},
		{"rating too high", 1, models.CreateReviewRequest{UserID: clientID, Rating: 6}, ErrInvalidInput},
		{"comment too long", 1, models.CreateReviewRequest{UserID: clientID, Rating: 4,
			Comment: ptr.Ptr(strings.Repeat("я", domain.MaxReviewCommentLength+1))}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService()
			req := tt.req

			resp, err := svc.Create(context.Background(), tt.appointmentID, &req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.byAppointment)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(30), resp.StaffID)
			assert.Equal(t, int64(7), resp.ServiceID)
			require.NotNil(t, resp.Comment)
			assert.Equal(t, "Отлично", *resp.Comment)
		})
	}
}

func TestCreate_OncePerAppointment(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), 1, &models.CreateReviewRequest{UserID: clientID, Rating: 5})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 1, &models.CreateReviewRequest{UserID: clientID, Rating: 1})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestCreate_BlankCommentIsDropped(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.Create(context.Background(), 1, &models.CreateReviewRequest{UserID: clientID, Rating: 3, Comment: ptr.Ptr("   ")})
	require.NoError(t, err)
	assert.Nil(t, resp.Comment)
}

func TestList(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.ReviewCount)
	assert.InDelta(t, 4.0, resp.AverageRating, 1e-9)

	empty, err := svc.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Zero(t, empty.ReviewCount)
	assert.Zero(t, empty.AverageRating)
	assert.NotNil(t, empty.Reviews)

	_, err = svc.List(context.Background(), 99)
	assert.ErrorIs(t, err, ErrSalonNotFound)
}
