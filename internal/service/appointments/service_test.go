package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonService/internal/service/access"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

const (
	ownerID    int64 = 100
	adminID    int64 = 200
	employeeID int64 = 300
	otherEmpID int64 = 301
	clientID   int64 = 500
	strangerID int64 = 600
)

type fakeRepo struct {
	items      map[int64]*domain.Appointment
	lastFilter domain.AppointmentsFilter
	cancelled  map[int64]domain.AppointmentStatus
	updated    map[int64]domain.AppointmentStatus
	reasons    map[int64]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items: map[int64]*domain.Appointment{
			1: {ID: 1, SalonID: 1, StaffID: 30, ClientID: clientID, Status: domain.StatusPending,
				AppointmentDate: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), StartTime: "10:00", DurationMinutes: 60},
			2: {ID: 2, SalonID: 1, StaffID: 30, ClientID: clientID, Status: domain.StatusCompleted},
			3: {ID: 3, SalonID: 1, StaffID: 30, ClientID: clientID, Status: domain.StatusConfirmed},
		},
		cancelled: map[int64]domain.AppointmentStatus{},
		updated:   map[int64]domain.AppointmentStatus{},
		reasons:   map[int64]string{},
	}
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if a, ok := f.items[id]; ok {
		return a, nil
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (f *fakeRepo) GetByClientID(_ context.Context, clientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range f.items {
		if a.ClientID == clientID && (status == nil || a.Status == *status) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeRepo) GetBySalonWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	return []*domain.Appointment{f.items[1]}, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	f.updated[id] = status
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, status domain.AppointmentStatus, reason string) error {
	f.cancelled[id] = status
	f.reasons[id] = reason
	return nil
}

type fakeResolver struct{}

func (fakeResolver) Resolve(_ context.Context, salonID, userID int64) (*access.Access, error) {
	if salonID != 1 {
		return nil, access.ErrSalonNotFound
	}
	a := &access.Access{Salon: &domain.Salon{ID: 1, OwnerID: ownerID}, Role: domain.RoleClient}
	switch userID {
	case ownerID:
		a.Role = domain.RoleOwner
	case adminID:
		a.Role = domain.RoleAdmin
		a.Staff = &domain.Staff{ID: 20, SalonID: 1, UserID: adminID, Role: domain.StaffRoleAdmin}
	case employeeID:
		a.Role = domain.RoleEmployee
		a.Staff = &domain.Staff{ID: 30, SalonID: 1, UserID: employeeID, Role: domain.StaffRoleEmployee}
	case otherEmpID:
		a.Role = domain.RoleEmployee
		a.Staff = &domain.Staff{ID: 31, SalonID: 1, UserID: otherEmpID, Role: domain.StaffRoleEmployee}
	}
	return a, nil
}

func newService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, fakeResolver{}, logger.NewNop()), repo
}

func TestGetByID_Access(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		wantErr error
	}{
		{"client owner of appointment", clientID, nil},
		{"salon owner", ownerID, nil},
		{"other employee of salon", otherEmpID, nil},
		{"stranger", strangerID, ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService()
			resp, err := svc.GetByID(context.Background(), 1, tt.userID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "2026-03-03", resp.AppointmentDate)
			assert.Equal(t, "10:00", resp.StartTime)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newService()
	_, err := svc.GetByID(context.Background(), 99, clientID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetClientAppointments_FiltersByStatus(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.GetClientAppointments(context.Background(), &models.GetClientAppointmentsRequest{
		UserID: clientID,
		Status: ptr.Ptr("completed"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(2), resp.Appointments[0].ID)

	_, err = svc.GetClientAppointments(context.Background(), &models.GetClientAppointmentsRequest{
		UserID: clientID,
		Status: ptr.Ptr("in_progress"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetSalonAppointments_RoleScoping(t *testing.T) {
	t.Run("admin sees requested staff", func(t *testing.T) {
		svc, repo := newService()
		_, err := svc.GetSalonAppointments(context.Background(), &models.GetSalonAppointmentsRequest{
			UserID: adminID, SalonID: 1, StaffID: ptr.Ptr(int64(31)),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(31), *repo.lastFilter.StaffID)
	})

	t.Run("employee is limited to own appointments", func(t *testing.T) {
		svc, repo := newService()
		_, err := svc.GetSalonAppointments(context.Background(), &models.GetSalonAppointmentsRequest{
			UserID: employeeID, SalonID: 1,
		})
		require.NoError(t, err)
		require.NotNil(t, repo.lastFilter.StaffID)
		assert.Equal(t, int64(30), *repo.lastFilter.StaffID)
	})

	t.Run("employee cannot read colleague", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.GetSalonAppointments(context.Background(), &models.GetSalonAppointmentsRequest{
			UserID: employeeID, SalonID: 1, StaffID: ptr.Ptr(int64(31)),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("client is denied", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.GetSalonAppointments(context.Background(), &models.GetSalonAppointmentsRequest{
			UserID: clientID, SalonID: 1,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown salon", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.GetSalonAppointments(context.Background(), &models.GetSalonAppointmentsRequest{
			UserID: ownerID, SalonID: 2,
		})
		assert.ErrorIs(t, err, ErrSalonNotFound)
	})

	t.Run("inverted period", func(t *testing.T) {
		svc, _ := newService()
		from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		_, err := svc.GetSalonAppointments(context.Background(), &models.GetSalonAppointmentsRequest{
			UserID: ownerID, SalonID: 1, StartDate: &from, EndDate: &to,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCancel_StatusDependsOnWhoCancels(t *testing.T) {
	tests := []struct {
		name       string
		userID     int64
		wantStatus domain.AppointmentStatus
		wantErr    error
	}{
		{"client", clientID, domain.StatusCancelledByClient, nil},
		{"admin", adminID, domain.StatusCancelledBySalon, nil},
		{"assigned employee", employeeID, domain.StatusCancelledBySalon, nil},
		{"other employee", otherEmpID, "", ErrAccessDenied},
		{"stranger", strangerID, "", ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService()
			err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
				UserID:             tt.userID,
				CancellationReason: "  не успеваю  ",
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.cancelled)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, repo.cancelled[1])
			assert.Equal(t, "не успеваю", repo.reasons[1])
		})
	}
}

func TestCancel_CompletedCannotBeCancelled(t *testing.T) {
	svc, _ := newService()
	err := svc.Cancel(context.Background(), 2, &models.CancelAppointmentRequest{UserID: clientID})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name          string
		appointmentID int64
		userID        int64
		status        string
		wantErr       error
		wantUpdated   domain.AppointmentStatus
		wantCancelled domain.AppointmentStatus
	}{
		{"admin confirms", 1, adminID, "confirmed", nil, domain.StatusConfirmed, ""},
		{"employee completes own", 3, employeeID, "completed", nil, domain.StatusCompleted, ""},
		{"owner declines request", 1, ownerID, "cancelled_by_salon", nil, "", domain.StatusCancelledBySalon},
		{"pending cannot be completed", 1, adminID, "completed", ErrInvalidTransition, "", ""},
		{"completed is final", 2, adminID, "no_show", ErrInvalidTransition, "", ""},
		{"client cannot confirm", 1, clientID, "confirmed", ErrAccessDenied, "", ""},
		{"other employee", 1, otherEmpID, "confirmed", ErrAccessDenied, "", ""},
		{"unknown status", 1, adminID, "done", ErrInvalidInput, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService()
			err := svc.UpdateStatus(context.Background(), tt.appointmentID, &models.UpdateStatusRequest{
				UserID: tt.userID,
				Status: tt.status,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.updated)
				assert.Empty(t, repo.cancelled)
				return
			}
			require.NoError(t, err)
			if tt.wantUpdated != "" {
				assert.Equal(t, tt.wantUpdated, repo.updated[tt.appointmentID])
			}
			if tt.wantCancelled != "" {
				assert.Equal(t, tt.wantCancelled, repo.cancelled[tt.appointmentID])
			}
		})
	}
}
