package staff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SalonService/internal/service/access"
	"github.com/m04kA/SMC-SalonService/internal/service/staff/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

const (
	ownerID    int64 = 100
	adminID    int64 = 200
	employeeID int64 = 300
	otherEmpID int64 = 301
	clientID   int64 = 500
)

type fakeStaff struct {
	members map[int64]*domain.Staff
	created []*domain.Staff
}

func newFakeStaff() *fakeStaff {
	return &fakeStaff{members: map[int64]*domain.Staff{
		20: {ID: 20, SalonID: 1, UserID: adminID, Name: "Анна", Role: domain.StaffRoleAdmin, IsActive: true},
		30: {ID: 30, SalonID: 1, UserID: employeeID, Name: "Ольга", Role: domain.StaffRoleEmployee, IsActive: true},
		31: {ID: 31, SalonID: 1, UserID: otherEmpID, Name: "Ирина", Role: domain.StaffRoleEmployee, IsActive: true},
		32: {ID: 32, SalonID: 1, UserID: 302, Name: "Уволена", Role: domain.StaffRoleEmployee, IsActive: false},
		40: {ID: 40, SalonID: 2, UserID: 400, Name: "Чужая", Role: domain.StaffRoleEmployee, IsActive: true},
	}}
}

func (f *fakeStaff) Create(_ context.Context, s *domain.Staff) (*domain.Staff, error) {
	for _, m := range f.members {
		if m.SalonID == s.SalonID && m.UserID == s.UserID {
			return nil, staffRepo.ErrStaffAlreadyExists
		}
	}
	c := *s
	c.ID = 50
	f.created = append(f.created, &c)
	return &c, nil
}

func (f *fakeStaff) GetByID(_ context.Context, id int64) (*domain.Staff, error) {
	if m, ok := f.members[id]; ok {
		return m, nil
	}
	return nil, staffRepo.ErrStaffNotFound
}

func (f *fakeStaff) GetBySalonID(_ context.Context, salonID int64, activeOnly bool) ([]*domain.Staff, error) {
	var result []*domain.Staff
	for _, m := range f.members {
		if m.SalonID == salonID && (!activeOnly || m.IsActive) {
			result = append(result, m)
		}
	}
	return result, nil
}

type fakeSchedule struct {
	windows  map[int64][]*domain.WorkingWindow
	replaced map[int64][]*domain.WorkingWindow
	err      error
}

func (f *fakeSchedule) GetByStaffID(_ context.Context, staffID int64) ([]*domain.WorkingWindow, error) {
	return f.windows[staffID], nil
}

func (f *fakeSchedule) ReplaceForStaff(_ context.Context, staffID int64, windows []*domain.WorkingWindow) ([]*domain.WorkingWindow, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.replaced[staffID] = windows
	return windows, nil
}

type fakeSalons struct{}

func (fakeSalons) GetByID(_ context.Context, id int64) (*domain.Salon, error) {
	switch id {
	case 1, 2:
		return &domain.Salon{ID: id, OwnerID: ownerID, IsActive: true}, nil
	case 3:
		return &domain.Salon{ID: id, OwnerID: ownerID, IsActive: false}, nil
	}
	return nil, salonRepo.ErrSalonNotFound
}

type fakeResolver struct {
	staff *fakeStaff
}

func (f fakeResolver) Resolve(_ context.Context, salonID, userID int64) (*access.Access, error) {
	if salonID != 1 {
		return nil, access.ErrSalonNotFound
	}
	a := &access.Access{Salon: &domain.Salon{ID: 1, OwnerID: ownerID}, Role: domain.RoleClient}
	for _, m := range f.staff.members {
		if m.SalonID == salonID && m.UserID == userID && m.IsActive {
			a.Staff = m
			a.Role = domain.RoleFromStaff(m.Role)
		}
	}
	if userID == ownerID {
		a.Role = domain.RoleOwner
	}
	return a, nil
}

type fakeTx struct {
	calls int
}

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixture struct {
	svc      *Service
	staff    *fakeStaff
	schedule *fakeSchedule
	tx       *fakeTx
}

func newFixture() *fixture {
	staff := newFakeStaff()
	schedule := &fakeSchedule{
		windows: map[int64][]*domain.WorkingWindow{
			30: {
				{ID: 1, StaffID: 30, Weekday: time.Monday, Start: "09:00", End: "18:00", IsActive: true},
				{ID: 2, StaffID: 30, Weekday: time.Sunday, Start: "10:00", End: "14:00", IsActive: false},
			},
		},
		replaced: map[int64][]*domain.WorkingWindow{},
	}
	tx := &fakeTx{}
	svc := NewService(staff, schedule, fakeSalons{}, fakeResolver{staff: staff}, tx, logger.NewNop())
	return &fixture{svc: svc, staff: staff, schedule: schedule, tx: tx}
}

func TestList(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, resp.Staff, 3)
	for _, m := range resp.Staff {
		assert.True(t, m.IsActive)
		assert.Equal(t, int64(1), m.SalonID)
	}

	_, err = f.svc.List(context.Background(), 3)
	assert.ErrorIs(t, err, ErrSalonNotFound)

	_, err = f.svc.List(context.Background(), 99)
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name    string
		req     models.AddStaffRequest
		wantErr error
	}{
		{"owner adds admin", models.AddStaffRequest{UserID: ownerID, SalonID: 1, MemberUserID: 700, Name: "Мария", Role: "admin"}, nil},
		{"admin adds employee", models.AddStaffRequest{UserID: adminID, SalonID: 1, MemberUserID: 700, Name: "Мария", Role: "employee"}, nil},
		{"admin cannot add admin", models.AddStaffRequest{UserID: adminID, SalonID: 1, MemberUserID: 700, Name: "Мария", Role: "admin"}, ErrAccessDenied},
		{"employee cannot add", models.AddStaffRequest{UserID: employeeID, SalonID: 1, MemberUserID: 700, Name: "Мария", Role: "employee"}, ErrAccessDenied},
		{"client cannot add", models.AddStaffRequest{UserID: clientID, SalonID: 1, MemberUserID: 700, Name: "Мария", Role: "employee"}, ErrAccessDenied},
		{"already member", models.AddStaffRequest{UserID: ownerID, SalonID: 1, MemberUserID: employeeID, Name: "Ольга", Role: "employee"}, ErrStaffAlreadyExists},
		{"unknown role", models.AddStaffRequest{UserID: ownerID, SalonID: 1, MemberUserID: 700, Name: "Мария", Role: "owner"}, ErrInvalidInput},
		{"empty name", models.AddStaffRequest{UserID: ownerID, SalonID: 1, MemberUserID: 700, Name: " ", Role: "employee"}, ErrInvalidInput},
		{"missing user", models.AddStaffRequest{UserID: ownerID, SalonID: 1, Name: "Мария", Role: "employee"}, ErrInvalidInput},
		{"unknown salon", models.AddStaffRequest{UserID: ownerID, SalonID: 9, MemberUserID: 700, Name: "Мария", Role: "employee"}, ErrSalonNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := tt.req

			resp, err := f.svc.Add(context.Background(), &req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, f.staff.created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.req.Role, resp.Role)
			assert.Equal(t, int64(700), resp.UserID)
			assert.True(t, resp.IsActive)
		})
	}
}

func TestGetSchedule(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.GetSchedule(context.Background(), 1, 30)
	require.NoError(t, err)
	require.Len(t, resp.Windows, 2)
	assert.Equal(t, 1, resp.Windows[0].Weekday)
	assert.Equal(t, "09:00", resp.Windows[0].StartTime)
	assert.False(t, resp.Windows[1].IsActive)

	empty, err := f.svc.GetSchedule(context.Background(), 1, 31)
	require.NoError(t, err)
	assert.NotNil(t, empty.Windows)
	assert.Empty(t, empty.Windows)

	_, err = f.svc.GetSchedule(context.Background(), 1, 40)
	assert.ErrorIs(t, err, ErrStaffNotFound, "staff of another salon")

	_, err = f.svc.GetSchedule(context.Background(), 1, 32)
	assert.ErrorIs(t, err, ErrStaffNotFound, "inactive staff")
}

func TestReplaceSchedule_Access(t *testing.T) {
	week := []models.WorkingWindowRequest{
		{Weekday: 1, StartTime: "10:00", EndTime: "19:00", IsActive: true},
		{Weekday: 2, StartTime: "10:00", EndTime: "19:00", IsActive: true},
		{Weekday: 0, IsActive: false},
	}

	tests := []struct {
		name    string
		userID  int64
		wantErr error
	}{
		{"owner", ownerID, nil},
		{"admin", adminID, nil},
		{"employee edits own", employeeID, nil},
		{"other employee", otherEmpID, ErrAccessDenied},
		{"client", clientID, ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			resp, err := f.svc.ReplaceSchedule(context.Background(), &models.ReplaceScheduleRequest{
				UserID: tt.userID, SalonID: 1, StaffID: 30, Windows: week,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, f.schedule.replaced)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, f.tx.calls)
			assert.Len(t, resp.Windows, 3)
			require.Len(t, f.schedule.replaced[30], 3)
			assert.Equal(t, time.Monday, f.schedule.replaced[30][0].Weekday)
			assert.Equal(t, int64(30), f.schedule.replaced[30][0].StaffID)
		})
	}
}

func TestReplaceSchedule_Validation(t *testing.T) {
	tests := []struct {
		name    string
		windows []models.WorkingWindowRequest
	}{
		{"weekday out of range", []models.WorkingWindowRequest{{Weekday: 7, StartTime: "09:00", EndTime: "18:00", IsActive: true}}},
		{"negative weekday", []models.WorkingWindowRequest{{Weekday: -1, StartTime: "09:00", EndTime: "18:00", IsActive: true}}},
		{"duplicate weekday", []models.WorkingWindowRequest{
			{Weekday: 1, StartTime: "09:00", EndTime: "12:00", IsActive: true},
			{Weekday: 1, StartTime: "13:00", EndTime: "18:00", IsActive: true},
		}},
		{"inverted window", []models.WorkingWindowRequest{{Weekday: 1, StartTime: "18:00", EndTime: "09:00", IsActive: true}}},
		{"empty active window", []models.WorkingWindowRequest{{Weekday: 1, StartTime: "09:00", EndTime: "09:00", IsActive: true}}},
		{"bad time", []models.WorkingWindowRequest{{Weekday: 1, StartTime: "9:00", EndTime: "18:00", IsActive: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.svc.ReplaceSchedule(context.Background(), &models.ReplaceScheduleRequest{
				UserID: ownerID, SalonID: 1, StaffID: 30, Windows: tt.windows,
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, f.tx.calls)
		})
	}
}

func TestReplaceSchedule_Errors(t *testing.T) {
	t.Run("staff of another salon", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.ReplaceSchedule(context.Background(), &models.ReplaceScheduleRequest{
			UserID: ownerID, SalonID: 1, StaffID: 40,
		})
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newFixture()
		f.schedule.err = errors.New("deadlock detected")
		_, err := f.svc.ReplaceSchedule(context.Background(), &models.ReplaceScheduleRequest{
			UserID: ownerID, SalonID: 1, StaffID: 30,
		})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
