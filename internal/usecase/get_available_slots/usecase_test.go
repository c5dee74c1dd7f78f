package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
	scheduleRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/schedule"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeSalons map[int64]*domain.Salon

func (f fakeSalons) GetByID(_ context.Context, id int64) (*domain.Salon, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, salonRepo.ErrSalonNotFound
}

type fakeStaff map[int64]*domain.Staff

func (f fakeStaff) GetByID(_ context.Context, id int64) (*domain.Staff, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, staffRepo.ErrStaffNotFound
}

type fakeCatalog struct {
	services map[int64]*domain.SalonService
	err      error
}

func (f *fakeCatalog) GetByID(_ context.Context, id int64) (*domain.SalonService, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

type fakeSchedule struct {
	windows map[time.Weekday]*domain.WorkingWindow
	calls   int
}

func (f *fakeSchedule) GetByStaffAndWeekday(_ context.Context, _ int64, weekday time.Weekday) (*domain.WorkingWindow, error) {
	f.calls++
	if w, ok := f.windows[weekday]; ok {
		return w, nil
	}
	return nil, scheduleRepo.ErrWindowNotFound
}

type fakeAppointments struct {
	items   []*domain.Appointment
	err     error
	gotDate time.Time
}

func (f *fakeAppointments) GetByStaffAndDate(_ context.Context, _ int64, date time.Time) ([]*domain.Appointment, error) {
	f.gotDate = date
	return f.items, f.err
}

type countingRecorder struct{ counts []int }

func (r *countingRecorder) SlotsComputed(_ string, count int) {
	r.counts = append(r.counts, count)
}

type fixture struct {
	salons       fakeSalons
	staff        fakeStaff
	catalog      *fakeCatalog
	schedule     *fakeSchedule
	appointments *fakeAppointments
	recorder     *countingRecorder
	uc           *UseCase
}

// Понедельник 2 марта 2026, 08:00
var testNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	f := &fixture{
		salons: fakeSalons{1: {ID: 1, OwnerID: 100, IsActive: true, AdvanceBookingDays: 30}},
		staff:  fakeStaff{10: {ID: 10, SalonID: 1, UserID: 200, Role: domain.StaffRoleEmployee, IsActive: true}},
		catalog: &fakeCatalog{services: map[int64]*domain.SalonService{
			5: {ID: 5, SalonID: 1, Name: "Стрижка", DurationMinutes: 60, IsActive: true},
		}},
		schedule: &fakeSchedule{windows: map[time.Weekday]*domain.WorkingWindow{
			time.Monday:  {StaffID: 10, Weekday: time.Monday, Start: "09:00", End: "12:00", IsActive: true},
			time.Tuesday: {StaffID: 10, Weekday: time.Tuesday, Start: "09:00", End: "12:00", IsActive: true},
			time.Sunday:  {StaffID: 10, Weekday: time.Sunday, Start: "09:00", End: "12:00", IsActive: false},
		}},
		appointments: &fakeAppointments{},
		recorder:     &countingRecorder{},
	}
	f.uc = NewUseCase(f.salons, f.staff, f.catalog, f.schedule, f.appointments, f.recorder, "salon-service", logger.NewNop())
	f.uc.timeProvider = fixedClock{now: testNow}
	return f
}

func request(date time.Time) *Request {
	return &Request{SalonID: 1, StaffID: 10, ServiceID: 5, Date: date, Generation: 7}
}

var tuesday = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

func TestExecute_FreeDay(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), request(tuesday))
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00"}, resp.Slots)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, int64(7), resp.Generation)
	assert.Equal(t, tuesday, f.appointments.gotDate)
	assert.Equal(t, []int{5}, f.recorder.counts)
}

func TestExecute_SkipsBookedAndInactiveAppointments(t *testing.T) {
	f := newFixture()
	f.appointments.items = []*domain.Appointment{
		{StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
		// отменённая запись не должна занимать время, даже если хранилище её вернуло
		{StartTime: "09:00", DurationMinutes: 30, Status: domain.StatusCancelledByClient},
	}

	resp, err := f.uc.Execute(context.Background(), request(tuesday))
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "11:00"}, resp.Slots)
}

func TestExecute_EmptyWhenReferenceDataMissing(t *testing.T) {
	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	wednesday := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		setup func(f *fixture)
		date  time.Time
	}{
		{"unknown staff", func(f *fixture) { delete(f.staff, 10) }, tuesday},
		{"staff of another salon", func(f *fixture) { f.staff[10].SalonID = 2 }, tuesday},
		{"inactive staff", func(f *fixture) { f.staff[10].IsActive = false }, tuesday},
		{"unknown service", func(f *fixture) { delete(f.catalog.services, 5) }, tuesday},
		{"service of another salon", func(f *fixture) { f.catalog.services[5].SalonID = 2 }, tuesday},
		{"inactive service", func(f *fixture) { f.catalog.services[5].IsActive = false }, tuesday},
		{"no window for weekday", func(f *fixture) {}, wednesday},
		{"inactive window", func(f *fixture) {}, sunday},
		{"duration longer than window", func(f *fixture) { f.catalog.services[5].DurationMinutes = 240 }, tuesday},
		{"date in the past", func(f *fixture) {}, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"beyond advance booking days", func(f *fixture) {}, testNow.AddDate(0, 0, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)

			resp, err := f.uc.Execute(context.Background(), request(tt.date))
			require.NoError(t, err)
			assert.NotNil(t, resp.Slots)
			assert.Empty(t, resp.Slots)
		})
	}
}

func TestExecute_TodayRespectsMinimumNotice(t *testing.T) {
	f := newFixture()
	f.salons[1].MinBookingNoticeMinutes = 90
	f.uc.timeProvider = fixedClock{now: time.Date(2026, 3, 2, 8, 15, 0, 0, time.UTC)}

	resp, err := f.uc.Execute(context.Background(), request(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	// 08:15 + 90 минут = 09:45
	assert.Equal(t, []types.TimeString{"10:00", "10:30", "11:00"}, resp.Slots)
}

func TestExecute_NoticeCrossesMidnight(t *testing.T) {
	f := newFixture()
	f.salons[1].MinBookingNoticeMinutes = 15 * 60
	f.uc.timeProvider = fixedClock{now: time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC)}

	resp, err := f.uc.Execute(context.Background(), request(tuesday))
	require.NoError(t, err)

	// 19:00 + 15 часов = завтра 10:00
	assert.Equal(t, []types.TimeString{"10:00", "10:30", "11:00"}, resp.Slots)
}

func TestExecute_Idempotent(t *testing.T) {
	f := newFixture()
	f.appointments.items = []*domain.Appointment{{StartTime: "09:30", DurationMinutes: 30, Status: domain.StatusPending}}

	first, err := f.uc.Execute(context.Background(), request(tuesday))
	require.NoError(t, err)
	second, err := f.uc.Execute(context.Background(), request(tuesday))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_Errors(t *testing.T) {
	storageErr := errors.New("connection reset")

	tests := []struct {
		name    string
		setup   func(f *fixture)
		req     *Request
		wantErr error
	}{
		{"invalid staff id", func(f *fixture) {}, &Request{SalonID: 1, ServiceID: 5, Date: tuesday}, ErrInvalidInput},
		{"missing date", func(f *fixture) {}, &Request{SalonID: 1, StaffID: 10, ServiceID: 5}, ErrInvalidInput},
		{"unknown salon", func(f *fixture) {}, &Request{SalonID: 9, StaffID: 10, ServiceID: 5, Date: tuesday}, ErrSalonNotFound},
		{"inactive salon", func(f *fixture) { f.salons[1].IsActive = false }, request(tuesday), ErrSalonNotFound},
		{"catalog failure", func(f *fixture) { f.catalog.err = storageErr }, request(tuesday), storageErr},
		{"appointments failure", func(f *fixture) { f.appointments.err = storageErr }, request(tuesday), storageErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)

			_, err := f.uc.Execute(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_StorageErrorsAreInternal(t *testing.T) {
	f := newFixture()
	f.catalog.err = errors.New("timeout")

	_, err := f.uc.Execute(context.Background(), request(tuesday))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, f.schedule.calls)
}
