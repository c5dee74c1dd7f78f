package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

func TestBookedInterval_Overlaps(t *testing.T) {
	b := BookedInterval{Start: 600, End: 660}

	tests := []struct {
		name     string
		start    types.TimeString
		duration int
		want     bool
	}{
		{"ends at booking start", "09:00", 60, false},
		{"starts at booking end", "11:00", 60, false},
		{"covers booking start", "09:30", 60, true},
		{"inside booking", "10:15", 15, true},
		{"covers whole booking", "09:00", 180, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Overlaps(tt.start.Minutes(), tt.duration))
		})
	}
}

func TestAppointment_Interval(t *testing.T) {
	a := &Appointment{StartTime: "10:00", DurationMinutes: 45}
	interval, ok := a.Interval()
	assert.True(t, ok)
	assert.Equal(t, BookedInterval{Start: 600, End: 645}, interval)

	late := &Appointment{StartTime: "23:30", DurationMinutes: 60}
	interval, ok = late.Interval()
	assert.True(t, ok)
	assert.Equal(t, 1470, interval.End)

	broken := &Appointment{StartTime: "25:00", DurationMinutes: 30}
	_, ok = broken.Interval()
	assert.False(t, ok)
}

func TestAppointment_CanTransitionTo(t *testing.T) {
	pending := &Appointment{Status: StatusPending}
	assert.True(t, pending.CanTransitionTo(StatusConfirmed))
	assert.True(t, pending.CanTransitionTo(StatusCancelledBySalon))
	assert.False(t, pending.CanTransitionTo(StatusCompleted))

	confirmed := &Appointment{Status: StatusConfirmed}
	assert.True(t, confirmed.CanTransitionTo(StatusCompleted))
	assert.True(t, confirmed.CanTransitionTo(StatusNoShow))
	assert.False(t, confirmed.CanTransitionTo(StatusPending))

	completed := &Appointment{Status: StatusCompleted}
	assert.False(t, completed.CanTransitionTo(StatusNoShow))
}

func TestRole_Capabilities(t *testing.T) {
	assert.True(t, RoleOwner.CanManageSalon())
	assert.True(t, RoleAdmin.CanManageSalon())
	assert.False(t, RoleEmployee.CanManageSalon())
	assert.False(t, RoleClient.CanManageSalon())

	assert.True(t, RoleEmployee.IsStaff())
	assert.False(t, RoleClient.IsStaff())

	assert.Equal(t, RoleAdmin, RoleFromStaff(StaffRoleAdmin))
	assert.Equal(t, RoleEmployee, RoleFromStaff(StaffRoleEmployee))
	assert.Equal(t, RoleClient, RoleFromStaff("unknown"))
}

func TestWindowForWeekday(t *testing.T) {
	windows := []*WorkingWindow{
		{Weekday: time.Monday, Start: "09:00", End: "18:00", IsActive: true},
		{Weekday: time.Sunday, Start: "10:00", End: "10:00", IsActive: true},
	}

	w := WindowForWeekday(windows, time.Monday)
	if assert.NotNil(t, w) {
		assert.True(t, w.IsOpen())
	}
	assert.Nil(t, WindowForWeekday(windows, time.Tuesday))
	assert.False(t, WindowForWeekday(windows, time.Sunday).IsOpen())
}

func TestSalon_LatestBookableDate(t *testing.T) {
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	_, ok := (&Salon{}).LatestBookableDate(today)
	assert.False(t, ok)

	latest, ok := (&Salon{AdvanceBookingDays: 14}).LatestBookableDate(today)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 24, 0, 0, 0, 0, time.UTC), latest)
}

func TestAmountMinorUnits(t *testing.T) {
	assert.Equal(t, int64(2550), AmountMinorUnits(25.5))
	assert.Equal(t, int64(1999), AmountMinorUnits(19.99))
}
