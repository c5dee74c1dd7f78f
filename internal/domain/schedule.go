package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// WorkingWindow is a staff member's working hours for one weekday.
// Weekday follows time.Weekday: 0 = Sunday.
type WorkingWindow struct {
	ID       int64
	StaffID  int64
	Weekday  time.Weekday
	Start    types.TimeString
	End      types.TimeString
	IsActive bool
}

// IsOpen returns true if the window is active and non-empty
func (w *WorkingWindow) IsOpen() bool {
	return w.IsActive && w.Start.IsBefore(w.End)
}

// WindowForWeekday returns the window for the given weekday, or nil
func WindowForWeekday(windows []*WorkingWindow, day time.Weekday) *WorkingWindow {
	for _, w := range windows {
		if w.Weekday == day {
			return w
		}
	}
	return nil
}

// BookedInterval is the half-open range [Start, End) taken by an active appointment,
// in minutes since midnight. End may reach 24:00.
type BookedInterval struct {
	Start int
	End   int
}

// Overlaps reports whether [start, start+duration) intersects the interval.
// Touching boundaries do not overlap.
func (b BookedInterval) Overlaps(startMinutes, durationMinutes int) bool {
	return startMinutes < b.End && startMinutes+durationMinutes > b.Start
}
