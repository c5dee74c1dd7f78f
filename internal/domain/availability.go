package domain

import "github.com/m04kA/SMC-SalonService/pkg/types"

// AvailableSlots returns the free start times of a working window for a service
// of durationMinutes, on the SlotStepMinutes grid starting at window.Start.
// A slot t is kept when t+duration <= window.End and [t, t+duration) overlaps no booked interval.
// The result is never nil and is sorted ascending.
func AvailableSlots(window *WorkingWindow, durationMinutes int, booked []BookedInterval) []types.TimeString {
	slots := make([]types.TimeString, 0)

	if window == nil || !window.IsActive || durationMinutes <= 0 {
		return slots
	}

	start, end := window.Start.Minutes(), window.End.Minutes()
	if start < 0 || end < 0 || end <= start {
		return slots
	}

	for t := start; t+durationMinutes <= end; t += SlotStepMinutes {
		if overlapsAny(t, durationMinutes, booked) {
			continue
		}
		slot, err := types.TimeStringFromMinutes(t)
		if err != nil {
			break
		}
		slots = append(slots, slot)
	}

	return slots
}

func overlapsAny(start, duration int, booked []BookedInterval) bool {
	for _, b := range booked {
		if b.Overlaps(start, duration) {
			return true
		}
	}
	return false
}

// BookedIntervals turns appointments into occupied intervals.
// Inactive appointments (cancellations, no-show) and malformed rows are skipped,
// so callers do not depend on the store having filtered them.
func BookedIntervals(appointments []*Appointment) []BookedInterval {
	intervals := make([]BookedInterval, 0, len(appointments))
	for _, a := range appointments {
		if a == nil || !a.IsActive() {
			continue
		}
		if interval, ok := a.Interval(); ok {
			intervals = append(intervals, interval)
		}
	}
	return intervals
}

// ContainsSlot reports whether slot is one of slots
func ContainsSlot(slots []types.TimeString, slot types.TimeString) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
