package domain

import "time"

// Salon represents a salon and its booking policy
type Salon struct {
	ID                      int64
	OwnerID                 int64
	Name                    string
	Address                 string
	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int
	IsActive                bool
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance appointments can be made
func (s *Salon) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}

// LatestBookableDate returns the last date open for booking relative to today.
// ok is false when there is no limit.
func (s *Salon) LatestBookableDate(today time.Time) (time.Time, bool) {
	if !s.HasAdvanceBookingLimit() {
		return time.Time{}, false
	}
	return today.AddDate(0, 0, s.AdvanceBookingDays), true
}
