package domain

import "time"

// Review left by a client for a completed appointment
type Review struct {
	ID            int64
	AppointmentID int64
	SalonID       int64
	StaffID       int64
	ServiceID     int64
	ClientID      int64
	Rating        int
	Comment       *string
	CreatedAt     time.Time
}
