package domain

import "time"

// SalonService is an entry of a salon's catalog
type SalonService struct {
	ID              int64
	SalonID         int64
	Name            string
	Description     *string
	DurationMinutes int
	Price           float64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsBookable returns true if the service can be used to compute slots
func (s *SalonService) IsBookable() bool {
	return s.IsActive && s.DurationMinutes > 0
}
