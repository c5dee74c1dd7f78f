package domain

import "time"

// StaffRole role stored on a staff row
type StaffRole string

const (
	StaffRoleAdmin    StaffRole = "admin"
	StaffRoleEmployee StaffRole = "employee"
)

// Valid reports whether r is a known staff role
func (r StaffRole) Valid() bool {
	return r == StaffRoleAdmin || r == StaffRoleEmployee
}

// Staff is a member of a salon's team
type Staff struct {
	ID        int64
	SalonID   int64
	UserID    int64
	Name      string
	Role      StaffRole
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
