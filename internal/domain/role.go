package domain

// Role is the caller's relation to a salon, resolved on the server for each request
type Role int

const (
	RoleClient Role = iota
	RoleEmployee
	RoleAdmin
	RoleOwner
)

func (r Role) String() string {
	switch r {
	case RoleClient:
		return "client"
	case RoleEmployee:
		return "employee"
	case RoleAdmin:
		return "admin"
	case RoleOwner:
		return "owner"
	}
	return "unknown"
}

// CanManageSalon owner and admins manage services, staff, requests and analytics
func (r Role) CanManageSalon() bool {
	switch r {
	case RoleOwner, RoleAdmin:
		return true
	case RoleEmployee, RoleClient:
		return false
	}
	return false
}

// IsStaff true for everyone working at the salon
func (r Role) IsStaff() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleEmployee:
		return true
	case RoleClient:
		return false
	}
	return false
}

// RoleFromStaff maps a staff row role to the caller role
func RoleFromStaff(r StaffRole) Role {
	switch r {
	case StaffRoleAdmin:
		return RoleAdmin
	case StaffRoleEmployee:
		return RoleEmployee
	}
	return RoleClient
}
