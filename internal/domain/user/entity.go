package user

import "time"

// Role is the numeric role code carried in the session. The values mirror
// the navigation route table: each code maps to a fixed set of screens.
type Role int

const (
	RoleSuperAdmin      Role = 0
	RoleAdmin           Role = 1
	RoleManager         Role = 2
	RoleProductEngineer Role = 3
	RoleDelivery        Role = 4
	RoleLabTechnician   Role = 5
	RoleLimitedEmployee Role = 10
)

// KnownRoles lists every role code the platform issues.
var KnownRoles = []Role{
	RoleSuperAdmin,
	RoleAdmin,
	RoleManager,
	RoleProductEngineer,
	RoleDelivery,
	RoleLabTechnician,
	RoleLimitedEmployee,
}

// IsKnown reports whether the role code belongs to the closed set.
func (r Role) IsKnown() bool {
	for _, known := range KnownRoles {
		if r == known {
			return true
		}
	}
	return false
}

type User struct {
	ID              string
	CompanyID       *string
	Email           string
	Name            string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsSuperAdmin checks if the user runs the whole platform
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// IsAdmin checks if the user administers their company
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanViewAllTrackers checks if the user may read other employees' records
func (u *User) CanViewAllTrackers() bool {
	return u.Role == RoleSuperAdmin || u.Role == RoleAdmin || u.Role == RoleManager
}
