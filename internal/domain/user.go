package domain

import "time"

// UserRole enumerates the access roles in the system.
type UserRole string

const (
	RoleCitizen     UserRole = "CITIZEN"
	RoleAgencyStaff UserRole = "AGENCY_STAFF"
	RoleAgencyAdmin UserRole = "AGENCY_ADMIN"
	RoleAdmin       UserRole = "ADMIN"
)

// IsAgencyScoped reports whether the role is tied to an agency roster.
func (r UserRole) IsAgencyScoped() bool {
	return r == RoleAgencyStaff || r == RoleAgencyAdmin
}

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleCitizen, RoleAgencyStaff, RoleAgencyAdmin, RoleAdmin:
		return true
	}
	return false
}

// User is the single account model for citizens, agency staff and admins.
// AgencyID is set only while the user holds an agency-scoped role.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	AgencyID     *string
	Phone        *string
	Address      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSummary is the author/creator projection embedded in responses.
type UserSummary struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email,omitempty"`
	Role  UserRole `json:"role,omitempty"`
}

// Summary returns the embeddable projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
