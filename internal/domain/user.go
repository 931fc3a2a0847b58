package domain

import "time"

// Role identifies which dashboard a user belongs to.
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// IsValid reports whether the role is one of the known values.
func (r Role) IsValid() bool {
	switch r {
	case RoleCitizen, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for registered accounts.
type User struct {
	ID           int64
	NID          string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Contact      string
	CreatedAt    time.Time
}
