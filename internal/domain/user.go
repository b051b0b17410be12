package domain

import (
	"time"

	"github.com/google/uuid"
)

// StaffUser is the subset of the user_profiles table the trigger engine
// notifies. Profiles are owned by the external auth platform; this backend
// only reads them.
type StaffUser struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	UserType  string    `json:"user_type" db:"user_type"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

const (
	RoleAdmin  = "admin"
	RolePastor = "pastor"
	RoleStaff  = "staff"
)

// StaffUserType maps a role to the user_type value stored on profiles,
// e.g. admin -> admin_staff.
func StaffUserType(role string) string {
	return role + "_staff"
}
