package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User models an authenticated actor in the portal.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RoleRecord is a row in the user_roles collection. Its absence is a valid
// state: users without a record act with the default role.
type RoleRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// RoleResolution is the tagged result of a role lookup. Found distinguishes
// "explicit record" from "defaulted" so callers can log the difference while
// still collapsing both to a usable role.
type RoleResolution struct {
	Role  string
	Found bool
}

// Effective collapses the resolution to the role the rest of the system uses.
func (r RoleResolution) Effective() string {
	if !r.Found || r.Role == "" {
		return RoleUser
	}
	return r.Role
}

// ValidRole reports whether s is a recognised role value.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleUser
}
