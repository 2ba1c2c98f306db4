package models

import "time"

// Staff roles.
const (
	RoleAdmin = "admin"
	RoleClerk = "clerk"
)

// Staff is a store employee allowed to use the HTTP API.
type Staff struct {
	ID        string    `json:"id"`
	Username  string    `json:"username" validate:"required,min=3,max=100"`
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"-" validate:"required,min=6"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the account has the admin role.
func (s *Staff) IsAdmin() bool {
	return s.Role == RoleAdmin
}
