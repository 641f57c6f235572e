package model

import "strings"

// Session is the authenticated identity returned by the backend on login,
// together with the bearer credential used for every later request.
type Session struct {
	UserID string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Token  string `json:"token"`
}

// Roles.
const (
	RoleStudent = "student"
	RoleStaff   = "staff"
	RoleAdmin   = "admin"
)

// ValidRole reports whether role is one the backend hands out.
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether the session belongs to an administrator.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// FirstName returns the first word of the display name.
func (s *Session) FirstName() string {
	if s == nil {
		return ""
	}
	name, _, _ := strings.Cut(strings.TrimSpace(s.Name), " ")
	return name
}

// UserRef is a user embedded in another record (reporter, claimant).
type UserRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
