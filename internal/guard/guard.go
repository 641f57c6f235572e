// Package guard decides whether a request may reach a protected page.
package guard

import "github.com/futofind/futofind/internal/model"

// Policy is the access requirement of a route.
type Policy int

const (
	// Authenticated requires a session.
	Authenticated Policy = iota
	// AdminOnly requires a session with the admin role.
	AdminOnly
)

func (p Policy) String() string {
	switch p {
	case Authenticated:
		return "authenticated"
	case AdminOnly:
		return "admin"
	default:
		return "unknown"
	}
}

// Redirect targets for denied requests.
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// Decision is the outcome of Evaluate. RedirectTo is set only when Proceed
// is false.
type Decision struct {
	Proceed    bool
	RedirectTo string
}

// Evaluate applies policy to the current session, nil meaning logged out.
// AdminOnly implies Authenticated.
func Evaluate(policy Policy, s *model.Session) Decision {
	if s == nil {
		return Decision{RedirectTo: LoginPath}
	}
	if policy == AdminOnly && !s.IsAdmin() {
		return Decision{RedirectTo: DashboardPath}
	}
	return Decision{Proceed: true}
}
