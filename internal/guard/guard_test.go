package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/futofind/futofind/internal/model"
)

func TestEvaluate(t *testing.T) {
	student := &model.Session{UserID: "1", Role: model.RoleStudent}
	staff := &model.Session{UserID: "2", Role: model.RoleStaff}
	admin := &model.Session{UserID: "3", Role: model.RoleAdmin}

	tests := []struct {
		name    string
		policy  Policy
		session *model.Session
		want    Decision
	}{
		{"authenticated logged out", Authenticated, nil, Decision{RedirectTo: "/login"}},
		{"authenticated student", Authenticated, student, Decision{Proceed: true}},
		{"authenticated staff", Authenticated, staff, Decision{Proceed: true}},
		{"authenticated admin", Authenticated, admin, Decision{Proceed: true}},
		{"admin logged out", AdminOnly, nil, Decision{RedirectTo: "/login"}},
		{"admin student", AdminOnly, student, Decision{RedirectTo: "/dashboard"}},
		{"admin staff", AdminOnly, staff, Decision{RedirectTo: "/dashboard"}},
		{"admin admin", AdminOnly, admin, Decision{Proceed: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.policy, tt.session))
		})
	}
}

func TestAdminIsStricterThanAuthenticated(t *testing.T) {
	for _, role := range []string{model.RoleStudent, model.RoleStaff, model.RoleAdmin} {
		s := &model.Session{UserID: "x", Role: role}
		if Evaluate(AdminOnly, s).Proceed && !Evaluate(Authenticated, s).Proceed {
			t.Errorf("role %q passes AdminOnly but not Authenticated", role)
		}
	}
}

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "admin", AdminOnly.String())
}
