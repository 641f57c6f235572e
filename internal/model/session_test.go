package model

import (
	"encoding/json"
	"testing"
)

func TestValidRole(t *testing.T) {
	tests := []struct {
		role     string
		expected bool
	}{
		{RoleStudent, true},
		{RoleStaff, true},
		{RoleAdmin, true},
		{"manager", false},
		{"Admin", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidRole(tt.role); got != tt.expected {
			t.Errorf("ValidRole(%q) = %v, want %v", tt.role, got, tt.expected)
		}
	}
}

func TestSessionIsAdmin(t *testing.T) {
	var missing *Session
	if missing.IsAdmin() {
		t.Error("nil session must not be admin")
	}
	for _, role := range []string{RoleStudent, RoleStaff, ""} {
		s := &Session{Role: role}
		if s.IsAdmin() {
			t.Errorf("role %q must not be admin", role)
		}
	}
	if !(&Session{Role: RoleAdmin}).IsAdmin() {
		t.Error("admin role must be admin")
	}
}

func TestSessionFirstName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Ada Lovelace", "Ada"},
		{"  Chidi  Okafor ", "Chidi"},
		{"Mononym", "Mononym"},
		{"", ""},
	}
	for _, tt := range tests {
		s := &Session{Name: tt.name}
		if got := s.FirstName(); got != tt.expected {
			t.Errorf("FirstName(%q) = %q, want %q", tt.name, got, tt.expected)
		}
	}
}

func TestSessionDecodesBackendLogin(t *testing.T) {
	body := `{"_id":"u1","name":"Ada Lovelace","email":"ada@futo.edu.ng","role":"admin","token":"tok"}`

	var s Session
	if err := json.Unmarshal([]byte(body), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s.UserID != "u1" || s.Name != "Ada Lovelace" || s.Email != "ada@futo.edu.ng" {
		t.Errorf("unexpected identity: %+v", s)
	}
	if s.Role != RoleAdmin || s.Token != "tok" {
		t.Errorf("unexpected role or token: %+v", s)
	}
}
