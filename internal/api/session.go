package api

import (
	"net/http"
)

// SessionHandler reports who is logged in.
type SessionHandler struct {
	Sessions Sessions
}

type sessionUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *sessionUser `json:"user,omitempty"`
	IsAdmin       bool         `json:"isAdmin"`
}

// Get handles GET /api/session. The credential is never exposed.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Sessions.Current()
	if !ok {
		jsonResponse(w, http.StatusOK, sessionResponse{})
		return
	}
	jsonResponse(w, http.StatusOK, sessionResponse{
		Authenticated: true,
		User:          &sessionUser{ID: s.UserID, Name: s.Name, Email: s.Email, Role: s.Role},
		IsAdmin:       s.IsAdmin(),
	})
}
