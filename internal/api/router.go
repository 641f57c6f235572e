package api

import (
	"context"
	"net/http"

	"github.com/futofind/futofind/internal/guard"
	"github.com/futofind/futofind/internal/notify"
)

// Notifications is the notification cache as seen by the JSON API.
type Notifications interface {
	Snapshot() notify.Snapshot
	Refresh(ctx context.Context)
	MarkAllRead(ctx context.Context) error
}

// NewRouter creates the local JSON API used by the page scripts.
func NewRouter(sessions Sessions, notes Notifications) http.Handler {
	mux := http.NewServeMux()

	sessionHandler := &SessionHandler{Sessions: sessions}
	notificationsHandler := &NotificationsHandler{Notes: notes}

	authMW := RequirePolicy(sessions, guard.Authenticated)

	mux.HandleFunc("GET /api/session", sessionHandler.Get)

	mux.Handle("GET /api/notifications", authMW(http.HandlerFunc(notificationsHandler.List)))
	mux.Handle("POST /api/notifications/read", authMW(http.HandlerFunc(notificationsHandler.MarkRead)))
	mux.Handle("POST /api/notifications/refresh", authMW(http.HandlerFunc(notificationsHandler.Refresh)))

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, http.StatusNotFound, "not found")
	})

	return mux
}
