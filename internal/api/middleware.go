package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/futofind/futofind/internal/guard"
	"github.com/futofind/futofind/internal/model"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestIDHeader carries the request ID in and out.
const RequestIDHeader = "X-Request-ID"

// RequestID returns the request ID stored by LoggingMiddleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Sessions exposes the current session.
type Sessions interface {
	Current() (model.Session, bool)
}

// RequirePolicy rejects requests the guard would redirect. Logged-out
// callers get 401, non-admins on admin routes get 403.
func RequirePolicy(sessions Sessions, policy guard.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var current *model.Session
			if s, ok := sessions.Current(); ok {
				current = &s
			}
			d := guard.Evaluate(policy, current)
			if d.Proceed {
				next.ServeHTTP(w, r)
				return
			}
			if current == nil {
				jsonError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			jsonError(w, http.StatusForbidden, "insufficient permissions")
		})
	}
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware assigns a request ID and logs method, path, status and
// duration of every request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))

		level := slog.LevelInfo
		if rec.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.RequestURI(),
			"status", rec.status,
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", id,
		)
	})
}

// RejectCrossOrigin refuses state-changing requests sent by other sites
// with a JSON 403.
func RejectCrossOrigin(next http.Handler) http.Handler {
	cop := http.NewCrossOriginProtection()
	cop.SetDenyHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Warn("cross-origin request rejected", "method", r.Method, "path", r.URL.Path, "origin", r.Header.Get("Origin"))
		jsonError(w, http.StatusForbidden, "cross-origin request rejected")
	}))
	return cop.Handler(next)
}
