package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/futofind/futofind/internal/guard"
	"github.com/futofind/futofind/internal/model"
)

type webContextKey string

const webSessionKey webContextKey = "websession"

// RequirePolicy redirects requests the guard denies and otherwise stores
// the current session in the request context.
func (s *Server) RequirePolicy(policy guard.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var current *model.Session
			if sess, ok := s.Sessions.Current(); ok {
				current = &sess
			}

			d := guard.Evaluate(policy, current)
			if !d.Proceed {
				if current != nil {
					slog.Warn("access denied", "user", current.Email, "path", r.URL.Path, "policy", policy.String())
				}
				http.Redirect(w, r, d.RedirectTo, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), webSessionKey, current)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentSession retrieves the session stored by RequirePolicy.
func CurrentSession(ctx context.Context) *model.Session {
	s, _ := ctx.Value(webSessionKey).(*model.Session)
	return s
}

// rejectCrossOrigin refuses state-changing requests sent by other sites.
// The session belongs to the process, not to a cookie, so the browser's
// same-site rules do not protect these forms.
func rejectCrossOrigin(next http.Handler) http.Handler {
	cop := http.NewCrossOriginProtection()
	cop.SetDenyHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Warn("cross-origin request rejected", "method", r.Method, "path", r.URL.Path, "origin", r.Header.Get("Origin"))
		http.Error(w, "cross-origin request rejected", http.StatusForbidden)
	}))
	return cop.Handler(next)
}
