package web

import (
	"net/http"
	"time"

	"github.com/futofind/futofind/internal/guard"
	webembed "github.com/futofind/futofind/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(api Backend, sessions Sessions, notes Notifications, bannerTimeout time.Duration) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		API:           api,
		Sessions:      sessions,
		Notes:         notes,
		Templates:     templates,
		BannerTimeout: bannerTimeout,
	}

	mux := http.NewServeMux()
	authed := s.RequirePolicy(guard.Authenticated)
	admin := s.RequirePolicy(guard.AdminOnly)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /{$}", s.Landing)
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("GET /register", s.RegisterPage)
	mux.HandleFunc("POST /register", s.RegisterSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Authenticated routes.
	mux.Handle("GET /dashboard", authed(http.HandlerFunc(s.Dashboard)))
	mux.Handle("GET /report-item", authed(http.HandlerFunc(s.ReportPage)))
	mux.Handle("POST /report-item", authed(http.HandlerFunc(s.ReportSubmit)))
	mux.Handle("GET /search", authed(http.HandlerFunc(s.SearchPage)))
	mux.Handle("GET /item/{id}", authed(http.HandlerFunc(s.ItemPage)))
	mux.Handle("POST /item/{id}/claim", authed(http.HandlerFunc(s.ClaimSubmit)))
	mux.Handle("GET /my-reports", authed(http.HandlerFunc(s.MyReports)))
	mux.Handle("POST /notifications/read", authed(http.HandlerFunc(s.MarkNotificationsRead)))

	// Admin routes.
	mux.Handle("GET /admin/claims", admin(http.HandlerFunc(s.AdminClaims)))
	mux.Handle("POST /admin/claims/{id}", admin(http.HandlerFunc(s.ResolveClaimSubmit)))

	return rejectCrossOrigin(mux), nil
}
