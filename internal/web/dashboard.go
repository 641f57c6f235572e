package web

import (
	"net/http"
)

// Dashboard handles GET /dashboard.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	pd := s.page(r, "Dashboard")
	pd.Banner = s.banner(r, "report", "success", "Your item report has been submitted.")
	s.Templates.Render(w, "dashboard.html", &pd)
}

// MarkNotificationsRead handles POST /notifications/read and returns to
// the page the panel was opened on.
func (s *Server) MarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	// Failures are logged by the cache; the panel simply stays unread.
	_ = s.Notes.MarkAllRead(r.Context())
	http.Redirect(w, r, localPath(r.FormValue("next"), "/dashboard"), http.StatusSeeOther)
}
