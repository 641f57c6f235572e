package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/futofind/futofind/internal/model"
	"github.com/futofind/futofind/internal/view"
)

type adminPage struct {
	PageData
	Claims view.Result[[]model.Claim]
}

func (s *Server) renderAdminClaims(w http.ResponseWriter, r *http.Request, status int, success, failure string) {
	p := &adminPage{PageData: s.page(r, "Admin Panel")}
	p.Success = success
	p.Error = failure

	claims, err := s.API.PendingClaims(r.Context())
	if err != nil {
		slog.Error("failed to fetch pending claims", "error", err)
		p.Claims = view.Fail[[]model.Claim]("Failed to fetch pending claims.")
	} else {
		p.Claims = view.Ok(claims)
	}
	s.Templates.RenderStatus(w, status, "admin_claims.html", p)
}

// AdminClaims handles GET /admin/claims.
func (s *Server) AdminClaims(w http.ResponseWriter, r *http.Request) {
	var success string
	if d := r.URL.Query().Get("resolved"); model.ValidDecision(d) {
		success = fmt.Sprintf("Claim has been successfully %s.", d)
	}
	s.renderAdminClaims(w, r, http.StatusOK, success, "")
}

// ResolveClaimSubmit handles POST /admin/claims/{id}.
func (s *Server) ResolveClaimSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	decision := r.FormValue("decision")
	if !model.ValidDecision(decision) {
		s.renderAdminClaims(w, r, http.StatusBadRequest, "", "Failed to resolve the claim. Please try again.")
		return
	}

	if err := s.API.ResolveClaim(r.Context(), id, decision); err != nil {
		slog.Error("failed to resolve claim", "claim", id, "decision", decision, "error", err)
		s.renderAdminClaims(w, r, http.StatusBadGateway, "", "Failed to resolve the claim. Please try again.")
		return
	}

	admin := CurrentSession(r.Context())
	slog.Info("claim resolved", "admin", admin.Email, "claim", id, "decision", decision)
	http.Redirect(w, r, "/admin/claims?resolved="+url.QueryEscape(decision), http.StatusSeeOther)
}
