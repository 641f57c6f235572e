package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/futofind/futofind/internal/client"
	"github.com/futofind/futofind/internal/model"
	"github.com/futofind/futofind/internal/view"
)

type itemPage struct {
	PageData
	Item     view.Result[*model.Item]
	CanClaim bool
	Claim    view.Form
}

// loadItemPage fetches item id into a page. Lookup failures become the
// page's failure state.
func (s *Server) loadItemPage(r *http.Request, id string) *itemPage {
	p := &itemPage{PageData: s.page(r, "Item Details"), Claim: view.NewForm()}

	item, err := s.API.GetItem(r.Context(), id)
	switch {
	case err != nil:
		slog.Error("failed to fetch item", "item", id, "error", err)
		p.Item = view.Fail[*model.Item]("Failed to fetch item details.")
	case item == nil:
		p.Item = view.NotFound[*model.Item]()
	default:
		p.Item = view.Ok(item)
		p.Title = item.Title
		if p.User != nil {
			p.CanClaim = !item.ReportedBy(p.User.UserID)
		}
	}
	return p
}

// ItemPage handles GET /item/{id}.
func (s *Server) ItemPage(w http.ResponseWriter, r *http.Request) {
	p := s.loadItemPage(r, r.PathValue("id"))
	status := http.StatusOK
	if p.Item.IsSuccess() && !p.Item.Found {
		status = http.StatusNotFound
	}
	s.Templates.RenderStatus(w, status, "item.html", p)
}

// ClaimSubmit handles POST /item/{id}/claim.
func (s *Server) ClaimSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	parseErr := parseMultipart(w, r)

	form := view.NewForm()
	form.Submit(r.PostForm)

	reject := func(msg string) {
		p := s.loadItemPage(r, id)
		form.Reject(msg)
		p.Claim = form
		s.Templates.RenderStatus(w, http.StatusUnprocessableEntity, "item.html", p)
	}

	if parseErr != nil {
		reject(photoMessage(parseErr, "Failed to submit claim."))
		return
	}

	justification := strings.TrimSpace(r.PostFormValue("justification"))
	if justification == "" {
		reject("Please provide a justification for your claim.")
		return
	}

	proof, err := formPhoto(r, "proofImage")
	if err != nil {
		slog.Warn("claim proof rejected", "item", id, "error", err)
		reject(photoMessage(err, "Failed to submit claim."))
		return
	}

	claim, err := s.API.ClaimItem(r.Context(), id, client.ClaimInput{Justification: justification, ProofImage: proof})
	if err != nil {
		slog.Warn("claim failed", "item", id, "error", err)
		reject(client.Message(err, "Failed to submit claim."))
		return
	}

	user := CurrentSession(r.Context())
	slog.Info("claim submitted", "user", user.Email, "item", id, "claim", claim.ID, "proof", proof != nil)
	form.Succeed()
	http.Redirect(w, r, "/my-reports?claim=success", http.StatusSeeOther)
}
