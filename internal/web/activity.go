package web

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/futofind/futofind/internal/model"
	"github.com/futofind/futofind/internal/view"
)

const (
	tabReports = "reports"
	tabClaims  = "claims"
)

type activity struct {
	Items  []model.Item
	Claims []model.Claim
}

type myReportsPage struct {
	PageData
	Tab      string
	Activity view.Result[activity]
}

// fetchActivity loads the user's reports and claims concurrently. Either
// failure fails the whole page.
func (s *Server) fetchActivity(ctx context.Context) (activity, error) {
	var a activity
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.API.MyItems(ctx)
		a.Items = items
		return err
	})
	g.Go(func() error {
		claims, err := s.API.MyClaims(ctx)
		a.Claims = claims
		return err
	})
	if err := g.Wait(); err != nil {
		return activity{}, err
	}
	return a, nil
}

// MyReports handles GET /my-reports.
func (s *Server) MyReports(w http.ResponseWriter, r *http.Request) {
	tab := r.URL.Query().Get("tab")
	if tab != tabClaims {
		tab = tabReports
	}

	p := &myReportsPage{PageData: s.page(r, "My Activity"), Tab: tab}
	p.Banner = s.banner(r, "claim", "success", "Your claim has been submitted and is now pending review.")

	a, err := s.fetchActivity(r.Context())
	if err != nil {
		slog.Error("failed to fetch activity", "error", err)
		p.Activity = view.Fail[activity]("Failed to fetch your data. Please try again later.")
	} else {
		p.Activity = view.Ok(a)
	}

	s.Templates.Render(w, "my_reports.html", p)
}
