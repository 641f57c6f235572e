package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/futofind/futofind/internal/client"
	"github.com/futofind/futofind/internal/model"
	"github.com/futofind/futofind/internal/view"
)

type searchPage struct {
	PageData
	Filters    client.Filters
	Categories []string
	Items      view.Result[[]model.Item]
}

// SearchPage handles GET /search. Without parameters it lists every found
// item.
func (s *Server) SearchPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := client.Filters{
		Keyword:  strings.TrimSpace(q.Get("keyword")),
		Category: q.Get("category"),
	}
	if filters.Category == "" {
		filters.Category = model.CategoryAll
	}

	p := &searchPage{
		PageData:   s.page(r, "Search Found Items"),
		Filters:    filters,
		Categories: append([]string{model.CategoryAll}, model.Categories...),
	}

	items, err := s.API.ListFoundItems(r.Context(), filters)
	if err != nil {
		slog.Error("failed to search items", "keyword", filters.Keyword, "category", filters.Category, "error", err)
		p.Items = view.Fail[[]model.Item]("Could not fetch items. Please try again later.")
	} else {
		p.Items = view.Ok(items)
	}

	s.Templates.Render(w, "search.html", p)
}
