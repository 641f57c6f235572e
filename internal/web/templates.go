package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/futofind/futofind/internal/model"
	webembed "github.com/futofind/futofind/web"
)

// PlaceholderImage is shown wherever an item or proof photo is missing.
const PlaceholderImage = "/static/placeholder.svg"

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"imageOr": func(u string) string {
			if u == "" {
				return PlaceholderImage
			}
			return u
		},
		"statusText": func(status string) string {
			if status == "" {
				return ""
			}
			return strings.ToUpper(status[:1]) + status[1:]
		},
		"statusClass": func(status string) string {
			switch status {
			case model.ItemStatusFound:
				return "badge-blue"
			case model.ItemStatusPending:
				return "badge-yellow"
			case model.ItemStatusClaimed, model.ClaimStatusApproved:
				return "badge-green"
			case model.ClaimStatusRejected:
				return "badge-red"
			default:
				return "badge-gray"
			}
		},
		"isAdmin": func(s *model.Session) bool { return s.IsAdmin() },
	}
}

// pages lists every page template; each is parsed together with the layout.
var pages = []string{
	"landing.html",
	"login.html",
	"register.html",
	"dashboard.html",
	"report.html",
	"search.html",
	"item.html",
	"my_reports.html",
	"admin_claims.html",
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	ts.RenderStatus(w, http.StatusOK, name, data)
}

// RenderStatus renders a template with an explicit status code.
func (ts *Templates) RenderStatus(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}
