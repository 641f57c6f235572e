package web

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/futofind/futofind/internal/client"
	"github.com/futofind/futofind/internal/model"
	"github.com/futofind/futofind/internal/notify"
	"github.com/futofind/futofind/internal/view"
)

// Backend is the remote API as used by the pages.
type Backend interface {
	Register(ctx context.Context, req client.RegisterRequest) error
	Login(ctx context.Context, email, password string) (*model.Session, error)
	ReportItem(ctx context.Context, in client.ReportInput) (*model.Item, error)
	ListFoundItems(ctx context.Context, f client.Filters) ([]model.Item, error)
	GetItem(ctx context.Context, id string) (*model.Item, error)
	ClaimItem(ctx context.Context, id string, in client.ClaimInput) (*model.Claim, error)
	MyItems(ctx context.Context) ([]model.Item, error)
	MyClaims(ctx context.Context) ([]model.Claim, error)
	PendingClaims(ctx context.Context) ([]model.Claim, error)
	ResolveClaim(ctx context.Context, id, decision string) error
}

// Sessions is the session store as used by the pages.
type Sessions interface {
	Current() (model.Session, bool)
	Login(ctx context.Context, s model.Session) error
	Logout(ctx context.Context) error
}

// Notifications is the notification cache as used by the pages.
type Notifications interface {
	Snapshot() notify.Snapshot
	MarkAllRead(ctx context.Context) error
}

// Server holds all dependencies for page handlers.
type Server struct {
	API           Backend
	Sessions      Sessions
	Notes         Notifications
	Templates     *Templates
	BannerTimeout time.Duration
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title         string
	Path          string
	User          *model.Session
	Notifications notify.Snapshot
	Banner        *view.Banner
	Error         string
	Success       string
}

// page builds the base data for r. Notifications are only filled in for a
// logged-in user.
func (s *Server) page(r *http.Request, title string) PageData {
	pd := PageData{Title: title, Path: r.URL.Path}
	if sess := CurrentSession(r.Context()); sess != nil {
		pd.User = sess
		pd.Notifications = s.Notes.Snapshot()
	} else if sess, ok := s.Sessions.Current(); ok {
		pd.User = &sess
		pd.Notifications = s.Notes.Snapshot()
	}
	return pd
}

// banner returns a success banner when query parameter key equals want.
func (s *Server) banner(r *http.Request, key, want, msg string) *view.Banner {
	if r.URL.Query().Get(key) != want {
		return nil
	}
	return view.NewBanner(msg, s.BannerTimeout)
}

// localPath returns target if it is a path on this site, otherwise fallback.
func localPath(target, fallback string) string {
	// Browsers read a backslash as a slash, making /\host protocol-relative.
	if target == "" || strings.Contains(target, `\`) {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") || strings.Contains(u.Path, `\`) {
		return fallback
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
