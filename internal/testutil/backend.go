// Package testutil provides a fake FutoFind backend and credential helpers
// for tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/futofind/futofind/internal/model"
)

// Recorded is one request seen by the fake backend.
type Recorded struct {
	Method        string
	Path          string
	Query         url.Values
	Authorization string
	ContentType   string
	RequestID     string
	Form          map[string]string
	Files         map[string]int
	JSON          map[string]any
}

type account struct {
	session  model.Session
	password string
}

type failure struct {
	status  int
	message string
}

// Backend is an in-memory stand-in for the remote REST API.
type Backend struct {
	Server *httptest.Server

	mu            sync.Mutex
	accounts      map[string]*account // by email
	tokens        map[string]string   // token -> email
	items         []model.Item
	claims        []model.Claim
	notifications map[string][]model.Notification // by user id
	requests      []Recorded
	failures      map[string]failure
	seq           int
}

// NewBackend starts a fake backend that is closed when the test ends.
func NewBackend(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{
		accounts:      make(map[string]*account),
		tokens:        make(map[string]string),
		notifications: make(map[string][]model.Notification),
		failures:      make(map[string]failure),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", b.register)
	mux.HandleFunc("POST /api/auth/login", b.login)
	mux.HandleFunc("POST /api/items", b.authed(b.createItem))
	mux.HandleFunc("GET /api/items", b.authed(b.listItems))
	mux.HandleFunc("GET /api/items/{id}", b.authed(b.getItem))
	mux.HandleFunc("POST /api/items/{id}/claim", b.authed(b.claimItem))
	mux.HandleFunc("GET /api/users/my-items", b.authed(b.myItems))
	mux.HandleFunc("GET /api/users/my-claims", b.authed(b.myClaims))
	mux.HandleFunc("GET /api/notifications", b.authed(b.listNotifications))
	mux.HandleFunc("PATCH /api/notifications/read", b.authed(b.markRead))
	mux.HandleFunc("GET /api/admin/claims", b.authed(b.adminOnly(b.pendingClaims)))
	mux.HandleFunc("PATCH /api/admin/claims/{id}", b.authed(b.adminOnly(b.resolveClaim)))

	b.Server = httptest.NewServer(b.record(mux))
	t.Cleanup(b.Server.Close)
	return b
}

// URL returns the API base URL.
func (b *Backend) URL() string {
	return b.Server.URL + "/api"
}

// AddUser registers an account that can log in with password. The session
// token is used as the bearer credential.
func (b *Backend) AddUser(s model.Session, password string) model.Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	if s.UserID == "" {
		b.seq++
		s.UserID = fmt.Sprintf("user-%d", b.seq)
	}
	if s.Token == "" {
		s.Token = "tok-" + s.UserID
	}
	b.accounts[s.Email] = &account{session: s, password: password}
	b.tokens[s.Token] = s.Email
	return s
}

// AddItem stores an item and returns it with an ID assigned.
func (b *Backend) AddItem(item model.Item) model.Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	if item.ID == "" {
		b.seq++
		item.ID = fmt.Sprintf("item-%d", b.seq)
	}
	if item.Status == "" {
		item.Status = model.ItemStatusFound
	}
	b.items = append(b.items, item)
	return item
}

// AddClaim stores a claim and returns it with an ID assigned.
func (b *Backend) AddClaim(c model.Claim) model.Claim {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c.ID == "" {
		b.seq++
		c.ID = fmt.Sprintf("claim-%d", b.seq)
	}
	if c.Status == "" {
		c.Status = model.ClaimStatusPending
	}
	b.claims = append(b.claims, c)
	return c
}

// AddNotification stores a notification for userID.
func (b *Backend) AddNotification(userID string, n model.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n.ID == "" {
		b.seq++
		n.ID = fmt.Sprintf("note-%d", b.seq)
	}
	b.notifications[userID] = append(b.notifications[userID], n)
}

// Claims returns a copy of all stored claims.
func (b *Backend) Claims() []model.Claim {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Claim(nil), b.claims...)
}

// Items returns a copy of all stored items.
func (b *Backend) Items() []model.Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Item(nil), b.items...)
}

// FailWith makes "METHOD /api/path" (pattern as registered, e.g.
// "GET /api/items") answer status with message until cleared.
func (b *Backend) FailWith(route string, status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = failure{status: status, message: message}
}

// ClearFailures removes every injected failure.
func (b *Backend) ClearFailures() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = make(map[string]failure)
}

// Requests returns the requests matching method and path (without /api).
func (b *Backend) Requests(method, path string) []Recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Recorded
	for _, r := range b.requests {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// Count returns the number of requests matching method and path.
func (b *Backend) Count(method, path string) int {
	return len(b.Requests(method, path))
}

// Total returns the number of requests seen.
func (b *Backend) Total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

// Last returns the most recent request matching method and path.
func (b *Backend) Last(method, path string) (Recorded, bool) {
	reqs := b.Requests(method, path)
	if len(reqs) == 0 {
		return Recorded{}, false
	}
	return reqs[len(reqs)-1], true
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		rec := Recorded{
			Method:        r.Method,
			Path:          strings.TrimPrefix(r.URL.Path, "/api"),
			Query:         r.URL.Query(),
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			RequestID:     r.Header.Get("X-Request-ID"),
			Form:          map[string]string{},
			Files:         map[string]int{},
		}
		mediaType, params, _ := mime.ParseMediaType(rec.ContentType)
		switch {
		case mediaType == "multipart/form-data":
			mr := multipart.NewReader(bytes.NewReader(body), params["boundary"])
			for {
				part, err := mr.NextPart()
				if err != nil {
					break
				}
				data, _ := io.ReadAll(part)
				if part.FileName() != "" {
					rec.Files[part.FormName()] = len(data)
				} else {
					rec.Form[part.FormName()] = string(data)
				}
			}
		case mediaType == "application/json":
			json.Unmarshal(body, &rec.JSON)
		}

		b.mu.Lock()
		b.requests = append(b.requests, rec)
		pattern := r.Method + " " + routePattern(r.URL.Path)
		f, failing := b.failures[pattern]
		b.mu.Unlock()

		if failing {
			writeJSON(w, f.status, map[string]string{"message": f.message})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// routePattern maps a concrete path to the registered pattern so failures
// can be injected per route.
func routePattern(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	switch {
	case len(parts) == 3 && parts[1] == "items":
		return "/api/items/{id}"
	case len(parts) == 4 && parts[1] == "items" && parts[3] == "claim":
		return "/api/items/{id}/claim"
	case len(parts) == 4 && parts[1] == "admin" && parts[2] == "claims":
		return "/api/admin/claims/{id}"
	}
	return path
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, s model.Session)

func (b *Backend) authed(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		b.mu.Lock()
		email, known := b.tokens[token]
		var s model.Session
		if known {
			s = b.accounts[email].session
		}
		b.mu.Unlock()
		if !ok || !known {
			writeMessage(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}
		next(w, r, s)
	}
}

func (b *Backend) adminOnly(next sessionHandler) sessionHandler {
	return func(w http.ResponseWriter, r *http.Request, s model.Session) {
		if s.Role != model.RoleAdmin {
			writeMessage(w, http.StatusForbidden, "Not authorized as an admin")
			return
		}
		next(w, r, s)
	}
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name, Email, Password, Role string
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	b.mu.Lock()
	_, exists := b.accounts[req.Email]
	b.mu.Unlock()
	if exists {
		writeMessage(w, http.StatusBadRequest, "User already exists")
		return
	}
	s := b.AddUser(model.Session{Name: req.Name, Email: req.Email, Role: req.Role}, req.Password)
	writeJSON(w, http.StatusCreated, map[string]string{"_id": s.UserID, "message": "Registered"})
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email, Password string
	}
	json.NewDecoder(r.Body).Decode(&req)
	b.mu.Lock()
	acct, ok := b.accounts[req.Email]
	b.mu.Unlock()
	if !ok || acct.password != req.Password {
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	writeJSON(w, http.StatusOK, acct.session)
}

func (b *Backend) createItem(w http.ResponseWriter, r *http.Request, s model.Session) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeMessage(w, http.StatusBadRequest, "Expected multipart form")
		return
	}
	if r.FormValue("title") == "" {
		writeMessage(w, http.StatusBadRequest, "Please add all required fields")
		return
	}
	date, _ := model.ParseTimestamp(r.FormValue("date"))
	item := model.Item{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Location:    r.FormValue("location"),
		Date:        date,
		ReportType:  r.FormValue("reportType"),
		Reporter:    &model.UserRef{ID: s.UserID, Name: s.Name},
		Status:      model.ItemStatusFound,
		CreatedAt:   model.Timestamp{Time: time.Now().UTC()},
	}
	if _, _, err := r.FormFile("image"); err == nil {
		item.ImageURL = "https://images.example/" + item.Title + ".jpg"
	}
	writeJSON(w, http.StatusCreated, b.AddItem(item))
}

func (b *Backend) listItems(w http.ResponseWriter, r *http.Request, _ model.Session) {
	keyword := strings.ToLower(r.URL.Query().Get("keyword"))
	category := r.URL.Query().Get("category")

	b.mu.Lock()
	out := []model.Item{}
	for _, it := range b.items {
		if it.Status != model.ItemStatusFound {
			continue
		}
		if category != "" && it.Category != category {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(it.Title+" "+it.Description), keyword) {
			continue
		}
		out = append(out, it)
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) findItem(id string) (model.Item, bool) {
	for _, it := range b.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}

func (b *Backend) getItem(w http.ResponseWriter, r *http.Request, _ model.Session) {
	b.mu.Lock()
	it, ok := b.findItem(r.PathValue("id"))
	b.mu.Unlock()
	if !ok {
		writeMessage(w, http.StatusNotFound, "Item not found")
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (b *Backend) claimItem(w http.ResponseWriter, r *http.Request, s model.Session) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeMessage(w, http.StatusBadRequest, "Expected multipart form")
		return
	}
	b.mu.Lock()
	it, ok := b.findItem(r.PathValue("id"))
	b.mu.Unlock()
	if !ok {
		writeMessage(w, http.StatusNotFound, "Item not found")
		return
	}
	if r.FormValue("justification") == "" {
		writeMessage(w, http.StatusBadRequest, "Justification is required")
		return
	}
	claim := model.Claim{
		Item:          &it,
		Claimant:      &model.UserRef{ID: s.UserID, Name: s.Name, Email: s.Email},
		Justification: r.FormValue("justification"),
		CreatedAt:     model.Timestamp{Time: time.Now().UTC()},
	}
	if _, _, err := r.FormFile("proofImage"); err == nil {
		claim.ProofImageURL = "https://images.example/proof-" + it.ID + ".jpg"
	}
	writeJSON(w, http.StatusCreated, b.AddClaim(claim))
}

func (b *Backend) myItems(w http.ResponseWriter, _ *http.Request, s model.Session) {
	b.mu.Lock()
	out := []model.Item{}
	for _, it := range b.items {
		if it.Reporter != nil && it.Reporter.ID == s.UserID {
			out = append(out, it)
		}
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) myClaims(w http.ResponseWriter, _ *http.Request, s model.Session) {
	b.mu.Lock()
	out := []model.Claim{}
	for _, c := range b.claims {
		if c.Claimant != nil && c.Claimant.ID == s.UserID {
			out = append(out, c)
		}
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) listNotifications(w http.ResponseWriter, _ *http.Request, s model.Session) {
	b.mu.Lock()
	out := append([]model.Notification{}, b.notifications[s.UserID]...)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) markRead(w http.ResponseWriter, _ *http.Request, s model.Session) {
	b.mu.Lock()
	for i := range b.notifications[s.UserID] {
		b.notifications[s.UserID][i].IsRead = true
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Notifications marked as read"})
}

func (b *Backend) pendingClaims(w http.ResponseWriter, _ *http.Request, _ model.Session) {
	b.mu.Lock()
	out := []model.Claim{}
	for _, c := range b.claims {
		if c.Status == model.ClaimStatusPending {
			out = append(out, c)
		}
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) resolveClaim(w http.ResponseWriter, r *http.Request, _ model.Session) {
	var req struct {
		Decision string `json:"decision"`
	}
	json.NewDecoder(r.Body).Decode(&req)
	if !model.ValidDecision(req.Decision) {
		writeMessage(w, http.StatusBadRequest, "Invalid decision")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.claims {
		if b.claims[i].ID != r.PathValue("id") {
			continue
		}
		b.claims[i].Status = req.Decision
		if c := b.claims[i].Claimant; c != nil {
			b.seq++
			b.notifications[c.ID] = append(b.notifications[c.ID], model.Notification{
				ID:        fmt.Sprintf("note-%d", b.seq),
				Message:   "Your claim has been " + req.Decision + ".",
				CreatedAt: model.Timestamp{Time: time.Now().UTC()},
				Link:      "/my-reports",
			})
		}
		writeJSON(w, http.StatusOK, b.claims[i])
		return
	}
	writeMessage(w, http.StatusNotFound, "Claim not found")
}
