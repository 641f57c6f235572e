// Package session holds the process-wide authenticated identity. It is the
// only place the current session is mutated; the bearer credential and the
// notification cache follow it.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/futofind/futofind/internal/auth"
	"github.com/futofind/futofind/internal/model"
)

// Persister stores the session record across restarts.
type Persister interface {
	Load(ctx context.Context) (*model.Session, error)
	Save(ctx context.Context, s model.Session) error
	Clear(ctx context.Context) error
}

// Credentialer attaches the bearer credential to outgoing backend calls.
type Credentialer interface {
	SetCredential(token string)
	ClearCredential()
}

// Notifications is the part of the notification cache the store drives.
type Notifications interface {
	Refresh(ctx context.Context)
	Reset()
}

// Store owns the current session.
type Store struct {
	persist Persister
	creds   Credentialer
	notes   Notifications
	now     func() time.Time

	mu      sync.RWMutex
	current *model.Session
}

// New creates a logged-out store.
func New(p Persister, c Credentialer, n Notifications) *Store {
	return &Store{persist: p, creds: c, notes: n, now: time.Now}
}

// Restore makes the persisted session current, if there is one. A record
// whose JWT credential has expired is cleared instead.
func (s *Store) Restore(ctx context.Context) error {
	rec, err := s.persist.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	if rec == nil {
		return nil
	}
	if auth.CredentialExpired(rec.Token, s.now()) {
		slog.Info("persisted session expired, clearing", "user", rec.Email)
		if err := s.persist.Clear(ctx); err != nil {
			return fmt.Errorf("clearing expired session: %w", err)
		}
		return nil
	}

	s.activate(*rec)
	slog.Info("session restored", "user", rec.Email, "role", rec.Role)
	s.notes.Refresh(ctx)
	return nil
}

// Login persists sess and makes it current.
func (s *Store) Login(ctx context.Context, sess model.Session) error {
	if err := s.persist.Save(ctx, sess); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	s.activate(sess)
	slog.Info("user logged in", "user", sess.Email, "role", sess.Role)
	s.notes.Refresh(ctx)
	return nil
}

// Logout forgets the session locally. The backend is not contacted.
func (s *Store) Logout(ctx context.Context) error {
	err := s.persist.Clear(ctx)

	s.mu.Lock()
	prev := s.current
	s.current = nil
	s.creds.ClearCredential()
	s.mu.Unlock()
	s.notes.Reset()

	if prev != nil {
		slog.Info("user logged out", "user", prev.Email)
	}
	if err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Current returns the active session. ok is false when logged out.
func (s *Store) Current() (model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return model.Session{}, false
	}
	return *s.current, true
}

func (s *Store) activate(sess model.Session) {
	s.mu.Lock()
	s.current = &sess
	s.creds.SetCredential(sess.Token)
	s.mu.Unlock()
}
