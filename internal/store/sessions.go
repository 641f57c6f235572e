package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/futofind/futofind/internal/auth"
	"github.com/futofind/futofind/internal/model"
)

// SessionKey is the well-known settings key of the persisted session record.
const SessionKey = "futofind_user"

// sessionRecord is the persisted form of model.Session. The credential is
// sealed; the remaining fields are stored as-is.
type sessionRecord struct {
	UserID      string `json:"_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	SealedToken string `json:"token"`
}

// SaveSession persists s, sealing its credential.
func SaveSession(ctx context.Context, db *sql.DB, sealer *auth.Sealer, s model.Session) error {
	sealed, err := sealer.Seal(s.Token)
	if err != nil {
		return fmt.Errorf("sealing credential: %w", err)
	}
	data, err := json.Marshal(sessionRecord{
		UserID:      s.UserID,
		Name:        s.Name,
		Email:       s.Email,
		Role:        s.Role,
		SealedToken: sealed,
	})
	if err != nil {
		return fmt.Errorf("encoding session record: %w", err)
	}
	return SetSetting(ctx, db, SessionKey, string(data))
}

// LoadSession returns the persisted session, or nil if none is stored.
// A record that cannot be decoded or unsealed (for example after the key
// file was replaced) is discarded and reported as absent.
func LoadSession(ctx context.Context, db *sql.DB, sealer *auth.Sealer) (*model.Session, error) {
	raw, ok, err := GetSetting(ctx, db, SessionKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var rec sessionRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		slog.Warn("discarding unreadable session record", "error", err)
		return nil, ClearSession(ctx, db)
	}
	token, err := sealer.Open(rec.SealedToken)
	if err != nil {
		if errors.Is(err, auth.ErrUnseal) {
			slog.Warn("discarding session record sealed with another key")
			return nil, ClearSession(ctx, db)
		}
		return nil, fmt.Errorf("unsealing credential: %w", err)
	}

	return &model.Session{
		UserID: rec.UserID,
		Name:   rec.Name,
		Email:  rec.Email,
		Role:   rec.Role,
		Token:  token,
	}, nil
}

// ClearSession removes the persisted session record.
func ClearSession(ctx context.Context, db *sql.DB) error {
	return DeleteSetting(ctx, db, SessionKey)
}

// SessionRecord persists the session in the local database. It satisfies
// session.Persister.
type SessionRecord struct {
	DB     *sql.DB
	Sealer *auth.Sealer
}

// Load implements session.Persister.
func (r *SessionRecord) Load(ctx context.Context) (*model.Session, error) {
	return LoadSession(ctx, r.DB, r.Sealer)
}

// Save implements session.Persister.
func (r *SessionRecord) Save(ctx context.Context, s model.Session) error {
	return SaveSession(ctx, r.DB, r.Sealer, s)
}

// Clear implements session.Persister.
func (r *SessionRecord) Clear(ctx context.Context) error {
	return ClearSession(ctx, r.DB)
}
