package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/forensicvideo/console/internal/client/models"
	"github.com/forensicvideo/console/internal/logging"
)

// SQLiteStore keeps the session in a local SQLite database, one row per key.
// Each write is a single upsert, so individual entries are atomic even when
// the token/user pair as a whole is not.
type SQLiteStore struct {
	db  *sql.DB
	log logging.Logger
}

func NewSQLiteStore(db *sql.DB, log logging.Logger) *SQLiteStore {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &SQLiteStore{db: db, log: log}
}

func (s *SQLiteStore) get(ctx context.Context, key string) []byte {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		// Fails open: an unreadable store means "no session".
		s.log.Warn(ctx, "session read failed", "key", key, "err", err)
		return nil
	}
	return value
}

func (s *SQLiteStore) set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Token(ctx context.Context) string {
	return string(s.get(ctx, KeyAccessToken))
}

func (s *SQLiteStore) User(ctx context.Context) *models.UserProfile {
	raw := s.get(ctx, KeyUser)
	if len(raw) == 0 {
		return nil
	}
	var u models.UserProfile
	if err := json.Unmarshal(raw, &u); err != nil {
		s.log.Warn(ctx, "discarding malformed stored profile", "err", err)
		return nil
	}
	return &u
}

func (s *SQLiteStore) SetToken(ctx context.Context, token string) error {
	return s.set(ctx, KeyAccessToken, []byte(token))
}

func (s *SQLiteStore) SetUser(ctx context.Context, user *models.UserProfile) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	return s.set(ctx, KeyUser, raw)
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
