// Package store persists the client's session state between runs: the
// bearer token, its declared expiry, and the serialized user record, each
// under a fixed key in a local SQLite key/value table.
//
// The session manager is the only writer; the API client reads the token
// through the api.CredentialSource interface. There is no parallel writer,
// so no locking beyond SQLite's own.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"

	"todokeeper/internal/client/models"
	"todokeeper/internal/client/store/migrations"
	"todokeeper/internal/dbx"

	_ "modernc.org/sqlite"
)

// Fixed storage keys. Changing these orphans previously persisted sessions.
const (
	keyToken     = "session_token"
	keyExpiresAt = "session_expires_at"
	keyUser      = "user"
)

// Store is the durable session slot. SaveSession replaces the whole slot
// atomically from the caller's perspective.
type Store interface {
	Token(ctx context.Context) (string, error)
	ClearToken(ctx context.Context) error
	SaveSession(ctx context.Context, session models.Session, user *models.User) error
	SaveUser(ctx context.Context, user *models.User) error
	SavedUser(ctx context.Context) (*models.User, error)
	Clear(ctx context.Context) error
}

// SQLiteStore implements Store over a metadata key/value table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an already-opened database handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Open opens (or creates) the store database at dsn and applies the embedded
// migrations.
func Open(ctx context.Context, dsn string) (*SQLiteStore, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("store open error: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("store migration error: %w", err)
	}
	return NewSQLiteStore(db), db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func getValue(ctx context.Context, db dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

// setValue is an indirection used to facilitate testing of partial failures.
var setValue = func(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

// Token returns the persisted bearer token, or "" when none is stored.
func (s *SQLiteStore) Token(ctx context.Context) (string, error) {
	v, err := getValue(ctx, s.db, keyToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// ClearToken removes only the credential, leaving the user record for the
// session manager to discard. Used by the API client on a 401.
func (s *SQLiteStore) ClearToken(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, keyToken)
	if err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// SaveSession replaces the whole slot: token, expiry, and user. The three
// writes run in one transaction, so a failed save rolls back and leaves the
// previous slot intact rather than a half-written mix.
func (s *SQLiteStore) SaveSession(ctx context.Context, session models.Session, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user: %w", err)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := setValue(ctx, tx, keyToken, []byte(session.Token)); err != nil {
			return err
		}
		if err := setValue(ctx, tx, keyExpiresAt, []byte(session.ExpiresAt.Format(time.RFC3339))); err != nil {
			return err
		}
		return setValue(ctx, tx, keyUser, data)
	})
}

// SaveUser replaces only the persisted user record, e.g. after rehydration
// returns a fresher representation.
func (s *SQLiteStore) SaveUser(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user: %w", err)
	}
	return setValue(ctx, s.db, keyUser, data)
}

// SavedUser returns the persisted user record. A corrupt record is treated
// as absence of a session, not a fatal error.
func (s *SQLiteStore) SavedUser(ctx context.Context) (*models.User, error) {
	v, err := getValue(ctx, s.db, keyUser)
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, nil
	}
	var user models.User
	if err := json.Unmarshal(v, &user); err != nil {
		return nil, nil
	}
	return &user, nil
}

// Clear wipes the whole slot. A single statement, atomic on its own.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM metadata`)
	if err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	return nil
}
