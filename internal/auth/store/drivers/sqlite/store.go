// Package sqlite implements the credential store on an embedded SQLite
// database. Queries are hand-written; migrations are embedded and applied
// with golang-migrate.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nightglass/authkit/internal/auth/store"

	_ "modernc.org/sqlite"
)

// dbtx is the common surface of *sql.DB and *sql.Tx the repos run on.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db  *sql.DB
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	// Serialized access avoids SQLITE_BUSY under concurrent rotations.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: enable foreign keys: %w", err)
	}

	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return mapErr(err)
	}
	return nil
}

// WithTx executes fn within a transaction, handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapErr(err)
	}

	// Safe to call after commit; covers early returns and panics.
	defer func() { _ = tx.Rollback() }()

	if err := fn(&txStore{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *Store) RefreshTokens() store.RefreshTokens { return &refreshTokensRepo{db: s.db} }
func (s *Store) Revocations() store.Revocations     { return &revocationsRepo{db: s.db} }
func (s *Store) SigningKeys() store.SigningKeys     { return &signingKeysRepo{db: s.db} }

// txStore scopes the repos to one transaction.
type txStore struct {
	tx *sql.Tx
}

func (t *txStore) RefreshTokens() store.RefreshTokens { return &refreshTokensRepo{db: t.tx} }
func (t *txStore) Revocations() store.Revocations     { return &revocationsRepo{db: t.tx} }
func (t *txStore) SigningKeys() store.SigningKeys     { return &signingKeysRepo{db: t.tx} }

// mapErr converts driver errors to the store sentinels. Anything that is
// not a recognizable data condition is an availability problem.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return store.ErrNotFound
	case strings.Contains(err.Error(), "UNIQUE constraint"):
		return store.ErrAlreadyExists
	default:
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
}

// joinRoles / splitRoles flatten the role set for storage.
func joinRoles(roles []string) string { return strings.Join(roles, " ") }

func splitRoles(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Fields(s)
}
