// Package store defines the credential store contract. Concrete drivers
// live under drivers/; the service layer only sees these interfaces.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/nightglass/authkit/internal/auth/domain"
)

var (
	// ErrNotFound reports a missing record. It is the only store failure
	// the token engine may interpret on its own; everything else is
	// ErrUnavailable and must never be read as "not revoked".
	ErrNotFound = errors.New("store: not found")

	// ErrAlreadyExists reports a unique constraint violation.
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrAlreadyReplaced reports a MarkReplaced that lost the race: the
	// token was rotated (or revoked) by a concurrent call.
	ErrAlreadyReplaced = errors.New("store: refresh token already replaced")

	// ErrUnavailable wraps driver-level failures (connection loss, i/o
	// errors, timeouts).
	ErrUnavailable = errors.New("store: unavailable")
)

// Store is the root data access interface.
type Store interface {
	RefreshTokens() RefreshTokens
	Revocations() Revocations
	SigningKeys() SigningKeys

	ApplyMigrations() error

	// WithTx executes fn within a transaction: rolled back when fn errors,
	// committed otherwise. Multi-step operations that must be atomic (the
	// rotate-on-use unit in particular) go through here.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the backing database is reachable.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store.
type Tx interface {
	RefreshTokens() RefreshTokens
	Revocations() Revocations
	SigningKeys() SigningKeys
}

type RefreshTokens interface {
	// Create persists a new refresh token record.
	Create(ctx context.Context, t domain.RefreshToken) error

	// GetByFingerprint returns the record matching the fingerprint of a
	// presented opaque token.
	GetByFingerprint(ctx context.Context, fp string) (domain.RefreshToken, error)

	// MarkReplaced links the record to its successor. The update is
	// conditional on the record being neither replaced nor revoked, so of
	// two concurrent rotations exactly one succeeds; the loser gets
	// ErrAlreadyReplaced.
	MarkReplaced(ctx context.Context, id, newID string) error

	// Revoke flips the revoked flag. Idempotent.
	Revoke(ctx context.Context, id string) error

	// RevokeLineage revokes every token in a lineage, used or not. This
	// is the cascade behind replay detection.
	RevokeLineage(ctx context.Context, lineageID string) error

	// DeleteExpiredBefore removes records whose expiry (plus the caller's
	// grace period) is behind cutoff. Returns the number removed.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Revocations interface {
	// Create inserts a revocation record. Inserting the same token id
	// twice is a no-op, not an error.
	Create(ctx context.Context, r domain.Revocation) error

	// IsRevoked reports whether a record exists for the token id.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)

	// DeleteBefore removes records revoked before cutoff. Returns the
	// number removed.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type SigningKeys interface {
	// Create stores a new signing key with encrypted private material.
	Create(ctx context.Context, key domain.SigningKey) error

	// GetByKid fetches one key.
	GetByKid(ctx context.Context, kid string) (domain.SigningKey, error)

	// ListUsable returns all keys whose verification window is still open
	// at now, newest first. Includes the active key.
	ListUsable(ctx context.Context, now time.Time) ([]domain.SigningKey, error)

	// Retire stamps retired_at on the key and caps its verification
	// window at notAfter.
	Retire(ctx context.Context, kid string, at, notAfter time.Time) error

	// DeleteExpired removes keys past their verification window.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
