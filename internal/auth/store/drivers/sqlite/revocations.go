package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/nightglass/authkit/internal/auth/domain"
)

type revocationsRepo struct {
	db dbtx
}

// Create is idempotent: revoking an already-revoked token id keeps the
// original record (first revocation time and reason win).
func (r *revocationsRepo) Create(ctx context.Context, rec domain.Revocation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO revocations (token_id, revoked_at, reason)
		VALUES (?, ?, ?)
		ON CONFLICT (token_id) DO NOTHING`,
		rec.TokenID, rec.RevokedAt.UTC(), rec.Reason,
	)
	return mapErr(err)
}

func (r *revocationsRepo) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM revocations WHERE token_id = ?`, tokenID).Scan(&one)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	default:
		return false, mapErr(err)
	}
}

func (r *revocationsRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM revocations WHERE revoked_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}
