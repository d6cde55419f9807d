package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/nightglass/authkit/internal/auth/domain"
	"github.com/nightglass/authkit/internal/auth/store"
)

type refreshTokensRepo struct {
	db dbtx
}

func (r *refreshTokensRepo) Create(ctx context.Context, t domain.RefreshToken) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens
			(id, subject, tenant, roles, lineage_id, fingerprint, issued_at, expires_at, revoked, replaced_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, NULL)`,
		t.ID, t.Subject, t.Tenant, joinRoles(t.Roles), t.LineageID, t.Fingerprint,
		t.IssuedAt.UTC(), t.ExpiresAt.UTC(),
	)
	return mapErr(err)
}

func (r *refreshTokensRepo) GetByFingerprint(ctx context.Context, fp string) (domain.RefreshToken, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, subject, tenant, roles, lineage_id, fingerprint,
		       issued_at, expires_at, revoked, replaced_by, created_at, updated_at
		FROM refresh_tokens WHERE fingerprint = ?`, fp)
	return scanRefreshToken(row)
}

// MarkReplaced is the rotate-on-use arbiter: the WHERE clause only matches
// a live token, so of two concurrent rotations exactly one row update
// succeeds and the loser observes ErrAlreadyReplaced.
func (r *refreshTokensRepo) MarkReplaced(ctx context.Context, id, newID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE refresh_tokens
		SET replaced_by = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND replaced_by IS NULL AND revoked = 0`,
		newID, id,
	)
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapErr(err)
	}
	if n == 0 {
		return errAlreadyReplaced(ctx, r.db, id)
	}
	return nil
}

func (r *refreshTokensRepo) Revoke(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE refresh_tokens
		SET revoked = 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, id)
	return mapErr(err)
}

func (r *refreshTokensRepo) RevokeLineage(ctx context.Context, lineageID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE refresh_tokens
		SET revoked = 1, updated_at = CURRENT_TIMESTAMP
		WHERE lineage_id = ? AND revoked = 0`, lineageID)
	return mapErr(err)
}

func (r *refreshTokensRepo) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}

// errAlreadyReplaced distinguishes a lost race from a missing row after a
// zero-row conditional update.
func errAlreadyReplaced(ctx context.Context, db dbtx, id string) error {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM refresh_tokens WHERE id = ?`, id).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return store.ErrNotFound
	case err != nil:
		return mapErr(err)
	default:
		return store.ErrAlreadyReplaced
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRefreshToken(row rowScanner) (domain.RefreshToken, error) {
	var (
		t       domain.RefreshToken
		roles   string
		revoked int
		repl    sql.NullString
	)
	err := row.Scan(
		&t.ID, &t.Subject, &t.Tenant, &roles, &t.LineageID, &t.Fingerprint,
		&t.IssuedAt, &t.ExpiresAt, &revoked, &repl, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.RefreshToken{}, mapErr(err)
	}
	t.Roles = splitRoles(roles)
	t.Revoked = revoked != 0
	if repl.Valid {
		v := repl.String
		t.ReplacedBy = &v
	}
	return t, nil
}
