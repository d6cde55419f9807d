package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/nightglass/authkit/internal/auth/domain"
)

type signingKeysRepo struct {
	db dbtx
}

func (r *signingKeysRepo) Create(ctx context.Context, key domain.SigningKey) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO signing_keys (id, kid, algorithm, private_key_encrypted, created_at, retired_at, expires_at)
		VALUES (?, ?, ?, ?, ?, NULL, ?)`,
		key.ID, key.Kid, key.Algorithm, key.PrivateKeyEncrypted,
		key.CreatedAt.UTC(), key.ExpiresAt.UTC(),
	)
	return mapErr(err)
}

func (r *signingKeysRepo) GetByKid(ctx context.Context, kid string) (domain.SigningKey, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, kid, algorithm, private_key_encrypted, created_at, retired_at, expires_at
		FROM signing_keys WHERE kid = ?`, kid)
	return scanSigningKey(row)
}

func (r *signingKeysRepo) ListUsable(ctx context.Context, now time.Time) ([]domain.SigningKey, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kid, algorithm, private_key_encrypted, created_at, retired_at, expires_at
		FROM signing_keys
		WHERE expires_at > ?
		ORDER BY created_at DESC`, now.UTC())
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var keys []domain.SigningKey
	for rows.Next() {
		k, err := scanSigningKey(rows)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}
	return keys, nil
}

func (r *signingKeysRepo) Retire(ctx context.Context, kid string, at, notAfter time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE signing_keys
		SET retired_at = ?, expires_at = MIN(expires_at, ?)
		WHERE kid = ? AND retired_at IS NULL`,
		at.UTC(), notAfter.UTC(), kid)
	return mapErr(err)
}

func (r *signingKeysRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM signing_keys WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}

func scanSigningKey(row rowScanner) (domain.SigningKey, error) {
	var (
		k       domain.SigningKey
		retired sql.NullTime
	)
	err := row.Scan(&k.ID, &k.Kid, &k.Algorithm, &k.PrivateKeyEncrypted,
		&k.CreatedAt, &retired, &k.ExpiresAt)
	if err != nil {
		return domain.SigningKey{}, mapErr(err)
	}
	if retired.Valid {
		t := retired.Time
		k.RetiredAt = &t
	}
	return k, nil
}
