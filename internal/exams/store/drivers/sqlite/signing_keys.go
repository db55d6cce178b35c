package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/opencourse/transcripts/internal/exams/domain"
	"github.com/opencourse/transcripts/internal/exams/store"
)

type signingKeysRepo struct {
	db dbtx
}

const signingKeyColumns = `id, kid, algorithm, private_key_encrypted, created_at, retired_at, expires_at`

func (r *signingKeysRepo) CreateSigningKey(ctx context.Context, k domain.SigningKey) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO signing_keys (id, kid, algorithm, private_key_encrypted, created_at, retired_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		k.ID, k.Kid, k.Algorithm, k.PrivateKeyEncrypted, k.CreatedAt.UTC(),
		mapOptionalTime(k.RetiredAt), mapOptionalTime(k.ExpiresAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *signingKeysRepo) ListSigningKeys(ctx context.Context) ([]domain.SigningKey, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+signingKeyColumns+` FROM signing_keys ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SigningKey
	for rows.Next() {
		var (
			k         domain.SigningKey
			retiredAt sql.NullTime
			expiresAt sql.NullTime
		)
		if err := rows.Scan(&k.ID, &k.Kid, &k.Algorithm, &k.PrivateKeyEncrypted,
			&k.CreatedAt, &retiredAt, &expiresAt); err != nil {
			return nil, err
		}
		k.RetiredAt = mapNullTimePtr(retiredAt)
		k.ExpiresAt = mapNullTimePtr(expiresAt)
		out = append(out, k)
	}
	return out, rows.Err()
}

// RetireSigningKey only matches active keys, so a retired key's grace
// window can never be extended by retiring it again.
func (r *signingKeysRepo) RetireSigningKey(ctx context.Context, kid string, retiredAt, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE signing_keys SET retired_at = ?, expires_at = ?
		 WHERE kid = ? AND retired_at IS NULL`,
		retiredAt.UTC(), expiresAt.UTC(), kid)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *signingKeysRepo) DeleteExpiredSigningKeys(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`DELETE FROM signing_keys WHERE expires_at IS NOT NULL AND expires_at <= ? RETURNING kid`,
		now.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var kids []string
	for rows.Next() {
		var kid string
		if err := rows.Scan(&kid); err != nil {
			return nil, err
		}
		kids = append(kids, kid)
	}
	return kids, rows.Err()
}
