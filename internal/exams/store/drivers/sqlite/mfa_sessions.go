package sqlite

import (
	"context"
	"time"

	"github.com/opencourse/transcripts/internal/exams/domain"
	"github.com/opencourse/transcripts/internal/exams/store"
)

type mfaSessionsRepo struct {
	db dbtx
}

const mfaSessionColumns = `id, user_id, token_hash, attempts, created_at, expires_at`

func (r *mfaSessionsRepo) CreateMFASession(ctx context.Context, s domain.MFASession) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO mfa_sessions (id, user_id, token_hash, attempts, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.TokenHash, s.Attempts, s.CreatedAt.UTC(), s.ExpiresAt.UTC(),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *mfaSessionsRepo) GetMFASessionByTokenHash(ctx context.Context, tokenHash string) (domain.MFASession, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+mfaSessionColumns+` FROM mfa_sessions WHERE token_hash = ?`,
		tokenHash)
	return scanMFASession(row)
}

func (r *mfaSessionsRepo) IncrementMFASessionAttempts(ctx context.Context, id string) (domain.MFASession, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE mfa_sessions SET attempts = attempts + 1 WHERE id = ?`, id)
	if err != nil {
		return domain.MFASession{}, err
	}
	if err := requireRowAffected(res); err != nil {
		return domain.MFASession{}, err
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+mfaSessionColumns+` FROM mfa_sessions WHERE id = ?`, id)
	return scanMFASession(row)
}

// DeleteMFASession removes a session. ErrNotFound signals the session was
// already consumed, which is how concurrent verifications stay exactly-once.
func (r *mfaSessionsRepo) DeleteMFASession(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM mfa_sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *mfaSessionsRepo) DeleteExpiredMFASessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM mfa_sessions WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanMFASession(row rowScanner) (domain.MFASession, error) {
	var s domain.MFASession
	if err := row.Scan(&s.ID, &s.UserID, &s.TokenHash, &s.Attempts,
		&s.CreatedAt, &s.ExpiresAt); err != nil {
		return domain.MFASession{}, mapNotFound(err)
	}
	return s, nil
}
