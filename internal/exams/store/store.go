package store

import (
	"context"
	"errors"
	"time"

	"github.com/opencourse/transcripts/internal/exams/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and to stop callers from accidentally nesting transactions.
type Store interface {
	Users() Users
	Exams() Exams
	Assignments() Assignments
	MFASessions() MFASessions
	SigningKeys() SigningKeys

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks a user up by email. Callers normalize the email
	// first (domain.NormalizeEmail); the column stores the canonical form.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// A duplicate email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// ListUsers returns all users ordered by creation date (newest first).
	ListUsers(ctx context.Context) ([]domain.User, error)

	// ListUsersByRole returns users holding one role, same ordering.
	ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error)

	// UpdateMFASecret sets the (not yet active) TOTP secret for a user.
	UpdateMFASecret(ctx context.Context, userID string, secret string) error

	// EnableMFA marks MFA as enabled for a user (sets mfa_enabled timestamp).
	EnableMFA(ctx context.Context, userID string) error

	// DisableMFA disables MFA for a user (clears mfa_enabled and mfa_secret).
	DisableMFA(ctx context.Context, userID string) error

	// IsEmpty returns true if there are no users. Gates bootstrap.
	IsEmpty(ctx context.Context) (bool, error)
}

type Exams interface {
	// GetExamByID returns an exam by id.
	GetExamByID(ctx context.Context, id string) (domain.Exam, error)

	// ListExams returns the catalog ordered by exam date (soonest first).
	ListExams(ctx context.Context) ([]domain.Exam, error)

	// CreateExam inserts a new exam. A duplicate title yields ErrAlreadyExists.
	CreateExam(ctx context.Context, e domain.Exam) error

	// DeleteExam removes an exam; assignments cascade per schema.
	DeleteExam(ctx context.Context, id string) error

	// GetExamStatistics aggregates grading progress for one exam.
	GetExamStatistics(ctx context.Context, examID string) (domain.ExamStatistics, error)
}

type Assignments interface {
	// CreateAssignment inserts a registration. The composite primary key
	// (user_id, exam_id) rejects duplicates with ErrAlreadyExists, which is
	// what makes concurrent registration exactly-once.
	CreateAssignment(ctx context.Context, a domain.Assignment) error

	// GetAssignment returns one assignment by its composite identity.
	GetAssignment(ctx context.Context, userID, examID string) (domain.Assignment, error)

	// SetVoteIfUngraded records the vote with a single conditional UPDATE
	// (WHERE vote IS NULL) so concurrent grades have exactly one winner.
	// Returns ErrNotFound when no such assignment exists and
	// ErrAlreadyExists when a vote is already recorded.
	SetVoteIfUngraded(ctx context.Context, userID, examID string, vote float64, gradedAt time.Time) (domain.Assignment, error)

	// ListUngraded returns assignments with no vote, joined with user email
	// and exam details, ordered by registration time. userID optionally
	// narrows to one user's assignments ("" means all).
	ListUngraded(ctx context.Context, userID string) ([]domain.AssignmentDetail, error)

	// ListForUser returns all of one user's assignments, graded and not,
	// joined with exam details, ordered by exam date.
	ListForUser(ctx context.Context, userID string) ([]domain.AssignmentDetail, error)

	// ListForExam returns all of one exam's assignments joined with user
	// emails, ordered by email. Feeds the results export.
	ListForExam(ctx context.Context, examID string) ([]domain.AssignmentDetail, error)
}

type MFASessions interface {
	// CreateMFASession creates a new pending MFA challenge.
	CreateMFASession(ctx context.Context, s domain.MFASession) error

	// GetMFASessionByTokenHash retrieves a session by the SHA-256
	// fingerprint of its opaque token.
	GetMFASessionByTokenHash(ctx context.Context, tokenHash string) (domain.MFASession, error)

	// IncrementMFASessionAttempts bumps the failed attempt counter and
	// returns the updated session.
	IncrementMFASessionAttempts(ctx context.Context, id string) (domain.MFASession, error)

	// DeleteMFASession removes a session by id (consumption or lockout).
	DeleteMFASession(ctx context.Context, id string) error

	// DeleteExpiredMFASessions removes sessions past expiry (housekeeping).
	DeleteExpiredMFASessions(ctx context.Context, now time.Time) (int64, error)
}

type SigningKeys interface {
	// CreateSigningKey stores a new signing key with encrypted private key material.
	CreateSigningKey(ctx context.Context, k domain.SigningKey) error

	// ListSigningKeys returns all signing keys, retired included, ordered
	// by creation date (newest first). Retired keys still verify tokens
	// during the rotation grace period.
	ListSigningKeys(ctx context.Context) ([]domain.SigningKey, error)

	// RetireSigningKey marks a key retired and schedules its deletion.
	// Retired keys verify but no longer sign.
	RetireSigningKey(ctx context.Context, kid string, retiredAt, expiresAt time.Time) error

	// DeleteExpiredSigningKeys removes keys past their expires_at and
	// returns their kids so in-memory key sets can drop them too.
	DeleteExpiredSigningKeys(ctx context.Context, now time.Time) ([]string, error)
}
