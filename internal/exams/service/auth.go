package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/pquerna/otp/totp"

	"github.com/opencourse/transcripts/internal/exams/domain"
	"github.com/opencourse/transcripts/internal/exams/store"
	"github.com/opencourse/transcripts/pkg/cryptox"
	"github.com/opencourse/transcripts/pkg/examsdk"
	"github.com/opencourse/transcripts/pkg/idx"
	"github.com/opencourse/transcripts/pkg/jwtx"
	"github.com/opencourse/transcripts/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrTooManyAttempts    = errors.New("too_many_attempts")
)

// MFARequiredError is an alias to the SDK's MFARequiredError for consistency.
// Use examsdk.MFARequiredError directly in new code.
type MFARequiredError = examsdk.MFARequiredError

// decoyHash is an argon2id digest of a throwaway random password. Login
// verifies against it when the email is unknown, so the unknown-email and
// wrong-password paths burn the same hashing work and answer in the same
// time.
var decoyHash = sync.OnceValue(func() string {
	hash, err := cryptox.HashPassword(cryptox.MustGenerateToken(cryptox.TokenSize256))
	if err != nil {
		panic(err)
	}
	return hash
})

// AuthService owns the login flow: password verification, the optional MFA
// challenge round-trip, and session issuance via the token service.
type AuthService struct {
	Store  store.Store
	Tokens *TokenService

	// MFATTL bounds how long a pending MFA challenge stays redeemable.
	MFATTL time.Duration
}

// Login verifies email+password and returns a session, or an
// *MFARequiredError carrying an opaque challenge token when the account has
// a second factor enrolled.
//
// Every failure is ErrInvalidCredentials. Whether the email exists, the
// password was wrong, or the account is in a weird state is never visible
// to the caller, by error or by timing.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	l := slogx.FromContext(ctx)
	email = domain.NormalizeEmail(email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn the same argon2 work as a real check.
			_ = cryptox.VerifyPassword(password, decoyHash())
			return domain.Session{}, ErrInvalidCredentials
		}
		return domain.Session{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login rejected", slog.String("user_id", user.ID))
		return domain.Session{}, ErrInvalidCredentials
	}

	if user.HasMFA() {
		challenge, err := s.beginMFAChallenge(ctx, user)
		if err != nil {
			return domain.Session{}, err
		}

		l.Info("login pending mfa", slog.String("user_id", user.ID))
		return domain.Session{}, &MFARequiredError{
			MFAToken: challenge.MFAToken,
			Methods:  challenge.Methods,
		}
	}

	l.Info("login succeeded", slog.String("user_id", user.ID))
	return s.Tokens.Issue(user, []string{jwtx.AMRPassword})
}

// VerifyMFA redeems a pending challenge with a TOTP code and completes the
// login. A challenge is single-use: of two concurrent verifications with
// the same token, exactly one gets a session.
func (s *AuthService) VerifyMFA(ctx context.Context, mfaToken, code string) (domain.Session, error) {
	l := slogx.FromContext(ctx)
	now := time.Now()

	session, err := s.Store.MFASessions().GetMFASessionByTokenHash(ctx, cryptox.FingerprintToken(mfaToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, ErrInvalidCredentials
		}
		return domain.Session{}, err
	}

	if session.Expired(now) {
		_ = s.Store.MFASessions().DeleteMFASession(ctx, session.ID)
		return domain.Session{}, ErrInvalidCredentials
	}

	if session.Attempts >= domain.MaxMFAAttempts {
		_ = s.Store.MFASessions().DeleteMFASession(ctx, session.ID)
		l.Warn("mfa challenge exhausted", slog.String("user_id", session.UserID))
		return domain.Session{}, ErrTooManyAttempts
	}

	user, err := s.Store.Users().GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = s.Store.MFASessions().DeleteMFASession(ctx, session.ID)
			return domain.Session{}, ErrInvalidCredentials
		}
		return domain.Session{}, err
	}

	if user.MFASecret == nil {
		// MFA was reset between login and verification. The pending
		// challenge is useless, drop it.
		_ = s.Store.MFASessions().DeleteMFASession(ctx, session.ID)
		return domain.Session{}, ErrInvalidCredentials
	}

	if !totp.Validate(code, *user.MFASecret) {
		updated, err := s.Store.MFASessions().IncrementMFASessionAttempts(ctx, session.ID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, err
		}
		if err == nil && updated.Attempts >= domain.MaxMFAAttempts {
			// The failure that hits the cap kills the challenge.
			_ = s.Store.MFASessions().DeleteMFASession(ctx, session.ID)
			l.Warn("mfa challenge exhausted", slog.String("user_id", session.UserID))
			return domain.Session{}, ErrTooManyAttempts
		}
		return domain.Session{}, ErrInvalidCredentials
	}

	// Consume the challenge. ErrNotFound here means a concurrent
	// verification won the race; this caller does not get a session.
	if err := s.Store.MFASessions().DeleteMFASession(ctx, session.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, ErrInvalidCredentials
		}
		return domain.Session{}, err
	}

	l.Info("mfa verification succeeded", slog.String("user_id", user.ID))
	return s.Tokens.Issue(user, []string{jwtx.AMRPassword, jwtx.AMROTP, jwtx.AMRMFA})
}

// beginMFAChallenge stores a fingerprinted single-use challenge and hands
// the opaque token back. Only the fingerprint persists, so a database leak
// never exposes a redeemable token.
func (s *AuthService) beginMFAChallenge(ctx context.Context, user domain.User) (domain.MFAChallenge, error) {
	opaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.MFAChallenge{}, err
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.MFATTL)

	session := domain.MFASession{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TokenHash: cryptox.FingerprintToken(opaque),
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}

	if err := s.Store.MFASessions().CreateMFASession(ctx, session); err != nil {
		return domain.MFAChallenge{}, err
	}

	return domain.MFAChallenge{
		MFAToken:  opaque,
		Methods:   []string{"totp"},
		ExpiresAt: expiresAt,
	}, nil
}
