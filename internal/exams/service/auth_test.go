package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"

	"github.com/opencourse/transcripts/internal/exams/domain"
	"github.com/opencourse/transcripts/internal/exams/store/drivers/sqlite"
)

func newAuthService(t *testing.T) (*AuthService, *sqlite.Store) {
	t.Helper()

	s := newTestStore(t)
	auth := &AuthService{
		Store:  s,
		Tokens: newTokenService(t),
		MFATTL: 5 * time.Minute,
	}

	return auth, s
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	auth, s := newAuthService(t)

	user := seedUser(t, s, domain.RoleUser, "correct horse battery staple")

	session, err := auth.Login(ctx, user.Email, "correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, session.AccessToken)
	require.Equal(t, user.ID, session.User.ID)

	actor, err := auth.Tokens.Validate(session.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, actor.UserID)
	require.Equal(t, domain.RoleUser, actor.Role)
}

func TestLoginNormalizesEmail(t *testing.T) {
	ctx := context.Background()
	auth, s := newAuthService(t)

	user := seedUser(t, s, domain.RoleUser, "pw-123456")

	// Mixed case and surrounding whitespace still reach the same account.
	session, err := auth.Login(ctx, "  "+strings.ToUpper(user.Email)+" ", "pw-123456")
	require.NoError(t, err)
	require.Equal(t, user.ID, session.User.ID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	auth, s := newAuthService(t)

	user := seedUser(t, s, domain.RoleUser, "right-password")

	_, unknownErr := auth.Login(ctx, "nobody@example.com", "whatever")
	_, wrongErr := auth.Login(ctx, user.Email, "wrong-password")

	// Unknown email and wrong password produce the exact same error, so
	// the login surface cannot be used to probe which emails exist.
	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	require.Equal(t, unknownErr, wrongErr)
}

func TestLoginWithMFAEnrolled(t *testing.T) {
	ctx := context.Background()
	auth, s := newAuthService(t)

	user := seedUser(t, s, domain.RoleSupervisor, "pw-mfa-999")
	secret := enableMFA(t, s, user.ID)

	// Password alone yields a challenge, never a session.
	_, err := auth.Login(ctx, user.Email, "pw-mfa-999")

	var challenge *MFARequiredError
	require.ErrorAs(t, err, &challenge)
	require.NotEmpty(t, challenge.MFAToken)
	require.Equal(t, []string{"totp"}, challenge.Methods)

	// The right code completes the login.
	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	session, err := auth.VerifyMFA(ctx, challenge.MFAToken, code)
	require.NoError(t, err)
	require.Equal(t, user.ID, session.User.ID)

	// The challenge is single-use: replaying it fails even with a valid code.
	code, err = totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	_, err = auth.VerifyMFA(ctx, challenge.MFAToken, code)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyMFARejectsUnknownToken(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuthService(t)

	_, err := auth.VerifyMFA(ctx, "never-issued", "123456")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyMFAAttemptCap(t *testing.T) {
	ctx := context.Background()
	auth, s := newAuthService(t)

	user := seedUser(t, s, domain.RoleUser, "pw-cap-111")
	secret := enableMFA(t, s, user.ID)

	_, err := auth.Login(ctx, user.Email, "pw-cap-111")
	var challenge *MFARequiredError
	require.ErrorAs(t, err, &challenge)

	// Failures below the cap read as bad credentials.
	for i := 0; i < domain.MaxMFAAttempts-1; i++ {
		_, err := auth.VerifyMFA(ctx, challenge.MFAToken, "000000")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// The failure that hits the cap kills the challenge outright.
	_, err = auth.VerifyMFA(ctx, challenge.MFAToken, "000000")
	require.ErrorIs(t, err, ErrTooManyAttempts)

	// Even the right code is useless now.
	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	_, err = auth.VerifyMFA(ctx, challenge.MFAToken, code)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyMFAExpiredChallenge(t *testing.T) {
	ctx := context.Background()
	auth, s := newAuthService(t)
	auth.MFATTL = -time.Minute // challenges are born expired

	user := seedUser(t, s, domain.RoleUser, "pw-exp-222")
	secret := enableMFA(t, s, user.ID)

	_, err := auth.Login(ctx, user.Email, "pw-exp-222")
	var challenge *MFARequiredError
	require.ErrorAs(t, err, &challenge)

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	_, err = auth.VerifyMFA(ctx, challenge.MFAToken, code)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

// enableMFA enrolls and activates a TOTP secret directly through the store,
// returning the shared secret for minting codes.
func enableMFA(t *testing.T, s *sqlite.Store, userID string) string {
	t.Helper()
	ctx := context.Background()

	key, err := totp.Generate(totp.GenerateOpts{Issuer: "test", AccountName: "test"})
	require.NoError(t, err)

	require.NoError(t, s.Users().UpdateMFASecret(ctx, userID, key.Secret()))
	require.NoError(t, s.Users().EnableMFA(ctx, userID))

	return key.Secret()
}
