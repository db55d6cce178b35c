package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/opencourse/transcripts/internal/exams/domain"
	"github.com/opencourse/transcripts/pkg/jwtx"
)

func TestTokenIssueAndValidate(t *testing.T) {
	t.Parallel()

	svc := newTokenService(t)
	user := domain.User{ID: "user-1", Email: "alice@example.com", Role: domain.RoleSupervisor}

	session, err := svc.Issue(user, []string{jwtx.AMRPassword})
	require.NoError(t, err)
	require.NotEmpty(t, session.AccessToken)
	require.Equal(t, "Bearer", session.TokenType)
	require.Equal(t, time.Minute, session.ExpiresIn)

	actor, err := svc.Validate(session.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "user-1", actor.UserID)
	require.Equal(t, domain.RoleSupervisor, actor.Role)
	require.Equal(t, "alice@example.com", actor.Email)
}

func TestTokenValidateRejectsGarbage(t *testing.T) {
	t.Parallel()

	svc := newTokenService(t)

	for _, token := range []string{
		"",
		"not-a-jwt",
		"aaaa.bbbb.cccc",
	} {
		_, err := svc.Validate(token)
		require.ErrorIs(t, err, ErrTokenMalformed, "token %q", token)
	}
}

func TestTokenValidateRejectsTampering(t *testing.T) {
	t.Parallel()

	svc := newTokenService(t)
	user := domain.User{ID: "user-1", Email: "a@example.com", Role: domain.RoleUser}

	session, err := svc.Issue(user, nil)
	require.NoError(t, err)

	// Flip a character in the signature segment.
	raw := []byte(session.AccessToken)
	last := len(raw) - 1
	if raw[last] == 'A' {
		raw[last] = 'B'
	} else {
		raw[last] = 'A'
	}

	_, err = svc.Validate(string(raw))
	require.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenValidateRejectsForeignKey(t *testing.T) {
	t.Parallel()

	// A token signed by a different deployment's keys must not validate,
	// even with identical claims.
	issuing := newTokenService(t)
	validating := newTokenService(t)

	session, err := issuing.Issue(domain.User{ID: "u", Email: "u@example.com", Role: domain.RoleUser}, nil)
	require.NoError(t, err)

	_, err = validating.Validate(session.AccessToken)
	require.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenValidateExpired(t *testing.T) {
	t.Parallel()

	svc := newTokenService(t)
	svc.AccessTTL = -time.Minute // already expired beyond any leeway

	session, err := svc.Issue(domain.User{ID: "u", Email: "u@example.com", Role: domain.RoleUser}, nil)
	require.NoError(t, err)

	_, err = svc.Validate(session.AccessToken)
	require.ErrorIs(t, err, ErrTokenExpired)

	// Expiry and malformedness are distinct failures.
	require.NotErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenValidateRejectsUnknownRole(t *testing.T) {
	t.Parallel()

	svc := newTokenService(t)

	// Sign claims carrying a role outside the fixed set, bypassing Issue.
	signer, err := svc.KeyManager.GetSigner()
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims("u", "superuser", "u@example.com", nil, time.Minute, svc.Issuer, time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenRefresh(t *testing.T) {
	t.Parallel()

	svc := newTokenService(t)
	user := domain.User{ID: "user-9", Email: "bob@example.com", Role: domain.RoleAdmin}

	session, err := svc.Issue(user, []string{jwtx.AMRPassword})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(session.AccessToken)
	require.NoError(t, err)
	require.NotEqual(t, session.AccessToken, refreshed.AccessToken)

	// Same identity, fresh token id.
	originalClaims, err := svc.KeyManager.Verifier().Verify(session.AccessToken)
	require.NoError(t, err)
	refreshedClaims, err := svc.KeyManager.Verifier().Verify(refreshed.AccessToken)
	require.NoError(t, err)

	require.Equal(t, originalClaims.Subject, refreshedClaims.Subject)
	require.Equal(t, originalClaims.Role, refreshedClaims.Role)
	require.Equal(t, originalClaims.AMR, refreshedClaims.AMR)
	require.NotEqual(t, originalClaims.ID, refreshedClaims.ID)
}

func TestTokenRefreshRejectsExpired(t *testing.T) {
	t.Parallel()

	svc := newTokenService(t)
	svc.AccessTTL = -time.Minute

	session, err := svc.Issue(domain.User{ID: "u", Email: "u@example.com", Role: domain.RoleUser}, nil)
	require.NoError(t, err)

	svc.AccessTTL = time.Minute

	// No grace window: once expired, only a fresh login helps.
	_, err = svc.Refresh(session.AccessToken)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenRefreshRejectsGarbage(t *testing.T) {
	t.Parallel()

	svc := newTokenService(t)

	_, err := svc.Refresh("junk")
	require.ErrorIs(t, err, ErrTokenMalformed)
}
