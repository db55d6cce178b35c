package exams_test

import (
	"testing"

	"github.com/opencourse/transcripts/pkg/examsdk"
	"github.com/stretchr/testify/require"
)

// TestLoginFlow verifies password authentication and the /me endpoint.
func TestLoginFlow(t *testing.T) {
	baseURL, cleanup := setupExamsContainer(t)
	defer cleanup()

	client := examsdk.NewSDKClient(baseURL)
	bootstrapService(t, client)

	t.Run("LoginReturnsTokenAndUser", func(t *testing.T) {
		session := login(t, client, adminEmail, adminPassword)
		require.NotEmpty(t, session.AccessToken())
		require.NotNil(t, session.User())
		require.Equal(t, adminEmail, session.User().Email)
		require.Equal(t, "admin", session.User().Role)
	})

	t.Run("EmailIsCaseInsensitive", func(t *testing.T) {
		session := login(t, client, "ADMIN@Example.COM", adminPassword)
		require.Equal(t, adminEmail, session.User().Email,
			"Lookup should normalize the email; the stored form comes back")
	})

	t.Run("WrongPasswordRejected", func(t *testing.T) {
		_, err := client.Login(t.Context(), adminEmail, "wrong-password")
		requireAPIErrorCode(t, err, examsdk.ErrorCodeInvalidCredentials)
	})

	t.Run("UnknownEmailSameError", func(t *testing.T) {
		// An unknown account must be indistinguishable from a wrong
		// password, so the API can't be used to enumerate users.
		_, err := client.Login(t.Context(), "nobody@example.com", "whatever123")
		requireAPIErrorCode(t, err, examsdk.ErrorCodeInvalidCredentials)
	})

	t.Run("MeReflectsIdentityAndPermissions", func(t *testing.T) {
		session := login(t, client, supervisorEmail, supervisorPassword)
		me, err := session.Me(t.Context())
		require.NoError(t, err)
		require.Equal(t, supervisorEmail, me.User.Email)
		require.Equal(t, "supervisor", me.User.Role)
		require.Contains(t, me.Permissions, "assign_vote")
		require.NotContains(t, me.Permissions, "create_exam")
	})

	t.Run("Logout", func(t *testing.T) {
		session := login(t, client, adminEmail, adminPassword)
		require.NoError(t, session.Logout(t.Context()))

		// Sessions are stateless; the token keeps working until expiry.
		_, err := session.Me(t.Context())
		require.NoError(t, err, "Token should remain valid after logout")
	})

	t.Run("GarbageTokenRejected", func(t *testing.T) {
		fake := client.NewSessionFromToken("not-a-jwt", 3600, nil)
		_, err := fake.Me(t.Context())
		requireAPIErrorCode(t, err, examsdk.ErrorCodeInvalidToken)
	})

	t.Run("MissingTokenRejected", func(t *testing.T) {
		fake := client.NewSessionFromToken("", 3600, nil)
		_, err := fake.Me(t.Context())
		requireAPIErrorCode(t, err, examsdk.ErrorCodeInvalidToken)
	})
}

// TestRefreshFlow verifies that refresh mints a fresh token with the same
// identity and that invalid tokens cannot be refreshed.
func TestRefreshFlow(t *testing.T) {
	baseURL, cleanup := setupExamsContainer(t)
	defer cleanup()

	client := examsdk.NewSDKClient(baseURL)
	bootstrapService(t, client)

	t.Run("RefreshMintsNewToken", func(t *testing.T) {
		session := login(t, client, adminEmail, adminPassword)
		oldToken := session.AccessToken()

		require.NoError(t, session.Refresh(t.Context()))
		newToken := session.AccessToken()
		require.NotEqual(t, oldToken, newToken, "Refresh always mints a new token")

		// The new token carries the same identity.
		me, err := session.Me(t.Context())
		require.NoError(t, err)
		require.Equal(t, adminEmail, me.User.Email)
		require.Equal(t, "admin", me.User.Role)

		// The old token is not revoked; it stays valid until its own expiry.
		oldSession := client.NewSessionFromToken(oldToken, 3600, nil)
		_, err = oldSession.Me(t.Context())
		require.NoError(t, err, "Old token should remain valid after refresh")
	})

	t.Run("GarbageTokenNotRefreshable", func(t *testing.T) {
		fake := client.NewSessionFromToken("garbage.token.value", 3600, nil)
		err := fake.Refresh(t.Context())
		requireAPIErrorCode(t, err, examsdk.ErrorCodeInvalidToken)
	})
}
