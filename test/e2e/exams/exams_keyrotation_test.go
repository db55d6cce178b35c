package exams_test

import (
	"testing"

	"github.com/opencourse/transcripts/pkg/examsdk"
	"github.com/stretchr/testify/require"
)

// TestKeyRotation verifies admin-triggered signing key rotation and that
// tokens issued before the rotation keep verifying during the grace period.
func TestKeyRotation(t *testing.T) {
	baseURL, cleanup := setupExamsContainer(t)
	defer cleanup()

	client := examsdk.NewSDKClient(baseURL)
	bootstrapService(t, client)

	admin := login(t, client, adminEmail, adminPassword)
	preRotation := client.NewSessionFromToken(admin.AccessToken(), 3600, nil)

	t.Run("RotateAddsKey", func(t *testing.T) {
		rotated, err := admin.RotateKeys(t.Context(), examsdk.RotateKeyRequest{})
		require.NoError(t, err)
		require.NotEmpty(t, rotated.NewKey.Kid)
		require.Equal(t, "EdDSA", rotated.NewKey.Algorithm)
		require.Empty(t, rotated.RetiredKeys, "Plain rotation retires nothing")
		require.Equal(t, 2, rotated.ActiveKeys, "The old key stays active alongside")

		jwks, err := client.GetJWKS(t.Context())
		require.NoError(t, err)
		require.Len(t, jwks.Keys, 2, "JWKS should publish both keys")
	})

	t.Run("OldTokensStillVerify", func(t *testing.T) {
		_, err := preRotation.Me(t.Context())
		require.NoError(t, err, "Tokens signed by the previous key must keep working")
	})

	t.Run("RotateWithRetirement", func(t *testing.T) {
		rotated, err := admin.RotateKeys(t.Context(), examsdk.RotateKeyRequest{
			RetireExisting: true,
		})
		require.NoError(t, err)
		require.NotEmpty(t, rotated.RetiredKeys, "Retirement should report the retired keys")
		require.Equal(t, 1, rotated.ActiveKeys, "Only the new key signs now")

		// Retired keys keep verifying through the grace period, so the
		// pre-rotation session survives the retirement too.
		_, err = preRotation.Me(t.Context())
		require.NoError(t, err)
	})

	t.Run("NewLoginsUseTheNewKey", func(t *testing.T) {
		session := login(t, client, adminEmail, adminPassword)
		_, err := session.Me(t.Context())
		require.NoError(t, err)
	})
}
