package exams_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/opencourse/transcripts/pkg/examsdk"
	"github.com/stretchr/testify/require"
)

// TestJWKSEndpoint verifies the published key set matches the tokens the
// service signs.
func TestJWKSEndpoint(t *testing.T) {
	baseURL, cleanup := setupExamsContainer(t)
	defer cleanup()

	client := examsdk.NewSDKClient(baseURL)
	bootstrapService(t, client)

	jwks, err := client.GetJWKS(t.Context())
	require.NoError(t, err)
	require.Len(t, jwks.Keys, 1, "Container starts with a single signing key")

	key := jwks.Keys[0]
	require.Equal(t, "OKP", key.Kty)
	require.Equal(t, "EdDSA", key.Alg)
	require.Equal(t, "Ed25519", key.Crv)
	require.Equal(t, "sig", key.Use)
	require.NotEmpty(t, key.Kid)
	require.NotEmpty(t, key.X)

	// A freshly issued token references a published kid.
	session := login(t, client, adminEmail, adminPassword)

	parser := jwt.NewParser()
	tok, _, err := parser.ParseUnverified(session.AccessToken(), jwt.MapClaims{})
	require.NoError(t, err)
	require.Equal(t, "EdDSA", tok.Header["alg"])
	require.Equal(t, key.Kid, tok.Header["kid"],
		"Issued tokens must be verifiable against the published key set")
}
