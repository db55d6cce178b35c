package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/opencourse/transcripts/internal/exams/domain"
	examstore "github.com/opencourse/transcripts/internal/exams/store"
	"github.com/opencourse/transcripts/pkg/jwtx"
)

func TestRotateEphemeral(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tokens := newTokenService(t)
	svc := &KeyRotationService{KeyManager: tokens.KeyManager}
	admin := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}

	// A token signed before the rotation.
	before, err := tokens.Issue(domain.User{ID: "u", Email: "u@example.com", Role: domain.RoleUser}, nil)
	require.NoError(t, err)

	result, err := svc.Rotate(ctx, admin, true)
	require.NoError(t, err)
	require.NotEmpty(t, result.NewKey.Kid)
	require.Len(t, result.RetiredKeys, 1)
	require.Equal(t, 1, result.ActiveKeys)
	require.NotEqual(t, result.NewKey.Kid, result.RetiredKeys[0].Kid)

	// Outstanding tokens still verify: retirement only stops issuance.
	_, err = tokens.Validate(before.AccessToken)
	require.NoError(t, err)

	// New tokens are signed by the new key and verify too.
	after, err := tokens.Issue(domain.User{ID: "u", Email: "u@example.com", Role: domain.RoleUser}, nil)
	require.NoError(t, err)
	_, err = tokens.Validate(after.AccessToken)
	require.NoError(t, err)
}

func TestRotateWithoutRetiring(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tokens := newTokenService(t)
	svc := &KeyRotationService{KeyManager: tokens.KeyManager}
	admin := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}

	result, err := svc.Rotate(ctx, admin, false)
	require.NoError(t, err)
	require.Empty(t, result.RetiredKeys)
	require.Equal(t, 2, result.ActiveKeys)
}

func TestRotateAuthorization(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tokens := newTokenService(t)
	svc := &KeyRotationService{KeyManager: tokens.KeyManager}

	for _, role := range []domain.Role{domain.RoleSupervisor, domain.RoleUser} {
		_, err := svc.Rotate(ctx, domain.Actor{UserID: "x", Role: role}, true)
		require.ErrorIs(t, err, ErrForbidden, "role %s", role)
	}

	// Nothing changed.
	require.Equal(t, 1, tokens.KeyManager.NumSigners())
}

func TestRotatePersistent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	opts := jwtx.KeyManagerOptions{Issuer: "test-issuer", NumKeys: 1}
	pm, err := jwtx.NewPersistentKeyManager(ctx, examstore.NewKeyStoreAdapter(s), opts)
	require.NoError(t, err)

	svc := &KeyRotationService{
		KeyManager: pm.KeyManager,
		Persistent: pm,
		Grace:      time.Hour,
	}
	admin := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}

	result, err := svc.Rotate(ctx, admin, true)
	require.NoError(t, err)
	require.Len(t, result.RetiredKeys, 1)

	// The store reflects the rotation: one active key, one retired with
	// an expiry one grace window out.
	keys, err := s.SigningKeys().ListSigningKeys(ctx)
	require.NoError(t, err)
	require.Len(t, keys, 2)

	var active, retired int
	for _, k := range keys {
		if k.Active() {
			active++
			require.Equal(t, result.NewKey.Kid, k.Kid)
		} else {
			retired++
			require.NotNil(t, k.ExpiresAt)
		}
	}
	require.Equal(t, 1, active)
	require.Equal(t, 1, retired)

	// A fresh manager loading from the same store picks the rotation up.
	reloaded, err := jwtx.NewPersistentKeyManager(ctx, examstore.NewKeyStoreAdapter(s), opts)
	require.NoError(t, err)
	require.Equal(t, 1, reloaded.KeyManager.NumSigners())
}
