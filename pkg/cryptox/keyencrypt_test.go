package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptPrivateKey(t *testing.T) {
	t.Setenv("EXAMS_MASTER_KEY", "test-master-key-material")
	ResetMasterKeyForTesting()
	t.Cleanup(ResetMasterKeyForTesting)

	pemData, err := GenerateEd25519Key()
	require.NoError(t, err)

	encrypted, err := EncryptPrivateKey(pemData)
	require.NoError(t, err)
	require.NotEqual(t, pemData, encrypted)

	decrypted, err := DecryptPrivateKey(encrypted)
	require.NoError(t, err)
	require.Equal(t, pemData, decrypted)
}

func TestEncryptPrivateKeyUniqueNonces(t *testing.T) {
	t.Setenv("EXAMS_MASTER_KEY", "test-master-key-material")
	ResetMasterKeyForTesting()
	t.Cleanup(ResetMasterKeyForTesting)

	pemData, err := GenerateEd25519Key()
	require.NoError(t, err)

	e1, err := EncryptPrivateKey(pemData)
	require.NoError(t, err)
	e2, err := EncryptPrivateKey(pemData)
	require.NoError(t, err)

	require.NotEqual(t, e1, e2, "each encryption should use a fresh nonce")
}

func TestDecryptPrivateKeyTampered(t *testing.T) {
	t.Setenv("EXAMS_MASTER_KEY", "test-master-key-material")
	ResetMasterKeyForTesting()
	t.Cleanup(ResetMasterKeyForTesting)

	pemData, err := GenerateEd25519Key()
	require.NoError(t, err)

	encrypted, err := EncryptPrivateKey(pemData)
	require.NoError(t, err)

	// Flip a byte in the ciphertext body
	encrypted[len(encrypted)-1] ^= 0xFF

	_, err = DecryptPrivateKey(encrypted)
	require.Error(t, err, "authentication tag should reject tampered data")
}

func TestDecryptPrivateKeyTooShort(t *testing.T) {
	t.Setenv("EXAMS_MASTER_KEY", "test-master-key-material")
	ResetMasterKeyForTesting()
	t.Cleanup(ResetMasterKeyForTesting)

	_, err := DecryptPrivateKey([]byte("short"))
	require.Error(t, err)
}
