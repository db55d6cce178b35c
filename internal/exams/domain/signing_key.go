package domain

import "time"

// SigningKey is a JWT signing key persisted for rotation support. Private
// key material is encrypted at rest. A retired key stays verifiable until
// its expiry so tokens it signed survive the rotation grace period.
type SigningKey struct {
	ID                  string // ULID
	Kid                 string // key identifier published in JWKS
	Algorithm           string // EdDSA
	PrivateKeyEncrypted []byte // XChaCha20-Poly1305 sealed PKCS#8 PEM
	CreatedAt           time.Time
	RetiredAt           *time.Time // nil = still signing
	ExpiresAt           *time.Time // nil = no scheduled deletion
}

// Active reports whether the key may sign new tokens.
func (k *SigningKey) Active() bool {
	return k.RetiredAt == nil
}

// Verifiable reports whether tokens signed by this key should still verify.
func (k *SigningKey) Verifiable(now time.Time) bool {
	return k.ExpiresAt == nil || now.Before(*k.ExpiresAt)
}
