// Package jwtx wraps github.com/golang-jwt/jwt/v5 with the small amount of
// policy this service needs: Ed25519 (EdDSA) signing keys addressed by kid,
// a key set for verification, and claims validation with bounded clock skew.
//
// Only EdDSA is supported. A single asymmetric algorithm keeps key handling,
// JWKS publishing and verification honest; there is no alg negotiation to
// get wrong.
package jwtx

import "errors"

// Signer signs claim sets into compact JWTs under a stable key ID.
type Signer interface {
	// Sign converts claims into a signed JWT string.
	Sign(claims Claims) (string, error)

	// Algorithm returns the JWT "alg" header value, e.g. "EdDSA".
	Algorithm() string

	// KeyID returns the "kid" header value stamped on signed tokens.
	KeyID() string

	// PublicJWK returns the public half as a JWK for the key-set endpoint.
	PublicJWK() (JWK, error)
}

var (
	// ErrNilKey indicates a signer was constructed without key material.
	ErrNilKey = errors.New("jwtx: nil private key")

	// ErrWrongKeyType indicates the PEM did not decode to an Ed25519 key.
	ErrWrongKeyType = errors.New("jwtx: not an ed25519 private key")
)
