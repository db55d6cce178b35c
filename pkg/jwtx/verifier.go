package jwtx

import (
	"errors"
	"time"
)

// Verification errors. Callers branch on these with errors.Is; the exact
// reason matters because expired tokens get a different HTTP answer than
// garbage ones.
var (
	ErrMalformed    = errors.New("jwtx: token malformed")
	ErrAlgMismatch  = errors.New("jwtx: algorithm mismatch")
	ErrUnknownKID   = errors.New("jwtx: unknown key id")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claim")
)

// Verifier checks a compact JWT and returns its claims.
type Verifier interface {
	// Verify parses, verifies the signature against the key set, and
	// validates the registered claims. The returned claims are only
	// meaningful when err is nil.
	Verify(token string) (Claims, error)
}

// VerifyOptions carry the claim checks shared by every verifier.
type VerifyOptions struct {
	// Issuer must match the token's "iss" claim when non-empty.
	Issuer string

	// Leeway is the clock-skew allowance applied to exp/nbf checks.
	// Zero means DefaultLeeway.
	Leeway time.Duration
}

func (o VerifyOptions) leeway() time.Duration {
	if o.Leeway <= 0 {
		return DefaultLeeway
	}

	return o.Leeway
}

// NewCommonEdDSA builds the service's standard verifier: EdDSA signatures
// resolved by kid against keys, expiry checked with skew leeway.
func NewCommonEdDSA(keys *KeySet, opts VerifyOptions) Verifier {
	return NewVerifierEdDSA(keys, opts)
}
