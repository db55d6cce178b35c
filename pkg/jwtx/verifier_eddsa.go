package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// EdDSAVerifier verifies EdDSA-signed tokens against a KeySet.
type EdDSAVerifier struct {
	keys *KeySet
	opts VerifyOptions
}

// NewVerifierEdDSA builds a verifier that resolves the signing key by the
// token's "kid" header.
func NewVerifierEdDSA(keys *KeySet, opts VerifyOptions) *EdDSAVerifier {
	return &EdDSAVerifier{keys: keys, opts: opts}
}

// Verify implements Verifier.
func (v *EdDSAVerifier) Verify(token string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithLeeway(v.opts.leeway()),
		jwt.WithExpirationRequired(),
	)

	claims := Claims{}
	_, err := parser.ParseWithClaims(token, &claims, v.keyfunc)
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return Claims{}, err
	}

	// The parser enforced exp/nbf already; re-check through our own
	// helpers so the sentinel taxonomy stays ours.
	if err := claims.ValidateExpiryWithLeeway(v.opts.leeway()); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

// keyfunc resolves the Ed25519 public key named by the token header.
func (v *EdDSAVerifier) keyfunc(token *jwt.Token) (any, error) {
	kid, ok := token.Header["kid"].(string)
	if !ok || kid == "" {
		return nil, fmt.Errorf("missing kid header: %w", ErrUnknownKID)
	}

	key, err := v.keys.Get(kid)
	if err != nil {
		return nil, fmt.Errorf("kid %q: %w", kid, ErrUnknownKID)
	}

	return key, nil
}

// mapParseError translates golang-jwt's error tree onto our sentinels so
// callers never import the underlying library to branch on failures. A
// token signed with a disallowed algorithm surfaces as ErrInvalidSig, the
// same as any other signature the key set cannot vouch for.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, ErrUnknownKID):
		return ErrUnknownKID
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return ErrMalformed
	}
}
