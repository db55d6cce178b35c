package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/opencourse/transcripts/pkg/idx"
)

const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	// Sessions are stateless, so expiry is the only thing that ends them.
	DefaultAccessTokenTTL = 30 * time.Minute

	// DefaultLeeway absorbs small clock skew between the issuing and the
	// validating host when checking exp/nbf.
	DefaultLeeway = 5 * time.Second
)

// Authentication Methods Reference values for the "amr" claim.
//
//	"pwd": password-based authentication
//	"otp": one-time password (e.g. TOTP)
//	"mfa": multi-factor auth was used
const (
	AMRPassword = "pwd"
	AMROTP      = "otp"
	AMRMFA      = "mfa"
)

// Claims are the access-token claims for the exams service. The token is
// the whole session: subject, role and email are everything a handler needs
// to act on behalf of the caller without a store lookup.
type Claims struct {
	jwt.RegisteredClaims

	// Role is the caller's role name ("admin", "supervisor", "user").
	// Authorization decisions key off this.
	Role string `json:"role,omitempty"`

	// Email is the normalized account email, carried for display and audit.
	Email string `json:"email,omitempty"`

	// AMR records how the caller authenticated, see the constants above.
	AMR []string `json:"amr,omitempty"`
}

// NewAccessClaims builds minimally-correct claims for a session token.
func NewAccessClaims(
	subject, role, email string,
	amr []string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Role:  role,
		Email: email,
		AMR:   amr,
	}
}

// NewJTI returns a fresh identifier for the "jti" claim. ULIDs sort by
// issue time, which makes token trails greppable in logs.
func NewJTI() string {
	return idx.New().String()
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryWithLeeway(0)
}

// ValidateExpiryWithLeeway adds a small grace period for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	now := time.Now().UTC()

	// Check expired (exp), allowing the leeway past the boundary
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}

	// Check the token isn't used before it is valid (nbf)
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}
