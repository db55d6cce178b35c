package domain

import "time"

// MaxMFAAttempts caps failed TOTP submissions per pending session.
const MaxMFAAttempts = 5

// MFASession is a pending login that passed the password check but still
// owes a TOTP code. The client holds an opaque token; only its SHA-256
// fingerprint is stored. Consumed exactly once: a correct code or too many
// failures deletes it.
type MFASession struct {
	ID        string // ULID
	UserID    string
	TokenHash string // SHA-256 fingerprint of the opaque mfa_token
	Attempts  int    // failed code attempts so far
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry.
func (s *MFASession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// MFAChallenge is the service result when a password login must continue
// with a second factor.
type MFAChallenge struct {
	MFAToken  string // opaque token the client echoes back to VerifyMFA
	Methods   []string
	ExpiresAt time.Time
}

// MFAEnrollment carries the provisioning material for a new TOTP secret.
// The secret is not active until the user confirms a code.
type MFAEnrollment struct {
	Secret     string // base32 encoded
	OTPAuthURL string // otpauth:// URL for QR code generation
	Issuer     string
	Account    string // user email
}
