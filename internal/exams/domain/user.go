package domain

import (
	"strings"
	"time"
)

// User is an account in the exam-results system. Accounts are provisioned
// by bootstrap seeding or by an administrator; there is no self-signup.
type User struct {
	ID           string
	Email        string // stored normalized (trimmed, lowercase)
	PasswordHash string // argon2 encoded
	Role         Role
	MFAEnabled   *time.Time // Timestamp when MFA was enabled (nullable)
	MFASecret    *string    // TOTP secret (nullable, base32 encoded)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasMFA reports whether the user has completed TOTP enrollment.
func (u *User) HasMFA() bool {
	return u.MFAEnabled != nil && u.MFASecret != nil
}

// NormalizeEmail canonicalizes an email address for storage and lookup so
// "  Alice@Example.COM " and "alice@example.com" name the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
