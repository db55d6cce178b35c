package examsdk

import (
	"github.com/opencourse/transcripts/pkg/jwtx"
)

// ============================================================================
// Internal Response Types (used for JSON unmarshaling)
// ============================================================================

// ErrorResponse is the standard error envelope. Used internally for parsing;
// client code should work with APIError from errors.go instead.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g. "already_graded").
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error.
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is the envelope for request-shape validation
// failures, carrying per-field details.
type ValidationErrorResponse struct {
	// Code is the error code (always "validation_error").
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// Details maps field names to what was wrong with them.
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Auth Types
// ============================================================================

// LoginRequest is the body for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// MFAVerifyRequest completes an MFA-challenged login.
type MFAVerifyRequest struct {
	MFAToken string `json:"mfa_token" validate:"required"`
	Code     string `json:"code" validate:"required"` // 6-digit TOTP code
}

// TokenResponse is returned from login, MFA verification and refresh.
type TokenResponse struct {
	// AccessToken is the signed JWT used to authenticate API requests.
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer".
	TokenType string `json:"token_type"`

	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int `json:"expires_in"`

	// User describes the authenticated account.
	User *UserInfo `json:"user,omitempty"`
}

// MeResponse is returned from GET /v1/auth/me.
type MeResponse struct {
	// User is the authenticated account.
	User UserInfo `json:"user"`

	// Permissions lists the actions the account's role allows.
	Permissions []string `json:"permissions"`
}

// ============================================================================
// User Types
// ============================================================================

// UserInfo describes an account as the API exposes it. Password material
// never appears here.
type UserInfo struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	MFAEnabled bool   `json:"mfa_enabled"`
	CreatedAt  string `json:"created_at"` // RFC3339
}

// CreateUserRequest provisions a new account (admin only). Password is
// optional; when omitted the server generates one and returns it once.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8,max=128"`
	Role     string `json:"role" validate:"required,oneof=admin supervisor user"`
}

// CreateUserResponse contains the created account and, when the server
// generated the password, its one-time plaintext.
type CreateUserResponse struct {
	User UserInfo `json:"user"`

	// GeneratedPassword is only present when no password was supplied.
	GeneratedPassword string `json:"generated_password,omitempty"`
}

// ListUsersResponse contains the accounts visible to the caller.
type ListUsersResponse struct {
	Users []UserInfo `json:"users"`
}

// ============================================================================
// Exam Types
// ============================================================================

// ExamInfo describes an exam in the catalog.
type ExamInfo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"` // RFC3339
	CreatedAt string `json:"created_at"`

	// Statistics is filled on detail endpoints.
	Statistics *ExamStatistics `json:"statistics,omitempty"`
}

// ExamStatistics summarizes an exam's grading state. AverageVote is withheld
// on public endpoints.
type ExamStatistics struct {
	Participants int      `json:"participants"`
	Graded       int      `json:"graded"`
	Pending      int      `json:"pending"`
	AverageVote  *float64 `json:"average_vote,omitempty"`
}

// CreateExamRequest defines a new exam (admin only).
type CreateExamRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
	Date  string `json:"date" validate:"required"` // RFC3339
}

// ListExamsResponse contains the exam catalog.
type ListExamsResponse struct {
	Exams []ExamInfo `json:"exams"`
}

// ============================================================================
// Assignment Types
// ============================================================================

// AssignmentInfo is one user↔exam registration, graded or not.
type AssignmentInfo struct {
	UserID    string `json:"user_id"`
	ExamID    string `json:"exam_id"`
	UserEmail string `json:"user_email,omitempty"`
	ExamTitle string `json:"exam_title,omitempty"`
	ExamDate  string `json:"exam_date,omitempty"`

	// Vote is null until the assignment is graded.
	Vote *float64 `json:"vote"`

	// Grade is the letter grade ("A".."F"), or "N/A" while ungraded.
	Grade string `json:"grade"`

	RegisteredAt string `json:"registered_at"`
	GradedAt     string `json:"graded_at,omitempty"`
}

// AssignVoteRequest grades one user's assignment for the exam in the URL.
// Vote is a pointer so a missing field is rejected while an explicit 0
// still validates. Bounds are checked by the grading ledger, not here, so
// out-of-range votes keep their own error code.
type AssignVoteRequest struct {
	UserID string   `json:"user_id" validate:"required"`
	Vote   *float64 `json:"vote" validate:"required"`
}

// RegisterResponse confirms an exam registration.
type RegisterResponse struct {
	Assignment AssignmentInfo `json:"assignment"`
}

// UngradedAssignmentsResponse lists assignments awaiting a vote.
type UngradedAssignmentsResponse struct {
	Assignments []AssignmentInfo `json:"assignments"`
}

// ResultsSummary aggregates a user's graded results.
type ResultsSummary struct {
	Total   int      `json:"total"`
	Graded  int      `json:"graded"`
	Pending int      `json:"pending"`
	Average *float64 `json:"average,omitempty"`
	Best    *float64 `json:"best,omitempty"`
}

// MyExamsResponse is returned from GET /v1/me/exams.
type MyExamsResponse struct {
	Results []AssignmentInfo `json:"results"`
	Summary ResultsSummary   `json:"summary"`
}

// ============================================================================
// Bootstrap Types
// ============================================================================

// BootstrapRequest seeds the first accounts. Only accepted while the user
// store is empty and the caller presents the bootstrap token.
type BootstrapRequest struct {
	// AdminEmail is the email for the initial admin account.
	AdminEmail string `json:"admin_email" validate:"required,email"`

	// AdminPassword is the password for the admin account (8-128 chars).
	AdminPassword string `json:"admin_password" validate:"required,min=8,max=128"`

	// SupervisorEmail optionally seeds a supervisor account alongside.
	SupervisorEmail string `json:"supervisor_email,omitempty" validate:"omitempty,email"`

	// SupervisorPassword must be set when SupervisorEmail is.
	SupervisorPassword string `json:"supervisor_password,omitempty" validate:"required_with=SupervisorEmail,omitempty,min=8,max=128"`
}

// BootstrapResponse contains the IDs of the seeded accounts.
type BootstrapResponse struct {
	AdminUserID      string `json:"admin_user_id"`
	SupervisorUserID string `json:"supervisor_user_id,omitempty"`
}

// BootstrapStatusResponse reports whether seeding has happened.
type BootstrapStatusResponse struct {
	Bootstrapped bool `json:"bootstrapped"`
}

// ============================================================================
// MFA Types
// ============================================================================

// TOTPEnrollResponse is returned from TOTP enrollment.
type TOTPEnrollResponse struct {
	Secret  string `json:"secret" example:"JBSWY3DPEHPK3PXP"`
	QRCode  string `json:"qr_code" example:"otpauth://totp/exams:user@example.com?secret=JBSWY3DPEHPK3PXP&issuer=exams"`
	Issuer  string `json:"issuer"`
	Account string `json:"account"`
}

// TOTPActivateRequest confirms enrollment with a first valid code.
type TOTPActivateRequest struct {
	Code string `json:"code" validate:"required"` // 6-digit TOTP code
}

// ============================================================================
// Key Rotation Types
// ============================================================================

// RotateKeyRequest triggers a signing key rotation.
type RotateKeyRequest struct {
	// RetireExisting marks current active keys retired (with a grace
	// window) instead of keeping them alongside the new key.
	RetireExisting bool `json:"retire_existing"`
}

// SigningKeyInfo is a signing key's public metadata.
type SigningKeyInfo struct {
	ID        string  `json:"id"`
	Kid       string  `json:"kid"`
	Algorithm string  `json:"algorithm"` // always "EdDSA"
	CreatedAt string  `json:"created_at"`
	RetiredAt *string `json:"retired_at,omitempty"`
	ExpiresAt *string `json:"expires_at,omitempty"`
}

// RotateKeyResponse is the result of a key rotation.
type RotateKeyResponse struct {
	NewKey      SigningKeyInfo   `json:"new_key"`
	RetiredKeys []SigningKeyInfo `json:"retired_keys,omitempty"`
	ActiveKeys  int              `json:"active_keys"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is shared by /livez and /readyz (the latter adds Checks).
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime,omitempty"`
	Version string `json:"version,omitempty"`

	// Checks contains readiness results for critical dependencies.
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of critical service dependencies.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// ============================================================================
// JWKS Types
// ============================================================================

// JWKSResponse contains the public JWT verification keys, served from
// GET /.well-known/jwks.json.
type JWKSResponse jwtx.JWKS
