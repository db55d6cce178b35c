package examsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/opencourse/transcripts/pkg/httpx"
)

// API error codes. The server emits these in the "error" field of every
// error response; the SDK parses them back into APIError values.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeTokenExpired       = "token_expired"
	ErrorCodeForbidden          = "forbidden"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeAlreadyRegistered  = "already_registered"
	ErrorCodeAlreadyGraded      = "already_graded"
	ErrorCodeInvalidVote        = "invalid_vote"
	ErrorCodeValidationError    = "validation_error"
	ErrorCodeConflict           = "conflict"
	ErrorCodeMFARequired        = "mfa_required"
	ErrorCodeServerError        = "server_error"
)

// APIError is the exams service error envelope. The server uses it to write
// HTTP error responses and the SDK client to represent them, so both sides
// agree on the wire shape by construction.
type APIError struct {
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g. "already_graded").
	Code string `json:"error"`

	// Description is a human-readable description of the error.
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches any APIError with the same code, so callers can write
// errors.Is(err, examsdk.ErrAlreadyGraded) against freshly parsed responses.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

// Predefined errors, one per row of the service's error taxonomy.
var (
	// ErrInvalidRequest is returned for malformed bodies or missing
	// required parameters.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidCredentials is returned when login fails. One message for
	// unknown email and wrong password; the distinction never leaves the
	// server.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid email or password",
	}

	// ErrInvalidToken is returned when the bearer token is missing,
	// malformed or fails signature verification.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is missing or invalid",
	}

	// ErrTokenExpired is returned when the bearer token is past its expiry.
	ErrTokenExpired = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeTokenExpired,
		Description: "the access token has expired",
	}

	// ErrForbidden is returned when the caller's role does not permit the
	// attempted action.
	ErrForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "this action is not permitted for your role",
	}

	// ErrNotFound is returned when the target resource does not exist.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}

	// ErrAlreadyRegistered is returned when a user registers twice for the
	// same exam.
	ErrAlreadyRegistered = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeAlreadyRegistered,
		Description: "user is already registered for this exam",
	}

	// ErrAlreadyGraded is returned when a vote is assigned to an
	// assignment that already has one.
	ErrAlreadyGraded = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeAlreadyGraded,
		Description: "assignment has already been graded",
	}

	// ErrInvalidVote is returned when the vote is outside [0,100].
	ErrInvalidVote = &APIError{
		StatusCode:  http.StatusUnprocessableEntity,
		Code:        ErrorCodeInvalidVote,
		Description: "vote must be between 0 and 100",
	}

	// ErrConflict is returned when the request is valid but conflicts with
	// current state (e.g. bootstrapping an already-seeded service).
	ErrConflict = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeConflict,
		Description: "request conflicts with current state",
	}

	// ErrServerError is returned for unexpected internal failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// NewAPIError creates an APIError with a custom description while keeping
// the standard envelope.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// MFARequiredError is returned when login succeeds against the password but
// the account has a second factor enrolled. HTTP 409: the request was valid
// but conflicts with the account's MFA state.
type MFARequiredError struct {
	// MFAToken identifies the pending login when submitting the code.
	MFAToken string `json:"mfa_token"`

	// Methods lists the available MFA methods (currently ["totp"]).
	Methods []string `json:"mfa_methods"`
}

// Error implements the error interface.
func (e *MFARequiredError) Error() string {
	return fmt.Sprintf("MFA required: available methods=%v", e.Methods)
}

// WriteError writes the MFA challenge as a 409 Conflict.
func (e *MFARequiredError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusConflict)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":             ErrorCodeMFARequired,
		"error_description": "multi-factor authentication is required to complete this login",
		"mfa_token":         e.MFAToken,
		"mfa_methods":       e.Methods,
	})
}

// parseErrorResponse turns a non-2xx HTTP response into a typed error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// MFA challenge (409 with an mfa_token).
	if resp.StatusCode == http.StatusConflict {
		var mfaResp struct {
			Error      string   `json:"error"`
			MFAToken   string   `json:"mfa_token"`
			MFAMethods []string `json:"mfa_methods"`
		}
		if err := json.Unmarshal(body, &mfaResp); err == nil {
			if mfaResp.Error == ErrorCodeMFARequired && mfaResp.MFAToken != "" {
				return &MFARequiredError{
					MFAToken: mfaResp.MFAToken,
					Methods:  mfaResp.MFAMethods,
				}
			}
		}
	}

	// Standard error envelope.
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	// Validation envelope (field details flattened into the description).
	var valErr ValidationErrorResponse
	if err := json.Unmarshal(body, &valErr); err == nil && valErr.Code != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        valErr.Code,
			Description: valErr.Message,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
