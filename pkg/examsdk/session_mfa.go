package examsdk

import (
	"context"
	"net/http"
)

// EnrollTOTP starts TOTP enrollment for the authenticated account. The
// returned secret and otpauth URL go into an authenticator app; enrollment
// only takes effect after ActivateTOTP confirms a valid code.
func (s *Session) EnrollTOTP(ctx context.Context) (*TOTPEnrollResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/auth/mfa/enroll", nil, nil)
	if err != nil {
		return nil, err
	}

	var enroll TOTPEnrollResponse
	if err := decodeJSON(resp, &enroll, http.StatusOK); err != nil {
		return nil, err
	}

	return &enroll, nil
}

// ActivateTOTP confirms TOTP enrollment with a first valid code. From the
// next login on, the account gets an MFA challenge.
func (s *Session) ActivateTOTP(ctx context.Context, code string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/auth/mfa/activate", TOTPActivateRequest{
		Code: code,
	}, nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}
