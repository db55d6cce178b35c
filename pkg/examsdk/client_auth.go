package examsdk

import (
	"context"
	"net/http"
)

// Login authenticates with email and password and returns an authenticated
// session.
//
// Accounts with MFA enabled get a *MFARequiredError carrying the mfa_token;
// complete the login with VerifyMFA.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	}, nil)
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}

	return newSession(c, &tokenResp), nil
}

// VerifyMFA completes an MFA-challenged login with a TOTP code.
func (c *SDKClient) VerifyMFA(ctx context.Context, mfaToken, code string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/mfa/verify", MFAVerifyRequest{
		MFAToken: mfaToken,
		Code:     code,
	}, nil)
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}

	return newSession(c, &tokenResp), nil
}

// refreshToken exchanges a still-valid access token for a fresh one. The
// service refuses expired tokens here; there is no grace window.
func (c *SDKClient) refreshToken(ctx context.Context, accessToken string) (*TokenResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/refresh", nil, map[string]string{
		"Authorization": "Bearer " + accessToken,
	})
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &tokenResp, nil
}
