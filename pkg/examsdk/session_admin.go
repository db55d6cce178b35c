package examsdk

import (
	"context"
	"net/http"
)

// ListUsers lists accounts. Admins see everyone; supervisors only accounts
// with the user role.
func (s *Session) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/admin/users", nil, nil)
	if err != nil {
		return nil, err
	}

	var users ListUsersResponse
	if err := decodeJSON(resp, &users, http.StatusOK); err != nil {
		return nil, err
	}

	return &users, nil
}

// CreateUser provisions an account (admin only). When the request omits a
// password the response carries a generated one, returned exactly once.
func (s *Session) CreateUser(ctx context.Context, req CreateUserRequest) (*CreateUserResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/admin/users", req, nil)
	if err != nil {
		return nil, err
	}

	var created CreateUserResponse
	if err := decodeJSON(resp, &created, http.StatusCreated); err != nil {
		return nil, err
	}

	return &created, nil
}

// ResetUserMFA clears a user's MFA enrollment (admin only). The next login
// succeeds on password alone.
func (s *Session) ResetUserMFA(ctx context.Context, userID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/admin/users/"+userID+"/mfa", nil, nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// RotateKeys rotates the JWT signing keys (admin only).
func (s *Session) RotateKeys(ctx context.Context, req RotateKeyRequest) (*RotateKeyResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/admin/keys/rotate", req, nil)
	if err != nil {
		return nil, err
	}

	var rotated RotateKeyResponse
	if err := decodeJSON(resp, &rotated, http.StatusOK); err != nil {
		return nil, err
	}

	return &rotated, nil
}
