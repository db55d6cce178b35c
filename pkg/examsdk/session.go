package examsdk

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// refreshBuffer is how long before expiry a session refreshes its token.
// Refresh only works on still-valid tokens, so waiting until actual expiry
// would be too late.
const refreshBuffer = 30 * time.Second

// Session represents an authenticated session with automatic token refresh.
// Safe for concurrent use.
type Session struct {
	client *SDKClient

	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time
	user        *UserInfo
}

// newSession creates an authenticated session from a token response.
func newSession(client *SDKClient, tokenResp *TokenResponse) *Session {
	return &Session{
		client:      client,
		accessToken: tokenResp.AccessToken,
		expiresAt:   expiryFrom(tokenResp.ExpiresIn),
		user:        tokenResp.User,
	}
}

func expiryFrom(expiresIn int) time.Time {
	return time.Now().Add(time.Duration(expiresIn)*time.Second - refreshBuffer)
}

// getValidToken returns an access token that is good for at least the
// refresh buffer, refreshing it when needed.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring the write lock; another goroutine may
	// have refreshed already.
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}

	tokenResp, err := s.client.refreshToken(ctx, s.accessToken)
	if err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}

	s.accessToken = tokenResp.AccessToken
	s.expiresAt = expiryFrom(tokenResp.ExpiresIn)
	if tokenResp.User != nil {
		s.user = tokenResp.User
	}

	return s.accessToken, nil
}

// AccessToken returns the current access token without checking expiration.
// Prefer the Session methods, which refresh automatically.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// User returns the account attached to this session, if the server sent it.
func (s *Session) User() *UserInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Refresh forces a token refresh now, regardless of remaining lifetime.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokenResp, err := s.client.refreshToken(ctx, s.accessToken)
	if err != nil {
		return err
	}

	s.accessToken = tokenResp.AccessToken
	s.expiresAt = expiryFrom(tokenResp.ExpiresIn)
	if tokenResp.User != nil {
		s.user = tokenResp.User
	}

	return nil
}

// Me fetches the authenticated account and its permitted actions.
func (s *Session) Me(ctx context.Context) (*MeResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var me MeResponse
	if err := decodeJSON(resp, &me, http.StatusOK); err != nil {
		return nil, err
	}

	return &me, nil
}

// Logout acknowledges the end of the session server-side. Tokens are
// stateless, so this is a courtesy call; the token stays valid until expiry.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/auth/logout", nil, nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}
