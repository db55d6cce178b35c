package examsdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the exams service. It provides access to
// unauthenticated operations and creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new exams service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewSessionFromToken creates a Session from a token obtained elsewhere
// (e.g. stored from a previous login). The session still refreshes the
// token before it expires.
func (c *SDKClient) NewSessionFromToken(accessToken string, expiresIn int, user *UserInfo) *Session {
	return newSession(c, &TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		User:        user,
	})
}
