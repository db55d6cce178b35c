package domain

import "time"

// Session is the result of a completed authentication: a signed access
// token plus the account it identifies. The token itself is the whole
// session state; nothing server-side tracks it.
type Session struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type,omitempty"` // typically "Bearer"
	ExpiresIn   time.Duration `json:"expires_in"`           // seconds until expiry
	User        User          `json:"-"`
}
