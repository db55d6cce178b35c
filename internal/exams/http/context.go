package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/opencourse/transcripts/internal/exams/domain"
	"github.com/opencourse/transcripts/pkg/httpx"
)

// actorFromContext rebuilds the acting identity from the claims that
// httpx.AuthnMiddleware verified and injected. ok is false when the route
// was wired without the middleware or the token carries a role this
// service does not know.
func actorFromContext(ctx context.Context) (domain.Actor, bool) {
	claims, ok := httpx.ClaimsFromContext(ctx)
	if !ok {
		return domain.Actor{}, false
	}
	role, ok := domain.ParseRole(claims.Role)
	if !ok {
		return domain.Actor{}, false
	}
	return domain.Actor{
		UserID: claims.Subject,
		Role:   role,
		Email:  claims.Email,
	}, true
}

// bearerToken extracts the raw token from the Authorization header for
// handlers that verify it themselves (refresh).
func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(auth[len(prefix):]), true
}
