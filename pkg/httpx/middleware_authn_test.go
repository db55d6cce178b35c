package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/opencourse/transcripts/pkg/httpx"
	"github.com/opencourse/transcripts/pkg/jwtx"
)

func newAuthnFixture(t *testing.T) (*jwtx.KeyManager, http.Handler, *jwtx.Claims) {
	t.Helper()

	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{NumKeys: 1, Issuer: "opencourse-exams"})
	require.NoError(t, err)

	var seen jwtx.Claims
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := httpx.ClaimsFromContext(r.Context())
		require.True(t, ok, "claims must be injected")
		seen = claims
		w.WriteHeader(http.StatusOK)
	})

	return km, httpx.Chain(inner, httpx.AuthnMiddleware(km.Verifier())), &seen
}

func signToken(t *testing.T, km *jwtx.KeyManager, ttl time.Duration) string {
	t.Helper()

	signer, err := km.GetSigner()
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims(
		"01ARZ3NDEKTSV4RRFFQ69G5FAV",
		"supervisor",
		"sup@opencourse.example",
		[]string{jwtx.AMRPassword},
		ttl,
		"opencourse-exams",
		time.Now().UTC(),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	return token
}

func TestAuthnMiddlewareValidToken(t *testing.T) {
	km, handler, seen := newAuthnFixture(t)
	token := signToken(t, km, 30*time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", seen.Subject)
	require.Equal(t, "supervisor", seen.Role)
	require.Equal(t, "sup@opencourse.example", seen.Email)
}

func TestAuthnMiddlewareMissingHeader(t *testing.T) {
	_, handler, _ := newAuthnFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	require.Contains(t, rec.Body.String(), "missing bearer token")
}

func TestAuthnMiddlewareGarbageToken(t *testing.T) {
	_, handler, _ := newAuthnFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid_token")
}

func TestAuthnMiddlewareExpiredToken(t *testing.T) {
	km, handler, _ := newAuthnFixture(t)

	// Expired past the verifier leeway: the handler must never run.
	token := signToken(t, km, -time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "token_expired")
}

func TestChainOrder(t *testing.T) {
	var order []string

	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mark("outer"), mark("inner"))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}
