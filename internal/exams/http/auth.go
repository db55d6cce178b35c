package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/opencourse/transcripts/internal/exams/service"
	"github.com/opencourse/transcripts/pkg/examsdk"
	"github.com/opencourse/transcripts/pkg/httpx"
	"github.com/opencourse/transcripts/pkg/slogx"
)

// AuthHandler handles login, MFA completion, token refresh and logout.
type AuthHandler struct {
	AuthService  *service.AuthService
	TokenService *service.TokenService
}

// HandleLogin handles POST /v1/auth/login
//
//	@Summary		Login with email and password
//	@Description	Authenticates an account and returns a signed access token. Accounts with MFA enabled receive a 409 challenge carrying an mfa_token to complete via /v1/auth/mfa/verify.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		examsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	examsdk.TokenResponse	"access_token, token_type, expires_in, user"
//	@Failure		400		{object}	examsdk.ValidationErrorResponse	"Invalid request body"
//	@Failure		401		{object}	examsdk.ErrorResponse	"Invalid credentials"
//	@Failure		409		{object}	examsdk.MFARequiredError	"MFA challenge (mfa_token, mfa_methods)"
//	@Failure		500		{object}	examsdk.ErrorResponse	"Internal server error"
//	@Header			200		{string}	Cache-Control			"no-store"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req examsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"error":             "invalid_request",
			"error_description": "Invalid JSON body",
		})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	session, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		var mfa *examsdk.MFARequiredError
		switch {
		case errors.As(err, &mfa):
			mfa.WriteError(w)
		case errors.Is(err, service.ErrInvalidCredentials):
			examsdk.ErrInvalidCredentials.WriteError(w)
		default:
			log.Error("login failed", "err", err)
			examsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(session))
}

// HandleMFAVerify handles POST /v1/auth/mfa/verify
//
//	@Summary		Complete an MFA-challenged login
//	@Description	Redeems the mfa_token from a 409 login response with a TOTP code and returns the final access token. Challenges are single use and allow a limited number of attempts.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		examsdk.MFAVerifyRequest	true	"Challenge token and TOTP code"
//	@Success		200		{object}	examsdk.TokenResponse		"access_token, token_type, expires_in, user"
//	@Failure		400		{object}	examsdk.ValidationErrorResponse	"Invalid request body"
//	@Failure		401		{object}	examsdk.ErrorResponse		"Unknown challenge, expired challenge or wrong code"
//	@Failure		500		{object}	examsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/auth/mfa/verify [post].
func (h *AuthHandler) HandleMFAVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req examsdk.MFAVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"error":             "invalid_request",
			"error_description": "Invalid JSON body",
		})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	session, err := h.AuthService.VerifyMFA(ctx, req.MFAToken, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTooManyAttempts):
			log.Warn("mfa verification locked out")
			examsdk.NewAPIError(
				http.StatusUnauthorized,
				examsdk.ErrorCodeInvalidCredentials,
				"too many failed attempts, the login challenge has been invalidated",
			).WriteError(w)
		case errors.Is(err, service.ErrInvalidCredentials):
			examsdk.ErrInvalidCredentials.WriteError(w)
		default:
			log.Error("mfa verification failed", "err", err)
			examsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(session))
}

// HandleRefresh handles POST /v1/auth/refresh
//
//	@Summary		Refresh an access token
//	@Description	Exchanges a still-valid bearer token for a fresh one with the same identity and role. Expired tokens are refused; the client must log in again.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	examsdk.TokenResponse	"access_token, token_type, expires_in"
//	@Failure		401	{object}	examsdk.ErrorResponse	"Missing, malformed or expired token"
//	@Failure		500	{object}	examsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	raw, ok := bearerToken(r)
	if !ok {
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
		examsdk.ErrInvalidToken.WriteError(w)
		return
	}

	session, err := h.TokenService.Refresh(raw)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="token expired"`)
			examsdk.ErrTokenExpired.WriteError(w)
		case errors.Is(err, service.ErrTokenMalformed):
			w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
			examsdk.ErrInvalidToken.WriteError(w)
		default:
			log.Error("token refresh failed", "err", err)
			examsdk.ErrServerError.WriteError(w)
		}
		return
	}

	// The identity comes from the claims, not a store lookup, so the
	// response carries no user block. Clients keep the one from login.
	httpx.WriteJSON(w, http.StatusOK, examsdk.TokenResponse{
		AccessToken: session.AccessToken,
		TokenType:   session.TokenType,
		ExpiresIn:   int(session.ExpiresIn.Seconds()),
	})
}

// HandleLogout handles POST /v1/auth/logout
//
//	@Summary		Logout
//	@Description	Acknowledges a client-side logout. Sessions are stateless JWTs so there is nothing to revoke server-side; the client discards the token and it dies at its natural expiry.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Success		204	"Logged out"
//	@Failure		401	{object}	examsdk.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if actor, ok := actorFromContext(ctx); ok {
		log.Info("logout acknowledged", "user_id", actor.UserID)
	}

	w.WriteHeader(http.StatusNoContent)
}
