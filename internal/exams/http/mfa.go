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

// MFAHandler handles TOTP enrollment for the authenticated account.
// Pending logins are completed by AuthHandler.HandleMFAVerify instead.
type MFAHandler struct {
	MFAService *service.MFAService
}

// HandleEnroll handles POST /v1/auth/mfa/enroll
//
//	@Summary		Enroll in TOTP MFA
//	@Description	Generates a TOTP secret for the authenticated account and returns it with an otpauth URL. The secret is inert until confirmed via /v1/auth/mfa/activate.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	examsdk.TOTPEnrollResponse	"TOTP secret and otpauth URL"
//	@Failure		400	{object}	examsdk.ErrorResponse		"MFA already enabled"
//	@Failure		401	{object}	examsdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		500	{object}	examsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/auth/mfa/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	actor, ok := actorFromContext(ctx)
	if !ok {
		examsdk.ErrInvalidToken.WriteError(w)
		return
	}

	enrollment, err := h.MFAService.Enroll(ctx, actor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMFAAlreadyEnabled):
			log.Warn("MFA already enabled", "user_id", actor.UserID)
			httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{
				"error":             "mfa_already_enabled",
				"error_description": "MFA is already enabled for this user",
			})
		case errors.Is(err, service.ErrNotFound):
			examsdk.ErrInvalidToken.WriteError(w)
		default:
			log.Error("failed to enroll TOTP", "user_id", actor.UserID, "err", err)
			examsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, examsdk.TOTPEnrollResponse{
		Secret:  enrollment.Secret,
		QRCode:  enrollment.OTPAuthURL,
		Issuer:  enrollment.Issuer,
		Account: enrollment.Account,
	})
}

// HandleActivate handles POST /v1/auth/mfa/activate
//
//	@Summary		Activate TOTP MFA
//	@Description	Confirms enrollment with a first valid TOTP code. From the next login on, the account receives an MFA challenge.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	examsdk.TOTPActivateRequest	true	"TOTP code"
//	@Success		204		"MFA enabled"
//	@Failure		400		{object}	examsdk.ErrorResponse	"Invalid code, not enrolled or already enabled"
//	@Failure		401		{object}	examsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		500		{object}	examsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/auth/mfa/activate [post].
func (h *MFAHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	actor, ok := actorFromContext(ctx)
	if !ok {
		examsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req examsdk.TOTPActivateRequest
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

	if err := h.MFAService.Activate(ctx, actor, req.Code); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTOTPCode):
			log.Warn("invalid TOTP code during activation", "user_id", actor.UserID)
			httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{
				"error":             "invalid_code",
				"error_description": "Invalid TOTP code",
			})
		case errors.Is(err, service.ErrMFANotEnrolled):
			httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{
				"error":             "mfa_not_enrolled",
				"error_description": "No pending TOTP enrollment for this user",
			})
		case errors.Is(err, service.ErrMFAAlreadyEnabled):
			httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{
				"error":             "mfa_already_enabled",
				"error_description": "MFA is already enabled for this user",
			})
		case errors.Is(err, service.ErrNotFound):
			examsdk.ErrInvalidToken.WriteError(w)
		default:
			log.Error("failed to activate TOTP", "user_id", actor.UserID, "err", err)
			examsdk.ErrServerError.WriteError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
