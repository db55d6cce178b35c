package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/opencourse/transcripts/internal/exams/service"
	"github.com/opencourse/transcripts/pkg/examsdk"
	"github.com/opencourse/transcripts/pkg/httpx"
	"github.com/opencourse/transcripts/pkg/slogx"
)

// KeyRotationHandler handles signing key rotation for both ephemeral and
// persistent key storage.
type KeyRotationHandler struct {
	KeyRotationService *service.KeyRotationService
}

// HandleRotate handles POST /v1/admin/keys/rotate
//
//	@Summary		Rotate signing keys
//	@Description	Generates a new EdDSA signing key and optionally retires the current ones with a grace period during which their tokens still verify. Requires the admin role.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		examsdk.RotateKeyRequest	false	"Rotation options"
//	@Success		200		{object}	examsdk.RotateKeyResponse	"new_key, retired_keys, active_keys"
//	@Failure		400		{object}	examsdk.ErrorResponse		"Invalid request body"
//	@Failure		401		{object}	examsdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		403		{object}	examsdk.ErrorResponse		"Caller is not an admin"
//	@Failure		500		{object}	examsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/admin/keys/rotate [post].
func (h *KeyRotationHandler) HandleRotate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	actor, ok := actorFromContext(ctx)
	if !ok {
		examsdk.ErrInvalidToken.WriteError(w)
		return
	}

	// An empty body means a plain rotation without retiring anything.
	var req examsdk.RotateKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httpx.WriteJSON(w, http.StatusBadRequest, examsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid request body",
		})
		return
	}

	result, err := h.KeyRotationService.Rotate(ctx, actor, req.RetireExisting)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			examsdk.ErrForbidden.WriteError(w)
			return
		}
		log.Error("key rotation failed", "err", err)
		examsdk.ErrServerError.WriteError(w)
		return
	}

	retired := make([]examsdk.SigningKeyInfo, len(result.RetiredKeys))
	for i, k := range result.RetiredKeys {
		retired[i] = signingKeyInfo(k)
	}

	httpx.WriteJSON(w, http.StatusOK, examsdk.RotateKeyResponse{
		NewKey:      signingKeyInfo(result.NewKey),
		RetiredKeys: retired,
		ActiveKeys:  result.ActiveKeys,
	})
}
