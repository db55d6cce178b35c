package http

import (
	"errors"
	"net/http"

	"github.com/opencourse/transcripts/internal/exams/service"
	"github.com/opencourse/transcripts/pkg/examsdk"
	"github.com/opencourse/transcripts/pkg/httpx"
	"github.com/opencourse/transcripts/pkg/slogx"
)

type MeHandler struct {
	UserService *service.UserService
}

// ServeHTTP handles GET /v1/auth/me
//
//	@Summary		Get the authenticated account
//	@Description	Returns the account behind the bearer token together with the actions its role permits.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	examsdk.MeResponse		"user, permissions"
//	@Failure		401	{object}	examsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		500	{object}	examsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/auth/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	actor, ok := actorFromContext(ctx)
	if !ok {
		examsdk.ErrInvalidToken.WriteError(w)
		return
	}

	user, permissions, err := h.UserService.Me(ctx, actor)
	if err != nil {
		// A valid token whose subject no longer exists reads as
		// unauthenticated, the same as any other dead token.
		if errors.Is(err, service.ErrNotFound) {
			log.Warn("token subject no longer exists", "user_id", actor.UserID)
			examsdk.ErrInvalidToken.WriteError(w)
			return
		}
		log.Error("failed to load account", "user_id", actor.UserID, "err", err)
		examsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, examsdk.MeResponse{
		User:        userInfo(user),
		Permissions: permissions,
	})
}
