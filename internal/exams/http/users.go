package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/opencourse/transcripts/internal/exams/domain"
	"github.com/opencourse/transcripts/internal/exams/service"
	"github.com/opencourse/transcripts/pkg/examsdk"
	"github.com/opencourse/transcripts/pkg/httpx"
	"github.com/opencourse/transcripts/pkg/slogx"
)

// UsersHandler serves account administration.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleList handles GET /v1/admin/users
//
//	@Summary		List accounts
//	@Description	Returns accounts visible to the caller. Admins see everyone; supervisors only accounts with the user role.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	examsdk.ListUsersResponse	"users"
//	@Failure		401	{object}	examsdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		403	{object}	examsdk.ErrorResponse		"Caller may not list users"
//	@Failure		500	{object}	examsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/admin/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	actor, ok := actorFromContext(ctx)
	if !ok {
		examsdk.ErrInvalidToken.WriteError(w)
		return
	}

	users, err := h.UserService.List(ctx, actor)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			examsdk.ErrForbidden.WriteError(w)
			return
		}
		log.Error("failed to list users", "err", err)
		examsdk.ErrServerError.WriteError(w)
		return
	}

	infos := make([]examsdk.UserInfo, len(users))
	for i, u := range users {
		infos[i] = userInfo(u)
	}

	httpx.WriteJSON(w, http.StatusOK, examsdk.ListUsersResponse{Users: infos})
}

// HandleCreate handles POST /v1/admin/users
//
//	@Summary		Create an account
//	@Description	Provisions an account with a role. When the request omits a password the server generates one and returns it exactly once. Requires the admin role.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		examsdk.CreateUserRequest	true	"Email, optional password, role"
//	@Success		201		{object}	examsdk.CreateUserResponse	"created account, generated_password when applicable"
//	@Failure		400		{object}	examsdk.ValidationErrorResponse	"Invalid request body"
//	@Failure		401		{object}	examsdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		403		{object}	examsdk.ErrorResponse		"Caller is not an admin"
//	@Failure		409		{object}	examsdk.ErrorResponse		"An account with this email already exists"
//	@Failure		500		{object}	examsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/admin/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	actor, ok := actorFromContext(ctx)
	if !ok {
		examsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req examsdk.CreateUserRequest
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

	user, generated, err := h.UserService.Create(ctx, actor, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			examsdk.ErrForbidden.WriteError(w)
		case errors.Is(err, service.ErrEmailTaken):
			examsdk.NewAPIError(
				http.StatusConflict,
				examsdk.ErrorCodeConflict,
				"an account with this email already exists",
			).WriteError(w)
		case errors.Is(err, service.ErrInvalidRole):
			examsdk.ErrInvalidRequest.WriteError(w)
		default:
			log.Error("failed to create user", "err", err)
			examsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, examsdk.CreateUserResponse{
		User:              userInfo(user),
		GeneratedPassword: generated,
	})
}

// HandleResetMFA handles DELETE /v1/admin/users/{user_id}/mfa
//
//	@Summary		Reset a user's MFA
//	@Description	Clears a user's TOTP enrollment so the next login succeeds on password alone. The recovery path for lost authenticators. Requires the admin role.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Param			user_id	path	string	true	"User ID"
//	@Success		204		"MFA cleared"
//	@Failure		401		{object}	examsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	examsdk.ErrorResponse	"Caller is not an admin"
//	@Failure		404		{object}	examsdk.ErrorResponse	"User not found"
//	@Failure		500		{object}	examsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/admin/users/{user_id}/mfa [delete].
func (h *UsersHandler) HandleResetMFA(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	actor, ok := actorFromContext(ctx)
	if !ok {
		examsdk.ErrInvalidToken.WriteError(w)
		return
	}

	userID := r.PathValue("user_id")

	if err := h.UserService.ResetMFA(ctx, actor, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			examsdk.ErrForbidden.WriteError(w)
		case errors.Is(err, service.ErrNotFound):
			examsdk.ErrNotFound.WriteError(w)
		default:
			log.Error("failed to reset MFA", "target_user_id", userID, "err", err)
			examsdk.ErrServerError.WriteError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
