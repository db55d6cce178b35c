package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/opencourse/transcripts/internal/exams/domain"
	"github.com/opencourse/transcripts/internal/exams/service"
	"github.com/opencourse/transcripts/pkg/examsdk"
	"github.com/opencourse/transcripts/pkg/httpx"
	"github.com/opencourse/transcripts/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// HandleStatus handles GET /v1/bootstrap
//
//	@Summary		Get bootstrap status
//	@Description	Reports whether the service has been seeded with its first account. Deploy tooling polls this before attempting to bootstrap.
//	@Tags			Bootstrap
//	@Produce		json
//	@Success		200	{object}	examsdk.BootstrapStatusResponse	"bootstrapped"
//	@Failure		500	{object}	examsdk.ErrorResponse			"Internal server error"
//	@Router			/v1/bootstrap [get].
func (h *BootstrapHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	bootstrapped, err := h.BootstrapService.IsBootstrapped(ctx)
	if err != nil {
		log.Error("failed to check bootstrap status", "err", err)
		examsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, examsdk.BootstrapStatusResponse{
		Bootstrapped: bootstrapped,
	})
}

// HandleBootstrap handles POST /v1/bootstrap
//
//	@Summary		Bootstrap the exams service
//	@Description	Seeds the first admin account (and optionally a supervisor) into an empty user store. Only available while a bootstrap token is configured, and only works once.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string						true	"Bootstrap token for authorization"
//	@Param			request				body		examsdk.BootstrapRequest	true	"Initial accounts"
//	@Success		201					{object}	examsdk.BootstrapResponse	"IDs of the seeded accounts"
//	@Failure		400					{object}	examsdk.ValidationErrorResponse	"Invalid request body or validation failed"
//	@Failure		401					{object}	examsdk.ErrorResponse		"Missing or invalid bootstrap token"
//	@Failure		404					{object}	examsdk.ErrorResponse		"Bootstrap not enabled (no token configured)"
//	@Failure		409					{object}	examsdk.ErrorResponse		"System already bootstrapped"
//	@Failure		500					{object}	examsdk.ErrorResponse		"Failed to create accounts"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) HandleBootstrap(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())
	l.Info("Starting to bootstrap")

	// 1. Check if enabled
	if h.BootstrapService.Token == "" {
		httpx.WriteJSON(w, http.StatusNotFound, examsdk.ErrorResponse{
			Error:            "not_found",
			ErrorDescription: "Bootstrap endpoint is not enabled",
		})
		return
	}

	// 2. Require bootstrap token header
	token := r.Header.Get("X-Bootstrap-Token")
	if token == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, examsdk.ErrorResponse{
			Error:            "unauthorized",
			ErrorDescription: "Bootstrap token is required in X-Bootstrap-Token header",
		})
		return
	}

	// 3. Parse request body and validate
	var req examsdk.BootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, examsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Request body must be valid JSON",
		})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	// 4. Perform bootstrap
	adminUserID, supervisorUserID, err := h.BootstrapService.Bootstrap(
		r.Context(),
		token,
		domain.BootstrapData{
			AdminEmail:         strings.TrimSpace(req.AdminEmail),
			AdminPassword:      req.AdminPassword,
			SupervisorEmail:    strings.TrimSpace(req.SupervisorEmail),
			SupervisorPassword: req.SupervisorPassword,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBootstrapAlready):
			examsdk.NewAPIError(
				http.StatusConflict,
				examsdk.ErrorCodeConflict,
				"System has already been bootstrapped",
			).WriteError(w)
		case errors.Is(err, service.ErrBootstrapUnauthorized):
			httpx.WriteJSON(
				w,
				http.StatusUnauthorized,
				examsdk.ErrorResponse{
					Error:            "unauthorized",
					ErrorDescription: "Invalid bootstrap token",
				},
			)
		case errors.Is(err, service.ErrBootstrapFailedToCreateAdmin):
			httpx.WriteJSON(
				w,
				http.StatusInternalServerError,
				examsdk.ErrorResponse{
					Error:            "server_error",
					ErrorDescription: "Failed to create initial accounts",
				},
			)
		default:
			httpx.WriteJSON(
				w,
				http.StatusInternalServerError,
				examsdk.ErrorResponse{
					Error:            "server_error",
					ErrorDescription: "An internal error occurred",
				},
			)
		}
		return
	}

	// 5. Respond with the created IDs
	httpx.WriteJSON(w, http.StatusCreated, examsdk.BootstrapResponse{
		AdminUserID:      adminUserID,
		SupervisorUserID: supervisorUserID,
	})
}
