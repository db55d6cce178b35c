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

// AssignmentsHandler serves the grading ledger: registrations, votes and
// result views.
type AssignmentsHandler struct {
	AssignmentService *service.AssignmentService
}

// HandleRegister handles POST /v1/exams/{exam_id}/register
//
//	@Summary		Register for an exam
//	@Description	Registers the authenticated user for an exam. The registration is always keyed on the token subject; there is no way to register another account. Requires the user role.
//	@Tags			Assignments
//	@Security		BearerAuth
//	@Produce		json
//	@Param			exam_id	path		string						true	"Exam ID"
//	@Success		201		{object}	examsdk.RegisterResponse	"the new ungraded assignment"
//	@Failure		401		{object}	examsdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		403		{object}	examsdk.ErrorResponse		"Caller's role may not register"
//	@Failure		404		{object}	examsdk.ErrorResponse		"Exam not found"
//	@Failure		409		{object}	examsdk.ErrorResponse		"Already registered for this exam"
//	@Failure		500		{object}	examsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/exams/{exam_id}/register [post].
func (h *AssignmentsHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	actor, ok := actorFromContext(ctx)
	if !ok {
		examsdk.ErrInvalidToken.WriteError(w)
		return
	}

	examID := r.PathValue("exam_id")

	assignment, err := h.AssignmentService.Register(ctx, actor, examID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			examsdk.ErrForbidden.WriteError(w)
		case errors.Is(err, service.ErrAlreadyRegistered):
			examsdk.ErrAlreadyRegistered.WriteError(w)
		case errors.Is(err, service.ErrNotFound):
			examsdk.ErrNotFound.WriteError(w)
		default:
			log.Error("failed to register for exam", "exam_id", examID, "err", err)
			examsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, examsdk.RegisterResponse{
		Assignment: assignmentInfo(assignment),
	})
}

// HandleAssignVote handles PUT /v1/exams/{exam_id}/vote
//
//	@Summary		Assign a vote
//	@Description	Grades one user's assignment for this exam with a vote in [0,100]. Votes are final; grading an already-graded assignment fails. Requires the supervisor role.
//	@Tags			Assignments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			exam_id	path		string						true	"Exam ID"
//	@Param			request	body		examsdk.AssignVoteRequest	true	"Target user and vote"
//	@Success		200		{object}	examsdk.AssignmentInfo		"the graded assignment"
//	@Failure		400		{object}	examsdk.ValidationErrorResponse	"Invalid request body"
//	@Failure		401		{object}	examsdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		403		{object}	examsdk.ErrorResponse		"Caller is not a supervisor"
//	@Failure		404		{object}	examsdk.ErrorResponse		"No such assignment"
//	@Failure		409		{object}	examsdk.ErrorResponse		"Assignment already graded"
//	@Failure		422		{object}	examsdk.ErrorResponse		"Vote out of range"
//	@Failure		500		{object}	examsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/exams/{exam_id}/vote [put].
func (h *AssignmentsHandler) HandleAssignVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	actor, ok := actorFromContext(ctx)
	if !ok {
		examsdk.ErrInvalidToken.WriteError(w)
		return
	}

	examID := r.PathValue("exam_id")

	var req examsdk.AssignVoteRequest
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

	assignment, err := h.AssignmentService.AssignVote(ctx, actor, req.UserID, examID, *req.Vote)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			examsdk.ErrForbidden.WriteError(w)
		case errors.Is(err, service.ErrInvalidVote):
			examsdk.ErrInvalidVote.WriteError(w)
		case errors.Is(err, service.ErrAlreadyGraded):
			examsdk.ErrAlreadyGraded.WriteError(w)
		case errors.Is(err, service.ErrNotFound):
			examsdk.ErrNotFound.WriteError(w)
		default:
			log.Error("failed to assign vote",
				"exam_id", examID, "target_user_id", req.UserID, "err", err)
			examsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, assignmentInfo(assignment))
}

// HandleMyResults handles GET /v1/me/exams
//
//	@Summary		Get my results
//	@Description	Returns the authenticated user's assignments, graded and pending, with letter grades and summary statistics. Requires the user role.
//	@Tags			Assignments
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	examsdk.MyExamsResponse	"results, summary"
//	@Failure		401	{object}	examsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	examsdk.ErrorResponse	"Caller's role has no personal results"
//	@Failure		500	{object}	examsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/me/exams [get].
func (h *AssignmentsHandler) HandleMyResults(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	actor, ok := actorFromContext(ctx)
	if !ok {
		examsdk.ErrInvalidToken.WriteError(w)
		return
	}

	details, summary, err := h.AssignmentService.MyResults(ctx, actor)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			examsdk.ErrForbidden.WriteError(w)
			return
		}
		log.Error("failed to load results", "user_id", actor.UserID, "err", err)
		examsdk.ErrServerError.WriteError(w)
		return
	}

	results := make([]examsdk.AssignmentInfo, len(details))
	for i, d := range details {
		results[i] = assignmentDetailInfo(d)
	}

	httpx.WriteJSON(w, http.StatusOK, examsdk.MyExamsResponse{
		Results: results,
		Summary: resultsSummary(summary),
	})
}

// HandleUngraded handles GET /v1/supervisor/ungraded-assignments
//
//	@Summary		List ungraded assignments
//	@Description	Returns assignments still awaiting a vote, optionally filtered to one user with ?user_id=. Requires the supervisor role.
//	@Tags			Assignments
//	@Security		BearerAuth
//	@Produce		json
//	@Param			user_id	query		string									false	"Only this user's assignments"
//	@Success		200		{object}	examsdk.UngradedAssignmentsResponse	"assignments"
//	@Failure		401		{object}	examsdk.ErrorResponse				"Invalid or missing access token"
//	@Failure		403		{object}	examsdk.ErrorResponse				"Caller is not a supervisor"
//	@Failure		500		{object}	examsdk.ErrorResponse				"Internal server error"
//	@Router			/v1/supervisor/ungraded-assignments [get].
func (h *AssignmentsHandler) HandleUngraded(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	actor, ok := actorFromContext(ctx)
	if !ok {
		examsdk.ErrInvalidToken.WriteError(w)
		return
	}

	userID := r.URL.Query().Get("user_id")

	details, err := h.AssignmentService.ListUngraded(ctx, actor, userID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			examsdk.ErrForbidden.WriteError(w)
			return
		}
		log.Error("failed to list ungraded assignments", "err", err)
		examsdk.ErrServerError.WriteError(w)
		return
	}

	assignments := make([]examsdk.AssignmentInfo, len(details))
	for i, d := range details {
		assignments[i] = assignmentDetailInfo(d)
	}

	httpx.WriteJSON(w, http.StatusOK, examsdk.UngradedAssignmentsResponse{
		Assignments: assignments,
	})
}
