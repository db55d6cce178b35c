package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/opencourse/transcripts/internal/exams/service"
	"github.com/opencourse/transcripts/pkg/examsdk"
	"github.com/opencourse/transcripts/pkg/httpx"
	"github.com/opencourse/transcripts/pkg/slogx"
)

// ExamsHandler serves the exam catalog: public reads, admin mutations.
type ExamsHandler struct {
	ExamService *service.ExamService
}

// HandleList handles GET /v1/exams
//
//	@Summary		List exams
//	@Description	Returns the exam catalog. Public endpoint.
//	@Tags			Exams
//	@Produce		json
//	@Success		200	{object}	examsdk.ListExamsResponse	"exams"
//	@Failure		500	{object}	examsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/exams [get].
func (h *ExamsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	exams, err := h.ExamService.List(ctx)
	if err != nil {
		log.Error("failed to list exams", "err", err)
		examsdk.ErrServerError.WriteError(w)
		return
	}

	infos := make([]examsdk.ExamInfo, len(exams))
	for i, e := range exams {
		infos[i] = examInfo(e)
	}

	httpx.WriteJSON(w, http.StatusOK, examsdk.ListExamsResponse{Exams: infos})
}

// HandleGet handles GET /v1/exams/{exam_id}
//
//	@Summary		Get an exam
//	@Description	Returns one exam with participation statistics. The average vote is withheld here; it only appears on authenticated per-user results and admin exports.
//	@Tags			Exams
//	@Produce		json
//	@Param			exam_id	path		string					true	"Exam ID"
//	@Success		200		{object}	examsdk.ExamInfo		"exam with statistics"
//	@Failure		404		{object}	examsdk.ErrorResponse	"Exam not found"
//	@Failure		500		{object}	examsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/exams/{exam_id} [get].
func (h *ExamsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	examID := r.PathValue("exam_id")

	exam, stats, err := h.ExamService.Get(ctx, examID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			examsdk.ErrNotFound.WriteError(w)
			return
		}
		log.Error("failed to load exam", "exam_id", examID, "err", err)
		examsdk.ErrServerError.WriteError(w)
		return
	}

	info := examInfo(exam)
	info.Statistics = &examsdk.ExamStatistics{
		Participants: stats.Participants,
		Graded:       stats.Graded,
		Pending:      stats.Pending,
		// AverageVote stays nil on the public catalog.
	}

	httpx.WriteJSON(w, http.StatusOK, info)
}

// HandleCreate handles POST /v1/exams
//
//	@Summary		Create an exam
//	@Description	Adds an exam to the catalog. Titles are unique. Requires the admin role.
//	@Tags			Exams
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		examsdk.CreateExamRequest	true	"Title and RFC3339 date"
//	@Success		201		{object}	examsdk.ExamInfo			"created exam"
//	@Failure		400		{object}	examsdk.ValidationErrorResponse	"Invalid request body"
//	@Failure		401		{object}	examsdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		403		{object}	examsdk.ErrorResponse		"Caller is not an admin"
//	@Failure		409		{object}	examsdk.ErrorResponse		"An exam with this title already exists"
//	@Failure		500		{object}	examsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/exams [post].
func (h *ExamsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	actor, ok := actorFromContext(ctx)
	if !ok {
		examsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req examsdk.CreateExamRequest
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

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"error":             "invalid_request",
			"error_description": "date must be an RFC3339 timestamp",
		})
		return
	}

	exam, err := h.ExamService.Create(ctx, actor, req.Title, date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			examsdk.ErrForbidden.WriteError(w)
		case errors.Is(err, service.ErrTitleTaken):
			examsdk.NewAPIError(
				http.StatusConflict,
				examsdk.ErrorCodeConflict,
				"an exam with this title already exists",
			).WriteError(w)
		default:
			log.Error("failed to create exam", "err", err)
			examsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, examInfo(exam))
}

// HandleDelete handles DELETE /v1/exams/{exam_id}
//
//	@Summary		Delete an exam
//	@Description	Removes an exam and every assignment registered against it. Requires the admin role.
//	@Tags			Exams
//	@Security		BearerAuth
//	@Param			exam_id	path	string	true	"Exam ID"
//	@Success		204		"Deleted"
//	@Failure		401		{object}	examsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	examsdk.ErrorResponse	"Caller is not an admin"
//	@Failure		404		{object}	examsdk.ErrorResponse	"Exam not found"
//	@Failure		500		{object}	examsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/exams/{exam_id} [delete].
func (h *ExamsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	actor, ok := actorFromContext(ctx)
	if !ok {
		examsdk.ErrInvalidToken.WriteError(w)
		return
	}

	examID := r.PathValue("exam_id")

	if err := h.ExamService.Delete(ctx, actor, examID); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			examsdk.ErrForbidden.WriteError(w)
		case errors.Is(err, service.ErrNotFound):
			examsdk.ErrNotFound.WriteError(w)
		default:
			log.Error("failed to delete exam", "exam_id", examID, "err", err)
			examsdk.ErrServerError.WriteError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
