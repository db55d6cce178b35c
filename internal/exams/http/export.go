package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/opencourse/transcripts/internal/exams/service"
	"github.com/opencourse/transcripts/pkg/examsdk"
	"github.com/opencourse/transcripts/pkg/httpx"
	"github.com/opencourse/transcripts/pkg/slogx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	ReportService *service.ReportService
}

// ServeHTTP handles GET /v1/admin/exams/{exam_id}/results/export
//
//	@Summary		Export exam results
//	@Description	Downloads one exam's results as an xlsx workbook with one row per registered user. Ungraded rows carry an empty vote cell. Requires the admin role.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Param			exam_id	path		string	true	"Exam ID"
//	@Success		200		{file}		binary	"xlsx workbook"
//	@Failure		401		{object}	examsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	examsdk.ErrorResponse	"Caller is not an admin"
//	@Failure		404		{object}	examsdk.ErrorResponse	"Exam not found"
//	@Failure		500		{object}	examsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/admin/exams/{exam_id}/results/export [get].
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	actor, ok := actorFromContext(ctx)
	if !ok {
		examsdk.ErrInvalidToken.WriteError(w)
		return
	}

	examID := r.PathValue("exam_id")

	workbook, filename, err := h.ReportService.ExportExamResults(ctx, actor, examID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			examsdk.ErrForbidden.WriteError(w)
		case errors.Is(err, service.ErrNotFound):
			examsdk.ErrNotFound.WriteError(w)
		default:
			log.Error("failed to export results", "exam_id", examID, "err", err)
			examsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(workbook)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}
