package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/opencourse/transcripts/internal/exams/domain"
	"github.com/opencourse/transcripts/internal/exams/store"
	"github.com/opencourse/transcripts/pkg/slogx"
)

// ReportService renders exam results into spreadsheet downloads for the
// registrar's office.
type ReportService struct {
	Store store.Store
}

// resultsSheet is the single worksheet an export carries.
const resultsSheet = "Results"

// ExportExamResults renders every assignment of one exam into an xlsx
// workbook. Ungraded rows export with an empty vote cell rather than a
// zero, so a pending grade can never read as a failing one.
func (s *ReportService) ExportExamResults(ctx context.Context, actor domain.Actor, examID string) ([]byte, string, error) {
	l := slogx.FromContext(ctx)

	if err := Authorize(actor, domain.ActionExportResults); err != nil {
		return nil, "", err
	}

	exam, err := s.Store.Exams().GetExamByID(ctx, examID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrExamNotFound
		}
		return nil, "", err
	}

	details, err := s.Store.Assignments().ListForExam(ctx, examID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return nil, "", fmt.Errorf("failed to build workbook: %w", err)
	}

	headers := []string{"Email", "Vote", "Grade", "Registered", "Graded At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(resultsSheet, cell, h); err != nil {
			return nil, "", err
		}
	}

	for row, d := range details {
		values := []any{
			d.UserEmail,
			nil, // vote, set below only when graded
			d.LetterGrade(),
			d.CreatedAt.Format("2006-01-02 15:04"),
			"",
		}
		if d.Vote != nil {
			values[1] = *d.Vote
		}
		if d.GradedAt != nil {
			values[4] = d.GradedAt.Format("2006-01-02 15:04")
		}

		for col, v := range values {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, "", err
			}
			if err := f.SetCellValue(resultsSheet, cell, v); err != nil {
				return nil, "", err
			}
		}
	}

	if err := f.SetColWidth(resultsSheet, "A", "A", 32); err != nil {
		return nil, "", err
	}
	if err := f.SetColWidth(resultsSheet, "D", "E", 18); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}

	l.Info("exam results exported",
		slog.String("exam_id", examID),
		slog.Int("rows", len(details)),
		slog.String("exported_by", actor.UserID),
	)

	return buf.Bytes(), exportFilename(exam.Title), nil
}

// exportFilename turns an exam title into a safe attachment name.
func exportFilename(title string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, title)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "exam"
	}

	return slug + "-results.xlsx"
}
