package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/opencourse/transcripts/internal/exams/domain"
	"github.com/opencourse/transcripts/internal/exams/store"
	"github.com/opencourse/transcripts/pkg/idx"
	"github.com/opencourse/transcripts/pkg/slogx"
)

// ErrTitleTaken is returned when an exam title collides with an existing
// one. Titles are the human-facing identifier, so they stay unique.
var ErrTitleTaken = errors.New("exam_title_taken")

// ExamService manages the exam catalog. Reads are public; writes are
// admin-only through the permission gate.
type ExamService struct {
	Store store.Store
}

// Create adds an exam to the catalog.
func (s *ExamService) Create(ctx context.Context, actor domain.Actor, title string, date time.Time) (domain.Exam, error) {
	l := slogx.FromContext(ctx)

	if err := Authorize(actor, domain.ActionCreateExam); err != nil {
		return domain.Exam{}, err
	}

	now := time.Now().UTC()
	exam := domain.Exam{
		ID:        idx.New().String(),
		Title:     strings.TrimSpace(title),
		Date:      date.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.Exams().CreateExam(ctx, exam); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Exam{}, ErrTitleTaken
		}
		return domain.Exam{}, err
	}

	l.Info("exam created",
		slog.String("exam_id", exam.ID),
		slog.String("title", exam.Title),
		slog.String("created_by", actor.UserID),
	)

	return exam, nil
}

// Delete removes an exam and, through the schema's cascade, every
// assignment registered against it.
func (s *ExamService) Delete(ctx context.Context, actor domain.Actor, examID string) error {
	l := slogx.FromContext(ctx)

	if err := Authorize(actor, domain.ActionDeleteExam); err != nil {
		return err
	}

	if err := s.Store.Exams().DeleteExam(ctx, examID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrExamNotFound
		}
		return err
	}

	l.Info("exam deleted",
		slog.String("exam_id", examID),
		slog.String("deleted_by", actor.UserID),
	)

	return nil
}

// List returns the full catalog ordered by exam date. It backs a public
// endpoint, so there is no actor and no gate.
func (s *ExamService) List(ctx context.Context) ([]domain.Exam, error) {
	return s.Store.Exams().ListExams(ctx)
}

// Get returns one exam along with its participation statistics. Callers
// serving unauthenticated traffic should withhold the average from the
// statistics before responding.
func (s *ExamService) Get(ctx context.Context, examID string) (domain.Exam, domain.ExamStatistics, error) {
	exam, err := s.Store.Exams().GetExamByID(ctx, examID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Exam{}, domain.ExamStatistics{}, ErrExamNotFound
		}
		return domain.Exam{}, domain.ExamStatistics{}, err
	}

	stats, err := s.Store.Exams().GetExamStatistics(ctx, examID)
	if err != nil {
		return domain.Exam{}, domain.ExamStatistics{}, err
	}

	return exam, stats, nil
}
