package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/opencourse/transcripts/internal/exams/domain"
	"github.com/opencourse/transcripts/internal/exams/store"
	"github.com/opencourse/transcripts/pkg/slogx"
)

var (
	// ErrNotFound is the generic missing-resource error. It is only ever
	// returned to callers that were already authorized, so it leaks
	// nothing an unauthorized caller could probe for.
	ErrNotFound = errors.New("not_found")

	// ErrExamNotFound wraps ErrNotFound so registration can tell the
	// caller which half of the (user, exam) pair was missing.
	ErrExamNotFound = fmt.Errorf("exam: %w", ErrNotFound)

	ErrAlreadyRegistered = errors.New("already_registered")
	ErrAlreadyGraded     = errors.New("already_graded")
	ErrInvalidVote       = errors.New("invalid_vote")
)

// AssignmentService manages the registration ledger: who sits which exam,
// and the single grade each seat ever receives.
type AssignmentService struct {
	Store store.Store
}

// Register creates an ungraded assignment for the calling user. The user id
// always comes from the actor's token, never from request input, so nobody
// can register anyone but themselves. Registering twice for the same exam
// fails with ErrAlreadyRegistered no matter how the calls interleave.
func (s *AssignmentService) Register(ctx context.Context, actor domain.Actor, examID string) (domain.Assignment, error) {
	l := slogx.FromContext(ctx)

	// 1. Authorization comes first, before the exam is even looked up.
	if err := Authorize(actor, domain.ActionRegisterForExam); err != nil {
		return domain.Assignment{}, err
	}

	// 2. Resolve the exam so a missing exam reads as exam-not-found
	// rather than a failed insert.
	if _, err := s.Store.Exams().GetExamByID(ctx, examID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Assignment{}, ErrExamNotFound
		}
		return domain.Assignment{}, err
	}

	// 3. Insert the seat. The composite primary key carries the
	// exactly-once guarantee under concurrency.
	assignment := domain.Assignment{
		UserID:    actor.UserID,
		ExamID:    examID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.Store.Assignments().CreateAssignment(ctx, assignment); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return domain.Assignment{}, ErrAlreadyRegistered
		case errors.Is(err, store.ErrNotFound):
			// Exam deleted between the lookup and the insert.
			return domain.Assignment{}, ErrExamNotFound
		}
		return domain.Assignment{}, err
	}

	l.Info("exam registration",
		slog.String("user_id", actor.UserID),
		slog.String("exam_id", examID),
	)

	return assignment, nil
}

// AssignVote grades an assignment. A vote is validated before anything is
// read or written, and once recorded it is immutable: the conditional
// update in the store only matches an ungraded row, so concurrent grades
// have exactly one winner and every loser gets ErrAlreadyGraded.
func (s *AssignmentService) AssignVote(ctx context.Context, actor domain.Actor, userID, examID string, vote float64) (domain.Assignment, error) {
	l := slogx.FromContext(ctx)

	if err := Authorize(actor, domain.ActionAssignVote); err != nil {
		return domain.Assignment{}, err
	}

	if !domain.ValidVote(vote) {
		return domain.Assignment{}, ErrInvalidVote
	}

	assignment, err := s.Store.Assignments().SetVoteIfUngraded(ctx, userID, examID, vote, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return domain.Assignment{}, ErrAlreadyGraded
		case errors.Is(err, store.ErrNotFound):
			return domain.Assignment{}, ErrNotFound
		}
		return domain.Assignment{}, err
	}

	l.Info("vote assigned",
		slog.String("graded_by", actor.UserID),
		slog.String("user_id", userID),
		slog.String("exam_id", examID),
		slog.Float64("vote", vote),
	)

	return assignment, nil
}

// ListUngraded returns the grading worklist, optionally narrowed to one
// user. It is the read half of grading and rides the same permission.
func (s *AssignmentService) ListUngraded(ctx context.Context, actor domain.Actor, userID string) ([]domain.AssignmentDetail, error) {
	if err := Authorize(actor, domain.ActionAssignVote); err != nil {
		return nil, err
	}

	return s.Store.Assignments().ListUngraded(ctx, userID)
}

// MyResults returns the caller's own assignments, graded and pending, with
// a computed summary. The scope is fixed to the token subject: there is no
// parameter to ask for someone else's results.
func (s *AssignmentService) MyResults(ctx context.Context, actor domain.Actor) ([]domain.AssignmentDetail, domain.ResultsSummary, error) {
	if err := Authorize(actor, domain.ActionViewOwnResults); err != nil {
		return nil, domain.ResultsSummary{}, err
	}

	details, err := s.Store.Assignments().ListForUser(ctx, actor.UserID)
	if err != nil {
		return nil, domain.ResultsSummary{}, err
	}

	return details, domain.Summarize(details), nil
}
