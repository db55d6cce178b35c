package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/opencourse/transcripts/internal/exams/domain"
	"github.com/opencourse/transcripts/internal/exams/store"
)

type assignmentsRepo struct {
	db dbtx
}

func (r *assignmentsRepo) CreateAssignment(ctx context.Context, a domain.Assignment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO assignments (user_id, exam_id, vote, graded_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		a.UserID, a.ExamID, mapOptionalFloat(a.Vote), mapOptionalTime(a.GradedAt),
		a.CreatedAt.UTC(),
	)
	switch {
	case isUniqueViolation(err):
		return store.ErrAlreadyExists
	case isForeignKeyViolation(err):
		// User or exam vanished between the existence check and the insert.
		return store.ErrNotFound
	}
	return err
}

func (r *assignmentsRepo) GetAssignment(ctx context.Context, userID, examID string) (domain.Assignment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT user_id, exam_id, vote, graded_at, created_at
		 FROM assignments WHERE user_id = ? AND exam_id = ?`,
		userID, examID)
	return scanAssignment(row)
}

// SetVoteIfUngraded carries the grade-immutability guarantee: the UPDATE
// only matches while vote IS NULL, so of two concurrent grades exactly one
// changes the row. The loser is told apart from a missing assignment by a
// follow-up read.
func (r *assignmentsRepo) SetVoteIfUngraded(ctx context.Context, userID, examID string, vote float64, gradedAt time.Time) (domain.Assignment, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE assignments SET vote = ?, graded_at = ?
		 WHERE user_id = ? AND exam_id = ? AND vote IS NULL`,
		vote, gradedAt.UTC(), userID, examID)
	if err != nil {
		return domain.Assignment{}, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return domain.Assignment{}, err
	}

	if n == 0 {
		if _, err := r.GetAssignment(ctx, userID, examID); err != nil {
			return domain.Assignment{}, err // ErrNotFound: the pair never registered
		}
		return domain.Assignment{}, store.ErrAlreadyExists
	}

	return r.GetAssignment(ctx, userID, examID)
}

const assignmentDetailColumns = `a.user_id, a.exam_id, a.vote, a.graded_at, a.created_at, u.email, e.title, e.exam_date`

const assignmentDetailJoins = `
	FROM assignments a
	JOIN users u ON u.id = a.user_id
	JOIN exams e ON e.id = a.exam_id`

func (r *assignmentsRepo) ListUngraded(ctx context.Context, userID string) ([]domain.AssignmentDetail, error) {
	query := `SELECT ` + assignmentDetailColumns + assignmentDetailJoins + `
		WHERE a.vote IS NULL`
	var args []any
	if userID != "" {
		query += ` AND a.user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY a.created_at ASC, a.user_id ASC, a.exam_id ASC`

	return r.queryDetails(ctx, query, args...)
}

func (r *assignmentsRepo) ListForUser(ctx context.Context, userID string) ([]domain.AssignmentDetail, error) {
	query := `SELECT ` + assignmentDetailColumns + assignmentDetailJoins + `
		WHERE a.user_id = ?
		ORDER BY e.exam_date ASC, a.exam_id ASC`
	return r.queryDetails(ctx, query, userID)
}

func (r *assignmentsRepo) ListForExam(ctx context.Context, examID string) ([]domain.AssignmentDetail, error) {
	query := `SELECT ` + assignmentDetailColumns + assignmentDetailJoins + `
		WHERE a.exam_id = ?
		ORDER BY u.email ASC`
	return r.queryDetails(ctx, query, examID)
}

func (r *assignmentsRepo) queryDetails(ctx context.Context, query string, args ...any) ([]domain.AssignmentDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AssignmentDetail
	for rows.Next() {
		var (
			d        domain.AssignmentDetail
			vote     sql.NullFloat64
			gradedAt sql.NullTime
		)
		if err := rows.Scan(&d.UserID, &d.ExamID, &vote, &gradedAt, &d.CreatedAt,
			&d.UserEmail, &d.ExamTitle, &d.ExamDate); err != nil {
			return nil, err
		}
		d.Vote = mapNullFloatPtr(vote)
		d.GradedAt = mapNullTimePtr(gradedAt)
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanAssignment(row rowScanner) (domain.Assignment, error) {
	var (
		a        domain.Assignment
		vote     sql.NullFloat64
		gradedAt sql.NullTime
	)
	if err := row.Scan(&a.UserID, &a.ExamID, &vote, &gradedAt, &a.CreatedAt); err != nil {
		return domain.Assignment{}, mapNotFound(err)
	}

	a.Vote = mapNullFloatPtr(vote)
	a.GradedAt = mapNullTimePtr(gradedAt)
	return a, nil
}
