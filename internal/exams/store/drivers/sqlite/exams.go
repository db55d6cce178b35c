package sqlite

import (
	"context"
	"database/sql"

	"github.com/opencourse/transcripts/internal/exams/domain"
	"github.com/opencourse/transcripts/internal/exams/store"
)

type examsRepo struct {
	db dbtx
}

const examColumns = `id, title, exam_date, created_at, updated_at`

func (r *examsRepo) GetExamByID(ctx context.Context, id string) (domain.Exam, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+examColumns+` FROM exams WHERE id = ?`, id)
	return scanExam(row)
}

func (r *examsRepo) ListExams(ctx context.Context) ([]domain.Exam, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+examColumns+` FROM exams ORDER BY exam_date ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Exam
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *examsRepo) CreateExam(ctx context.Context, e domain.Exam) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO exams (id, title, exam_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Date.UTC(), e.CreatedAt.UTC(), e.UpdatedAt.UTC(),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *examsRepo) DeleteExam(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM exams WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *examsRepo) GetExamStatistics(ctx context.Context, examID string) (domain.ExamStatistics, error) {
	// COUNT(vote) only counts graded rows; AVG ignores NULLs the same way.
	row := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(vote), AVG(vote) FROM assignments WHERE exam_id = ?`,
		examID)

	var (
		stats domain.ExamStatistics
		avg   sql.NullFloat64
	)
	if err := row.Scan(&stats.Participants, &stats.Graded, &avg); err != nil {
		return domain.ExamStatistics{}, err
	}

	stats.Pending = stats.Participants - stats.Graded
	stats.AverageVote = mapNullFloatPtr(avg)
	return stats, nil
}

func scanExam(row rowScanner) (domain.Exam, error) {
	var e domain.Exam
	if err := row.Scan(&e.ID, &e.Title, &e.Date, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return domain.Exam{}, mapNotFound(err)
	}
	return e, nil
}
