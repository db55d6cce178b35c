package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/opencourse/transcripts/internal/exams/domain"
)

func TestExportExamResults(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &ReportService{Store: s}
	assignments := &AssignmentService{Store: s}

	admin := seedUser(t, s, domain.RoleAdmin, "pw")
	supervisor := seedUser(t, s, domain.RoleSupervisor, "pw")
	alice := seedUser(t, s, domain.RoleUser, "pw")
	bob := seedUser(t, s, domain.RoleUser, "pw")
	exam := seedExam(t, s, "Linear Algebra Final 2026")

	_, err := assignments.Register(ctx, actorFor(alice), exam.ID)
	require.NoError(t, err)
	_, err = assignments.Register(ctx, actorFor(bob), exam.ID)
	require.NoError(t, err)
	_, err = assignments.AssignVote(ctx, actorFor(supervisor), alice.ID, exam.ID, 92.5)
	require.NoError(t, err)

	data, filename, err := svc.ExportExamResults(ctx, actorFor(admin), exam.ID)
	require.NoError(t, err)
	require.Equal(t, "linear-algebra-final-2026-results.xlsx", filename)
	require.NotEmpty(t, data)

	// The workbook reads back with one header and one row per seat.
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"Email", "Vote", "Grade", "Registered", "Graded At"}, rows[0])

	byEmail := map[string][]string{}
	for _, row := range rows[1:] {
		require.NotEmpty(t, row)
		byEmail[row[0]] = row
	}

	graded := byEmail[alice.Email]
	require.Equal(t, "92.5", graded[1])
	require.Equal(t, "A", graded[2])

	// A pending grade exports as an empty vote cell, never as a zero.
	pending := byEmail[bob.Email]
	require.Equal(t, "N/A", pending[2])
	if len(pending) > 1 {
		require.Empty(t, pending[1])
	}
}

func TestExportAuthorization(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &ReportService{Store: s}

	supervisor := seedUser(t, s, domain.RoleSupervisor, "pw")
	user := seedUser(t, s, domain.RoleUser, "pw")
	exam := seedExam(t, s, "Export Gate Exam")

	// Exports carry every student's grade, so only admins pull them.
	_, _, err := svc.ExportExamResults(ctx, actorFor(supervisor), exam.ID)
	require.ErrorIs(t, err, ErrForbidden)

	_, _, err = svc.ExportExamResults(ctx, actorFor(user), exam.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestExportUnknownExam(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &ReportService{Store: s}

	admin := seedUser(t, s, domain.RoleAdmin, "pw")

	_, _, err := svc.ExportExamResults(ctx, actorFor(admin), "no-such-exam")
	require.ErrorIs(t, err, ErrExamNotFound)
}

func TestExportFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{"Algorithms Final", "algorithms-final-results.xlsx"},
		{"  Weird!!Title??  ", "weird--title-results.xlsx"},
		{"", "exam-results.xlsx"},
		{"///", "exam-results.xlsx"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, exportFilename(tt.title), "title %q", tt.title)
	}
}
