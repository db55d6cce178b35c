package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/opencourse/transcripts/internal/exams/domain"
	"github.com/opencourse/transcripts/internal/exams/service"
	"github.com/opencourse/transcripts/internal/exams/store/drivers/sqlite"
	"github.com/opencourse/transcripts/pkg/examsdk"
	"github.com/opencourse/transcripts/pkg/httpx"
	"github.com/opencourse/transcripts/pkg/idx"
	"github.com/opencourse/transcripts/pkg/jwtx"
)

type assignmentsFixture struct {
	handler    *AssignmentsHandler
	store      *sqlite.Store
	supervisor domain.User
	target     domain.User
	exam       domain.Exam
}

// newAssignmentsFixture seeds a registered-but-ungraded assignment so the
// vote handler can be driven directly, bypassing the token middleware by
// injecting claims into the request context the way it would.
func newAssignmentsFixture(t *testing.T) *assignmentsFixture {
	t.Helper()

	ctx := context.Background()

	s, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "http_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	now := time.Now().UTC()
	supervisor := domain.User{
		ID:           idx.New().String(),
		Email:        "supervisor@opencourse.example",
		PasswordHash: "unused",
		Role:         domain.RoleSupervisor,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	target := domain.User{
		ID:           idx.New().String(),
		Email:        "student@opencourse.example",
		PasswordHash: "unused",
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().CreateUser(ctx, supervisor))
	require.NoError(t, s.Users().CreateUser(ctx, target))

	exam := domain.Exam{
		ID:        idx.New().String(),
		Title:     "Compilers Final",
		Date:      now.AddDate(0, 1, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.Exams().CreateExam(ctx, exam))
	require.NoError(t, s.Assignments().CreateAssignment(ctx, domain.Assignment{
		UserID:    target.ID,
		ExamID:    exam.ID,
		CreatedAt: now,
	}))

	return &assignmentsFixture{
		handler:    &AssignmentsHandler{AssignmentService: &service.AssignmentService{Store: s}},
		store:      s,
		supervisor: supervisor,
		target:     target,
		exam:       exam,
	}
}

func (f *assignmentsFixture) voteRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/v1/exams/"+f.exam.ID+"/vote", strings.NewReader(body))
	req.SetPathValue("exam_id", f.exam.ID)

	claims := jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: f.supervisor.ID},
		Role:             string(f.supervisor.Role),
		Email:            f.supervisor.Email,
	}
	return req.WithContext(context.WithValue(req.Context(), httpx.CtxKeyClaims, claims))
}

func TestHandleAssignVoteMissingVote(t *testing.T) {
	f := newAssignmentsFixture(t)

	// A body with no vote field must be rejected, not treated as vote 0.
	rec := httptest.NewRecorder()
	f.handler.HandleAssignVote(rec, f.voteRequest(`{"user_id":"`+f.target.ID+`"}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp examsdk.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, examsdk.ErrorCodeValidationError, resp.Code)
	require.Contains(t, resp.Details, "vote")

	// The assignment must still be ungraded and gradeable later.
	assignment, err := f.store.Assignments().GetAssignment(context.Background(), f.target.ID, f.exam.ID)
	require.NoError(t, err)
	require.False(t, assignment.Graded())
}

func TestHandleAssignVoteExplicitZero(t *testing.T) {
	f := newAssignmentsFixture(t)

	// An explicit 0 is a legitimate (failing) grade and must go through.
	rec := httptest.NewRecorder()
	f.handler.HandleAssignVote(rec, f.voteRequest(`{"user_id":"`+f.target.ID+`","vote":0}`))

	require.Equal(t, http.StatusOK, rec.Code)

	var info examsdk.AssignmentInfo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&info))
	require.NotNil(t, info.Vote)
	require.Equal(t, 0.0, *info.Vote)

	assignment, err := f.store.Assignments().GetAssignment(context.Background(), f.target.ID, f.exam.ID)
	require.NoError(t, err)
	require.True(t, assignment.Graded())
}
