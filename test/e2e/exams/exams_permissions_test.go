package exams_test

import (
	"testing"
	"time"

	"github.com/opencourse/transcripts/pkg/examsdk"
	"github.com/stretchr/testify/require"
)

// TestRoleBoundaries exercises the capability table over the HTTP surface:
// every role is bounced off the actions the other roles own.
func TestRoleBoundaries(t *testing.T) {
	baseURL, cleanup := setupExamsContainer(t)
	defer cleanup()

	client := examsdk.NewSDKClient(baseURL)
	admin, supervisor, student, studentID := seededService(t, client)

	exam := createExam(t, admin, "Role Boundary Exam")
	_, err := student.RegisterForExam(t.Context(), exam.ID)
	require.NoError(t, err)

	t.Run("AdminCannotAssignVote", func(t *testing.T) {
		// Grading belongs to supervisors alone; admin authority does not
		// extend to it.
		_, err := admin.AssignVote(t.Context(), exam.ID, studentID, 80)
		requireAPIErrorCode(t, err, examsdk.ErrorCodeForbidden)
	})

	t.Run("AdminCannotRegister", func(t *testing.T) {
		_, err := admin.RegisterForExam(t.Context(), exam.ID)
		requireAPIErrorCode(t, err, examsdk.ErrorCodeForbidden)
	})

	t.Run("AdminHasNoPersonalResults", func(t *testing.T) {
		_, err := admin.MyExams(t.Context())
		requireAPIErrorCode(t, err, examsdk.ErrorCodeForbidden)
	})

	t.Run("SupervisorCannotCreateExam", func(t *testing.T) {
		_, err := supervisor.CreateExam(t.Context(), examsdk.CreateExamRequest{
			Title: "Supervisor Smuggled Exam",
			Date:  time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		})
		requireAPIErrorCode(t, err, examsdk.ErrorCodeForbidden)
	})

	t.Run("SupervisorCannotRegister", func(t *testing.T) {
		_, err := supervisor.RegisterForExam(t.Context(), exam.ID)
		requireAPIErrorCode(t, err, examsdk.ErrorCodeForbidden)
	})

	t.Run("SupervisorCannotCreateUsers", func(t *testing.T) {
		_, err := supervisor.CreateUser(t.Context(), examsdk.CreateUserRequest{
			Email: "smuggled@example.com",
			Role:  "user",
		})
		requireAPIErrorCode(t, err, examsdk.ErrorCodeForbidden)
	})

	t.Run("UserCannotCreateExam", func(t *testing.T) {
		_, err := student.CreateExam(t.Context(), examsdk.CreateExamRequest{
			Title: "Student Smuggled Exam",
			Date:  time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		})
		requireAPIErrorCode(t, err, examsdk.ErrorCodeForbidden)
	})

	t.Run("UserCannotAssignVote", func(t *testing.T) {
		_, err := student.AssignVote(t.Context(), exam.ID, studentID, 100)
		requireAPIErrorCode(t, err, examsdk.ErrorCodeForbidden)
	})

	t.Run("UserCannotListUngraded", func(t *testing.T) {
		_, err := student.UngradedAssignments(t.Context())
		requireAPIErrorCode(t, err, examsdk.ErrorCodeForbidden)
	})

	t.Run("UserCannotListUsers", func(t *testing.T) {
		_, err := student.ListUsers(t.Context())
		requireAPIErrorCode(t, err, examsdk.ErrorCodeForbidden)
	})

	t.Run("UserCannotRotateKeys", func(t *testing.T) {
		_, err := student.RotateKeys(t.Context(), examsdk.RotateKeyRequest{})
		requireAPIErrorCode(t, err, examsdk.ErrorCodeForbidden)
	})

	t.Run("UserCannotExportResults", func(t *testing.T) {
		_, err := student.ExportExamResults(t.Context(), exam.ID)
		requireAPIErrorCode(t, err, examsdk.ErrorCodeForbidden)
	})

	t.Run("AuthorizationBeforeExistence", func(t *testing.T) {
		// A student probing an unknown exam id through a supervisor-only
		// action learns nothing about whether it exists.
		_, err := student.AssignVote(t.Context(), "01NONEXISTENTEXAM000000000", studentID, 50)
		requireAPIErrorCode(t, err, examsdk.ErrorCodeForbidden,
			"Forbidden must win over not-found for unauthorized callers")
	})

	t.Run("SupervisorListsOnlyStudents", func(t *testing.T) {
		users, err := supervisor.ListUsers(t.Context())
		require.NoError(t, err)
		require.NotEmpty(t, users.Users)
		for _, u := range users.Users {
			require.Equal(t, "user", u.Role,
				"Supervisors only see accounts they can grade")
		}

		all, err := admin.ListUsers(t.Context())
		require.NoError(t, err)
		require.Greater(t, len(all.Users), len(users.Users),
			"Admins see every account")
	})
}

// TestExpiredTokenRejectedEverywhere runs the service with a one-second
// token lifetime and checks that a dead token fails with token_expired on a
// protected action instead of being processed.
func TestExpiredTokenRejectedEverywhere(t *testing.T) {
	baseURL, cleanup := setupExamsContainer(t, map[string]string{
		"EXAMS_ACCESS_TOKEN_TTL": "1s",
	})
	defer cleanup()

	client := examsdk.NewSDKClient(baseURL)
	bootstrapService(t, client)

	session := login(t, client, adminEmail, adminPassword)
	token := session.AccessToken()

	// Wait out the 1s lifetime plus the 5s verification leeway.
	time.Sleep(8 * time.Second)

	// Pin the expired token so the SDK doesn't try to refresh it away.
	stale := client.NewSessionFromToken(token, 3600, nil)

	_, err := stale.Me(t.Context())
	requireAPIErrorCode(t, err, examsdk.ErrorCodeTokenExpired)

	_, err = stale.CreateExam(t.Context(), examsdk.CreateExamRequest{
		Title: "Exam From Beyond Expiry",
		Date:  time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	requireAPIErrorCode(t, err, examsdk.ErrorCodeTokenExpired,
		"Expired tokens must die before any processing")

	// Refresh has no grace window either.
	err = stale.Refresh(t.Context())
	requireAPIErrorCode(t, err, examsdk.ErrorCodeTokenExpired,
		"Refresh requires a still-valid token")
}
