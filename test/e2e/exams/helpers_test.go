package exams_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/opencourse/transcripts/pkg/examsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for exams service end-to-end tests.
 * This includes container setup, seeding operations, and assertions.
 */

const (
	testImageName = "opencourse-exams-test:latest"

	bootstrapToken     = "test-bootstrap-token-12345"
	adminEmail         = "admin@example.com"
	adminPassword      = "Admin123!pass"
	supervisorEmail    = "supervisor@example.com"
	supervisorPassword = "Supervisor123!pass"
	studentEmail       = "student@example.com"
	studentPassword    = "Student123!pass"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Exams Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Exams Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image if it doesn't exist.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/exams/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupExamsContainer starts the exams service in a container and returns
// the base URL. Rate limits are raised well above production defaults so
// rapid test requests don't trip them; rate limiting itself is tested via
// setupExamsContainerWithDefaultRateLimits.
func setupExamsContainer(t *testing.T, extraEnv ...map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"BOOTSTRAP_TOKEN":     bootstrapToken,
		"EXAMS_DATABASE_FILE": "/tmp/exams.db",
		"EXAMS_PEPPER_FILE":   "/tmp/pepper",
		"EXAMS_ISSUER":        "opencourse-exams",
		"EXAMS_NUM_KEYS":      "1", // Start with 1 key for simpler testing
		"ENV":                 "test",
		"LOG_LEVEL":           "info",
		"LOG_FORMAT":          "json",

		// Raised limits so tests can make many rapid requests.
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
	}
	for _, extra := range extraEnv {
		for k, v := range extra {
			env[k] = v
		}
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// setupExamsContainerWithDefaultRateLimits starts the exams service with
// PRODUCTION rate limits. Only the rate limiting tests should use this.
func setupExamsContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"BOOTSTRAP_TOKEN":     bootstrapToken,
			"EXAMS_DATABASE_FILE": "/tmp/exams.db",
			"EXAMS_PEPPER_FILE":   "/tmp/pepper",
			"EXAMS_ISSUER":        "opencourse-exams",
			"EXAMS_NUM_KEYS":      "1",
			"ENV":                 "test",
			"LOG_LEVEL":           "info",
			"LOG_FORMAT":          "json",
			// NOTE: no rate limit overrides - production defaults apply.
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// bootstrapService seeds the first admin and supervisor accounts.
func bootstrapService(t *testing.T, client *examsdk.SDKClient) *examsdk.BootstrapResponse {
	t.Helper()

	resp, err := client.Bootstrap(t.Context(), bootstrapToken, examsdk.BootstrapRequest{
		AdminEmail:         adminEmail,
		AdminPassword:      adminPassword,
		SupervisorEmail:    supervisorEmail,
		SupervisorPassword: supervisorPassword,
	})
	require.NoError(t, err, "Bootstrap should succeed")
	require.NotEmpty(t, resp.AdminUserID, "Admin user ID should not be empty")
	require.NotEmpty(t, resp.SupervisorUserID, "Supervisor user ID should not be empty")

	return resp
}

// login authenticates an account and fails the test on any error.
func login(t *testing.T, client *examsdk.SDKClient, email, password string) *examsdk.Session {
	t.Helper()

	session, err := client.Login(t.Context(), email, password)
	require.NoError(t, err, "Login should succeed for %s", email)
	require.NotNil(t, session)

	return session
}

// createStudent provisions a regular user account through the admin API and
// returns its ID.
func createStudent(t *testing.T, admin *examsdk.Session, email, password string) string {
	t.Helper()

	created, err := admin.CreateUser(t.Context(), examsdk.CreateUserRequest{
		Email:    email,
		Password: password,
		Role:     "user",
	})
	require.NoError(t, err, "Creating a user account should succeed")
	require.Equal(t, "user", created.User.Role)

	return created.User.ID
}

// createExam adds an exam to the catalog through the admin API.
func createExam(t *testing.T, admin *examsdk.Session, title string) *examsdk.ExamInfo {
	t.Helper()

	exam, err := admin.CreateExam(t.Context(), examsdk.CreateExamRequest{
		Title: title,
		Date:  time.Now().Add(14 * 24 * time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err, "Creating an exam should succeed")
	require.NotEmpty(t, exam.ID)

	return exam
}

// seededService bootstraps a fresh container and returns sessions for all
// three roles plus the student's user ID.
func seededService(t *testing.T, client *examsdk.SDKClient) (admin, supervisor, student *examsdk.Session, studentID string) {
	t.Helper()

	bootstrapService(t, client)
	admin = login(t, client, adminEmail, adminPassword)
	supervisor = login(t, client, supervisorEmail, supervisorPassword)
	studentID = createStudent(t, admin, studentEmail, studentPassword)
	student = login(t, client, studentEmail, studentPassword)

	return admin, supervisor, student, studentID
}

// requireAPIErrorCode asserts that err is an APIError carrying the given
// machine-readable code.
func requireAPIErrorCode(t *testing.T, err error, code string, msgAndArgs ...any) *examsdk.APIError {
	t.Helper()

	require.Error(t, err, msgAndArgs...)

	var apiErr *examsdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected an APIError, got: %v", err)
	require.Equal(t, code, apiErr.Code, msgAndArgs...)

	return apiErr
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *examsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
