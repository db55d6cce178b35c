package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/opencourse/transcripts/internal/exams/domain"
	"github.com/opencourse/transcripts/internal/exams/store/drivers/sqlite"
	"github.com/opencourse/transcripts/pkg/cryptox"
	"github.com/opencourse/transcripts/pkg/idx"
	"github.com/opencourse/transcripts/pkg/jwtx"
)

func TestMain(m *testing.M) {
	// Password hashing needs a pepper file; point it at a throwaway one.
	tmpDir := os.TempDir()
	pepperPath := filepath.Join(tmpDir, "transcripts-service-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "service_test.db")
	s, err := sqlite.NewStore("file:" + dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())

	return s
}

func newKeyManager(t *testing.T) *jwtx.KeyManager {
	t.Helper()

	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{
		Issuer:  "test-issuer",
		NumKeys: 1,
	})
	require.NoError(t, err)

	return km
}

func newTokenService(t *testing.T) *TokenService {
	t.Helper()

	return &TokenService{
		KeyManager: newKeyManager(t),
		Issuer:     "test-issuer",
		AccessTTL:  time.Minute,
	}
}

// seedUser creates an account with a real password hash so login flows can
// be exercised end to end.
func seedUser(t *testing.T, s *sqlite.Store, role domain.Role, password string) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        domain.NormalizeEmail(fmt.Sprintf("%s@example.com", idx.New().String())),
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), user))

	return user
}

func seedExam(t *testing.T, s *sqlite.Store, title string) domain.Exam {
	t.Helper()

	now := time.Now().UTC()
	exam := domain.Exam{
		ID:        idx.New().String(),
		Title:     title,
		Date:      now.AddDate(0, 1, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.Exams().CreateExam(context.Background(), exam))

	return exam
}

func actorFor(user domain.User) domain.Actor {
	return domain.Actor{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
	}
}
