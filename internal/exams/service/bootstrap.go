package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/opencourse/transcripts/internal/exams/domain"
	"github.com/opencourse/transcripts/internal/exams/store"
	"github.com/opencourse/transcripts/pkg/cryptox"
	"github.com/opencourse/transcripts/pkg/idx"
	"github.com/opencourse/transcripts/pkg/slogx"
)

var (
	ErrBootstrapAlready             = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized        = errors.New("unauthorized bootstrap attempt")
	ErrBootstrapFailedToCreateAdmin = errors.New("failed to create admin user")
)

// BootstrapService seeds the very first accounts. It only ever works once:
// as soon as any user exists the endpoint is dead, so a deployed system
// cannot be re-seeded even with the right token.
type BootstrapService struct {
	Store store.Store
	Token string // pre-configured bootstrap token
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap creates the first admin account and, when the request names
// one, a first supervisor. Returns the new account ids.
func (s *BootstrapService) Bootstrap(
	ctx context.Context,
	token string,
	req domain.BootstrapData,
) (string, string, error) {
	l := slogx.FromContext(ctx)

	// 1. Check if already bootstrapped
	if bootstrapped, _ := s.IsBootstrapped(ctx); bootstrapped {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return "", "", ErrBootstrapAlready
	}

	// 2. Validate provided token. An empty configured token means
	// bootstrap is disabled outright.
	if s.Token == "" || token != s.Token {
		l.Warn("unauthorized bootstrap attempt", slog.String("provided_token", token))
		return "", "", ErrBootstrapUnauthorized
	}

	// 3. Hash passwords up front so the transaction below stays short.
	adminHash, err := cryptox.HashPassword(req.AdminPassword)
	if err != nil {
		l.Error("failed to hash admin password", slog.Any("error", err))
		return "", "", ErrBootstrapFailedToCreateAdmin
	}

	supervisorHash := ""
	if req.SupervisorEmail != "" {
		supervisorHash, err = cryptox.HashPassword(req.SupervisorPassword)
		if err != nil {
			l.Error("failed to hash supervisor password", slog.Any("error", err))
			return "", "", errors.New("failed to create supervisor user")
		}
	}

	// 4. Create the accounts in a transaction so a half-seeded system
	// cannot exist.
	now := time.Now().UTC()
	adminID := idx.New().String()
	supervisorID := ""

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		err := tx.Users().CreateUser(ctx, domain.User{
			ID:           adminID,
			Email:        domain.NormalizeEmail(req.AdminEmail),
			PasswordHash: adminHash,
			Role:         domain.RoleAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			l.Error("failed to create admin user",
				slog.String("admin_user_id", adminID),
				slog.Any("error", err),
			)
			return ErrBootstrapFailedToCreateAdmin
		}

		if req.SupervisorEmail == "" {
			return nil
		}

		supervisorID = idx.New().String()
		err = tx.Users().CreateUser(ctx, domain.User{
			ID:           supervisorID,
			Email:        domain.NormalizeEmail(req.SupervisorEmail),
			PasswordHash: supervisorHash,
			Role:         domain.RoleSupervisor,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			l.Error("failed to create supervisor user",
				slog.String("supervisor_user_id", supervisorID),
				slog.Any("error", err),
			)
			return errors.New("failed to create supervisor user")
		}

		return nil
	})
	if err != nil {
		return "", "", err
	}

	l.Info("successfully bootstrapped system",
		slog.String("admin_user_id", adminID),
		slog.String("supervisor_user_id", supervisorID),
	)

	return adminID, supervisorID, nil
}
