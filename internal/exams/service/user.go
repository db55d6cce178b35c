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
	// ErrEmailTaken is returned when an account already exists under the
	// normalized email.
	ErrEmailTaken = errors.New("email_taken")

	// ErrInvalidRole rejects user creation with a role outside the fixed
	// set. Roles are an enum, not a table.
	ErrInvalidRole = errors.New("invalid_role")
)

// UserService covers account administration and the self-describing "me"
// lookup.
type UserService struct {
	Store store.Store
}

// Me returns the caller's account record together with the action names
// its role grants. Any authenticated caller may ask about themselves, so
// there is no gate.
func (s *UserService) Me(ctx context.Context, actor domain.Actor) (domain.User, []string, error) {
	user, err := s.Store.Users().GetUserByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// The account vanished while its token was still live.
			return domain.User{}, nil, ErrNotFound
		}
		return domain.User{}, nil, err
	}

	return user, domain.Permissions(actor.Role), nil
}

// List returns accounts scoped to what the caller is allowed to see:
// admins get everyone, supervisors only the users they grade.
func (s *UserService) List(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	if err := Authorize(actor, domain.ActionListUsers); err != nil {
		return nil, err
	}

	if actor.Role == domain.RoleSupervisor {
		return s.Store.Users().ListUsersByRole(ctx, domain.RoleUser)
	}

	return s.Store.Users().ListUsers(ctx)
}

// Create provisions an account. When password is empty a random one is
// generated and returned so the admin can hand it over out of band; it is
// never stored or logged in the clear either way.
func (s *UserService) Create(ctx context.Context, actor domain.Actor, email, password string, role domain.Role) (domain.User, string, error) {
	l := slogx.FromContext(ctx)

	if err := Authorize(actor, domain.ActionCreateUser); err != nil {
		return domain.User{}, "", err
	}

	if !role.Valid() {
		return domain.User{}, "", ErrInvalidRole
	}

	generated := ""
	if password == "" {
		var err error
		password, err = cryptox.GeneratePassword()
		if err != nil {
			return domain.User{}, "", err
		}
		generated = password
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, "", err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        domain.NormalizeEmail(email),
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, "", ErrEmailTaken
		}
		return domain.User{}, "", err
	}

	l.Info("account created",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
		slog.String("created_by", actor.UserID),
	)

	return user, generated, nil
}

// ResetMFA clears a user's second factor so they can log in with just the
// password and re-enroll. This is the recovery path for a lost
// authenticator; there are no backup codes.
func (s *UserService) ResetMFA(ctx context.Context, actor domain.Actor, userID string) error {
	l := slogx.FromContext(ctx)

	if err := Authorize(actor, domain.ActionResetMFA); err != nil {
		return err
	}

	if err := s.Store.Users().DisableMFA(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	l.Info("mfa reset",
		slog.String("user_id", userID),
		slog.String("reset_by", actor.UserID),
	)

	return nil
}
