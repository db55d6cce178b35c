package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/opencourse/transcripts/internal/exams/domain"
	"github.com/opencourse/transcripts/internal/exams/store"
	"github.com/opencourse/transcripts/pkg/slogx"
)

var (
	ErrInvalidTOTPCode   = errors.New("invalid TOTP code")
	ErrMFANotEnrolled    = errors.New("MFA not enrolled")
	ErrMFAAlreadyEnabled = errors.New("MFA already enabled for this user")
)

// MFAService handles TOTP enrollment for the calling account. Enrollment is
// two-step: Enroll stores a secret, Activate proves the authenticator works
// before the login flow starts demanding codes.
type MFAService struct {
	Store  store.Store
	Issuer string // issuer label shown in authenticator apps
}

// Enroll generates a TOTP secret for the caller and returns it with the
// otpauth provisioning URL. MFA is not live yet; a valid code must be
// submitted to Activate first, so a mis-scanned QR never locks anyone out.
func (s *MFAService) Enroll(ctx context.Context, actor domain.Actor) (domain.MFAEnrollment, error) {
	user, err := s.Store.Users().GetUserByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.MFAEnrollment{}, ErrNotFound
		}
		return domain.MFAEnrollment{}, err
	}

	if user.HasMFA() {
		return domain.MFAEnrollment{}, ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: user.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return domain.MFAEnrollment{}, fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	if err := s.Store.Users().UpdateMFASecret(ctx, user.ID, key.Secret()); err != nil {
		return domain.MFAEnrollment{}, fmt.Errorf("failed to store MFA secret: %w", err)
	}

	return domain.MFAEnrollment{
		Secret:     key.Secret(),
		OTPAuthURL: key.URL(),
		Issuer:     s.Issuer,
		Account:    user.Email,
	}, nil
}

// Activate verifies a TOTP code against the enrolled secret and switches
// MFA on for the account. From the next login on, the password alone only
// gets a challenge.
func (s *MFAService) Activate(ctx context.Context, actor domain.Actor, code string) error {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if user.MFASecret == nil || *user.MFASecret == "" {
		return ErrMFANotEnrolled
	}
	if user.HasMFA() {
		return ErrMFAAlreadyEnabled
	}

	if !totp.Validate(code, *user.MFASecret) {
		return ErrInvalidTOTPCode
	}

	if err := s.Store.Users().EnableMFA(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to enable MFA: %w", err)
	}

	l.Info("mfa activated", slog.String("user_id", user.ID))

	return nil
}
