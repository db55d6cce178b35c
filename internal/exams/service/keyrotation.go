package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/opencourse/transcripts/internal/exams/domain"
	"github.com/opencourse/transcripts/pkg/jwtx"
	"github.com/opencourse/transcripts/pkg/slogx"
)

// KeyRotationService rotates the EdDSA signing keys at runtime.
//
// In ephemeral mode (Persistent == nil) new keys live only in the
// KeyManager and die with the process. In persistent mode they are
// encrypted into the store first, so a restart reloads them and retired
// keys keep verifying through their grace window.
type KeyRotationService struct {
	KeyManager *jwtx.KeyManager           // required in both modes
	Persistent *jwtx.PersistentKeyManager // nil for ephemeral mode
	Grace      time.Duration
}

// RotationResult reports what a rotation did.
type RotationResult struct {
	NewKey      domain.SigningKey
	RetiredKeys []domain.SigningKey
	ActiveKeys  int
}

// Rotate generates a fresh signing key and, when retireExisting is set,
// retires every signer that was active before the call. Retired keys stop
// issuing immediately but keep verifying, so outstanding tokens survive
// the rotation.
func (s *KeyRotationService) Rotate(ctx context.Context, actor domain.Actor, retireExisting bool) (RotationResult, error) {
	l := slogx.FromContext(ctx)

	if err := Authorize(actor, domain.ActionRotateKeys); err != nil {
		return RotationResult{}, err
	}

	grace := s.Grace
	if grace <= 0 {
		grace = jwtx.DefaultRetirementGrace
	}

	// Snapshot the signers that exist now, before the new one joins.
	previous := s.KeyManager.Signers()

	var newSigner jwtx.Signer
	var err error

	if s.Persistent != nil {
		newSigner, err = s.Persistent.GenerateAndStore(ctx)
	} else {
		newSigner, err = jwtx.GenerateSigner()
		if err == nil {
			err = s.KeyManager.AddSigner(newSigner)
		}
	}
	if err != nil {
		return RotationResult{}, fmt.Errorf("failed to generate signing key: %w", err)
	}

	now := time.Now().UTC()
	var retired []domain.SigningKey

	if retireExisting {
		for _, old := range previous {
			kid := old.KeyID()

			if s.Persistent != nil {
				err = s.Persistent.Retire(ctx, kid, grace)
			} else {
				err = s.KeyManager.RetireSignerByKid(kid)
			}
			if err != nil {
				return RotationResult{}, fmt.Errorf("failed to retire key %s: %w", kid, err)
			}

			retiredAt := now
			retired = append(retired, domain.SigningKey{
				Kid:       kid,
				Algorithm: jwtx.AlgorithmEdDSA,
				RetiredAt: &retiredAt,
			})
		}
	}

	l.Info("signing key rotated",
		slog.String("new_kid", newSigner.KeyID()),
		slog.Int("retired", len(retired)),
		slog.String("rotated_by", actor.UserID),
	)

	return RotationResult{
		NewKey: domain.SigningKey{
			Kid:       newSigner.KeyID(),
			Algorithm: jwtx.AlgorithmEdDSA,
			CreatedAt: now,
		},
		RetiredKeys: retired,
		ActiveKeys:  s.KeyManager.NumSigners(),
	}, nil
}
