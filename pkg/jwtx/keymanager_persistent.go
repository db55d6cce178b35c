package jwtx

import (
	"context"
	"fmt"
	"time"

	"github.com/opencourse/transcripts/pkg/cryptox"
	"github.com/opencourse/transcripts/pkg/idx"
)

// AlgorithmEdDSA is the only algorithm persisted key records may carry.
const AlgorithmEdDSA = "EdDSA"

// DefaultRetirementGrace is how long a retired key keeps verifying
// outstanding tokens. Must exceed the access-token TTL or rotation would
// strand live sessions.
const DefaultRetirementGrace = time.Hour

// SigningKeyRecord is the persisted, encrypted form of a signing key.
type SigningKeyRecord struct {
	ID                  string
	Kid                 string
	Algorithm           string
	PrivateKeyEncrypted []byte
	CreatedAt           time.Time
	RetiredAt           *time.Time
	ExpiresAt           *time.Time
}

// Active reports whether the record may still sign new tokens.
func (r SigningKeyRecord) Active() bool {
	return r.RetiredAt == nil
}

// Verifiable reports whether tokens signed under this record should still
// be accepted at the given instant.
func (r SigningKeyRecord) Verifiable(now time.Time) bool {
	if r.RetiredAt == nil {
		return true
	}

	return r.ExpiresAt != nil && now.Before(*r.ExpiresAt)
}

// KeyStore is the persistence port for signing keys. The sqlite store
// implements it.
type KeyStore interface {
	// ListSigningKeys returns every record, retired ones included.
	ListSigningKeys(ctx context.Context) ([]SigningKeyRecord, error)

	// CreateSigningKey persists a new record.
	CreateSigningKey(ctx context.Context, rec SigningKeyRecord) error

	// RetireSigningKey marks kid retired with a verification deadline.
	RetireSigningKey(ctx context.Context, kid string, retiredAt, expiresAt time.Time) error

	// DeleteExpiredSigningKeys removes records whose verification deadline
	// has passed and returns their kids.
	DeleteExpiredSigningKeys(ctx context.Context, now time.Time) ([]string, error)
}

// PersistentKeyManager is a KeyManager whose keys survive restarts. Private
// keys are encrypted with the master key (cryptox) before they touch the
// store.
type PersistentKeyManager struct {
	*KeyManager

	store KeyStore
}

// NewPersistentKeyManager loads signing keys from the store, honors
// retired-key grace windows and tops the active set up to the configured
// count, persisting any keys it has to mint.
func NewPersistentKeyManager(ctx context.Context, store KeyStore, opts KeyManagerOptions) (*PersistentKeyManager, error) {
	pm := &PersistentKeyManager{
		KeyManager: NewEmptyKeyManager(opts),
		store:      store,
	}

	recs, err := store.ListSigningKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("jwtx: load signing keys: %w", err)
	}

	now := time.Now().UTC()
	for _, rec := range recs {
		if rec.Algorithm != AlgorithmEdDSA {
			return nil, fmt.Errorf("jwtx: key %s uses %q: %w", rec.Kid, rec.Algorithm, ErrAlgMismatch)
		}

		if !rec.Verifiable(now) {
			continue // housekeeping will delete it
		}

		signer, err := pm.decryptSigner(rec)
		if err != nil {
			return nil, fmt.Errorf("jwtx: restore key %s: %w", rec.Kid, err)
		}

		if rec.Active() {
			if err := pm.AddSigner(signer); err != nil {
				return nil, err
			}

			continue
		}

		// Retired but inside its grace window: verification only.
		jwk, err := signer.PublicJWK()
		if err != nil {
			return nil, err
		}

		if err := pm.keys.AddJWK(jwk); err != nil {
			return nil, err
		}
	}

	for pm.NumSigners() < opts.numKeys() {
		if _, err := pm.GenerateAndStore(ctx); err != nil {
			return nil, err
		}
	}

	return pm, nil
}

// GenerateAndStore mints a new signing key, persists it encrypted and
// activates it for issuance.
func (pm *PersistentKeyManager) GenerateAndStore(ctx context.Context) (Signer, error) {
	kid, err := NewKID()
	if err != nil {
		return nil, err
	}

	pemData, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return nil, fmt.Errorf("jwtx: generate key: %w", err)
	}

	encrypted, err := cryptox.EncryptPrivateKey(pemData)
	if err != nil {
		return nil, fmt.Errorf("jwtx: encrypt key: %w", err)
	}

	rec := SigningKeyRecord{
		ID:                  idx.New().String(),
		Kid:                 kid,
		Algorithm:           AlgorithmEdDSA,
		PrivateKeyEncrypted: encrypted,
		CreatedAt:           time.Now().UTC(),
	}

	if err := pm.store.CreateSigningKey(ctx, rec); err != nil {
		return nil, fmt.Errorf("jwtx: persist key: %w", err)
	}

	signer, err := NewSignerEdDSA(pemData, kid)
	if err != nil {
		return nil, err
	}

	if err := pm.AddSigner(signer); err != nil {
		return nil, err
	}

	return signer, nil
}

// Retire stops issuance under kid. Tokens already signed with it verify
// for another grace period, then SweepExpired finishes the job.
func (pm *PersistentKeyManager) Retire(ctx context.Context, kid string, grace time.Duration) error {
	if grace <= 0 {
		grace = DefaultRetirementGrace
	}

	now := time.Now().UTC()
	if err := pm.store.RetireSigningKey(ctx, kid, now, now.Add(grace)); err != nil {
		return fmt.Errorf("jwtx: retire key %s: %w", kid, err)
	}

	return pm.RetireSignerByKid(kid)
}

// SweepExpired deletes keys whose grace window has closed and drops them
// from the verification set. Returns how many were removed.
func (pm *PersistentKeyManager) SweepExpired(ctx context.Context) (int, error) {
	kids, err := pm.store.DeleteExpiredSigningKeys(ctx, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("jwtx: sweep signing keys: %w", err)
	}

	for _, kid := range kids {
		pm.RemoveKey(kid)
	}

	return len(kids), nil
}

func (pm *PersistentKeyManager) decryptSigner(rec SigningKeyRecord) (Signer, error) {
	pemData, err := cryptox.DecryptPrivateKey(rec.PrivateKeyEncrypted)
	if err != nil {
		return nil, err
	}

	return NewSignerEdDSA(pemData, rec.Kid)
}
