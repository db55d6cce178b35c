package store

import (
	"context"
	"time"

	"github.com/opencourse/transcripts/internal/exams/domain"
	"github.com/opencourse/transcripts/pkg/jwtx"
)

// KeyStoreAdapter adapts a Store to the jwtx.KeyStore interface so the jwtx
// package can persist keys without depending on the domain package.
type KeyStoreAdapter struct {
	store Store
}

// NewKeyStoreAdapter creates an adapter implementing jwtx.KeyStore over a Store.
func NewKeyStoreAdapter(store Store) *KeyStoreAdapter {
	return &KeyStoreAdapter{store: store}
}

// ListSigningKeys returns every stored key, retired included, so the key
// manager can keep verifying tokens through the rotation grace period.
func (a *KeyStoreAdapter) ListSigningKeys(ctx context.Context) ([]jwtx.SigningKeyRecord, error) {
	keys, err := a.store.SigningKeys().ListSigningKeys(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]jwtx.SigningKeyRecord, len(keys))
	for i, key := range keys {
		records[i] = domainKeyToRecord(key)
	}
	return records, nil
}

// CreateSigningKey stores a freshly generated key.
func (a *KeyStoreAdapter) CreateSigningKey(ctx context.Context, rec jwtx.SigningKeyRecord) error {
	return a.store.SigningKeys().CreateSigningKey(ctx, recordToDomainKey(rec))
}

// RetireSigningKey marks a key retired and schedules its hard deletion.
func (a *KeyStoreAdapter) RetireSigningKey(ctx context.Context, kid string, retiredAt, expiresAt time.Time) error {
	return a.store.SigningKeys().RetireSigningKey(ctx, kid, retiredAt, expiresAt)
}

// DeleteExpiredSigningKeys removes keys past expiry and reports their kids.
func (a *KeyStoreAdapter) DeleteExpiredSigningKeys(ctx context.Context, now time.Time) ([]string, error) {
	return a.store.SigningKeys().DeleteExpiredSigningKeys(ctx, now)
}

func domainKeyToRecord(key domain.SigningKey) jwtx.SigningKeyRecord {
	return jwtx.SigningKeyRecord{
		ID:                  key.ID,
		Kid:                 key.Kid,
		Algorithm:           key.Algorithm,
		PrivateKeyEncrypted: key.PrivateKeyEncrypted,
		CreatedAt:           key.CreatedAt,
		RetiredAt:           key.RetiredAt,
		ExpiresAt:           key.ExpiresAt,
	}
}

func recordToDomainKey(rec jwtx.SigningKeyRecord) domain.SigningKey {
	return domain.SigningKey{
		ID:                  rec.ID,
		Kid:                 rec.Kid,
		Algorithm:           rec.Algorithm,
		PrivateKeyEncrypted: rec.PrivateKeyEncrypted,
		CreatedAt:           rec.CreatedAt,
		RetiredAt:           rec.RetiredAt,
		ExpiresAt:           rec.ExpiresAt,
	}
}
