package jwtx

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/opencourse/transcripts/pkg/cryptox"
)

const (
	// DefaultNumKeys is how many signing keys an ephemeral manager spins up.
	DefaultNumKeys = 3

	// MaxNumKeys bounds the active signer count. More keys than this buys
	// nothing and bloats the JWKS document.
	MaxNumKeys = 10
)

// KeyManagerOptions configure a KeyManager.
type KeyManagerOptions struct {
	// Issuer stamps and validates the "iss" claim.
	Issuer string

	// Leeway is the clock-skew allowance for verification. Zero means
	// DefaultLeeway.
	Leeway time.Duration

	// NumKeys is how many signers to generate up front (ephemeral mode).
	// Zero means DefaultNumKeys; values above MaxNumKeys are clamped.
	NumKeys int
}

func (o KeyManagerOptions) numKeys() int {
	switch {
	case o.NumKeys <= 0:
		return DefaultNumKeys
	case o.NumKeys > MaxNumKeys:
		return MaxNumKeys
	default:
		return o.NumKeys
	}
}

// KeyManager owns the service's Ed25519 signing keys. Issuance picks one of
// the active signers at random; verification accepts any key still in the
// set, which is how retired keys keep honoring outstanding tokens.
type KeyManager struct {
	mu      sync.RWMutex
	signers map[string]Signer
	kids    []string

	keys *KeySet
	opts KeyManagerOptions
}

// NewKeyManager builds an ephemeral manager with freshly generated keys.
// Tokens signed by it die with the process, which suits dev setups and the
// test suite; production wants NewPersistentKeyManager.
func NewKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	km := &KeyManager{
		signers: make(map[string]Signer),
		keys:    NewKeySet(),
		opts:    opts,
	}

	for range opts.numKeys() {
		signer, err := GenerateSigner()
		if err != nil {
			return nil, err
		}

		if err := km.AddSigner(signer); err != nil {
			return nil, err
		}
	}

	return km, nil
}

// NewEmptyKeyManager builds a manager with no signers. The persistent
// loader populates it from the key store.
func NewEmptyKeyManager(opts KeyManagerOptions) *KeyManager {
	return &KeyManager{
		signers: make(map[string]Signer),
		keys:    NewKeySet(),
		opts:    opts,
	}
}

// GenerateSigner mints a brand-new Ed25519 signer with a random kid.
func GenerateSigner() (Signer, error) {
	kid, err := NewKID()
	if err != nil {
		return nil, err
	}

	pemData, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return nil, fmt.Errorf("jwtx: generate key: %w", err)
	}

	return NewSignerEdDSA(pemData, kid)
}

// NewKID returns a fresh key identifier.
func NewKID() (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", fmt.Errorf("jwtx: generate kid: %w", err)
	}

	return fmt.Sprintf("exams-%s", token), nil
}

// AddSigner registers a signer for issuance and its public key for
// verification.
func (km *KeyManager) AddSigner(s Signer) error {
	jwk, err := s.PublicJWK()
	if err != nil {
		return err
	}

	km.mu.Lock()
	defer km.mu.Unlock()

	if _, exists := km.signers[s.KeyID()]; exists {
		return fmt.Errorf("jwtx: duplicate signer kid %q", s.KeyID())
	}

	if err := km.keys.AddJWK(jwk); err != nil {
		return err
	}

	km.signers[s.KeyID()] = s
	km.kids = append(km.kids, s.KeyID())

	return nil
}

// GetSigner returns one of the active signers, picked at random so load
// and exposure spread across the key set.
func (km *KeyManager) GetSigner() (Signer, error) {
	km.mu.RLock()
	defer km.mu.RUnlock()

	if len(km.kids) == 0 {
		return nil, ErrNoKey
	}

	kid := km.kids[rand.Intn(len(km.kids))]

	return km.signers[kid], nil
}

// RetireSignerByKid stops issuance under kid. The public key stays in the
// verification set so tokens already signed with it remain valid until
// their own expiry; RemoveKey ends that grace.
func (km *KeyManager) RetireSignerByKid(kid string) error {
	km.mu.Lock()
	defer km.mu.Unlock()

	if _, ok := km.signers[kid]; !ok {
		return ErrNoKey
	}

	delete(km.signers, kid)
	for i, k := range km.kids {
		if k == kid {
			km.kids = append(km.kids[:i], km.kids[i+1:]...)
			break
		}
	}

	return nil
}

// RemoveKey drops kid from the verification set entirely.
func (km *KeyManager) RemoveKey(kid string) {
	km.keys.Remove(kid)
}

// Signers snapshots the active signers.
func (km *KeyManager) Signers() []Signer {
	km.mu.RLock()
	defer km.mu.RUnlock()

	out := make([]Signer, 0, len(km.kids))
	for _, kid := range km.kids {
		out = append(out, km.signers[kid])
	}

	return out
}

// NumSigners reports how many signers can currently issue.
func (km *KeyManager) NumSigners() int {
	km.mu.RLock()
	defer km.mu.RUnlock()

	return len(km.signers)
}

// IsReady reports whether the manager can issue tokens.
func (km *KeyManager) IsReady() bool {
	return km.NumSigners() > 0
}

// KeySet exposes the verification keys (JWKS endpoint, verifiers).
func (km *KeyManager) KeySet() *KeySet {
	return km.keys
}

// Verifier returns the standard verifier over this manager's key set.
func (km *KeyManager) Verifier() Verifier {
	return NewCommonEdDSA(km.keys, VerifyOptions{
		Issuer: km.opts.Issuer,
		Leeway: km.opts.Leeway,
	})
}
