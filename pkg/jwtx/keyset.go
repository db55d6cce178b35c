package jwtx

import (
	"crypto/ed25519"
	"errors"
	"sort"
	"sync"
)

// ErrNoKey indicates the key set has no entry for the requested kid.
var ErrNoKey = errors.New("jwtx: no key for kid")

// KeySet is a concurrency-safe map from kid to Ed25519 public key. The
// token service registers every active signer's public half here; the
// verifier and the JWKS endpoint read from it.
type KeySet struct {
	mu   sync.RWMutex
	keys map[string]ed25519.PublicKey
}

// NewKeySet returns an empty key set.
func NewKeySet() *KeySet {
	return &KeySet{keys: make(map[string]ed25519.PublicKey)}
}

// Add registers or replaces the key under kid.
func (ks *KeySet) Add(kid string, key ed25519.PublicKey) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	ks.keys[kid] = key
}

// AddJWK registers the key described by a JWK document.
func (ks *KeySet) AddJWK(jwk JWK) error {
	pub, err := jwk.PublicKey()
	if err != nil {
		return err
	}

	ks.Add(jwk.Kid, pub)

	return nil
}

// Remove drops the key under kid, if present.
func (ks *KeySet) Remove(kid string) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	delete(ks.keys, kid)
}

// Get resolves kid to its public key.
func (ks *KeySet) Get(kid string) (ed25519.PublicKey, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	key, ok := ks.keys[kid]
	if !ok {
		return nil, ErrNoKey
	}

	return key, nil
}

// Len reports how many keys are registered.
func (ks *KeySet) Len() int {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	return len(ks.keys)
}

// JWKS renders every registered key as a JWKS document. Includes retired
// keys still inside their verification grace window, which is exactly what
// token consumers need.
func (ks *KeySet) JWKS() JWKS {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	doc := JWKS{Keys: make([]JWK, 0, len(ks.keys))}
	for kid, pub := range ks.keys {
		doc.Keys = append(doc.Keys, NewEd25519JWK(pub, kid))
	}

	sort.Slice(doc.Keys, func(i, j int) bool { return doc.Keys[i].Kid < doc.Keys[j].Kid })

	return doc
}
