package jwtx

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// EdDSASigner signs tokens with an Ed25519 private key.
type EdDSASigner struct {
	key ed25519.PrivateKey
	kid string
}

// NewSignerEdDSA builds a signer from a PKCS#8 PEM-encoded Ed25519 private
// key, as produced by cryptox.GenerateEd25519Key.
func NewSignerEdDSA(pemData []byte, kid string) (*EdDSASigner, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, fmt.Errorf("jwtx: no PEM block found")
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse pkcs8: %w", err)
	}

	key, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, ErrWrongKeyType
	}

	s := &EdDSASigner{key: key, kid: kid}
	if err := s.validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *EdDSASigner) validate() error {
	if len(s.key) != ed25519.PrivateKeySize {
		return ErrNilKey
	}

	if s.kid == "" {
		return fmt.Errorf("jwtx: signer requires a key id")
	}

	return nil
}

// Sign implements Signer.
func (s *EdDSASigner) Sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	token.Header["kid"] = s.kid

	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}

	return signed, nil
}

// Algorithm implements Signer.
func (s *EdDSASigner) Algorithm() string {
	return jwt.SigningMethodEdDSA.Alg()
}

// KeyID implements Signer.
func (s *EdDSASigner) KeyID() string {
	return s.kid
}

// PublicJWK implements Signer.
func (s *EdDSASigner) PublicJWK() (JWK, error) {
	pub, ok := s.key.Public().(ed25519.PublicKey)
	if !ok {
		return JWK{}, ErrWrongKeyType
	}

	return NewEd25519JWK(pub, s.kid), nil
}
