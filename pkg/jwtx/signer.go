package jwtx

import (
	"crypto"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Supported signing algorithms.
const (
	AlgorithmRS256 = "RS256"
	AlgorithmEdDSA = "EdDSA"
)

// Signer holds one private signing key. It is immutable after creation and
// safe to share across goroutines.
type Signer struct {
	kid         string
	alg         string
	method      jwt.SigningMethod
	private     crypto.PrivateKey
	public      crypto.PublicKey
	activatedAt time.Time
}

// NewSigner parses a PKCS8 PEM private key for the given algorithm.
func NewSigner(alg, kid string, pemKey []byte, activatedAt time.Time) (*Signer, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return nil, errors.New("jwtx: invalid PEM")
	}

	priv, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse pkcs8: %w", err)
	}

	s := &Signer{kid: kid, alg: alg, private: priv, activatedAt: activatedAt}

	switch alg {
	case AlgorithmRS256:
		rk, ok := priv.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("jwtx: key is not RSA")
		}
		s.method = jwt.SigningMethodRS256
		s.public = &rk.PublicKey
	case AlgorithmEdDSA:
		ek, ok := priv.(ed25519.PrivateKey)
		if !ok {
			return nil, errors.New("jwtx: key is not Ed25519")
		}
		s.method = jwt.SigningMethodEdDSA
		s.public = ek.Public()
	default:
		return nil, fmt.Errorf("jwtx: unsupported algorithm %q (supported: RS256, EdDSA)", alg)
	}

	return s, nil
}

func (s *Signer) KID() string            { return s.kid }
func (s *Signer) Alg() string            { return s.alg }
func (s *Signer) ActivatedAt() time.Time { return s.activatedAt }

// Sign serializes and signs the claims, stamping the kid header so
// verifiers can pick the right key during rotation overlap.
func (s *Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(s.method, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.private)
}

// VerificationKey derives the verification-only view of the signer, used
// when restoring a retired key from persistent storage.
func (s *Signer) VerificationKey(notAfter time.Time) VerificationKey {
	return VerificationKey{
		Kid:         s.kid,
		Alg:         s.alg,
		Public:      s.public,
		ActivatedAt: s.activatedAt,
		NotAfter:    notAfter,
	}
}

// PublicJWK returns the signer's public key as a JWK for JWKS publishing.
func (s *Signer) PublicJWK() (JWK, error) {
	switch pub := s.public.(type) {
	case *rsa.PublicKey:
		return NewRSAJWK(s.kid, s.alg, pub), nil
	case ed25519.PublicKey:
		return NewEd25519JWK(s.kid, pub), nil
	default:
		return JWK{}, fmt.Errorf("jwtx: unsupported public key type %T", pub)
	}
}
