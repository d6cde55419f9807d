// Package jwtx implements signing and verification of the service's access
// tokens, and the keyring that owns signing key material and its rotation.
package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nightglass/authkit/pkg/idx"
)

// Default token TTLs. Short access tokens, long refresh tokens.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims is the fixed claim set embedded in every access token. The shape
// is deliberately closed (no open-ended map) so signature coverage and
// validation stay exhaustive.
type Claims struct {
	jwt.RegisteredClaims

	// SID is the lineage (session) id the token was minted under. A
	// refresh-token replay revokes the whole lineage, so verifiers check
	// this id against the revocation list alongside jti.
	SID string `json:"sid,omitempty"`

	// Roles carried by the authenticated subject.
	Roles []string `json:"roles,omitempty"`

	// Tenant is an optional tenant/scope tag.
	Tenant string `json:"tenant,omitempty"`
}

// NewAccessClaims builds the claim set for a fresh access token. The jti
// is a ULID, globally unique and never reused.
func NewAccessClaims(
	subject, lineageID string,
	roles []string,
	tenant string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        idx.New().String(),
		},
		SID:    lineageID,
		Roles:  roles,
		Tenant: tenant,
	}
}

// ValidateIssuer checks the iss claim against the expected value.
// Empty expected means nothing to enforce.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry enforces exp and nbf at the given instant with a leeway
// for clock skew. The rejection boundary is inclusive: a token is expired
// once now >= exp (shifted by leeway).
func (c *Claims) ValidateExpiry(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && !now.Before(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
