package jwtx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nightglass/authkit/pkg/jwtx"
)

func TestNewAccessClaims(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()

	claims := jwtx.NewAccessClaims(
		"user-1", "lineage-1",
		[]string{"admin", "viewer"}, "acme",
		15*time.Minute, "authkit-test", now,
	)

	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "lineage-1", claims.SID)
	require.Equal(t, []string{"admin", "viewer"}, claims.Roles)
	require.Equal(t, "acme", claims.Tenant)
	require.Equal(t, "authkit-test", claims.Issuer)
	require.NotEmpty(t, claims.ID)
	require.Equal(t, now.Add(15*time.Minute), claims.ExpiresAt.Time)
}

func TestClaimsUniqueJTI(t *testing.T) {
	now := time.Now().UTC()
	a := jwtx.NewAccessClaims("u", "l", nil, "", time.Minute, "iss", now)
	b := jwtx.NewAccessClaims("u", "l", nil, "", time.Minute, "iss", now)
	require.NotEqual(t, a.ID, b.ID)
}

func TestValidateIssuer(t *testing.T) {
	claims := jwtx.NewAccessClaims("u", "l", nil, "", time.Minute, "good", time.Now())

	require.NoError(t, claims.ValidateIssuer("good"))
	require.NoError(t, claims.ValidateIssuer(""))
	require.ErrorIs(t, claims.ValidateIssuer("evil"), jwtx.ErrIssuer)
}

func TestValidateExpiry_InclusiveBoundary(t *testing.T) {
	issued := time.Unix(1700000000, 0).UTC()
	ttl := 15 * time.Minute
	claims := jwtx.NewAccessClaims("u", "l", nil, "", ttl, "iss", issued)
	exp := issued.Add(ttl)

	// One nanosecond before expiry: still valid.
	require.NoError(t, claims.ValidateExpiry(exp.Add(-time.Nanosecond), 0))

	// At the exact expiry instant: rejected.
	require.ErrorIs(t, claims.ValidateExpiry(exp, 0), jwtx.ErrExpired)

	// Past expiry but inside leeway: accepted.
	require.NoError(t, claims.ValidateExpiry(exp.Add(3*time.Second), 5*time.Second))

	// At the leeway-shifted boundary: rejected again.
	require.ErrorIs(t, claims.ValidateExpiry(exp.Add(5*time.Second), 5*time.Second), jwtx.ErrExpired)
}

func TestValidateExpiry_NotBefore(t *testing.T) {
	issued := time.Unix(1700000000, 0).UTC()
	claims := jwtx.NewAccessClaims("u", "l", nil, "", time.Minute, "iss", issued)

	require.ErrorIs(t, claims.ValidateExpiry(issued.Add(-time.Minute), 0), jwtx.ErrNotYetValid)
	require.NoError(t, claims.ValidateExpiry(issued.Add(-3*time.Second), 5*time.Second))
}
