package jwtx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nightglass/authkit/pkg/cryptox"
	"github.com/nightglass/authkit/pkg/jwtx"
)

func newTestSigner(t *testing.T, alg, kid string, activatedAt time.Time) *jwtx.Signer {
	t.Helper()

	var (
		pemData []byte
		err     error
	)
	switch alg {
	case jwtx.AlgorithmRS256:
		pemData, err = cryptox.GenerateRSAKey(2048)
	case jwtx.AlgorithmEdDSA:
		pemData, err = cryptox.GenerateEd25519Key()
	default:
		t.Fatalf("unknown algorithm %q", alg)
	}
	require.NoError(t, err)

	signer, err := jwtx.NewSigner(alg, kid, pemData, activatedAt)
	require.NoError(t, err)
	return signer
}

func newTestRing(t *testing.T, alg, kid string, activatedAt time.Time) (*jwtx.Keyring, *jwtx.Signer) {
	t.Helper()
	ring := jwtx.NewKeyring()
	signer := newTestSigner(t, alg, kid, activatedAt)
	require.NoError(t, ring.Install(signer))
	return ring, signer
}

func TestSignVerifyRoundTrip(t *testing.T) {
	for _, alg := range []string{jwtx.AlgorithmRS256, jwtx.AlgorithmEdDSA} {
		t.Run(alg, func(t *testing.T) {
			now := time.Now().UTC()
			ring, signer := newTestRing(t, alg, "key-1", now)

			claims := jwtx.NewAccessClaims("user-1", "lineage-1", []string{"admin"}, "acme",
				15*time.Minute, "authkit-test", now)
			raw, err := signer.Sign(claims)
			require.NoError(t, err)

			v := jwtx.NewVerifier(ring, jwtx.VerifyOptions{Issuer: "authkit-test"})
			got, err := v.VerifyAt(raw, now)
			require.NoError(t, err)
			require.Equal(t, "user-1", got.Subject)
			require.Equal(t, "lineage-1", got.SID)
			require.Equal(t, []string{"admin"}, got.Roles)
			require.Equal(t, claims.ID, got.ID)
		})
	}
}

func TestNewSigner_AlgorithmKeyMismatch(t *testing.T) {
	edPEM, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	_, err = jwtx.NewSigner(jwtx.AlgorithmRS256, "kid", edPEM, time.Now())
	require.Error(t, err)
}

func TestNewSigner_UnsupportedAlgorithm(t *testing.T) {
	edPEM, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	_, err = jwtx.NewSigner("HS256", "kid", edPEM, time.Now())
	require.Error(t, err)
}

func TestNewSigner_BadPEM(t *testing.T) {
	_, err := jwtx.NewSigner(jwtx.AlgorithmEdDSA, "kid", []byte("not pem"), time.Now())
	require.Error(t, err)
}

func TestPublicJWK(t *testing.T) {
	signer := newTestSigner(t, jwtx.AlgorithmEdDSA, "key-jwk", time.Now())
	jwk, err := signer.PublicJWK()
	require.NoError(t, err)
	require.Equal(t, "key-jwk", jwk.Kid)
	require.Equal(t, "OKP", jwk.Kty)
	require.NotEmpty(t, jwk.X)
}
