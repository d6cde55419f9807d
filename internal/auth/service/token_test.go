package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nightglass/authkit/internal/auth/domain"
	"github.com/nightglass/authkit/internal/auth/service"
	"github.com/nightglass/authkit/internal/auth/store/drivers/sqlite"
	"github.com/nightglass/authkit/pkg/cryptox"
	"github.com/nightglass/authkit/pkg/jwtx"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1700000000, 0).UTC()}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTokenService(t *testing.T) (*service.TokenService, *fakeClock, *sqlite.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	clock := newFakeClock()

	pemData, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSigner(jwtx.AlgorithmEdDSA, "test-key", pemData, clock.Now())
	require.NoError(t, err)

	ring := jwtx.NewKeyring()
	require.NoError(t, ring.Install(signer))

	svc := &service.TokenService{
		Keyring:        ring,
		Verifier:       jwtx.NewVerifier(ring, jwtx.VerifyOptions{Issuer: "authkit-test"}),
		Store:          st,
		Issuer:         "authkit-test",
		AccessTTL:      15 * time.Minute,
		RefreshTTL:     7 * 24 * time.Hour,
		RevocationMode: service.RevocationEnforce,
		Now:            clock.Now,
	}
	return svc, clock, st
}

var testIdentity = domain.Identity{
	Subject: "user-1",
	Roles:   []string{"admin"},
	Tenant:  "acme",
}

func TestIssuePairAndVerify(t *testing.T) {
	svc, _, _ := newTokenService(t)
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, testIdentity)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, "Bearer", pair.TokenType)
	require.Equal(t, 15*time.Minute, pair.ExpiresIn)

	claims, err := svc.VerifyAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, []string{"admin"}, claims.Roles)
	require.Equal(t, "acme", claims.Tenant)
	require.NotEmpty(t, claims.ID)
	require.NotEmpty(t, claims.SID)
}

func TestVerifyExpiredAccessToken(t *testing.T) {
	svc, clock, _ := newTokenService(t)
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, testIdentity)
	require.NoError(t, err)

	clock.Advance(15*time.Minute - time.Second)
	_, err = svc.VerifyAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)

	// Inclusive boundary: dead at the exact expiry instant.
	clock.Advance(time.Second)
	_, err = svc.VerifyAccessToken(ctx, pair.AccessToken)
	require.ErrorIs(t, err, service.ErrExpired)
}

func TestVerifyGarbage(t *testing.T) {
	svc, _, _ := newTokenService(t)

	_, err := svc.VerifyAccessToken(context.Background(), "not.a.token")
	require.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestVerifyNoSigningKey(t *testing.T) {
	svc, _, _ := newTokenService(t)

	empty := jwtx.NewKeyring()
	svc.Keyring = empty
	svc.Verifier = jwtx.NewVerifier(empty, jwtx.VerifyOptions{Issuer: "authkit-test"})

	_, err := svc.IssuePair(context.Background(), testIdentity)
	require.ErrorIs(t, err, service.ErrKeyUnavailable)
}

func TestRotateRefreshToken(t *testing.T) {
	svc, clock, _ := newTokenService(t)
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, testIdentity)
	require.NoError(t, err)

	clock.Advance(time.Minute)
	next, err := svc.RotateRefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, pair.RefreshToken, next.RefreshToken)
	require.NotEmpty(t, next.AccessToken)

	// The rotated-in token works in turn.
	clock.Advance(time.Minute)
	third, err := svc.RotateRefreshToken(ctx, next.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, next.RefreshToken, third.RefreshToken)

	// Lineage is preserved across rotations.
	c1, err := svc.VerifyAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	c3, err := svc.VerifyAccessToken(ctx, third.AccessToken)
	require.NoError(t, err)
	require.Equal(t, c1.SID, c3.SID)
}

func TestRotateReplayCascades(t *testing.T) {
	svc, clock, _ := newTokenService(t)
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, testIdentity)
	require.NoError(t, err)

	next, err := svc.RotateRefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)

	// Second use of the consumed token is a replay.
	clock.Advance(time.Second)
	_, err = svc.RotateRefreshToken(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, service.ErrReplayDetected)

	// The cascade killed the successor too.
	_, err = svc.RotateRefreshToken(ctx, next.RefreshToken)
	require.ErrorIs(t, err, service.ErrRevoked)

	// And every outstanding access token in the lineage.
	_, err = svc.VerifyAccessToken(ctx, pair.AccessToken)
	require.ErrorIs(t, err, service.ErrRevoked)
	_, err = svc.VerifyAccessToken(ctx, next.AccessToken)
	require.ErrorIs(t, err, service.ErrRevoked)
}

func TestRotateExpiredRefreshToken(t *testing.T) {
	svc, clock, _ := newTokenService(t)
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, testIdentity)
	require.NoError(t, err)

	clock.Advance(7*24*time.Hour + time.Second)
	_, err = svc.RotateRefreshToken(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, service.ErrExpired)
}

func TestRotateUnknownRefreshToken(t *testing.T) {
	svc, _, _ := newTokenService(t)

	_, err := svc.RotateRefreshToken(context.Background(), "never-issued")
	require.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestConcurrentRotationExactlyOneWinner(t *testing.T) {
	svc, _, _ := newTokenService(t)
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, testIdentity)
	require.NoError(t, err)

	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)

	for i := range racers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RotateRefreshToken(ctx, pair.RefreshToken)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		default:
			// Losers observe the replay path, or the revoked lineage a
			// fellow loser's cascade already produced.
			require.True(t,
				errorsIsAny(err, service.ErrReplayDetected, service.ErrRevoked),
				"unexpected loser error: %v", err)
		}
	}
	require.Equal(t, 1, wins, "exactly one rotation must win")
}

func TestRevokeRefreshToken(t *testing.T) {
	svc, _, _ := newTokenService(t)
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, testIdentity)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeRefreshToken(ctx, pair.RefreshToken))

	// Revoked, not replayed: the distinction survives.
	_, err = svc.RotateRefreshToken(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, service.ErrRevoked)

	// Access tokens in the lineage die with it.
	_, err = svc.VerifyAccessToken(ctx, pair.AccessToken)
	require.ErrorIs(t, err, service.ErrRevoked)
}

func TestRevokeIsIdempotent(t *testing.T) {
	svc, _, _ := newTokenService(t)
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, testIdentity)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeRefreshToken(ctx, pair.RefreshToken))
	require.NoError(t, svc.RevokeRefreshToken(ctx, pair.RefreshToken))
	require.NoError(t, svc.RevokeRefreshToken(ctx, "never-issued"))
}

func TestRevokeTokenID(t *testing.T) {
	svc, _, _ := newTokenService(t)
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, testIdentity)
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeTokenID(ctx, claims.ID))

	_, err = svc.VerifyAccessToken(ctx, pair.AccessToken)
	require.ErrorIs(t, err, service.ErrRevoked)
}

func TestRevocationModeOff(t *testing.T) {
	svc, _, _ := newTokenService(t)
	svc.RevocationMode = service.RevocationOff
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, testIdentity)
	require.NoError(t, err)
	require.NoError(t, svc.RevokeRefreshToken(ctx, pair.RefreshToken))

	// Verification is pure: the revocation is not consulted.
	_, err = svc.VerifyAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)
}

func TestRevocationFailClosed(t *testing.T) {
	svc, _, st := newTokenService(t)
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, testIdentity)
	require.NoError(t, err)

	// Take the store away mid-flight.
	require.NoError(t, st.Close())

	_, err = svc.VerifyAccessToken(ctx, pair.AccessToken)
	require.ErrorIs(t, err, service.ErrStoreUnavailable)
}

func TestRevocationLenientFailsOpen(t *testing.T) {
	svc, _, st := newTokenService(t)
	svc.RevocationMode = service.RevocationLenient
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, testIdentity)
	require.NoError(t, err)

	require.NoError(t, st.Close())

	claims, err := svc.VerifyAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
}

func TestRotationSurvivesOutstandingTokens(t *testing.T) {
	svc, clock, _ := newTokenService(t)
	ctx := context.Background()

	// Several sessions in flight at once.
	var pairs []*domain.TokenPair
	for range 10 {
		p, err := svc.IssuePair(ctx, testIdentity)
		require.NoError(t, err)
		pairs = append(pairs, p)
	}

	// Rotate the signing key under them.
	pemData, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	next, err := jwtx.NewSigner(jwtx.AlgorithmEdDSA, "next-key", pemData, clock.Now())
	require.NoError(t, err)
	require.NoError(t, svc.Keyring.Rotate(next, clock.Now().Add(time.Hour)))

	// Outstanding tokens keep verifying inside the overlap window.
	for _, p := range pairs {
		_, err := svc.VerifyAccessToken(ctx, p.AccessToken)
		require.NoError(t, err)
	}

	// New issues are signed by the new key and verify too.
	fresh, err := svc.IssuePair(ctx, testIdentity)
	require.NoError(t, err)
	_, err = svc.VerifyAccessToken(ctx, fresh.AccessToken)
	require.NoError(t, err)

	// After the window closes, the old signatures are gone.
	clock.Advance(time.Hour)
	_, err = svc.VerifyAccessToken(ctx, pairs[0].AccessToken)
	require.ErrorIs(t, err, service.ErrInvalidToken)
	_, err = svc.VerifyAccessToken(ctx, fresh.AccessToken)
	require.NoError(t, err)
}

func errorsIsAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
