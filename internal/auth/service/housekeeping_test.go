package service_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nightglass/authkit/internal/auth/domain"
	"github.com/nightglass/authkit/internal/auth/service"
	"github.com/nightglass/authkit/pkg/idx"
	"github.com/nightglass/authkit/pkg/jwtx"
)

func TestHousekeepingSweep(t *testing.T) {
	st := newMigratedStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	// One token past expiry and its grace window, one expired but still
	// inside the window, one live.
	longDead := domain.RefreshToken{
		ID:          idx.New().String(),
		Subject:     "user-1",
		LineageID:   "lineage-1",
		Fingerprint: idx.New().String(),
		IssuedAt:    now.Add(-96 * time.Hour),
		ExpiresAt:   now.Add(-48 * time.Hour),
	}
	inGrace := domain.RefreshToken{
		ID:          idx.New().String(),
		Subject:     "user-1",
		LineageID:   "lineage-1",
		Fingerprint: idx.New().String(),
		IssuedAt:    now.Add(-48 * time.Hour),
		ExpiresAt:   now.Add(-time.Hour),
	}
	live := domain.RefreshToken{
		ID:          idx.New().String(),
		Subject:     "user-1",
		LineageID:   "lineage-1",
		Fingerprint: idx.New().String(),
		IssuedAt:    now,
		ExpiresAt:   now.Add(time.Hour),
	}
	require.NoError(t, st.RefreshTokens().Create(ctx, longDead))
	require.NoError(t, st.RefreshTokens().Create(ctx, inGrace))
	require.NoError(t, st.RefreshTokens().Create(ctx, live))

	// A revocation old enough to fall outside the retention window.
	stale := domain.Revocation{
		TokenID:   "stale",
		RevokedAt: now.Add(-10 * 24 * time.Hour),
		Reason:    domain.RevocationReasonLogout,
	}
	recent := domain.Revocation{
		TokenID:   "recent",
		RevokedAt: now,
		Reason:    domain.RevocationReasonLogout,
	}
	require.NoError(t, st.Revocations().Create(ctx, stale))
	require.NoError(t, st.Revocations().Create(ctx, recent))

	// An expired signing key.
	deadKey := domain.SigningKey{
		ID:                  idx.New().String(),
		Kid:                 "dead",
		Algorithm:           "EdDSA",
		PrivateKeyEncrypted: []byte("x"),
		CreatedAt:           now.Add(-100 * 24 * time.Hour),
		ExpiresAt:           now.Add(-time.Hour),
	}
	require.NoError(t, st.SigningKeys().Create(ctx, deadKey))

	hk := service.NewHousekeepingService(st, jwtx.NewKeyring(), slog.Default(), time.Hour)
	hk.RefreshTTL = 7 * 24 * time.Hour
	hk.Sweep(ctx)

	_, err := st.RefreshTokens().GetByFingerprint(ctx, longDead.Fingerprint)
	require.Error(t, err)
	_, err = st.RefreshTokens().GetByFingerprint(ctx, inGrace.Fingerprint)
	require.NoError(t, err, "expired rows survive the grace window")
	_, err = st.RefreshTokens().GetByFingerprint(ctx, live.Fingerprint)
	require.NoError(t, err)

	revoked, err := st.Revocations().IsRevoked(ctx, "stale")
	require.NoError(t, err)
	require.False(t, revoked)
	revoked, err = st.Revocations().IsRevoked(ctx, "recent")
	require.NoError(t, err)
	require.True(t, revoked)

	_, err = st.SigningKeys().GetByKid(ctx, "dead")
	require.Error(t, err)
}

func TestSweepPreservesReplayEvidence(t *testing.T) {
	svc, clock, st := newTokenService(t)
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, testIdentity)
	require.NoError(t, err)
	claims, err := svc.VerifyAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)

	// Consume the first refresh token so its row carries replaced_by.
	_, err = svc.RotateRefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)

	// Past expiry but inside the grace window; the sweep must not purge
	// the consumed row.
	clock.Advance(svc.RefreshTTL + time.Hour)

	hk := service.NewHousekeepingService(st, jwtx.NewKeyring(), slog.Default(), time.Hour)
	hk.RefreshTTL = svc.RefreshTTL
	hk.Now = clock.Now
	hk.Sweep(ctx)

	// The replayed token still reads as replayed, not unknown, and the
	// lineage cascade still fires.
	_, err = svc.RotateRefreshToken(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, service.ErrReplayDetected)

	revoked, err := st.Revocations().IsRevoked(ctx, claims.SID)
	require.NoError(t, err)
	require.True(t, revoked)
}

func TestSweepHonorsContext(t *testing.T) {
	st := newMigratedStore(t)
	now := time.Now().UTC()

	longDead := domain.RefreshToken{
		ID:          idx.New().String(),
		Subject:     "user-1",
		LineageID:   "lineage-1",
		Fingerprint: idx.New().String(),
		IssuedAt:    now.Add(-96 * time.Hour),
		ExpiresAt:   now.Add(-48 * time.Hour),
	}
	require.NoError(t, st.RefreshTokens().Create(context.Background(), longDead))

	hk := service.NewHousekeepingService(st, jwtx.NewKeyring(), slog.Default(), time.Hour)
	hk.RefreshTTL = 7 * 24 * time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	hk.Sweep(ctx)

	// A dead context stops every pruner; nothing was deleted.
	_, err := st.RefreshTokens().GetByFingerprint(context.Background(), longDead.Fingerprint)
	require.NoError(t, err)
}

func TestHousekeepingStartStop(t *testing.T) {
	st := newMigratedStore(t)

	hk := service.NewHousekeepingService(st, jwtx.NewKeyring(), slog.Default(), time.Hour)
	hk.RefreshTTL = 7 * 24 * time.Hour
	hk.Start()
	hk.Stop()
}
