package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/nightglass/authkit/internal/auth/store"
	"github.com/nightglass/authkit/pkg/jwtx"
)

// RevocationRetention is how long revocation records outlive the tokens
// they cover. Purging earlier would let an expired-then-unexpired clock
// skew window resurrect a revoked token.
const RevocationRetention = 24 * time.Hour

// RefreshGracePeriod keeps expired refresh token rows around after expiry.
// A replayed token must keep reading as replayed, not unknown, for the
// lineage cascade to fire; purging at the expiry instant would erase that
// evidence.
const RefreshGracePeriod = 24 * time.Hour

// sweepTimeout bounds one full cleanup pass.
const sweepTimeout = 30 * time.Second

// HousekeepingService periodically prunes expired refresh tokens, stale
// revocation records, expired signing keys, and the in-memory keyring.
type HousekeepingService struct {
	Store      store.Store
	Keyring    *jwtx.Keyring
	Logger     *slog.Logger
	Interval   time.Duration
	RefreshTTL time.Duration

	// Now overrides the clock; nil means time.Now. Tests pin this.
	Now func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

func (s *HousekeepingService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// NewHousekeepingService wires a sweeper with the given interval;
// non-positive means hourly.
func NewHousekeepingService(st store.Store, ring *jwtx.Keyring, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Store:    st,
		Keyring:  ring,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the background sweeper. Non-blocking.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping started", slog.Duration("interval", s.Interval))
}

// Stop shuts the sweeper down and waits for any in-progress sweep.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.sweepOnce()

	for {
		select {
		case <-ticker.C:
			s.sweepOnce()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) sweepOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()
	s.Sweep(ctx)
}

// Sweep runs one cleanup pass. Each pruner is independent; one failing
// does not stop the rest.
func (s *HousekeepingService) Sweep(ctx context.Context) {
	now := s.now()

	// Expired refresh tokens hold their replay evidence through the grace
	// window before the rows go.
	if n, err := s.Store.RefreshTokens().DeleteExpiredBefore(ctx, now.Add(-RefreshGracePeriod)); err != nil {
		s.Logger.Error("prune refresh tokens failed", slog.Any("error", err))
	} else if n > 0 {
		s.Logger.Info("pruned refresh tokens", slog.Int64("count", n))
	}

	// Revocation records must outlive everything they could still cover:
	// the longest-lived artifact in a lineage is its refresh tokens.
	cutoff := now.Add(-s.RefreshTTL - RevocationRetention)
	if n, err := s.Store.Revocations().DeleteBefore(ctx, cutoff); err != nil {
		s.Logger.Error("prune revocations failed", slog.Any("error", err))
	} else if n > 0 {
		s.Logger.Info("pruned revocations", slog.Int64("count", n))
	}

	if n, err := s.Store.SigningKeys().DeleteExpired(ctx, now); err != nil {
		s.Logger.Error("prune signing keys failed", slog.Any("error", err))
	} else if n > 0 {
		s.Logger.Info("pruned signing keys", slog.Int64("count", n))
	}

	if s.Keyring != nil {
		if err := s.Keyring.Prune(now); err != nil {
			s.Logger.Error("prune keyring failed", slog.Any("error", err))
		}
	}
}
