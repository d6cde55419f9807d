package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nightglass/authkit/internal/auth/service"
	"github.com/nightglass/authkit/internal/auth/store"
	"github.com/nightglass/authkit/pkg/cryptox"
	"github.com/nightglass/authkit/pkg/jwtx"
)

// initAuthKeys builds the keyring and its rotation service.
//
// Storage modes:
//   - "persistent": key material is encrypted at rest and reloaded on
//     startup, so outstanding tokens survive restarts.
//   - "ephemeral": a fresh key is generated on every start and all
//     previously issued tokens become invalid.
func initAuthKeys(ctx context.Context, cfg Config, db store.Store, logger *slog.Logger) (*jwtx.Keyring, *service.KeyRotationService, error) {
	if cfg.MasterKeyPath != "" {
		cryptox.SetMasterKeyPath(cfg.MasterKeyPath)
		logger.Info("master key path configured", "path", cfg.MasterKeyPath)
	}

	ring := jwtx.NewKeyring()

	rotation := &service.KeyRotationService{
		Keyring:     ring,
		Algorithm:   cfg.Algorithm,
		RSABits:     cfg.RSABits,
		GracePeriod: cfg.KeyGracePeriod,
		KeyTTL:      cfg.KeyTTL,
	}
	if cfg.KeyStorageMode == "persistent" {
		rotation.Store = db
	}

	if err := rotation.Bootstrap(ctx); err != nil {
		return nil, nil, fmt.Errorf("bootstrap signing keys: %w", err)
	}

	active, err := ring.Active()
	if err != nil {
		return nil, nil, err
	}

	logger.Info("signing keys ready",
		"algorithm", cfg.Algorithm,
		"mode", cfg.KeyStorageMode,
		"active_kid", active.KID(),
		"keys", ring.Snapshot().Len(),
	)
	if cfg.KeyStorageMode != "persistent" {
		logger.Warn("ephemeral key mode: previously issued tokens are now invalid")
	}

	return ring, rotation, nil
}
