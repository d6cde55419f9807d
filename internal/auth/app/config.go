package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full runtime configuration, loaded from the environment.
type Config struct {
	Issuer string `env:"AUTH_ISSUER" envDefault:"authkit"`

	Algorithm   string        `env:"AUTH_ALGORITHM" envDefault:"EdDSA"`
	RSABits     int           `env:"AUTH_RSA_BITS" envDefault:"2048"`
	AccessTTL   time.Duration `env:"AUTH_ACCESS_TTL" envDefault:"15m"`
	RefreshTTL  time.Duration `env:"AUTH_REFRESH_TTL" envDefault:"168h"`
	ClockLeeway time.Duration `env:"AUTH_CLOCK_LEEWAY" envDefault:"5s"`

	// RevocationMode applies to access-token verification: off, enforce,
	// or lenient.
	RevocationMode string `env:"AUTH_REVOCATION_MODE" envDefault:"enforce"`

	KeyStorageMode string        `env:"AUTH_KEY_STORAGE_MODE" envDefault:"persistent"`
	KeyGracePeriod time.Duration `env:"AUTH_KEY_GRACE_PERIOD" envDefault:"24h"`
	KeyTTL         time.Duration `env:"AUTH_KEY_TTL" envDefault:"2160h"`
	MasterKeyPath  string        `env:"AUTH_MASTER_KEY_PATH"`

	DatabaseFile string `env:"AUTH_DATABASE_FILE" envDefault:"authkit.db"`

	// IdentityURL points at the identity directory. Empty switches to the
	// built-in static verifier (development only).
	IdentityURL     string        `env:"AUTH_IDENTITY_URL"`
	IdentityTimeout time.Duration `env:"AUTH_IDENTITY_TIMEOUT" envDefault:"5s"`

	HTTPPort int `env:"PORT" envDefault:"8080"`
	GRPCPort int `env:"GRPC_PORT" envDefault:"9090"`

	Env                  string        `env:"ENV" envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT" envDefault:"json"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
}

// LoadConfig parses the environment and validates the result.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.RevocationMode {
	case "off", "enforce", "lenient":
	default:
		return fmt.Errorf("invalid AUTH_REVOCATION_MODE %q", c.RevocationMode)
	}
	switch c.KeyStorageMode {
	case "ephemeral", "persistent":
	default:
		return fmt.Errorf("invalid AUTH_KEY_STORAGE_MODE %q", c.KeyStorageMode)
	}
	switch c.Algorithm {
	case "RS256", "EdDSA":
	default:
		return fmt.Errorf("invalid AUTH_ALGORITHM %q", c.Algorithm)
	}
	if c.AccessTTL <= 0 || c.RefreshTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}
	if c.RefreshTTL <= c.AccessTTL {
		return fmt.Errorf("AUTH_REFRESH_TTL (%s) must exceed AUTH_ACCESS_TTL (%s)", c.RefreshTTL, c.AccessTTL)
	}
	return nil
}
