package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "authkit", cfg.Issuer)
	require.Equal(t, "EdDSA", cfg.Algorithm)
	require.Equal(t, 15*time.Minute, cfg.AccessTTL)
	require.Equal(t, 168*time.Hour, cfg.RefreshTTL)
	require.Equal(t, "enforce", cfg.RevocationMode)
	require.Equal(t, "persistent", cfg.KeyStorageMode)
	require.Equal(t, 8080, cfg.HTTPPort)
	require.Equal(t, 9090, cfg.GRPCPort)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("AUTH_ISSUER", "auth.example.com")
	t.Setenv("AUTH_ALGORITHM", "RS256")
	t.Setenv("AUTH_ACCESS_TTL", "5m")
	t.Setenv("AUTH_REVOCATION_MODE", "lenient")
	t.Setenv("AUTH_KEY_STORAGE_MODE", "ephemeral")
	t.Setenv("PORT", "9000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "auth.example.com", cfg.Issuer)
	require.Equal(t, "RS256", cfg.Algorithm)
	require.Equal(t, 5*time.Minute, cfg.AccessTTL)
	require.Equal(t, "lenient", cfg.RevocationMode)
	require.Equal(t, "ephemeral", cfg.KeyStorageMode)
	require.Equal(t, 9000, cfg.HTTPPort)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad revocation mode", map[string]string{"AUTH_REVOCATION_MODE": "maybe"}},
		{"bad key storage mode", map[string]string{"AUTH_KEY_STORAGE_MODE": "s3"}},
		{"bad algorithm", map[string]string{"AUTH_ALGORITHM": "HS256"}},
		{"negative access ttl", map[string]string{"AUTH_ACCESS_TTL": "-5m"}},
		{"refresh not beyond access", map[string]string{
			"AUTH_ACCESS_TTL":  "24h",
			"AUTH_REFRESH_TTL": "1h",
		}},
		{"equal ttls", map[string]string{
			"AUTH_ACCESS_TTL":  "1h",
			"AUTH_REFRESH_TTL": "1h",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}
