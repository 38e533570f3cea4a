package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Backend.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Backend.RequestTimeout)
	assert.Equal(t, ".portal/tokens.json", cfg.Token.Path)
	assert.Equal(t, 5*time.Minute, cfg.Booking.BlockedSlotTTL)
	assert.Equal(t, 1000, cfg.Booking.BlockedSlotLimit)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	yml := `
backend:
  base_url: https://api.clinic.example
  request_timeout: 30s
rate_limit:
  enabled: false
token:
  path: /var/lib/portal/tokens.json
booking:
  blocked_slot_ttl: 10m
  blocked_slot_limit: 250
log_level: warn
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o600))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(cwd) })

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.clinic.example", cfg.Backend.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Backend.RequestTimeout)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "/var/lib/portal/tokens.json", cfg.Token.Path)
	assert.Equal(t, 10*time.Minute, cfg.Booking.BlockedSlotTTL)
	assert.Equal(t, 250, cfg.Booking.BlockedSlotLimit)
	assert.Equal(t, "warn", cfg.LogLevel)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, 8080, cfg.MockAPI.Port)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("PORTAL_BACKEND_URL", "https://api.clinic.example")
	t.Setenv("PORTAL_TOKEN_PATH", "/tmp/tokens.json")
	t.Setenv("PORTAL_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.clinic.example", cfg.Backend.BaseURL)
	assert.Equal(t, "/tmp/tokens.json", cfg.Token.Path)
	assert.Equal(t, "debug", cfg.LogLevel)
}
