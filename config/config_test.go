package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: sqlite
  dsn: "file::memory:"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, float64(10), cfg.Server.RateLimitPerSec)
	assert.Equal(t, 5, cfg.Server.RateLimitBurst)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "Updated", cfg.Station.DefaultScanStatus)
}

func TestLoadExplicitValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  cache_ttl_seconds: 30
station:
  default_scan_status: "Scanned"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.CacheTTLSeconds)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "Scanned", cfg.Station.DefaultScanStatus)
}

func TestLoadPortEnvOverride(t *testing.T) {
	t.Setenv("PORT", "9100")

	cfg, err := Load(writeConfig(t, "server:\n  port: 9000\n"))
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
}

func TestLoadInvalidPortEnvIgnored(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	cfg, err := Load(writeConfig(t, "server:\n  port: 9000\n"))
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoadDSNEnvOverride(t *testing.T) {
	t.Setenv("DATABASE_DSN", "host=db.internal dbname=tracker")

	cfg, err := Load(writeConfig(t, "database:\n  dsn: local\n"))
	require.NoError(t, err)
	assert.Equal(t, "host=db.internal dbname=tracker", cfg.Database.DSN)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
