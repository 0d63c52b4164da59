package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, []string{"NEW", "IN PROGRESS", "DONE"}, cfg.Database.SeedStatuses)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "#874BFD", cfg.Theme.Accent)
}

func TestLoadConfigWithFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir := filepath.Join(dir, "tasktracker")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	content := `server:
  addr: "127.0.0.1:9000"
  shutdown_timeout: 3s
database:
  driver: postgres
  dsn: postgres://tracker@localhost/tracker
  seed_statuses: []
auth:
  token_ttl: 90m
log:
  level: debug
  format: json
theme:
  preset: monochrome
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout, "unset values fall back to defaults")
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Empty(t, cfg.Database.SeedStatuses)
	assert.Equal(t, 90*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "#FFFFFF", cfg.Theme.Accent)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TRACKER_ADDR", ":7000")
	t.Setenv("TRACKER_DB_DSN", "/tmp/tracker.db")
	t.Setenv("TRACKER_TOKEN_TTL", "5m")
	t.Setenv("TRACKER_BCRYPT_COST", "4")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "/tmp/tracker.db", cfg.Database.DSN)
	assert.Equal(t, 5*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	t.Run("bad env duration", func(t *testing.T) {
		t.Setenv("TRACKER_TOKEN_TTL", "soon")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: oracle\n"), 0o644))
		_, err := Load(path)
		assert.ErrorContains(t, err, "database.driver")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: [\n"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Server.Addr = ":9999"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", loaded.Server.Addr)
	assert.Equal(t, cfg.Auth.TokenTTL, loaded.Auth.TokenTTL)
}
