package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 3, cfg.Renderer.Attempts)
	assert.Equal(t, 60*time.Second, cfg.RenderTimeout())
	assert.Equal(t, time.Second, cfg.RenderBackoff())
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL())
	assert.Equal(t, time.Hour, cfg.SessionIdle())
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, "cv-exports", cfg.Archive.Bucket)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "8080"
  environment: production
database:
  url: postgres://yaml
redis:
  addr: localhost:6379
  ttl_seconds: 30
renderer:
  attempts: 2
logger:
  level: debug
  format: pretty
`)
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("RENDER_ATTEMPTS", "5")
	t.Setenv("ARCHIVE_USE_SSL", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "postgres://env", cfg.Database.URL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL())
	assert.Equal(t, 5, cfg.Renderer.Attempts)
	assert.True(t, cfg.Archive.UseSSL)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "pretty", cfg.Logger.Format)
}

func TestLoadInvalidIntegerIsIgnored(t *testing.T) {
	t.Setenv("RENDER_TIMEOUT_SECONDS", "soon")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Renderer.TimeoutSeconds)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "server: [unterminated")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Setenv("RENDER_ATTEMPTS", "-1")
	_, err := Load("")
	assert.ErrorContains(t, err, "attempts")

	t.Setenv("RENDER_ATTEMPTS", "1")
	t.Setenv("ARCHIVE_ENDPOINT", "minio:9000")
	_, err = Load("")
	assert.ErrorContains(t, err, "ARCHIVE_ACCESS_KEY")

	t.Setenv("ARCHIVE_ACCESS_KEY", "key")
	t.Setenv("ARCHIVE_SECRET_KEY", "secret")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "minio:9000", cfg.Archive.Endpoint)
}
