package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("LOG_MODE", "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 5, cfg.LoginLimit.MaxAttempts)
	assert.Equal(t, "defaultsecret", cfg.JWTSecretKey)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := writeConfig(t, `
port: "9000"
jwt_secret_key: from-file
access_token_ttl: 10m
refresh_token_ttl: 48h
db:
  driver: sqlite
  sqlite_path: /tmp/jobtrack.db
login_limit:
  max_attempts: 3
  window: 1m
cors_origins:
  - https://jobs.example.com
tracing:
  enabled: true
  endpoint: collector:4318
`)
	t.Setenv("PORT", "9100")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-api-key=abc, x-team = core")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Addr())
	assert.Equal(t, "from-file", cfg.JWTSecretKey)
	assert.Equal(t, 10*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 48*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "/tmp/jobtrack.db", cfg.DB.SQLitePath)
	assert.Equal(t, 3, cfg.LoginLimit.MaxAttempts)
	assert.Equal(t, time.Minute, cfg.LoginLimit.Window)
	assert.Equal(t, []string{"https://jobs.example.com"}, cfg.CORSOrigins)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "collector:4318", cfg.Tracing.Endpoint)
	assert.Equal(t, map[string]string{"x-api-key": "abc", "x-team": "core"}, cfg.Tracing.Headers)
}

func TestLoadConfigRequiresSecretInProduction(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("LOG_MODE", "production")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
}

func TestLoadConfigRejectsBadTTLs(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL", "2h")
	t.Setenv("REFRESH_TOKEN_TTL", "1h")

	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
