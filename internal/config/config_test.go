package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validSecret = "0123456789abcdef0123456789abcdef"

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
env: "dev"
database:
  host: "db"
  port: 6543
  dbname: "events_test"
http_server:
  address: ":9090"
  timeout: 2s
auth:
  jwt_secret: "`+validSecret+`"
  token_ttl: 30m
cors:
  allowed_origins: ["https://events.example.com"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "events_test", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, ":9090", cfg.HTTPServer.Address)
	assert.Equal(t, 2*time.Second, cfg.HTTPServer.Timeout)
	assert.Equal(t, 60*time.Second, cfg.HTTPServer.IdleTimeout)
	assert.Equal(t, int64(1<<20), cfg.HTTPServer.MaxBodyBytes)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "events-api", cfg.Auth.Issuer)
	assert.Equal(t, 10, cfg.Auth.RateLimit)
	assert.Equal(t, []string{"https://events.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoadRejectsShortSecret(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "too-short"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secret must be at least 32 bytes")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file does not exist")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", validSecret)
	t.Setenv("DB_HOST", "postgres.internal")
	t.Setenv("CORS_ORIGINS", "https://a.example.com,https://b.example.com")
	t.Setenv("AUTH_RATE_LIMIT", "25")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "postgres.internal", cfg.Database.Host)
	assert.Equal(t, validSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, 25, cfg.Auth.RateLimit)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}
