package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_URL", "QUILL_DATABASE_URL", "QUILL_ADDR", "QUILL_JWT_SECRET", "QUILL_JWT_PRIVATE_JWK",
		"QUILL_JWT_ACCESS_TTL", "QUILL_JWT_REFRESH_TTL", "QUILL_MEDIA_DIR", "QUILL_MEDIA_BASE_URL",
		"QUILL_CORS_ALLOWED_ORIGINS", "QUILL_LOG_LEVEL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, "./media", cfg.MediaDir)
	assert.Equal(t, "/media", cfg.MediaBaseURL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database_url")
	assert.Contains(t, err.Error(), "signing key")
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://bare")
	t.Setenv("QUILL_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("QUILL_JWT_ACCESS_TTL", "5m")
	t.Setenv("QUILL_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("QUILL_LOG_LEVEL", "DEBUG")

	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "postgres://bare", cfg.DatabaseURL)
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)

	t.Setenv("QUILL_DATABASE_URL", "postgres://prefixed")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://prefixed", cfg.DatabaseURL)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "quill.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9000"
database_url: postgres://from-file
jwt:
  secret: from-file-secret-from-file-secret
media:
  base_url: https://cdn.example/media/
cors:
  allowed_origins:
    - https://blog.example
`), 0o600))

	t.Setenv("QUILL_ADDR", ":9100")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Addr, "environment overrides the file")
	assert.Equal(t, "postgres://from-file", cfg.DatabaseURL)
	assert.Equal(t, "from-file-secret-from-file-secret", cfg.JWTSecret)
	assert.Equal(t, "https://cdn.example/media", cfg.MediaBaseURL)
	assert.Equal(t, []string{"https://blog.example"}, cfg.AllowedOrigins)
}

func TestLoad_Base64JWK(t *testing.T) {
	clearEnv(t)
	jwk := `{"kty":"EC","crv":"P-256"}`
	t.Setenv("QUILL_JWT_PRIVATE_JWK", "base64:"+base64.StdEncoding.EncodeToString([]byte(jwk)))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, jwk, cfg.JWTPrivateJWK)

	t.Setenv("QUILL_JWT_PRIVATE_JWK", "base64:!!!")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUILL_JWT_REFRESH_TTL", "forever")
	_, err := Load("")
	assert.Error(t, err)

	clearEnv(t)
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	cfg := &Config{DatabaseURL: "postgres://x", JWTSecret: "s", LogLevel: "chatty"}
	assert.ErrorContains(t, cfg.Validate(), "log.level")
}
