package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 60*time.Minute, cfg.TokenTTL())
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.True(t, cfg.Debug)
	assert.False(t, cfg.RateLimitEnabled)
	assert.Empty(t, cfg.RedisURL)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, 8081, cfg.WorkerPort)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("port: 9000\njwt_secret: from-file\ncors_origins:\n  - https://a.example\n  - https://b.example\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "15")
	t.Setenv("DEBUG", "false")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL())
	assert.False(t, cfg.Debug)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadCORSFromEnv(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://x.example,https://y.example")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://x.example", "https://y.example"}, cfg.CORSOrigins)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			DatabaseURL:           "postgres://localhost/db",
			JWTSecret:             "s",
			JWTAlgorithm:          "hs256",
			AccessTokenExpireMins: 5,
		}
	}

	cfg := base()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)

	cfg = base()
	cfg.JWTAlgorithm = "RS256"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.AccessTokenExpireMins = 0
	assert.Error(t, cfg.Validate())
}

func TestRequestTimeoutFallback(t *testing.T) {
	cfg := Config{}
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
	cfg.RequestTimeoutSeconds = 5
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout())
}
