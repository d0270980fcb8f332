package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_EXPIRY_DURATION", "not-a-duration")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("RATE_LIMIT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, "easyledger", cfg.JWTIssuer)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRY_DURATION", "2h")
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiryDuration)
	assert.True(t, cfg.IsProduction)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}
