package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "s3cret")
	t.Setenv("APP_ENV", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, 5*time.Minute, cfg.RoleCacheTTL)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 300, cfg.RateLimitPerMinute)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "America/Los_Angeles", cfg.Location().String())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "s3cret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("ROLE_CACHE_TTL", "30s")
	t.Setenv("APP_TIMEZONE", "UTC")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 30*time.Second, cfg.RoleCacheTTL)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "")
	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("TOKEN_SECRET", "s3cret")
	t.Setenv("APP_TIMEZONE", "Black/Rock_City")
	_, err = LoadConfig()
	require.Error(t, err)
}
