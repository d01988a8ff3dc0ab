package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "memory", cfg.CacheBackend)
	assert.Equal(t, "mock", cfg.Provider)
	assert.Equal(t, 10*time.Second, cfg.PollInterval)
	assert.True(t, cfg.Notifications.ShowAlert)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("TRACKING_POLL_INTERVAL", "30")
	t.Setenv("AIRPORT_CACHE_TTL", "1h")
	t.Setenv("NOTIFY_PLAY_SOUND", "false")
	t.Setenv("CACHE_BACKEND", "REDIS")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, time.Hour, cfg.AirportTTL)
	assert.False(t, cfg.Notifications.PlaySound)
	assert.Equal(t, "redis", cfg.CacheBackend)
}

func TestFromEnv_Invalid(t *testing.T) {
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("TRACKING_POLL_INTERVAL", "soon")
		_, err := FromEnv()
		assert.Error(t, err)
	})
	t.Run("non-positive interval", func(t *testing.T) {
		t.Setenv("TRACKING_POLL_INTERVAL", "0s")
		_, err := FromEnv()
		assert.Error(t, err)
	})
	t.Run("live provider without key", func(t *testing.T) {
		t.Setenv("FLIGHT_DATA_PROVIDER", "live")
		t.Setenv("FLIGHT_API_KEY", "")
		_, err := FromEnv()
		assert.Error(t, err)
	})
	t.Run("bad rate limit", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_BURST", "many")
		_, err := FromEnv()
		assert.Error(t, err)
	})
	t.Run("unknown db driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "oracle")
		_, err := FromEnv()
		assert.Error(t, err)
	})
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_ADDR=:9999\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("HTTP_ADDR") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.HTTPAddr)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}
