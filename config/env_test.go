package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"JUKEBOX_PUBLIC_DIR", "JUKEBOX_AUDIO_DIR", "CORS_ORIGINS", "GIN_MODE",
		"JUKEBOX_SCAN_WORKERS", "JUKEBOX_WATCH_INTERVAL", "JUKEBOX_SHUTDOWN_TIMEOUT",
	} {
		if v, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { os.Setenv(k, v) })
		}
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "public", cfg.PublicDir)
	assert.Equal(t, "audio", cfg.AudioDir)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, 8, cfg.ScanWorkers)
	assert.Equal(t, 5*time.Second, cfg.WatchInterval)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("JUKEBOX_PUBLIC_DIR", "/srv/www")
	t.Setenv("JUKEBOX_AUDIO_DIR", "/srv/music")
	t.Setenv("CORS_ORIGINS", "http://a.example,http://b.example")
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("JUKEBOX_SCAN_WORKERS", "2")
	t.Setenv("JUKEBOX_WATCH_INTERVAL", "0s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/www", cfg.PublicDir)
	assert.Equal(t, "/srv/music", cfg.AudioDir)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, 2, cfg.ScanWorkers)
	assert.Equal(t, time.Duration(0), cfg.WatchInterval)
}

func TestLoadClampsWorkers(t *testing.T) {
	clearEnv(t)
	t.Setenv("JUKEBOX_SCAN_WORKERS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.ScanWorkers)
}

func TestLoadRejectsUnknownGinMode(t *testing.T) {
	clearEnv(t)
	t.Setenv("GIN_MODE", "production")

	_, err := Load()
	assert.Error(t, err)
}
