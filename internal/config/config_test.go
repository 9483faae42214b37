package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBaseURLPrefersExplicitOverride(t *testing.T) {
	backend := BackendConfig{
		Mode:      "online",
		BaseURL:   "http://override.test",
		LocalURL:  "http://localhost:552",
		OnlineURL: "https://hosted.test",
	}
	assert.Equal(t, "http://override.test", backend.ResolveBaseURL())
}

func TestResolveBaseURLByMode(t *testing.T) {
	backend := BackendConfig{
		Mode:      "local",
		LocalURL:  "http://localhost:552",
		OnlineURL: "https://hosted.test",
	}
	assert.Equal(t, "http://localhost:552", backend.ResolveBaseURL())

	backend.Mode = "online"
	assert.Equal(t, "https://hosted.test", backend.ResolveBaseURL())

	// Anything unrecognized falls back to local.
	backend.Mode = "staging"
	assert.Equal(t, "http://localhost:552", backend.ResolveBaseURL())
}

func TestRequestTimeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, BackendConfig{RequestTimeoutSeconds: 30}.RequestTimeout())
	assert.Equal(t, time.Duration(0), BackendConfig{RequestTimeoutSeconds: 0}.RequestTimeout())
	assert.Equal(t, time.Duration(0), BackendConfig{RequestTimeoutSeconds: -5}.RequestTimeout())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("EASYBUY_STATE_DIR", t.TempDir())
	t.Setenv("EASYBUY_API_MODE", "")
	t.Setenv("EASYBUY_API_BASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Backend.Mode)
	assert.Equal(t, "http://localhost:552", cfg.Backend.LocalURL)
	assert.Equal(t, "https://easybuytrackerbackend.onrender.com", cfg.Backend.OnlineURL)
	assert.Equal(t, 30, cfg.Backend.RequestTimeoutSeconds)
	assert.NotEmpty(t, cfg.Logger.File)
}

func TestLoadModeOverride(t *testing.T) {
	t.Setenv("EASYBUY_STATE_DIR", t.TempDir())
	t.Setenv("EASYBUY_API_MODE", "ONLINE")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "online", cfg.Backend.Mode)
	assert.Equal(t, cfg.Backend.OnlineURL, cfg.Backend.ResolveBaseURL())
}
