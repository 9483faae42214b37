package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the client.
type Config struct {
	App     AppConfig
	Backend BackendConfig
	Logger  LoggerConfig
}

// AppConfig controls application level behavior.
type AppConfig struct {
	Name     string
	Env      string
	Version  string
	StateDir string
}

// BackendConfig selects which backend the client talks to.
type BackendConfig struct {
	// Mode is "local" or "online". Ignored when BaseURL is set explicitly.
	Mode                  string
	BaseURL               string
	LocalURL              string
	OnlineURL             string
	RequestTimeoutSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
	// File receives JSON log records. The TUI owns stdout, so logs never
	// go there. Empty means a default path under StateDir.
	File string
}

// Load reads configuration from environment variables, applying defaults
// where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	stateDir := os.Getenv("EASYBUY_STATE_DIR")
	if stateDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving state directory: %w", err)
		}
		stateDir = filepath.Join(configDir, "easybuy-tracker")
	}

	cfg := &Config{
		App: AppConfig{
			Name:     getEnv("APP_NAME", "easybuy-tracker"),
			Env:      getEnv("APP_ENV", "development"),
			Version:  getEnv("APP_VERSION", "dev"),
			StateDir: stateDir,
		},
		Backend: BackendConfig{
			Mode:                  strings.ToLower(getEnv("EASYBUY_API_MODE", "local")),
			BaseURL:               strings.TrimSpace(os.Getenv("EASYBUY_API_BASE_URL")),
			LocalURL:              getEnv("EASYBUY_API_LOCAL_URL", "http://localhost:552"),
			OnlineURL:             getEnv("EASYBUY_API_ONLINE_URL", "https://easybuytrackerbackend.onrender.com"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", filepath.Join(stateDir, "easybuy.log")),
		},
	}

	return cfg, nil
}

// ResolveBaseURL returns the backend base URL: an explicit override wins,
// otherwise the mode selects between the local and hosted deployments.
func (b BackendConfig) ResolveBaseURL() string {
	if b.BaseURL != "" {
		return b.BaseURL
	}
	if b.Mode == "online" {
		return b.OnlineURL
	}
	return b.LocalURL
}

// RequestTimeout returns the configured per-request timeout duration.
func (b BackendConfig) RequestTimeout() time.Duration {
	if b.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(b.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
