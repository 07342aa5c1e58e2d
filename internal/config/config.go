package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds everything the binaries read from the environment.
type AppConfig struct {
	Port string

	// Cache of raw reports served by the relay.
	CacheDir string
	CacheTTL time.Duration

	// Upstream fetch behaviour. Empty base URL and user agent fall back to
	// the aviationweather.gov defaults.
	FetchTimeout    time.Duration
	UpstreamBaseURL string
	UserAgent       string

	// Status board publishing.
	StatusPath            string
	StatusState           string
	StatusRefreshInterval time.Duration
	StatusRefreshEnabled  bool
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.CacheDir = getenvDefault("METAR_CACHE_DIR", "data/metar")

	ttl, err := getenvDuration("METAR_CACHE_TTL", "60s")
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL = ttl

	timeout, err := getenvDuration("FETCH_TIMEOUT", "8s")
	if err != nil {
		return nil, err
	}
	cfg.FetchTimeout = timeout

	cfg.UpstreamBaseURL = os.Getenv("UPSTREAM_BASE_URL")
	cfg.UserAgent = os.Getenv("USER_AGENT")

	cfg.StatusPath = getenvDefault("STATUS_PATH", "docs/status.json")
	cfg.StatusState = getenvDefault("STATUS_STATE", "PA")

	interval, err := getenvDuration("STATUS_REFRESH_INTERVAL", "5m")
	if err != nil {
		return nil, err
	}
	cfg.StatusRefreshInterval = interval
	cfg.StatusRefreshEnabled = getenvBool("STATUS_REFRESH_ENABLED", false)

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
