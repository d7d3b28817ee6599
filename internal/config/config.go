// Package config loads the campaignlens runtime configuration from the
// environment, an optional .env file and an optional YAML platform catalog.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the resolved runtime configuration.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration

	// DailyQuota is the per-user daily request limit; zero disables it.
	DailyQuota int
	// RedisAddr selects the shared Redis quota gate; empty means in-memory.
	RedisAddr string

	// CacheTTL of zero disables the response cache.
	CacheTTL  time.Duration
	CacheSize int

	CatalogPath string
	Platforms   []string

	LogLevel slog.Level
}

// Load reads envFiles (".env" when none are given) without overriding
// variables that are already set, then builds and validates a Config.
// Missing env files are ignored.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", file, err)
		}
	}

	c := &Config{
		APIKey:      getEnv("OPENAI_API_KEY", ""),
		BaseURL:     strings.TrimRight(getEnv("OPENAI_API_BASE_URL", "https://api.openai.com/v1"), "/"),
		Model:       getEnv("CAMPAIGNLENS_MODEL", "gpt-4o-mini"),
		Timeout:     getDuration("CAMPAIGNLENS_TIMEOUT", "60s"),
		DailyQuota:  getInt("CAMPAIGNLENS_DAILY_QUOTA", 20),
		RedisAddr:   getEnv("CAMPAIGNLENS_REDIS_ADDR", ""),
		CacheTTL:    getDuration("CAMPAIGNLENS_CACHE_TTL", "10m"),
		CacheSize:   getInt("CAMPAIGNLENS_CACHE_SIZE", 256),
		CatalogPath: getEnv("CAMPAIGNLENS_CATALOG", ""),
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	c.LogLevel = level

	if c.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY must be set")
	}
	if c.Model == "" {
		return nil, fmt.Errorf("CAMPAIGNLENS_MODEL cannot be empty")
	}
	if c.Timeout <= 0 {
		return nil, fmt.Errorf("CAMPAIGNLENS_TIMEOUT must be positive")
	}
	if c.DailyQuota < 0 {
		return nil, fmt.Errorf("CAMPAIGNLENS_DAILY_QUOTA cannot be negative")
	}
	if c.CacheTTL < 0 {
		return nil, fmt.Errorf("CAMPAIGNLENS_CACHE_TTL cannot be negative")
	}
	if c.CacheTTL > 0 && c.CacheSize <= 0 {
		return nil, fmt.Errorf("CAMPAIGNLENS_CACHE_SIZE must be positive when the cache is enabled")
	}

	if c.CatalogPath != "" {
		catalog, err := LoadCatalog(c.CatalogPath)
		if err != nil {
			return nil, err
		}
		c.Platforms = catalog.Platforms
	}

	return c, nil
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL %q must be one of debug, info, warn, error", raw)
	}
	return level, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}
