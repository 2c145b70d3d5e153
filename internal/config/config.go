// Package config handles loading and validating configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Delta policy names accepted by FLIP_DELTA_POLICY.
const (
	DeltaPolicyAny  = "any"
	DeltaPolicyBoth = "both"
)

// Config holds all configuration values for the flip scanner.
type Config struct {
	// Marketplace API
	HypixelBaseURL string
	HypixelAPIKey  string

	// Price data API
	CoflnetBaseURL string

	// Item reference dataset
	CatalogPath string

	// Pricing decision
	ProfitThreshold float64
	TrimFraction    float64
	PriceWindow     string
	DeltaPolicy     string
	MinDayVolume    float64
	MinDayVolumeAvg float64
	SoldPageSize    int

	// Polling shell
	CycleBudget    time.Duration
	WorkerCount    int
	RequestTimeout time.Duration

	// Notification feed
	FeedListenAddr string

	// UI
	EnableTUI     bool
	UIRefreshRate time.Duration

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables with fallback to .env file.
// Priority order: Environment variables > .env file > hardcoded defaults
func Load() (*Config, error) {
	// Attempt to load .env file (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		// APIs
		HypixelBaseURL: getEnv("HYPIXEL_BASE_URL", "https://api.hypixel.net/v2"),
		HypixelAPIKey:  getEnv("HYPIXEL_API_KEY", ""),
		CoflnetBaseURL: getEnv("COFLNET_BASE_URL", "https://sky.coflnet.com"),

		// Reference dataset
		CatalogPath: getEnv("CATALOG_PATH", "./data/items.json"),

		// Pricing decision
		ProfitThreshold: getEnvFloat("PROFIT_THRESHOLD", 300000),
		TrimFraction:    getEnvFloat("TRIM_FRACTION", 0.4),
		PriceWindow:     getEnv("PRICE_WINDOW", "week"),
		DeltaPolicy:     getEnv("FLIP_DELTA_POLICY", DeltaPolicyAny),
		MinDayVolume:    getEnvFloat("MIN_DAY_VOLUME", 500),
		MinDayVolumeAvg: getEnvFloat("MIN_DAY_VOLUME_AVG", 5),
		SoldPageSize:    getEnvInt("SOLD_PAGE_SIZE", 100),

		// Polling shell
		CycleBudget:    time.Duration(getEnvInt("CYCLE_BUDGET_SECONDS", 70)) * time.Second,
		WorkerCount:    getEnvInt("WORKER_COUNT", 4),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 10)) * time.Second,

		// Notification feed (empty disables the websocket sink)
		FeedListenAddr: getEnv("FEED_LISTEN_ADDR", ""),

		// UI
		EnableTUI:     getEnvBool("ENABLE_TUI", true),
		UIRefreshRate: time.Duration(getEnvInt("UI_REFRESH_MS", 500)) * time.Millisecond,

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "INFO"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set and valid.
func (c *Config) Validate() error {
	if c.HypixelAPIKey == "" {
		return fmt.Errorf("HYPIXEL_API_KEY is required")
	}

	if c.ProfitThreshold <= 0 {
		return fmt.Errorf("PROFIT_THRESHOLD must be positive")
	}

	if c.TrimFraction < 0 || c.TrimFraction >= 0.5 {
		return fmt.Errorf("TRIM_FRACTION must be in [0, 0.5)")
	}

	if c.DeltaPolicy != DeltaPolicyAny && c.DeltaPolicy != DeltaPolicyBoth {
		return fmt.Errorf("FLIP_DELTA_POLICY must be %q or %q", DeltaPolicyAny, DeltaPolicyBoth)
	}

	if c.WorkerCount < 1 {
		return fmt.Errorf("WORKER_COUNT must be at least 1")
	}

	if c.CycleBudget <= 0 {
		return fmt.Errorf("CYCLE_BUDGET_SECONDS must be positive")
	}

	if c.SoldPageSize < 1 {
		return fmt.Errorf("SOLD_PAGE_SIZE must be at least 1")
	}

	return nil
}

// MaskedAPIKey returns the marketplace API key with most characters hidden for logging.
func (c *Config) MaskedAPIKey() string {
	return maskSecret(c.HypixelAPIKey)
}

// maskSecret hides all but the first and last 4 characters of a secret.
func maskSecret(s string) string {
	if len(s) <= 8 {
		if len(s) == 0 {
			return "(not set)"
		}
		return "****"
	}
	return s[:4] + "****" + s[len(s)-4:]
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as an integer or returns a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat retrieves an environment variable as a float64 or returns a default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

// getEnvBool retrieves an environment variable as a boolean or returns a default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
