// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// Fields are populated from environment variables.
type Config struct {
	// Server settings
	Port int    // HTTP port to listen on
	Env  string // development, staging, production

	// Database
	DatabasePath string // Path to SQLite file holding calculation history

	// Authentication
	APIKey string // API key for the history endpoints

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text

	// Zodiac
	MinYear       int // First year served from the lunar new year table
	MaxYear       int // Last year served from the lunar new year table
	SignCacheSize int // FIFO capacity of the date -> sign cache
	HistoryMax    int // Entries kept per client
}

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Load reads configuration from environment variables.
// In development, it first loads from .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnvInt("PORT", 8080),
		Env:           getEnv("ENV", EnvDevelopment),
		DatabasePath:  getEnv("DATABASE_PATH", "./data/zodiac.db"),
		APIKey:        getEnv("API_KEY", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		MinYear:       getEnvInt("MIN_YEAR", 1900),
		MaxYear:       getEnvInt("MAX_YEAR", 2100),
		SignCacheSize: getEnvInt("SIGN_CACHE_SIZE", 100),
		HistoryMax:    getEnvInt("HISTORY_MAX", 5),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("ENV must be one of: development, staging, production; got %q", c.Env))
	}

	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH is required"))
	}

	if c.Env == EnvProduction && c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY is required in production"))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.LogLevel))
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, text; got %q", c.LogFormat))
	}

	if c.MinYear > c.MaxYear {
		errs = append(errs, fmt.Errorf("MIN_YEAR (%d) must not be after MAX_YEAR (%d)", c.MinYear, c.MaxYear))
	}

	if c.SignCacheSize < 1 {
		errs = append(errs, fmt.Errorf("SIGN_CACHE_SIZE must be at least 1, got %d", c.SignCacheSize))
	}

	if c.HistoryMax < 1 {
		errs = append(errs, fmt.Errorf("HISTORY_MAX must be at least 1, got %d", c.HistoryMax))
	}

	return errors.Join(errs...)
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// getEnv reads an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an environment variable as an integer with a default fallback.
// Unparseable values fall back to the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
