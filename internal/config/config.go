package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/go-multierror"
)

// Config holds all configuration for the application
type Config struct {
	Port         string
	LogLevel     string
	DatabasePath string
	GeminiAPIKey string
	GeminiModel  string
}

// Load loads configuration from environment variables. Every setting has a
// default; GEMINI_API_KEY may be empty, in which case the elf client answers
// with its fallback text instead of calling the API.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnvOrDefault("PORT", "8080"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		DatabasePath: getEnvOrDefault("DATABASE_PATH", "data/santa.db"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
	}

	var result error
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		result = multierror.Append(result, fmt.Errorf("PORT must be an integer, got %q", cfg.Port))
	}
	if cfg.DatabasePath == "" {
		result = multierror.Append(result, fmt.Errorf("DATABASE_PATH must not be empty"))
	}
	if cfg.GeminiModel == "" {
		result = multierror.Append(result, fmt.Errorf("GEMINI_MODEL must not be empty"))
	}
	if result != nil {
		return nil, result
	}

	return cfg, nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
