package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"tablescope/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Limits LimitsConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// LimitsConfig holds upload and parsing guard rails
type LimitsConfig struct {
	MaxFileSize  int64
	PreviewRows  int
	ParseTimeout time.Duration
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: loadServerConfig(),
		Limits: loadLimitsConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	origins := strings.Split(getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:5173"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return ServerConfig{
		Port:           getEnvOrDefault("PORT", "8080"),
		AllowedOrigins: origins,
	}
}

func loadLimitsConfig() LimitsConfig {
	return LimitsConfig{
		MaxFileSize:  getEnvInt64OrDefault("MAX_FILE_SIZE", 10*1024*1024), // 10MB
		PreviewRows:  getEnvIntOrDefault("PREVIEW_ROWS", 20),
		ParseTimeout: getEnvDurationOrDefault("PARSE_TIMEOUT", 10*time.Second),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
	}
	if config.Limits.MaxFileSize <= 0 {
		return errors.ConfigInvalid("MAX_FILE_SIZE must be positive")
	}
	if config.Limits.PreviewRows <= 0 {
		return errors.ConfigInvalid("PREVIEW_ROWS must be positive")
	}
	if config.Limits.ParseTimeout <= 0 {
		return errors.ConfigInvalid("PARSE_TIMEOUT must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
