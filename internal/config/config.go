package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// HTTP Server Configuration
	HTTPPort int `yaml:"http_port"`

	// Database Configuration. A postgres:// DSN selects the Postgres
	// driver; anything else is a SQLite file path.
	DatabaseURL string `yaml:"database_url"`

	// CORS Configuration. Empty means all origins are allowed.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// Rate limiting for the tool-call endpoint
	ToolRatePerSecond float64 `yaml:"tool_rate_per_second"`
	ToolBurst         int     `yaml:"tool_burst"`
}

// Load reads configuration from an optional YAML file (ALERTD_CONFIG)
// and environment variables. Environment variables win over the file.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:          8000,
		DatabaseURL:       "credentialwatch.db",
		ToolRatePerSecond: 20,
		ToolBurst:         40,
	}

	if path := os.Getenv("ALERTD_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.HTTPPort = getEnvAsIntOrDefault("HTTP_PORT", cfg.HTTPPort)
	cfg.DatabaseURL = getEnvOrDefault("DATABASE_URL", cfg.DatabaseURL)

	// DB_FILE_PATH is honored for compatibility with older deployments
	// that configured only a SQLite file location.
	if os.Getenv("DATABASE_URL") == "" {
		if p := os.Getenv("DB_FILE_PATH"); p != "" {
			cfg.DatabaseURL = p
		}
	}

	return cfg, nil
}

// getEnvOrDefault returns the value of an environment variable or a
// default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the value of an environment variable as
// an integer or a default value
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
