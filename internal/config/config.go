package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for our application
type Config struct {
	Port             string
	Origin           string
	Environment      string
	Database         DatabaseConfig
	RemindersEnabled bool
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Path string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	dbConfig := DatabaseConfig{
		Path: getEnv("DB_PATH", "data/medications.db"),
	}

	remindersEnabled, err := strconv.ParseBool(getEnv("REMINDERS_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDERS_ENABLED: %w", err)
	}

	return &Config{
		Port:             getEnv("PORT", "3001"),
		Origin:           getEnv("ORIGIN", "http://localhost:4200"),
		Environment:      getEnv("APP_ENV", "development"),
		Database:         dbConfig,
		RemindersEnabled: remindersEnabled,
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
