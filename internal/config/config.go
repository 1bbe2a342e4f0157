// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration.
type Config struct {
	// HTTP
	Port string

	// Database
	DatabaseURL string

	// Logging
	LogLevel    string
	Development bool

	// Auth
	JWTSecret      string
	AccessTokenTTL time.Duration

	// TimeZone is the business calendar zone used to resolve "today"
	// when a caller does not supply an explicit date.
	TimeZone string
}

// Load reads configuration from the environment.
// A .env file is honored for local development; missing files are ignored.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("APP_PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Development:    getEnv("APP_ENV", "development") == "development",
		JWTSecret:      getEnv("JWT_SECRET", ""),
		AccessTokenTTL: getEnvDuration("ACCESS_TOKEN_TTL", 12*time.Hour),
		TimeZone:       getEnv("APP_TIMEZONE", "America/Sao_Paulo"),
	}
}

// Validate checks that required settings are present and coherent.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return nil
}

// Location resolves the configured business time zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
