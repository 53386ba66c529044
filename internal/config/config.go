package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Session  SessionConfig
	CORS     CORSConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type StoreConfig struct {
	CurrencySymbol string
	MenuFile       string // optional YAML menu replacing the house menu
	MaxQuantity    int
}

type SessionConfig struct {
	TTLMinutes    int
	SweepSeconds  int
	SecureCookies bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

// TTL returns the idle lifetime of a shopping session
func (c SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// SweepInterval returns how often expired sessions are evicted
func (c SessionConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepSeconds) * time.Second
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Store: StoreConfig{
			CurrencySymbol: getEnv("CURRENCY_SYMBOL", "$"),
			MenuFile:       getEnv("MENU_FILE", ""),
			MaxQuantity:    getEnvAsInt("MAX_QUANTITY", 10),
		},
		Session: SessionConfig{
			TTLMinutes:    getEnvAsInt("SESSION_TTL", 30),
			SweepSeconds:  getEnvAsInt("SESSION_SWEEP_INTERVAL", 60),
			SecureCookies: getEnvAsBool("SECURE_COOKIES", false),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Store.MaxQuantity < 1 {
		return fmt.Errorf("MAX_QUANTITY must be at least 1, got %d", c.Store.MaxQuantity)
	}

	if c.Session.TTLMinutes < 1 {
		return fmt.Errorf("SESSION_TTL must be at least 1 minute, got %d", c.Session.TTLMinutes)
	}

	if c.Session.SweepSeconds < 1 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be at least 1 second, got %d", c.Session.SweepSeconds)
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one CORS origin must be configured")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
