package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds process settings read from the environment.
type Config struct {
	DatabaseURL      string
	AppPort          string
	RedisAddr        string
	RedisPassword    string
	JWTSecret        string
	LogLevel         string
	DefaultThreshold int
	// AdminEmail and AdminPassword seed the first staff account when both are set.
	AdminEmail    string
	AdminPassword string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logg.Warn("could not load .env file, relying on system environment variables")
	}
	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		AppPort:          getEnv("APP_PORT", "8080"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DefaultThreshold: 10,
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
	}
	if v, err := strconv.Atoi(os.Getenv("DEFAULT_LOW_STOCK_THRESHOLD")); err == nil && v > 0 {
		cfg.DefaultThreshold = v
	}
	return cfg
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
