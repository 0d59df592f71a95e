// Package config loads runtime settings from the environment, optionally
// seeded from a .env file, into an explicit Config passed to constructors.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MinSecretLength is the shortest accepted HS256 signing secret, in bytes.
const MinSecretLength = 32

// Config aggregates all runtime settings required by the server.
type Config struct {
	Port         string
	DatabasePath string
	// DatabaseURL selects the Postgres backend when set; SQLite otherwise.
	DatabaseURL string
	LogLevel    slog.Level
	Auth        AuthConfig
	LoginRate   RateConfig
	// Admin, when its username is set, is created at startup if missing.
	Admin AdminConfig
}

// AdminConfig describes the bootstrap Admin account.
type AdminConfig struct {
	Username string
	Email    string
	Password string
}

// AuthConfig holds the credential and token settings.
type AuthConfig struct {
	JWTSecret         string
	Issuer            string
	Audience          string
	ExpirationMinutes int
	BcryptCost        int
}

// TokenExpiration returns the configured token lifetime.
func (a AuthConfig) TokenExpiration() time.Duration {
	return time.Duration(a.ExpirationMinutes) * time.Minute
}

// RateConfig configures the per-client token bucket on auth endpoints.
type RateConfig struct {
	PerSecond float64
	Burst     float64
}

// Load reads configuration from environment variables (optionally .env)
// and applies defaults. The result is validated before it is returned.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getString("PORT", "8080"),
		DatabasePath: getString("DATABASE_PATH", "tankermade.db"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			Issuer:    getString("JWT_ISSUER", "tankermade"),
			Audience:  getString("JWT_AUDIENCE", "tankermade-client"),
		},
		Admin: AdminConfig{
			Username: os.Getenv("ADMIN_USERNAME"),
			Email:    os.Getenv("ADMIN_EMAIL"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
	}

	var err error
	if cfg.LogLevel, err = getLevel("LOG_LEVEL", slog.LevelInfo); err != nil {
		return nil, err
	}
	if cfg.Auth.ExpirationMinutes, err = getInt("JWT_EXPIRATION_MINUTES", 60); err != nil {
		return nil, err
	}
	if cfg.Auth.BcryptCost, err = getInt("BCRYPT_COST", 12); err != nil {
		return nil, err
	}
	if cfg.LoginRate.PerSecond, err = getFloat("LOGIN_RATE_PER_SECOND", 0.2); err != nil {
		return nil, err
	}
	if cfg.LoginRate.Burst, err = getFloat("LOGIN_RATE_BURST", 5); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that have no safe default.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	} else if len(c.Auth.JWTSecret) < MinSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d characters for HMAC-SHA256", MinSecretLength))
	}
	if c.Auth.Issuer == "" {
		errs = append(errs, errors.New("JWT_ISSUER must not be empty"))
	}
	if c.Auth.Audience == "" {
		errs = append(errs, errors.New("JWT_AUDIENCE must not be empty"))
	}
	if c.Auth.ExpirationMinutes <= 0 {
		errs = append(errs, fmt.Errorf("JWT_EXPIRATION_MINUTES must be positive, got %d", c.Auth.ExpirationMinutes))
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 14 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.Auth.BcryptCost))
	}
	if c.LoginRate.PerSecond < 0 || c.LoginRate.Burst < 1 {
		errs = append(errs, errors.New("LOGIN_RATE_PER_SECOND must be >= 0 and LOGIN_RATE_BURST >= 1"))
	}
	if a := c.Admin; a.Username != "" && (a.Email == "" || a.Password == "") {
		errs = append(errs, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD are required with ADMIN_USERNAME"))
	}
	return errors.Join(errs...)
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getLevel(key string, fallback slog.Level) (slog.Level, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(val))); err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return level, nil
}
