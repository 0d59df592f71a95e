package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/tankermade/internal/config"
)

var testSecret = strings.Repeat("s", config.MinSecretLength)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env file
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "tankermade.db", cfg.DatabasePath)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "tankermade", cfg.Auth.Issuer)
	assert.Equal(t, "tankermade-client", cfg.Auth.Audience)
	assert.Equal(t, 60, cfg.Auth.ExpirationMinutes)
	assert.Equal(t, time.Hour, cfg.Auth.TokenExpiration())
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/tankermade")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("JWT_ISSUER", "issuer-x")
	t.Setenv("JWT_AUDIENCE", "aud-y")
	t.Setenv("JWT_EXPIRATION_MINUTES", "15")
	t.Setenv("BCRYPT_COST", "10")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://localhost/tankermade", cfg.DatabaseURL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "issuer-x", cfg.Auth.Issuer)
	assert.Equal(t, "aud-y", cfg.Auth.Audience)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenExpiration())
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}

func TestLoad_ShortSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "too-short")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
}

func TestLoad_InvalidNumbers(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"non-numeric cost", "BCRYPT_COST", "twelve"},
		{"cost too high", "BCRYPT_COST", "20"},
		{"cost too low", "BCRYPT_COST", "3"},
		{"zero expiration", "JWT_EXPIRATION_MINUTES", "0"},
		{"bad log level", "LOG_LEVEL", "loud"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv("JWT_SECRET", testSecret)
			t.Setenv(tc.key, tc.val)

			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	// godotenv never overrides variables that are already present.
	for _, key := range []string{"JWT_SECRET", "PORT"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	env := "JWT_SECRET=" + testSecret + "\nPORT=7000\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, testSecret, cfg.Auth.JWTSecret)
}

func TestLoad_AdminRequiresEmailAndPassword(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("ADMIN_PASSWORD", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_EMAIL")

	t.Setenv("ADMIN_EMAIL", "root@x.io")
	t.Setenv("ADMIN_PASSWORD", "Secret123")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.AdminConfig{Username: "root", Email: "root@x.io", Password: "Secret123"}, cfg.Admin)
}
