package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

var configKeys = []string{
	"GRPC_ADDR", "API_TOKEN", "STORE_DRIVER", "DB_CONN_STR",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"CURRENCY", "LOCALE", "CLOSE_DELAY", "ALLOW_DUPLICATE_ON_EDIT", "LOG_LEVEL",
	"SESSION_IDLE_TIMEOUT", "SESSION_SWEEP_SCHEDULE",
}

// clearEnv blanks every key so defaults apply; t.Setenv restores them afterwards
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.GRPCAddr)
	assert.Equal(t, "dev-token", cfg.APIToken)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=smartlog sslmode=disable", cfg.DBConnStr)
	assert.Equal(t, 250*time.Millisecond, cfg.CloseDelay)
	assert.False(t, cfg.AllowDuplicateOnEdit)
	assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, "@every 1m", cfg.SessionSweepSchedule)

	code, locale := cfg.CurrencySettings()
	assert.Equal(t, "USD", code)
	assert.Equal(t, "en-US", locale)
}

func TestLoad_FromEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STORE_DRIVER=pgx\nCURRENCY=EUR\nLOCALE=de-DE\n"), 0o600))
	t.Setenv("CURRENCY", "GBP")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, DriverPgx, cfg.StoreDriver)
	assert.Equal(t, "GBP", cfg.Currency)
	assert.Equal(t, "de-DE", cfg.Locale)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_CONN_STR", "postgres://u:p@db/smartlog")
	t.Setenv("CLOSE_DELAY", "1s")
	t.Setenv("ALLOW_DUPLICATE_ON_EDIT", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db/smartlog", cfg.DBConnStr)
	assert.Equal(t, time.Second, cfg.CloseDelay)
	assert.True(t, cfg.AllowDuplicateOnEdit)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "Unknown store driver", key: "STORE_DRIVER", value: "redis"},
		{name: "Unparseable close delay", key: "CLOSE_DELAY", value: "soon"},
		{name: "Negative close delay", key: "CLOSE_DELAY", value: "-1s"},
		{name: "Non-boolean duplicate flag", key: "ALLOW_DUPLICATE_ON_EDIT", value: "maybe"},
		{name: "Unknown log level", key: "LOG_LEVEL", value: "loud"},
		{name: "Zero idle timeout", key: "SESSION_IDLE_TIMEOUT", value: "0s"},
		{name: "Malformed sweep schedule", key: "SESSION_SWEEP_SCHEDULE", value: "every minute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))

			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
