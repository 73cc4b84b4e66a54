package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap/zapcore"
)

// Store drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

const (
	defaultGRPCAddr   = ":8080"
	defaultAPIToken   = "dev-token"
	defaultCloseDelay = 250 * time.Millisecond
	defaultIdleTTL    = 30 * time.Minute
	defaultSweep      = "@every 1m"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds everything the server needs at startup
type Config struct {
	GRPCAddr             string
	APIToken             string
	StoreDriver          string
	DBConnStr            string
	Currency             string
	Locale               string
	CloseDelay           time.Duration
	AllowDuplicateOnEdit bool
	LogLevel             zapcore.Level
	SessionIdleTimeout   time.Duration
	SessionSweepSchedule string
}

// CurrencySettings implements money.CurrencyProvider
func (c Config) CurrencySettings() (string, string) {
	return c.Currency, c.Locale
}

// Load reads an optional .env file followed by the process environment.
// Variables already set in the environment win over the file.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := &Config{
		GRPCAddr:    env("GRPC_ADDR", defaultGRPCAddr),
		APIToken:    env("API_TOKEN", defaultAPIToken),
		StoreDriver: env("STORE_DRIVER", DriverMemory),
		DBConnStr:   os.Getenv("DB_CONN_STR"),
		Currency:    env("CURRENCY", "USD"),
		Locale:      env("LOCALE", "en-US"),
	}

	switch cfg.StoreDriver {
	case DriverMemory, DriverPostgres, DriverPgx:
	default:
		return nil, fmt.Errorf("%w: STORE_DRIVER %q", ErrInvalidConfig, cfg.StoreDriver)
	}

	if cfg.DBConnStr == "" {
		// If explicit string is missing, build it from individual vars (Docker friendly)
		cfg.DBConnStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			env("DB_HOST", "localhost"),
			env("DB_PORT", "5432"),
			env("DB_USER", "postgres"),
			env("DB_PASSWORD", "postgres"),
			env("DB_NAME", "smartlog"),
		)
	}

	delay, err := time.ParseDuration(env("CLOSE_DELAY", defaultCloseDelay.String()))
	if err != nil || delay < 0 {
		return nil, fmt.Errorf("%w: CLOSE_DELAY %q", ErrInvalidConfig, os.Getenv("CLOSE_DELAY"))
	}
	cfg.CloseDelay = delay

	allow, err := strconv.ParseBool(env("ALLOW_DUPLICATE_ON_EDIT", "false"))
	if err != nil {
		return nil, fmt.Errorf("%w: ALLOW_DUPLICATE_ON_EDIT %q", ErrInvalidConfig, os.Getenv("ALLOW_DUPLICATE_ON_EDIT"))
	}
	cfg.AllowDuplicateOnEdit = allow

	idle, err := time.ParseDuration(env("SESSION_IDLE_TIMEOUT", defaultIdleTTL.String()))
	if err != nil || idle <= 0 {
		return nil, fmt.Errorf("%w: SESSION_IDLE_TIMEOUT %q", ErrInvalidConfig, os.Getenv("SESSION_IDLE_TIMEOUT"))
	}
	cfg.SessionIdleTimeout = idle

	cfg.SessionSweepSchedule = env("SESSION_SWEEP_SCHEDULE", defaultSweep)
	if _, err := cron.ParseStandard(cfg.SessionSweepSchedule); err != nil {
		return nil, fmt.Errorf("%w: SESSION_SWEEP_SCHEDULE: %v", ErrInvalidConfig, err)
	}

	level, err := zapcore.ParseLevel(env("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("%w: LOG_LEVEL: %v", ErrInvalidConfig, err)
	}
	cfg.LogLevel = level

	return cfg, nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
