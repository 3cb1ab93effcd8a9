package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// SettingsBackend selects where durable key/value settings live.
type SettingsBackend string

const (
	SettingsMemory   SettingsBackend = "memory"
	SettingsSQLite   SettingsBackend = "sqlite"
	SettingsRedis    SettingsBackend = "redis"
	SettingsPostgres SettingsBackend = "postgres"
)

// Config is the full runtime configuration, read from the environment.
type Config struct {
	Addr     string `env:"CWA_ADDR" envDefault:"127.0.0.1:8080"`
	LogLevel string `env:"CWA_LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"CWA_LOG_JSON" envDefault:"true"`
	// APITokenSecret enables bearer-token checks on mutating trigger requests.
	APITokenSecret string `env:"CWA_API_TOKEN_SECRET"`

	Settings SettingsConfig `envPrefix:"CWA_SETTINGS_"`
	Redis    RedisConfig    `envPrefix:"CWA_REDIS_"`
	Wallet   WalletConfig   `envPrefix:"CWA_WALLET_"`
	CheckIn  CheckInConfig  `envPrefix:"CWA_CHECKIN_"`
	Polling  PollingConfig  `envPrefix:"CWA_POLLING_"`
}

// SettingsConfig picks and configures the settings backend.
type SettingsConfig struct {
	Backend     SettingsBackend `env:"BACKEND" envDefault:"sqlite"`
	SQLitePath  string          `env:"SQLITE_PATH" envDefault:"data/settings.db"`
	PostgresDSN string          `env:"POSTGRES_DSN"`
}

// RedisConfig mirrors the go-redis pool options we override.
type RedisConfig struct {
	URL          string        `env:"URL"`
	PoolSize     int           `env:"POOL_SIZE" envDefault:"4"`
	MinIdleConns int           `env:"MIN_IDLE_CONNS" envDefault:"1"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"3s"`
}

// WalletConfig tunes wallet evaluation.
type WalletConfig struct {
	// Language picks rule description texts; falls back to "en".
	Language string `env:"LANGUAGE" envDefault:"de"`
	// Parallelism bounds concurrent per-person recomputation.
	Parallelism int `env:"PARALLELISM" envDefault:"4"`
}

// CheckInConfig tunes the check-in view.
type CheckInConfig struct {
	Tick time.Duration `env:"TICK" envDefault:"1s"`
}

// PollingConfig holds the test result polling limits.
type PollingConfig struct {
	// RetryThreshold is the highest run attempt count still allowed to fetch.
	RetryThreshold int `env:"RETRY_THRESHOLD" envDefault:"2"`
	// MaxDays bounds how long after registration polling continues.
	MaxDays int `env:"MAX_DAYS" envDefault:"21"`
	// Interval is the periodic cadence of the polling job.
	Interval time.Duration `env:"INTERVAL" envDefault:"2h"`
	// BackoffInitial is the first retry delay after a transient failure.
	BackoffInitial time.Duration `env:"BACKOFF_INITIAL" envDefault:"30s"`
	BackoffMax     time.Duration `env:"BACKOFF_MAX" envDefault:"10m"`
	// VerificationServerURL is the base URL of the test result endpoint.
	VerificationServerURL string        `env:"VERIFICATION_SERVER_URL" envDefault:"https://verification.coronawarn.app"`
	RequestTimeout        time.Duration `env:"REQUEST_TIMEOUT" envDefault:"20s"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects combinations that cannot start.
func (c Config) Validate() error {
	switch c.Settings.Backend {
	case SettingsMemory, SettingsSQLite:
	case SettingsRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("redis settings backend requires CWA_REDIS_URL")
		}
	case SettingsPostgres:
		if c.Settings.PostgresDSN == "" {
			return fmt.Errorf("postgres settings backend requires CWA_SETTINGS_POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unknown settings backend %q", c.Settings.Backend)
	}
	if c.APITokenSecret != "" && len(c.APITokenSecret) < 32 {
		return fmt.Errorf("CWA_API_TOKEN_SECRET must be at least 32 bytes")
	}
	if c.Polling.RetryThreshold < 0 {
		return fmt.Errorf("polling retry threshold must not be negative")
	}
	if c.Polling.MaxDays <= 0 {
		return fmt.Errorf("polling max days must be positive")
	}
	if c.Polling.Interval <= 0 || c.CheckIn.Tick <= 0 {
		return fmt.Errorf("polling interval and check-in tick must be positive")
	}
	return nil
}
