package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Backend  BackendConfig  `yaml:"backend"`
	Session  SessionConfig  `yaml:"session"`
	WhatsApp WhatsAppConfig `yaml:"whatsapp"`
	Push     PushConfig     `yaml:"push"`
	Watcher  WatcherConfig  `yaml:"watcher"`
	Database DatabaseConfig `yaml:"database"`
}

// ServerConfig holds the facade server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// BackendConfig points at the external rental backend API.
type BackendConfig struct {
	BaseURL        string        `yaml:"base_url"`
	TimeoutSeconds int           `yaml:"timeout_seconds"`
	Timeout        time.Duration `yaml:"-"` // Ignored by YAML parser
	RatePerSec     float64       `yaml:"rate_per_sec"`
	RateBurst      int           `yaml:"rate_burst"`
}

// SessionConfig holds the credential storage locations.
type SessionConfig struct {
	PrimaryPath  string        `yaml:"primary_path"`
	FallbackPath string        `yaml:"fallback_path"`
	TTLDays      int           `yaml:"ttl_days"`
	TTL          time.Duration `yaml:"-"`
}

// WhatsAppConfig holds the session polling schedule.
type WhatsAppConfig struct {
	PollIntervalSeconds int           `yaml:"poll_interval_seconds"`
	PollInterval        time.Duration `yaml:"-"`
	PollAttempts        int           `yaml:"poll_attempts"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
	PoolSize   int    `yaml:"pool_size"`
}

// WatcherConfig drives the background check for overdue rentals and a
// dropped messaging session.
type WatcherConfig struct {
	Enabled         bool          `yaml:"enabled"`
	IntervalSeconds int           `yaml:"interval_seconds"`
	Interval        time.Duration `yaml:"-"`
}

// DatabaseConfig holds the push-subscription database connection. A DSN
// ending in .db (or carrying the :memory: marker) selects SQLite,
// anything else is treated as a Postgres DSN.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// Load reads the configuration from the given path. A couple of
// environment variables override their file counterparts so deployments
// can keep secrets out of the file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if v := os.Getenv("BACKEND_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8090
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 5
	}

	if cfg.Backend.TimeoutSeconds <= 0 {
		cfg.Backend.TimeoutSeconds = 30
	}
	cfg.Backend.Timeout = time.Duration(cfg.Backend.TimeoutSeconds) * time.Second

	if cfg.Session.PrimaryPath == "" {
		cfg.Session.PrimaryPath = "./data/session.json"
	}
	if cfg.Session.FallbackPath == "" {
		cfg.Session.FallbackPath = "./data/session.local.json"
	}
	if cfg.Session.TTLDays <= 0 {
		cfg.Session.TTLDays = 7
	}
	cfg.Session.TTL = time.Duration(cfg.Session.TTLDays) * 24 * time.Hour

	if cfg.WhatsApp.PollIntervalSeconds <= 0 {
		cfg.WhatsApp.PollIntervalSeconds = 2
	}
	cfg.WhatsApp.PollInterval = time.Duration(cfg.WhatsApp.PollIntervalSeconds) * time.Second
	if cfg.WhatsApp.PollAttempts <= 0 {
		cfg.WhatsApp.PollAttempts = 5
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}
	if cfg.Push.PoolSize <= 0 {
		log.Printf("push.pool_size is not set or invalid; defaulting to 1")
		cfg.Push.PoolSize = 1
	}

	if cfg.Watcher.IntervalSeconds <= 0 {
		cfg.Watcher.IntervalSeconds = 60
	}
	cfg.Watcher.Interval = time.Duration(cfg.Watcher.IntervalSeconds) * time.Second

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "./data/dashboard.db"
	}

	return &cfg, nil
}
