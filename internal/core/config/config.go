package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/aevon-lab/timesheet/internal/core/worktime"
	"github.com/aevon-lab/timesheet/internal/logger"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides: TIMESHEET_SERVER__PORT=9090 sets server.port.
const EnvPrefix = "TIMESHEET_"

// DefaultTimezone is used when timesheet.timezone is not set.
const DefaultTimezone = "Europe/Stockholm"

// Config represents the top-level application config.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Database    DatabaseConfig    `koanf:"database"`
	Timesheet   TimesheetConfig   `koanf:"timesheet"`
	Aggregation AggregationConfig `koanf:"aggregation"`
	Log         LogConfig         `koanf:"log"`
	Metrics     MetricsConfig     `koanf:"metrics"`

	// basis is resolved from Timesheet.Timezone by Validate.
	basis worktime.Basis
}

type ServerConfig struct {
	Port          int    `koanf:"port"`
	Host          string `koanf:"host"`
	MaxBodySizeMB int    `koanf:"max_body_size_mb"`
	Mode          string `koanf:"mode"` // debug | release
}

type DatabaseConfig struct {
	Type         string `koanf:"type"`
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

// TimesheetConfig holds the calendar settings of the engine.
type TimesheetConfig struct {
	Timezone string `koanf:"timezone"` // IANA name; day and month boundaries are local to it
}

type AggregationConfig struct {
	Enabled      bool   `koanf:"enabled"`
	CronInterval string `koanf:"cron_interval"` // parsed and validated on startup
	BatchSize    int    `koanf:"batch_size"`
	WorkerCount  int    `koanf:"worker_count"`
	SettleDelay  string `koanf:"settle_delay"` // how long a new interval waits before the rollup cursor may pass it
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug | info | warn | error
	Format string `koanf:"format"` // text | json
}

type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// Interval returns the parsed cron interval. Only meaningful after Validate.
func (c AggregationConfig) Interval() time.Duration {
	d, _ := time.ParseDuration(c.CronInterval)
	return d
}

// Settle returns the parsed settle delay. Only meaningful after Validate.
func (c AggregationConfig) Settle() time.Duration {
	d, _ := time.ParseDuration(c.SettleDelay)
	return d
}

// Basis returns the engine's time basis. Only meaningful after Validate.
func (c *Config) Basis() worktime.Basis {
	return c.basis
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be > 0")
	}
	if c.Database.MaxIdleConns <= 0 {
		return fmt.Errorf("database.max_idle_conns must be > 0")
	}
	if c.Database.Type != "" && c.Database.Type != "postgres" {
		return fmt.Errorf("unsupported database.type %q", c.Database.Type)
	}

	basis, err := worktime.NewBasis(c.Timesheet.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timesheet.timezone: %w", err)
	}
	c.basis = basis

	interval, err := time.ParseDuration(c.Aggregation.CronInterval)
	if err != nil {
		return fmt.Errorf("invalid aggregation cron interval %q: %w", c.Aggregation.CronInterval, err)
	}
	if interval <= 0 {
		return fmt.Errorf("aggregation cron interval must be > 0")
	}
	if c.Aggregation.BatchSize <= 0 {
		return fmt.Errorf("aggregation.batch_size must be > 0")
	}
	if c.Aggregation.WorkerCount <= 0 {
		return fmt.Errorf("aggregation.worker_count must be > 0")
	}
	settle, err := time.ParseDuration(c.Aggregation.SettleDelay)
	if err != nil {
		return fmt.Errorf("invalid aggregation settle delay %q: %w", c.Aggregation.SettleDelay, err)
	}
	if settle < 0 {
		return fmt.Errorf("aggregation settle delay must be >= 0")
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level: %w", err)
	}
	if c.Log.Format != logger.FormatText && c.Log.Format != logger.FormatJSON {
		return fmt.Errorf("invalid log.format %q (must be text or json)", c.Log.Format)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with /")
	}

	return nil
}

// Load reads defaults, then the optional YAML file, then TIMESHEET_ env vars, and validates.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":               8080,
		"server.host":               "0.0.0.0",
		"server.max_body_size_mb":   1,
		"server.mode":               "release",
		"database.type":             "postgres",
		"database.dsn":              "postgres://localhost:5432/timesheet?sslmode=disable",
		"database.max_open_conns":   25,
		"database.max_idle_conns":   25,
		"database.auto_migrate":     true,
		"timesheet.timezone":        DefaultTimezone,
		"aggregation.enabled":       true,
		"aggregation.cron_interval": "2m",
		"aggregation.batch_size":    5000,
		"aggregation.worker_count":  10,
		"aggregation.settle_delay":  "30s",
		"log.level":                 "info",
		"log.format":                logger.FormatText,
		"metrics.enabled":           true,
		"metrics.path":              "/metrics",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
