// Package config loads the pillars runtime configuration from PILLARS_*
// environment variables, optionally seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/katalvlaran/pillars/internal/logging"
	"github.com/katalvlaran/pillars/sched"
)

// Prefix is the environment variable prefix.
const Prefix = "PILLARS"

// Config validation errors
var (
	ErrInvalidWorkers   = errors.New("workers must be >= 0")
	ErrInvalidMode      = errors.New("mode must be 'serial' or 'parallel'")
	ErrInvalidK         = errors.New("k must be >= 0")
	ErrInvalidTolerance = errors.New("tolerance must be a finite number")
	ErrInvalidLogFormat = errors.New("log_format must be 'json' or 'console'")
	ErrInvalidLogLevel  = errors.New("log_level must be debug, info, warn, or error")
)

// Config holds the runtime settings shared by the CLI and its callers.
type Config struct {
	Workers     int     `envconfig:"WORKERS" default:"0"` // 0 means one per CPU
	Mode        string  `envconfig:"MODE" default:"parallel"`
	K           int     `envconfig:"K" default:"10"`
	Tolerance   float64 `envconfig:"TOLERANCE" default:"-1"` // negative means no tolerance filter
	LogLevel    string  `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string  `envconfig:"LOG_FORMAT" default:"json"`
	MetricsAddr string  `envconfig:"METRICS_ADDR" default:""` // empty disables the metrics server
}

// Load is Read followed by Validate.
func Load(envFiles ...string) (Config, error) {
	cfg, err := Read(envFiles...)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Read loads envFiles (missing files are an error) into the process
// environment without overriding variables that are already set, then
// decodes the PILLARS_* variables. Values are parsed but not validated, so a
// caller can apply overrides before calling Validate.
func Read(envFiles ...string) (Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return Config{}, fmt.Errorf("config: load env files: %w", err)
		}
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Validate checks every field and returns the first violation.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return ErrInvalidWorkers
	}
	if _, err := sched.ParseMode(c.Mode); err != nil {
		return ErrInvalidMode
	}
	if c.K < 0 {
		return ErrInvalidK
	}
	if math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) {
		return ErrInvalidTolerance
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return ErrInvalidLogFormat
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		return ErrInvalidLogLevel
	}

	return nil
}

// ExecMode returns the parsed Mode; call after Validate.
func (c Config) ExecMode() sched.Mode {
	m, _ := sched.ParseMode(c.Mode)
	return m
}

// HasTolerance reports whether a tolerance filter is configured.
func (c Config) HasTolerance() bool { return c.Tolerance >= 0 }

// Logging returns the logger configuration for logging.New.
func (c Config) Logging() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.LogLevel
	lc.Format = c.LogFormat

	return lc
}
