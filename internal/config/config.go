package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/mcoot/coup-go/internal/services/auth"
	redisstorage "github.com/mcoot/coup-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Config is the server configuration, read from COUP_* environment variables
type Config struct {
	Host        string `env:"COUP_HOST"`
	Port        int    `env:"COUP_PORT" envDefault:"8080"`
	ServerName  string `env:"COUP_SERVER_NAME" envDefault:"coup"`
	LogLevel    string `env:"COUP_LOG_LEVEL" envDefault:"info"`
	StorageType string `env:"COUP_STORAGE_TYPE" envDefault:"memory"`

	Auth  auth.Config
	Redis redisstorage.Config
}

// Load parses the environment
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the parser cannot
func (c Config) Validate() error {
	switch c.StorageType {
	case StorageTypeMemory, StorageTypeRedis:
	default:
		return fmt.Errorf("COUP_STORAGE_TYPE must be %q or %q, got %q", StorageTypeMemory, StorageTypeRedis, c.StorageType)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("COUP_PORT out of range: %d", c.Port)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SlogLevel returns the configured log level
func (c Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("COUP_LOG_LEVEL: %w", err)
	}
	return level, nil
}
