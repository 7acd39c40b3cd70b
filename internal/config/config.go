// Package config loads the console's YAML configuration file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// configPathEnv overrides the configuration file location.
const configPathEnv = "TRENDRADAR_CONFIG"

// defaultConfigPath is used when no path is given.
const defaultConfigPath = "config.yaml"

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"` // Listen address, e.g. ":8080".
}

// DatabaseConfig holds storage settings.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"` // SQLite path or PostgreSQL DSN.
}

// JWTConfig holds session token settings.
type JWTConfig struct {
	Secret      string `yaml:"secret"`       // HMAC signing secret.
	ExpiryHours int    `yaml:"expiry_hours"` // Token lifetime in hours.
}

// Expiry returns the token lifetime as a duration.
func (c JWTConfig) Expiry() time.Duration {
	hours := c.ExpiryHours
	if hours <= 0 {
		hours = 72
	}
	return time.Duration(hours) * time.Hour
}

// RedisConfig holds optional export cache settings. An empty Addr disables
// the cache.
type RedisConfig struct {
	Addr     string `yaml:"addr"`     // host:port; empty disables redis.
	Password string `yaml:"password"` // Optional password.
	DB       int    `yaml:"db"`       // Database index.
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `yaml:"level"`       // logrus level name; defaults to info.
	File       string `yaml:"file"`        // Log file path; empty logs to stderr only.
	MaxSizeMB  int    `yaml:"max_size_mb"` // Rotation size threshold.
	MaxBackups int    `yaml:"max_backups"` // Rotated files kept.
	MaxAgeDays int    `yaml:"max_age_days"`// Rotated file retention.
}

// Config is the root configuration document.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Redis    RedisConfig    `yaml:"redis"`
	Log      LogConfig      `yaml:"log"`
}

// ResolveConfigPath returns the effective config file path: the explicit
// argument, then the TRENDRADAR_CONFIG environment variable, then the
// default.
func ResolveConfigPath(path string) string {
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		return trimmed
	}
	if fromEnv := strings.TrimSpace(os.Getenv(configPathEnv)); fromEnv != "" {
		return fromEnv
	}
	return defaultConfigPath
}

// Load reads and validates a configuration file.
func Load(path string) (Config, error) {
	raw, errRead := os.ReadFile(path)
	if errRead != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, errRead)
	}

	var cfg Config
	if errDecode := yaml.Unmarshal(raw, &cfg); errDecode != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, errDecode)
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:data/console.db"
	}
	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return Config{}, fmt.Errorf("config: jwt.secret is required")
	}
	return cfg, nil
}
