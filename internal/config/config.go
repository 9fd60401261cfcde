// Package config loads service configuration from config.toml, an optional
// config.<TLPMARK_ENV>.toml overlay, and TLPMARK_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/tlpmark/pkg/database"
	"github.com/JaimeStill/tlpmark/pkg/middleware"
	"github.com/JaimeStill/tlpmark/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvTlpmarkEnv             = "TLPMARK_ENV"
	EnvTlpmarkShutdownTimeout = "TLPMARK_SHUTDOWN_TIMEOUT"
	EnvTlpmarkVersion         = "TLPMARK_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "TLPMARK_DB_HOST",
	Port:            "TLPMARK_DB_PORT",
	Name:            "TLPMARK_DB_NAME",
	User:            "TLPMARK_DB_USER",
	Password:        "TLPMARK_DB_PASSWORD",
	SSLMode:         "TLPMARK_DB_SSL_MODE",
	MaxOpenConns:    "TLPMARK_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "TLPMARK_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "TLPMARK_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "TLPMARK_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Provider:         "TLPMARK_STORAGE_PROVIDER",
	ContainerName:    "TLPMARK_STORAGE_CONTAINER_NAME",
	ConnectionString: "TLPMARK_STORAGE_CONNECTION_STRING",
	AccountURL:       "TLPMARK_STORAGE_ACCOUNT_URL",
	Endpoint:         "TLPMARK_STORAGE_ENDPOINT",
	AccessKey:        "TLPMARK_STORAGE_ACCESS_KEY",
	SecretKey:        "TLPMARK_STORAGE_SECRET_KEY",
	UseSSL:           "TLPMARK_STORAGE_USE_SSL",
}

var authEnv = &middleware.AuthEnv{
	Enabled:  "TLPMARK_AUTH_ENABLED",
	Issuer:   "TLPMARK_AUTH_ISSUER",
	ClientID: "TLPMARK_AUTH_CLIENT_ID",
}

// Config is the root configuration for the tlpmark service.
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Log             LogConfig             `toml:"log"`
	Database        database.Config       `toml:"database"`
	Storage         storage.Config        `toml:"storage"`
	Auth            middleware.AuthConfig `toml:"auth"`
	API             APIConfig             `toml:"api"`
	ShutdownTimeout string                `toml:"shutdown_timeout"`
	Version         string                `toml:"version"`
}

// Env returns TLPMARK_ENV, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvTlpmarkEnv); env != "" {
		return env
	}
	return "local"
}

func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads config.toml when present, merges the environment overlay,
// and finalizes every section. Without any file, defaults and environment
// variables supply the whole configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}
	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sections.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Log.Merge(&overlay.Log)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Auth.Merge(&overlay.Auth)
	c.API.Merge(&overlay.API)
}

// Finalize applies defaults and environment overrides, then validates each section.
func (c *Config) Finalize() error {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if v := os.Getenv(EnvTlpmarkShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvTlpmarkVersion); v != "" {
		c.Version = v
	}
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}

	sections := []struct {
		name     string
		finalize func() error
	}{
		{"server", c.Server.Finalize},
		{"log", c.Log.Finalize},
		{"database", func() error { return c.Database.Finalize(databaseEnv) }},
		{"storage", func() error { return c.Storage.Finalize(storageEnv) }},
		{"auth", func() error { return c.Auth.Finalize(authEnv) }},
		{"api", c.API.Finalize},
	}

	for _, s := range sections {
		if err := s.finalize(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvTlpmarkEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
