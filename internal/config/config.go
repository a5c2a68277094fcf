package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/chillyai/enhancer/internal/auth"
	"github.com/chillyai/enhancer/pkg/anthropic"
	"github.com/chillyai/enhancer/pkg/database"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvEnhancerEnv             = "ENHANCER_ENV"
	EnvEnhancerShutdownTimeout = "ENHANCER_SHUTDOWN_TIMEOUT"
	EnvEnhancerVersion         = "ENHANCER_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "ENHANCER_DB_HOST",
	Port:            "ENHANCER_DB_PORT",
	Name:            "ENHANCER_DB_NAME",
	User:            "ENHANCER_DB_USER",
	Password:        "ENHANCER_DB_PASSWORD",
	SSLMode:         "ENHANCER_DB_SSL_MODE",
	MaxOpenConns:    "ENHANCER_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "ENHANCER_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "ENHANCER_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "ENHANCER_DB_CONN_TIMEOUT",
}

var modelEnv = &anthropic.Env{
	BaseURL:        "ENHANCER_MODEL_BASE_URL",
	APIKey:         "ENHANCER_MODEL_API_KEY",
	APIVersion:     "ENHANCER_MODEL_API_VERSION",
	Name:           "ENHANCER_MODEL_NAME",
	MaxTokens:      "ENHANCER_MODEL_MAX_TOKENS",
	Timeout:        "ENHANCER_MODEL_TIMEOUT",
	MaxConcurrency: "ENHANCER_MODEL_MAX_CONCURRENCY",
}

var authEnv = &auth.Env{
	CookieName:   "ENHANCER_AUTH_COOKIE_NAME",
	CookieSecure: "ENHANCER_AUTH_COOKIE_SECURE",
	SessionTTL:   "ENHANCER_AUTH_SESSION_TTL",
	BcryptCost:   "ENHANCER_AUTH_BCRYPT_COST",
	OIDCIssuer:   "ENHANCER_AUTH_OIDC_ISSUER",
	OIDCClientID: "ENHANCER_AUTH_OIDC_CLIENT_ID",
}

// Config is the root configuration for the enhancer service.
type Config struct {
	Server          ServerConfig     `toml:"server"`
	Database        database.Config  `toml:"database"`
	API             APIConfig        `toml:"api"`
	Model           anthropic.Config `toml:"model"`
	Auth            auth.Config      `toml:"auth"`
	ShutdownTimeout string           `toml:"shutdown_timeout"`
	Version         string           `toml:"version"`
}

// Env returns the ENHANCER_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvEnhancerEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom is Load with config files resolved relative to dir.
func LoadFrom(dir string) (*Config, error) {
	cfg := &Config{}

	base := filepath.Join(dir, BaseConfigFile)
	if _, err := os.Stat(base); err == nil {
		loaded, err := load(base)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(dir); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.API.Merge(&overlay.API)
	c.Model.Merge(&overlay.Model)
	c.Auth.Merge(&overlay.Auth)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Model.Finalize(modelEnv); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvEnhancerShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvEnhancerVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
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

func overlayPath(dir string) string {
	if env := os.Getenv(EnvEnhancerEnv); env != "" {
		path := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, env))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
