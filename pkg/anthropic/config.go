package anthropic

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DefaultBaseURL    = "https://api.anthropic.com"
	DefaultAPIVersion = "2023-06-01"
	DefaultModel      = "claude-sonnet-4-20250514"
	DefaultMaxTokens  = 4096

	// EnvFallbackAPIKey is read when no key is configured any other way.
	EnvFallbackAPIKey = "ANTHROPIC_API_KEY"
)

// Config holds provider connection settings and the model pinned for the
// service.
type Config struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	APIVersion     string `toml:"api_version"`
	Name           string `toml:"name"`
	MaxTokens      int    `toml:"max_tokens"`
	Timeout        string `toml:"timeout"`
	MaxConcurrency int    `toml:"max_concurrency"`
}

// Env names the environment variables that override Config.
type Env struct {
	BaseURL        string
	APIKey         string
	APIVersion     string
	Name           string
	MaxTokens      string
	Timeout        string
	MaxConcurrency string
}

func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, then environment overrides, then validates.
// An empty API key is not a validation error; NewClient rejects it.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv(EnvFallbackAPIKey)
	}
	return c.validate()
}

// Merge overwrites fields that are set in overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.APIVersion != "" {
		c.APIVersion = overlay.APIVersion
	}
	if overlay.Name != "" {
		c.Name = overlay.Name
	}
	if overlay.MaxTokens != 0 {
		c.MaxTokens = overlay.MaxTokens
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.MaxConcurrency != 0 {
		c.MaxConcurrency = overlay.MaxConcurrency
	}
}

func (c *Config) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.Name == "" {
		c.Name = DefaultModel
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Timeout == "" {
		c.Timeout = "60s"
	}
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = 8
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := getenv(env.BaseURL); v != "" {
		c.BaseURL = v
	}
	if v := getenv(env.APIKey); v != "" {
		c.APIKey = v
	}
	if v := getenv(env.APIVersion); v != "" {
		c.APIVersion = v
	}
	if v := getenv(env.Name); v != "" {
		c.Name = v
	}
	if v := getenv(env.Timeout); v != "" {
		c.Timeout = v
	}
	if n, err := strconv.Atoi(getenv(env.MaxTokens)); err == nil {
		c.MaxTokens = n
	}
	if n, err := strconv.Atoi(getenv(env.MaxConcurrency)); err == nil {
		c.MaxConcurrency = n
	}
}

func (c *Config) validate() error {
	if c.MaxTokens < 1 {
		return errors.New("max_tokens must be positive")
	}
	if c.MaxConcurrency < 1 {
		return errors.New("max_concurrency must be positive")
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}

func getenv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
