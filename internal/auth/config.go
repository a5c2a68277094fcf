package auth

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds session and identity provider settings.
type Config struct {
	CookieName   string     `toml:"cookie_name"`
	CookieSecure *bool      `toml:"cookie_secure"`
	SessionTTL   string     `toml:"session_ttl"`
	BcryptCost   int        `toml:"bcrypt_cost"`
	OIDC         OIDCConfig `toml:"oidc"`
}

// OIDCConfig enables ID token sign-in when Issuer is set.
type OIDCConfig struct {
	Issuer   string `toml:"issuer"`
	ClientID string `toml:"client_id"`
}

func (c OIDCConfig) Enabled() bool {
	return c.Issuer != ""
}

// Env names the environment variables that override Config.
type Env struct {
	CookieName   string
	CookieSecure string
	SessionTTL   string
	BcryptCost   string
	OIDCIssuer   string
	OIDCClientID string
}

func (c *Config) SessionTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.SessionTTL)
	return d
}

// Finalize applies defaults, then environment overrides, then validates.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// SecureCookie reports whether the session cookie carries the Secure flag.
// Unset means false.
func (c *Config) SecureCookie() bool {
	return c.CookieSecure != nil && *c.CookieSecure
}

// Merge overwrites fields set in overlay. CookieSecure applies only when the
// overlay sets it, so an overlay that omits the key keeps the base value.
func (c *Config) Merge(overlay *Config) {
	if overlay.CookieSecure != nil {
		secure := *overlay.CookieSecure
		c.CookieSecure = &secure
	}

	if overlay.CookieName != "" {
		c.CookieName = overlay.CookieName
	}
	if overlay.SessionTTL != "" {
		c.SessionTTL = overlay.SessionTTL
	}
	if overlay.BcryptCost != 0 {
		c.BcryptCost = overlay.BcryptCost
	}
	if overlay.OIDC.Issuer != "" {
		c.OIDC.Issuer = overlay.OIDC.Issuer
	}
	if overlay.OIDC.ClientID != "" {
		c.OIDC.ClientID = overlay.OIDC.ClientID
	}
}

func (c *Config) loadDefaults() {
	if c.CookieName == "" {
		c.CookieName = "enhancer_session"
	}
	if c.SessionTTL == "" {
		c.SessionTTL = "168h"
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = bcrypt.DefaultCost
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := getenv(env.CookieName); v != "" {
		c.CookieName = v
	}
	if v, err := strconv.ParseBool(getenv(env.CookieSecure)); err == nil {
		c.CookieSecure = &v
	}
	if v := getenv(env.SessionTTL); v != "" {
		c.SessionTTL = v
	}
	if n, err := strconv.Atoi(getenv(env.BcryptCost)); err == nil {
		c.BcryptCost = n
	}
	if v := getenv(env.OIDCIssuer); v != "" {
		c.OIDC.Issuer = v
	}
	if v := getenv(env.OIDCClientID); v != "" {
		c.OIDC.ClientID = v
	}
}

func (c *Config) validate() error {
	ttl, err := time.ParseDuration(c.SessionTTL)
	if err != nil {
		return fmt.Errorf("invalid session_ttl: %w", err)
	}
	if ttl <= 0 {
		return errors.New("session_ttl must be positive")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.OIDC.Enabled() && c.OIDC.ClientID == "" {
		return errors.New("oidc client_id required when issuer is set")
	}
	return nil
}

func getenv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
