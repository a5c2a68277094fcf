package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chillyai/enhancer/internal/auth"
)

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := auth.Config{}
	require.NoError(t, cfg.Finalize(nil))

	assert.Equal(t, "enhancer_session", cfg.CookieName)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTLDuration())
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.OIDC.Enabled())
}

func TestConfigFinalizeEnv(t *testing.T) {
	t.Setenv("TEST_AUTH_SECURE", "true")
	t.Setenv("TEST_AUTH_ISSUER", "https://issuer.example.com")
	t.Setenv("TEST_AUTH_CLIENT", "enhancer")

	cfg := auth.Config{}
	require.NoError(t, cfg.Finalize(&auth.Env{
		CookieSecure: "TEST_AUTH_SECURE",
		OIDCIssuer:   "TEST_AUTH_ISSUER",
		OIDCClientID: "TEST_AUTH_CLIENT",
	}))

	assert.True(t, cfg.SecureCookie())
	assert.True(t, cfg.OIDC.Enabled())
	assert.Equal(t, "enhancer", cfg.OIDC.ClientID)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     auth.Config
		wantErr string
	}{
		{"bad ttl", auth.Config{SessionTTL: "a while"}, "session_ttl"},
		{"negative ttl", auth.Config{SessionTTL: "-1h"}, "session_ttl must be positive"},
		{"cost too high", auth.Config{BcryptCost: 40}, "bcrypt_cost"},
		{"issuer without client", auth.Config{OIDC: auth.OIDCConfig{Issuer: "https://x"}}, "client_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, tt.cfg.Finalize(nil), tt.wantErr)
		})
	}
}

func TestConfigMerge(t *testing.T) {
	cfg := auth.Config{CookieName: "base", CookieSecure: boolPtr(false), SessionTTL: "1h"}
	cfg.Merge(&auth.Config{CookieSecure: boolPtr(true), OIDC: auth.OIDCConfig{Issuer: "https://x", ClientID: "c"}})

	assert.Equal(t, "base", cfg.CookieName)
	assert.True(t, cfg.SecureCookie())
	assert.Equal(t, "1h", cfg.SessionTTL)
	assert.Equal(t, "https://x", cfg.OIDC.Issuer)
}

func TestConfigMergeKeepsSecureCookieWhenUnset(t *testing.T) {
	cfg := auth.Config{CookieSecure: boolPtr(true)}
	cfg.Merge(&auth.Config{CookieName: "overlay"})
	assert.True(t, cfg.SecureCookie())

	cfg.Merge(&auth.Config{CookieSecure: boolPtr(false)})
	assert.False(t, cfg.SecureCookie())

	assert.False(t, (&auth.Config{}).SecureCookie())
}
