package anthropic_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chillyai/enhancer/pkg/anthropic"
)

func TestConfigFinalizeDefaults(t *testing.T) {
	t.Setenv(anthropic.EnvFallbackAPIKey, "")

	cfg := anthropic.Config{}
	require.NoError(t, cfg.Finalize(nil))

	assert.Equal(t, anthropic.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, anthropic.DefaultModel, cfg.Name)
	assert.Equal(t, 4096, cfg.MaxTokens)
	assert.Equal(t, 60*time.Second, cfg.TimeoutDuration())
	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.Empty(t, cfg.APIKey)
}

func TestConfigAPIKeyPrecedence(t *testing.T) {
	env := &anthropic.Env{APIKey: "TEST_MODEL_API_KEY"}

	t.Run("fallback", func(t *testing.T) {
		t.Setenv(anthropic.EnvFallbackAPIKey, "fallback-key")
		cfg := anthropic.Config{}
		require.NoError(t, cfg.Finalize(env))
		assert.Equal(t, "fallback-key", cfg.APIKey)
	})

	t.Run("file beats fallback", func(t *testing.T) {
		t.Setenv(anthropic.EnvFallbackAPIKey, "fallback-key")
		cfg := anthropic.Config{APIKey: "file-key"}
		require.NoError(t, cfg.Finalize(env))
		assert.Equal(t, "file-key", cfg.APIKey)
	})

	t.Run("env beats file", func(t *testing.T) {
		t.Setenv("TEST_MODEL_API_KEY", "env-key")
		cfg := anthropic.Config{APIKey: "file-key"}
		require.NoError(t, cfg.Finalize(env))
		assert.Equal(t, "env-key", cfg.APIKey)
	})
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad timeout", map[string]string{"TEST_MODEL_TIMEOUT": "later"}, "invalid timeout"},
		{"negative timeout", map[string]string{"TEST_MODEL_TIMEOUT": "-1s"}, "timeout must be positive"},
		{"zero tokens", map[string]string{"TEST_MODEL_MAX_TOKENS": "0"}, "max_tokens"},
		{"zero concurrency", map[string]string{"TEST_MODEL_MAX_CONCURRENCY": "0"}, "max_concurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg := anthropic.Config{}
			err := cfg.Finalize(&anthropic.Env{
				Timeout:        "TEST_MODEL_TIMEOUT",
				MaxTokens:      "TEST_MODEL_MAX_TOKENS",
				MaxConcurrency: "TEST_MODEL_MAX_CONCURRENCY",
			})
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfigMerge(t *testing.T) {
	cfg := anthropic.Config{Name: "base-model", MaxTokens: 4096}
	cfg.Merge(&anthropic.Config{Name: "overlay-model"})

	assert.Equal(t, "overlay-model", cfg.Name)
	assert.Equal(t, 4096, cfg.MaxTokens)
}
