package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kevinzwang/randy/internal/openrouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
model = "openai/gpt-4o"
api_key = "sk-or-file"
timeout = "15s"
max_attempts = 4
retry_per_second = 1.5
seed = 99
log_level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openai/gpt-4o", cfg.Model)
	assert.Equal(t, "sk-or-file", cfg.APIKey)
	assert.Equal(t, 15*time.Second, cfg.Timeout.Duration)
	assert.Equal(t, 4, cfg.MaxAttempts)
	assert.Equal(t, 1.5, cfg.RetryPerSecond)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Unset keys keep their defaults.
	assert.Equal(t, openrouter.DefaultBaseURL, cfg.BaseURL)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadDefaultPathMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `modle = "typo"`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "modle")
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, `timeout = "soon"`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvModel:  "meta-llama/llama-3-8b-instruct",
		EnvAPIKey: "sk-or-env",
	}
	cfg := Default()
	cfg.BaseURL = "http://localhost:9999"
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "meta-llama/llama-3-8b-instruct", cfg.Model)
	assert.Equal(t, "sk-or-env", cfg.APIKey)
	assert.Equal(t, "http://localhost:9999", cfg.BaseURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		fields []string
	}{
		{"valid", func(c *Config) {}, nil},
		{"missing key", func(c *Config) { c.APIKey = "" }, []string{"api_key"}},
		{"blank model", func(c *Config) { c.Model = "  " }, []string{"model"}},
		{"bad url", func(c *Config) { c.BaseURL = "ftp://x" }, []string{"base_url"}},
		{"negatives", func(c *Config) {
			c.MaxAttempts = -1
			c.RetryPerSecond = -2
			c.Timeout = Duration{-time.Second}
		}, []string{"timeout", "max_attempts", "retry_per_second"}},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, []string{"log_level"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.APIKey = "sk-or-test"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			var errs ValidationErrors
			require.True(t, errors.As(err, &errs), "want ValidationErrors, got %v", err)
			var got []string
			for _, e := range errs {
				got = append(got, e.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}
