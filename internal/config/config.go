package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/kevinzwang/randy/internal/openrouter"
)

// Environment variables read by ApplyEnv.
const (
	EnvModel   = "OPENROUTER_MODEL"
	EnvAPIKey  = "OPENROUTER_API_KEY"
	EnvBaseURL = "OPENROUTER_BASE_URL"
)

// Config holds the settings of one run. Values are layered: defaults, the
// TOML file, the environment, then command-line flags.
type Config struct {
	Model   string   `toml:"model"`
	APIKey  string   `toml:"api_key"`
	BaseURL string   `toml:"base_url"`
	Timeout Duration `toml:"timeout"`

	// MaxAttempts caps requests per reply; 0 retries empty replies forever.
	MaxAttempts    int     `toml:"max_attempts"`
	RetryPerSecond float64 `toml:"retry_per_second"`

	// Seed fixes the random source. 0 seeds from the clock.
	Seed uint64 `toml:"seed"`

	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
}

// Duration is a time.Duration written as a string ("30s") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Model:    openrouter.DefaultModel,
		BaseURL:  openrouter.DefaultBaseURL,
		Timeout:  Duration{openrouter.DefaultTimeout},
		LogLevel: "info",
	}
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "randy", "config.toml"), nil
}

// Load returns the defaults overlaid with the TOML file at path. An empty
// path means DefaultPath, which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			// No config dir (e.g. $HOME unset): run on defaults.
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from the OPENROUTER_* environment variables.
// Empty variables are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvModel); v != "" {
		c.Model = v
	}
	if v := getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
}

// ValidationError is a single invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid setting.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(c.Model) == "" {
		errs = append(errs, ValidationError{Field: "model", Message: "must not be empty"})
	}
	if strings.TrimSpace(c.APIKey) == "" {
		errs = append(errs, ValidationError{
			Field:   "api_key",
			Message: fmt.Sprintf("is required (set %s or pass --api-key)", EnvAPIKey),
		})
	}
	if u, err := url.Parse(c.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "base_url",
			Message: fmt.Sprintf("invalid URL '%s'", c.BaseURL),
		})
	}
	if c.Timeout.Duration < 0 {
		errs = append(errs, ValidationError{Field: "timeout", Message: "must not be negative"})
	}
	if c.MaxAttempts < 0 {
		errs = append(errs, ValidationError{Field: "max_attempts", Message: "must not be negative"})
	}
	if c.RetryPerSecond < 0 {
		errs = append(errs, ValidationError{Field: "retry_per_second", Message: "must not be negative"})
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("invalid level '%s'", c.LogLevel),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
