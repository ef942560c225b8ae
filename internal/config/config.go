// Package config defines reporter configuration and its loading.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers defaults, an optional YAML file and FOGIS_ env vars.
// - Errors wrap this package's sentinel kinds.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Env variable names read outside the koanf key space.
const (
	EnvPrefix     = "FOGIS_"
	EnvConfigFile = "FOGIS_CONFIG"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// BaseURL is the event store API root.
	BaseURL string `koanf:"base_url"`

	// Username and Password log in to the event store. Read from
	// FOGIS_USERNAME and FOGIS_PASSWORD.
	Username string `koanf:"username"`
	Password string `koanf:"password"`

	// RequestTimeoutMS bounds a single store request.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// FetchRetries is the number of extra attempts for store reads.
	FetchRetries int `koanf:"fetch_retries"`

	// RetryDelayMS is the initial delay between read attempts.
	RetryDelayMS int `koanf:"retry_delay_ms"`

	// MockAddr is the listen address of the development store.
	MockAddr string `koanf:"mock_addr"`

	// MockUsername and MockPassword are the login the development store accepts.
	MockUsername string `koanf:"mock_username"`
	MockPassword string `koanf:"mock_password"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		BaseURL:          "http://localhost:9080",
		RequestTimeoutMS: 10_000,
		FetchRetries:     2,
		RetryDelayMS:     200,
		MockAddr:         ":9080",
		MockUsername:     "referee",
		MockPassword:     "secret",
	}
}

// RequestTimeout returns RequestTimeoutMS as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// RetryDelay returns RetryDelayMS as a duration.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMS) * time.Millisecond
}

// ValidateCredentials checks that both login values are present.
func (c *Config) ValidateCredentials() error {
	var missing []string
	if strings.TrimSpace(c.Username) == "" {
		missing = append(missing, EnvPrefix+"USERNAME")
	}
	if strings.TrimSpace(c.Password) == "" {
		missing = append(missing, EnvPrefix+"PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s not set", ErrMissingCredentials, strings.Join(missing, " and "))
	}
	return nil
}
