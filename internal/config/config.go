// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

// Package config loads Gramgate configuration from defaults, an optional YAML
// file and environment variables, in that order of precedence.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration.
type Config struct {
	Instagram InstagramConfig `koanf:"instagram"`
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// InstagramConfig configures the upstream session client.
type InstagramConfig struct {
	// SessionID is the browser sessionid cookie (IG_SESSIONID). Empty leaves
	// the service running but every authenticated route answers 503.
	SessionID string `koanf:"session_id"`

	BaseURL   string        `koanf:"base_url"`
	UserAgent string        `koanf:"user_agent"`
	AppID     string        `koanf:"app_id"`
	Timeout   time.Duration `koanf:"timeout"`

	// LoginTimeout bounds the one-time session verification call.
	LoginTimeout time.Duration `koanf:"login_timeout"`

	// EagerLogin verifies the session at startup instead of on first use.
	EagerLogin bool `koanf:"eager_login"`

	// RequestsPerSecond paces outbound calls; 0 disables pacing.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	// MaxRetries is the number of retries after an upstream 429.
	MaxRetries int `koanf:"max_retries"`

	// DisabledCapabilities lists operations answered with 501.
	DisabledCapabilities []string `koanf:"disabled_capabilities"`

	CircuitBreaker bool `koanf:"circuit_breaker"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// APIConfig bounds enumeration endpoints.
type APIConfig struct {
	// MaxEnumeration caps amount=0 ("everything") and any larger amount on
	// followers, following and comments.
	MaxEnumeration int `koanf:"max_enumeration"`
}

// SecurityConfig holds inbound HTTP protections.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller adds file:line to log lines.
	Caller bool `koanf:"caller"`
}

// HasCredential reports whether a session credential was configured.
func (c *Config) HasCredential() bool {
	return c.Instagram.SessionID != ""
}

// Load loads and validates configuration.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
