// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Instagram.BaseURL != DefaultBaseURL {
		t.Errorf("Instagram.BaseURL = %q", cfg.Instagram.BaseURL)
	}
	if cfg.Instagram.SessionID != "" {
		t.Error("Instagram.SessionID should be empty by default")
	}
	if !cfg.Instagram.CircuitBreaker {
		t.Error("circuit breaker should be enabled by default")
	}
	if cfg.API.MaxEnumeration != 10000 {
		t.Errorf("API.MaxEnumeration = %d, want 10000", cfg.API.MaxEnumeration)
	}
	if cfg.Security.RateLimitWindow != time.Minute {
		t.Errorf("Security.RateLimitWindow = %v, want 1m", cfg.Security.RateLimitWindow)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"IG_SESSIONID", "instagram.session_id"},
		{"IG_EAGER_LOGIN", "instagram.eager_login"},
		{"IG_DISABLED_CAPABILITIES", "instagram.disabled_capabilities"},
		{"PORT", "server.port"},
		{"ENVIRONMENT", "server.environment"},
		{"MAX_ENUMERATION", "api.max_enumeration"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"LOG_LEVEL", "logging.level"},
		{"HOME", ""},
		{"PATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("IG_SESSIONID", "12345%3Aabc%3A7")
	t.Setenv("PORT", "9090")
	t.Setenv("IG_TIMEOUT", "5s")
	t.Setenv("MAX_ENUMERATION", "250")
	t.Setenv("IG_DISABLED_CAPABILITIES", "media_delete, direct_thread_hide ,")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Instagram.SessionID != "12345%3Aabc%3A7" {
		t.Errorf("SessionID = %q", cfg.Instagram.SessionID)
	}
	if !cfg.HasCredential() {
		t.Error("HasCredential() = false")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Instagram.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Instagram.Timeout)
	}
	if cfg.API.MaxEnumeration != 250 {
		t.Errorf("MaxEnumeration = %d, want 250", cfg.API.MaxEnumeration)
	}
	want := []string{"media_delete", "direct_thread_hide"}
	if strings.Join(cfg.Instagram.DisabledCapabilities, "|") != strings.Join(want, "|") {
		t.Errorf("DisabledCapabilities = %v, want %v", cfg.Instagram.DisabledCapabilities, want)
	}
	if len(cfg.Security.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Server.Addr() != "0.0.0.0:9090" {
		t.Errorf("Addr() = %q", cfg.Server.Addr())
	}
}

func TestLoadWithKoanf_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
instagram:
  eager_login: true
  requests_per_second: 2
  burst: 4
server:
  port: 8181
logging:
  level: debug
  format: console
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if !cfg.Instagram.EagerLogin {
		t.Error("EagerLogin should come from the file")
	}
	if cfg.Instagram.RequestsPerSecond != 2 || cfg.Instagram.Burst != 4 {
		t.Errorf("pacing = %v/%d", cfg.Instagram.RequestsPerSecond, cfg.Instagram.Burst)
	}
	if cfg.Server.Port != 8181 {
		t.Errorf("Port = %d, want 8181", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %q, env must win over file", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Format = %q", cfg.Logging.Format)
	}
}

func TestLoadWithKoanf_InvalidEnv(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("PORT", "70000")

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("expected validation error for out-of-range port")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing credential is allowed", func(c *Config) { c.Instagram.SessionID = "" }, ""},
		{"relative base url", func(c *Config) { c.Instagram.BaseURL = "/api" }, "IG_BASE_URL"},
		{"zero timeout", func(c *Config) { c.Instagram.Timeout = 0 }, "IG_TIMEOUT"},
		{"negative pacing", func(c *Config) { c.Instagram.RequestsPerSecond = -1 }, "IG_REQUESTS_PER_SECOND"},
		{"pacing without burst", func(c *Config) { c.Instagram.RequestsPerSecond = 1; c.Instagram.Burst = 0 }, "IG_BURST"},
		{"too many retries", func(c *Config) { c.Instagram.MaxRetries = 11 }, "IG_MAX_RETRIES"},
		{"cookie header pasted", func(c *Config) { c.Instagram.SessionID = "sessionid=1; csrftoken=x" }, "IG_SESSIONID"},
		{"bad environment", func(c *Config) { c.Server.Environment = "prod" }, "ENVIRONMENT"},
		{"zero enumeration cap", func(c *Config) { c.API.MaxEnumeration = 0 }, "MAX_ENUMERATION"},
		{"rate limit zero", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit disabled skips checks", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a, ,b ,c,")
	if strings.Join(got, ",") != "a,b,c" {
		t.Errorf("splitList() = %v", got)
	}
	if len(splitList("")) != 0 {
		t.Error("empty input should give empty list")
	}
}
