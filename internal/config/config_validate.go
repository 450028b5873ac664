// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks ranges and formats. A missing session credential is not an
// error here: the health route must stay available without one.
func (c *Config) Validate() error {
	if err := c.validateInstagram(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateInstagram() error {
	u, err := url.Parse(c.Instagram.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("IG_BASE_URL must be an absolute http(s) URL, got %q", c.Instagram.BaseURL)
	}
	if c.Instagram.Timeout <= 0 {
		return fmt.Errorf("IG_TIMEOUT must be positive, got %v", c.Instagram.Timeout)
	}
	if c.Instagram.LoginTimeout <= 0 {
		return fmt.Errorf("IG_LOGIN_TIMEOUT must be positive, got %v", c.Instagram.LoginTimeout)
	}
	if c.Instagram.RequestsPerSecond < 0 {
		return fmt.Errorf("IG_REQUESTS_PER_SECOND must not be negative, got %v", c.Instagram.RequestsPerSecond)
	}
	if c.Instagram.RequestsPerSecond > 0 && c.Instagram.Burst < 1 {
		return fmt.Errorf("IG_BURST must be at least 1 when pacing is enabled, got %d", c.Instagram.Burst)
	}
	if c.Instagram.MaxRetries < 0 || c.Instagram.MaxRetries > 10 {
		return fmt.Errorf("IG_MAX_RETRIES must be between 0 and 10, got %d", c.Instagram.MaxRetries)
	}
	if strings.ContainsAny(c.Instagram.SessionID, " \t\r\n;") {
		return fmt.Errorf("IG_SESSIONID contains whitespace or ';', paste only the cookie value")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
}

func (c *Config) validateAPI() error {
	if c.API.MaxEnumeration < 1 {
		return fmt.Errorf("MAX_ENUMERATION must be at least 1, got %d", c.API.MaxEnumeration)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be trace, debug, info, warn or error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}
