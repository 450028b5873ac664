// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

// Package main is the entry point for the Gramgate server.
//
// Gramgate exposes a REST API over one Instagram account, authenticated by
// the browser sessionid cookie.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, config.yaml and environment variables (Koanf v2)
//  2. Logging: zerolog, with an slog bridge for the supervisor
//  3. Instagram client: resty transport, optional pacing, optional circuit breaker
//  4. Session manager: one lazy, once-only login shared by all requests
//  5. HTTP server: chi router under the suture supervisor tree
//
// # Configuration
//
//   - IG_SESSIONID: the sessionid cookie. Without it the server still starts
//     and Instagram endpoints answer 503.
//   - IG_EAGER_LOGIN=true verifies the session at startup.
//   - IG_DISABLED_CAPABILITIES=block,media_delete answers those operations with 501.
//   - PORT (default 8000), HTTP_HOST, LOG_LEVEL, LOG_FORMAT, MAX_ENUMERATION.
//
// # Signal Handling
//
// SIGINT and SIGTERM stop accepting connections and drain in-flight
// requests for SHUTDOWN_TIMEOUT.
//
// # Example Usage
//
//	export IG_SESSIONID='1234567%3AabcDEF...'
//	./gramgate
//	curl localhost:8000/user/id_from_username/instagram
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/gramgate/internal/api"
	"github.com/tomtom215/gramgate/internal/config"
	"github.com/tomtom215/gramgate/internal/instagram"
	"github.com/tomtom215/gramgate/internal/logging"
	"github.com/tomtom215/gramgate/internal/session"
	"github.com/tomtom215/gramgate/internal/supervisor"
	"github.com/tomtom215/gramgate/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Bool("session_configured", cfg.HasCredential()).
		Bool("eager_login", cfg.Instagram.EagerLogin).
		Bool("circuit_breaker", cfg.Instagram.CircuitBreaker).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Gramgate")

	client, err := newInstagramClient(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build Instagram client")
	}
	sessions := session.New(cfg.Instagram.SessionID, client, cfg.Instagram.LoginTimeout)

	handler := api.NewHandler(sessions, cfg.API.MaxEnumeration)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(cfg.Security)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		// No WriteTimeout: media downloads are streamed.
		IdleTimeout: 60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if cfg.Instagram.EagerLogin && sessions.Configured() {
		tree.AddSessionService(services.NewSessionWarmupService(sessions))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	if err := <-tree.ServeBackground(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Gramgate stopped")
}

// newInstagramClient builds the HTTP client, wrapped in a circuit breaker
// unless disabled.
func newInstagramClient(cfg *config.Config) (instagram.Client, error) {
	disabled, err := instagram.ParseCapabilities(cfg.Instagram.DisabledCapabilities)
	if err != nil {
		return nil, err
	}

	httpClient := instagram.NewHTTPClient(instagram.Options{
		BaseURL:           cfg.Instagram.BaseURL,
		UserAgent:         cfg.Instagram.UserAgent,
		AppID:             cfg.Instagram.AppID,
		Timeout:           cfg.Instagram.Timeout,
		RequestsPerSecond: cfg.Instagram.RequestsPerSecond,
		Burst:             cfg.Instagram.Burst,
		MaxRetries:        cfg.Instagram.MaxRetries,
		Disabled:          disabled,
	})
	if len(disabled) > 0 {
		logging.Info().Interface("disabled", disabled).Msg("Instagram capabilities disabled")
	}

	if !cfg.Instagram.CircuitBreaker {
		return httpClient, nil
	}
	return instagram.NewCircuitBreakerClient(httpClient, instagram.CircuitBreakerSettings{}), nil
}
