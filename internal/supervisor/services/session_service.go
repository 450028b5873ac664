// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package services

import (
	"context"
	"errors"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/gramgate/internal/logging"
)

// SessionWarmer performs the one-time Instagram login.
type SessionWarmer interface {
	Warmup(ctx context.Context) error
}

// SessionWarmupService logs in once at startup. It never restarts: the
// login outcome is sticky, so a retry could not change it.
type SessionWarmupService struct {
	sessions SessionWarmer
}

// NewSessionWarmupService creates the warmup service.
func NewSessionWarmupService(sessions SessionWarmer) *SessionWarmupService {
	return &SessionWarmupService{sessions: sessions}
}

// Serve implements suture.Service.
func (s *SessionWarmupService) Serve(ctx context.Context) error {
	err := s.sessions.Warmup(ctx)
	switch {
	case err == nil:
		logging.Info().Msg("Instagram session warmed up")
	case errors.Is(err, context.Canceled):
		return err
	default:
		logging.Warn().Err(err).Msg("Instagram session warmup failed; Instagram endpoints will report the error")
	}
	return suture.ErrDoNotRestart
}

// String names the service in supervisor events.
func (s *SessionWarmupService) String() string {
	return "session-warmup"
}
