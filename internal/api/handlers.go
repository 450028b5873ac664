// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package api

import (
	"context"

	"github.com/tomtom215/gramgate/internal/instagram"
	"github.com/tomtom215/gramgate/internal/session"
)

// DefaultMaxEnumeration caps amount=0 when no limit is configured.
const DefaultMaxEnumeration = 10000

// Sessions is the part of the session manager handlers depend on.
type Sessions interface {
	Client(ctx context.Context) (instagram.Client, error)
	Status() session.Status
	Capabilities() instagram.CapabilitySet
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_health.go: root and health endpoints
//   - handlers_users.go: lookup, profile, graph and relationship endpoints
//   - handlers_media.go: media info, actions and download
//   - handlers_comments.go: comment endpoints
//   - handlers_direct.go: direct message endpoints
type Handler struct {
	sessions       Sessions
	caps           instagram.CapabilitySet
	maxEnumeration int
}

// NewHandler creates a handler. The capability set is read once here.
func NewHandler(sessions Sessions, maxEnumeration int) *Handler {
	if maxEnumeration <= 0 {
		maxEnumeration = DefaultMaxEnumeration
	}
	return &Handler{
		sessions:       sessions,
		caps:           sessions.Capabilities(),
		maxEnumeration: maxEnumeration,
	}
}

// client checks that the operation is declared and returns the shared
// session client, logging in on first use.
func (h *Handler) client(ctx context.Context, capability instagram.Capability) (instagram.Client, error) {
	if err := h.caps.Require(capability); err != nil {
		return nil, err
	}
	return h.sessions.Client(ctx)
}
