// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package api

import (
	"net/http"

	"github.com/tomtom215/gramgate/internal/models"
	"github.com/tomtom215/gramgate/internal/session"
)

// Root points at the operational endpoints.
//
// @Summary Service index
// @Tags Core
// @Produce json
// @Success 200 {object} models.RootResponse
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.RootResponse{
		Message: "Gramgate Instagram API",
		Health:  "/health",
		Metrics: "/metrics",
	})
}

// Health is always 200 and never triggers a login, so it stays usable
// without a credential or while Instagram is down.
//
// @Summary Service health
// @Tags Core
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.Status()
	resp := models.HealthResponse{
		Status:       "ok",
		Session:      string(st.State),
		LoggedIn:     st.State == session.StateLoggedIn,
		Capabilities: h.caps.Names(),
	}
	if resp.LoggedIn {
		uid, name := st.UserID, st.Username
		resp.UserID = &uid
		resp.Username = &name
	}
	respondJSON(w, http.StatusOK, resp)
}
