// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/gramgate/internal/logging"
	"github.com/tomtom215/gramgate/internal/metrics"
	"github.com/tomtom215/gramgate/internal/models"
)

// sanitizeLogValue escapes control characters so user input cannot forge log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON writes v as the bare response body.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError classifies err and writes the error body. Server-side
// failures are logged at error level, client mistakes at debug.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	ae := translateError(err)

	log := logging.Ctx(r.Context())
	event := log.Debug()
	if ae.status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Str("code", ae.code).
		Int("status", ae.status).
		Str("method", r.Method).
		Str("path", sanitizeLogValue(r.URL.Path)).
		Str("error", sanitizeLogValue(err.Error())).
		Msg("API error")

	writeError(w, r, ae)
}

func writeError(w http.ResponseWriter, r *http.Request, ae apiError) {
	metrics.APIErrorsTotal.WithLabelValues(ae.code).Inc()
	respondJSON(w, ae.status, models.ErrorResponse{
		Detail:    ae.detail,
		Code:      ae.code,
		RequestID: logging.RequestIDFromContext(r.Context()),
		Details:   ae.details,
	})
}
