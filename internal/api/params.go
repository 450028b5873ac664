// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/gramgate/internal/instagram"
	"github.com/tomtom215/gramgate/internal/validation"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// NormalizeUsername trims whitespace, leading "@" signs and trailing slashes:
// "@jane/" becomes "jane".
func NormalizeUsername(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "@")
	s = strings.TrimRight(s, "/")
	return strings.TrimSpace(s)
}

// effectiveAmount resolves amount=0 ("all") and oversized amounts to the
// configured enumeration cap.
func (h *Handler) effectiveAmount(amount int) int {
	if amount <= 0 || amount > h.maxEnumeration {
		return h.maxEnumeration
	}
	return amount
}

// queryInt reads an integer query parameter, returning def when absent.
func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest("%s must be an integer", key)
	}
	return n, nil
}

// pathInt64 reads a numeric path parameter.
func pathInt64(r *http.Request, key string) (int64, error) {
	raw := chi.URLParam(r, key)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, badRequest("%s must be a positive integer", key)
	}
	return n, nil
}

// pathDigits reads a numeric identifier too wide for int64 (thread and message ids).
func pathDigits(r *http.Request, key string) (string, error) {
	raw := chi.URLParam(r, key)
	if err := validation.GetValidator().Var(raw, "required,digits"); err != nil {
		return "", badRequest("%s must be a decimal identifier", key)
	}
	return raw, nil
}

// pathUsername reads and normalizes a username path parameter.
func pathUsername(r *http.Request, key string) (string, error) {
	username := NormalizeUsername(chi.URLParam(r, key))
	if !validation.ValidUsername(username) {
		return "", badRequest("%s must be a valid Instagram username", key)
	}
	return username, nil
}

// resolveUserID accepts a numeric pk or a username. Usernames are resolved
// through the client; a failed resolution surfaces as a not-found error.
func resolveUserID(ctx context.Context, client instagram.Client, raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n <= 0 {
			return 0, badRequest("user id must be positive")
		}
		return n, nil
	}

	username := NormalizeUsername(raw)
	if !validation.ValidUsername(username) {
		return 0, badRequest("%q is neither a user id nor a valid username", raw)
	}
	id, err := client.UserIDFromUsername(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("resolve username %q: %w", username, err)
	}
	return id, nil
}

// decodeJSON reads a bounded JSON body into dst and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return badRequest("request body is required")
		}
		return badRequest("invalid JSON body: %v", err)
	}
	return validate(dst)
}

// validate runs the struct validator, keeping a nil result a nil error.
func validate(v interface{}) error {
	if verr := validation.ValidateStruct(v); verr != nil {
		return verr
	}
	return nil
}
