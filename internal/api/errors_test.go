// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/gramgate/internal/instagram"
	"github.com/tomtom215/gramgate/internal/session"
	"github.com/tomtom215/gramgate/internal/validation"
)

// fakeSessions serves a fixed client or error without the login machinery.
type fakeSessions struct {
	client instagram.Client
	err    error
}

func (f *fakeSessions) Client(context.Context) (instagram.Client, error) { return f.client, f.err }
func (f *fakeSessions) Status() session.Status { return session.Status{State: session.StateIdle} }
func (f *fakeSessions) Capabilities() instagram.CapabilitySet { return instagram.NewCapabilitySet() }

func TestTranslateError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
		detail string
	}{
		{"bad request", badRequest("amount must be an integer"), http.StatusBadRequest, ErrCodeBadRequest, "amount must be an integer"},
		{"invalid code", fmt.Errorf("%w: x", instagram.ErrInvalidMediaCode), http.StatusBadRequest, ErrCodeBadRequest, ""},
		{"unconfigured", session.ErrUnconfigured, http.StatusServiceUnavailable, ErrCodeUnconfigured, ""},
		{"unsupported", &instagram.UnsupportedError{Capability: instagram.CapBlock}, http.StatusNotImplemented, ErrCodeNotImplemented, `Operation "block" is not supported by this client`},
		{"user not found wrapped", fmt.Errorf("resolve: %w", instagram.ErrUserNotFound), http.StatusNotFound, ErrCodeNotFound, "User not found"},
		{"thread not found", instagram.ErrThreadNotFound, http.StatusNotFound, ErrCodeNotFound, "Thread not found"},
		{"private", instagram.ErrPrivateAccount, http.StatusForbidden, ErrCodeForbidden, "Account is private"},
		{"rate limited", instagram.ErrRateLimited, http.StatusTooManyRequests, ErrCodeRateLimited, ""},
		{"breaker open", gobreaker.ErrOpenState, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, ""},
		{"breaker half-open", gobreaker.ErrTooManyRequests, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, ""},
		{"upstream message verbatim", &instagram.UpstreamError{Operation: "media_info", StatusCode: 400, Message: "Media is unavailable"}, http.StatusInternalServerError, ErrCodeExternal, "Media is unavailable"},
		{"login failure", &session.LoginError{Message: "boom"}, http.StatusServiceUnavailable, ErrCodeLoginFailed, "instagram login failed: boom"},
		{"login with malformed session id", &session.LoginError{Message: "invalid session id", InvalidCredential: true}, http.StatusServiceUnavailable, ErrCodeUnconfigured, ""},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, ErrCodeExternal, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := translateError(tt.err)
			if got.status != tt.status || got.code != tt.code {
				t.Errorf("got %d %s, want %d %s", got.status, got.code, tt.status, tt.code)
			}
			if tt.detail != "" && got.detail != tt.detail {
				t.Errorf("detail = %q, want %q", got.detail, tt.detail)
			}
		})
	}
}

func TestTranslateError_ValidationDetails(t *testing.T) {
	t.Parallel()

	q := PageQuery{Amount: 500}
	verr := validation.ValidateStruct(&q)
	if verr == nil {
		t.Fatal("expected validation failure")
	}
	got := translateError(verr)
	if got.status != http.StatusBadRequest || got.code != ErrCodeValidation {
		t.Fatalf("got %d %s", got.status, got.code)
	}
	if got.detail != "amount must be less than or equal to 100" {
		t.Errorf("detail = %q", got.detail)
	}
	if got.details == nil {
		t.Error("details should name the field")
	}
}

func TestHandlerClient_SessionError(t *testing.T) {
	t.Parallel()

	h := NewHandler(&fakeSessions{err: session.ErrUnconfigured}, 0)
	if _, err := h.client(context.Background(), instagram.CapFollowers); !errors.Is(err, session.ErrUnconfigured) {
		t.Errorf("err = %v, want ErrUnconfigured", err)
	}
}
