// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package instagram

import (
	"errors"
	"fmt"
)

// Error kinds. Callers classify with errors.Is; concrete errors wrap these.
var (
	ErrNotFound        = errors.New("not found")
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrMediaNotFound   = fmt.Errorf("media %w", ErrNotFound)
	ErrCommentNotFound = fmt.Errorf("comment %w", ErrNotFound)
	ErrThreadNotFound  = fmt.Errorf("thread %w", ErrNotFound)
	ErrMessageNotFound = fmt.Errorf("message %w", ErrNotFound)

	ErrPrivateAccount    = errors.New("account is private")
	ErrLoginRequired     = errors.New("login required")
	ErrChallengeRequired = errors.New("challenge required")
	ErrRateLimited       = errors.New("rate limited by instagram")
	ErrUnsupported       = errors.New("operation not supported")
	ErrInvalidSessionID  = errors.New("invalid session id")
	ErrInvalidMediaCode  = errors.New("invalid media code")
	ErrInvalidMediaURL   = errors.New("invalid media url")
	ErrNoDownloadURL     = errors.New("media has no downloadable url")
)

// UpstreamError is a failed Instagram API response. Message carries the
// upstream text verbatim; Unwrap exposes the classified kind, if any.
type UpstreamError struct {
	Operation  string
	StatusCode int
	Message    string
	ErrorType  string
	kind       error
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.kind != nil {
		return e.kind.Error()
	}
	return fmt.Sprintf("instagram %s failed with status %d", e.Operation, e.StatusCode)
}

func (e *UpstreamError) Unwrap() error {
	return e.kind
}

// UnsupportedError names the capability that is switched off.
type UnsupportedError struct {
	Capability Capability
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("operation %q is not supported by this client", e.Capability)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}
