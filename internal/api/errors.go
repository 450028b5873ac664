// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package api

import (
	"errors"
	"fmt"
	"net/http"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/gramgate/internal/instagram"
	"github.com/tomtom215/gramgate/internal/session"
	"github.com/tomtom215/gramgate/internal/validation"
)

// Error codes for API responses
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeNotImplemented     = "NOT_IMPLEMENTED"
	ErrCodeUnconfigured       = "UNCONFIGURED"
	ErrCodeLoginFailed        = "LOGIN_FAILED"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeExternal           = "EXTERNAL_ERROR"
)

// badRequestError is invalid input detected by a handler.
type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &badRequestError{msg: fmt.Sprintf(format, args...)}
}

// apiError is a classified failure ready to be written.
type apiError struct {
	status  int
	code    string
	detail  string
	details interface{}
}

// notFoundDetails names the missing entity in the response.
var notFoundDetails = []struct {
	kind   error
	detail string
}{
	{instagram.ErrUserNotFound, "User not found"},
	{instagram.ErrMediaNotFound, "Media not found"},
	{instagram.ErrCommentNotFound, "Comment not found"},
	{instagram.ErrThreadNotFound, "Thread not found"},
	{instagram.ErrMessageNotFound, "Message not found"},
}

// translateError maps an error onto status, code and detail. It is the only
// place error kinds become HTTP semantics.
func translateError(err error) apiError {
	var (
		verr     *validation.RequestValidationError
		badReq   *badRequestError
		upstream *instagram.UpstreamError
		loginErr *session.LoginError
	)

	switch {
	case errors.As(err, &verr):
		ae := verr.ToAPIError()
		out := apiError{status: http.StatusBadRequest, code: ErrCodeValidation, detail: ae.Message}
		if len(ae.Details) > 0 {
			out.details = ae.Details
		}
		return out

	case errors.As(err, &badReq):
		return apiError{status: http.StatusBadRequest, code: ErrCodeBadRequest, detail: badReq.msg}

	case errors.Is(err, instagram.ErrInvalidMediaCode), errors.Is(err, instagram.ErrInvalidMediaURL):
		return apiError{status: http.StatusBadRequest, code: ErrCodeBadRequest, detail: err.Error()}

	case errors.Is(err, session.ErrUnconfigured):
		return apiError{
			status: http.StatusServiceUnavailable,
			code:   ErrCodeUnconfigured,
			detail: "Instagram session is not configured; set IG_SESSIONID and restart",
		}

	case errors.As(err, &loginErr):
		if loginErr.InvalidCredential {
			return apiError{
				status: http.StatusServiceUnavailable,
				code:   ErrCodeUnconfigured,
				detail: "Instagram session id is invalid; fix IG_SESSIONID and restart: " + loginErr.Message,
			}
		}
		return apiError{status: http.StatusServiceUnavailable, code: ErrCodeLoginFailed, detail: loginErr.Error()}

	case errors.Is(err, instagram.ErrUnsupported):
		detail := "Operation not supported by this client"
		var ue *instagram.UnsupportedError
		if errors.As(err, &ue) {
			detail = fmt.Sprintf("Operation %q is not supported by this client", ue.Capability)
		}
		return apiError{status: http.StatusNotImplemented, code: ErrCodeNotImplemented, detail: detail}

	case errors.Is(err, instagram.ErrNotFound):
		detail := "Not found"
		for _, nf := range notFoundDetails {
			if errors.Is(err, nf.kind) {
				detail = nf.detail
				break
			}
		}
		return apiError{status: http.StatusNotFound, code: ErrCodeNotFound, detail: detail}

	case errors.Is(err, instagram.ErrPrivateAccount):
		return apiError{status: http.StatusForbidden, code: ErrCodeForbidden, detail: "Account is private"}

	case errors.Is(err, instagram.ErrRateLimited):
		return apiError{status: http.StatusTooManyRequests, code: ErrCodeRateLimited, detail: "Instagram rate limit reached, retry later"}

	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return apiError{status: http.StatusServiceUnavailable, code: ErrCodeServiceUnavailable, detail: "Instagram is unavailable, retry later"}
	}

	detail := err.Error()
	if errors.As(err, &upstream) && upstream.Message != "" {
		detail = upstream.Message
	}
	return apiError{status: http.StatusInternalServerError, code: ErrCodeExternal, detail: detail}
}
