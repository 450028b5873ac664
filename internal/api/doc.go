// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

/*
Package api provides the HTTP REST layer of Gramgate.

Every handler follows the same shape: validate path, query and body input,
check the operation against the client's capability set, obtain the shared
session client (logging in on first use), call one client operation and
project the result through the models package.

Key Components:

  - Router: chi route tree and middleware stack
  - Handler: one method per endpoint, split by area (users, media, comments, direct)
  - translateError: the single mapping from error kinds to HTTP status and code
  - ChiMiddleware: go-chi/cors and go-chi/httprate factories

Error Mapping:

	validation failure          400 VALIDATION_ERROR
	malformed input             400 BAD_REQUEST
	private account             403 FORBIDDEN
	unknown user/media/thread   404 NOT_FOUND
	Instagram throttling        429 RATE_LIMITED
	disabled capability         501 NOT_IMPLEMENTED
	no session configured       503 UNCONFIGURED
	malformed session id        503 UNCONFIGURED
	session login failed        503 LOGIN_FAILED (sticky until restart)
	circuit open                503 SERVICE_UNAVAILABLE
	anything else               500 EXTERNAL_ERROR (upstream message verbatim)

Successful responses are bare JSON values; errors are
{"detail", "code", "request_id"} objects.

Usage Example:

	handler := api.NewHandler(sessionManager, cfg.API.MaxEnumeration)
	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(cfg.Security))
	router := api.NewRouter(handler, mw)
	http.ListenAndServe(cfg.Server.Addr(), router.Setup())
*/
package api
