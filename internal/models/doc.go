// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

/*
Package models defines the JSON records Gramgate returns.

Projections (UserSummary, UserProfile, MediaItem, Location, Comment, Thread,
Message) are built from the instagram package's upstream records by the New*
constructors. They are request-scoped: built, serialized and discarded.

Conversion rules:

  - URLs become their string form, or null when absent
  - timestamps become RFC 3339 UTC strings, or null when absent
  - nested records recurse, or become null when absent
  - nil inputs produce nil outputs; slice helpers never return nil

Thread and message identifiers are decimal strings because they exceed 64 bits.

Response envelopes for simple operations (ActionResponse, BlockResponse, ...)
and the error body (ErrorResponse) live in api_responses.go. Successful
responses are not wrapped: a list endpoint returns a bare JSON array.
*/
package models
