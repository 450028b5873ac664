// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

// Package main provides the Gramgate HTTP server
//
// Gramgate API exposes one Instagram account over plain REST.
//
// @title Gramgate API
// @version 1.0
// @description REST facade over the Instagram private API for a single account.
// @description
// @description ## Authentication
// @description
// @description The server logs in once with the IG_SESSIONID cookie. Requests carry no credentials.
// @description Without a session, or after a failed login, Instagram endpoints answer 503.
// @description
// @description ## Errors
// @description
// @description Every error body carries `detail` and a machine-readable `code`.
//
// @BasePath /
//
// @tag.name Core
// @tag.description Index and health endpoints
//
// @tag.name Users
// @tag.description User lookup, profiles and follower lists
//
// @tag.name Relationships
// @tag.description Follow, mute, block and close friend actions
//
// @tag.name Media
// @tag.description Posts, reels and downloads
//
// @tag.name Comments
// @tag.description Comment listing and moderation
//
// @tag.name Direct
// @tag.description Direct message threads
package main
