// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package models

// ErrorResponse is the body of every non-2xx JSON response.
//
// Example:
//
//	{
//	  "detail": "Account is private",
//	  "code": "FORBIDDEN",
//	  "request_id": "2f1c3a0e-5b7d-4c1e-9a43-0d6f8e2b7c11"
//	}
type ErrorResponse struct {
	Detail    string      `json:"detail"`
	Code      string      `json:"code"`
	RequestID string      `json:"request_id,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

// RootResponse is served at "/".
type RootResponse struct {
	Message string `json:"message"`
	Health  string `json:"health"`
	Metrics string `json:"metrics"`
}

// HealthResponse reports liveness and the session state. It is always 200.
type HealthResponse struct {
	Status       string   `json:"status"`
	Session      string   `json:"session"`
	LoggedIn     bool     `json:"logged_in"`
	UserID       *int64   `json:"user_id"`
	Username     *string  `json:"username"`
	Capabilities []string `json:"capabilities"`
}

// UserIDResponse pairs a pk with its username.
type UserIDResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// FollowersCountResponse is the follower count of one account.
type FollowersCountResponse struct {
	UserID        int64  `json:"user_id"`
	Username      string `json:"username"`
	FollowerCount int    `json:"follower_count"`
}

// UserActionResponse is the result of a relationship action.
type UserActionResponse struct {
	Success bool  `json:"success"`
	UserID  int64 `json:"user_id"`
}

// BlockResponse reports the blocking state after block or unblock.
type BlockResponse struct {
	Username string `json:"username"`
	UserID   int64  `json:"user_id"`
	Blocked  bool   `json:"blocked"`
}

// MediaPKResponse is a decoded shortcode or URL.
type MediaPKResponse struct {
	MediaPK int64  `json:"media_pk"`
	Code    string `json:"code,omitempty"`
	URL     string `json:"url,omitempty"`
}

// MediaActionResponse is the result of a like, archive or delete.
type MediaActionResponse struct {
	Success bool  `json:"success"`
	MediaPK int64 `json:"media_pk"`
}

// CommentActionResponse is the result of a comment like or unlike.
type CommentActionResponse struct {
	Success   bool  `json:"success"`
	CommentPK int64 `json:"comment_pk"`
}

// BulkDeleteResponse is the result of deleting several comments.
type BulkDeleteResponse struct {
	Success      bool `json:"success"`
	DeletedCount int  `json:"deleted_count"`
}

// ThreadActionResponse is the result of a thread hide, mute or mark.
type ThreadActionResponse struct {
	Success  bool   `json:"success"`
	ThreadID string `json:"thread_id"`
}

// MessageDeleteResponse is the result of deleting a direct message.
type MessageDeleteResponse struct {
	Success   bool   `json:"success"`
	ThreadID  string `json:"thread_id"`
	MessageID string `json:"message_id"`
}
