// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package api

import (
	"net/http"
	"strings"
)

// Query parameter bounds.
const (
	defaultSearchAmount  = 50
	defaultMediasAmount  = 20
	defaultClipsAmount   = 50
	defaultThreadsAmount = 20
)

// EnumerationQuery is ?amount= where 0 means "all".
type EnumerationQuery struct {
	Amount int `query:"amount" validate:"gte=0"`
}

// SearchQuery is ?q=&amount= for follower and following search.
type SearchQuery struct {
	Query  string `query:"q" validate:"required,max=100"`
	Amount int    `query:"amount" validate:"gte=1,lte=1000"`
}

// PageQuery is a bounded ?amount= for medias, clips and direct lists.
type PageQuery struct {
	Amount int `query:"amount" validate:"gte=1,lte=100"`
}

// ThreadsQuery lists direct threads.
type ThreadsQuery struct {
	Amount         int    `query:"amount" validate:"gte=1,lte=100"`
	SelectedFilter string `query:"selected_filter" validate:"omitempty,oneof=flagged unread"`
}

// DirectSearchQuery is ?query= for thread search.
type DirectSearchQuery struct {
	Query string `query:"query" validate:"required,max=100"`
}

// MediaURLQuery is ?url= for pk_from_url.
type MediaURLQuery struct {
	URL string `query:"url" validate:"required,http_url"`
}

// CommentRequest creates a comment or a reply.
type CommentRequest struct {
	Text               string `json:"text" validate:"required,max=2200"`
	RepliedToCommentID *int64 `json:"replied_to_comment_id,omitempty" validate:"omitempty,gt=0"`
}

// BulkDeleteCommentsRequest deletes several comments of one media.
type BulkDeleteCommentsRequest struct {
	CommentPKs []int64 `json:"comment_pks" validate:"required,min=1,max=100,dive,gt=0"`
}

// DirectSendRequest sends a text to users and/or threads. At least one
// target list must be non-empty; that rule is checked by the handler.
type DirectSendRequest struct {
	Text      string   `json:"text" validate:"required,max=1000"`
	UserIDs   []int64  `json:"user_ids" validate:"omitempty,dive,gt=0"`
	Usernames []string `json:"usernames" validate:"omitempty,dive,required"`
	ThreadIDs []string `json:"thread_ids" validate:"omitempty,dive,digits"`
}

// hasTarget reports whether any recipient was named.
func (r *DirectSendRequest) hasTarget() bool {
	return len(r.UserIDs) > 0 || len(r.Usernames) > 0 || len(r.ThreadIDs) > 0
}

// DirectAnswerRequest replies in a thread.
type DirectAnswerRequest struct {
	Text string `json:"text" validate:"required,max=1000"`
}

// MediaShareRequest shares a post with users. MediaID is a media pk or a
// "{media_pk}_{owner_pk}" id.
type MediaShareRequest struct {
	MediaID string  `json:"media_id" validate:"required,max=64"`
	UserIDs []int64 `json:"user_ids" validate:"required,min=1,dive,gt=0"`
}

func parseEnumerationQuery(r *http.Request) (EnumerationQuery, error) {
	var q EnumerationQuery
	var err error
	if q.Amount, err = queryInt(r, "amount", 0); err != nil {
		return q, err
	}
	return q, validate(&q)
}

func parseSearchQuery(r *http.Request) (SearchQuery, error) {
	q := SearchQuery{Query: strings.TrimSpace(r.URL.Query().Get("q"))}
	var err error
	if q.Amount, err = queryInt(r, "amount", defaultSearchAmount); err != nil {
		return q, err
	}
	return q, validate(&q)
}

func parsePageQuery(r *http.Request, def int) (PageQuery, error) {
	var q PageQuery
	var err error
	if q.Amount, err = queryInt(r, "amount", def); err != nil {
		return q, err
	}
	return q, validate(&q)
}

func parseThreadsQuery(r *http.Request) (ThreadsQuery, error) {
	q := ThreadsQuery{SelectedFilter: strings.TrimSpace(r.URL.Query().Get("selected_filter"))}
	var err error
	if q.Amount, err = queryInt(r, "amount", defaultThreadsAmount); err != nil {
		return q, err
	}
	return q, validate(&q)
}
