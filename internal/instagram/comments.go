// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package instagram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// MediaComments returns up to amount top-level comments in Instagram's order.
// amount <= 0 reads every page.
func (c *HTTPClient) MediaComments(ctx context.Context, mediaID string, amount int) ([]Comment, error) {
	out := []Comment{}
	minID := ""
	for {
		q := map[string]string{"can_support_threading": "true", "permalink_enabled": "false"}
		if minID != "" {
			q["min_id"] = minID
		}
		res, err := c.do(ctx, call{
			op:       "media_comments",
			method:   http.MethodGet,
			path:     "/media/" + url.PathEscape(mediaID) + "/comments/",
			query:    q,
			notFound: ErrMediaNotFound,
		})
		if err != nil {
			return nil, fmt.Errorf("comments of media %s: %w", mediaID, err)
		}

		page := res.Get("comments").Array()
		for _, cm := range page {
			out = append(out, decodeComment(cm))
			if amount > 0 && len(out) >= amount {
				return out, nil
			}
		}
		next := res.Get("next_min_id").String()
		if next == "" || next == minID || len(page) == 0 {
			return out, nil
		}
		minID = next
	}
}

// MediaComment posts a comment, optionally as a reply.
func (c *HTTPClient) MediaComment(ctx context.Context, mediaID, text string, repliedToCommentID *int64) (*Comment, error) {
	data := map[string]any{
		"comment_text":      text,
		"container_module":  "comments_v2",
		"idempotence_token": uuid.New().String(),
		"radio_type":        "wifi-none",
	}
	if repliedToCommentID != nil {
		data["replied_to_comment_id"] = pk(*repliedToCommentID)
	}
	res, err := c.do(ctx, call{
		op:       "media_comment",
		method:   http.MethodPost,
		path:     "/media/" + url.PathEscape(mediaID) + "/comment/",
		form:     c.signedForm(data),
		notFound: ErrMediaNotFound,
	})
	if err != nil {
		return nil, fmt.Errorf("comment on media %s: %w", mediaID, err)
	}
	cm := decodeComment(res.Get("comment"))
	if cm.RepliedToCommentID == nil && repliedToCommentID != nil {
		cm.RepliedToCommentID = repliedToCommentID
	}
	return &cm, nil
}

func (c *HTTPClient) commentAction(ctx context.Context, op, action string, commentPK int64) (bool, error) {
	ok, err := c.statusOK(ctx, call{
		op:       op,
		method:   http.MethodPost,
		path:     "/media/" + pk(commentPK) + "/" + action + "/",
		form:     c.signedForm(map[string]any{"is_carousel_bumped_post": "false"}),
		notFound: ErrCommentNotFound,
	})
	if err != nil {
		return false, fmt.Errorf("%s comment %d: %w", op, commentPK, err)
	}
	return ok, nil
}

// CommentLike likes a comment.
func (c *HTTPClient) CommentLike(ctx context.Context, commentPK int64) (bool, error) {
	return c.commentAction(ctx, "comment_like", "comment_like", commentPK)
}

// CommentUnlike removes a comment like.
func (c *HTTPClient) CommentUnlike(ctx context.Context, commentPK int64) (bool, error) {
	return c.commentAction(ctx, "comment_unlike", "comment_unlike", commentPK)
}

// CommentBulkDelete deletes several comments of one media in a single call.
func (c *HTTPClient) CommentBulkDelete(ctx context.Context, mediaID string, commentPKs []int64) (bool, error) {
	ids := make([]string, len(commentPKs))
	for i, id := range commentPKs {
		ids[i] = pk(id)
	}
	ok, err := c.statusOK(ctx, call{
		op:     "comment_bulk_delete",
		method: http.MethodPost,
		path:   "/media/" + url.PathEscape(mediaID) + "/comment/bulk_delete/",
		form: c.signedForm(map[string]any{
			"comment_ids_to_delete": strings.Join(ids, ","),
			"container_module":      "self_comments_v2",
		}),
		notFound: ErrMediaNotFound,
	})
	if err != nil {
		return false, fmt.Errorf("delete comments of media %s: %w", mediaID, err)
	}
	return ok, nil
}
