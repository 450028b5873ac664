// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/gramgate/internal/instagram"
	"github.com/tomtom215/gramgate/internal/models"
)

// MediaComments handles GET /media/{pk}/comments?amount=.
//
// @Summary List comments
// @Tags Comments
// @Produce json
// @Param pk path integer true "Media pk"
// @Param amount query integer false "Maximum items; 0 returns all"
// @Success 200 {array} models.Comment
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /media/{pk}/comments [get]
func (h *Handler) MediaComments(w http.ResponseWriter, r *http.Request) {
	pk, err := pathInt64(r, "pk")
	if err != nil {
		respondError(w, r, err)
		return
	}
	q, err := parseEnumerationQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	client, err := h.client(r.Context(), instagram.CapComments)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := mediaID(r.Context(), client, pk)
	if err != nil {
		respondError(w, r, err)
		return
	}
	comments, err := client.MediaComments(r.Context(), id, h.effectiveAmount(q.Amount))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewComments(comments))
}

// CreateComment handles POST /media/{pk}/comment.
//
// @Summary Post comment
// @Tags Comments
// @Accept json
// @Produce json
// @Param pk path integer true "Media pk"
// @Param request body api.CommentRequest true "Request body"
// @Success 200 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /media/{pk}/comment [post]
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	pk, err := pathInt64(r, "pk")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req CommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	client, err := h.client(r.Context(), instagram.CapCommentCreate)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := mediaID(r.Context(), client, pk)
	if err != nil {
		respondError(w, r, err)
		return
	}
	comment, err := client.MediaComment(r.Context(), id, req.Text, req.RepliedToCommentID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewComment(comment))
}

type commentActionFunc func(c instagram.Client, ctx context.Context, commentPK int64) (bool, error)

func (h *Handler) commentAction(action commentActionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pk, err := pathInt64(r, "pk")
		if err != nil {
			respondError(w, r, err)
			return
		}
		client, err := h.client(r.Context(), instagram.CapCommentLike)
		if err != nil {
			respondError(w, r, err)
			return
		}
		ok, err := action(client, r.Context(), pk)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, models.CommentActionResponse{Success: ok, CommentPK: pk})
	}
}

// CommentLike handles POST /comment/{pk}/like.
//
// @Summary Like comment
// @Tags Comments
// @Produce json
// @Param pk path integer true "Comment pk"
// @Success 200 {object} models.CommentActionResponse
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /comment/{pk}/like [post]
func (h *Handler) CommentLike() http.HandlerFunc {
	return h.commentAction(instagram.Client.CommentLike)
}

// CommentUnlike handles POST /comment/{pk}/unlike.
//
// @Summary Unlike comment
// @Tags Comments
// @Produce json
// @Param pk path integer true "Comment pk"
// @Success 200 {object} models.CommentActionResponse
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /comment/{pk}/unlike [post]
func (h *Handler) CommentUnlike() http.HandlerFunc {
	return h.commentAction(instagram.Client.CommentUnlike)
}

// BulkDeleteComments handles DELETE /media/{pk}/comments.
//
// @Summary Delete comments
// @Tags Comments
// @Accept json
// @Produce json
// @Param pk path integer true "Media pk"
// @Param request body api.BulkDeleteCommentsRequest true "Request body"
// @Success 200 {object} models.BulkDeleteResponse
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /media/{pk}/comments [delete]
func (h *Handler) BulkDeleteComments(w http.ResponseWriter, r *http.Request) {
	pk, err := pathInt64(r, "pk")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req BulkDeleteCommentsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	client, err := h.client(r.Context(), instagram.CapCommentBulkDelete)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := mediaID(r.Context(), client, pk)
	if err != nil {
		respondError(w, r, err)
		return
	}
	ok, err := client.CommentBulkDelete(r.Context(), id, req.CommentPKs)
	if err != nil {
		respondError(w, r, err)
		return
	}
	resp := models.BulkDeleteResponse{Success: ok}
	if ok {
		resp.DeletedCount = len(req.CommentPKs)
	}
	respondJSON(w, http.StatusOK, resp)
}
