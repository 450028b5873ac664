// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/gramgate/internal/instagram"
	"github.com/tomtom215/gramgate/internal/models"
	"github.com/tomtom215/gramgate/internal/validation"
)

// DirectThreads handles GET /direct/threads?amount=&selected_filter=.
//
// @Summary List inbox threads
// @Tags Direct
// @Produce json
// @Param amount query integer false "Maximum items (1-100)"
// @Param selected_filter query string false "'', flagged or unread"
// @Success 200 {array} models.Thread
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /direct/threads [get]
func (h *Handler) DirectThreads(w http.ResponseWriter, r *http.Request) {
	q, err := parseThreadsQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	client, err := h.client(r.Context(), instagram.CapDirectRead)
	if err != nil {
		respondError(w, r, err)
		return
	}
	threads, err := client.DirectThreads(r.Context(), q.Amount, q.SelectedFilter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewThreads(threads))
}

// DirectPending handles GET /direct/pending?amount=.
//
// @Summary List pending threads
// @Tags Direct
// @Produce json
// @Param amount query integer false "Maximum items (1-100)"
// @Success 200 {array} models.Thread
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /direct/pending [get]
func (h *Handler) DirectPending(w http.ResponseWriter, r *http.Request) {
	q, err := parsePageQuery(r, defaultThreadsAmount)
	if err != nil {
		respondError(w, r, err)
		return
	}
	client, err := h.client(r.Context(), instagram.CapDirectRead)
	if err != nil {
		respondError(w, r, err)
		return
	}
	threads, err := client.DirectPendingInbox(r.Context(), q.Amount)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewThreads(threads))
}

// DirectThread handles GET /direct/thread/{id}?amount=.
//
// @Summary Get thread
// @Tags Direct
// @Produce json
// @Param id path string true "Thread id"
// @Param amount query integer false "Maximum messages (1-100)"
// @Success 200 {object} models.Thread
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /direct/thread/{id} [get]
func (h *Handler) DirectThread(w http.ResponseWriter, r *http.Request) {
	threadID, err := pathDigits(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	q, err := parsePageQuery(r, defaultThreadsAmount)
	if err != nil {
		respondError(w, r, err)
		return
	}
	client, err := h.client(r.Context(), instagram.CapDirectRead)
	if err != nil {
		respondError(w, r, err)
		return
	}
	thread, err := client.DirectThread(r.Context(), threadID, q.Amount)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewThread(thread))
}

// DirectMessages handles GET /direct/thread/{id}/messages?amount=.
//
// @Summary List thread messages
// @Tags Direct
// @Produce json
// @Param id path string true "Thread id"
// @Param amount query integer false "Maximum items (1-100)"
// @Success 200 {array} models.Message
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /direct/thread/{id}/messages [get]
func (h *Handler) DirectMessages(w http.ResponseWriter, r *http.Request) {
	threadID, err := pathDigits(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	q, err := parsePageQuery(r, defaultThreadsAmount)
	if err != nil {
		respondError(w, r, err)
		return
	}
	client, err := h.client(r.Context(), instagram.CapDirectRead)
	if err != nil {
		respondError(w, r, err)
		return
	}
	messages, err := client.DirectMessages(r.Context(), threadID, q.Amount)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewMessages(messages))
}

// DirectSend handles POST /direct/send. A request naming no recipient is
// rejected before the session is touched.
//
// @Summary Send direct message
// @Tags Direct
// @Accept json
// @Produce json
// @Param request body api.DirectSendRequest true "Request body"
// @Success 200 {object} models.Message
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /direct/send [post]
func (h *Handler) DirectSend(w http.ResponseWriter, r *http.Request) {
	var req DirectSendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if !req.hasTarget() {
		respondError(w, r, badRequest("at least one of user_ids, usernames or thread_ids is required"))
		return
	}

	client, err := h.client(r.Context(), instagram.CapDirectSend)
	if err != nil {
		respondError(w, r, err)
		return
	}
	userIDs, err := recipientIDs(r.Context(), client, req.UserIDs, req.Usernames)
	if err != nil {
		respondError(w, r, err)
		return
	}
	msg, err := client.DirectSend(r.Context(), req.Text, userIDs, req.ThreadIDs)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewMessage(msg))
}

// recipientIDs merges explicit ids with resolved usernames, dropping duplicates.
func recipientIDs(ctx context.Context, client instagram.Client, ids []int64, usernames []string) ([]int64, error) {
	out := make([]int64, 0, len(ids)+len(usernames))
	seen := make(map[int64]struct{}, cap(out))
	add := func(id int64) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	for _, id := range ids {
		add(id)
	}
	for _, raw := range usernames {
		username := NormalizeUsername(raw)
		if !validation.ValidUsername(username) {
			return nil, badRequest("%q is not a valid Instagram username", raw)
		}
		id, err := client.UserIDFromUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("resolve recipient %q: %w", username, err)
		}
		add(id)
	}
	return out, nil
}

// DirectAnswer handles POST /direct/thread/{id}/answer.
//
// @Summary Reply in thread
// @Tags Direct
// @Accept json
// @Produce json
// @Param id path string true "Thread id"
// @Param request body api.DirectAnswerRequest true "Request body"
// @Success 200 {object} models.Message
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /direct/thread/{id}/answer [post]
func (h *Handler) DirectAnswer(w http.ResponseWriter, r *http.Request) {
	threadID, err := pathDigits(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req DirectAnswerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	client, err := h.client(r.Context(), instagram.CapDirectSend)
	if err != nil {
		respondError(w, r, err)
		return
	}
	msg, err := client.DirectAnswer(r.Context(), threadID, req.Text)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewMessage(msg))
}

// DirectSearch handles GET /direct/search?query=.
//
// @Summary Search threads
// @Tags Direct
// @Produce json
// @Param query query string true "Search text"
// @Success 200 {array} models.Thread
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /direct/search [get]
func (h *Handler) DirectSearch(w http.ResponseWriter, r *http.Request) {
	q := DirectSearchQuery{Query: strings.TrimSpace(r.URL.Query().Get("query"))}
	if err := validate(&q); err != nil {
		respondError(w, r, err)
		return
	}
	client, err := h.client(r.Context(), instagram.CapDirectSearch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	threads, err := client.DirectSearch(r.Context(), q.Query)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewThreads(threads))
}

type threadActionFunc func(c instagram.Client, ctx context.Context, threadID string) (bool, error)

func (h *Handler) threadAction(action threadActionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		threadID, err := pathDigits(r, "id")
		if err != nil {
			respondError(w, r, err)
			return
		}
		client, err := h.client(r.Context(), instagram.CapDirectThreadManage)
		if err != nil {
			respondError(w, r, err)
			return
		}
		ok, err := action(client, r.Context(), threadID)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, models.ThreadActionResponse{Success: ok, ThreadID: threadID})
	}
}

// DirectThreadHide handles DELETE /direct/thread/{id}.
//
// @Summary Hide thread
// @Tags Direct
// @Produce json
// @Param id path string true "Thread id"
// @Success 200 {object} models.ThreadActionResponse
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /direct/thread/{id} [delete]
func (h *Handler) DirectThreadHide() http.HandlerFunc {
	return h.threadAction(instagram.Client.DirectThreadHide)
}

// DirectThreadMarkUnread handles POST /direct/thread/{id}/mark_unread.
//
// @Summary Mark thread unread
// @Tags Direct
// @Produce json
// @Param id path string true "Thread id"
// @Success 200 {object} models.ThreadActionResponse
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /direct/thread/{id}/mark_unread [post]
func (h *Handler) DirectThreadMarkUnread() http.HandlerFunc {
	return h.threadAction(instagram.Client.DirectThreadMarkUnread)
}

// DirectThreadMute handles POST /direct/thread/{id}/mute.
//
// @Summary Mute thread
// @Tags Direct
// @Produce json
// @Param id path string true "Thread id"
// @Success 200 {object} models.ThreadActionResponse
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /direct/thread/{id}/mute [post]
func (h *Handler) DirectThreadMute() http.HandlerFunc {
	return h.threadAction(instagram.Client.DirectThreadMute)
}

// DirectThreadUnmute handles POST /direct/thread/{id}/unmute.
//
// @Summary Unmute thread
// @Tags Direct
// @Produce json
// @Param id path string true "Thread id"
// @Success 200 {object} models.ThreadActionResponse
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /direct/thread/{id}/unmute [post]
func (h *Handler) DirectThreadUnmute() http.HandlerFunc {
	return h.threadAction(instagram.Client.DirectThreadUnmute)
}

// DirectMessageDelete handles DELETE /direct/message/{thread_id}/{message_id}.
//
// @Summary Delete message
// @Tags Direct
// @Produce json
// @Param thread_id path string true "Thread id"
// @Param message_id path string true "Message id"
// @Success 200 {object} models.MessageDeleteResponse
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /direct/message/{thread_id}/{message_id} [delete]
func (h *Handler) DirectMessageDelete(w http.ResponseWriter, r *http.Request) {
	threadID, err := pathDigits(r, "thread_id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	messageID, err := pathDigits(r, "message_id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	client, err := h.client(r.Context(), instagram.CapDirectMessageDelete)
	if err != nil {
		respondError(w, r, err)
		return
	}
	ok, err := client.DirectMessageDelete(r.Context(), threadID, messageID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.MessageDeleteResponse{Success: ok, ThreadID: threadID, MessageID: messageID})
}

// DirectMediaShare handles POST /direct/share/media. A bare media pk is
// expanded to the full media id first.
//
// @Summary Share media in direct
// @Tags Direct
// @Accept json
// @Produce json
// @Param request body api.MediaShareRequest true "Request body"
// @Success 200 {object} models.Message
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /direct/share/media [post]
func (h *Handler) DirectMediaShare(w http.ResponseWriter, r *http.Request) {
	var req MediaShareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	client, err := h.client(r.Context(), instagram.CapDirectMediaShare)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id := strings.TrimSpace(req.MediaID)
	if pk, perr := strconv.ParseInt(id, 10, 64); perr == nil {
		if id, err = mediaID(r.Context(), client, pk); err != nil {
			respondError(w, r, err)
			return
		}
	}
	msg, err := client.DirectMediaShare(r.Context(), id, req.UserIDs)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewMessage(msg))
}
