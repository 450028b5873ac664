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
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

const (
	directThreadPage  = 20
	directMessagePage = 20
)

// inbox pages through direct_v2/{box}/ until amount threads are collected.
func (c *HTTPClient) inbox(ctx context.Context, op, box string, amount int, selectedFilter string) ([]DirectThread, error) {
	threads := []DirectThread{}
	if amount <= 0 {
		return threads, nil
	}
	cursor := ""
	for {
		q := map[string]string{
			"visual_message_return_type": "unseen",
			"thread_message_limit":       "10",
			"persistentBadging":          "true",
			"limit":                      strconv.Itoa(min(directThreadPage, amount-len(threads))),
		}
		if selectedFilter != "" {
			q["selected_filter"] = selectedFilter
			if selectedFilter == "unread" {
				q["fetch_reason"] = "manual_refresh"
			}
		}
		if cursor != "" {
			q["cursor"] = cursor
			q["direction"] = "older"
		}

		res, err := c.do(ctx, call{
			op:     op,
			method: http.MethodGet,
			path:   "/direct_v2/" + box + "/",
			query:  q,
		})
		if err != nil {
			return nil, fmt.Errorf("direct %s: %w", box, err)
		}

		page := res.Get("inbox.threads").Array()
		for _, t := range page {
			threads = append(threads, decodeThread(t))
			if len(threads) >= amount {
				return threads, nil
			}
		}
		next := res.Get("inbox.oldest_cursor").String()
		if !res.Get("inbox.has_older").Bool() || next == "" || next == cursor || len(page) == 0 {
			return threads, nil
		}
		cursor = next
	}
}

// DirectThreads lists inbox threads. selectedFilter is "", "flagged" or "unread".
func (c *HTTPClient) DirectThreads(ctx context.Context, amount int, selectedFilter string) ([]DirectThread, error) {
	return c.inbox(ctx, "direct_threads", "inbox", amount, selectedFilter)
}

// DirectPendingInbox lists message requests.
func (c *HTTPClient) DirectPendingInbox(ctx context.Context, amount int) ([]DirectThread, error) {
	return c.inbox(ctx, "direct_pending_inbox", "pending_inbox", amount, "")
}

// DirectThread fetches one thread with up to amount of its newest messages.
func (c *HTTPClient) DirectThread(ctx context.Context, threadID string, amount int) (*DirectThread, error) {
	var (
		thread *DirectThread
		items  []gjson.Result
		cursor string
	)
	for {
		q := map[string]string{
			"visual_message_return_type": "unseen",
			"direction":                  "older",
			"limit":                      strconv.Itoa(directMessagePage),
		}
		if cursor != "" {
			q["cursor"] = cursor
		}
		res, err := c.do(ctx, call{
			op:       "direct_thread",
			method:   http.MethodGet,
			path:     "/direct_v2/threads/" + url.PathEscape(threadID) + "/",
			query:    q,
			notFound: ErrThreadNotFound,
		})
		if err != nil {
			return nil, fmt.Errorf("direct thread %s: %w", threadID, err)
		}
		t := res.Get("thread")
		if !t.IsObject() {
			return nil, fmt.Errorf("direct thread %s: %w", threadID, ErrThreadNotFound)
		}
		if thread == nil {
			decoded := decodeThread(t)
			thread = &decoded
		}

		page := t.Get("items").Array()
		items = append(items, page...)
		if amount > 0 && len(items) >= amount {
			items = items[:amount]
			break
		}
		next := t.Get("oldest_cursor").String()
		if !t.Get("has_older").Bool() || next == "" || next == cursor || len(page) == 0 {
			break
		}
		cursor = next
	}

	thread.Messages = make([]DirectMessage, 0, len(items))
	for _, it := range items {
		thread.Messages = append(thread.Messages, decodeMessage(it, thread.ID))
	}
	return thread, nil
}

// DirectMessages returns up to amount messages of a thread, newest first.
func (c *HTTPClient) DirectMessages(ctx context.Context, threadID string, amount int) ([]DirectMessage, error) {
	t, err := c.DirectThread(ctx, threadID, amount)
	if err != nil {
		return nil, err
	}
	return t.Messages, nil
}

// DirectSend sends a text message to users (opening or reusing a thread) or
// to existing threads.
func (c *HTTPClient) DirectSend(ctx context.Context, text string, userIDs []int64, threadIDs []string) (*DirectMessage, error) {
	if len(userIDs) == 0 && len(threadIDs) == 0 {
		return nil, fmt.Errorf("direct send needs at least one recipient")
	}
	token := uuid.New().String()
	form := map[string]string{
		"action":               "send_item",
		"is_shh_mode":          "0",
		"send_attribution":     "direct_thread",
		"client_context":       token,
		"mutation_token":       token,
		"offline_threading_id": token,
		"text":                 text,
	}
	if len(userIDs) > 0 {
		ids := make([]string, len(userIDs))
		for i, id := range userIDs {
			ids[i] = pk(id)
		}
		form["recipient_users"] = "[[" + strings.Join(ids, ",") + "]]"
	} else {
		form["thread_ids"] = "[" + strings.Join(threadIDs, ",") + "]"
	}

	itemType := "text"
	if strings.Contains(text, "http://") || strings.Contains(text, "https://") {
		itemType = "link"
		form["link_text"] = text
		form["link_urls"] = linkURLs(text)
		delete(form, "text")
	}

	res, err := c.do(ctx, call{
		op:       "direct_send",
		method:   http.MethodPost,
		path:     "/direct_v2/threads/broadcast/" + itemType + "/",
		form:     c.plainForm(form),
		notFound: ErrThreadNotFound,
	})
	if err != nil {
		return nil, fmt.Errorf("direct send: %w", err)
	}
	return sentMessage(res, text), nil
}

// linkURLs encodes the URLs found in text as the JSON array the link endpoint expects.
func linkURLs(text string) string {
	var urls []string
	for _, f := range strings.Fields(text) {
		if strings.HasPrefix(f, "http://") || strings.HasPrefix(f, "https://") {
			urls = append(urls, strconv.Quote(f))
		}
	}
	return "[" + strings.Join(urls, ",") + "]"
}

// sentMessage reads the broadcast acknowledgement. The API only echoes ids,
// so the text comes from the request.
func sentMessage(res gjson.Result, text string) *DirectMessage {
	payload := res.Get("payload")
	if !payload.Exists() {
		payload = res.Get("message_metadata.0")
	}
	msg := decodeMessage(payload, "")
	if msg.Text == nil && text != "" {
		msg.Text = &text
	}
	if msg.UserID == nil {
		if uid := res.Get("payload.user_id"); uid.Exists() {
			n := uid.Int()
			msg.UserID = &n
		}
	}
	return &msg
}

// DirectAnswer replies in an existing thread.
func (c *HTTPClient) DirectAnswer(ctx context.Context, threadID, text string) (*DirectMessage, error) {
	return c.DirectSend(ctx, text, nil, []string{threadID})
}

// DirectSearch finds existing threads matching query. Ranked recipients
// without a thread are skipped.
func (c *HTTPClient) DirectSearch(ctx context.Context, query string) ([]DirectThread, error) {
	res, err := c.do(ctx, call{
		op:     "direct_search",
		method: http.MethodGet,
		path:   "/direct_v2/ranked_recipients/",
		query: map[string]string{
			"mode":         "universal",
			"query":        query,
			"show_threads": "true",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("direct search %q: %w", query, err)
	}
	threads := []DirectThread{}
	for _, r := range res.Get("ranked_recipients").Array() {
		if t := r.Get("thread"); t.IsObject() {
			threads = append(threads, decodeThread(t))
		}
	}
	return threads, nil
}

func (c *HTTPClient) threadAction(ctx context.Context, op, threadID, action string) (bool, error) {
	ok, err := c.statusOK(ctx, call{
		op:       op,
		method:   http.MethodPost,
		path:     "/direct_v2/threads/" + url.PathEscape(threadID) + "/" + action + "/",
		form:     c.plainForm(map[string]string{}),
		notFound: ErrThreadNotFound,
	})
	if err != nil {
		return false, fmt.Errorf("%s thread %s: %w", action, threadID, err)
	}
	return ok, nil
}

// DirectThreadHide removes a thread from the inbox.
func (c *HTTPClient) DirectThreadHide(ctx context.Context, threadID string) (bool, error) {
	return c.threadAction(ctx, "direct_thread_hide", threadID, "hide")
}

// DirectThreadMarkUnread flags a thread as unread.
func (c *HTTPClient) DirectThreadMarkUnread(ctx context.Context, threadID string) (bool, error) {
	return c.threadAction(ctx, "direct_thread_mark_unread", threadID, "mark_unread")
}

// DirectThreadMute silences thread notifications.
func (c *HTTPClient) DirectThreadMute(ctx context.Context, threadID string) (bool, error) {
	return c.threadAction(ctx, "direct_thread_mute", threadID, "mute")
}

// DirectThreadUnmute restores thread notifications.
func (c *HTTPClient) DirectThreadUnmute(ctx context.Context, threadID string) (bool, error) {
	return c.threadAction(ctx, "direct_thread_unmute", threadID, "unmute")
}

// DirectMessageDelete deletes one of the account's own messages.
func (c *HTTPClient) DirectMessageDelete(ctx context.Context, threadID, messageID string) (bool, error) {
	ok, err := c.statusOK(ctx, call{
		op:     "direct_message_delete",
		method: http.MethodPost,
		path: "/direct_v2/threads/" + url.PathEscape(threadID) +
			"/items/" + url.PathEscape(messageID) + "/delete/",
		form:     c.plainForm(map[string]string{"is_shh_mode": "0", "send_attribution": "direct_thread"}),
		notFound: ErrMessageNotFound,
	})
	if err != nil {
		return false, fmt.Errorf("delete message %s in thread %s: %w", messageID, threadID, err)
	}
	return ok, nil
}

// DirectMediaShare shares a post with users.
func (c *HTTPClient) DirectMediaShare(ctx context.Context, mediaID string, userIDs []int64) (*DirectMessage, error) {
	if len(userIDs) == 0 {
		return nil, fmt.Errorf("media share needs at least one recipient")
	}
	ids := make([]string, len(userIDs))
	for i, id := range userIDs {
		ids[i] = pk(id)
	}
	token := uuid.New().String()
	res, err := c.do(ctx, call{
		op:     "direct_media_share",
		method: http.MethodPost,
		path:   "/direct_v2/threads/broadcast/media_share/",
		query:  map[string]string{"media_type": "photo"},
		form: c.plainForm(map[string]string{
			"action":               "send_item",
			"client_context":       token,
			"mutation_token":       token,
			"offline_threading_id": token,
			"media_id":             mediaID,
			"recipient_users":      "[[" + strings.Join(ids, ",") + "]]",
			"send_attribution":     "feed_timeline",
		}),
		notFound: ErrMediaNotFound,
	})
	if err != nil {
		return nil, fmt.Errorf("share media %s: %w", mediaID, err)
	}
	return sentMessage(res, ""), nil
}
