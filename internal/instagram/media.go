// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package instagram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/gramgate/internal/metrics"
)

const maxMediaPage = 50

// MediaInfo fetches one media by pk.
func (c *HTTPClient) MediaInfo(ctx context.Context, mediaPK int64) (*Media, error) {
	res, err := c.do(ctx, call{
		op:       "media_info",
		method:   http.MethodGet,
		path:     "/media/" + pk(mediaPK) + "/info/",
		notFound: ErrMediaNotFound,
	})
	if err != nil {
		return nil, fmt.Errorf("media %d: %w", mediaPK, err)
	}
	item := res.Get("items.0")
	if !item.IsObject() {
		return nil, fmt.Errorf("media %d: %w", mediaPK, ErrMediaNotFound)
	}
	m := decodeMedia(item)
	return &m, nil
}

// MediaID returns the "{media_pk}_{owner_pk}" identifier write endpoints take.
func (c *HTTPClient) MediaID(ctx context.Context, mediaPK int64) (string, error) {
	m, err := c.MediaInfo(ctx, mediaPK)
	if err != nil {
		return "", err
	}
	if m.ID != "" {
		return m.ID, nil
	}
	if m.User == nil {
		return "", fmt.Errorf("media %d: owner unknown, cannot build media id", mediaPK)
	}
	return pk(mediaPK) + "_" + pk(m.User.PK), nil
}

// UserMedias returns up to amount of the user's feed posts, newest first.
func (c *HTTPClient) UserMedias(ctx context.Context, userID int64, amount int) ([]Media, error) {
	out := []Media{}
	if amount <= 0 {
		return out, nil
	}
	maxID := ""
	for {
		q := map[string]string{"count": strconv.Itoa(min(maxMediaPage, amount-len(out)))}
		if maxID != "" {
			q["max_id"] = maxID
		}
		res, err := c.do(ctx, call{
			op:       "user_medias",
			method:   http.MethodGet,
			path:     "/feed/user/" + pk(userID) + "/",
			query:    q,
			notFound: ErrUserNotFound,
		})
		if err != nil {
			return nil, fmt.Errorf("medias of user %d: %w", userID, err)
		}
		items := res.Get("items").Array()
		for _, it := range items {
			out = append(out, decodeMedia(it))
			if len(out) >= amount {
				return out, nil
			}
		}
		next := res.Get("next_max_id").String()
		if !res.Get("more_available").Bool() || next == "" || next == maxID || len(items) == 0 {
			return out, nil
		}
		maxID = next
	}
}

// UserClips returns up to amount of the user's reels.
func (c *HTTPClient) UserClips(ctx context.Context, userID int64, amount int) ([]Media, error) {
	out := []Media{}
	if amount <= 0 {
		return out, nil
	}
	maxID := ""
	for {
		form := map[string]string{
			"target_user_id":     pk(userID),
			"page_size":          strconv.Itoa(min(maxMediaPage, amount-len(out))),
			"include_feed_video": "true",
		}
		if maxID != "" {
			form["max_id"] = maxID
		}
		res, err := c.do(ctx, call{
			op:       "user_clips",
			method:   http.MethodPost,
			path:     "/clips/user/",
			form:     c.plainForm(form),
			notFound: ErrUserNotFound,
		})
		if err != nil {
			return nil, fmt.Errorf("clips of user %d: %w", userID, err)
		}
		items := res.Get("items").Array()
		for _, it := range items {
			out = append(out, decodeMedia(it.Get("media")))
			if len(out) >= amount {
				return out, nil
			}
		}
		next := res.Get("paging_info.max_id").String()
		if !res.Get("paging_info.more_available").Bool() || next == "" || next == maxID || len(items) == 0 {
			return out, nil
		}
		maxID = next
	}
}

func (c *HTTPClient) mediaAction(ctx context.Context, op, mediaID, action string, extra map[string]any, query map[string]string) (bool, error) {
	data := map[string]any{"media_id": mediaID}
	for k, v := range extra {
		data[k] = v
	}
	ok, err := c.statusOK(ctx, call{
		op:       op,
		method:   http.MethodPost,
		path:     "/media/" + url.PathEscape(mediaID) + "/" + action + "/",
		query:    query,
		form:     c.signedForm(data),
		notFound: ErrMediaNotFound,
	})
	if err != nil {
		return false, fmt.Errorf("%s media %s: %w", op, mediaID, err)
	}
	return ok, nil
}

// MediaLike likes a media.
func (c *HTTPClient) MediaLike(ctx context.Context, mediaID string) (bool, error) {
	return c.mediaAction(ctx, "media_like", mediaID, "like", map[string]any{
		"module_name": "feed_timeline",
		"radio_type":  "wifi-none",
	}, map[string]string{"d": "0"})
}

// MediaUnlike removes a like.
func (c *HTTPClient) MediaUnlike(ctx context.Context, mediaID string) (bool, error) {
	return c.mediaAction(ctx, "media_unlike", mediaID, "unlike", map[string]any{
		"module_name": "feed_timeline",
		"radio_type":  "wifi-none",
	}, nil)
}

// MediaDelete deletes one of the session account's own posts.
func (c *HTTPClient) MediaDelete(ctx context.Context, mediaID string) (bool, error) {
	return c.mediaAction(ctx, "media_delete", mediaID, "delete", nil, map[string]string{"media_type": "PHOTO"})
}

// MediaArchive hides a post from the profile.
func (c *HTTPClient) MediaArchive(ctx context.Context, mediaID string) (bool, error) {
	return c.mediaAction(ctx, "media_archive", mediaID, "only_me", nil, nil)
}

// MediaUnarchive restores an archived post.
func (c *HTTPClient) MediaUnarchive(ctx context.Context, mediaID string) (bool, error) {
	return c.mediaAction(ctx, "media_unarchive", mediaID, "undo_only_me", nil, nil)
}

// MediaLikers lists accounts that liked a media.
func (c *HTTPClient) MediaLikers(ctx context.Context, mediaID string) ([]UserShort, error) {
	res, err := c.do(ctx, call{
		op:       "media_likers",
		method:   http.MethodGet,
		path:     "/media/" + url.PathEscape(mediaID) + "/likers/",
		notFound: ErrMediaNotFound,
	})
	if err != nil {
		return nil, fmt.Errorf("likers of media %s: %w", mediaID, err)
	}
	return decodeUsers(res.Get("users")), nil
}

// PhotoDownload streams the largest image of a photo post.
func (c *HTTPClient) PhotoDownload(ctx context.Context, mediaPK int64) (*Download, error) {
	m, err := c.MediaInfo(ctx, mediaPK)
	if err != nil {
		return nil, err
	}
	return c.download(ctx, "photo_download", m, m.ThumbnailURL, ".jpg")
}

// VideoDownload streams a feed video.
func (c *HTTPClient) VideoDownload(ctx context.Context, mediaPK int64) (*Download, error) {
	return c.videoDownload(ctx, "video_download", mediaPK)
}

// IGTVDownload streams a long-form video.
func (c *HTTPClient) IGTVDownload(ctx context.Context, mediaPK int64) (*Download, error) {
	return c.videoDownload(ctx, "igtv_download", mediaPK)
}

// ClipDownload streams a reel.
func (c *HTTPClient) ClipDownload(ctx context.Context, mediaPK int64) (*Download, error) {
	return c.videoDownload(ctx, "clip_download", mediaPK)
}

func (c *HTTPClient) videoDownload(ctx context.Context, op string, mediaPK int64) (*Download, error) {
	m, err := c.MediaInfo(ctx, mediaPK)
	if err != nil {
		return nil, err
	}
	return c.download(ctx, op, m, m.VideoURL, ".mp4")
}

// download fetches a CDN URL without session credentials and hands the open
// body to the caller.
func (c *HTTPClient) download(ctx context.Context, op string, m *Media, src *url.URL, defaultExt string) (*Download, error) {
	if src == nil {
		return nil, fmt.Errorf("media %d: %w", m.PK, ErrNoDownloadURL)
	}

	start := time.Now()
	resp, err := c.cdn.R().SetContext(ctx).SetDoNotParseResponse(true).Get(src.String())
	if err != nil {
		metrics.RecordUpstreamRequest(op, "error", time.Since(start))
		return nil, fmt.Errorf("download media %d: %w", m.PK, err)
	}
	metrics.RecordUpstreamRequest(op, strconv.Itoa(resp.StatusCode()), time.Since(start))

	body := resp.RawBody()
	if resp.StatusCode() != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
		_ = body.Close()
		return nil, fmt.Errorf("download media %d: cdn returned status %d", m.PK, resp.StatusCode())
	}

	ext := path.Ext(src.Path)
	if ext == "" || len(ext) > 5 {
		ext = defaultExt
	}
	owner := "media"
	if m.User != nil && m.User.Username != "" {
		owner = m.User.Username
	}
	contentType := resp.Header().Get("Content-Type")
	if contentType == "" || strings.HasPrefix(contentType, "text/") {
		contentType = "application/octet-stream"
	}

	return &Download{
		Body:          body,
		Filename:      owner + "_" + pk(m.PK) + ext,
		ContentType:   contentType,
		ContentLength: resp.RawResponse.ContentLength,
	}, nil
}
