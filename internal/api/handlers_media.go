// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package api

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/gramgate/internal/instagram"
	"github.com/tomtom215/gramgate/internal/logging"
	"github.com/tomtom215/gramgate/internal/models"
)

// MediaPKFromCode handles GET /media/pk_from_code/{code}.
//
// @Summary Decode media shortcode
// @Tags Media
// @Produce json
// @Param code path string true "Media shortcode"
// @Success 200 {object} models.MediaPKResponse
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Router /media/pk_from_code/{code} [get]
func (h *Handler) MediaPKFromCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	pk, err := instagram.MediaPKFromCode(code)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.MediaPKResponse{MediaPK: pk, Code: code})
}

// MediaPKFromURL handles GET /media/pk_from_url?url=.
//
// @Summary Decode media URL
// @Tags Media
// @Produce json
// @Param url query string true "Post, reel or TV URL"
// @Success 200 {object} models.MediaPKResponse
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Router /media/pk_from_url [get]
func (h *Handler) MediaPKFromURL(w http.ResponseWriter, r *http.Request) {
	q := MediaURLQuery{URL: r.URL.Query().Get("url")}
	if err := validate(&q); err != nil {
		respondError(w, r, err)
		return
	}
	pk, err := instagram.MediaPKFromURL(q.URL)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.MediaPKResponse{MediaPK: pk, URL: q.URL})
}

// MediaInfo handles GET /media/info/{pk}.
//
// @Summary Get media
// @Tags Media
// @Produce json
// @Param pk path integer true "Media pk"
// @Success 200 {object} models.MediaItem
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /media/info/{pk} [get]
func (h *Handler) MediaInfo(w http.ResponseWriter, r *http.Request) {
	pk, err := pathInt64(r, "pk")
	if err != nil {
		respondError(w, r, err)
		return
	}
	client, err := h.client(r.Context(), instagram.CapMediaInfo)
	if err != nil {
		respondError(w, r, err)
		return
	}
	m, err := client.MediaInfo(r.Context(), pk)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewMediaItem(m))
}

type listMediaFunc func(c instagram.Client, ctx context.Context, userID int64, amount int) ([]instagram.Media, error)

// UserMedias handles GET /user/{id}/medias?amount=.
//
// @Summary List user posts
// @Tags Media
// @Produce json
// @Param id path string true "User pk or username"
// @Param amount query integer false "Maximum items (1-100)"
// @Success 200 {array} models.MediaItem
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /user/{id}/medias [get]
func (h *Handler) UserMedias(w http.ResponseWriter, r *http.Request) {
	h.listMedia(w, r, instagram.CapUserMedias, defaultMediasAmount, instagram.Client.UserMedias)
}

// UserClips handles GET /user/{id}/clips?amount=.
//
// @Summary List user reels
// @Tags Media
// @Produce json
// @Param id path string true "User pk or username"
// @Param amount query integer false "Maximum items (1-100)"
// @Success 200 {array} models.MediaItem
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /user/{id}/clips [get]
func (h *Handler) UserClips(w http.ResponseWriter, r *http.Request) {
	h.listMedia(w, r, instagram.CapUserClips, defaultClipsAmount, instagram.Client.UserClips)
}

func (h *Handler) listMedia(w http.ResponseWriter, r *http.Request, capability instagram.Capability, def int, list listMediaFunc) {
	q, err := parsePageQuery(r, def)
	if err != nil {
		respondError(w, r, err)
		return
	}
	client, err := h.client(r.Context(), capability)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := resolveUserID(r.Context(), client, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	medias, err := list(client, r.Context(), id, h.effectiveAmount(q.Amount))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewMediaItems(medias))
}

// mediaID resolves the "{media_pk}_{owner_pk}" id write endpoints need.
func mediaID(ctx context.Context, client instagram.Client, pk int64) (string, error) {
	return client.MediaID(ctx, pk)
}

type mediaActionFunc func(c instagram.Client, ctx context.Context, mediaID string) (bool, error)

// mediaAction serves a like, archive or delete on /media/{pk}.
func (h *Handler) mediaAction(capability instagram.Capability, action mediaActionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pk, err := pathInt64(r, "pk")
		if err != nil {
			respondError(w, r, err)
			return
		}
		client, err := h.client(r.Context(), capability)
		if err != nil {
			respondError(w, r, err)
			return
		}
		id, err := mediaID(r.Context(), client, pk)
		if err != nil {
			respondError(w, r, err)
			return
		}
		ok, err := action(client, r.Context(), id)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, models.MediaActionResponse{Success: ok, MediaPK: pk})
	}
}

// MediaLike handles POST /media/{pk}/like.
//
// @Summary Like media
// @Tags Media
// @Produce json
// @Param pk path integer true "Media pk"
// @Success 200 {object} models.MediaActionResponse
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /media/{pk}/like [post]
func (h *Handler) MediaLike() http.HandlerFunc {
	return h.mediaAction(instagram.CapMediaLike, instagram.Client.MediaLike)
}

// MediaUnlike handles POST /media/{pk}/unlike.
//
// @Summary Unlike media
// @Tags Media
// @Produce json
// @Param pk path integer true "Media pk"
// @Success 200 {object} models.MediaActionResponse
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /media/{pk}/unlike [post]
func (h *Handler) MediaUnlike() http.HandlerFunc {
	return h.mediaAction(instagram.CapMediaLike, instagram.Client.MediaUnlike)
}

// MediaArchive handles POST /media/{pk}/archive.
//
// @Summary Archive media
// @Tags Media
// @Produce json
// @Param pk path integer true "Media pk"
// @Success 200 {object} models.MediaActionResponse
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /media/{pk}/archive [post]
func (h *Handler) MediaArchive() http.HandlerFunc {
	return h.mediaAction(instagram.CapMediaArchive, instagram.Client.MediaArchive)
}

// MediaUnarchive handles POST /media/{pk}/unarchive.
//
// @Summary Unarchive media
// @Tags Media
// @Produce json
// @Param pk path integer true "Media pk"
// @Success 200 {object} models.MediaActionResponse
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /media/{pk}/unarchive [post]
func (h *Handler) MediaUnarchive() http.HandlerFunc {
	return h.mediaAction(instagram.CapMediaArchive, instagram.Client.MediaUnarchive)
}

// MediaDelete handles DELETE /media/{pk}.
//
// @Summary Delete media
// @Tags Media
// @Produce json
// @Param pk path integer true "Media pk"
// @Success 200 {object} models.MediaActionResponse
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /media/{pk} [delete]
func (h *Handler) MediaDelete() http.HandlerFunc {
	return h.mediaAction(instagram.CapMediaDelete, instagram.Client.MediaDelete)
}

// MediaLikers handles GET /media/{pk}/likers.
//
// @Summary List media likers
// @Tags Media
// @Produce json
// @Param pk path integer true "Media pk"
// @Success 200 {array} models.UserSummary
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /media/{pk}/likers [get]
func (h *Handler) MediaLikers(w http.ResponseWriter, r *http.Request) {
	pk, err := pathInt64(r, "pk")
	if err != nil {
		respondError(w, r, err)
		return
	}
	client, err := h.client(r.Context(), instagram.CapMediaLikers)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := mediaID(r.Context(), client, pk)
	if err != nil {
		respondError(w, r, err)
		return
	}
	users, err := client.MediaLikers(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewUserSummaries(users))
}

type downloadFunc func(c instagram.Client, ctx context.Context, mediaPK int64) (*instagram.Download, error)

// downloadFor picks the download operation for a media kind. Unknown kinds
// (albums, unrecognized video products) are rejected.
func downloadFor(m *instagram.Media) (instagram.Capability, downloadFunc, bool) {
	switch {
	case m.MediaType == instagram.MediaTypePhoto:
		return instagram.CapPhotoDownload, instagram.Client.PhotoDownload, true
	case m.MediaType == instagram.MediaTypeVideo && m.ProductType == instagram.ProductTypeFeed:
		return instagram.CapVideoDownload, instagram.Client.VideoDownload, true
	case m.MediaType == instagram.MediaTypeVideo && m.ProductType == instagram.ProductTypeIGTV:
		return instagram.CapIGTVDownload, instagram.Client.IGTVDownload, true
	case m.MediaType == instagram.MediaTypeVideo && m.ProductType == instagram.ProductTypeClips:
		return instagram.CapClipDownload, instagram.Client.ClipDownload, true
	default:
		return "", nil, false
	}
}

// MediaDownload handles GET /media/download/{pk} and streams the file.
//
// @Summary Download media
// @Tags Media
// @Produce octet-stream
// @Param pk path integer true "Media pk"
// @Success 200 {file} binary
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 501 {object} models.ErrorResponse "Capability disabled"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /media/download/{pk} [get]
func (h *Handler) MediaDownload(w http.ResponseWriter, r *http.Request) {
	pk, err := pathInt64(r, "pk")
	if err != nil {
		respondError(w, r, err)
		return
	}
	client, err := h.client(r.Context(), instagram.CapMediaInfo)
	if err != nil {
		respondError(w, r, err)
		return
	}
	m, err := client.MediaInfo(r.Context(), pk)
	if err != nil {
		respondError(w, r, err)
		return
	}

	capability, download, ok := downloadFor(m)
	if !ok {
		respondError(w, r, badRequest("Unsupported media type"))
		return
	}
	if err := h.caps.Require(capability); err != nil {
		respondError(w, r, err)
		return
	}

	dl, err := download(client, r.Context(), pk)
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer dl.Body.Close()

	w.Header().Set("Content-Type", dl.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": dl.Filename}))
	if dl.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(dl.ContentLength, 10))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, dl.Body); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Int64("media_pk", pk).Msg("Media download interrupted")
	}
}
