// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/gramgate/internal/middleware"
)

// Router binds the handler to URL paths.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil middleware factory uses the defaults.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// Setup builds the chi route tree.
func (router *Router) Setup() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(APISecurityHeaders())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, apiError{status: http.StatusNotFound, code: ErrCodeNotFound, detail: "Not Found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, apiError{status: http.StatusMethodNotAllowed, code: ErrCodeMethodNotAllowed, detail: "Method Not Allowed"})
	})

	// ========================
	// Operational Endpoints
	// ========================
	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// Instagram Endpoints
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Route("/user", func(r chi.Router) {
			r.Get("/id_from_username/{username}", h.UserIDFromUsername)
			r.Get("/username_from_id/{id}", h.UsernameFromUserID)
			r.Get("/info/{id}", h.UserInfo)
			r.Get("/info_by_username/{username}", h.UserInfoByUsername)
			r.Get("/followers_count/by_username/{username}", h.FollowersCountByUsername)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/followers_count", h.FollowersCount)
				r.Get("/followers", h.Followers)
				r.Get("/following", h.Following)
				r.Get("/medias", h.UserMedias)
				r.Get("/clips", h.UserClips)

				r.Post("/follow", h.Follow())
				r.Post("/unfollow", h.Unfollow())
				r.Post("/remove_follower", h.RemoveFollower())
				r.Post("/mute_posts", h.MutePosts())
				r.Post("/unmute_posts", h.UnmutePosts())
				r.Post("/mute_stories", h.MuteStories())
				r.Post("/unmute_stories", h.UnmuteStories())
				r.Post("/close_friend/add", h.CloseFriendAdd())
				r.Post("/close_friend/remove", h.CloseFriendRemove())
			})
		})

		r.Get("/followers/{username}/search", h.SearchFollowers)
		r.Get("/following/{username}/search", h.SearchFollowing)

		r.Post("/users/{username}/block", h.BlockUser)
		r.Post("/users/{username}/unblock", h.UnblockUser)

		r.Route("/media", func(r chi.Router) {
			r.Get("/pk_from_code/{code}", h.MediaPKFromCode)
			r.Get("/pk_from_url", h.MediaPKFromURL)
			r.Get("/info/{pk}", h.MediaInfo)
			r.Get("/download/{pk}", h.MediaDownload)

			r.Route("/{pk}", func(r chi.Router) {
				r.Delete("/", h.MediaDelete())
				r.Post("/like", h.MediaLike())
				r.Post("/unlike", h.MediaUnlike())
				r.Post("/archive", h.MediaArchive())
				r.Post("/unarchive", h.MediaUnarchive())
				r.Get("/likers", h.MediaLikers)

				r.Get("/comments", h.MediaComments)
				r.Delete("/comments", h.BulkDeleteComments)
				r.Post("/comment", h.CreateComment)
			})
		})

		r.Route("/comment/{pk}", func(r chi.Router) {
			r.Post("/like", h.CommentLike())
			r.Post("/unlike", h.CommentUnlike())
		})

		r.Route("/direct", func(r chi.Router) {
			r.Get("/threads", h.DirectThreads)
			r.Get("/pending", h.DirectPending)
			r.Get("/search", h.DirectSearch)
			r.Post("/send", h.DirectSend)
			r.Post("/share/media", h.DirectMediaShare)
			r.Delete("/message/{thread_id}/{message_id}", h.DirectMessageDelete)

			r.Route("/thread/{id}", func(r chi.Router) {
				r.Get("/", h.DirectThread)
				r.Delete("/", h.DirectThreadHide())
				r.Get("/messages", h.DirectMessages)
				r.Post("/answer", h.DirectAnswer)
				r.Post("/mark_unread", h.DirectThreadMarkUnread())
				r.Post("/mute", h.DirectThreadMute())
				r.Post("/unmute", h.DirectThreadUnmute())
			})
		})
	})

	return r
}
