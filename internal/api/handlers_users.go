// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/gramgate/internal/instagram"
	"github.com/tomtom215/gramgate/internal/models"
)

// UserIDFromUsername handles GET /user/id_from_username/{username}.
//
// @Summary Resolve username to user id
// @Tags Users
// @Produce json
// @Param username path string true "Instagram username"
// @Success 200 {object} models.UserIDResponse
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /user/id_from_username/{username} [get]
func (h *Handler) UserIDFromUsername(w http.ResponseWriter, r *http.Request) {
	username, err := pathUsername(r, "username")
	if err != nil {
		respondError(w, r, err)
		return
	}
	client, err := h.client(r.Context(), instagram.CapUserLookup)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := client.UserIDFromUsername(r.Context(), username)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.UserIDResponse{UserID: id, Username: username})
}

// UsernameFromUserID handles GET /user/username_from_id/{id}.
//
// @Summary Resolve user id to username
// @Tags Users
// @Produce json
// @Param id path string true "User pk or username"
// @Success 200 {object} models.UserIDResponse
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /user/username_from_id/{id} [get]
func (h *Handler) UsernameFromUserID(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	client, err := h.client(r.Context(), instagram.CapUserLookup)
	if err != nil {
		respondError(w, r, err)
		return
	}
	username, err := client.UsernameFromUserID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.UserIDResponse{UserID: id, Username: username})
}

// UserInfo handles GET /user/info/{id}; {id} may be a pk or a username.
//
// @Summary Get user profile
// @Tags Users
// @Produce json
// @Param id path string true "User pk or username"
// @Success 200 {object} models.UserProfile
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /user/info/{id} [get]
func (h *Handler) UserInfo(w http.ResponseWriter, r *http.Request) {
	user, err := h.userByRef(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewUserProfile(user))
}

// UserInfoByUsername handles GET /user/info_by_username/{username}.
//
// @Summary Get user profile by username
// @Tags Users
// @Produce json
// @Param username path string true "Instagram username"
// @Success 200 {object} models.UserProfile
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /user/info_by_username/{username} [get]
func (h *Handler) UserInfoByUsername(w http.ResponseWriter, r *http.Request) {
	username, err := pathUsername(r, "username")
	if err != nil {
		respondError(w, r, err)
		return
	}
	client, err := h.client(r.Context(), instagram.CapUserInfo)
	if err != nil {
		respondError(w, r, err)
		return
	}
	user, err := client.UserInfoByUsername(r.Context(), username)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewUserProfile(user))
}

// FollowersCount handles GET /user/{id}/followers_count.
//
// @Summary Get follower count
// @Tags Users
// @Produce json
// @Param id path string true "User pk or username"
// @Success 200 {object} models.FollowersCountResponse
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /user/{id}/followers_count [get]
func (h *Handler) FollowersCount(w http.ResponseWriter, r *http.Request) {
	user, err := h.userByRef(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.FollowersCountResponse{
		UserID:        user.PK,
		Username:      user.Username,
		FollowerCount: user.FollowerCount,
	})
}

// FollowersCountByUsername handles GET /user/followers_count/by_username/{username}.
//
// @Summary Get follower count by username
// @Tags Users
// @Produce json
// @Param username path string true "Instagram username"
// @Success 200 {object} models.FollowersCountResponse
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /user/followers_count/by_username/{username} [get]
func (h *Handler) FollowersCountByUsername(w http.ResponseWriter, r *http.Request) {
	username, err := pathUsername(r, "username")
	if err != nil {
		respondError(w, r, err)
		return
	}
	client, err := h.client(r.Context(), instagram.CapUserInfo)
	if err != nil {
		respondError(w, r, err)
		return
	}
	user, err := client.UserInfoByUsername(r.Context(), username)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.FollowersCountResponse{
		UserID:        user.PK,
		Username:      user.Username,
		FollowerCount: user.FollowerCount,
	})
}

// userByRef fetches a profile by pk or username.
func (h *Handler) userByRef(ctx context.Context, ref string) (*instagram.User, error) {
	client, err := h.client(ctx, instagram.CapUserInfo)
	if err != nil {
		return nil, err
	}
	id, err := resolveUserID(ctx, client, ref)
	if err != nil {
		return nil, err
	}
	return client.UserInfo(ctx, id)
}

type listUsersFunc func(c instagram.Client, ctx context.Context, userID int64, amount int) ([]instagram.UserShort, error)

// Followers handles GET /user/{id}/followers?amount=.
//
// @Summary List followers
// @Tags Users
// @Produce json
// @Param id path string true "User pk or username"
// @Param amount query integer false "Maximum items; 0 returns all"
// @Success 200 {array} models.UserSummary
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 403 {object} models.ErrorResponse "Account is private"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /user/{id}/followers [get]
func (h *Handler) Followers(w http.ResponseWriter, r *http.Request) {
	h.listUsers(w, r, instagram.CapFollowers, instagram.Client.UserFollowers)
}

// Following handles GET /user/{id}/following?amount=.
//
// @Summary List followed accounts
// @Tags Users
// @Produce json
// @Param id path string true "User pk or username"
// @Param amount query integer false "Maximum items; 0 returns all"
// @Success 200 {array} models.UserSummary
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 403 {object} models.ErrorResponse "Account is private"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /user/{id}/following [get]
func (h *Handler) Following(w http.ResponseWriter, r *http.Request) {
	h.listUsers(w, r, instagram.CapFollowing, instagram.Client.UserFollowing)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request, capability instagram.Capability, list listUsersFunc) {
	q, err := parseEnumerationQuery(r)
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
	users, err := list(client, r.Context(), id, h.effectiveAmount(q.Amount))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewUserSummaries(users))
}

type searchUsersFunc func(c instagram.Client, ctx context.Context, userID int64, query string) ([]instagram.UserShort, error)

// SearchFollowers handles GET /followers/{username}/search?q=&amount=.
//
// @Summary Search followers
// @Tags Users
// @Produce json
// @Param username path string true "Instagram username"
// @Param q query string true "Search text"
// @Param amount query integer false "Maximum items (1-1000)"
// @Success 200 {array} models.UserSummary
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /followers/{username}/search [get]
func (h *Handler) SearchFollowers(w http.ResponseWriter, r *http.Request) {
	h.searchUsers(w, r, instagram.CapSearchFollowers, instagram.Client.SearchFollowers)
}

// SearchFollowing handles GET /following/{username}/search?q=&amount=.
//
// @Summary Search followed accounts
// @Tags Users
// @Produce json
// @Param username path string true "Instagram username"
// @Param q query string true "Search text"
// @Param amount query integer false "Maximum items (1-1000)"
// @Success 200 {array} models.UserSummary
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /following/{username}/search [get]
func (h *Handler) SearchFollowing(w http.ResponseWriter, r *http.Request) {
	h.searchUsers(w, r, instagram.CapSearchFollowing, instagram.Client.SearchFollowing)
}

func (h *Handler) searchUsers(w http.ResponseWriter, r *http.Request, capability instagram.Capability, search searchUsersFunc) {
	username, err := pathUsername(r, "username")
	if err != nil {
		respondError(w, r, err)
		return
	}
	q, err := parseSearchQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	client, err := h.client(r.Context(), capability)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := client.UserIDFromUsername(r.Context(), username)
	if err != nil {
		respondError(w, r, err)
		return
	}
	users, err := search(client, r.Context(), id, q.Query)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if len(users) > q.Amount {
		users = users[:q.Amount]
	}
	respondJSON(w, http.StatusOK, models.NewUserSummaries(users))
}

type userActionFunc func(c instagram.Client, ctx context.Context, userID int64) (bool, error)

// userAction serves POST /user/{id}/<action> for one relationship operation.
func (h *Handler) userAction(capability instagram.Capability, action userActionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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
		ok, err := action(client, r.Context(), id)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, models.UserActionResponse{Success: ok, UserID: id})
	}
}

// Follow handles POST /user/{id}/follow.
//
// @Summary Follow user
// @Tags Relationships
// @Produce json
// @Param id path string true "User pk or username"
// @Success 200 {object} models.UserActionResponse
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /user/{id}/follow [post]
func (h *Handler) Follow() http.HandlerFunc {
	return h.userAction(instagram.CapFollow, instagram.Client.UserFollow)
}

// Unfollow handles POST /user/{id}/unfollow.
//
// @Summary Unfollow user
// @Tags Relationships
// @Produce json
// @Param id path string true "User pk or username"
// @Success 200 {object} models.UserActionResponse
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /user/{id}/unfollow [post]
func (h *Handler) Unfollow() http.HandlerFunc {
	return h.userAction(instagram.CapFollow, instagram.Client.UserUnfollow)
}

// RemoveFollower handles POST /user/{id}/remove_follower.
//
// @Summary Remove follower
// @Tags Relationships
// @Produce json
// @Param id path string true "User pk or username"
// @Success 200 {object} models.UserActionResponse
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /user/{id}/remove_follower [post]
func (h *Handler) RemoveFollower() http.HandlerFunc {
	return h.userAction(instagram.CapRemoveFollower, instagram.Client.UserRemoveFollower)
}

// MutePosts handles POST /user/{id}/mute_posts.
//
// @Summary Mute posts
// @Tags Relationships
// @Produce json
// @Param id path string true "User pk or username"
// @Success 200 {object} models.UserActionResponse
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /user/{id}/mute_posts [post]
func (h *Handler) MutePosts() http.HandlerFunc {
	return h.userAction(instagram.CapMutePosts, instagram.Client.MutePostsFromFollow)
}

// UnmutePosts handles POST /user/{id}/unmute_posts.
//
// @Summary Unmute posts
// @Tags Relationships
// @Produce json
// @Param id path string true "User pk or username"
// @Success 200 {object} models.UserActionResponse
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /user/{id}/unmute_posts [post]
func (h *Handler) UnmutePosts() http.HandlerFunc {
	return h.userAction(instagram.CapMutePosts, instagram.Client.UnmutePostsFromFollow)
}

// MuteStories handles POST /user/{id}/mute_stories.
//
// @Summary Mute stories
// @Tags Relationships
// @Produce json
// @Param id path string true "User pk or username"
// @Success 200 {object} models.UserActionResponse
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /user/{id}/mute_stories [post]
func (h *Handler) MuteStories() http.HandlerFunc {
	return h.userAction(instagram.CapMuteStories, instagram.Client.MuteStoriesFromFollow)
}

// UnmuteStories handles POST /user/{id}/unmute_stories.
//
// @Summary Unmute stories
// @Tags Relationships
// @Produce json
// @Param id path string true "User pk or username"
// @Success 200 {object} models.UserActionResponse
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /user/{id}/unmute_stories [post]
func (h *Handler) UnmuteStories() http.HandlerFunc {
	return h.userAction(instagram.CapMuteStories, instagram.Client.UnmuteStoriesFromFollow)
}

// CloseFriendAdd handles POST /user/{id}/close_friend/add.
//
// @Summary Add close friend
// @Tags Relationships
// @Produce json
// @Param id path string true "User pk or username"
// @Success 200 {object} models.UserActionResponse
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /user/{id}/close_friend/add [post]
func (h *Handler) CloseFriendAdd() http.HandlerFunc {
	return h.userAction(instagram.CapCloseFriends, instagram.Client.CloseFriendAdd)
}

// CloseFriendRemove handles POST /user/{id}/close_friend/remove.
//
// @Summary Remove close friend
// @Tags Relationships
// @Produce json
// @Param id path string true "User pk or username"
// @Success 200 {object} models.UserActionResponse
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /user/{id}/close_friend/remove [post]
func (h *Handler) CloseFriendRemove() http.HandlerFunc {
	return h.userAction(instagram.CapCloseFriends, instagram.Client.CloseFriendRemove)
}

// BlockUser handles POST /users/{username}/block.
//
// @Summary Block user
// @Tags Relationships
// @Produce json
// @Param username path string true "Instagram username"
// @Success 200 {object} models.BlockResponse
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /users/{username}/block [post]
func (h *Handler) BlockUser(w http.ResponseWriter, r *http.Request) {
	h.blockToggle(w, r, instagram.Client.UserBlock)
}

// UnblockUser handles POST /users/{username}/unblock.
//
// @Summary Unblock user
// @Tags Relationships
// @Produce json
// @Param username path string true "Instagram username"
// @Success 200 {object} models.BlockResponse
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 503 {object} models.ErrorResponse "Session unavailable"
// @Router /users/{username}/unblock [post]
func (h *Handler) UnblockUser(w http.ResponseWriter, r *http.Request) {
	h.blockToggle(w, r, instagram.Client.UserUnblock)
}

func (h *Handler) blockToggle(w http.ResponseWriter, r *http.Request, toggle userActionFunc) {
	username, err := pathUsername(r, "username")
	if err != nil {
		respondError(w, r, err)
		return
	}
	client, err := h.client(r.Context(), instagram.CapBlock)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := client.UserIDFromUsername(r.Context(), username)
	if err != nil {
		respondError(w, r, err)
		return
	}
	blocked, err := toggle(client, r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.BlockResponse{Username: username, UserID: id, Blocked: blocked})
}
