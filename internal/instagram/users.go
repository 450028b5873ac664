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
)

// UserInfoByUsername fetches a profile by handle.
func (c *HTTPClient) UserInfoByUsername(ctx context.Context, username string) (*User, error) {
	res, err := c.do(ctx, call{
		op:       "user_info_by_username",
		method:   http.MethodGet,
		path:     "/users/" + url.PathEscape(username) + "/usernameinfo/",
		notFound: ErrUserNotFound,
	})
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", username, err)
	}
	user := res.Get("user")
	if !user.IsObject() {
		return nil, fmt.Errorf("user %q: %w", username, ErrUserNotFound)
	}
	u := decodeUser(user)
	return &u, nil
}

// UserInfo fetches a profile by pk.
func (c *HTTPClient) UserInfo(ctx context.Context, userID int64) (*User, error) {
	res, err := c.do(ctx, call{
		op:       "user_info",
		method:   http.MethodGet,
		path:     "/users/" + pk(userID) + "/info/",
		notFound: ErrUserNotFound,
	})
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", userID, err)
	}
	user := res.Get("user")
	if !user.IsObject() {
		return nil, fmt.Errorf("user %d: %w", userID, ErrUserNotFound)
	}
	u := decodeUser(user)
	return &u, nil
}

// UserIDFromUsername resolves a handle to its pk.
func (c *HTTPClient) UserIDFromUsername(ctx context.Context, username string) (int64, error) {
	u, err := c.UserInfoByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	return u.PK, nil
}

// UsernameFromUserID resolves a pk to its handle.
func (c *HTTPClient) UsernameFromUserID(ctx context.Context, userID int64) (string, error) {
	u, err := c.UserInfo(ctx, userID)
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

// UserFollowers pages through followers until amount users are collected or
// the list ends. Order is Instagram's.
func (c *HTTPClient) UserFollowers(ctx context.Context, userID int64, amount int) ([]UserShort, error) {
	return c.friendships(ctx, "followers", userID, amount, "")
}

// UserFollowing pages through followed accounts like UserFollowers.
func (c *HTTPClient) UserFollowing(ctx context.Context, userID int64, amount int) ([]UserShort, error) {
	return c.friendships(ctx, "following", userID, amount, "")
}

// SearchFollowers uses the server-side follower search.
func (c *HTTPClient) SearchFollowers(ctx context.Context, userID int64, query string) ([]UserShort, error) {
	return c.friendships(ctx, "followers", userID, 0, query)
}

// SearchFollowing uses the server-side following search.
func (c *HTTPClient) SearchFollowing(ctx context.Context, userID int64, query string) ([]UserShort, error) {
	return c.friendships(ctx, "following", userID, 0, query)
}

// friendships reads friendships/{pk}/{edge}/. A search query returns a single page.
func (c *HTTPClient) friendships(ctx context.Context, edge string, userID int64, amount int, query string) ([]UserShort, error) {
	op := edge
	if query != "" {
		op = "search_" + edge
	}

	users := []UserShort{}
	maxID := ""
	for {
		count := defaultFollowerPage
		if amount > 0 && amount-len(users) < count {
			count = amount - len(users)
		}
		q := map[string]string{
			"count":          strconv.Itoa(count),
			"rank_token":     c.rankToken(),
			"search_surface": "follow_list_page",
		}
		if query != "" {
			q["query"] = query
		}
		if maxID != "" {
			q["max_id"] = maxID
		}

		res, err := c.do(ctx, call{
			op:       op,
			method:   http.MethodGet,
			path:     "/friendships/" + pk(userID) + "/" + edge + "/",
			query:    q,
			notFound: ErrUserNotFound,
		})
		if err != nil {
			return nil, fmt.Errorf("%s of user %d: %w", edge, userID, err)
		}

		page := res.Get("users").Array()
		for _, u := range page {
			users = append(users, decodeUserShort(u))
			if amount > 0 && len(users) >= amount {
				return users, nil
			}
		}

		next := res.Get("next_max_id").String()
		if query != "" || next == "" || next == maxID || len(page) == 0 {
			return users, nil
		}
		maxID = next
	}
}

func (c *HTTPClient) friendshipAction(ctx context.Context, op, path string, userID int64, extra map[string]any) (*friendshipStatus, error) {
	data := map[string]any{"user_id": pk(userID), "radio_type": "wifi-none"}
	for k, v := range extra {
		data[k] = v
	}
	res, err := c.do(ctx, call{
		op:       op,
		method:   http.MethodPost,
		path:     path,
		form:     c.signedForm(data),
		notFound: ErrUserNotFound,
	})
	if err != nil {
		return nil, fmt.Errorf("%s user %d: %w", op, userID, err)
	}
	fs := res.Get("friendship_status")
	return &friendshipStatus{
		ok:              res.Get("status").String() == "ok",
		following:       fs.Get("following").Bool(),
		followedBy:      fs.Get("followed_by").Bool(),
		blocking:        fs.Get("blocking").Bool(),
		outgoingRequest: fs.Get("outgoing_request").Bool(),
	}, nil
}

type friendshipStatus struct {
	ok              bool
	following       bool
	followedBy      bool
	blocking        bool
	outgoingRequest bool
}

// UserFollow follows userID; a pending request to a private account counts as success.
func (c *HTTPClient) UserFollow(ctx context.Context, userID int64) (bool, error) {
	fs, err := c.friendshipAction(ctx, "follow", "/friendships/create/"+pk(userID)+"/", userID, nil)
	if err != nil {
		return false, err
	}
	return fs.following || fs.outgoingRequest, nil
}

// UserUnfollow reports true once userID is no longer followed.
func (c *HTTPClient) UserUnfollow(ctx context.Context, userID int64) (bool, error) {
	fs, err := c.friendshipAction(ctx, "unfollow", "/friendships/destroy/"+pk(userID)+"/", userID, nil)
	if err != nil {
		return false, err
	}
	return fs.ok && !fs.following, nil
}

// UserRemoveFollower reports true once userID no longer follows the session account.
func (c *HTTPClient) UserRemoveFollower(ctx context.Context, userID int64) (bool, error) {
	fs, err := c.friendshipAction(ctx, "remove_follower", "/friendships/remove_follower/"+pk(userID)+"/", userID, nil)
	if err != nil {
		return false, err
	}
	return fs.ok && !fs.followedBy, nil
}

func (c *HTTPClient) muteToggle(ctx context.Context, op string, mute bool, field string, userID int64) (bool, error) {
	path := "/friendships/mute_posts_or_story_from_follow/"
	if !mute {
		path = "/friendships/unmute_posts_or_story_from_follow/"
	}
	return c.statusOK(ctx, call{
		op:     op,
		method: http.MethodPost,
		path:   path,
		form: c.signedForm(map[string]any{
			field:              pk(userID),
			"container_module": "media_mute_sheet",
		}),
		notFound: ErrUserNotFound,
	})
}

// MutePostsFromFollow hides userID's posts from the feed.
func (c *HTTPClient) MutePostsFromFollow(ctx context.Context, userID int64) (bool, error) {
	return c.muteToggle(ctx, "mute_posts", true, "target_posts_author_id", userID)
}

// UnmutePostsFromFollow undoes MutePostsFromFollow.
func (c *HTTPClient) UnmutePostsFromFollow(ctx context.Context, userID int64) (bool, error) {
	return c.muteToggle(ctx, "unmute_posts", false, "target_posts_author_id", userID)
}

// MuteStoriesFromFollow hides userID's stories.
func (c *HTTPClient) MuteStoriesFromFollow(ctx context.Context, userID int64) (bool, error) {
	return c.muteToggle(ctx, "mute_stories", true, "target_reel_author_id", userID)
}

// UnmuteStoriesFromFollow undoes MuteStoriesFromFollow.
func (c *HTTPClient) UnmuteStoriesFromFollow(ctx context.Context, userID int64) (bool, error) {
	return c.muteToggle(ctx, "unmute_stories", false, "target_reel_author_id", userID)
}

func (c *HTTPClient) setBesties(ctx context.Context, op string, add bool, userID int64) (bool, error) {
	added, removed := []string{}, []string{}
	if add {
		added = append(added, pk(userID))
	} else {
		removed = append(removed, pk(userID))
	}
	return c.statusOK(ctx, call{
		op:     op,
		method: http.MethodPost,
		path:   "/friendships/set_besties/",
		form: c.signedForm(map[string]any{
			"module": "favorites_home_list",
			"source": "audience_manager",
			"add":    added,
			"remove": removed,
		}),
		notFound: ErrUserNotFound,
	})
}

// CloseFriendAdd adds userID to the close friends list.
func (c *HTTPClient) CloseFriendAdd(ctx context.Context, userID int64) (bool, error) {
	return c.setBesties(ctx, "close_friend_add", true, userID)
}

// CloseFriendRemove removes userID from the close friends list.
func (c *HTTPClient) CloseFriendRemove(ctx context.Context, userID int64) (bool, error) {
	return c.setBesties(ctx, "close_friend_remove", false, userID)
}

// UserBlock blocks userID and returns the resulting blocking state.
func (c *HTTPClient) UserBlock(ctx context.Context, userID int64) (bool, error) {
	fs, err := c.friendshipAction(ctx, "block", "/friendships/block/"+pk(userID)+"/", userID, map[string]any{"surface": "profile"})
	if err != nil {
		return false, err
	}
	return fs.blocking, nil
}

// UserUnblock unblocks userID and returns the resulting blocking state.
func (c *HTTPClient) UserUnblock(ctx context.Context, userID int64) (bool, error) {
	fs, err := c.friendshipAction(ctx, "unblock", "/friendships/unblock/"+pk(userID)+"/", userID, map[string]any{"surface": "profile"})
	if err != nil {
		return false, err
	}
	return fs.blocking, nil
}
