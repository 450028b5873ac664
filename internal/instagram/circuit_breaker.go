// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package instagram

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/gramgate/internal/logging"
	"github.com/tomtom215/gramgate/internal/metrics"
)

// Ensure CircuitBreakerClient implements Client
var _ Client = (*CircuitBreakerClient)(nil)

// CircuitBreakerClient wraps a Client so a failing Instagram API stops
// receiving traffic until it recovers. Lookups that legitimately miss
// (not found, private, unsupported, bad input) do not count as failures.
type CircuitBreakerClient struct {
	client Client
	cb     *gobreaker.CircuitBreaker[any]
	name   string
}

// CircuitBreakerSettings tunes the breaker; zero values use the defaults.
type CircuitBreakerSettings struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// MinRequests and FailureRatio decide when the circuit opens.
	MinRequests  uint32
	FailureRatio float64
}

// NewCircuitBreakerClient wraps client.
// Defaults:
// - 3 requests in half-open state
// - counts reset every minute while closed
// - 2 minutes open before probing again
// - opens at >= 60% failures over at least 10 requests
func NewCircuitBreakerClient(client Client, s CircuitBreakerSettings) *CircuitBreakerClient {
	if s.Name == "" {
		s.Name = "instagram-api"
	}
	if s.MaxRequests == 0 {
		s.MaxRequests = 3
	}
	if s.Interval == 0 {
		s.Interval = time.Minute
	}
	if s.Timeout == 0 {
		s.Timeout = 2 * time.Minute
	}
	if s.MinRequests == 0 {
		s.MinRequests = 10
	}
	if s.FailureRatio == 0 {
		s.FailureRatio = 0.6
	}

	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= s.FailureRatio {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", ratio*100).
					Msg("[CIRCUIT BREAKER] Opening Instagram circuit")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("from", from.String()).Str("to", to.String()).
				Msg("[CIRCUIT BREAKER] Instagram state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
		IsSuccessful: isBreakerSuccess,
	})

	return &CircuitBreakerClient{client: client, cb: cb, name: s.Name}
}

// isBreakerSuccess reports whether err says nothing about upstream health.
func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	for _, kind := range []error{
		ErrNotFound, ErrPrivateAccount, ErrUnsupported,
		ErrInvalidMediaCode, ErrInvalidMediaURL, ErrNoDownloadURL,
		context.Canceled,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// State returns the current breaker state.
func (b *CircuitBreakerClient) State() gobreaker.State {
	return b.cb.State()
}

// execute runs fn under the breaker and records the outcome.
func (b *CircuitBreakerClient) execute(fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	switch {
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
		logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Instagram request rejected")
	case err != nil && !isBreakerSuccess(err):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	}
	return result, err
}

// guard runs fn through b and restores its result type.
func guard[T any](b *CircuitBreakerClient, fn func() (T, error)) (T, error) {
	var zero T
	result, err := b.execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		return zero, err
	}
	v, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return v, nil
}

// Capabilities passes through without touching the breaker.
func (b *CircuitBreakerClient) Capabilities() CapabilitySet {
	return b.client.Capabilities()
}

// LoginBySessionID verifies the session with circuit breaker protection
func (b *CircuitBreakerClient) LoginBySessionID(ctx context.Context, sessionID string) (*Account, error) {
	return guard(b, func() (*Account, error) { return b.client.LoginBySessionID(ctx, sessionID) })
}

// UserIDFromUsername resolves a username to a user id with circuit breaker protection
func (b *CircuitBreakerClient) UserIDFromUsername(ctx context.Context, username string) (int64, error) {
	return guard(b, func() (int64, error) { return b.client.UserIDFromUsername(ctx, username) })
}

// UsernameFromUserID resolves a user id to a username with circuit breaker protection
func (b *CircuitBreakerClient) UsernameFromUserID(ctx context.Context, userID int64) (string, error) {
	return guard(b, func() (string, error) { return b.client.UsernameFromUserID(ctx, userID) })
}

// UserInfo fetches a profile by id with circuit breaker protection
func (b *CircuitBreakerClient) UserInfo(ctx context.Context, userID int64) (*User, error) {
	return guard(b, func() (*User, error) { return b.client.UserInfo(ctx, userID) })
}

// UserInfoByUsername fetches a profile by username with circuit breaker protection
func (b *CircuitBreakerClient) UserInfoByUsername(ctx context.Context, username string) (*User, error) {
	return guard(b, func() (*User, error) { return b.client.UserInfoByUsername(ctx, username) })
}

// UserFollowers lists followers with circuit breaker protection
func (b *CircuitBreakerClient) UserFollowers(ctx context.Context, userID int64, amount int) ([]UserShort, error) {
	return guard(b, func() ([]UserShort, error) { return b.client.UserFollowers(ctx, userID, amount) })
}

// UserFollowing lists followed accounts with circuit breaker protection
func (b *CircuitBreakerClient) UserFollowing(ctx context.Context, userID int64, amount int) ([]UserShort, error) {
	return guard(b, func() ([]UserShort, error) { return b.client.UserFollowing(ctx, userID, amount) })
}

// SearchFollowers searches a user's followers with circuit breaker protection
func (b *CircuitBreakerClient) SearchFollowers(ctx context.Context, userID int64, query string) ([]UserShort, error) {
	return guard(b, func() ([]UserShort, error) { return b.client.SearchFollowers(ctx, userID, query) })
}

// SearchFollowing searches the accounts a user follows with circuit breaker protection
func (b *CircuitBreakerClient) SearchFollowing(ctx context.Context, userID int64, query string) ([]UserShort, error) {
	return guard(b, func() ([]UserShort, error) { return b.client.SearchFollowing(ctx, userID, query) })
}

// UserFollow follows a user with circuit breaker protection
func (b *CircuitBreakerClient) UserFollow(ctx context.Context, userID int64) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.UserFollow(ctx, userID) })
}

// UserUnfollow unfollows a user with circuit breaker protection
func (b *CircuitBreakerClient) UserUnfollow(ctx context.Context, userID int64) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.UserUnfollow(ctx, userID) })
}

// UserRemoveFollower removes a follower with circuit breaker protection
func (b *CircuitBreakerClient) UserRemoveFollower(ctx context.Context, userID int64) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.UserRemoveFollower(ctx, userID) })
}

// MutePostsFromFollow mutes a followed user's posts with circuit breaker protection
func (b *CircuitBreakerClient) MutePostsFromFollow(ctx context.Context, userID int64) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.MutePostsFromFollow(ctx, userID) })
}

// UnmutePostsFromFollow unmutes a followed user's posts with circuit breaker protection
func (b *CircuitBreakerClient) UnmutePostsFromFollow(ctx context.Context, userID int64) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.UnmutePostsFromFollow(ctx, userID) })
}

// MuteStoriesFromFollow mutes a followed user's stories with circuit breaker protection
func (b *CircuitBreakerClient) MuteStoriesFromFollow(ctx context.Context, userID int64) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.MuteStoriesFromFollow(ctx, userID) })
}

// UnmuteStoriesFromFollow unmutes a followed user's stories with circuit breaker protection
func (b *CircuitBreakerClient) UnmuteStoriesFromFollow(ctx context.Context, userID int64) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.UnmuteStoriesFromFollow(ctx, userID) })
}

// CloseFriendAdd adds a user to close friends with circuit breaker protection
func (b *CircuitBreakerClient) CloseFriendAdd(ctx context.Context, userID int64) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.CloseFriendAdd(ctx, userID) })
}

// CloseFriendRemove removes a user from close friends with circuit breaker protection
func (b *CircuitBreakerClient) CloseFriendRemove(ctx context.Context, userID int64) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.CloseFriendRemove(ctx, userID) })
}

// UserBlock blocks a user with circuit breaker protection
func (b *CircuitBreakerClient) UserBlock(ctx context.Context, userID int64) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.UserBlock(ctx, userID) })
}

// UserUnblock unblocks a user with circuit breaker protection
func (b *CircuitBreakerClient) UserUnblock(ctx context.Context, userID int64) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.UserUnblock(ctx, userID) })
}

// MediaID expands a media pk to its full id with circuit breaker protection
func (b *CircuitBreakerClient) MediaID(ctx context.Context, mediaPK int64) (string, error) {
	return guard(b, func() (string, error) { return b.client.MediaID(ctx, mediaPK) })
}

// MediaInfo fetches a media record with circuit breaker protection
func (b *CircuitBreakerClient) MediaInfo(ctx context.Context, mediaPK int64) (*Media, error) {
	return guard(b, func() (*Media, error) { return b.client.MediaInfo(ctx, mediaPK) })
}

// UserMedias lists a user's posts with circuit breaker protection
func (b *CircuitBreakerClient) UserMedias(ctx context.Context, userID int64, amount int) ([]Media, error) {
	return guard(b, func() ([]Media, error) { return b.client.UserMedias(ctx, userID, amount) })
}

// UserClips lists a user's reels with circuit breaker protection
func (b *CircuitBreakerClient) UserClips(ctx context.Context, userID int64, amount int) ([]Media, error) {
	return guard(b, func() ([]Media, error) { return b.client.UserClips(ctx, userID, amount) })
}

// MediaLike likes a media with circuit breaker protection
func (b *CircuitBreakerClient) MediaLike(ctx context.Context, mediaID string) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.MediaLike(ctx, mediaID) })
}

// MediaUnlike removes a like with circuit breaker protection
func (b *CircuitBreakerClient) MediaUnlike(ctx context.Context, mediaID string) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.MediaUnlike(ctx, mediaID) })
}

// MediaDelete deletes an own media with circuit breaker protection
func (b *CircuitBreakerClient) MediaDelete(ctx context.Context, mediaID string) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.MediaDelete(ctx, mediaID) })
}

// MediaArchive archives an own media with circuit breaker protection
func (b *CircuitBreakerClient) MediaArchive(ctx context.Context, mediaID string) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.MediaArchive(ctx, mediaID) })
}

// MediaUnarchive restores an archived media with circuit breaker protection
func (b *CircuitBreakerClient) MediaUnarchive(ctx context.Context, mediaID string) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.MediaUnarchive(ctx, mediaID) })
}

// MediaLikers lists the accounts that liked a media with circuit breaker protection
func (b *CircuitBreakerClient) MediaLikers(ctx context.Context, mediaID string) ([]UserShort, error) {
	return guard(b, func() ([]UserShort, error) { return b.client.MediaLikers(ctx, mediaID) })
}

// PhotoDownload opens a photo download with circuit breaker protection
func (b *CircuitBreakerClient) PhotoDownload(ctx context.Context, mediaPK int64) (*Download, error) {
	return guard(b, func() (*Download, error) { return b.client.PhotoDownload(ctx, mediaPK) })
}

// VideoDownload opens a feed video download with circuit breaker protection
func (b *CircuitBreakerClient) VideoDownload(ctx context.Context, mediaPK int64) (*Download, error) {
	return guard(b, func() (*Download, error) { return b.client.VideoDownload(ctx, mediaPK) })
}

// IGTVDownload opens an IGTV download with circuit breaker protection
func (b *CircuitBreakerClient) IGTVDownload(ctx context.Context, mediaPK int64) (*Download, error) {
	return guard(b, func() (*Download, error) { return b.client.IGTVDownload(ctx, mediaPK) })
}

// ClipDownload opens a reel download with circuit breaker protection
func (b *CircuitBreakerClient) ClipDownload(ctx context.Context, mediaPK int64) (*Download, error) {
	return guard(b, func() (*Download, error) { return b.client.ClipDownload(ctx, mediaPK) })
}

// MediaComments lists comments on a media with circuit breaker protection
func (b *CircuitBreakerClient) MediaComments(ctx context.Context, mediaID string, amount int) ([]Comment, error) {
	return guard(b, func() ([]Comment, error) { return b.client.MediaComments(ctx, mediaID, amount) })
}

// MediaComment posts a comment with circuit breaker protection
func (b *CircuitBreakerClient) MediaComment(ctx context.Context, mediaID, text string, repliedToCommentID *int64) (*Comment, error) {
	return guard(b, func() (*Comment, error) { return b.client.MediaComment(ctx, mediaID, text, repliedToCommentID) })
}

// CommentLike likes a comment with circuit breaker protection
func (b *CircuitBreakerClient) CommentLike(ctx context.Context, commentPK int64) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.CommentLike(ctx, commentPK) })
}

// CommentUnlike removes a comment like with circuit breaker protection
func (b *CircuitBreakerClient) CommentUnlike(ctx context.Context, commentPK int64) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.CommentUnlike(ctx, commentPK) })
}

// CommentBulkDelete deletes several comments with circuit breaker protection
func (b *CircuitBreakerClient) CommentBulkDelete(ctx context.Context, mediaID string, commentPKs []int64) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.CommentBulkDelete(ctx, mediaID, commentPKs) })
}

// DirectThreads lists inbox threads with circuit breaker protection
func (b *CircuitBreakerClient) DirectThreads(ctx context.Context, amount int, selectedFilter string) ([]DirectThread, error) {
	return guard(b, func() ([]DirectThread, error) { return b.client.DirectThreads(ctx, amount, selectedFilter) })
}

// DirectPendingInbox lists pending threads with circuit breaker protection
func (b *CircuitBreakerClient) DirectPendingInbox(ctx context.Context, amount int) ([]DirectThread, error) {
	return guard(b, func() ([]DirectThread, error) { return b.client.DirectPendingInbox(ctx, amount) })
}

// DirectThread fetches one thread with circuit breaker protection
func (b *CircuitBreakerClient) DirectThread(ctx context.Context, threadID string, amount int) (*DirectThread, error) {
	return guard(b, func() (*DirectThread, error) { return b.client.DirectThread(ctx, threadID, amount) })
}

// DirectMessages lists messages in a thread with circuit breaker protection
func (b *CircuitBreakerClient) DirectMessages(ctx context.Context, threadID string, amount int) ([]DirectMessage, error) {
	return guard(b, func() ([]DirectMessage, error) { return b.client.DirectMessages(ctx, threadID, amount) })
}

// DirectSend sends a direct message with circuit breaker protection
func (b *CircuitBreakerClient) DirectSend(ctx context.Context, text string, userIDs []int64, threadIDs []string) (*DirectMessage, error) {
	return guard(b, func() (*DirectMessage, error) { return b.client.DirectSend(ctx, text, userIDs, threadIDs) })
}

// DirectAnswer replies in a thread with circuit breaker protection
func (b *CircuitBreakerClient) DirectAnswer(ctx context.Context, threadID, text string) (*DirectMessage, error) {
	return guard(b, func() (*DirectMessage, error) { return b.client.DirectAnswer(ctx, threadID, text) })
}

// DirectSearch searches direct threads with circuit breaker protection
func (b *CircuitBreakerClient) DirectSearch(ctx context.Context, query string) ([]DirectThread, error) {
	return guard(b, func() ([]DirectThread, error) { return b.client.DirectSearch(ctx, query) })
}

// DirectThreadHide hides a thread with circuit breaker protection
func (b *CircuitBreakerClient) DirectThreadHide(ctx context.Context, threadID string) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.DirectThreadHide(ctx, threadID) })
}

// DirectThreadMarkUnread marks a thread unread with circuit breaker protection
func (b *CircuitBreakerClient) DirectThreadMarkUnread(ctx context.Context, threadID string) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.DirectThreadMarkUnread(ctx, threadID) })
}

// DirectThreadMute mutes a thread with circuit breaker protection
func (b *CircuitBreakerClient) DirectThreadMute(ctx context.Context, threadID string) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.DirectThreadMute(ctx, threadID) })
}

// DirectThreadUnmute unmutes a thread with circuit breaker protection
func (b *CircuitBreakerClient) DirectThreadUnmute(ctx context.Context, threadID string) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.DirectThreadUnmute(ctx, threadID) })
}

// DirectMessageDelete deletes a message with circuit breaker protection
func (b *CircuitBreakerClient) DirectMessageDelete(ctx context.Context, threadID, messageID string) (bool, error) {
	return guard(b, func() (bool, error) { return b.client.DirectMessageDelete(ctx, threadID, messageID) })
}

// DirectMediaShare shares a media in direct with circuit breaker protection
func (b *CircuitBreakerClient) DirectMediaShare(ctx context.Context, mediaID string, userIDs []int64) (*DirectMessage, error) {
	return guard(b, func() (*DirectMessage, error) { return b.client.DirectMediaShare(ctx, mediaID, userIDs) })
}
