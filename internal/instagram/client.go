// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

// Package instagram is the session client Gramgate fronts: a Client interface
// describing every supported operation, an HTTP implementation against the
// Instagram private v1 API authenticated by a browser sessionid cookie, and a
// circuit breaker decorator.
//
// Errors wrap the kinds declared in errors.go (ErrNotFound, ErrPrivateAccount,
// ErrUnsupported, ...) so callers classify them with errors.Is.
package instagram

import "context"

// Client is the capability contract. Amount arguments are upper bounds on the
// number of returned items; callers resolve "all" to a concrete bound first.
// Implementations must be safe for concurrent use once logged in.
type Client interface {
	// Capabilities declares which operations this client supports.
	Capabilities() CapabilitySet

	// LoginBySessionID verifies the credential and binds it to the client.
	LoginBySessionID(ctx context.Context, sessionID string) (*Account, error)

	UserIDFromUsername(ctx context.Context, username string) (int64, error)
	UsernameFromUserID(ctx context.Context, userID int64) (string, error)
	UserInfo(ctx context.Context, userID int64) (*User, error)
	UserInfoByUsername(ctx context.Context, username string) (*User, error)

	UserFollowers(ctx context.Context, userID int64, amount int) ([]UserShort, error)
	UserFollowing(ctx context.Context, userID int64, amount int) ([]UserShort, error)
	SearchFollowers(ctx context.Context, userID int64, query string) ([]UserShort, error)
	SearchFollowing(ctx context.Context, userID int64, query string) ([]UserShort, error)

	UserFollow(ctx context.Context, userID int64) (bool, error)
	UserUnfollow(ctx context.Context, userID int64) (bool, error)
	UserRemoveFollower(ctx context.Context, userID int64) (bool, error)
	MutePostsFromFollow(ctx context.Context, userID int64) (bool, error)
	UnmutePostsFromFollow(ctx context.Context, userID int64) (bool, error)
	MuteStoriesFromFollow(ctx context.Context, userID int64) (bool, error)
	UnmuteStoriesFromFollow(ctx context.Context, userID int64) (bool, error)
	CloseFriendAdd(ctx context.Context, userID int64) (bool, error)
	CloseFriendRemove(ctx context.Context, userID int64) (bool, error)
	// UserBlock and UserUnblock return the resulting blocking state.
	UserBlock(ctx context.Context, userID int64) (bool, error)
	UserUnblock(ctx context.Context, userID int64) (bool, error)

	MediaID(ctx context.Context, mediaPK int64) (string, error)
	MediaInfo(ctx context.Context, mediaPK int64) (*Media, error)
	UserMedias(ctx context.Context, userID int64, amount int) ([]Media, error)
	UserClips(ctx context.Context, userID int64, amount int) ([]Media, error)
	MediaLike(ctx context.Context, mediaID string) (bool, error)
	MediaUnlike(ctx context.Context, mediaID string) (bool, error)
	MediaDelete(ctx context.Context, mediaID string) (bool, error)
	MediaArchive(ctx context.Context, mediaID string) (bool, error)
	MediaUnarchive(ctx context.Context, mediaID string) (bool, error)
	MediaLikers(ctx context.Context, mediaID string) ([]UserShort, error)

	PhotoDownload(ctx context.Context, mediaPK int64) (*Download, error)
	VideoDownload(ctx context.Context, mediaPK int64) (*Download, error)
	IGTVDownload(ctx context.Context, mediaPK int64) (*Download, error)
	ClipDownload(ctx context.Context, mediaPK int64) (*Download, error)

	MediaComments(ctx context.Context, mediaID string, amount int) ([]Comment, error)
	MediaComment(ctx context.Context, mediaID, text string, repliedToCommentID *int64) (*Comment, error)
	CommentLike(ctx context.Context, commentPK int64) (bool, error)
	CommentUnlike(ctx context.Context, commentPK int64) (bool, error)
	CommentBulkDelete(ctx context.Context, mediaID string, commentPKs []int64) (bool, error)

	DirectThreads(ctx context.Context, amount int, selectedFilter string) ([]DirectThread, error)
	DirectPendingInbox(ctx context.Context, amount int) ([]DirectThread, error)
	DirectThread(ctx context.Context, threadID string, amount int) (*DirectThread, error)
	DirectMessages(ctx context.Context, threadID string, amount int) ([]DirectMessage, error)
	DirectSend(ctx context.Context, text string, userIDs []int64, threadIDs []string) (*DirectMessage, error)
	DirectAnswer(ctx context.Context, threadID, text string) (*DirectMessage, error)
	DirectSearch(ctx context.Context, query string) ([]DirectThread, error)
	DirectThreadHide(ctx context.Context, threadID string) (bool, error)
	DirectThreadMarkUnread(ctx context.Context, threadID string) (bool, error)
	DirectThreadMute(ctx context.Context, threadID string) (bool, error)
	DirectThreadUnmute(ctx context.Context, threadID string) (bool, error)
	DirectMessageDelete(ctx context.Context, threadID, messageID string) (bool, error)
	DirectMediaShare(ctx context.Context, mediaID string, userIDs []int64) (*DirectMessage, error)
}
