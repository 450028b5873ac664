// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package instagram

import (
	"io"
	"net/url"
	"time"
)

// Media types as reported by the API.
const (
	MediaTypePhoto = 1
	MediaTypeVideo = 2
	MediaTypeAlbum = 8
)

// Product types distinguishing the kinds of video.
const (
	ProductTypeFeed  = "feed"
	ProductTypeIGTV  = "igtv"
	ProductTypeClips = "clips"
)

// Account is the identity behind the authenticated session.
type Account struct {
	UserID   int64
	Username string
}

// UserShort is the compact user record returned by list endpoints.
// ProfilePicURL is nil when the user has no picture or the URL is unparsable.
type UserShort struct {
	PK            int64
	Username      string
	FullName      string
	IsPrivate     bool
	ProfilePicURL *url.URL
}

// User is a full profile.
type User struct {
	UserShort
	IsVerified         bool
	IsBusiness         bool
	MediaCount         int
	FollowerCount      int
	FollowingCount     int
	Biography          string
	ExternalURL        *url.URL
	ProfilePicURLHD    *url.URL
	Category           *string
	PublicEmail        *string
	ContactPhoneNumber *string
}

// Location is a place tagged on a media.
type Location struct {
	PK      *int64
	Name    string
	Address *string
	City    *string
	Lng     *float64
	Lat     *float64
}

// Media is a published post, video, reel or album.
type Media struct {
	PK            int64
	ID            string
	Code          string
	TakenAt       *time.Time
	MediaType     int
	ProductType   string
	ThumbnailURL  *url.URL
	VideoURL      *url.URL
	Location      *Location
	User          *UserShort
	CommentCount  int
	LikeCount     int
	CaptionText   string
	ViewCount     int
	VideoDuration float64
}

// Comment is a comment on a media.
type Comment struct {
	PK                 int64
	Text               string
	User               *UserShort
	CreatedAt          *time.Time
	ContentType        string
	Status             string
	RepliedToCommentID *int64
	LikeCount          *int
	HasLiked           *bool
}

// DirectMessage is one item in a direct thread. IDs exceed 64 bits upstream
// and are kept as decimal strings.
type DirectMessage struct {
	ID         string
	UserID     *int64
	ThreadID   *string
	Timestamp  *time.Time
	ItemType   *string
	Text       *string
	IsShhMode  bool
	MediaShare *Media
	Clip       *Media
}

// DirectThread is a direct conversation.
type DirectThread struct {
	ID             string
	PK             string
	Users          []UserShort
	Messages       []DirectMessage
	Inviter        *UserShort
	LastActivityAt *time.Time
	Muted          bool
	IsPin          bool
	Named          bool
	Pending        bool
	Archived       bool
	IsGroup        bool
	ThreadType     string
	ThreadTitle    string
}

// Download is a media file streamed from the CDN. The caller must close Body.
type Download struct {
	Body          io.ReadCloser
	Filename      string
	ContentType   string
	ContentLength int64
}
