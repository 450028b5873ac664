// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package models

import (
	"net/url"
	"time"

	"github.com/tomtom215/gramgate/internal/instagram"
)

// UserSummary is the lightweight projection of an account.
type UserSummary struct {
	PK            int64   `json:"pk"`
	Username      string  `json:"username"`
	FullName      string  `json:"full_name"`
	IsPrivate     bool    `json:"is_private"`
	ProfilePicURL *string `json:"profile_pic_url"`
}

// UserProfile is the full projection of an account.
type UserProfile struct {
	UserSummary
	IsVerified         bool    `json:"is_verified"`
	MediaCount         int     `json:"media_count"`
	FollowerCount      int     `json:"follower_count"`
	FollowingCount     int     `json:"following_count"`
	Biography          string  `json:"biography"`
	ExternalURL        *string `json:"external_url"`
	ProfilePicURLHD    *string `json:"profile_pic_url_hd"`
	IsBusiness         bool    `json:"is_business"`
	Category           *string `json:"category"`
	PublicEmail        *string `json:"public_email"`
	ContactPhoneNumber *string `json:"contact_phone_number"`
}

// Location is where a media was tagged.
type Location struct {
	PK      *int64   `json:"pk"`
	Name    string   `json:"name"`
	Address *string  `json:"address"`
	Lng     *float64 `json:"lng"`
	Lat     *float64 `json:"lat"`
	City    *string  `json:"city"`
}

// MediaItem is a post, video, IGTV or reel.
type MediaItem struct {
	PK            int64        `json:"pk"`
	ID            string       `json:"id"`
	Code          string       `json:"code"`
	TakenAt       *string      `json:"taken_at"`
	MediaType     int          `json:"media_type"`
	ProductType   string       `json:"product_type"`
	ThumbnailURL  *string      `json:"thumbnail_url"`
	Location      *Location    `json:"location"`
	User          *UserSummary `json:"user"`
	CommentCount  int          `json:"comment_count"`
	LikeCount     int          `json:"like_count"`
	CaptionText   string       `json:"caption_text"`
	VideoURL      *string      `json:"video_url"`
	ViewCount     int          `json:"view_count"`
	VideoDuration float64      `json:"video_duration"`
}

// Comment is a comment on a media.
type Comment struct {
	PK                 int64        `json:"pk"`
	Text               string       `json:"text"`
	User               *UserSummary `json:"user"`
	CreatedAtUTC       *string      `json:"created_at_utc"`
	ContentType        string       `json:"content_type"`
	Status             string       `json:"status"`
	RepliedToCommentID *int64       `json:"replied_to_comment_id"`
	LikeCount          *int         `json:"like_count"`
	HasLiked           *bool        `json:"has_liked"`
}

// Message is one item of a direct thread.
type Message struct {
	ID         string     `json:"id"`
	UserID     *int64     `json:"user_id"`
	ThreadID   *string    `json:"thread_id"`
	Timestamp  *string    `json:"timestamp"`
	ItemType   *string    `json:"item_type"`
	Text       *string    `json:"text"`
	IsShhMode  bool       `json:"is_shh_mode"`
	MediaShare *MediaItem `json:"media_share"`
	Clip       *MediaItem `json:"clip"`
}

// Thread is a direct conversation.
type Thread struct {
	ID             string        `json:"id"`
	PK             string        `json:"pk"`
	Users          []UserSummary `json:"users"`
	Messages       []Message     `json:"messages"`
	Inviter        *UserSummary  `json:"inviter"`
	LastActivityAt *string       `json:"last_activity_at"`
	Muted          bool          `json:"muted"`
	IsPin          bool          `json:"is_pin"`
	Named          bool          `json:"named"`
	Pending        bool          `json:"pending"`
	Archived       bool          `json:"archived"`
	ThreadType     string        `json:"thread_type"`
	ThreadTitle    string        `json:"thread_title"`
	IsGroup        bool          `json:"is_group"`
}

func urlString(u *url.URL) *string {
	if u == nil {
		return nil
	}
	s := u.String()
	return &s
}

func timeString(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

// NewUserSummary projects an account; nil in, nil out.
func NewUserSummary(u *instagram.UserShort) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		PK:            u.PK,
		Username:      u.Username,
		FullName:      u.FullName,
		IsPrivate:     u.IsPrivate,
		ProfilePicURL: urlString(u.ProfilePicURL),
	}
}

// NewUserSummaries projects a list, never returning nil.
func NewUserSummaries(users []instagram.UserShort) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for i := range users {
		out = append(out, *NewUserSummary(&users[i]))
	}
	return out
}

// NewUserProfile projects a full account.
func NewUserProfile(u *instagram.User) *UserProfile {
	if u == nil {
		return nil
	}
	return &UserProfile{
		UserSummary:        *NewUserSummary(&u.UserShort),
		IsVerified:         u.IsVerified,
		MediaCount:         u.MediaCount,
		FollowerCount:      u.FollowerCount,
		FollowingCount:     u.FollowingCount,
		Biography:          u.Biography,
		ExternalURL:        urlString(u.ExternalURL),
		ProfilePicURLHD:    urlString(u.ProfilePicURLHD),
		IsBusiness:         u.IsBusiness,
		Category:           u.Category,
		PublicEmail:        u.PublicEmail,
		ContactPhoneNumber: u.ContactPhoneNumber,
	}
}

// NewLocation projects a media location.
func NewLocation(l *instagram.Location) *Location {
	if l == nil {
		return nil
	}
	return &Location{
		PK:      l.PK,
		Name:    l.Name,
		Address: l.Address,
		Lng:     l.Lng,
		Lat:     l.Lat,
		City:    l.City,
	}
}

// NewMediaItem projects a media.
func NewMediaItem(m *instagram.Media) *MediaItem {
	if m == nil {
		return nil
	}
	return &MediaItem{
		PK:            m.PK,
		ID:            m.ID,
		Code:          m.Code,
		TakenAt:       timeString(m.TakenAt),
		MediaType:     m.MediaType,
		ProductType:   m.ProductType,
		ThumbnailURL:  urlString(m.ThumbnailURL),
		Location:      NewLocation(m.Location),
		User:          NewUserSummary(m.User),
		CommentCount:  m.CommentCount,
		LikeCount:     m.LikeCount,
		CaptionText:   m.CaptionText,
		VideoURL:      urlString(m.VideoURL),
		ViewCount:     m.ViewCount,
		VideoDuration: m.VideoDuration,
	}
}

// NewMediaItems projects a list, never returning nil.
func NewMediaItems(medias []instagram.Media) []MediaItem {
	out := make([]MediaItem, 0, len(medias))
	for i := range medias {
		out = append(out, *NewMediaItem(&medias[i]))
	}
	return out
}

// NewComment projects a comment.
func NewComment(c *instagram.Comment) *Comment {
	if c == nil {
		return nil
	}
	return &Comment{
		PK:                 c.PK,
		Text:               c.Text,
		User:               NewUserSummary(c.User),
		CreatedAtUTC:       timeString(c.CreatedAt),
		ContentType:        c.ContentType,
		Status:             c.Status,
		RepliedToCommentID: c.RepliedToCommentID,
		LikeCount:          c.LikeCount,
		HasLiked:           c.HasLiked,
	}
}

// NewComments projects a list, never returning nil.
func NewComments(comments []instagram.Comment) []Comment {
	out := make([]Comment, 0, len(comments))
	for i := range comments {
		out = append(out, *NewComment(&comments[i]))
	}
	return out
}

// NewMessage projects a direct message.
func NewMessage(m *instagram.DirectMessage) *Message {
	if m == nil {
		return nil
	}
	return &Message{
		ID:         m.ID,
		UserID:     m.UserID,
		ThreadID:   m.ThreadID,
		Timestamp:  timeString(m.Timestamp),
		ItemType:   m.ItemType,
		Text:       m.Text,
		IsShhMode:  m.IsShhMode,
		MediaShare: NewMediaItem(m.MediaShare),
		Clip:       NewMediaItem(m.Clip),
	}
}

// NewMessages projects a list, never returning nil.
func NewMessages(messages []instagram.DirectMessage) []Message {
	out := make([]Message, 0, len(messages))
	for i := range messages {
		out = append(out, *NewMessage(&messages[i]))
	}
	return out
}

// NewThread projects a direct thread with its messages.
func NewThread(t *instagram.DirectThread) *Thread {
	if t == nil {
		return nil
	}
	return &Thread{
		ID:             t.ID,
		PK:             t.PK,
		Users:          NewUserSummaries(t.Users),
		Messages:       NewMessages(t.Messages),
		Inviter:        NewUserSummary(t.Inviter),
		LastActivityAt: timeString(t.LastActivityAt),
		Muted:          t.Muted,
		IsPin:          t.IsPin,
		Named:          t.Named,
		Pending:        t.Pending,
		Archived:       t.Archived,
		ThreadType:     t.ThreadType,
		ThreadTitle:    t.ThreadTitle,
		IsGroup:        t.IsGroup,
	}
}

// NewThreads projects a list, never returning nil.
func NewThreads(threads []instagram.DirectThread) []Thread {
	out := make([]Thread, 0, len(threads))
	for i := range threads {
		out = append(out, *NewThread(&threads[i]))
	}
	return out
}
