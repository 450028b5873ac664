// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package instagram

import (
	"testing"
	"time"

	"github.com/tidwall/gjson"
)

func TestDecodeUser(t *testing.T) {
	t.Parallel()

	u := decodeUser(gjson.Parse(`{
		"pk": 25025320,
		"username": "instagram",
		"full_name": "Instagram",
		"is_private": false,
		"is_verified": true,
		"is_business": true,
		"media_count": 7000,
		"follower_count": 600000000,
		"following_count": 80,
		"biography": "Discover what's new",
		"external_url": "",
		"profile_pic_url": "https://cdn.example.com/p.jpg",
		"hd_profile_pic_url_info": {"url": "https://cdn.example.com/hd.jpg"},
		"business_category_name": "Product/service",
		"public_email": null
	}`))

	if u.PK != 25025320 || u.Username != "instagram" || !u.IsVerified || !u.IsBusiness {
		t.Errorf("unexpected identity fields: %+v", u.UserShort)
	}
	if u.FollowerCount != 600000000 {
		t.Errorf("FollowerCount = %d", u.FollowerCount)
	}
	if u.ExternalURL != nil {
		t.Errorf("empty external_url should decode to nil, got %v", u.ExternalURL)
	}
	if u.ProfilePicURLHD == nil || u.ProfilePicURLHD.String() != "https://cdn.example.com/hd.jpg" {
		t.Errorf("ProfilePicURLHD = %v", u.ProfilePicURLHD)
	}
	if u.Category == nil || *u.Category != "Product/service" {
		t.Errorf("Category should fall back to business_category_name, got %v", u.Category)
	}
	if u.PublicEmail != nil {
		t.Errorf("null public_email should decode to nil")
	}
}

func TestDecodeUserShort_PKFallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
		want int64
	}{
		{name: "pk", json: `{"pk": 1, "pk_id": "2", "id": "3"}`, want: 1},
		{name: "pk_id", json: `{"pk_id": "2", "id": "3"}`, want: 2},
		{name: "id", json: `{"id": "3"}`, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := decodeUserShort(gjson.Parse(tt.json)).PK; got != tt.want {
				t.Errorf("PK = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDecodeMedia(t *testing.T) {
	t.Parallel()

	t.Run("video with location", func(t *testing.T) {
		t.Parallel()
		m := decodeMedia(gjson.Parse(`{
			"pk": 2110901750722920960,
			"id": "2110901750722920960_25025320",
			"code": "B1LbfVPlwIA",
			"taken_at": 1566211200,
			"media_type": 2,
			"product_type": "clips",
			"image_versions2": {"candidates": [{"url": "https://cdn.example.com/thumb.jpg"}]},
			"video_versions": [{"url": "https://cdn.example.com/v.mp4"}],
			"location": {"pk": 7, "name": "Somewhere", "lat": 1.5, "lng": 2.5},
			"user": {"pk": 25025320, "username": "instagram"},
			"comment_count": 3,
			"like_count": 10,
			"caption": {"text": "hello"},
			"play_count": 99,
			"video_duration": 12.5
		}`))

		if m.PK != 2110901750722920960 || m.Code != "B1LbfVPlwIA" {
			t.Errorf("identity = %d/%s", m.PK, m.Code)
		}
		want := time.Date(2019, 8, 19, 10, 40, 0, 0, time.UTC)
		if m.TakenAt == nil || !m.TakenAt.Equal(want) {
			t.Errorf("TakenAt = %v, want %v", m.TakenAt, want)
		}
		if m.ViewCount != 99 {
			t.Errorf("ViewCount should fall back to play_count, got %d", m.ViewCount)
		}
		if m.VideoURL == nil || m.ThumbnailURL == nil {
			t.Fatalf("urls not decoded: %+v", m)
		}
		if m.Location == nil || m.Location.Name != "Somewhere" || m.Location.Address != nil {
			t.Errorf("Location = %+v", m.Location)
		}
		if m.User == nil || m.User.Username != "instagram" {
			t.Errorf("User = %+v", m.User)
		}
		if m.CaptionText != "hello" || m.VideoDuration != 12.5 {
			t.Errorf("caption/duration = %q/%v", m.CaptionText, m.VideoDuration)
		}
	})

	t.Run("album thumbnail from first carousel item", func(t *testing.T) {
		t.Parallel()
		m := decodeMedia(gjson.Parse(`{
			"pk": 1, "media_type": 8,
			"carousel_media": [{"image_versions2": {"candidates": [{"url": "https://cdn.example.com/first.jpg"}]}}]
		}`))
		if m.ThumbnailURL == nil || m.ThumbnailURL.String() != "https://cdn.example.com/first.jpg" {
			t.Errorf("ThumbnailURL = %v", m.ThumbnailURL)
		}
		if m.Location != nil || m.User != nil || m.TakenAt != nil {
			t.Errorf("absent fields should be nil: %+v", m)
		}
	})
}

func TestDecodeComment_ReplyFallback(t *testing.T) {
	t.Parallel()

	c := decodeComment(gjson.Parse(`{
		"pk": 17890000000000001,
		"text": "nice",
		"created_at_utc": 1700000000,
		"parent_comment_id": 17890000000000000,
		"comment_like_count": 4
	}`))
	if c.RepliedToCommentID == nil || *c.RepliedToCommentID != 17890000000000000 {
		t.Errorf("RepliedToCommentID = %v", c.RepliedToCommentID)
	}
	if c.LikeCount == nil || *c.LikeCount != 4 {
		t.Errorf("LikeCount = %v", c.LikeCount)
	}
	if c.HasLiked != nil {
		t.Errorf("HasLiked should be nil when absent")
	}
	if c.User != nil {
		t.Errorf("User should be nil when absent")
	}
}

func TestDecodeThread(t *testing.T) {
	t.Parallel()

	th := decodeThread(gjson.Parse(`{
		"thread_id": "340282366841710300949128171234567890123",
		"thread_v2_id": "17850000000000000",
		"users": [{"pk": 5, "username": "friend"}],
		"items": [
			{"item_id": "31000000000000000000000000000000000", "user_id": 5, "timestamp": 1700000000000000, "item_type": "text", "text": "hi"},
			{"item_id": "31000000000000000000000000000000001", "user_id": 6, "timestamp": 1700000001000000, "item_type": "clip", "clip": {"clip": {"pk": 9, "media_type": 2}}}
		],
		"last_activity_at": 1700000001000000,
		"muted": true,
		"is_group": false,
		"thread_type": "private",
		"thread_title": "friend"
	}`))

	if th.ID != "340282366841710300949128171234567890123" {
		t.Errorf("thread id lost precision: %s", th.ID)
	}
	if len(th.Users) != 1 || th.Users[0].Username != "friend" {
		t.Errorf("Users = %+v", th.Users)
	}
	if len(th.Messages) != 2 {
		t.Fatalf("Messages = %d, want 2", len(th.Messages))
	}
	first := th.Messages[0]
	if first.ThreadID == nil || *first.ThreadID != th.ID {
		t.Errorf("message thread id should default to the thread, got %v", first.ThreadID)
	}
	if first.Text == nil || *first.Text != "hi" {
		t.Errorf("Text = %v", first.Text)
	}
	if first.Timestamp == nil || !first.Timestamp.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("Timestamp = %v", first.Timestamp)
	}
	if th.Messages[1].Clip == nil || th.Messages[1].Clip.PK != 9 {
		t.Errorf("Clip = %+v", th.Messages[1].Clip)
	}
	if !th.Muted || th.IsGroup {
		t.Errorf("flags = muted:%v group:%v", th.Muted, th.IsGroup)
	}
}
