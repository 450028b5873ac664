// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package instagram

import (
	"net/url"
	"time"

	"github.com/tidwall/gjson"
)

// The private API omits, nulls or retypes fields freely between app versions.
// Every optional field is resolved here, once, into the typed records.

func optString(v gjson.Result) *string {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	s := v.String()
	if s == "" {
		return nil
	}
	return &s
}

func optInt64(v gjson.Result) *int64 {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	n := v.Int()
	return &n
}

func optInt(v gjson.Result) *int {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	n := int(v.Int())
	return &n
}

func optBool(v gjson.Result) *bool {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	b := v.Bool()
	return &b
}

func optFloat(v gjson.Result) *float64 {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	f := v.Float()
	return &f
}

func optURL(v gjson.Result) *url.URL {
	s := v.String()
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil
	}
	return u
}

// optUnix reads second-resolution timestamps (taken_at, created_at_utc).
func optUnix(v gjson.Result) *time.Time {
	n := v.Int()
	if n <= 0 {
		return nil
	}
	t := time.Unix(n, 0).UTC()
	return &t
}

// optUnixMicro reads microsecond timestamps (direct items, last_activity_at).
func optUnixMicro(v gjson.Result) *time.Time {
	n := v.Int()
	if n <= 0 {
		return nil
	}
	t := time.UnixMicro(n).UTC()
	return &t
}

func decodeUserShort(v gjson.Result) UserShort {
	pk := v.Get("pk")
	if !pk.Exists() {
		pk = v.Get("pk_id")
	}
	if !pk.Exists() {
		pk = v.Get("id")
	}
	return UserShort{
		PK:            pk.Int(),
		Username:      v.Get("username").String(),
		FullName:      v.Get("full_name").String(),
		IsPrivate:     v.Get("is_private").Bool(),
		ProfilePicURL: optURL(v.Get("profile_pic_url")),
	}
}

func optUserShort(v gjson.Result) *UserShort {
	if !v.IsObject() {
		return nil
	}
	u := decodeUserShort(v)
	return &u
}

func decodeUser(v gjson.Result) User {
	category := optString(v.Get("category"))
	if category == nil {
		category = optString(v.Get("business_category_name"))
	}
	return User{
		UserShort:          decodeUserShort(v),
		IsVerified:         v.Get("is_verified").Bool(),
		IsBusiness:         v.Get("is_business").Bool(),
		MediaCount:         int(v.Get("media_count").Int()),
		FollowerCount:      int(v.Get("follower_count").Int()),
		FollowingCount:     int(v.Get("following_count").Int()),
		Biography:          v.Get("biography").String(),
		ExternalURL:        optURL(v.Get("external_url")),
		ProfilePicURLHD:    optURL(v.Get("hd_profile_pic_url_info.url")),
		Category:           category,
		PublicEmail:        optString(v.Get("public_email")),
		ContactPhoneNumber: optString(v.Get("contact_phone_number")),
	}
}

func decodeLocation(v gjson.Result) *Location {
	if !v.IsObject() {
		return nil
	}
	return &Location{
		PK:      optInt64(v.Get("pk")),
		Name:    v.Get("name").String(),
		Address: optString(v.Get("address")),
		City:    optString(v.Get("city")),
		Lng:     optFloat(v.Get("lng")),
		Lat:     optFloat(v.Get("lat")),
	}
}

func decodeMedia(v gjson.Result) Media {
	// Albums carry their images on the first carousel item.
	images := v.Get("image_versions2.candidates")
	if !images.Exists() {
		images = v.Get("carousel_media.0.image_versions2.candidates")
	}
	views := v.Get("view_count")
	if !views.Exists() {
		views = v.Get("play_count")
	}

	return Media{
		PK:            v.Get("pk").Int(),
		ID:            v.Get("id").String(),
		Code:          v.Get("code").String(),
		TakenAt:       optUnix(v.Get("taken_at")),
		MediaType:     int(v.Get("media_type").Int()),
		ProductType:   v.Get("product_type").String(),
		ThumbnailURL:  optURL(images.Get("0.url")),
		VideoURL:      optURL(v.Get("video_versions.0.url")),
		Location:      decodeLocation(v.Get("location")),
		User:          optUserShort(v.Get("user")),
		CommentCount:  int(v.Get("comment_count").Int()),
		LikeCount:     int(v.Get("like_count").Int()),
		CaptionText:   v.Get("caption.text").String(),
		ViewCount:     int(views.Int()),
		VideoDuration: v.Get("video_duration").Float(),
	}
}

func optMedia(v gjson.Result) *Media {
	if !v.IsObject() {
		return nil
	}
	m := decodeMedia(v)
	return &m
}

func decodeComment(v gjson.Result) Comment {
	replied := optInt64(v.Get("replied_to_comment_id"))
	if replied == nil {
		replied = optInt64(v.Get("parent_comment_id"))
	}
	return Comment{
		PK:                 v.Get("pk").Int(),
		Text:               v.Get("text").String(),
		User:               optUserShort(v.Get("user")),
		CreatedAt:          optUnix(v.Get("created_at_utc")),
		ContentType:        v.Get("content_type").String(),
		Status:             v.Get("status").String(),
		RepliedToCommentID: replied,
		LikeCount:          optInt(v.Get("comment_like_count")),
		HasLiked:           optBool(v.Get("has_liked_comment")),
	}
}

func decodeMessage(v gjson.Result, threadID string) DirectMessage {
	tid := optString(v.Get("thread_id"))
	if tid == nil && threadID != "" {
		tid = &threadID
	}
	// Reels shared in direct arrive as clip.clip; posts as media_share.
	clip := v.Get("clip.clip")
	if !clip.Exists() {
		clip = v.Get("clip")
	}
	return DirectMessage{
		ID:         v.Get("item_id").String(),
		UserID:     optInt64(v.Get("user_id")),
		ThreadID:   tid,
		Timestamp:  optUnixMicro(v.Get("timestamp")),
		ItemType:   optString(v.Get("item_type")),
		Text:       optString(v.Get("text")),
		IsShhMode:  v.Get("is_shh_mode").Bool(),
		MediaShare: optMedia(v.Get("media_share")),
		Clip:       optMedia(clip),
	}
}

func decodeThread(v gjson.Result) DirectThread {
	id := v.Get("thread_id").String()

	users := v.Get("users").Array()
	thread := DirectThread{
		ID:             id,
		PK:             v.Get("thread_v2_id").String(),
		Users:          make([]UserShort, 0, len(users)),
		Inviter:        optUserShort(v.Get("inviter")),
		LastActivityAt: optUnixMicro(v.Get("last_activity_at")),
		Muted:          v.Get("muted").Bool(),
		IsPin:          v.Get("is_pin").Bool(),
		Named:          v.Get("named").Bool(),
		Pending:        v.Get("pending").Bool(),
		Archived:       v.Get("archived").Bool(),
		IsGroup:        v.Get("is_group").Bool(),
		ThreadType:     v.Get("thread_type").String(),
		ThreadTitle:    v.Get("thread_title").String(),
	}
	for _, u := range users {
		thread.Users = append(thread.Users, decodeUserShort(u))
	}
	thread.Messages = decodeMessages(v.Get("items"), id)
	return thread
}

func decodeMessages(items gjson.Result, threadID string) []DirectMessage {
	arr := items.Array()
	out := make([]DirectMessage, 0, len(arr))
	for _, it := range arr {
		out = append(out, decodeMessage(it, threadID))
	}
	return out
}

func decodeUsers(v gjson.Result) []UserShort {
	arr := v.Array()
	out := make([]UserShort, 0, len(arr))
	for _, u := range arr {
		out = append(out, decodeUserShort(u))
	}
	return out
}
