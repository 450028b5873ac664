// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package instagram

import (
	"fmt"
	"sort"
	"strings"
)

// Capability names one operation group of the client contract.
type Capability string

const (
	CapUserLookup          Capability = "user_lookup"
	CapUserInfo            Capability = "user_info"
	CapFollowers           Capability = "followers"
	CapFollowing           Capability = "following"
	CapSearchFollowers     Capability = "search_followers"
	CapSearchFollowing     Capability = "search_following"
	CapFollow              Capability = "follow"
	CapRemoveFollower      Capability = "remove_follower"
	CapMutePosts           Capability = "mute_posts"
	CapMuteStories         Capability = "mute_stories"
	CapCloseFriends        Capability = "close_friends"
	CapBlock               Capability = "block"
	CapMediaInfo           Capability = "media_info"
	CapUserMedias          Capability = "user_medias"
	CapUserClips           Capability = "user_clips"
	CapMediaLike           Capability = "media_like"
	CapMediaArchive        Capability = "media_archive"
	CapMediaDelete         Capability = "media_delete"
	CapMediaLikers         Capability = "media_likers"
	CapPhotoDownload       Capability = "photo_download"
	CapVideoDownload       Capability = "video_download"
	CapIGTVDownload        Capability = "igtv_download"
	CapClipDownload        Capability = "clip_download"
	CapComments            Capability = "comments"
	CapCommentCreate       Capability = "comment_create"
	CapCommentLike         Capability = "comment_like"
	CapCommentBulkDelete   Capability = "comment_bulk_delete"
	CapDirectRead          Capability = "direct_read"
	CapDirectSend          Capability = "direct_send"
	CapDirectSearch        Capability = "direct_search"
	CapDirectThreadManage  Capability = "direct_thread_manage"
	CapDirectMessageDelete Capability = "direct_message_delete"
	CapDirectMediaShare    Capability = "direct_media_share"
)

var allCapabilities = []Capability{
	CapUserLookup, CapUserInfo, CapFollowers, CapFollowing, CapSearchFollowers,
	CapSearchFollowing, CapFollow, CapRemoveFollower, CapMutePosts, CapMuteStories,
	CapCloseFriends, CapBlock, CapMediaInfo, CapUserMedias, CapUserClips, CapMediaLike,
	CapMediaArchive, CapMediaDelete, CapMediaLikers, CapPhotoDownload, CapVideoDownload,
	CapIGTVDownload, CapClipDownload, CapComments, CapCommentCreate, CapCommentLike,
	CapCommentBulkDelete, CapDirectRead, CapDirectSend, CapDirectSearch,
	CapDirectThreadManage, CapDirectMessageDelete, CapDirectMediaShare,
}

// AllCapabilities returns every capability the HTTP client implements.
func AllCapabilities() []Capability {
	out := make([]Capability, len(allCapabilities))
	copy(out, allCapabilities)
	return out
}

// CapabilitySet is the declared feature contract of a Client. It is built
// once and read concurrently.
type CapabilitySet map[Capability]struct{}

// NewCapabilitySet returns all capabilities minus disabled.
func NewCapabilitySet(disabled ...Capability) CapabilitySet {
	set := make(CapabilitySet, len(allCapabilities))
	for _, c := range allCapabilities {
		set[c] = struct{}{}
	}
	for _, c := range disabled {
		delete(set, c)
	}
	return set
}

// Has reports whether c is supported.
func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// Require returns an *UnsupportedError if c is not supported.
func (s CapabilitySet) Require(c Capability) error {
	if s.Has(c) {
		return nil
	}
	return &UnsupportedError{Capability: c}
}

// Names returns the supported capabilities, sorted.
func (s CapabilitySet) Names() []string {
	names := make([]string, 0, len(s))
	for c := range s {
		names = append(names, string(c))
	}
	sort.Strings(names)
	return names
}

// ParseCapabilities converts configured names, rejecting unknown ones.
func ParseCapabilities(names []string) ([]Capability, error) {
	known := NewCapabilitySet()
	out := make([]Capability, 0, len(names))
	for _, n := range names {
		c := Capability(strings.ToLower(strings.TrimSpace(n)))
		if c == "" {
			continue
		}
		if !known.Has(c) {
			return nil, fmt.Errorf("unknown capability %q", n)
		}
		out = append(out, c)
	}
	return out, nil
}
