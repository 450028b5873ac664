// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package instagram

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Shortcodes are the media pk written in this URL-safe base64 alphabet.
const shortcodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// Private posts append a 28-character suffix to the shortcode.
const privateSuffixLen = 28

// MediaPKFromCode decodes a shortcode ("B1LbfVPlwIA") into the media pk.
func MediaPKFromCode(code string) (int64, error) {
	code = strings.TrimSpace(code)
	if len(code) > privateSuffixLen {
		code = code[:len(code)-privateSuffixLen]
	}
	if code == "" {
		return 0, fmt.Errorf("%w: empty code", ErrInvalidMediaCode)
	}

	var pk int64
	for _, r := range code {
		idx := strings.IndexRune(shortcodeAlphabet, r)
		if idx < 0 {
			return 0, fmt.Errorf("%w: unexpected character %q", ErrInvalidMediaCode, r)
		}
		if pk > (math.MaxInt64-int64(idx))/64 {
			return 0, fmt.Errorf("%w: %q overflows a media pk", ErrInvalidMediaCode, code)
		}
		pk = pk*64 + int64(idx)
	}
	return pk, nil
}

// MediaCodeFromPK encodes a media pk as a shortcode.
func MediaCodeFromPK(pk int64) string {
	if pk <= 0 {
		return string(shortcodeAlphabet[0])
	}
	var buf [11]byte
	i := len(buf)
	for pk > 0 {
		i--
		buf[i] = shortcodeAlphabet[pk%64]
		pk /= 64
	}
	return string(buf[i:])
}

// MediaPKFromURL extracts the media pk from a post, reel or IGTV URL such as
// https://www.instagram.com/p/B1LbfVPlwIA/ or /reel/{code}/.
func MediaPKFromURL(raw string) (int64, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidMediaURL, err)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host != "instagram.com" && host != "instagr.am" {
		return 0, fmt.Errorf("%w: %q is not an instagram.com url", ErrInvalidMediaURL, raw)
	}

	var parts []string
	for _, p := range strings.Split(u.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	for i := 0; i < len(parts)-1; i++ {
		switch parts[i] {
		case "p", "reel", "reels", "tv":
			return MediaPKFromCode(parts[i+1])
		}
	}
	return 0, fmt.Errorf("%w: no media code in %q", ErrInvalidMediaURL, raw)
}

// UserIDFromSessionID reads the account ID every sessionid starts with
// ("1234567%3AxYz..." or "1234567:xYz...").
func UserIDFromSessionID(sessionID string) (int64, error) {
	decoded, err := url.QueryUnescape(sessionID)
	if err != nil {
		decoded = sessionID
	}
	end := 0
	for end < len(decoded) && decoded[end] >= '0' && decoded[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("%w: no account id prefix", ErrInvalidSessionID)
	}
	id, err := strconv.ParseInt(decoded[:end], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad account id prefix", ErrInvalidSessionID)
	}
	return id, nil
}
