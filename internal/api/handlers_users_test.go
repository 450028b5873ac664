// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package api

import (
	"net/http"
	"testing"

	"github.com/tomtom215/gramgate/internal/models"
)

func TestUserIDFromUsername_NormalizesPath(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, newFakeClient(), testSessionID, 0)
	for _, raw := range []string{"jane", "@jane", "@@jane", "%20jane%20"} {
		w := doRequest(t, srv, http.MethodGet, "/user/id_from_username/"+raw, "")
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, body %s", raw, w.Code, w.Body.String())
		}
		resp := decodeBody[models.UserIDResponse](t, w)
		if resp.UserID != 101 || resp.Username != "jane" {
			t.Errorf("%s: got %+v", raw, resp)
		}
	}
}

func TestUserIDRoundTrip(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, newFakeClient(), testSessionID, 0)

	byName := decodeBody[models.UserIDResponse](t, doRequest(t, srv, http.MethodGet, "/user/id_from_username/jane", ""))
	byID := decodeBody[models.UserIDResponse](t, doRequest(t, srv, http.MethodGet, "/user/username_from_id/101", ""))
	if byName != byID {
		t.Errorf("round trip mismatch: %+v vs %+v", byName, byID)
	}
}

func TestUserIDFromUsername_NotFound(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, newFakeClient(), testSessionID, 0)
	w := doRequest(t, srv, http.MethodGet, "/user/id_from_username/ghost", "")
	resp := expectError(t, w, http.StatusNotFound, ErrCodeNotFound)
	if resp.Detail != "User not found" {
		t.Errorf("detail = %q", resp.Detail)
	}
}

func TestUserInfo_AcceptsIDOrUsername(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, newFakeClient(), testSessionID, 0)
	for _, ref := range []string{"101", "jane", "@jane"} {
		w := doRequest(t, srv, http.MethodGet, "/user/info/"+ref, "")
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", ref, w.Code)
		}
		resp := decodeBody[models.UserProfile](t, w)
		if resp.PK != 101 || resp.FullName != "Jane Doe" {
			t.Errorf("%s: got %+v", ref, resp)
		}
	}
}

func TestFollowersCount(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, newFakeClient(), testSessionID, 0)
	for _, target := range []string{"/user/101/followers_count", "/user/followers_count/by_username/jane"} {
		resp := decodeBody[models.FollowersCountResponse](t, doRequest(t, srv, http.MethodGet, target, ""))
		if resp.UserID != 101 || resp.Username != "jane" || resp.FollowerCount != 3 {
			t.Errorf("%s: got %+v", target, resp)
		}
	}
}

func TestFollowers_Amount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		query          string
		maxEnumeration int
		wantAmount     int
		wantLen        int
	}{
		{"zero means all up to the cap", "", 10000, 10000, 3},
		{"explicit amount", "?amount=2", 10000, 2, 2},
		{"zero bounded by a small cap", "?amount=0", 2, 2, 2},
		{"amount above the cap", "?amount=50", 1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newFakeClient()
			srv := newTestServer(t, client, testSessionID, tt.maxEnumeration)
			w := doRequest(t, srv, http.MethodGet, "/user/101/followers"+tt.query, "")
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
			users := decodeBody[[]models.UserSummary](t, w)
			if len(users) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(users), tt.wantLen)
			}
			if client.lastAmount != tt.wantAmount {
				t.Errorf("amount passed = %d, want %d", client.lastAmount, tt.wantAmount)
			}
		})
	}
}

func TestFollowers_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		status int
		code   string
	}{
		{"unknown username", "/user/ghost/followers", http.StatusNotFound, ErrCodeNotFound},
		{"unknown id", "/user/999/followers", http.StatusNotFound, ErrCodeNotFound},
		{"private account", "/user/locked/followers", http.StatusForbidden, ErrCodeForbidden},
		{"negative amount", "/user/101/followers?amount=-1", http.StatusBadRequest, ErrCodeValidation},
		{"non-numeric amount", "/user/101/followers?amount=lots", http.StatusBadRequest, ErrCodeBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := newTestServer(t, newFakeClient(), testSessionID, 0)
			expectError(t, doRequest(t, srv, http.MethodGet, tt.target, ""), tt.status, tt.code)
		})
	}
}

func TestFollowers_UnknownUsernameShortCircuits(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	srv := newTestServer(t, client, testSessionID, 0)
	doRequest(t, srv, http.MethodGet, "/user/ghost/followers", "")
	if n := client.callCount("user_followers"); n != 0 {
		t.Errorf("followers called %d times after failed resolution", n)
	}
}

func TestSearchFollowers_TruncatesToAmount(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, newFakeClient(), testSessionID, 0)
	w := doRequest(t, srv, http.MethodGet, "/followers/@jane/search?q=*&amount=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if users := decodeBody[[]models.UserSummary](t, w); len(users) != 2 {
		t.Errorf("len = %d, want 2", len(users))
	}

	expectError(t, doRequest(t, srv, http.MethodGet, "/followers/jane/search", ""), http.StatusBadRequest, ErrCodeValidation)
	expectError(t, doRequest(t, srv, http.MethodGet, "/followers/jane/search?q=a&amount=1001", ""), http.StatusBadRequest, ErrCodeValidation)
}

func TestFollow_ResolvesUsername(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, newFakeClient(), testSessionID, 0)
	w := doRequest(t, srv, http.MethodPost, "/user/jane/follow", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	resp := decodeBody[models.UserActionResponse](t, w)
	if !resp.Success || resp.UserID != 101 {
		t.Errorf("got %+v", resp)
	}
}
