// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/gramgate/internal/instagram"
	"github.com/tomtom215/gramgate/internal/models"
	"github.com/tomtom215/gramgate/internal/session"
)

const testSessionID = "1234%3Aabcdef"

// fakeClient is an in-memory Instagram. Methods not overridden here panic
// through the nil embedded interface, which flags unexpected calls.
type fakeClient struct {
	instagram.Client
	caps instagram.CapabilitySet

	users     map[string]*instagram.User
	followers map[int64][]instagram.UserShort
	medias    map[int64]*instagram.Media
	loginErr  error

	mu          sync.Mutex
	calls       []string
	lastAmount  int
	sentUserIDs []int64
	sentThreads []string
}

func newFakeClient() *fakeClient {
	jane := &instagram.User{UserShort: instagram.UserShort{PK: 101, Username: "jane", FullName: "Jane Doe"}, FollowerCount: 3}
	locked := &instagram.User{UserShort: instagram.UserShort{PK: 202, Username: "locked", IsPrivate: true}}
	return &fakeClient{
		caps:  instagram.NewCapabilitySet(),
		users: map[string]*instagram.User{"jane": jane, "locked": locked},
		followers: map[int64][]instagram.UserShort{
			101: {{PK: 1, Username: "a"}, {PK: 2, Username: "b"}, {PK: 3, Username: "c"}},
		},
		medias: map[int64]*instagram.Media{},
	}
}

func (f *fakeClient) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
}

func (f *fakeClient) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if op == "" || c == op {
			n++
		}
	}
	return n
}

func (f *fakeClient) userByID(id int64) *instagram.User {
	for _, u := range f.users {
		if u.PK == id {
			return u
		}
	}
	return nil
}

func (f *fakeClient) Capabilities() instagram.CapabilitySet { return f.caps }

func (f *fakeClient) LoginBySessionID(_ context.Context, _ string) (*instagram.Account, error) {
	f.record("login")
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &instagram.Account{UserID: 1234, Username: "me"}, nil
}

func (f *fakeClient) UserIDFromUsername(_ context.Context, username string) (int64, error) {
	f.record("user_id_from_username")
	if u, ok := f.users[username]; ok {
		return u.PK, nil
	}
	return 0, fmt.Errorf("user %q: %w", username, instagram.ErrUserNotFound)
}

func (f *fakeClient) UsernameFromUserID(_ context.Context, id int64) (string, error) {
	f.record("username_from_user_id")
	if u := f.userByID(id); u != nil {
		return u.Username, nil
	}
	return "", instagram.ErrUserNotFound
}

func (f *fakeClient) UserInfo(_ context.Context, id int64) (*instagram.User, error) {
	f.record("user_info")
	if u := f.userByID(id); u != nil {
		return u, nil
	}
	return nil, instagram.ErrUserNotFound
}

func (f *fakeClient) UserFollowers(_ context.Context, id int64, amount int) ([]instagram.UserShort, error) {
	f.record("user_followers")
	f.mu.Lock()
	f.lastAmount = amount
	f.mu.Unlock()

	u := f.userByID(id)
	if u == nil {
		return nil, instagram.ErrUserNotFound
	}
	if u.IsPrivate {
		return nil, instagram.ErrPrivateAccount
	}
	out := f.followers[id]
	if amount < len(out) {
		out = out[:amount]
	}
	return out, nil
}

func (f *fakeClient) SearchFollowers(_ context.Context, id int64, query string) ([]instagram.UserShort, error) {
	f.record("search_followers")
	var out []instagram.UserShort
	for _, u := range f.followers[id] {
		if strings.Contains(u.Username, query) || query == "*" {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeClient) UserFollow(_ context.Context, id int64) (bool, error) {
	f.record("user_follow")
	return f.userByID(id) != nil, nil
}

func (f *fakeClient) MediaID(_ context.Context, pk int64) (string, error) {
	f.record("media_id")
	if _, ok := f.medias[pk]; !ok {
		return "", instagram.ErrMediaNotFound
	}
	return fmt.Sprintf("%d_101", pk), nil
}

func (f *fakeClient) MediaInfo(_ context.Context, pk int64) (*instagram.Media, error) {
	f.record("media_info")
	if m, ok := f.medias[pk]; ok {
		return m, nil
	}
	return nil, instagram.ErrMediaNotFound
}

func (f *fakeClient) MediaLike(_ context.Context, mediaID string) (bool, error) {
	f.record("media_like:" + mediaID)
	return true, nil
}

func (f *fakeClient) download(kind string, pk int64) (*instagram.Download, error) {
	f.record(kind + "_download")
	body := kind + " bytes"
	return &instagram.Download{
		Body:          io.NopCloser(strings.NewReader(body)),
		Filename:      fmt.Sprintf("%d.%s", pk, kind),
		ContentType:   "application/octet-stream",
		ContentLength: int64(len(body)),
	}, nil
}

func (f *fakeClient) PhotoDownload(_ context.Context, pk int64) (*instagram.Download, error) {
	return f.download("photo", pk)
}

func (f *fakeClient) VideoDownload(_ context.Context, pk int64) (*instagram.Download, error) {
	return f.download("video", pk)
}

func (f *fakeClient) IGTVDownload(_ context.Context, pk int64) (*instagram.Download, error) {
	return f.download("igtv", pk)
}

func (f *fakeClient) ClipDownload(_ context.Context, pk int64) (*instagram.Download, error) {
	return f.download("clip", pk)
}

func (f *fakeClient) DirectSend(_ context.Context, text string, userIDs []int64, threadIDs []string) (*instagram.DirectMessage, error) {
	f.record("direct_send")
	f.mu.Lock()
	f.sentUserIDs = userIDs
	f.sentThreads = threadIDs
	f.mu.Unlock()
	return &instagram.DirectMessage{ID: "30076214123123123123123123123123", Text: &text}, nil
}

func (f *fakeClient) DirectMessageDelete(_ context.Context, _, _ string) (bool, error) {
	f.record("direct_message_delete")
	return true, nil
}

// newTestServer wires the fake through the real session manager, handler
// and router.
func newTestServer(t *testing.T, client *fakeClient, sessionID string, maxEnumeration int) http.Handler {
	t.Helper()
	mgr := session.New(sessionID, client, time.Second)
	h := NewHandler(mgr, maxEnumeration)
	return NewRouter(h, NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true})).Setup()
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("Failed to unmarshal response %q: %v", w.Body.String(), err)
	}
	return v
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) models.ErrorResponse {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, status, w.Body.String())
	}
	resp := decodeBody[models.ErrorResponse](t, w)
	if resp.Code != code {
		t.Errorf("code = %q, want %q", resp.Code, code)
	}
	if resp.Detail == "" {
		t.Error("detail should not be empty")
	}
	if resp.RequestID == "" {
		t.Error("request_id should be set")
	}
	return resp
}

func TestHealth_NeverLogsIn(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	srv := newTestServer(t, client, testSessionID, 0)

	w := doRequest(t, srv, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	resp := decodeBody[models.HealthResponse](t, w)
	if resp.Status != "ok" || resp.LoggedIn || resp.Session != string(session.StateIdle) {
		t.Errorf("health = %+v, want ok/idle", resp)
	}
	if client.callCount("login") != 0 {
		t.Error("health must not trigger a login")
	}

	// After any Instagram call the session is reported.
	doRequest(t, srv, http.MethodGet, "/user/id_from_username/jane", "")
	resp = decodeBody[models.HealthResponse](t, doRequest(t, srv, http.MethodGet, "/health", ""))
	if !resp.LoggedIn || resp.UserID == nil || *resp.UserID != 1234 {
		t.Errorf("health after login = %+v", resp)
	}
}

func TestHealth_Unconfigured(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, newFakeClient(), "", 0)
	w := doRequest(t, srv, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	resp := decodeBody[models.HealthResponse](t, w)
	if resp.Session != string(session.StateUnconfigured) || resp.LoggedIn {
		t.Errorf("health = %+v, want unconfigured", resp)
	}
}

func TestRoot(t *testing.T) {
	t.Parallel()

	w := doRequest(t, newTestServer(t, newFakeClient(), "", 0), http.MethodGet, "/", "")
	resp := decodeBody[models.RootResponse](t, w)
	if resp.Health != "/health" || resp.Metrics != "/metrics" {
		t.Errorf("root = %+v", resp)
	}
}

func TestUnconfigured_Returns503WithoutContactingInstagram(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	srv := newTestServer(t, client, "", 0)

	for _, target := range []string{"/user/id_from_username/jane", "/user/101/followers", "/direct/threads"} {
		w := doRequest(t, srv, http.MethodGet, target, "")
		expectError(t, w, http.StatusServiceUnavailable, ErrCodeUnconfigured)
	}
	if n := client.callCount(""); n != 0 {
		t.Errorf("client calls = %d, want 0", n)
	}
}

func TestDisabledCapability_Returns501(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.caps = instagram.NewCapabilitySet(instagram.CapFollowers)
	srv := newTestServer(t, client, testSessionID, 0)

	w := doRequest(t, srv, http.MethodGet, "/user/101/followers", "")
	resp := expectError(t, w, http.StatusNotImplemented, ErrCodeNotImplemented)
	if !strings.Contains(resp.Detail, "followers") {
		t.Errorf("detail = %q, want capability name", resp.Detail)
	}
	if client.callCount("login") != 0 {
		t.Error("unsupported operation must not log in")
	}
}

func TestUnknownRoute_JSON404(t *testing.T) {
	t.Parallel()

	w := doRequest(t, newTestServer(t, newFakeClient(), "", 0), http.MethodGet, "/nope", "")
	expectError(t, w, http.StatusNotFound, ErrCodeNotFound)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	w := doRequest(t, newTestServer(t, newFakeClient(), "", 0), http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "gramgate_") {
		t.Error("metrics output should include gramgate collectors")
	}
}

func TestLoginFailure_IsNotReportedAsUpstreamKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		loginErr   error
		wantCode   string
		wantDetail string
	}{
		{"user not found", fmt.Errorf("session verification failed: %w", instagram.ErrUserNotFound), ErrCodeLoginFailed, "instagram login failed: session verification failed: user not found"},
		{"rate limited", &instagram.UpstreamError{Operation: "login", StatusCode: 429, Message: "Please wait a few minutes"}, ErrCodeLoginFailed, "instagram login failed: Please wait a few minutes"},
		{"private", instagram.ErrPrivateAccount, ErrCodeLoginFailed, "instagram login failed: account is private"},
		{"malformed session id", fmt.Errorf("%w: no account id prefix", instagram.ErrInvalidSessionID), ErrCodeUnconfigured, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newFakeClient()
			client.loginErr = tt.loginErr
			h := newTestServer(t, client, testSessionID, 10000)

			for attempt := 0; attempt < 2; attempt++ {
				w := doRequest(t, h, http.MethodGet, "/direct/threads", "")
				resp := expectError(t, w, http.StatusServiceUnavailable, tt.wantCode)
				if tt.wantDetail != "" && resp.Detail != tt.wantDetail {
					t.Errorf("attempt %d: detail = %q, want %q", attempt, resp.Detail, tt.wantDetail)
				}
			}
			if n := client.callCount("login"); n != 1 {
				t.Errorf("logins = %d, want 1", n)
			}
		})
	}
}
