// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package instagram

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/tomtom215/gramgate/internal/logging"
	"github.com/tomtom215/gramgate/internal/metrics"
)

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)

const (
	maxRetryDelay       = 60 * time.Second
	defaultRetryBase    = time.Second
	defaultFollowerPage = 200
)

// Options configures an HTTPClient.
type Options struct {
	BaseURL   string
	UserAgent string
	AppID     string
	Timeout   time.Duration

	// RequestsPerSecond paces outbound calls; 0 disables pacing.
	RequestsPerSecond float64
	Burst             int

	// MaxRetries is the number of retries after HTTP 429.
	MaxRetries int
	// RetryBaseDelay is doubled on each retry. Defaults to one second.
	RetryBaseDelay time.Duration

	Disabled []Capability

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// authState is swapped atomically once LoginBySessionID succeeds.
type authState struct {
	sessionID  string
	account    Account
	authHeader string
}

// HTTPClient talks to the Instagram private v1 API with a browser session.
type HTTPClient struct {
	http           *resty.Client
	cdn            *resty.Client
	limiter        *rate.Limiter
	maxRetries     int
	retryBaseDelay time.Duration
	capabilities   CapabilitySet
	deviceID       string
	auth           atomic.Pointer[authState]
}

// NewHTTPClient builds an unauthenticated client; call LoginBySessionID before use.
func NewHTTPClient(opts Options) *HTTPClient {
	var rc *resty.Client
	if opts.HTTPClient != nil {
		rc = resty.NewWithClient(opts.HTTPClient)
	} else {
		rc = resty.New()
	}
	if opts.Timeout > 0 {
		rc.SetTimeout(opts.Timeout)
	}
	deviceID := uuid.New().String()
	rc.SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("X-IG-App-ID", opts.AppID).
		SetHeader("X-IG-Capabilities", "3brTvx0=").
		SetHeader("X-IG-Connection-Type", "WIFI").
		SetHeader("X-IG-Device-ID", deviceID).
		SetHeader("Accept-Language", "en-US")

	c := &HTTPClient{
		http:           rc,
		cdn:            newCDNClient(opts),
		maxRetries:     opts.MaxRetries,
		retryBaseDelay: opts.RetryBaseDelay,
		capabilities:   NewCapabilitySet(opts.Disabled...),
		deviceID:       deviceID,
	}
	if c.retryBaseDelay <= 0 {
		c.retryBaseDelay = defaultRetryBase
	}
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return c
}

// newCDNClient builds the client for media downloads. It has no overall
// timeout, so a long body is bounded only by the request context; Timeout
// limits the wait for response headers instead.
func newCDNClient(opts Options) *resty.Client {
	hc := &http.Client{}
	if opts.HTTPClient != nil {
		copied := *opts.HTTPClient
		hc = &copied
	}
	hc.Timeout = 0

	if opts.Timeout > 0 {
		base := hc.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		if tr, ok := base.(*http.Transport); ok {
			tr = tr.Clone()
			tr.ResponseHeaderTimeout = opts.Timeout
			hc.Transport = tr
		}
	}

	return resty.NewWithClient(hc).SetHeader("User-Agent", opts.UserAgent)
}

// Capabilities returns the declared capability set.
func (c *HTTPClient) Capabilities() CapabilitySet {
	return c.capabilities
}

// Account returns the logged-in account, or nil before login.
func (c *HTTPClient) Account() *Account {
	if st := c.auth.Load(); st != nil {
		acc := st.account
		return &acc
	}
	return nil
}

// LoginBySessionID binds sessionID to the client and verifies it by fetching
// the owning account's profile.
func (c *HTTPClient) LoginBySessionID(ctx context.Context, sessionID string) (*Account, error) {
	userID, err := UserIDFromSessionID(sessionID)
	if err != nil {
		return nil, err
	}

	token, err := json.Marshal(map[string]any{
		"ds_user_id":                     strconv.FormatInt(userID, 10),
		"sessionid":                      sessionID,
		"should_use_header_over_cookies": true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode authorization: %w", err)
	}
	st := &authState{
		sessionID:  sessionID,
		account:    Account{UserID: userID},
		authHeader: "Bearer IGT:2:" + base64.StdEncoding.EncodeToString(token),
	}

	res, err := c.doWithAuth(ctx, st, call{
		op:       "login",
		method:   http.MethodGet,
		path:     "/users/" + strconv.FormatInt(userID, 10) + "/info/",
		notFound: ErrUserNotFound,
	})
	if err != nil {
		return nil, fmt.Errorf("session verification failed: %w", err)
	}
	st.account.Username = res.Get("user.username").String()
	c.auth.Store(st)

	logging.Info().Int64("user_id", userID).Str("username", st.account.Username).Msg("Instagram session verified")
	acc := st.account
	return &acc, nil
}

// call describes one API request.
type call struct {
	op       string
	method   string
	path     string
	query    map[string]string
	form     map[string]string
	notFound error
}

func (c *HTTPClient) do(ctx context.Context, cl call) (gjson.Result, error) {
	return c.doWithAuth(ctx, c.auth.Load(), cl)
}

// doWithAuth sends cl, retrying on HTTP 429 with exponential backoff that
// honors Retry-After, and classifies failures.
func (c *HTTPClient) doWithAuth(ctx context.Context, st *authState, cl call) (gjson.Result, error) {
	for attempt := 0; ; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return gjson.Result{}, fmt.Errorf("instagram %s: %w", cl.op, err)
			}
		}

		req := c.http.R().SetContext(ctx)
		if st != nil {
			req.SetHeader("Authorization", st.authHeader).
				SetHeader("IG-U-DS-USER-ID", strconv.FormatInt(st.account.UserID, 10)).
				SetCookie(&http.Cookie{Name: "sessionid", Value: st.sessionID}).
				SetCookie(&http.Cookie{Name: "ds_user_id", Value: strconv.FormatInt(st.account.UserID, 10)})
		}
		if len(cl.query) > 0 {
			req.SetQueryParams(cl.query)
		}
		if cl.form != nil {
			req.SetFormData(cl.form)
		}

		start := time.Now()
		resp, err := req.Execute(cl.method, cl.path)
		if err != nil {
			metrics.RecordUpstreamRequest(cl.op, "error", time.Since(start))
			return gjson.Result{}, fmt.Errorf("instagram %s request failed: %w", cl.op, err)
		}
		metrics.RecordUpstreamRequest(cl.op, strconv.Itoa(resp.StatusCode()), time.Since(start))

		if resp.StatusCode() == http.StatusTooManyRequests && attempt < c.maxRetries {
			delay := retryDelay(c.retryBaseDelay, attempt, resp.Header().Get("Retry-After"))
			metrics.UpstreamRetries.WithLabelValues(cl.op).Inc()
			logging.Warn().Str("operation", cl.op).Dur("retry_delay", delay).Int("attempt", attempt+1).
				Int("max_retries", c.maxRetries).Msg("Instagram rate limited (HTTP 429), retrying")

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return gjson.Result{}, fmt.Errorf("instagram %s: %w", cl.op, ctx.Err())
			case <-timer.C:
			}
			continue
		}

		return parseResponse(cl, resp.StatusCode(), resp.Body())
	}
}

// retryDelay is base<<attempt, replaced by Retry-After seconds when present, capped at a minute.
func retryDelay(base time.Duration, attempt int, retryAfter string) time.Duration {
	delay := base * time.Duration(1<<attempt)
	if secs, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && secs >= 0 {
		delay = time.Duration(secs) * time.Second
	}
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return delay
}

func parseResponse(cl call, status int, body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		if status >= http.StatusBadRequest {
			return gjson.Result{}, classify(cl, status, gjson.Result{})
		}
		return gjson.Result{}, fmt.Errorf("instagram %s returned invalid JSON (status %d)", cl.op, status)
	}
	res := gjson.ParseBytes(body)
	if status >= http.StatusBadRequest || res.Get("status").String() == "fail" {
		return gjson.Result{}, classify(cl, status, res)
	}
	return res, nil
}

// classify maps an error response onto the error kinds.
// privateAccountPhrases are the upstream messages that mean the target
// account hides its content from the session user.
var privateAccountPhrases = []string{
	"not authorized to view user",
	"this account is private",
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func classify(cl call, status int, res gjson.Result) error {
	msg := res.Get("message").String()
	errType := res.Get("error_type").String()
	lower := strings.ToLower(msg + " " + errType)

	var kind error
	switch {
	case status == http.StatusTooManyRequests || strings.Contains(lower, "please wait a few minutes"):
		kind = ErrRateLimited
	case strings.Contains(lower, "login_required"):
		kind = ErrLoginRequired
	case strings.Contains(lower, "challenge_required") || strings.Contains(lower, "checkpoint_required"):
		kind = ErrChallengeRequired
	case containsAny(lower, privateAccountPhrases):
		kind = ErrPrivateAccount
	case status == http.StatusNotFound || strings.Contains(lower, "not found") ||
		strings.Contains(lower, "has been deleted") || strings.Contains(lower, "not available"):
		kind = cl.notFound
		if kind == nil {
			kind = ErrNotFound
		}
	}

	return &UpstreamError{
		Operation:  cl.op,
		StatusCode: status,
		Message:    msg,
		ErrorType:  errType,
		kind:       kind,
	}
}

// signedForm wraps data the way the mobile app posts it.
func (c *HTTPClient) signedForm(data map[string]any) map[string]string {
	data["_uuid"] = c.deviceID
	data["device_id"] = c.deviceID
	if st := c.auth.Load(); st != nil {
		data["_uid"] = strconv.FormatInt(st.account.UserID, 10)
	}
	body, err := json.Marshal(data)
	if err != nil {
		// map[string]any of strings, numbers and slices always encodes.
		body = []byte("{}")
	}
	return map[string]string{"signed_body": "SIGNATURE." + string(body)}
}

// plainForm adds the device fields direct endpoints expect.
func (c *HTTPClient) plainForm(data map[string]string) map[string]string {
	data["_uuid"] = c.deviceID
	data["device_id"] = c.deviceID
	return data
}

// statusOK sends cl and reports whether the API acknowledged it.
func (c *HTTPClient) statusOK(ctx context.Context, cl call) (bool, error) {
	res, err := c.do(ctx, cl)
	if err != nil {
		return false, err
	}
	return res.Get("status").String() == "ok", nil
}

func (c *HTTPClient) userID() int64 {
	if st := c.auth.Load(); st != nil {
		return st.account.UserID
	}
	return 0
}

func (c *HTTPClient) rankToken() string {
	return strconv.FormatInt(c.userID(), 10) + "_" + c.deviceID
}

func pk(id int64) string {
	return strconv.FormatInt(id, 10)
}
