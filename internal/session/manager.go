// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

// Package session owns the single process-wide Instagram session. The first
// caller that needs it triggers a login; every later caller shares the
// outcome, success or failure, for the lifetime of the process.
package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/gramgate/internal/instagram"
	"github.com/tomtom215/gramgate/internal/logging"
	"github.com/tomtom215/gramgate/internal/metrics"
)

var (
	// ErrUnconfigured means no session credential was provided.
	ErrUnconfigured = errors.New("instagram session is not configured: set IG_SESSIONID")

	// ErrLoginFailed matches every LoginError.
	ErrLoginFailed = errors.New("instagram login failed")
)

// LoginError is the cached outcome of a failed login. It keeps the upstream
// text but never unwraps to the upstream error kind.
type LoginError struct {
	// Message is the upstream failure text, verbatim when Instagram sent one.
	Message string

	// InvalidCredential is set when the session id itself is malformed.
	InvalidCredential bool
}

func (e *LoginError) Error() string {
	return "instagram login failed: " + e.Message
}

// Is makes errors.Is(err, ErrLoginFailed) hold.
func (e *LoginError) Is(target error) bool {
	return target == ErrLoginFailed
}

func newLoginError(err error) *LoginError {
	le := &LoginError{
		Message:           err.Error(),
		InvalidCredential: errors.Is(err, instagram.ErrInvalidSessionID),
	}
	var upstream *instagram.UpstreamError
	if errors.As(err, &upstream) && upstream.Message != "" {
		le.Message = upstream.Message
	}
	return le
}

// DefaultLoginTimeout bounds the one-time session verification.
const DefaultLoginTimeout = 30 * time.Second

// State is the lifecycle phase of the session.
type State string

const (
	StateIdle         State = "idle"
	StateLoggedIn     State = "logged_in"
	StateFailed       State = "failed"
	StateUnconfigured State = "unconfigured"
)

// Status is a read-only snapshot for health reporting.
type Status struct {
	State    State
	Username string
	UserID   int64
	Error    string
}

type outcome struct {
	client  instagram.Client
	account *instagram.Account
	err     error
}

// Manager lazily logs in once and hands out the shared client.
type Manager struct {
	sessionID    string
	client       instagram.Client
	loginTimeout time.Duration

	mu   sync.Mutex
	done atomic.Pointer[outcome]
}

// New builds a manager. An empty sessionID makes every Client call fail
// with ErrUnconfigured without contacting Instagram.
func New(sessionID string, client instagram.Client, loginTimeout time.Duration) *Manager {
	if loginTimeout <= 0 {
		loginTimeout = DefaultLoginTimeout
	}
	return &Manager{
		sessionID:    sessionID,
		client:       client,
		loginTimeout: loginTimeout,
	}
}

// Client returns the logged-in client, logging in on first use. Concurrent
// first callers block on one login attempt. A failed attempt is final.
func (m *Manager) Client(ctx context.Context) (instagram.Client, error) {
	if o := m.done.Load(); o != nil {
		return o.client, o.err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if o := m.done.Load(); o != nil {
		return o.client, o.err
	}

	o := m.login(ctx)
	m.done.Store(o)
	return o.client, o.err
}

// login runs detached from the caller's cancellation so one aborted request
// cannot poison the shared outcome.
func (m *Manager) login(ctx context.Context) *outcome {
	if m.sessionID == "" {
		metrics.RecordSessionLogin("unconfigured")
		logging.Warn().Msg("No Instagram session configured; Instagram endpoints will return 503")
		return &outcome{err: ErrUnconfigured}
	}

	loginCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.loginTimeout)
	defer cancel()

	start := time.Now()
	acc, err := m.client.LoginBySessionID(loginCtx, m.sessionID)
	if err != nil {
		metrics.RecordSessionLogin("failure")
		logging.Error().Err(err).Dur("duration", time.Since(start)).Msg("Instagram session login failed")
		return &outcome{err: newLoginError(err)}
	}

	metrics.RecordSessionLogin("success")
	logging.Info().Str("username", acc.Username).Int64("user_id", acc.UserID).
		Dur("duration", time.Since(start)).Msg("Instagram session established")
	return &outcome{client: m.client, account: acc}
}

// Warmup performs the login eagerly and reports its outcome.
func (m *Manager) Warmup(ctx context.Context) error {
	_, err := m.Client(ctx)
	return err
}

// Configured reports whether a credential was provided.
func (m *Manager) Configured() bool {
	return m.sessionID != ""
}

// Capabilities returns the client's declared capabilities without logging in.
func (m *Manager) Capabilities() instagram.CapabilitySet {
	return m.client.Capabilities()
}

// Status never triggers a login.
func (m *Manager) Status() Status {
	o := m.done.Load()
	switch {
	case !m.Configured():
		return Status{State: StateUnconfigured}
	case o == nil:
		return Status{State: StateIdle}
	case o.err != nil:
		return Status{State: StateFailed, Error: o.err.Error()}
	default:
		return Status{State: StateLoggedIn, Username: o.account.Username, UserID: o.account.UserID}
	}
}
