// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/gramgate/internal/instagram"
)

// fakeClient counts logins; only LoginBySessionID and Capabilities are implemented.
type fakeClient struct {
	instagram.Client
	logins   atomic.Int32
	delay    time.Duration
	err      error
	gotCtxOK atomic.Bool
}

func (f *fakeClient) Capabilities() instagram.CapabilitySet {
	return instagram.NewCapabilitySet(instagram.CapBlock)
}

func (f *fakeClient) LoginBySessionID(ctx context.Context, sessionID string) (*instagram.Account, error) {
	f.logins.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.gotCtxOK.Store(ctx.Err() == nil)
	if f.err != nil {
		return nil, f.err
	}
	return &instagram.Account{UserID: 1, Username: "owner"}, nil
}

func TestManager_SingleLoginUnderConcurrency(t *testing.T) {
	t.Parallel()

	fc := &fakeClient{delay: 20 * time.Millisecond}
	m := New("1%3Aabc", fc, time.Second)

	const callers = 100
	var wg sync.WaitGroup
	clients := make([]instagram.Client, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			clients[i], errs[i] = m.Client(context.Background())
		}(i)
	}
	wg.Wait()

	if got := fc.logins.Load(); got != 1 {
		t.Fatalf("logins = %d, want exactly 1", got)
	}
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if clients[i] != instagram.Client(fc) {
			t.Fatalf("caller %d got a different client", i)
		}
	}

	st := m.Status()
	if st.State != StateLoggedIn || st.Username != "owner" || st.UserID != 1 {
		t.Errorf("Status = %+v", st)
	}
}

func TestManager_Unconfigured(t *testing.T) {
	t.Parallel()

	fc := &fakeClient{}
	m := New("", fc, time.Second)

	if m.Status().State != StateUnconfigured {
		t.Errorf("State = %s, want unconfigured", m.Status().State)
	}

	var wg sync.WaitGroup
	errs := make([]error, 50)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = m.Client(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if !errors.Is(err, ErrUnconfigured) {
			t.Fatalf("caller %d: err = %v, want ErrUnconfigured", i, err)
		}
	}
	if fc.logins.Load() != 0 {
		t.Errorf("unconfigured manager must not attempt a login")
	}
}

func TestManager_FailureIsSticky(t *testing.T) {
	t.Parallel()

	fc := &fakeClient{err: instagram.ErrLoginRequired}
	m := New("1:abc", fc, time.Second)

	for i := 0; i < 3; i++ {
		_, err := m.Client(context.Background())
		if !errors.Is(err, ErrLoginFailed) {
			t.Fatalf("attempt %d: err = %v", i, err)
		}
		if errors.Is(err, instagram.ErrLoginRequired) {
			t.Fatalf("attempt %d: login error must not expose the upstream kind", i)
		}
	}
	if fc.logins.Load() != 1 {
		t.Errorf("logins = %d, failed login must not be retried", fc.logins.Load())
	}
	st := m.Status()
	if st.State != StateFailed || st.Error == "" {
		t.Errorf("Status = %+v", st)
	}
}

func TestManager_LoginDetachedFromCallerCancellation(t *testing.T) {
	t.Parallel()

	fc := &fakeClient{}
	m := New("1:abc", fc, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Client(ctx); err != nil {
		t.Fatalf("Client: %v", err)
	}
	if !fc.gotCtxOK.Load() {
		t.Error("login context should not inherit the caller's cancellation")
	}
}

func TestManager_StatusDoesNotLogin(t *testing.T) {
	t.Parallel()

	fc := &fakeClient{}
	m := New("1:abc", fc, 0)

	if st := m.Status(); st.State != StateIdle {
		t.Errorf("State = %s, want idle", st.State)
	}
	if m.Capabilities().Has(instagram.CapBlock) {
		t.Error("Capabilities should come from the client")
	}
	if fc.logins.Load() != 0 {
		t.Error("Status and Capabilities must not log in")
	}

	if err := m.Warmup(context.Background()); err != nil {
		t.Fatalf("Warmup: %v", err)
	}
	if fc.logins.Load() != 1 || m.Status().State != StateLoggedIn {
		t.Errorf("Warmup should log in once")
	}
}

func TestManager_LoginErrorHidesUpstreamKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		wantMessage string
		wantInvalid bool
		hidden      error
	}{
		{
			name:        "not found during verification",
			err:         fmt.Errorf("session verification failed: %w", instagram.ErrUserNotFound),
			wantMessage: "session verification failed: user not found",
			hidden:      instagram.ErrNotFound,
		},
		{
			name:        "rate limited",
			err:         &instagram.UpstreamError{Operation: "login", StatusCode: 429, Message: "Please wait a few minutes"},
			wantMessage: "Please wait a few minutes",
		},
		{
			name:        "private",
			err:         instagram.ErrPrivateAccount,
			wantMessage: "account is private",
			hidden:      instagram.ErrPrivateAccount,
		},
		{
			name:        "malformed session id",
			err:         fmt.Errorf("%w: no account id prefix", instagram.ErrInvalidSessionID),
			wantMessage: "invalid session id: no account id prefix",
			wantInvalid: true,
			hidden:      instagram.ErrInvalidSessionID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := New("1:abc", &fakeClient{err: tt.err}, time.Second)
			_, err := m.Client(context.Background())

			var le *LoginError
			if !errors.As(err, &le) {
				t.Fatalf("err = %T %v, want *LoginError", err, err)
			}
			if le.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", le.Message, tt.wantMessage)
			}
			if le.InvalidCredential != tt.wantInvalid {
				t.Errorf("InvalidCredential = %v, want %v", le.InvalidCredential, tt.wantInvalid)
			}
			if tt.hidden != nil && errors.Is(err, tt.hidden) {
				t.Errorf("errors.Is(err, %v) should be false", tt.hidden)
			}
		})
	}
}
