// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package instagram

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// stubClient answers UserInfo with err; every other method panics.
type stubClient struct {
	Client
	err   error
	calls atomic.Int32
}

func (s *stubClient) Capabilities() CapabilitySet {
	return NewCapabilitySet(CapDirectSend)
}

func (s *stubClient) UserInfo(_ context.Context, userID int64) (*User, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &User{UserShort: UserShort{PK: userID, Username: "u"}}, nil
}

func TestCircuitBreaker_OpensAfterFailures(t *testing.T) {
	t.Parallel()

	stub := &stubClient{err: errors.New("upstream exploded")}
	cbc := NewCircuitBreakerClient(stub, CircuitBreakerSettings{Name: "test-opens"})

	if cbc.State() != gobreaker.StateClosed {
		t.Fatalf("initial state = %v, want closed", cbc.State())
	}

	// The tenth consecutive failure reaches the minimum request count and trips.
	for i := 0; i < 10; i++ {
		if _, err := cbc.UserInfo(context.Background(), 1); err == nil {
			t.Fatal("expected failure")
		}
	}
	if cbc.State() != gobreaker.StateOpen {
		t.Fatalf("state = %v, want open", cbc.State())
	}

	_, err := cbc.UserInfo(context.Background(), 1)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("err = %v, want ErrOpenState", err)
	}
	if stub.calls.Load() != 10 {
		t.Errorf("calls = %d; open circuit must not reach the client", stub.calls.Load())
	}
}

func TestCircuitBreaker_IgnoresExpectedErrors(t *testing.T) {
	t.Parallel()

	kinds := []error{
		fmt.Errorf("user 1: %w", ErrUserNotFound),
		ErrPrivateAccount,
		&UnsupportedError{Capability: CapUserInfo},
		context.Canceled,
	}
	for _, kind := range kinds {
		stub := &stubClient{err: kind}
		cbc := NewCircuitBreakerClient(stub, CircuitBreakerSettings{Name: "test-expected"})
		for i := 0; i < 20; i++ {
			_, err := cbc.UserInfo(context.Background(), 1)
			if !errors.Is(err, kind) {
				t.Fatalf("err = %v, want %v passed through", err, kind)
			}
		}
		if cbc.State() != gobreaker.StateClosed {
			t.Errorf("%v tripped the breaker", kind)
		}
	}
}

func TestCircuitBreaker_DoesNotOpenBelowMinimum(t *testing.T) {
	t.Parallel()

	stub := &stubClient{err: errors.New("boom")}
	cbc := NewCircuitBreakerClient(stub, CircuitBreakerSettings{Name: "test-minimum"})
	for i := 0; i < 5; i++ {
		_, _ = cbc.UserInfo(context.Background(), 1)
	}
	if cbc.State() != gobreaker.StateClosed {
		t.Errorf("state = %v, want closed below 10 requests", cbc.State())
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	t.Parallel()

	stub := &stubClient{err: errors.New("boom")}
	cbc := NewCircuitBreakerClient(stub, CircuitBreakerSettings{
		Name:        "test-recovery",
		Timeout:     20 * time.Millisecond,
		MinRequests: 2,
	})
	for i := 0; i < 2; i++ {
		_, _ = cbc.UserInfo(context.Background(), 1)
	}
	if cbc.State() != gobreaker.StateOpen {
		t.Fatalf("state = %v, want open", cbc.State())
	}

	time.Sleep(40 * time.Millisecond)
	if cbc.State() != gobreaker.StateHalfOpen {
		t.Fatalf("state = %v, want half-open after timeout", cbc.State())
	}

	stub.err = nil
	for i := 0; i < 3; i++ {
		if _, err := cbc.UserInfo(context.Background(), 1); err != nil {
			t.Fatalf("half-open call %d: %v", i, err)
		}
	}
	if cbc.State() != gobreaker.StateClosed {
		t.Errorf("state = %v, want closed after successful half-open calls", cbc.State())
	}
}

func TestCircuitBreaker_PassesResults(t *testing.T) {
	t.Parallel()

	stub := &stubClient{}
	cbc := NewCircuitBreakerClient(stub, CircuitBreakerSettings{Name: "test-results"})

	u, err := cbc.UserInfo(context.Background(), 77)
	if err != nil {
		t.Fatalf("UserInfo: %v", err)
	}
	if u.PK != 77 {
		t.Errorf("PK = %d, want 77", u.PK)
	}
	if cbc.Capabilities().Has(CapDirectSend) {
		t.Error("Capabilities should pass through from the wrapped client")
	}
}
