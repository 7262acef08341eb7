// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package resilience

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"namefinder/internal/matcher"
)

func fastRetry(retries int) RetryConfig {
	return RetryConfig{
		MaxRetries:      retries,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		Multiplier:      2.0,
	}
}

func TestRetryWithBackoff_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), fastRetry(3), func(ctx context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoff_RetriesTransientErrors(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), fastRetry(3), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return NewTransientError("temporary failure", nil)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoff_StopsOnPermanentError(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), fastRetry(5), func(ctx context.Context) error {
		calls++
		return errors.New("bad input")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoff_ExhaustsRetries(t *testing.T) {
	calls := 0
	retries := 0
	config := fastRetry(3)
	config.OnRetry = func(attempt int, err error) { retries++ }

	err := RetryWithBackoff(context.Background(), config, func(ctx context.Context) error {
		calls++
		return NewTransientError(fmt.Sprintf("attempt %d", calls), nil)
	})
	require.Error(t, err)
	assert.Equal(t, "attempt 4", err.Error())
	assert.Equal(t, 4, calls) // initial + 3 retries
	assert.Equal(t, 3, retries)
}

func TestRetryWithBackoff_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	config := fastRetry(10)
	config.OnRetry = func(int, error) { cancel() }

	err := RetryWithBackoff(ctx, config, func(ctx context.Context) error {
		calls++
		return NewTransientError("fail", nil)
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryConfig_Delay(t *testing.T) {
	c := RetryConfig{InitialInterval: 10 * time.Millisecond, MaxInterval: 35 * time.Millisecond, Multiplier: 2}
	assert.Equal(t, 10*time.Millisecond, c.delay(1))
	assert.Equal(t, 20*time.Millisecond, c.delay(2))
	assert.Equal(t, 35*time.Millisecond, c.delay(3))

	c.MaxInterval = 0
	assert.Equal(t, 80*time.Millisecond, c.delay(4))
}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		wantType  ErrorType
		retryable bool
	}{
		{"deadline", context.DeadlineExceeded, ErrorTypeTimeout, true},
		{"canceled", context.Canceled, ErrorTypePermanent, false},
		{"dial", &net.OpError{Op: "dial", Err: errors.New("refused")}, ErrorTypeTransient, true},
		{"wrapped unavailable", fmt.Errorf("lookup: %w", errors.New("service unavailable")), ErrorTypeTransient, true},
		{"open circuit", &CircuitBreakerError{Name: "m", State: StateOpen, Message: "open"}, ErrorTypePermanent, false},
		{"wrapped classified", fmt.Errorf("ctx: %w", NewTransientError("t", nil)), ErrorTypeTransient, true},
		{"plain", errors.New("boom"), ErrorTypeUnknown, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := ClassifyError(tc.err)
			assert.Equal(t, tc.wantType, c.Type)
			assert.Equal(t, tc.retryable, c.IsRetryable())
			assert.Equal(t, tc.retryable, IsRetryable(tc.err))
		})
	}
	assert.Nil(t, ClassifyError(nil))
	assert.False(t, IsRetryable(nil))
}

func newTestBreaker(threshold int, clock *time.Time) *CircuitBreaker {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		Name:             "test",
		FailureThreshold: threshold,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
	})
	cb.now = func() time.Time { return *clock }
	return cb
}

func TestCircuitBreaker_OpensAndRecovers(t *testing.T) {
	clock := time.Unix(0, 0)
	cb := newTestBreaker(2, &clock)
	transient := NewTransientError("down", nil)
	fail := func(context.Context) error { return transient }
	ok := func(context.Context) error { return nil }

	assert.ErrorIs(t, cb.Execute(context.Background(), fail), transient)
	assert.Equal(t, StateClosed, cb.State())
	assert.ErrorIs(t, cb.Execute(context.Background(), fail), transient)
	assert.Equal(t, StateOpen, cb.State())

	var breakerErr *CircuitBreakerError
	require.ErrorAs(t, cb.Execute(context.Background(), ok), &breakerErr)
	assert.Equal(t, StateOpen, breakerErr.State)

	clock = clock.Add(time.Minute)
	require.NoError(t, cb.Execute(context.Background(), ok))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	clock := time.Unix(0, 0)
	cb := newTestBreaker(1, &clock)
	fail := func(context.Context) error { return NewTransientError("down", nil) }

	_ = cb.Execute(context.Background(), fail)
	require.Equal(t, StateOpen, cb.State())

	clock = clock.Add(time.Minute)
	_ = cb.Execute(context.Background(), fail)
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_PermanentErrorsDoNotCount(t *testing.T) {
	clock := time.Unix(0, 0)
	cb := newTestBreaker(1, &clock)
	for i := 0; i < 3; i++ {
		_ = cb.Execute(context.Background(), func(context.Context) error { return errors.New("bad input") })
	}
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	var mu sync.Mutex
	var transitions []string
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		Name:             "cb",
		FailureThreshold: 1,
		OnStateChange: func(name string, from, to CircuitBreakerState) {
			mu.Lock()
			defer mu.Unlock()
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})
	_ = cb.Execute(context.Background(), func(context.Context) error { return NewTransientError("x", nil) })
	assert.Equal(t, []string{"CLOSED->OPEN"}, transitions)
}

func TestMatcher_RetriesTransientFailures(t *testing.T) {
	calls := 0
	inner := matcher.Func(func(text string) (matcher.Result, error) {
		calls++
		if calls == 1 {
			return matcher.Result{}, NewTransientError("reset", nil)
		}
		return matcher.Identity([]string{"yash"}), nil
	})

	m := NewMatcher(inner, fastRetry(2), nil)
	got, err := m.Match("i am yash")
	require.NoError(t, err)
	assert.Equal(t, []string{"yash"}, got.Substrings)
	assert.Equal(t, 2, calls)
}

func TestMatcher_FailsFastWhenOpen(t *testing.T) {
	calls := 0
	boom := NewTransientError("down", nil)
	inner := matcher.Func(func(string) (matcher.Result, error) {
		calls++
		return matcher.Result{}, boom
	})

	clock := time.Unix(0, 0)
	m := NewMatcher(inner, fastRetry(0), newTestBreaker(1, &clock))

	_, err := m.Match("x")
	assert.ErrorIs(t, err, boom)

	_, err = m.Match("x")
	var breakerErr *CircuitBreakerError
	assert.ErrorAs(t, err, &breakerErr)
	assert.Equal(t, 1, calls)
}
