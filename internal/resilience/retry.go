// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package resilience

import (
	"context"
	"math/rand"
	"time"
)

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxRetries      int                          // Retry attempts after the first call
	InitialInterval time.Duration                // Delay before the first retry
	MaxInterval     time.Duration                // Delay cap; zero means uncapped
	Multiplier      float64                      // Growth factor between consecutive delays
	Jitter          bool                         // Add up to 25% random jitter to spread retries
	OnRetry         func(attempt int, err error) // Optional callback invoked before each retry
}

// DefaultRetryConfig returns a few short retries for in-request collaborator calls.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      2,
		InitialInterval: 50 * time.Millisecond,
		MaxInterval:     time.Second,
		Multiplier:      2.0,
		Jitter:          true,
	}
}

// delay returns the wait before retry number attempt (1-based).
func (c RetryConfig) delay(attempt int) time.Duration {
	d := float64(c.InitialInterval)
	for i := 1; i < attempt; i++ {
		d *= c.Multiplier
	}
	if c.Jitter {
		d += d * 0.25 * rand.Float64()
	}
	wait := time.Duration(d)
	if c.MaxInterval > 0 && wait > c.MaxInterval {
		wait = c.MaxInterval
	}
	return wait
}

// RetryableOperation represents an operation that can be retried.
type RetryableOperation func(ctx context.Context) error

// RetryWithBackoff runs operation until it succeeds, fails with a
// non-retryable error, exhausts MaxRetries or ctx is done. The last error is
// returned.
func RetryWithBackoff(ctx context.Context, config RetryConfig, operation RetryableOperation) error {
	var lastErr error

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(config.delay(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}

			if config.OnRetry != nil {
				config.OnRetry(attempt, lastErr)
			}
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		err := operation(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return err
		}
	}

	return lastErr
}

// RetryableFunc is a convenience type for retryable functions that return a value.
type RetryableFunc[T any] func(ctx context.Context) (T, error)

// RetryWithResult executes a function that returns a result and error with retry logic.
func RetryWithResult[T any](ctx context.Context, config RetryConfig, fn RetryableFunc[T]) (T, error) {
	var result T
	err := RetryWithBackoff(ctx, config, func(ctx context.Context) error {
		var e error
		result, e = fn(ctx)
		return e
	})
	return result, err
}
