// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package resilience

import (
	"context"

	"namefinder/internal/matcher"
)

// Matcher guards a candidate matcher with retries and an optional circuit
// breaker. Failures that survive both are returned unchanged.
//
// The guard is part of the matcher it wraps: config installs it in place of
// the plain matcher, and namedetect sees an ordinary matcher.Matcher that
// either answers or fails once. The detector itself never retries or times
// out a collaborator.
type Matcher struct {
	inner   matcher.Matcher
	retry   RetryConfig
	breaker *CircuitBreaker
}

// NewMatcher wraps inner. A nil breaker disables fail-fast.
func NewMatcher(inner matcher.Matcher, retry RetryConfig, breaker *CircuitBreaker) *Matcher {
	return &Matcher{inner: inner, retry: retry, breaker: breaker}
}

// Match implements matcher.Matcher.
func (m *Matcher) Match(text string) (matcher.Result, error) {
	result, err := RetryWithResult(context.Background(), m.retry, func(ctx context.Context) (matcher.Result, error) {
		if m.breaker == nil {
			return m.inner.Match(text)
		}
		var r matcher.Result
		err := m.breaker.Execute(ctx, func(context.Context) error {
			var err error
			r, err = m.inner.Match(text)
			return err
		})
		return r, err
	})
	if err != nil {
		return matcher.Result{}, err
	}
	return result, nil
}
