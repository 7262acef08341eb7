// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package resilience

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// CircuitBreakerState represents the state of a circuit breaker
type CircuitBreakerState int

const (
	StateClosed   CircuitBreakerState = iota // Normal operation
	StateOpen                                // Failing fast
	StateHalfOpen                            // Probing whether the collaborator recovered
)

func (s CircuitBreakerState) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// CircuitBreakerConfig holds circuit breaker configuration
type CircuitBreakerConfig struct {
	Name             string                                          // Name for logging
	FailureThreshold int                                             // Consecutive failures before opening
	SuccessThreshold int                                             // Successes in half-open before closing
	Timeout          time.Duration                                   // Open period before probing
	MaxRequests      int                                             // Concurrent probes allowed in half-open
	IsFailure        func(error) bool                                // Which errors count against the breaker
	OnStateChange    func(name string, from, to CircuitBreakerState) // State change callback
}

// DefaultCircuitBreakerConfig returns the defaults used for collaborator calls.
// Only retryable errors count as failures.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          10 * time.Second,
		MaxRequests:      1,
		IsFailure:        IsRetryable,
	}
}

// CircuitBreaker implements the circuit breaker pattern. It is safe for
// concurrent use.
type CircuitBreaker struct {
	config CircuitBreakerConfig
	now    func() time.Time

	mu           sync.Mutex
	state        CircuitBreakerState
	failureCount int
	successCount int
	inFlight     int
	openedAt     time.Time
}

// NewCircuitBreaker creates a new circuit breaker. Zero thresholds fall back
// to the defaults.
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCircuitBreakerConfig(config.Name)
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = def.FailureThreshold
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = def.SuccessThreshold
	}
	if config.Timeout <= 0 {
		config.Timeout = def.Timeout
	}
	if config.MaxRequests <= 0 {
		config.MaxRequests = def.MaxRequests
	}
	if config.IsFailure == nil {
		config.IsFailure = def.IsFailure
	}
	return &CircuitBreaker{config: config, now: time.Now}
}

// Execute runs fn unless the circuit is open.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := cb.beforeRequest(); err != nil {
		return err
	}

	err := fn(ctx)
	cb.afterRequest(err)
	return err
}

func (cb *CircuitBreaker) beforeRequest() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		if cb.now().Sub(cb.openedAt) < cb.config.Timeout {
			return &CircuitBreakerError{Name: cb.config.Name, State: StateOpen,
				Message: fmt.Sprintf("circuit breaker '%s' is OPEN after %d failures", cb.config.Name, cb.failureCount)}
		}
		cb.setState(StateHalfOpen)
	}

	if cb.state == StateHalfOpen {
		if cb.inFlight >= cb.config.MaxRequests {
			return &CircuitBreakerError{Name: cb.config.Name, State: StateHalfOpen,
				Message: fmt.Sprintf("circuit breaker '%s' is HALF_OPEN and at max requests (%d)", cb.config.Name, cb.config.MaxRequests)}
		}
		cb.inFlight++
	}
	return nil
}

func (cb *CircuitBreaker) afterRequest(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	probing := cb.state == StateHalfOpen
	if probing {
		cb.inFlight--
	}

	if err != nil && cb.config.IsFailure(err) {
		cb.failureCount++
		if probing || cb.failureCount >= cb.config.FailureThreshold {
			cb.openedAt = cb.now()
			cb.setState(StateOpen)
		}
		return
	}

	if !probing {
		cb.failureCount = 0
		return
	}
	cb.successCount++
	if cb.successCount >= cb.config.SuccessThreshold {
		cb.setState(StateClosed)
	}
}

// setState must be called with mu held.
func (cb *CircuitBreaker) setState(newState CircuitBreakerState) {
	if cb.state == newState {
		return
	}
	oldState := cb.state
	cb.state = newState
	cb.successCount = 0
	cb.inFlight = 0
	if newState == StateClosed {
		cb.failureCount = 0
	}

	if cb.config.OnStateChange != nil {
		cb.config.OnStateChange(cb.config.Name, oldState, newState)
	}
}

// State returns the current state
func (cb *CircuitBreaker) State() CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// CircuitBreakerError is returned while the breaker rejects calls.
type CircuitBreakerError struct {
	Name    string
	State   CircuitBreakerState
	Message string
}

func (e *CircuitBreakerError) Error() string {
	return e.Message
}
