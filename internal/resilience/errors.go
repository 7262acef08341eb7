// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package resilience

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// ErrorType represents different types of errors for handling strategies
type ErrorType int

const (
	ErrorTypeUnknown   ErrorType = iota
	ErrorTypeTransient           // Connection resets, overloaded backends
	ErrorTypePermanent           // Bad input, open circuit, cancellation
	ErrorTypeTimeout             // Deadlines and network timeouts
)

func (et ErrorType) String() string {
	switch et {
	case ErrorTypeUnknown:
		return "Unknown"
	case ErrorTypeTransient:
		return "Transient"
	case ErrorTypePermanent:
		return "Permanent"
	case ErrorTypeTimeout:
		return "Timeout"
	default:
		return fmt.Sprintf("ErrorType(%d)", int(et))
	}
}

// ClassifiedError wraps an error with type information
type ClassifiedError struct {
	Original  error
	Type      ErrorType
	Message   string
	Retryable bool
}

func (e *ClassifiedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Original == nil {
		return e.Type.String() + " error"
	}
	return e.Original.Error()
}

func (e *ClassifiedError) Unwrap() error {
	return e.Original
}

// IsRetryable returns whether this error should be retried
func (e *ClassifiedError) IsRetryable() bool {
	return e.Retryable
}

// ClassifyError categorizes an error for retry decisions. Errors already
// classified anywhere in the chain keep their classification.
func ClassifyError(err error) *ClassifiedError {
	if err == nil {
		return nil
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified
	}

	var breakerErr *CircuitBreakerError
	switch {
	case errors.As(err, &breakerErr), errors.Is(err, context.Canceled):
		return &ClassifiedError{Original: err, Type: ErrorTypePermanent, Retryable: false}
	case isTimeoutError(err):
		return &ClassifiedError{Original: err, Type: ErrorTypeTimeout, Retryable: true}
	case isNetworkError(err):
		return &ClassifiedError{Original: err, Type: ErrorTypeTransient, Retryable: true}
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "unavailable") || strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "temporarily") {
		return &ClassifiedError{Original: err, Type: ErrorTypeTransient, Retryable: true}
	}

	// Default to unknown, non-retryable
	return &ClassifiedError{Original: err, Type: ErrorTypeUnknown, Retryable: false}
}

func isNetworkError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH)
}

func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// NewTransientError creates a new transient error
func NewTransientError(message string, cause error) *ClassifiedError {
	return &ClassifiedError{
		Original:  cause,
		Type:      ErrorTypeTransient,
		Message:   message,
		Retryable: true,
	}
}

// NewPermanentError creates a new permanent error
func NewPermanentError(message string, cause error) *ClassifiedError {
	return &ClassifiedError{
		Original:  cause,
		Type:      ErrorTypePermanent,
		Message:   message,
		Retryable: false,
	}
}

// IsRetryable reports whether an error should be retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return ClassifyError(err).IsRetryable()
}
