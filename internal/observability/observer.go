// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StandardObserver writes one JSON record per completed operation. It is safe
// for concurrent use.
type StandardObserver struct {
	level         ObservabilityLevel
	writer        io.Writer
	mu            sync.Mutex
	DebugObserver *DebugObserver // set when the CLI runs in debug mode
}

type ObservabilityLevel int

const (
	ObservabilityOff     ObservabilityLevel = 0
	ObservabilityMetrics ObservabilityLevel = 1
	ObservabilityDebug   ObservabilityLevel = 2
)

// ParseLevel maps "off", "metrics" and "debug" to a level. Anything else is Off.
func ParseLevel(s string) ObservabilityLevel {
	switch s {
	case "metrics":
		return ObservabilityMetrics
	case "debug":
		return ObservabilityDebug
	default:
		return ObservabilityOff
	}
}

// NewStandardObserver creates observability component
func NewStandardObserver(level ObservabilityLevel, writer io.Writer) *StandardObserver {
	if writer == nil {
		writer = io.Discard
	}
	return &StandardObserver{
		level:  level,
		writer: writer,
	}
}

// Level returns the configured level.
func (o *StandardObserver) Level() ObservabilityLevel {
	if o == nil {
		return ObservabilityOff
	}
	return o.level
}

// StartTiming returns a function to complete timing
func (o *StandardObserver) StartTiming(component, operation string, contentLength int) func(success bool, metadata map[string]interface{}) {
	start := time.Now()

	return func(success bool, metadata map[string]interface{}) {
		data := StandardObservabilityData{
			Component:     component,
			Operation:     operation,
			DurationMs:    time.Since(start).Milliseconds(),
			Success:       success,
			ContentLength: contentLength,
			Metadata:      metadata,
		}
		if n, ok := metadata["entity_count"].(int); ok {
			data.MatchCount = n
		}
		if msg, ok := metadata["error"].(string); ok {
			data.Error = msg
		}

		o.LogOperation(data)
	}
}

// LogOperation logs operation data
func (o *StandardObserver) LogOperation(data StandardObservabilityData) {
	if o == nil || o.level == ObservabilityOff {
		return
	}

	if data.RequestID == "" {
		data.RequestID = "req-" + uuid.NewString()
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	_ = json.NewEncoder(o.writer).Encode(data)
}

// StandardObservabilityData for all components
type StandardObservabilityData struct {
	Component     string                 `json:"component"`
	Operation     string                 `json:"operation"`
	RequestID     string                 `json:"request_id"`
	DurationMs    int64                  `json:"duration_ms"`
	Success       bool                   `json:"success"`
	Error         string                 `json:"error,omitempty"`
	ContentLength int                    `json:"content_length,omitempty"`
	MatchCount    int                    `json:"match_count,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}
