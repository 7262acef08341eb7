// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardObserver_StartTiming(t *testing.T) {
	var buf bytes.Buffer
	o := NewStandardObserver(ObservabilityMetrics, &buf)

	finish := o.StartTiming("name_detector", "detect", 21)
	finish(true, map[string]interface{}{"entity_count": 1, "stage": "pos_pattern"})

	var record StandardObservabilityData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "name_detector", record.Component)
	assert.Equal(t, "detect", record.Operation)
	assert.Equal(t, 21, record.ContentLength)
	assert.Equal(t, 1, record.MatchCount)
	assert.True(t, record.Success)
	assert.True(t, strings.HasPrefix(record.RequestID, "req-"))
	assert.Equal(t, "pos_pattern", record.Metadata["stage"])
}

func TestStandardObserver_Off(t *testing.T) {
	var buf bytes.Buffer
	o := NewStandardObserver(ObservabilityOff, &buf)
	o.StartTiming("c", "op", 0)(true, nil)
	assert.Zero(t, buf.Len())

	var nilObserver *StandardObserver
	assert.NotPanics(t, func() { nilObserver.LogOperation(StandardObservabilityData{}) })
	assert.Equal(t, ObservabilityOff, nilObserver.Level())
}

func TestStandardObserver_UniqueRequestIDs(t *testing.T) {
	var buf bytes.Buffer
	o := NewStandardObserver(ObservabilityDebug, &buf)
	o.LogOperation(StandardObservabilityData{Component: "a"})
	o.LogOperation(StandardObservabilityData{Component: "b"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var first, second StandardObservabilityData
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.NotEqual(t, first.RequestID, second.RequestID)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, ObservabilityMetrics, ParseLevel("metrics"))
	assert.Equal(t, ObservabilityDebug, ParseLevel("debug"))
	assert.Equal(t, ObservabilityOff, ParseLevel("verbose"))
}

func TestDebugObserver_Steps(t *testing.T) {
	var buf bytes.Buffer
	d := NewDebugObserver(&buf)
	assert.Same(t, d, d.StandardObserver.DebugObserver)

	done := d.StartStep("hindi", "regex templates", "मेरा नाम राहुल")
	d.LogDetail("hindi", "template name_or_i matched")
	d.LogMetric("hindi", "captures", 1)
	done(true, "1 entity")

	out := buf.String()
	assert.Contains(t, out, "🔄 hindi: regex templates (मेरा नाम राहुल)")
	assert.Contains(t, out, "  → hindi: template name_or_i matched")
	assert.Contains(t, out, "📊 hindi: captures = 1")
	assert.Contains(t, out, "✅ hindi: regex templates completed")
}
