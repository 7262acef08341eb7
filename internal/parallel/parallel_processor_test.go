// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"namefinder/internal/namedetect"
	"namefinder/internal/observability"
)

// echoDetect reports the last word of every message as a first name.
func echoDetect(text, _ string) (*namedetect.Result, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return &namedetect.Result{Stage: namedetect.StageEmptyInput}, nil
	}
	last := fields[len(fields)-1]
	return &namedetect.Result{
		Entities:   []namedetect.NameEntity{{FirstName: last}},
		Substrings: []string{last},
		Stage:      namedetect.StageMatcher,
	}, nil
}

func jobsFor(texts ...string) []Job {
	jobs := make([]Job, len(texts))
	for i, text := range texts {
		jobs[i] = Job{Text: text}
	}
	return jobs
}

func TestNewParallelProcessor_DefaultWorkers(t *testing.T) {
	pp := NewParallelProcessor(0, nil)
	assert.GreaterOrEqual(t, pp.Workers(), 1)
	assert.LessOrEqual(t, pp.Workers(), maxDefaultWorkers)

	assert.Equal(t, 3, NewParallelProcessor(3, nil).Workers())
}

func TestProcessTexts_PreservesOrder(t *testing.T) {
	texts := []string{"i am yash", "call me rahul", "", "myself priya", "this is omar"}
	pp := NewParallelProcessor(4, nil)

	var calls int32
	var lastTotal int
	results, stats, err := pp.ProcessTexts(context.Background(), echoDetect, jobsFor(texts...), func(completed, total int) {
		atomic.AddInt32(&calls, 1)
		lastTotal = total
	})
	require.NoError(t, err)
	require.Len(t, results, len(texts))

	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, texts[i], r.Text)
	}
	assert.Equal(t, "rahul", results[1].Detection.Entities[0].FirstName)
	assert.Empty(t, results[2].Detection.Entities)

	assert.Equal(t, int32(len(texts)), atomic.LoadInt32(&calls))
	assert.Equal(t, len(texts), lastTotal)
	assert.Equal(t, len(texts), stats.TotalTexts)
	assert.Equal(t, len(texts), stats.ProcessedTexts)
	assert.Equal(t, 0, stats.FailedTexts)
	assert.Equal(t, 4, stats.TotalNames)
	assert.Equal(t, 4, stats.WorkerCount)
}

func TestProcessTexts_WorkersCappedByJobs(t *testing.T) {
	_, stats, err := NewParallelProcessor(8, nil).ProcessTexts(context.Background(), echoDetect, jobsFor("i am yash"), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.WorkerCount)
}

func TestProcessTexts_Empty(t *testing.T) {
	results, stats, err := NewParallelProcessor(2, nil).ProcessTexts(context.Background(), echoDetect, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, stats.TotalTexts)
}

func TestProcessTexts_ReportsEarliestFailure(t *testing.T) {
	boom := errors.New("backend down")
	detect := func(text, prior string) (*namedetect.Result, error) {
		if strings.HasPrefix(text, "fail") {
			return nil, boom
		}
		return echoDetect(text, prior)
	}

	results, stats, err := NewParallelProcessor(3, nil).ProcessTexts(context.Background(), detect,
		jobsFor("i am yash", "fail one", "call me rahul", "fail two"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "message 2")

	require.Len(t, results, 4)
	assert.Equal(t, "rahul", results[2].Detection.Entities[0].FirstName)
	assert.Equal(t, 2, stats.FailedTexts)
	assert.Equal(t, 2, stats.ProcessedTexts)
}

func TestProcessTexts_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, _, err := NewParallelProcessor(2, nil).ProcessTexts(ctx, echoDetect, jobsFor("a", "b", "c"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	for _, r := range results {
		require.NotNil(t, r)
		assert.ErrorIs(t, r.Error, context.Canceled)
	}
}

func TestProcessTexts_PassesBotMessage(t *testing.T) {
	var seen atomic.Value
	detect := func(text, prior string) (*namedetect.Result, error) {
		seen.Store(prior)
		return echoDetect(text, prior)
	}
	results, _, err := NewParallelProcessor(1, nil).ProcessTexts(context.Background(), detect,
		[]Job{{Text: "yash", BotMessage: "what is your name?"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "what is your name?", seen.Load())
	assert.Equal(t, "what is your name?", results[0].BotMessage)
}

func TestProcessTexts_ObserverLogsBatch(t *testing.T) {
	var buf bytes.Buffer
	debug := observability.NewDebugObserver(&buf)

	_, _, err := NewParallelProcessor(2, debug.StandardObserver).ProcessTexts(context.Background(), echoDetect,
		jobsFor("i am yash", "call me rahul"), nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"component":"parallel_processor"`)
	assert.Contains(t, out, `"operation":"process_texts"`)
	assert.Contains(t, out, "worker_pool: worker")
}

func TestProcessTexts_PerJobDetector(t *testing.T) {
	shout := func(text, _ string) (*namedetect.Result, error) {
		return &namedetect.Result{Entities: []namedetect.NameEntity{{FirstName: strings.ToUpper(text)}}}, nil
	}
	jobs := []Job{{Text: "yash"}, {Text: "rahul", Detect: shout}}

	results, _, err := NewParallelProcessor(2, nil).ProcessTexts(context.Background(), echoDetect, jobs, nil)
	require.NoError(t, err)
	assert.Equal(t, "yash", results[0].Detection.Entities[0].FirstName)
	assert.Equal(t, "RAHUL", results[1].Detection.Entities[0].FirstName)

	_, _, err = NewParallelProcessor(1, nil).ProcessTexts(context.Background(), nil, []Job{{Text: "yash"}}, nil)
	assert.ErrorIs(t, err, errNoDetector)
}
