// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"namefinder/internal/observability"
)

const maxDefaultWorkers = 8

// ParallelProcessor fans a batch of messages out over a worker pool
type ParallelProcessor struct {
	workers  int
	observer *observability.StandardObserver
}

// ProcessingStats tracks parallel processing statistics
type ProcessingStats struct {
	TotalTexts     int           `json:"total_texts"`
	ProcessedTexts int           `json:"processed_texts"`
	FailedTexts    int           `json:"failed_texts"`
	TotalNames     int           `json:"total_names"`
	TotalDuration  time.Duration `json:"total_duration_ms"`
	WorkerCount    int           `json:"worker_count"`
	AvgTextTime    time.Duration `json:"avg_text_time_ms"`
}

// ProgressCallback is called as each message completes
type ProgressCallback func(completed, total int)

// NewParallelProcessor creates a processor with the given worker count. A
// non-positive count uses the CPU count, capped at 8.
func NewParallelProcessor(workers int, observer *observability.StandardObserver) *ParallelProcessor {
	if workers <= 0 {
		workers = min(runtime.NumCPU(), maxDefaultWorkers)
	}
	return &ParallelProcessor{workers: workers, observer: observer}
}

// Workers returns the configured worker count
func (pp *ParallelProcessor) Workers() int {
	return pp.workers
}

// ProcessTexts detects names in every job and returns results in job order.
// The error is the failure of the earliest failing job, if any; results for
// the other jobs are still returned.
func (pp *ParallelProcessor) ProcessTexts(ctx context.Context, detect DetectFunc, jobs []Job, progressCallback ProgressCallback) ([]*Result, *ProcessingStats, error) {
	start := time.Now()
	finishTiming := pp.observer.StartTiming("parallel_processor", "process_texts", len(jobs))

	pool := NewWorkerPool(ctx, min(pp.workers, max(len(jobs), 1)), detect, pp.observer)
	pool.Start()

	// Submit jobs in a separate goroutine to prevent deadlock
	go func() {
		defer pool.CloseJobs()
		for i := range jobs {
			job := jobs[i]
			job.Index = i
			if !pool.Submit(&job) {
				return
			}
		}
	}()
	go pool.Wait()

	ordered := make([]*Result, len(jobs))
	stats := &ProcessingStats{TotalTexts: len(jobs), WorkerCount: pool.workers}
	var busy time.Duration
	completed := 0

	for result := range pool.Results() {
		ordered[result.Index] = result
		busy += result.Duration
		if result.Error != nil {
			stats.FailedTexts++
		} else {
			stats.ProcessedTexts++
			if result.Detection != nil {
				stats.TotalNames += len(result.Detection.Entities)
			}
		}

		completed++
		if progressCallback != nil {
			progressCallback(completed, len(jobs))
		}
	}

	stats.TotalDuration = time.Since(start)
	stats.AvgTextTime = busy / time.Duration(max(stats.ProcessedTexts, 1))

	var firstErr error
	for i, result := range ordered {
		if result == nil {
			ordered[i] = &Result{Index: i, Text: jobs[i].Text, BotMessage: jobs[i].BotMessage, Error: ctx.Err()}
			result = ordered[i]
		}
		if result.Error != nil && firstErr == nil {
			firstErr = fmt.Errorf("message %d: %w", i+1, result.Error)
		}
	}

	metadata := map[string]interface{}{
		"total_texts":  stats.TotalTexts,
		"failed_texts": stats.FailedTexts,
		"entity_count": stats.TotalNames,
		"worker_count": stats.WorkerCount,
	}
	if firstErr != nil {
		metadata["error"] = firstErr.Error()
	}
	finishTiming(firstErr == nil, metadata)

	return ordered, stats, firstErr
}
