// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"namefinder/internal/namedetect"
	"namefinder/internal/observability"
)

// DetectFunc runs one detection. namedetect.Detector.Detect satisfies it.
type DetectFunc func(text, priorMessage string) (*namedetect.Result, error)

// errNoDetector is returned for a job when neither it nor the pool has a DetectFunc.
var errNoDetector = errors.New("no detector configured")

// Job is one message to detect names in. Detect overrides the pool's
// DetectFunc for this job, e.g. when messages of one batch differ in language.
type Job struct {
	Index      int
	Text       string
	BotMessage string
	Detect     DetectFunc
}

// Result represents processing results
type Result struct {
	Index      int
	Text       string
	BotMessage string
	Detection  *namedetect.Result
	Error      error
	Duration   time.Duration
}

// WorkerPool runs detections on a fixed number of goroutines
type WorkerPool struct {
	workers  int
	detect   DetectFunc
	jobs     chan *Job
	results  chan *Result
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	observer *observability.StandardObserver
}

// NewWorkerPool creates a worker pool bound to ctx. Cancelling ctx makes
// pending jobs fail with the context error.
func NewWorkerPool(ctx context.Context, workers int, detect DetectFunc, observer *observability.StandardObserver) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	return &WorkerPool{
		workers:  workers,
		detect:   detect,
		jobs:     make(chan *Job, workers*2),
		results:  make(chan *Result, workers*2),
		ctx:      ctx,
		cancel:   cancel,
		observer: observer,
	}
}

// Start initializes worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Submit queues a job. It reports false once the pool's context is done.
func (wp *WorkerPool) Submit(job *Job) bool {
	select {
	case wp.jobs <- job:
		return true
	case <-wp.ctx.Done():
		return false
	}
}

// CloseJobs signals that no more jobs will be submitted
func (wp *WorkerPool) CloseJobs() {
	close(wp.jobs)
}

// Wait blocks until every worker has exited, then closes the results channel
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
	close(wp.results)
	wp.cancel()
}

// Results returns the results channel
func (wp *WorkerPool) Results() <-chan *Result {
	return wp.results
}

// worker processes jobs from the queue
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for job := range wp.jobs {
		// Results are always delivered; the collector drains until Wait closes the channel.
		wp.results <- wp.processJob(job, id)
	}
}

func (wp *WorkerPool) processJob(job *Job, workerID int) *Result {
	start := time.Now()
	result := &Result{Index: job.Index, Text: job.Text, BotMessage: job.BotMessage}

	if err := wp.ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	if wp.observer != nil && wp.observer.DebugObserver != nil {
		wp.observer.DebugObserver.LogDetail("worker_pool", fmt.Sprintf("worker %d: job %d", workerID, job.Index))
	}

	detect := job.Detect
	if detect == nil {
		detect = wp.detect
	}
	if detect == nil {
		result.Error = errNoDetector
		return result
	}

	result.Detection, result.Error = detect(job.Text, job.BotMessage)
	result.Duration = time.Since(start)
	return result
}
