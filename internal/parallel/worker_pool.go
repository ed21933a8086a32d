// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ExtractFunc turns one document body into its section text and keywords.
// It must be safe for concurrent use.
type ExtractFunc func(body *string) (string, []string)

// Job is one document waiting to be analyzed
type Job struct {
	Index int
	Body  *string
}

// Result is the outcome of one job
type Result struct {
	Index    int
	Section  string
	Keywords []string
	Error    error
	Duration time.Duration
}

// WorkerPool runs an ExtractFunc over submitted jobs on a fixed number of goroutines
type WorkerPool struct {
	workers int
	extract ExtractFunc
	jobs    chan *Job
	results chan *Result
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewWorkerPool creates a pool of workers goroutines. The pool stops early
// when ctx is cancelled.
func NewWorkerPool(ctx context.Context, workers int, extract ExtractFunc) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)

	return &WorkerPool{
		workers: workers,
		extract: extract,
		jobs:    make(chan *Job, workers*2),
		results: make(chan *Result, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Workers returns the number of worker goroutines
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// Start launches the worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Close signals that no more jobs will be submitted
func (wp *WorkerPool) Close() {
	close(wp.jobs)
}

// Wait blocks until every worker has exited, then closes the results channel
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
	close(wp.results)
	wp.cancel()
}

// Submit queues a job. It returns false when the pool was cancelled first.
func (wp *WorkerPool) Submit(job *Job) bool {
	select {
	case wp.jobs <- job:
		return true
	case <-wp.ctx.Done():
		return false
	}
}

// Results returns the results channel
func (wp *WorkerPool) Results() <-chan *Result {
	return wp.results
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for job := range wp.jobs {
		result := wp.processJob(job)

		select {
		case wp.results <- result:
		case <-wp.ctx.Done():
			return
		}
	}
}

// processJob runs the extractor, turning a panic into a job error
func (wp *WorkerPool) processJob(job *Job) (result *Result) {
	start := time.Now()
	result = &Result{Index: job.Index}

	defer func() {
		if r := recover(); r != nil {
			result.Section = ""
			result.Keywords = nil
			result.Error = fmt.Errorf("panic while processing document %d: %v", job.Index, r)
		}
		result.Duration = time.Since(start)
	}()

	result.Section, result.Keywords = wp.extract(job.Body)
	return result
}
