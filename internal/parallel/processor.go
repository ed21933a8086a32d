// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"runtime"
	"time"

	"github.com/hashicorp/go-multierror"
)

// MaxWorkers caps the worker count picked automatically
const MaxWorkers = 8

// Processor fans document bodies out to a worker pool and returns the
// results in input order
type Processor struct {
	workers int
}

// ProcessingStats summarizes one batch
type ProcessingStats struct {
	TotalDocuments int           `json:"total_documents"`
	Failed         int           `json:"failed"`
	WorkerCount    int           `json:"worker_count"`
	TotalDuration  time.Duration `json:"total_duration_ms"`
	AvgDocTime     time.Duration `json:"avg_document_time_ms"`
}

// ProgressCallback is called after each completed document
type ProgressCallback func(completed, total int)

// NewProcessor creates a processor. workers <= 0 uses one worker per CPU,
// capped at MaxWorkers; a single worker runs every job on the caller's
// goroutine.
func NewProcessor(workers int) *Processor {
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers > MaxWorkers {
			workers = MaxWorkers
		}
	}
	return &Processor{workers: workers}
}

// Process runs extract over every body. The returned slice is indexed like
// bodies, so callers can aggregate in input order regardless of scheduling.
// Failed jobs leave a zero Result at their index and are reported in the
// combined error.
func (p *Processor) Process(ctx context.Context, bodies []*string, extract ExtractFunc, progress ProgressCallback) ([]Result, *ProcessingStats, error) {
	start := time.Now()
	results := make([]Result, len(bodies))
	stats := &ProcessingStats{TotalDocuments: len(bodies), WorkerCount: p.workers}
	if len(bodies) == 0 {
		return results, stats, nil
	}

	if p.workers == 1 {
		return p.processInline(ctx, bodies, extract, progress, start)
	}

	workers := p.workers
	if workers > len(bodies) {
		workers = len(bodies)
	}
	stats.WorkerCount = workers

	pool := NewWorkerPool(ctx, workers, extract)
	pool.Start()

	go func() {
		defer pool.Close()
		for i, body := range bodies {
			if !pool.Submit(&Job{Index: i, Body: body}) {
				return
			}
		}
	}()
	go pool.Wait()

	var errs *multierror.Error
	var busy time.Duration
	completed := 0
	for r := range pool.Results() {
		completed++
		busy += r.Duration
		if r.Error != nil {
			stats.Failed++
			errs = multierror.Append(errs, r.Error)
		} else {
			results[r.Index] = *r
		}
		if progress != nil {
			progress(completed, len(bodies))
		}
	}

	if completed < len(bodies) {
		if err := ctx.Err(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	stats.TotalDuration = time.Since(start)
	stats.AvgDocTime = busy / time.Duration(max(completed, 1))
	return results, stats, errs.ErrorOrNil()
}

// processInline handles jobs one after another in input order
func (p *Processor) processInline(ctx context.Context, bodies []*string, extract ExtractFunc, progress ProgressCallback, start time.Time) ([]Result, *ProcessingStats, error) {
	results := make([]Result, len(bodies))
	stats := &ProcessingStats{TotalDocuments: len(bodies), WorkerCount: 1}
	pool := &WorkerPool{extract: extract}

	var errs *multierror.Error
	var busy time.Duration
	for i, body := range bodies {
		if err := ctx.Err(); err != nil {
			errs = multierror.Append(errs, err)
			break
		}
		r := pool.processJob(&Job{Index: i, Body: body})
		busy += r.Duration
		if r.Error != nil {
			stats.Failed++
			errs = multierror.Append(errs, r.Error)
		} else {
			results[i] = *r
		}
		if progress != nil {
			progress(i+1, len(bodies))
		}
	}

	stats.TotalDuration = time.Since(start)
	stats.AvgDocTime = busy / time.Duration(max(len(bodies), 1))
	return results, stats, errs.ErrorOrNil()
}
