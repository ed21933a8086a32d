// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// DebugObserver prints a nested trace of pipeline steps for --debug runs.
// Writes are serialized so steps may be reported from several goroutines.
type DebugObserver struct {
	*StandardObserver
	mu    sync.Mutex
	depth int
}

// NewDebugObserver creates a debug observer writing to writer
func NewDebugObserver(writer io.Writer) *DebugObserver {
	return &DebugObserver{
		StandardObserver: NewStandardObserver(ObservabilityDebug, writer),
	}
}

// StartStep opens a step and returns the function that closes it
func (d *DebugObserver) StartStep(component, step, source string) func(success bool, details string) {
	start := time.Now()

	d.mu.Lock()
	d.printf("🔄 %s: %s (%s)", component, step, source)
	d.depth++
	d.mu.Unlock()

	return func(success bool, details string) {
		elapsed := time.Since(start).Milliseconds()

		d.mu.Lock()
		defer d.mu.Unlock()
		if d.depth > 0 {
			d.depth--
		}
		if success {
			d.printf("✅ %s: %s completed (%dms) %s", component, step, elapsed, details)
		} else {
			d.printf("❌ %s: %s failed (%dms) %s", component, step, elapsed, details)
		}
	}
}

// LogDetail writes a line inside the current step
func (d *DebugObserver) LogDetail(component, detail string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.printf("   → %s: %s", component, detail)
}

// LogMetric writes a named value inside the current step
func (d *DebugObserver) LogMetric(component, metric string, value interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.printf("   📊 %s: %s = %v", component, metric, value)
}

// printf writes one indented line; callers hold mu
func (d *DebugObserver) printf(format string, args ...interface{}) {
	fmt.Fprintf(d.writer, "%s%s\n", strings.Repeat("  ", d.depth), fmt.Sprintf(format, args...))
}
