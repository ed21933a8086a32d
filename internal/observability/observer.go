// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"io"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StandardObserver records pipeline operations for a single run
type StandardObserver struct {
	level         ObservabilityLevel
	writer        io.Writer
	runID         string
	DebugObserver *DebugObserver // Reference to debug observer when in debug mode
}

type ObservabilityLevel int

const (
	ObservabilityOff     ObservabilityLevel = 0
	ObservabilityMetrics ObservabilityLevel = 1
	ObservabilityDebug   ObservabilityLevel = 2
)

// NewStandardObserver creates an observer with a fresh run ID
func NewStandardObserver(level ObservabilityLevel, writer io.Writer) *StandardObserver {
	if writer == nil {
		writer = io.Discard
	}
	return &StandardObserver{
		level:  level,
		writer: writer,
		runID:  "run-" + uuid.NewString(),
	}
}

// NewObserver returns a debug-capable observer when debug is set and a
// metrics-level observer otherwise
func NewObserver(debug bool, writer io.Writer) *StandardObserver {
	if debug {
		debugObs := NewDebugObserver(writer)
		observer := debugObs.StandardObserver
		observer.DebugObserver = debugObs
		return observer
	}
	return NewStandardObserver(ObservabilityMetrics, writer)
}

// RunID identifies every record emitted by this observer
func (o *StandardObserver) RunID() string {
	return o.runID
}

// Level returns the observer's verbosity
func (o *StandardObserver) Level() ObservabilityLevel {
	return o.level
}

// StartTiming returns a function to complete timing
func (o *StandardObserver) StartTiming(component, operation, source string) func(success bool, metadata map[string]interface{}) {
	start := time.Now()

	return func(success bool, metadata map[string]interface{}) {
		o.LogOperation(StandardObservabilityData{
			Component:  component,
			Operation:  operation,
			Source:     source,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		})
	}
}

// LogOperation logs operation data
func (o *StandardObserver) LogOperation(data StandardObservabilityData) {
	if o == nil || o.level == ObservabilityOff {
		return
	}

	data.RunID = o.runID

	// Only log JSON in debug mode
	if o.level == ObservabilityDebug {
		json.NewEncoder(o.writer).Encode(data)
	}
}

// Detail forwards to the debug observer when one is attached
func (o *StandardObserver) Detail(component, detail string) {
	if o != nil && o.DebugObserver != nil {
		o.DebugObserver.LogDetail(component, detail)
	}
}

// Metric forwards to the debug observer when one is attached
func (o *StandardObserver) Metric(component, metric string, value interface{}) {
	if o != nil && o.DebugObserver != nil {
		o.DebugObserver.LogMetric(component, metric, value)
	}
}

// Step starts a debug step when a debug observer is attached; the returned
// function must be called to close it.
func (o *StandardObserver) Step(component, step, source string) func(success bool, details string) {
	if o == nil || o.DebugObserver == nil {
		return func(bool, string) {}
	}
	return o.DebugObserver.StartStep(component, step, source)
}

// StandardObservabilityData for all components
type StandardObservabilityData struct {
	Component     string                 `json:"component"`
	Operation     string                 `json:"operation"`
	RunID         string                 `json:"run_id"`
	Source        string                 `json:"source,omitempty"`
	DurationMs    int64                  `json:"duration_ms,omitempty"`
	Success       bool                   `json:"success"`
	Error         string                 `json:"error,omitempty"`
	DocumentCount int                    `json:"document_count,omitempty"`
	KeywordCount  int                    `json:"keyword_count,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}
