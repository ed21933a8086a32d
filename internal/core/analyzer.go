// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"issue-wordmap/internal/frequency"
	"issue-wordmap/internal/issues"
	"issue-wordmap/internal/observability"
	"issue-wordmap/internal/parallel"
	"issue-wordmap/internal/section"
)

// ErrNoKeywords marks a run whose frequency table stayed empty. It is a
// terminal condition, not a failure: nothing is rendered or exported.
var ErrNoKeywords = errors.New("no keywords found")

// progressInterval is how often, in documents, extraction progress is traced
const progressInterval = 1000

// Result holds the outcome of an analysis run
type Result struct {
	Table       *frequency.Table
	Documents   int // documents in the collection
	WithSection int // documents whose body contained the target section
	Keywords    int // keyword occurrences, duplicates included
	Duration    time.Duration
}

// AnalyzeConfig holds configuration for analyzing a collection file.
type AnalyzeConfig struct {
	InputPath  string
	RepairJSON bool
	Debug      bool
	Pipeline   PipelineOptions
	// Observer, when nil, is built from Debug and writes to stderr
	Observer *observability.StandardObserver
}

// AnalyzeFile loads a collection from disk and analyzes it. Load failures
// are returned as-is; an empty table yields the result together with ErrNoKeywords.
func AnalyzeFile(cfg AnalyzeConfig) (*Result, error) {
	observer := cfg.Observer
	if observer == nil {
		observer = observability.NewObserver(cfg.Debug, os.Stderr)
	}

	pipeline, err := BuildPipeline(cfg.Pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}

	finishLoad := observer.StartTiming("loader", "load_collection", cfg.InputPath)
	docs, err := issues.Load(cfg.InputPath, issues.Options{Repair: cfg.RepairJSON})
	if err != nil {
		finishLoad(false, map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	finishLoad(true, map[string]interface{}{"documents": len(docs)})

	return AnalyzeContext(context.Background(), docs, pipeline, observer)
}

// Analyze processes documents and aggregates their keywords.
// Documents with no body or no matching section contribute nothing.
func Analyze(docs []issues.Document, pipeline *Pipeline, observer *observability.StandardObserver) (*Result, error) {
	return AnalyzeContext(context.Background(), docs, pipeline, observer)
}

// AnalyzeContext is Analyze with cancellation. Documents are extracted
// concurrently but aggregated in input order, so the ranking does not
// depend on scheduling.
func AnalyzeContext(ctx context.Context, docs []issues.Document, pipeline *Pipeline, observer *observability.StandardObserver) (*Result, error) {
	if pipeline == nil {
		return nil, errors.New("pipeline is required")
	}

	start := time.Now()
	finish := observer.Step("analyzer", "aggregate", fmt.Sprintf("%d documents", len(docs)))

	result := &Result{
		Table:     frequency.NewTable(),
		Documents: len(docs),
	}

	bodies := make([]*string, len(docs))
	for i := range docs {
		bodies[i] = docs[i].Body
	}
	if pipeline.Lexicon != nil {
		observer.Metric("lexicon", "tables", pipeline.Lexicon.Stats())
	}

	progress := func(completed, total int) {
		if completed%progressInterval == 0 || completed == total {
			observer.Detail("analyzer", fmt.Sprintf("extracted %d/%d documents", completed, total))
		}
	}
	processor := parallel.NewProcessor(pipeline.Workers)
	extracted, stats, err := processor.Process(ctx, bodies, pipeline.Keywords, progress)
	if err != nil {
		finish(false, err.Error())
		return nil, fmt.Errorf("failed to analyze documents: %w", err)
	}
	observer.Detail("analyzer", fmt.Sprintf("%d workers, avg %s per document", stats.WorkerCount, stats.AvgDocTime))

	for i := range docs {
		text, kws := extracted[i].Section, extracted[i].Keywords
		if text == "" {
			continue
		}
		result.WithSection++
		result.Table.Add(kws...)
		observer.Detail("analyzer", fmt.Sprintf("document %d: %d keywords", i, len(kws)))
	}
	result.Keywords = result.Table.Total()

	result.Duration = time.Since(start)
	observer.Metric("analyzer", "keywords_distinct", result.Table.Len())
	observer.LogOperation(observability.StandardObservabilityData{
		Component:     "analyzer",
		Operation:     "aggregate",
		DurationMs:    result.Duration.Milliseconds(),
		Success:       true,
		DocumentCount: result.Documents,
		KeywordCount:  result.Table.Len(),
		Metadata: map[string]interface{}{
			"with_section": result.WithSection,
			"stemmer":      pipeline.Stemmer,
			"workers":      stats.WorkerCount,
		},
	})

	if result.Table.IsEmpty() {
		finish(true, "no keywords")
		return result, ErrNoKeywords
	}
	finish(true, fmt.Sprintf("%d distinct keywords", result.Table.Len()))
	return result, nil
}

// HeadingCount is one entry of a section survey
type HeadingCount struct {
	Title     string `json:"title" yaml:"title"`
	Level     int    `json:"level" yaml:"level"`
	Documents int    `json:"documents" yaml:"documents"`
}

// SurveySections counts how many documents contain each markdown heading.
// Titles are compared case-insensitively; the first spelling seen is kept.
func SurveySections(docs []issues.Document) []HeadingCount {
	index := make(map[string]int)
	var out []HeadingCount

	for _, doc := range docs {
		if !doc.HasBody() {
			continue
		}
		seen := make(map[string]bool)
		for _, h := range section.Headings(*doc.Body) {
			key := fmt.Sprintf("%d:%s", h.Level, strings.ToLower(h.Title))
			if seen[key] {
				continue
			}
			seen[key] = true
			if i, ok := index[key]; ok {
				out[i].Documents++
				continue
			}
			index[key] = len(out)
			out = append(out, HeadingCount{Title: h.Title, Level: h.Level, Documents: 1})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Documents > out[j].Documents
	})
	return out
}
