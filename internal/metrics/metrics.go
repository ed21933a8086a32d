// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wordmap"

// RunMetrics holds the gauges describing one analysis run
type RunMetrics struct {
	registry *prometheus.Registry

	Documents   prometheus.Gauge
	WithSection prometheus.Gauge
	Keywords    prometheus.Gauge
	Distinct    prometheus.Gauge
	Duration    prometheus.Gauge
	LastRun     prometheus.Gauge
	Artifacts   *prometheus.GaugeVec
}

// NewRunMetrics registers the run gauges on a private registry
func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		Documents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "documents",
			Help:      "Documents in the analyzed collection.",
		}),
		WithSection: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "documents_with_section",
			Help:      "Documents whose body contained the analyzed section.",
		}),
		Keywords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "keywords_total",
			Help:      "Keyword occurrences counted, duplicates included.",
		}),
		Distinct: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "keywords_distinct",
			Help:      "Distinct keywords in the frequency table.",
		}),
		Duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the analysis.",
		}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the run finished.",
		}),
		Artifacts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "artifact_written",
			Help:      "1 when the named artifact was written by the run.",
		}, []string{"artifact"}),
	}

	m.registry.MustRegister(m.Documents, m.WithSection, m.Keywords, m.Distinct, m.Duration, m.LastRun, m.Artifacts)
	return m
}

// Registry exposes the underlying registry for gathering
func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records the counts of a finished run
func (m *RunMetrics) Observe(documents, withSection, keywords, distinct int, duration time.Duration) {
	m.Documents.Set(float64(documents))
	m.WithSection.Set(float64(withSection))
	m.Keywords.Set(float64(keywords))
	m.Distinct.Set(float64(distinct))
	m.Duration.Set(duration.Seconds())
	m.LastRun.SetToCurrentTime()
}

// ArtifactWritten flags one output artifact (csv, png, pdf) as produced
func (m *RunMetrics) ArtifactWritten(name string) {
	m.Artifacts.WithLabelValues(name).Set(1)
}

// WriteTextfile writes the metrics in the text exposition format, suitable for
// the node_exporter textfile collector. The file is replaced atomically.
func (m *RunMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(filepath.Clean(path), m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
