// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"issue-wordmap/internal/formatters"
	"issue-wordmap/internal/frequency"
)

// Response represents the top-level structure for JSON/YAML output
type Response struct {
	Summary  *formatters.Summary `json:"summary,omitempty" yaml:"summary,omitempty"`
	Keywords []RankedEntry       `json:"keywords" yaml:"keywords"`
}

// RankedEntry is one keyword with its position in the ranking
type RankedEntry struct {
	Rank      int    `json:"rank" yaml:"rank"`
	Keyword   string `json:"keyword" yaml:"keyword"`
	Frequency int    `json:"frequency" yaml:"frequency"`
}

// ConvertEntries converts ranked frequency entries to the JSON/YAML structure
func ConvertEntries(entries []frequency.Entry, options formatters.FormatterOptions) Response {
	limited := formatters.Limit(entries, options.Top)

	ranked := make([]RankedEntry, 0, len(limited))
	for i, e := range limited {
		ranked = append(ranked, RankedEntry{
			Rank:      i + 1,
			Keyword:   e.Keyword,
			Frequency: e.Count,
		})
	}

	response := Response{Keywords: ranked}
	if options.Verbose {
		response.Summary = options.Summary
	}
	return response
}
