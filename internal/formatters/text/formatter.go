// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"issue-wordmap/internal/formatters"
	"issue-wordmap/internal/frequency"

	"github.com/fatih/color"
)

// DefaultTop is the listing length when no limit is requested
const DefaultTop = 50

// ruleWidth is the width of the dashed line under the listing title
const ruleWidth = 60

// Formatter implements the ranked console listing
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"cyan":   color.New(color.FgCyan),
			"yellow": color.New(color.FgYellow),
			"green":  color.New(color.FgGreen),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable ranked listing with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

// Format renders
//
//	Top N Keywords:
//	------------------------------------------------------------
//	 1. segmentation                   ( 12)
func (f *Formatter) Format(entries []frequency.Entry, options formatters.FormatterOptions) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	top := options.Top
	if top <= 0 {
		top = DefaultTop
	}
	listed := formatters.Limit(entries, top)

	var builder strings.Builder

	if options.Verbose && options.Summary != nil {
		f.appendSummary(&builder, options.Summary, options)
	}

	if len(entries) == 0 {
		builder.WriteString("No keywords found!\n")
		return builder.String(), nil
	}

	title := fmt.Sprintf("Top %d Keywords:", top)
	rule := strings.Repeat("-", ruleWidth)
	if !options.NoColor {
		title = f.colors["white"].Sprint(title)
	}
	builder.WriteString(title + "\n")
	builder.WriteString(rule + "\n")

	for i, entry := range listed {
		f.appendEntry(&builder, i+1, entry, options)
	}

	return builder.String(), nil
}

func (f *Formatter) appendEntry(builder *strings.Builder, rank int, entry frequency.Entry, options formatters.FormatterOptions) {
	rankStr := fmt.Sprintf("%2d.", rank)
	keywordStr := fmt.Sprintf("%-30s", entry.Keyword)
	countStr := fmt.Sprintf("(%3d)", entry.Count)

	if !options.NoColor {
		rankStr = f.colors["cyan"].Sprint(rankStr)
		keywordStr = f.colors["green"].Sprint(keywordStr)
		countStr = f.colors["yellow"].Sprint(countStr)
	}

	fmt.Fprintf(builder, "%s %s %s\n", rankStr, keywordStr, countStr)
}

func (f *Formatter) appendSummary(builder *strings.Builder, s *formatters.Summary, options formatters.FormatterOptions) {
	lines := []string{
		fmt.Sprintf("Loaded %d issues", s.Documents),
		fmt.Sprintf("Processed %d issues with descriptions", s.WithSection),
		fmt.Sprintf("Total unique keywords: %d", s.Distinct),
	}
	for _, line := range lines {
		if !options.NoColor {
			line = f.colors["cyan"].Sprint(line)
		}
		builder.WriteString(line + "\n")
	}
	builder.WriteString("\n")
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
