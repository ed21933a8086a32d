// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"fmt"
	"strings"

	"issue-wordmap/internal/formatters"
	"issue-wordmap/internal/frequency"
)

// Header is the first line of every CSV export
const Header = "Keyword,Frequency"

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Keyword,Frequency table for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

// Format writes one row per keyword, keywords always quoted, in ranked order.
// The output ends with a newline.
func (f *Formatter) Format(entries []frequency.Entry, options formatters.FormatterOptions) (string, error) {
	var builder strings.Builder
	builder.WriteString(Header)
	builder.WriteString("\n")

	for _, entry := range formatters.Limit(entries, options.Top) {
		fmt.Fprintf(&builder, "%s,%d\n", f.quoteField(entry.Keyword), entry.Count)
	}
	return builder.String(), nil
}

// quoteField wraps field in quotes, doubling internal quotes, and neutralizes
// spreadsheet formulas
func (f *Formatter) quoteField(field string) string {
	field = f.sanitizeFormulaInjection(field)
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// sanitizeFormulaInjection prefixes fields that a spreadsheet would evaluate
func (f *Formatter) sanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}

	firstChar := field[0]
	if firstChar == '=' || firstChar == '+' || firstChar == '-' || firstChar == '@' {
		return "'" + field
	}

	return field
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
