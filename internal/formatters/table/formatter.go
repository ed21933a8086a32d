// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package table

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"issue-wordmap/internal/formatters"
	"issue-wordmap/internal/frequency"
)

// Formatter renders the ranking as a bordered ASCII table
type Formatter struct{}

// NewFormatter creates a new table formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "table"
}

func (f *Formatter) Description() string {
	return "Bordered ASCII table of ranked keywords"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(entries []frequency.Entry, options formatters.FormatterOptions) (string, error) {
	var builder strings.Builder

	tw := tablewriter.NewWriter(&builder)
	tw.SetHeader([]string{"Rank", "Keyword", "Frequency"})
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	for i, entry := range formatters.Limit(entries, options.Top) {
		tw.Append([]string{strconv.Itoa(i + 1), entry.Keyword, strconv.Itoa(entry.Count)})
	}

	if options.Verbose && options.Summary != nil {
		tw.SetFooter([]string{"", "distinct " + strconv.Itoa(options.Summary.Distinct), strconv.Itoa(options.Summary.Keywords)})
	}

	tw.Render()
	return builder.String(), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
