// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issue-wordmap/internal/formatters"
	_ "issue-wordmap/internal/formatters/csv"
	_ "issue-wordmap/internal/formatters/json"
	_ "issue-wordmap/internal/formatters/table"
	_ "issue-wordmap/internal/formatters/text"
	_ "issue-wordmap/internal/formatters/yaml"
	"issue-wordmap/internal/frequency"
)

func sampleTable() *frequency.Table {
	t := frequency.NewTable()
	t.Add("cells", "segmentation", "microscopy", "segmentation", "microscopy", "segmentation")
	return t
}

func TestRegistry_ListsAllFormats(t *testing.T) {
	assert.Equal(t, []string{"csv", "json", "table", "text", "yaml"}, formatters.List())

	for _, info := range formatters.GetSupportedFormats() {
		assert.NotEmpty(t, info.Description, info.Name)
		assert.True(t, strings.HasPrefix(info.Extension, "."), info.Name)
		assert.NotEmpty(t, info.MimeType, info.Name)
	}
	assert.Equal(t, "text/csv", formatters.GetFormatInfo("csv").MimeType)
	assert.Equal(t, formatters.FormatInfo{}, formatters.GetFormatInfo("sarif"))
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := formatters.Export("xml", sampleTable(), formatters.FormatterOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available formats: csv, json")
}

func TestExport_CSV(t *testing.T) {
	out, err := formatters.Export("csv", sampleTable(), formatters.FormatterOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Keyword,Frequency\n\"segmentation\",3\n\"microscopy\",2\n\"cells\",1\n", out)
}

func TestExport_CSVEmptyTable(t *testing.T) {
	out, err := formatters.Export("csv", nil, formatters.FormatterOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Keyword,Frequency\n", out)
}

func TestExport_Text(t *testing.T) {
	out, err := formatters.Export("text", sampleTable(), formatters.FormatterOptions{NoColor: true, Top: 2})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Top 2 Keywords:", lines[0])
	assert.Equal(t, strings.Repeat("-", 60), lines[1])
	assert.Equal(t, " 1. segmentation                   (  3)", lines[2])
	assert.Equal(t, " 2. microscopy                     (  2)", lines[3])
}

func TestExport_TextVerboseSummary(t *testing.T) {
	summary := &formatters.Summary{Documents: 10, WithSection: 4, Distinct: 3}
	out, err := formatters.Export("text", sampleTable(), formatters.FormatterOptions{NoColor: true, Verbose: true, Summary: summary})
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 10 issues\n")
	assert.Contains(t, out, "Processed 4 issues with descriptions\n")
	assert.Contains(t, out, "Total unique keywords: 3\n")
	assert.Contains(t, out, "Top 50 Keywords:")
}

func TestExport_TextEmpty(t *testing.T) {
	out, err := formatters.Export("text", frequency.NewTable(), formatters.FormatterOptions{NoColor: true})
	require.NoError(t, err)
	assert.Equal(t, "No keywords found!\n", out)
}

func TestExport_JSON(t *testing.T) {
	summary := &formatters.Summary{RunID: "run-1", Documents: 2, Distinct: 3}
	out, err := formatters.Export("json", sampleTable(), formatters.FormatterOptions{Top: 1, Verbose: true, Summary: summary})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"summary": {"run_id": "run-1", "documents": 2, "documents_with_section": 0, "keywords_total": 0, "keywords_distinct": 3},
		"keywords": [{"rank": 1, "keyword": "segmentation", "frequency": 3}]
	}`, out)
}

func TestExport_YAML(t *testing.T) {
	out, err := formatters.Export("yaml", sampleTable(), formatters.FormatterOptions{})
	require.NoError(t, err)
	assert.NotContains(t, out, "summary")
	assert.True(t, strings.HasPrefix(out, "keywords:\n  - rank: 1\n    keyword: segmentation\n"), out)
	assert.Contains(t, out, "frequency: 3")
}

func TestExport_Table(t *testing.T) {
	out, err := formatters.Export("table", sampleTable(), formatters.FormatterOptions{})
	require.NoError(t, err)
	assert.Contains(t, out, "Keyword")
	assert.Contains(t, out, "segmentation")
	assert.Contains(t, out, "+")
}

func TestLimit(t *testing.T) {
	entries := sampleTable().Ranked()
	assert.Len(t, formatters.Limit(entries, 0), 3)
	assert.Len(t, formatters.Limit(entries, 2), 2)
	assert.Len(t, formatters.Limit(entries, 9), 3)
}
