// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleIssues = `[
  {"number": 1, "body": "### Description\n\nWe need segmentation of cells using deep learning.\n\n### Use case\n\nteaching"},
  {"number": 2, "body": "### Description\n\nAutomatic segment tools for microscopy cells"},
  {"number": 3, "body": null},
  {"number": 4, "body": "### Summary\n\nnothing to see"}
]`

// isolate runs the test in an empty working directory with no user config
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("WORDMAP_CONFIG_DIR", filepath.Join(dir, "no-config"))
	return dir
}

func writeIssues(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "all_issues.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func execute(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestGenerate_WritesArtifacts(t *testing.T) {
	dir := isolate(t)
	input := writeIssues(t, dir, sampleIssues)

	code, out, errOut := execute("generate", input, "--width", "400", "--height", "240", "--no-color")
	require.Equal(t, 0, code, errOut)

	assert.Contains(t, out, "Loaded 4 issues\n")
	assert.Contains(t, out, "Processed 2 issues with descriptions\n")
	assert.Contains(t, out, "Top 50 Keywords:\n"+strings.Repeat("-", 60)+"\n")
	assert.Contains(t, out, " 1. segmentation                   (  2)")
	assert.Contains(t, out, "Word map saved to: keyword_wordmap.png")
	assert.Contains(t, out, "Keyword frequencies saved to: keyword_frequencies.csv")

	csv, err := os.ReadFile(filepath.Join(dir, "keyword_frequencies.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csv)), "\n")
	assert.Equal(t, "Keyword,Frequency", lines[0])
	assert.Equal(t, `"segmentation",2`, lines[1])
	assert.Equal(t, `"cells",2`, lines[2])
	assert.NotContains(t, string(csv), `"need"`)

	_, err = os.Stat(filepath.Join(dir, "keyword_wordmap.png"))
	assert.NoError(t, err)
}

func TestGenerate_DefaultCommand(t *testing.T) {
	dir := isolate(t)
	writeIssues(t, dir, sampleIssues)

	code, out, errOut := execute("--no-image", "--no-csv", "--no-color", "--top", "1")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Top 1 Keywords:")
	assert.NotContains(t, out, "saved to")
}

func TestGenerate_WorkersDoNotChangeOutput(t *testing.T) {
	dir := isolate(t)
	input := writeIssues(t, dir, sampleIssues)

	code, sequential, errOut := execute("generate", input, "--no-image", "--no-csv", "--no-color")
	require.Equal(t, 0, code, errOut)
	code, concurrent, errOut := execute("generate", input, "--no-image", "--no-csv", "--no-color", "--workers", "4")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, sequential, concurrent)

	code, _, errOut = execute("generate", input, "--workers", "-2")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "workers must not be negative")
}

func TestGenerate_JSONKeepsStdoutClean(t *testing.T) {
	dir := isolate(t)
	input := writeIssues(t, dir, sampleIssues)

	code, out, errOut := execute("generate", input, "-f", "json", "-v", "--no-image", "--no-csv")
	require.Equal(t, 0, code, errOut)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "{"), out)
	assert.Contains(t, out, `"keyword": "segmentation"`)
	assert.Contains(t, out, `"documents_with_section": 2`)
	assert.Contains(t, errOut, "Loaded 4 issues")
}

func TestGenerate_NoKeywords(t *testing.T) {
	dir := isolate(t)
	input := writeIssues(t, dir, `[{"body": "### Summary\n\nno description here"}]`)

	code, out, _ := execute("generate", input, "--no-color", "--metrics", "wordmap.prom")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "No keywords found!")

	for _, name := range []string{"keyword_wordmap.png", "keyword_frequencies.csv", "wordmap.prom"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.True(t, os.IsNotExist(err), "%s should not be written", name)
	}
}

func TestGenerate_MissingInputFails(t *testing.T) {
	isolate(t)
	code, _, errOut := execute("generate", "does-not-exist.json")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error: ")
}

func TestGenerate_MalformedInput(t *testing.T) {
	dir := isolate(t)
	input := writeIssues(t, dir, `[{"number": 1, "body": "### Description\n\nmicroscopy"},]`)

	code, _, _ := execute("generate", input, "--no-image", "--no-csv")
	assert.Equal(t, 1, code)

	code, out, errOut := execute("generate", input, "--no-image", "--no-csv", "--repair-json", "--no-color")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "microscopy")
}

func TestGenerate_ReportProfile(t *testing.T) {
	dir := isolate(t)
	input := writeIssues(t, dir, sampleIssues)

	code, _, errOut := execute("generate", input, "-p", "report", "--no-image", "--no-color")
	require.Equal(t, 0, code, errOut)

	_, err := os.Stat(filepath.Join(dir, "report", "keyword_frequencies.csv"))
	assert.NoError(t, err)
	metrics, err := os.ReadFile(filepath.Join(dir, "report", "wordmap.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "wordmap_documents 4")
}

func TestGenerate_EnvAndConfigPrecedence(t *testing.T) {
	dir := isolate(t)
	input := writeIssues(t, dir, sampleIssues)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wordmap.yaml"), []byte("defaults:\n  format: yaml\n  top: 3\n"), 0600))
	t.Setenv("WORDMAP_FORMAT", "csv")

	code, out, errOut := execute("generate", input, "--no-image", "--no-csv")
	require.Equal(t, 0, code, errOut)
	assert.True(t, strings.HasPrefix(out, "Keyword,Frequency\n"), out)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4)

	code, out, errOut = execute("generate", input, "--no-image", "--no-csv", "-f", "table")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Rank")
}

func TestGenerate_InvalidSettings(t *testing.T) {
	dir := isolate(t)
	input := writeIssues(t, dir, sampleIssues)

	code, _, errOut := execute("generate", input, "--stemmer", "lancaster")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown stemmer")

	code, _, errOut = execute("generate", input, "-f", "sarif")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unsupported format")
}

func TestSections(t *testing.T) {
	dir := isolate(t)
	input := writeIssues(t, dir, sampleIssues)

	code, out, errOut := execute("sections", input, "--no-color")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "    2  ### Description\n")
	assert.Contains(t, out, "    1  ### Use case\n")
	assert.Contains(t, out, "    1  ### Summary\n")
}

func TestProfilesAndVersion(t *testing.T) {
	isolate(t)

	code, out, _ := execute("profiles")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "  - report: ")
	assert.Contains(t, out, "  - stemmed: ")

	code, out, _ = execute("formats")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "  csv    text/csv ")
	assert.Contains(t, out, "  table  text/plain ")

	code, out, _ = execute("version")
	require.Equal(t, 0, code)
	assert.Equal(t, "0.0.0-development\n", out)

	code, out, _ = execute("version", "--all")
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "wordmap "))
}
