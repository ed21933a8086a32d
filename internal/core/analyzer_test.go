// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issue-wordmap/internal/issues"
	"issue-wordmap/internal/observability"
)

func body(s string) *string { return &s }

func quietObserver() *observability.StandardObserver {
	return observability.NewStandardObserver(observability.ObservabilityOff, io.Discard)
}

func mustPipeline(t *testing.T, opts PipelineOptions) *Pipeline {
	t.Helper()
	p, err := BuildPipeline(opts)
	require.NoError(t, err)
	return p
}

func TestAnalyze_Scenario(t *testing.T) {
	docs := []issues.Document{
		{Body: body("### Description\n\nWe need segmentation of cells using deep learning.")},
	}
	result, err := Analyze(docs, mustPipeline(t, PipelineOptions{}), quietObserver())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Documents)
	assert.Equal(t, 1, result.WithSection)
	assert.Equal(t, 1, result.Table.Count("segmentation"))
	assert.Equal(t, 1, result.Table.Count("cells"))
	assert.Equal(t, 0, result.Table.Count("need"))
	assert.Equal(t, 0, result.Table.Count("using"))
}

func TestAnalyze_CanonicalVariantsShareOneKey(t *testing.T) {
	docs := []issues.Document{
		{Body: body("### Description\n\nsegment and segmentation")},
		{Body: body("### Description\n\nsegmentation then segment")},
	}
	result, err := Analyze(docs, mustPipeline(t, PipelineOptions{}), quietObserver())
	require.NoError(t, err)

	assert.Equal(t, 4, result.Table.Count("segmentation"))
	assert.Equal(t, 0, result.Table.Count("segment"))
}

func TestAnalyze_SkipsDocumentsWithoutSection(t *testing.T) {
	docs := []issues.Document{
		{Body: nil},
		{Body: body("")},
		{Body: body("### Summary\n\nmicroscopy pipeline")},
		{Body: body("### Description\n\nmicroscopy pipeline")},
	}
	result, err := Analyze(docs, mustPipeline(t, PipelineOptions{}), quietObserver())
	require.NoError(t, err)

	assert.Equal(t, 4, result.Documents)
	assert.Equal(t, 1, result.WithSection)
	assert.Equal(t, 1, result.Table.Count("microscopy"))
}

func TestAnalyze_EmptyCollection(t *testing.T) {
	result, err := Analyze(nil, mustPipeline(t, PipelineOptions{}), quietObserver())
	assert.True(t, errors.Is(err, ErrNoKeywords))
	require.NotNil(t, result)
	assert.True(t, result.Table.IsEmpty())
}

func TestAnalyze_CommutativeOverDocumentOrder(t *testing.T) {
	a := issues.Document{Body: body("### Description\n\nbone density imaging of the skull")}
	b := issues.Document{Body: body("### Description\n\nskull landmarks for bone morphometric work")}
	p := mustPipeline(t, PipelineOptions{})

	ab, err := Analyze([]issues.Document{a, b}, p, quietObserver())
	require.NoError(t, err)
	ba, err := Analyze([]issues.Document{b, a}, p, quietObserver())
	require.NoError(t, err)

	assert.ElementsMatch(t, ab.Table.Ranked(), ba.Table.Ranked())
}

func TestAnalyze_KeywordInvariants(t *testing.T) {
	docs := []issues.Document{
		{Body: body("### Description\n\nThe 3D stack has 2048x2048 px at 16-bit; CT and MRI, 12 345 images!")},
	}
	result, err := Analyze(docs, mustPipeline(t, PipelineOptions{}), quietObserver())
	require.NoError(t, err)

	for _, e := range result.Table.Ranked() {
		kw := e.Keyword
		assert.GreaterOrEqual(t, len([]rune(kw)), 3, kw)
		assert.NotRegexp(t, `^[0-9]+$`, kw)
	}
}

func TestAnalyze_NilPipeline(t *testing.T) {
	_, err := Analyze(nil, nil, quietObserver())
	assert.Error(t, err)
}

func TestBuildPipeline_Stemmers(t *testing.T) {
	p := mustPipeline(t, PipelineOptions{})
	assert.Equal(t, "none", p.Stemmer)
	assert.Equal(t, "Description", p.Extractor.Heading())

	p = mustPipeline(t, PipelineOptions{Stemmer: "snowball", Heading: "Summary"})
	assert.Equal(t, "snowball", p.Stemmer)
	assert.Equal(t, "Summary", p.Extractor.Heading())

	_, err := BuildPipeline(PipelineOptions{Stemmer: "porter3"})
	assert.Error(t, err)
}

func TestAnalyzeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "all_issues.json")
	data := `[{"number": 1, "body": "### Description\n\nannotation of landmarks"}, {"number": 2, "body": null}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	result, err := AnalyzeFile(AnalyzeConfig{InputPath: path, Observer: quietObserver()})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Documents)
	assert.Equal(t, 1, result.Table.Count("landmarks"))
	assert.Equal(t, 1, result.Table.Count("annotation"))
}

func TestAnalyzeFile_MissingInput(t *testing.T) {
	_, err := AnalyzeFile(AnalyzeConfig{InputPath: filepath.Join(t.TempDir(), "nope.json"), Observer: quietObserver()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.False(t, errors.Is(err, ErrNoKeywords))
}

func TestSurveySections(t *testing.T) {
	docs := []issues.Document{
		{Body: body("### Description\n\nx\n\n### Use case\n\ny")},
		{Body: body("### description\n\nz\n\n### Description\n\nagain")},
		{Body: nil},
	}
	survey := SurveySections(docs)
	require.NotEmpty(t, survey)
	assert.Equal(t, HeadingCount{Title: "Description", Level: 3, Documents: 2}, survey[0])
	assert.Equal(t, HeadingCount{Title: "Use case", Level: 3, Documents: 1}, survey[1])
}

func TestAnalyze_WorkerCountDoesNotChangeRanking(t *testing.T) {
	words := []string{"segmentation", "skull", "landmarks", "microscopy", "tracking", "volume"}
	var docs []issues.Document
	for i := 0; i < 60; i++ {
		text := fmt.Sprintf("### Description\n\n%s %s %s", words[i%6], words[(i*7)%6], words[(i/3)%6])
		docs = append(docs, issues.Document{Body: body(text)})
	}

	serial, err := Analyze(docs, mustPipeline(t, PipelineOptions{Workers: 1}), quietObserver())
	require.NoError(t, err)
	concurrent, err := Analyze(docs, mustPipeline(t, PipelineOptions{Workers: 8}), quietObserver())
	require.NoError(t, err)

	assert.Equal(t, serial.Table.Ranked(), concurrent.Table.Ranked())
	assert.Equal(t, serial.Keywords, concurrent.Keywords)
	assert.Equal(t, 60, concurrent.WithSection)
}

func TestAnalyzeContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	docs := make([]issues.Document, 200)
	for i := range docs {
		docs[i].Body = body("### Description\n\nmicroscopy")
	}
	result, err := AnalyzeContext(ctx, docs, mustPipeline(t, PipelineOptions{Workers: 2}), quietObserver())
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, result)
	}
}

func TestBuildPipeline_RejectsNegativeWorkers(t *testing.T) {
	_, err := BuildPipeline(PipelineOptions{Workers: -1})
	assert.Error(t, err)
}

func TestAnalyze_TracesProgressAndLexicon(t *testing.T) {
	var buf bytes.Buffer
	docs := []issues.Document{
		{Body: body("### Description\n\nmicroscopy cells microscopy")},
		{Body: nil},
		{Body: body("### Description\n\nsegmentation")},
	}

	result, err := Analyze(docs, mustPipeline(t, PipelineOptions{Workers: 1}), observability.NewObserver(true, &buf))
	require.NoError(t, err)
	assert.Equal(t, 4, result.Keywords)

	out := buf.String()
	assert.Contains(t, out, "extracted 3/3 documents")
	assert.Contains(t, out, "lexicon: tables = ")
	assert.Contains(t, out, "stop_words")
}
