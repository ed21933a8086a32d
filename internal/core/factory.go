// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"

	"issue-wordmap/internal/keywords"
	"issue-wordmap/internal/lexicon"
	"issue-wordmap/internal/section"
)

// PipelineOptions selects the pieces of the keyword pipeline
type PipelineOptions struct {
	// Heading is the section label to extract; empty means section.DefaultHeading
	Heading string
	// Stemmer is one of keywords.StemmerNone, StemmerSimple or StemmerSnowball
	Stemmer string
	// Lexicon overrides the built-in tables; nil uses lexicon.Default()
	Lexicon *lexicon.Lexicon
	// Workers is the number of documents analyzed concurrently; 1 keeps the
	// whole run on the calling goroutine and 0 picks one per CPU
	Workers int
}

// Pipeline joins the section extractor and keyword normalizer
type Pipeline struct {
	Extractor  *section.Extractor
	Normalizer *keywords.Normalizer
	Lexicon    *lexicon.Lexicon
	Stemmer    string
	Workers    int
}

// BuildPipeline constructs the extractor and normalizer described by opts
func BuildPipeline(opts PipelineOptions) (*Pipeline, error) {
	lex := opts.Lexicon
	if lex == nil {
		var err error
		lex, err = lexicon.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load lexicon: %w", err)
		}
	}

	if opts.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", opts.Workers)
	}

	stemmer, err := keywords.NewStemmer(opts.Stemmer)
	if err != nil {
		return nil, err
	}

	heading := opts.Heading
	if heading == "" {
		heading = section.DefaultHeading
	}

	stemmerName := keywords.StemmerNone
	var normOpts []keywords.Option
	if stemmer != nil {
		stemmerName = stemmer.Name()
		normOpts = append(normOpts, keywords.WithStemmer(stemmer))
	}

	return &Pipeline{
		Extractor:  section.NewExtractor(heading),
		Normalizer: keywords.NewNormalizer(lex, normOpts...),
		Lexicon:    lex,
		Stemmer:    stemmerName,
		Workers:    opts.Workers,
	}, nil
}

// Keywords runs one document body through extraction and normalization.
// It returns the extracted section text alongside the keywords.
func (p *Pipeline) Keywords(body *string) (string, []string) {
	text := p.Extractor.Extract(body)
	if text == "" {
		return "", nil
	}
	return text, p.Normalizer.Extract(text)
}
