// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package lexicon

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"
)

// Embedded word lists
//
//go:embed data/stop_words.txt
var stopWordsData []byte

//go:embed data/common_names.txt
var commonNamesData []byte

//go:embed data/canonical_forms.txt
var canonicalFormsData []byte

// Lexicon holds the read-only lookup tables consulted by the keyword pipeline.
// A Lexicon must not be mutated after construction.
type Lexicon struct {
	StopWords   map[string]bool   // Lowercase word → excluded
	CommonNames map[string]bool   // Lowercase first name → excluded
	Canonical   map[string]string // Lowercase variant → canonical form
}

var (
	defaultLexicon *Lexicon
	loadOnce       sync.Once
	loadError      error
)

// Default returns the built-in lexicon, parsing the embedded lists on first use
func Default() (*Lexicon, error) {
	loadOnce.Do(func() {
		defaultLexicon, loadError = loadEmbedded()
	})
	return defaultLexicon, loadError
}

// New builds a lexicon from explicit word lists. Entries are lowercased.
// It is intended for tests and callers that need smaller fixtures.
func New(stopWords, commonNames []string, canonical map[string]string) (*Lexicon, error) {
	lex := &Lexicon{
		StopWords:   make(map[string]bool, len(stopWords)),
		CommonNames: make(map[string]bool, len(commonNames)),
		Canonical:   make(map[string]string, len(canonical)),
	}
	for _, w := range stopWords {
		lex.StopWords[strings.ToLower(w)] = true
	}
	for _, n := range commonNames {
		lex.CommonNames[strings.ToLower(n)] = true
	}
	for variant, form := range canonical {
		lex.Canonical[strings.ToLower(variant)] = strings.ToLower(form)
	}
	if err := lex.Validate(); err != nil {
		return nil, err
	}
	return lex, nil
}

func loadEmbedded() (*Lexicon, error) {
	lex := &Lexicon{
		StopWords:   make(map[string]bool, 300),
		CommonNames: make(map[string]bool, 210),
		Canonical:   make(map[string]string, 8),
	}

	if err := readList(stopWordsData, func(fields []string) error {
		lex.StopWords[fields[0]] = true
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to load stop words: %w", err)
	}

	if err := readList(commonNamesData, func(fields []string) error {
		lex.CommonNames[fields[0]] = true
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to load common names: %w", err)
	}

	if err := readList(canonicalFormsData, func(fields []string) error {
		if len(fields) != 2 {
			return fmt.Errorf("expected \"variant canonical\", got %q", strings.Join(fields, " "))
		}
		lex.Canonical[fields[0]] = fields[1]
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to load canonical forms: %w", err)
	}

	if err := lex.Validate(); err != nil {
		return nil, err
	}
	return lex, nil
}

// readList feeds every non-blank, non-comment line of data to fn as lowercase fields
func readList(data []byte, fn func(fields []string) error) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(strings.Fields(strings.ToLower(line))); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	return scanner.Err()
}

// IsStopWord reports whether the lowercase word is excluded outright
func (l *Lexicon) IsStopWord(word string) bool {
	return l.StopWords[word]
}

// IsCommonName reports whether the lowercase word is a known first name
func (l *Lexicon) IsCommonName(word string) bool {
	return l.CommonNames[word]
}

// Canonicalize returns the canonical form of word and whether a mapping existed.
// Unmapped words are returned unchanged.
func (l *Lexicon) Canonicalize(word string) (string, bool) {
	if form, ok := l.Canonical[word]; ok {
		return form, true
	}
	return word, false
}

// Validate checks that canonical rewriting is idempotent: a canonical form
// must either be absent from the map or map to itself.
func (l *Lexicon) Validate() error {
	for variant, form := range l.Canonical {
		if form == "" {
			return fmt.Errorf("canonical form for %q is empty", variant)
		}
		if next, ok := l.Canonical[form]; ok && next != form {
			return fmt.Errorf("canonical form %q for %q is not stable: it maps to %q", form, variant, next)
		}
	}
	return nil
}

// Stats returns table sizes for debug output
func (l *Lexicon) Stats() map[string]interface{} {
	return map[string]interface{}{
		"stop_words":      len(l.StopWords),
		"common_names":    len(l.CommonNames),
		"canonical_forms": len(l.Canonical),
	}
}
