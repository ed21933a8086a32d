// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package keywords

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball/english"
)

// Stemmer reduces a lowercase word to a shared stem
type Stemmer interface {
	Name() string
	Stem(word string) string
}

// Stemmer names accepted by NewStemmer
const (
	StemmerNone     = "none"
	StemmerSimple   = "simple"
	StemmerSnowball = "snowball"
)

// NewStemmer returns the named stemmer, or nil for "none" and "".
func NewStemmer(name string) (Stemmer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StemmerNone:
		return nil, nil
	case StemmerSimple:
		return SimpleStemmer{}, nil
	case StemmerSnowball:
		return SnowballStemmer{}, nil
	default:
		return nil, fmt.Errorf("unknown stemmer %q (expected %s, %s or %s)", name, StemmerNone, StemmerSimple, StemmerSnowball)
	}
}

// simpleSuffixes are tried in order; the first one that fits wins
var simpleSuffixes = []string{"ing", "ed", "es", "s", "tion", "ation", "ly", "ment", "ness", "er", "or", "ist", "ity", "al"}

// SimpleStemmer strips one common English suffix, keeping at least three characters of stem
type SimpleStemmer struct{}

func (SimpleStemmer) Name() string { return StemmerSimple }

func (SimpleStemmer) Stem(word string) string {
	word = strings.ToLower(word)
	for _, suffix := range simpleSuffixes {
		if strings.HasSuffix(word, suffix) && len(word) > len(suffix)+2 {
			return word[:len(word)-len(suffix)]
		}
	}
	return word
}

// SnowballStemmer uses the Porter2 English stemmer
type SnowballStemmer struct{}

func (SnowballStemmer) Name() string { return StemmerSnowball }

func (SnowballStemmer) Stem(word string) string {
	return english.Stem(word, false)
}
