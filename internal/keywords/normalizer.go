// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package keywords

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"issue-wordmap/internal/lexicon"
	"issue-wordmap/internal/personname"
)

// MinKeywordLength is the shortest keyword, in characters, that is kept
const MinKeywordLength = 3

var (
	// Numbers with optional trailing letters ("2023", "3d"). Matches are removed
	// without a replacement space, so neighbouring characters can merge.
	numericPattern = regexp.MustCompile(`\p{Nd}+[a-z]*`)

	// Anything that is not a word character, whitespace, or hyphen
	nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Z}-]`)
)

// originalTrimSet is stripped from both ends of an original-case token before name detection
const originalTrimSet = "-.,!?;:"

// TokenPair joins a normalized token with its original-case counterpart at the same index
type TokenPair struct {
	Token       string
	Original    string
	HasOriginal bool
}

// Pair zips the normalized and original-case token lists by index. When the
// original list is shorter, the trailing pairs have HasOriginal set to false.
func Pair(tokens, originals []string) []TokenPair {
	pairs := make([]TokenPair, len(tokens))
	for i, tok := range tokens {
		pairs[i].Token = tok
		if i < len(originals) {
			pairs[i].Original = originals[i]
			pairs[i].HasOriginal = true
		}
	}
	return pairs
}

// Normalizer turns extracted section text into keywords
type Normalizer struct {
	lexicon *lexicon.Lexicon
	names   personname.Detector
	stemmer Stemmer
}

// Option configures a Normalizer
type Option func(*Normalizer)

// WithStemmer applies s to keywords that have no canonical form
func WithStemmer(s Stemmer) Option {
	return func(n *Normalizer) {
		n.stemmer = s
	}
}

// NewNormalizer creates a normalizer over the given lexicon. Unless overridden,
// names are detected with a personname.Heuristic backed by the lexicon's name list.
func NewNormalizer(lex *lexicon.Lexicon, opts ...Option) *Normalizer {
	n := &Normalizer{
		lexicon: lex,
		names:   personname.NewHeuristic(lex),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Extract returns the keywords of text in source order, duplicates included
func (n *Normalizer) Extract(text string) []string {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)
	lower = numericPattern.ReplaceAllString(lower, "")
	lower = nonWordPattern.ReplaceAllString(lower, " ")

	// The two splits can differ in length once numeric stripping has merged or
	// removed tokens; Pair handles the mismatch explicitly.
	pairs := Pair(strings.Fields(lower), strings.Fields(text))

	keywords := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if kw, ok := n.Keyword(p); ok {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// Keyword applies the per-token filters and canonicalization to one pair.
// It returns false when the token is dropped.
func (n *Normalizer) Keyword(p TokenPair) (string, bool) {
	word := strings.Trim(p.Token, "-")

	if !n.admissible(word) {
		return "", false
	}
	if p.HasOriginal && n.names != nil && n.names.IsLikelyName(strings.Trim(p.Original, originalTrimSet)) {
		return "", false
	}

	return n.canonical(word), true
}

// admissible applies the length, stop-word and numeric filters
func (n *Normalizer) admissible(word string) bool {
	return utf8.RuneCountInString(word) >= MinKeywordLength &&
		!n.lexicon.IsStopWord(word) &&
		!IsNumeric(word)
}

// canonical maps an admissible word to its output form. A stem replaces the
// word only when it is a fixed point of the stemmer and still admissible, so
// running a keyword through the normalizer again never changes it.
func (n *Normalizer) canonical(word string) string {
	if form, ok := n.lexicon.Canonicalize(word); ok {
		return form
	}
	if n.stemmer == nil {
		return word
	}

	stem := n.stemmer.Stem(word)
	if stem == word || n.stemmer.Stem(stem) != stem {
		return word
	}
	if form, ok := n.lexicon.Canonicalize(stem); ok && form != stem {
		// The form must come back unchanged on its own: either through the
		// canonical table or as a fixed point of the stemmer.
		if _, listed := n.lexicon.Canonicalize(form); !listed && n.stemmer.Stem(form) != form {
			return word
		}
		stem = form
	}
	if !n.admissible(stem) {
		return word
	}
	return stem
}

// IsNumeric reports whether s is non-empty and made only of numeric characters
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
