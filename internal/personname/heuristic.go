// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package personname

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Detector decides whether an original-case token is likely a personal name
type Detector interface {
	IsLikelyName(token string) bool
}

// NameSet reports membership of a lowercase first name
type NameSet interface {
	IsCommonName(word string) bool
}

// Heuristic is a lightweight name detector: a known first name, or any
// capitalized word longer than two characters that is not an acronym.
// It trades recall for simplicity and is not an entity recognizer.
type Heuristic struct {
	names NameSet
}

// NewHeuristic creates a name heuristic backed by the given first-name set.
// A nil set disables the first-name lookup.
func NewHeuristic(names NameSet) *Heuristic {
	return &Heuristic{names: names}
}

// IsLikelyName applies the policy in order: empty → false; known first name → true;
// capitalized and longer than two characters → true unless fully uppercase.
func (h *Heuristic) IsLikelyName(token string) bool {
	if token == "" {
		return false
	}

	if h.names != nil && h.names.IsCommonName(strings.ToLower(token)) {
		return true
	}

	first, _ := utf8.DecodeRuneInString(token)
	if unicode.IsUpper(first) && utf8.RuneCountInString(token) > 2 {
		// Acronyms such as MRI or CT are technical terms, not names
		if IsAllUpper(token) {
			return false
		}
		return true
	}

	return false
}

// IsAllUpper reports whether s has at least one cased letter and no lowercase
// letters. Digits and punctuation are ignored, so "3D" and "X-RAY" qualify.
func IsAllUpper(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			return false
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			cased = true
		}
	}
	return cased
}
