// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package section

import (
	"regexp"
	"strings"
)

// DefaultHeading is the issue-form field whose text is analyzed
const DefaultHeading = "Description"

// headingPrefix introduces every field in an issue-form body
const headingPrefix = "### "

// Extractor isolates the text of one named "### " section from an issue body
type Extractor struct {
	heading string
	start   *regexp.Regexp
}

// NewExtractor creates an extractor for the given heading label.
// The label is matched case-insensitively; an empty label selects DefaultHeading.
func NewExtractor(heading string) *Extractor {
	if strings.TrimSpace(heading) == "" {
		heading = DefaultHeading
	}
	return &Extractor{
		heading: heading,
		// The heading must be followed by a blank line before the content starts.
		start: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(headingPrefix+heading) + `\s*\n\n`),
	}
}

// Heading returns the label this extractor looks for
func (e *Extractor) Heading() string {
	return e.heading
}

// Extract returns the trimmed section text, or "" when body is nil, empty,
// or has no matching heading.
func (e *Extractor) Extract(body *string) string {
	if body == nil {
		return ""
	}
	return e.ExtractText(*body)
}

// ExtractText is Extract for a non-optional body
func (e *Extractor) ExtractText(body string) string {
	if body == "" {
		return ""
	}

	loc := e.start.FindStringIndex(body)
	if loc == nil {
		return ""
	}

	rest := body[loc[1]:]
	if end := strings.Index(rest, "\n"+headingPrefix); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}
