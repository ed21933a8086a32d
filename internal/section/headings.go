// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package section

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is a markdown heading found in an issue body
type Heading struct {
	Level int
	Title string
}

// Headings lists the top-level markdown headings of body in document order.
// It is used to survey which issue-form fields a collection actually contains.
func Headings(body string) []Heading {
	if strings.TrimSpace(body) == "" {
		return nil
	}

	src := []byte(body)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var headings []Heading
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		title := strings.TrimSpace(headingText(h, src))
		if title == "" {
			continue
		}
		headings = append(headings, Heading{Level: h.Level, Title: title})
	}
	return headings
}

// headingText concatenates the inline text segments of a heading node
func headingText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
			continue
		}
		b.WriteString(headingText(c, src))
	}
	return b.String()
}
