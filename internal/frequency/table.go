// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package frequency

import (
	"sort"
)

// Entry is one keyword and its occurrence count
type Entry struct {
	Keyword string `json:"keyword" yaml:"keyword"`
	Count   int    `json:"frequency" yaml:"frequency"`
}

// Table accumulates keyword occurrence counts. It remembers the order in which
// keywords were first seen so that ranking ties are broken deterministically.
// A Table is not safe for concurrent mutation.
type Table struct {
	counts map[string]int
	order  []string
	total  int
}

// NewTable creates an empty frequency table
func NewTable() *Table {
	return &Table{counts: make(map[string]int)}
}

// Add counts every keyword once per appearance; repeats are not collapsed
func (t *Table) Add(keywords ...string) {
	for _, kw := range keywords {
		if _, seen := t.counts[kw]; !seen {
			t.order = append(t.order, kw)
		}
		t.counts[kw]++
		t.total++
	}
}

// Count returns the number of occurrences recorded for keyword
func (t *Table) Count(keyword string) int {
	return t.counts[keyword]
}

// Len returns the number of distinct keywords
func (t *Table) Len() int {
	return len(t.order)
}

// Total returns the number of keyword occurrences recorded
func (t *Table) Total() int {
	return t.total
}

// IsEmpty reports whether no keyword has been recorded
func (t *Table) IsEmpty() bool {
	return len(t.order) == 0
}

// Ranked returns all entries sorted by count, highest first. Ties keep
// first-seen order.
func (t *Table) Ranked() []Entry {
	entries := make([]Entry, 0, len(t.order))
	for _, kw := range t.order {
		entries = append(entries, Entry{Keyword: kw, Count: t.counts[kw]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// Top returns the n highest-ranked entries; n <= 0 returns all of them
func (t *Table) Top(n int) []Entry {
	ranked := t.Ranked()
	if n > 0 && n < len(ranked) {
		return ranked[:n]
	}
	return ranked
}
