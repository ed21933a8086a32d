// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"fmt"
	"sort"
	"strings"

	"issue-wordmap/internal/frequency"
)

// FormatterOptions defines configuration options for formatters
type FormatterOptions struct {
	Top     int      // Number of ranked entries to include; 0 includes all
	NoColor bool     // Whether to disable colored output
	Verbose bool     // Whether to include the run summary
	Summary *Summary // Run statistics, rendered only when Verbose is set
}

// Summary describes the run that produced a frequency table
type Summary struct {
	RunID       string `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Documents   int    `json:"documents" yaml:"documents"`
	WithSection int    `json:"documents_with_section" yaml:"documents_with_section"`
	Keywords    int    `json:"keywords_total" yaml:"keywords_total"`
	Distinct    int    `json:"keywords_distinct" yaml:"keywords_distinct"`
	Stemmer     string `json:"stemmer,omitempty" yaml:"stemmer,omitempty"`
}

// Formatter interface defines methods that all output formatters must implement
type Formatter interface {
	// Format renders ranked entries (highest count first) in the formatter's output format
	Format(entries []frequency.Entry, options FormatterOptions) (string, error)

	// Name returns the name of the formatter (e.g., "json", "text", "csv")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format (e.g., ".json", ".txt", ".csv")
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names in alphabetical order
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatInfo provides metadata about a formatter
type FormatInfo struct {
	Name        string
	Description string
	Extension   string
	MimeType    string
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// Export ranks the table and renders it with the named formatter
func Export(format string, table *frequency.Table, options FormatterOptions) (string, error) {
	formatter, exists := Get(format)
	if !exists {
		return "", fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(List(), ", "))
	}
	if table == nil {
		table = frequency.NewTable()
	}
	return formatter.Format(table.Ranked(), options)
}

// Limit returns the first top entries; top <= 0 keeps every entry
func Limit(entries []frequency.Entry, top int) []frequency.Entry {
	if top > 0 && top < len(entries) {
		return entries[:top]
	}
	return entries
}

// GetFormatInfo returns metadata about a specific formatter
func GetFormatInfo(name string) FormatInfo {
	formatter, exists := Get(name)
	if !exists {
		return FormatInfo{}
	}

	info := FormatInfo{
		Name:        formatter.Name(),
		Description: formatter.Description(),
		Extension:   formatter.FileExtension(),
	}

	switch name {
	case "json":
		info.MimeType = "application/json"
	case "csv":
		info.MimeType = "text/csv"
	case "yaml":
		info.MimeType = "application/x-yaml"
	case "text", "table":
		info.MimeType = "text/plain"
	default:
		info.MimeType = "application/octet-stream"
	}

	return info
}

// GetSupportedFormats returns information about all available formatters
func GetSupportedFormats() []FormatInfo {
	var formats []FormatInfo
	for _, name := range List() {
		formats = append(formats, GetFormatInfo(name))
	}
	return formats
}
