// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package issues

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/kaptinlin/jsonrepair"
)

// ErrNoInput is returned when no input collection path was given
var ErrNoInput = errors.New("no input collection specified")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Document is one issue-tracker record. Only the body is decoded; every
// other field of the export is ignored whatever its type.
type Document struct {
	Body *string `json:"body"`
}

// HasBody reports whether the document carries a non-empty body
func (d Document) HasBody() bool {
	return d.Body != nil && *d.Body != ""
}

// Options controls how a collection is decoded
type Options struct {
	// Repair attempts to fix malformed JSON (trailing commas, truncated
	// output, unquoted keys) before decoding. Off by default.
	Repair bool
}

// Load reads a JSON array of issues from path
func Load(path string, opts Options) ([]Document, error) {
	if path == "" {
		return nil, ErrNoInput
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("error reading input collection: %w", err)
	}

	docs, err := DecodeBytes(data, opts)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	return docs, nil
}

// DecodeBytes parses a JSON array of issues. A top-level value other than an
// array is rejected.
func DecodeBytes(data []byte, opts Options) ([]Document, error) {
	if opts.Repair {
		repaired, err := jsonrepair.JSONRepair(string(data))
		if err != nil {
			return nil, fmt.Errorf("failed to repair JSON: %w", err)
		}
		data = []byte(repaired)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("input collection is empty")
	}
	if trimmed[0] != '[' {
		return nil, errors.New("expected a JSON array of issues")
	}

	var docs []Document
	if err := json.Unmarshal(trimmed, &docs); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return docs, nil
}
