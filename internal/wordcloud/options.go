// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package wordcloud

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/lucasb-eyer/go-colorful"
)

// Defaults for a rendered word map
const (
	DefaultWidth           = 1600
	DefaultHeight          = 900
	DefaultMaxWords        = 200
	DefaultMinFontSize     = 10
	DefaultFontStep        = 1
	DefaultRelativeScaling = 0.5
	DefaultMargin          = 2
	DefaultBackground      = "white"
	DefaultTitle           = "Keyword Word Map"
)

// DefaultPalette runs from deep violet through blue to rose, all dark enough
// to read on a white background
var DefaultPalette = []string{"#2e1a47", "#3f3d99", "#4f6fb8", "#6a4c9c", "#a1518a", "#6b1f3f"}

// Options controls the word map layout and appearance
type Options struct {
	Width  int
	Height int

	// MaxWords caps how many ranked keywords are considered
	MaxWords int
	// MinFontSize stops the layout once a word would have to shrink below it
	MinFontSize int
	// MaxFontSize is the size of the top keyword; 0 derives it from the canvas
	MaxFontSize int
	// FontStep is how much a word shrinks each time it fails to fit
	FontStep int
	// RelativeScaling weighs how strongly font size follows frequency, in [0, 1]
	RelativeScaling float64
	// Margin is free space kept around every word, in pixels
	Margin int

	Background string
	Title      string
	Palette    []string
}

// DefaultOptions returns the stock 1600x900 white word map settings
func DefaultOptions() Options {
	return Options{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		MaxWords:        DefaultMaxWords,
		MinFontSize:     DefaultMinFontSize,
		FontStep:        DefaultFontStep,
		RelativeScaling: DefaultRelativeScaling,
		Margin:          DefaultMargin,
		Background:      DefaultBackground,
		Title:           DefaultTitle,
		Palette:         DefaultPalette,
	}
}

// Validate reports every invalid setting at once
func (o Options) Validate() error {
	var result *multierror.Error

	if o.Width <= 0 || o.Height <= 0 {
		result = multierror.Append(result, fmt.Errorf("canvas must be positive, got %dx%d", o.Width, o.Height))
	}
	if o.MaxWords <= 0 {
		result = multierror.Append(result, fmt.Errorf("max words must be positive, got %d", o.MaxWords))
	}
	if o.MinFontSize <= 0 {
		result = multierror.Append(result, fmt.Errorf("min font size must be positive, got %d", o.MinFontSize))
	}
	if o.MaxFontSize != 0 && o.MaxFontSize < o.MinFontSize {
		result = multierror.Append(result, fmt.Errorf("max font size %d is below min font size %d", o.MaxFontSize, o.MinFontSize))
	}
	if o.FontStep <= 0 {
		result = multierror.Append(result, fmt.Errorf("font step must be positive, got %d", o.FontStep))
	}
	if o.RelativeScaling < 0 || o.RelativeScaling > 1 {
		result = multierror.Append(result, fmt.Errorf("relative scaling must be within [0, 1], got %g", o.RelativeScaling))
	}
	if o.Margin < 0 {
		result = multierror.Append(result, fmt.Errorf("margin must not be negative, got %d", o.Margin))
	}
	if _, err := ParseColor(o.Background); err != nil {
		result = multierror.Append(result, fmt.Errorf("background: %w", err))
	}
	for _, hex := range o.Palette {
		if _, err := colorful.Hex(hex); err != nil {
			result = multierror.Append(result, fmt.Errorf("palette color %q: %w", hex, err))
		}
	}

	return result.ErrorOrNil()
}

var namedColors = map[string]string{
	"white": "#ffffff",
	"black": "#000000",
	"ivory": "#fffff0",
	"gray":  "#808080",
	"grey":  "#808080",
	"navy":  "#000080",
}

// ParseColor accepts "#rrggbb" or one of a few color names
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, errors.New("empty color")
	}
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, err
	}
	return c.Clamped(), nil
}
