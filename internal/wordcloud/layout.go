// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package wordcloud

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"

	"issue-wordmap/internal/frequency"
)

// Placement is one word drawn on the canvas
type Placement struct {
	Keyword  string
	Count    int
	FontSize int
	Bounds   image.Rectangle // text box without margin, in canvas pixels
	Color    color.Color
}

// Layout is the result of fitting ranked keywords onto the canvas
type Layout struct {
	Placements []Placement
	// Dropped counts considered keywords that did not fit above the minimum font size
	Dropped int
}

type measureFunc func(word string, size int) (width, height int, err error)

// layoutWords assigns font sizes and positions to ranked entries within area.
// Sizes follow each word's frequency relative to the previous word, blended
// by relativeScaling; a word that does not fit shrinks by FontStep until it
// fits or falls below MinFontSize, at which point layout stops.
func layoutWords(entries []frequency.Entry, area image.Rectangle, opts Options, measure measureFunc, pick func(string) color.Color) (*Layout, error) {
	if len(entries) > opts.MaxWords {
		entries = entries[:opts.MaxWords]
	}

	layout := &Layout{}
	if len(entries) == 0 || entries[0].Count <= 0 {
		return layout, nil
	}

	grid := newOccupancy(area.Dx(), area.Dy())
	maxCount := float64(entries[0].Count)

	fontSize := opts.MaxFontSize
	if fontSize == 0 {
		fontSize = area.Dy() * 2 / 5
	}
	lastFreq := 1.0

	for i, entry := range entries {
		freq := float64(entry.Count) / maxCount
		if freq <= 0 {
			layout.Dropped += len(entries) - i
			break
		}

		rs := opts.RelativeScaling
		if i > 0 && rs != 0 {
			fontSize = int(math.Round((rs*(freq/lastFreq) + (1 - rs)) * float64(fontSize)))
		}

		placed := false
		for fontSize >= opts.MinFontSize {
			w, h, err := measure(entry.Keyword, fontSize)
			if err != nil {
				return nil, err
			}
			boxW := span(w + 2*opts.Margin)
			boxH := span(h + 2*opts.Margin)

			col, row, ok := grid.find(boxW, boxH)
			if ok {
				grid.mark(col, row, boxW, boxH)
				x := area.Min.X + col*cellSize + opts.Margin
				y := area.Min.Y + row*cellSize + opts.Margin
				layout.Placements = append(layout.Placements, Placement{
					Keyword:  entry.Keyword,
					Count:    entry.Count,
					FontSize: fontSize,
					Bounds:   image.Rect(x, y, x+w, y+h),
					Color:    pick(entry.Keyword),
				})
				placed = true
				break
			}
			fontSize -= opts.FontStep
		}

		if !placed {
			layout.Dropped += len(entries) - i
			break
		}
		lastFreq = freq
	}

	return layout, nil
}

// faceMeasure builds a measureFunc over a face cache
func faceMeasure(faces *faceCache) measureFunc {
	return func(word string, size int) (int, int, error) {
		face, err := faces.get(size)
		if err != nil {
			return 0, 0, err
		}
		m := face.Metrics()
		return font.MeasureString(face, word).Ceil(), (m.Ascent + m.Descent).Ceil(), nil
	}
}
