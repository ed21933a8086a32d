// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package wordcloud

import "math"

// cellSize is the pixel edge of one occupancy cell
const cellSize = 4

// occupancy tracks used canvas area on a coarse grid. A summed-area table
// answers "is this box free" in constant time; it is rebuilt after each
// placement.
type occupancy struct {
	cols, rows int
	used       []bool
	sum        []int // (cols+1)*(rows+1) prefix sums
}

func newOccupancy(width, height int) *occupancy {
	// Partial cells at the right and bottom edges are never used.
	cols := width / cellSize
	rows := height / cellSize
	o := &occupancy{
		cols: cols,
		rows: rows,
		used: make([]bool, cols*rows),
		sum:  make([]int, (cols+1)*(rows+1)),
	}
	return o
}

// span converts a pixel extent to a cell count, rounding up
func span(px int) int {
	return (px + cellSize - 1) / cellSize
}

func (o *occupancy) fits(col, row, w, h int) bool {
	if col < 0 || row < 0 || col+w > o.cols || row+h > o.rows {
		return false
	}
	stride := o.cols + 1
	total := o.sum[(row+h)*stride+col+w] - o.sum[row*stride+col+w] - o.sum[(row+h)*stride+col] + o.sum[row*stride+col]
	return total == 0
}

func (o *occupancy) mark(col, row, w, h int) {
	for r := row; r < row+h && r < o.rows; r++ {
		for c := col; c < col+w && c < o.cols; c++ {
			if r >= 0 && c >= 0 {
				o.used[r*o.cols+c] = true
			}
		}
	}
	o.rebuild()
}

func (o *occupancy) rebuild() {
	stride := o.cols + 1
	for r := 0; r < o.rows; r++ {
		rowSum := 0
		for c := 0; c < o.cols; c++ {
			if o.used[r*o.cols+c] {
				rowSum++
			}
			o.sum[(r+1)*stride+c+1] = o.sum[r*stride+c+1] + rowSum
		}
	}
}

// find walks an Archimedean spiral outward from the grid center and returns
// the top-left cell of the first free w x h box.
func (o *occupancy) find(w, h int) (int, int, bool) {
	if w > o.cols || h > o.rows {
		return 0, 0, false
	}

	cx := float64(o.cols-w) / 2
	cy := float64(o.rows-h) / 2
	maxR := math.Hypot(float64(o.cols), float64(o.rows)) / 2

	// Canvases are wider than tall; stretch the spiral horizontally to match.
	aspect := float64(o.cols) / float64(o.rows)
	if aspect < 1 {
		aspect = 1
	}

	lastCol, lastRow := -1, -1
	for theta := 0.0; ; {
		r := theta / (2 * math.Pi)
		if r > maxR*1.05 {
			return 0, 0, false
		}
		col := int(math.Round(cx + r*aspect*math.Cos(theta)))
		row := int(math.Round(cy + r*math.Sin(theta)))
		if (col != lastCol || row != lastRow) && o.fits(col, row, w, h) {
			return col, row, true
		}
		lastCol, lastRow = col, row

		theta += 1 / math.Max(r*aspect, 1)
	}
}
