// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package wordcloud

import (
	"bufio"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"issue-wordmap/internal/frequency"
)

// faceCache holds one face per integer point size
type faceCache struct {
	font  *opentype.Font
	faces map[int]font.Face
}

func newFaceCache(ttf []byte) (*faceCache, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &faceCache{font: f, faces: make(map[int]font.Face)}, nil
}

func (c *faceCache) get(size int) (font.Face, error) {
	if face, ok := c.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %dpt face: %w", size, err)
	}
	c.faces[size] = face
	return face, nil
}

func (c *faceCache) Close() {
	for _, face := range c.faces {
		face.Close()
	}
	c.faces = map[int]font.Face{}
}

// Renderer draws word maps with the Go fonts
type Renderer struct {
	opts       Options
	background color.Color
	palette    []colorful.Color
	words      *faceCache
	titles     *faceCache
}

// NewRenderer validates opts and prepares fonts and colors
func NewRenderer(opts Options) (*Renderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid word map options: %w", err)
	}

	bg, _ := ParseColor(opts.Background)

	hexes := opts.Palette
	if len(hexes) == 0 {
		hexes = DefaultPalette
	}
	palette := make([]colorful.Color, 0, len(hexes))
	for _, hex := range hexes {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, err
		}
		palette = append(palette, c)
	}

	words, err := newFaceCache(goregular.TTF)
	if err != nil {
		return nil, err
	}
	titles, err := newFaceCache(gobold.TTF)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		opts:       opts,
		background: bg,
		palette:    palette,
		words:      words,
		titles:     titles,
	}, nil
}

// Close releases cached font faces
func (r *Renderer) Close() {
	r.words.Close()
	r.titles.Close()
}

// Render lays out ranked entries and draws them. Entries must already be
// sorted by count, highest first, as frequency.Table.Ranked returns them.
func (r *Renderer) Render(entries []frequency.Entry) (*image.RGBA, *Layout, error) {
	img := image.NewRGBA(image.Rect(0, 0, r.opts.Width, r.opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.background), image.Point{}, draw.Src)

	area := img.Bounds()
	if r.opts.Title != "" {
		band, err := r.drawTitle(img)
		if err != nil {
			return nil, nil, err
		}
		area.Min.Y += band
	}

	layout, err := layoutWords(entries, area, r.opts, faceMeasure(r.words), r.colorFor)
	if err != nil {
		return nil, nil, err
	}

	for _, p := range layout.Placements {
		face, err := r.words.get(p.FontSize)
		if err != nil {
			return nil, nil, err
		}
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(p.Color),
			Face: face,
			Dot:  fixed.P(p.Bounds.Min.X, p.Bounds.Min.Y+face.Metrics().Ascent.Ceil()),
		}
		d.DrawString(p.Keyword)
	}

	return img, layout, nil
}

// drawTitle centers the title along the top edge and returns the band height
func (r *Renderer) drawTitle(img *image.RGBA) (int, error) {
	size := r.opts.Height / 30
	if size < r.opts.MinFontSize {
		size = r.opts.MinFontSize
	}
	face, err := r.titles.get(size)
	if err != nil {
		return 0, err
	}

	m := face.Metrics()
	width := font.MeasureString(face, r.opts.Title).Ceil()
	pad := size / 2
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P((r.opts.Width-width)/2, pad+m.Ascent.Ceil()),
	}
	d.DrawString(r.opts.Title)

	return pad*2 + (m.Ascent + m.Descent).Ceil(), nil
}

// colorFor picks a stable palette color for word
func (r *Renderer) colorFor(word string) color.Color {
	h := fnv.New32a()
	h.Write([]byte(word))
	t := float64(h.Sum32()%1000) / 1000

	if len(r.palette) == 1 {
		return r.palette[0].Clamped()
	}
	pos := t * float64(len(r.palette)-1)
	i := int(pos)
	return r.palette[i].BlendLab(r.palette[i+1], pos-float64(i)).Clamped()
}

// WritePNG renders entries and encodes the image to w
func (r *Renderer) WritePNG(w io.Writer, entries []frequency.Entry) (*Layout, error) {
	img, layout, err := r.Render(entries)
	if err != nil {
		return nil, err
	}
	if err := png.Encode(w, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return layout, nil
}

// SavePNG renders the table with opts and writes it to path
func SavePNG(path string, table *frequency.Table, opts Options) (*Layout, error) {
	r, err := NewRenderer(opts)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	layout, err := r.WritePNG(buf, table.Top(opts.MaxWords))
	if err != nil {
		return nil, err
	}
	if err := buf.Flush(); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return layout, f.Close()
}
