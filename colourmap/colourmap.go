/*
Package colourmap implements the colour map used by pixel formats that index
a palette rather than encoding RGB directly.

A Map holds up to 256 entries, enough for the 8 bit indexed pixel format.
Maps are immutable; Update returns a modified copy, mirroring how an RFB
server sends SetColourMapEntries to replace a run of entries.
*/
package colourmap

import (
	"errors"
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
)

// MaxEntries is the largest number of entries an 8 bit pixel can index.
const MaxEntries = 256

var (
	errEmpty    = errors.New("colourmap: no entries")
	errTooMany  = errors.New("colourmap: too many entries")
	errBadRange = errors.New("colourmap: entries out of range")
)

// Map is a fixed palette of opaque colours.
type Map struct {
	palette color.Palette
	rgb     []color.RGBA
}

func opaque(c color.Color) color.RGBA {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	rgba.A = 0xff
	return rgba
}

// New returns a Map holding the colours in p, in order. Any alpha is
// discarded.
func New(p color.Palette) (*Map, error) {
	switch {
	case len(p) == 0:
		return nil, errEmpty
	case len(p) > MaxEntries:
		return nil, errTooMany
	}

	m := &Map{
		palette: make(color.Palette, len(p)),
		rgb:     make([]color.RGBA, len(p)),
	}
	for i, c := range p {
		m.rgb[i] = opaque(c)
		m.palette[i] = m.rgb[i]
	}

	return m, nil
}

// Quantize returns a Map of at most n colours chosen to represent m using
// median cut.
func Quantize(m image.Image, n int) (*Map, error) {
	switch {
	case n < 1:
		return nil, errEmpty
	case n > MaxEntries:
		return nil, errTooMany
	}

	q := quantize.MedianCutQuantizer{}
	return New(q.Quantize(make(color.Palette, 0, n), m))
}

// Cube returns the 256 entry map where each index is laid out as three
// bits of red, three of green and two of blue, from most to least
// significant.
func Cube() *Map {
	p := make(color.Palette, MaxEntries)
	for i := range p {
		p[i] = color.RGBA{
			R: uint8((i >> 5 & 7) * 255 / 7),
			G: uint8((i >> 2 & 7) * 255 / 7),
			B: uint8((i & 3) * 255 / 3),
			A: 0xff,
		}
	}

	m, _ := New(p)
	return m
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.rgb)
}

// Palette returns a copy of the entries.
func (m *Map) Palette() color.Palette {
	return append(color.Palette(nil), m.palette...)
}

// Index returns the index of the entry closest to r, g, b in Euclidean RGB
// space.
func (m *Map) Index(r, g, b uint8) uint32 {
	return uint32(m.palette.Index(color.RGBA{r, g, b, 0xff}))
}

// Colour returns entry p. Indices past the end of the map are black.
func (m *Map) Colour(p uint32) (r, g, b uint8) {
	if p >= uint32(len(m.rgb)) {
		return 0, 0, 0
	}
	c := m.rgb[p]
	return c.R, c.G, c.B
}

// Update returns a copy of m with the entries starting at first replaced by
// p. The map grows if the run extends past its end.
func (m *Map) Update(first int, p color.Palette) (*Map, error) {
	if first < 0 || first+len(p) > MaxEntries {
		return nil, errBadRange
	}

	n := len(m.palette)
	if first+len(p) > n {
		n = first + len(p)
	}

	dup := make(color.Palette, n)
	copy(dup, m.palette)
	for i := len(m.palette); i < n; i++ {
		dup[i] = color.Black
	}
	copy(dup[first:], p)

	return New(dup)
}
