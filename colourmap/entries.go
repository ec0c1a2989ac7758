package colourmap

import (
	"image/color"
	"io"

	"github.com/bodgit/pixelformat/stream"
)

// ReadEntries reads the body of an RFB SetColourMapEntries message: the
// index of the first entry and the number of entries, followed by a 16 bit
// red, green and blue sample for each. Samples are reduced to 8 bits by
// keeping the most significant byte.
func ReadEntries(r io.Reader) (int, color.Palette, error) {
	sr := stream.NewReader(r)

	first, err := sr.ReadU16()
	if err != nil {
		return 0, nil, err
	}
	n, err := sr.ReadU16()
	if err != nil {
		return 0, nil, err
	}

	p := make(color.Palette, n)
	for i := range p {
		var rgb [3]uint16
		for j := range rgb {
			if rgb[j], err = sr.ReadU16(); err != nil {
				return 0, nil, err
			}
		}
		p[i] = color.RGBA{uint8(rgb[0] >> 8), uint8(rgb[1] >> 8), uint8(rgb[2] >> 8), 0xff}
	}

	return int(first), p, nil
}

// WriteEntries writes p as the body of a SetColourMapEntries message
// starting at entry first.
func WriteEntries(w io.Writer, first int, p color.Palette) error {
	if first < 0 || first+len(p) > 0xffff {
		return errBadRange
	}

	sw := stream.NewWriter(w)
	if err := sw.WriteU16(uint16(first)); err != nil {
		return err
	}
	if err := sw.WriteU16(uint16(len(p))); err != nil {
		return err
	}

	for _, c := range p {
		r, g, b, _ := opaque(c).RGBA()
		for _, v := range []uint32{r, g, b} {
			if err := sw.WriteU16(uint16(v)); err != nil {
				return err
			}
		}
	}

	return nil
}

// ReadMap reads a SetColourMapEntries body from r and applies it to m. A nil
// m starts from an empty map.
func ReadMap(r io.Reader, m *Map) (*Map, error) {
	first, p, err := ReadEntries(r)
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = &Map{}
	}
	return m.Update(first, p)
}
