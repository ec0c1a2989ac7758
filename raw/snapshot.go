package raw

import (
	"image"
	"io"

	"github.com/bodgit/pixelformat"
	"github.com/bodgit/pixelformat/colourmap"
	"github.com/bodgit/pixelformat/stream"
)

// Ext is the file extension used for snapshots.
const Ext = ".raw"

// WriteSnapshot writes m to w as a self describing snapshot: the width and
// height as 16 bit values followed by the pixel format record, as an RFB
// ServerInit message lays them out, then the colour map entries for formats
// that need them, then the raw rectangle.
func WriteSnapshot(w io.Writer, m image.Image, pf *pixelformat.PixelFormat, cm *colourmap.Map) error {
	b := m.Bounds()
	if b.Dx() > 0xffff || b.Dy() > 0xffff {
		return errBadSize
	}

	var pcm pixelformat.ColourMap
	if cm != nil {
		pcm = cm
	}
	if err := checkColourMap(pf, pcm); err != nil {
		return err
	}

	sw := stream.NewWriter(w)
	if err := sw.WriteU16(uint16(b.Dx())); err != nil {
		return err
	}
	if err := sw.WriteU16(uint16(b.Dy())); err != nil {
		return err
	}
	if err := pf.Write(w); err != nil {
		return err
	}

	if !pf.TrueColour() {
		if err := colourmap.WriteEntries(w, 0, cm.Palette()); err != nil {
			return err
		}
	}

	return Encode(w, m, pf, pcm)
}

func notEnough(err error) error {
	if err == io.ErrUnexpectedEOF {
		return errNotEnough
	}
	return err
}

// ReadSnapshot reads a snapshot written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (*image.RGBA, *pixelformat.PixelFormat, error) {
	sr := stream.NewReader(r)

	w, err := sr.ReadU16()
	if err != nil {
		return nil, nil, notEnough(err)
	}
	h, err := sr.ReadU16()
	if err != nil {
		return nil, nil, notEnough(err)
	}

	pf, err := pixelformat.Read(r)
	if err != nil {
		return nil, nil, notEnough(err)
	}

	var cm pixelformat.ColourMap
	if !pf.TrueColour() {
		m, err := colourmap.ReadMap(r, nil)
		if err != nil {
			return nil, nil, notEnough(err)
		}
		cm = m
	}

	m, err := Decode(r, pf, cm, int(w), int(h))
	if err != nil {
		return nil, nil, err
	}

	return m, pf, nil
}
