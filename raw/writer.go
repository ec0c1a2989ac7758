package raw

import (
	"image"
	"io"

	"github.com/bodgit/pixelformat"
)

type encoder struct {
	w   io.Writer
	pf  *pixelformat.PixelFormat
	cm  pixelformat.ColourMap
	rgb []byte
	row []byte
}

func (e *encoder) encodeRow(m image.Image, r image.Rectangle, y int) error {
	i := 0
	for x := r.Min.X; x < r.Max.X; x++ {
		// RGBA returns 16 bit premultiplied samples
		cr, cg, cb, _ := m.At(x, y).RGBA()
		e.rgb[i], e.rgb[i+1], e.rgb[i+2] = uint8(cr>>8), uint8(cg>>8), uint8(cb>>8)
		i += 3
	}

	e.pf.BufferFromRGB(e.row, e.rgb, r.Dx(), e.cm)

	_, err := e.w.Write(e.row)
	return err
}

// EncodeRect writes the part of m within r to w as a raw rectangle in pixel
// format pf. r is clipped to the bounds of m.
func EncodeRect(w io.Writer, m image.Image, r image.Rectangle, pf *pixelformat.PixelFormat, cm pixelformat.ColourMap) error {
	if err := checkColourMap(pf, cm); err != nil {
		return err
	}

	r = r.Intersect(m.Bounds())
	if r.Empty() {
		return nil
	}

	e := encoder{
		w:   w,
		pf:  pf,
		cm:  cm,
		rgb: make([]byte, r.Dx()*3),
		row: make([]byte, Size(pf, r.Dx(), 1)),
	}

	for y := r.Min.Y; y < r.Max.Y; y++ {
		if err := e.encodeRow(m, r, y); err != nil {
			return err
		}
	}

	return nil
}

// Encode writes the whole of m to w as a raw rectangle in pixel format pf.
func Encode(w io.Writer, m image.Image, pf *pixelformat.PixelFormat, cm pixelformat.ColourMap) error {
	return EncodeRect(w, m, m.Bounds(), pf, cm)
}
