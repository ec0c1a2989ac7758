/*
Package raw implements the RFB raw rectangle encoding.

A raw rectangle is width*height pixels packed left to right, top to bottom,
with no row padding and no header, each pixel laid out according to the
pixel format in use on the connection. Formats that index a colour map need
the map to encode or decode.
*/
package raw

import (
	"errors"
	"io"

	"github.com/bodgit/pixelformat"
)

var (
	errNoColourMap = errors.New("raw: colour map required")
	errNotEnough   = errors.New("raw: not enough image data")
	errBadSize     = errors.New("raw: invalid rectangle size")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

func checkColourMap(pf *pixelformat.PixelFormat, cm pixelformat.ColourMap) error {
	if !pf.TrueColour() && cm == nil {
		return errNoColourMap
	}
	return nil
}

// Size returns the length in bytes of a w by h rectangle in pixel format pf.
func Size(pf *pixelformat.PixelFormat, w, h int) int {
	return w * h * pf.BytesPerPixel()
}
