package raw

import (
	"image"
	"io"

	"github.com/bodgit/pixelformat"
)

// Decode reads a w by h raw rectangle in pixel format pf from r and returns
// it as an *image.RGBA. Memory is only committed as pixel data arrives.
func Decode(r io.Reader, pf *pixelformat.PixelFormat, cm pixelformat.ColourMap, w, h int) (*image.RGBA, error) {
	if err := checkFramebuffer(pf, cm, w, h); err != nil {
		return nil, err
	}

	size := Size(pf, w, h)
	pix, err := io.ReadAll(io.LimitReader(r, int64(size)))
	if err != nil {
		return nil, err
	}
	if len(pix) < size {
		return nil, errNotEnough
	}

	fb := &Framebuffer{
		pf:  pf,
		cm:  cm,
		w:   w,
		h:   h,
		pix: pix,
	}

	return fb.SubImage(fb.Bounds())
}
