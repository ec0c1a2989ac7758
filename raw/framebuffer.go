package raw

import (
	"image"
	"image/color"
	"io"

	"github.com/bodgit/pixelformat"
)

// Framebuffer holds a screen's pixels packed in a single pixel format, as
// an RFB client keeps them between updates. It implements image.Image.
// A Framebuffer is not safe for concurrent use.
type Framebuffer struct {
	pf  *pixelformat.PixelFormat
	cm  pixelformat.ColourMap
	w   int
	h   int
	pix []byte
}

// NewFramebuffer returns a black w by h Framebuffer in pixel format pf. cm
// may be nil for true colour formats.
func NewFramebuffer(pf *pixelformat.PixelFormat, cm pixelformat.ColourMap, w, h int) (*Framebuffer, error) {
	if err := checkFramebuffer(pf, cm, w, h); err != nil {
		return nil, err
	}

	return &Framebuffer{
		pf:  pf,
		cm:  cm,
		w:   w,
		h:   h,
		pix: make([]byte, Size(pf, w, h)),
	}, nil
}

func checkFramebuffer(pf *pixelformat.PixelFormat, cm pixelformat.ColourMap, w, h int) error {
	if err := checkColourMap(pf, cm); err != nil {
		return err
	}
	if w < 0 || h < 0 {
		return errBadSize
	}
	return nil
}

// PixelFormat returns the format of the packed pixels.
func (fb *Framebuffer) PixelFormat() *pixelformat.PixelFormat {
	return fb.pf
}

// Pix returns the packed pixels, rows stored contiguously.
func (fb *Framebuffer) Pix() []byte {
	return fb.pix
}

// Bounds implements image.Image.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.w, fb.h)
}

// ColorModel implements image.Image.
func (fb *Framebuffer) ColorModel() color.Model {
	return color.RGBAModel
}

func (fb *Framebuffer) offset(x, y int) int {
	return (y*fb.w + x) * fb.pf.BytesPerPixel()
}

// At implements image.Image.
func (fb *Framebuffer) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(fb.Bounds())) {
		return color.RGBA{}
	}

	p := fb.pf.PixelFromBuffer(fb.pix[fb.offset(x, y):])
	r, g, b := fb.pf.RGBFromPixel(p, fb.cm)
	return color.RGBA{r, g, b, 0xff}
}

// check reports an error if r is not within the framebuffer. An empty r
// is always within it.
func (fb *Framebuffer) check(r image.Rectangle) error {
	if !r.In(fb.Bounds()) {
		return errBadSize
	}
	return nil
}

// Update reads a raw rectangle covering r from rd and stores it. The
// pixels outside r are unchanged. An empty r reads nothing.
func (fb *Framebuffer) Update(rd io.Reader, r image.Rectangle) error {
	if err := fb.check(r); err != nil || r.Empty() {
		return err
	}

	bpp := fb.pf.BytesPerPixel()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := fb.offset(r.Min.X, y)
		if err := readFull(rd, fb.pix[off:off+r.Dx()*bpp]); err != nil {
			if err != io.ErrUnexpectedEOF {
				return err
			}
			return errNotEnough
		}
	}

	return nil
}

// Draw packs the part of src within r into the framebuffer.
func (fb *Framebuffer) Draw(r image.Rectangle, src image.Image) error {
	if err := fb.check(r); err != nil || r.Empty() {
		return err
	}

	rgb := make([]byte, 0, r.Dx()*r.Dy()*3)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cr, cg, cb, _ := src.At(x, y).RGBA()
			rgb = append(rgb, uint8(cr>>8), uint8(cg>>8), uint8(cb>>8))
		}
	}

	fb.pf.BufferFromRGBRect(fb.pix[fb.offset(r.Min.X, r.Min.Y):], rgb, r.Dx(), fb.w, r.Dy(), fb.cm)
	return nil
}

// SubImage returns the part of the framebuffer within r as an *image.RGBA
// with the same bounds.
func (fb *Framebuffer) SubImage(r image.Rectangle) (*image.RGBA, error) {
	if err := fb.check(r); err != nil {
		return nil, err
	}
	if r.Empty() {
		return image.NewRGBA(r), nil
	}

	rgb := make([]byte, r.Dx()*r.Dy()*3)
	fb.pf.RGBFromBufferRect(rgb, fb.pix[fb.offset(r.Min.X, r.Min.Y):], r.Dx(), fb.w, r.Dy(), fb.cm)

	m := image.NewRGBA(r)
	for i, j := 0, 0; i < len(rgb); i, j = i+3, j+4 {
		m.Pix[j], m.Pix[j+1], m.Pix[j+2], m.Pix[j+3] = rgb[i], rgb[i+1], rgb[i+2], 0xff
	}

	return m, nil
}
