package pixelformat

// ColourMap maps between colour map indices and 8-bit RGB for pixel formats
// that are not true colour.
type ColourMap interface {
	// Index returns the pixel value for the entry best matching r, g, b.
	Index(r, g, b uint8) uint32

	// Colour returns the RGB value of entry p.
	Colour(p uint32) (r, g, b uint8)
}

// Channel scaling tables indexed by channel width minus one. Scaling up
// truncates v*255/max, scaling down rounds v*max/255 to the nearest value,
// so 0 and max map to 0 and 255 and 8-bit channels pass through unchanged.
var upconv, downconv = makeTables()

func makeTables() (up, down *[8][256]uint8) {
	up, down = new([8][256]uint8), new([8][256]uint8)
	for bits := 1; bits <= 8; bits++ {
		max := 1<<uint(bits) - 1
		for i := 0; i < 256; i++ {
			// Only the low bits matter when scaling up
			up[bits-1][i] = uint8((i & max) * 255 / max)
			down[bits-1][i] = uint8((i*max + 127) / 255)
		}
	}
	return
}

func scaleUp(v uint32, bits int) uint8 {
	if bits == 0 {
		return 0
	}
	return upconv[bits-1][v&0xff]
}

func scaleDown(v uint8, bits int) uint32 {
	if bits == 0 {
		return 0
	}
	return uint32(downconv[bits-1][v])
}

// PixelFromRGB returns the pixel value for r, g, b. For colour map formats
// the value is looked up in cm.
func (pf *PixelFormat) PixelFromRGB(r, g, b uint8, cm ColourMap) uint32 {
	f := &pf.f
	if !f.TrueColour {
		return cm.Index(r, g, b)
	}

	return scaleDown(r, pf.redBits)<<f.RedShift |
		scaleDown(g, pf.greenBits)<<f.GreenShift |
		scaleDown(b, pf.blueBits)<<f.BlueShift
}

// RGBFromPixel returns the 8-bit RGB value of pixel p. For colour map
// formats the value is looked up in cm.
func (pf *PixelFormat) RGBFromPixel(p uint32, cm ColourMap) (r, g, b uint8) {
	f := &pf.f
	if !f.TrueColour {
		return cm.Colour(p)
	}

	r = scaleUp(p>>f.RedShift&uint32(f.RedMax), pf.redBits)
	g = scaleUp(p>>f.GreenShift&uint32(f.GreenMax), pf.greenBits)
	b = scaleUp(p>>f.BlueShift&uint32(f.BlueMax), pf.blueBits)
	return
}

// PixelFromBuffer reads a single packed pixel from the start of src.
func (pf *PixelFormat) PixelFromBuffer(src []byte) uint32 {
	switch pf.f.BPP {
	case 32:
		if pf.f.BigEndian {
			return uint32(src[0])<<24 | uint32(src[1])<<16 | uint32(src[2])<<8 | uint32(src[3])
		}
		return uint32(src[3])<<24 | uint32(src[2])<<16 | uint32(src[1])<<8 | uint32(src[0])
	case 16:
		if pf.f.BigEndian {
			return uint32(src[0])<<8 | uint32(src[1])
		}
		return uint32(src[1])<<8 | uint32(src[0])
	default:
		return uint32(src[0])
	}
}

// BufferFromPixel writes p as a single packed pixel to the start of dst.
func (pf *PixelFormat) BufferFromPixel(dst []byte, p uint32) {
	switch pf.f.BPP {
	case 32:
		if pf.f.BigEndian {
			dst[0], dst[1], dst[2], dst[3] = byte(p>>24), byte(p>>16), byte(p>>8), byte(p)
		} else {
			dst[0], dst[1], dst[2], dst[3] = byte(p), byte(p>>8), byte(p>>16), byte(p>>24)
		}
	case 16:
		if pf.f.BigEndian {
			dst[0], dst[1] = byte(p>>8), byte(p)
		} else {
			dst[0], dst[1] = byte(p), byte(p>>8)
		}
	default:
		dst[0] = byte(p)
	}
}

// lanes returns the byte offsets of the red, green, blue and unused bytes
// within a 32-bit pixel, and whether the layout allows copying channels
// byte by byte.
func (pf *PixelFormat) lanes() (r, g, b, x int, ok bool) {
	if !pf.Is888() {
		return
	}

	f := &pf.f
	rs, gs, bs := int(f.RedShift), int(f.GreenShift), int(f.BlueShift)
	if rs%8 != 0 || gs%8 != 0 || bs%8 != 0 {
		return
	}
	// A channel shifted out of the 32-bit pixel has no byte lane
	if rs > 24 || gs > 24 || bs > 24 {
		return
	}

	// The three shifts are distinct multiples of 8 below 32, so the unused
	// lane is whichever of 0, 8, 16, 24 is missing
	xs := 48 - rs - gs - bs

	if f.BigEndian {
		return (24 - rs) / 8, (24 - gs) / 8, (24 - bs) / 8, (24 - xs) / 8, true
	}
	return rs / 8, gs / 8, bs / 8, xs / 8, true
}

// BufferFromRGB packs pixels RGB triples from src into dst.
func (pf *PixelFormat) BufferFromRGB(dst, src []byte, pixels int, cm ColourMap) {
	pf.BufferFromRGBRect(dst, src, pixels, pixels, 1, cm)
}

// BufferFromRGBRect packs a w by h rectangle of RGB triples from src into
// dst. Rows in dst are stride pixels apart; the bytes between the end of
// one row and the start of the next are left untouched. src holds w*h
// triples with no row padding.
func (pf *PixelFormat) BufferFromRGBRect(dst, src []byte, w, stride, h int, cm ColourMap) {
	bpp := pf.BytesPerPixel()
	pad := (stride - w) * bpp

	if r, g, b, x, ok := pf.lanes(); ok {
		d, s := 0, 0
		for ; h > 0; h-- {
			for i := 0; i < w; i++ {
				p := dst[d : d+4 : d+4]
				p[r] = src[s]
				p[g] = src[s+1]
				p[b] = src[s+2]
				p[x] = 0
				d += 4
				s += 3
			}
			d += pad
		}
		return
	}

	d, s := 0, 0
	for ; h > 0; h-- {
		for i := 0; i < w; i++ {
			p := pf.PixelFromRGB(src[s], src[s+1], src[s+2], cm)
			pf.BufferFromPixel(dst[d:d+bpp], p)
			d += bpp
			s += 3
		}
		d += pad
	}
}

// RGBFromBuffer unpacks pixels packed pixels from src into RGB triples in
// dst.
func (pf *PixelFormat) RGBFromBuffer(dst, src []byte, pixels int, cm ColourMap) {
	pf.RGBFromBufferRect(dst, src, pixels, pixels, 1, cm)
}

// RGBFromBufferRect unpacks a w by h rectangle of packed pixels from src,
// whose rows are stride pixels apart, into w*h RGB triples in dst. Only the
// first w pixels of each row in src are read.
func (pf *PixelFormat) RGBFromBufferRect(dst, src []byte, w, stride, h int, cm ColourMap) {
	bpp := pf.BytesPerPixel()
	pad := (stride - w) * bpp

	if r, g, b, _, ok := pf.lanes(); ok {
		d, s := 0, 0
		for ; h > 0; h-- {
			for i := 0; i < w; i++ {
				p := src[s : s+4 : s+4]
				dst[d] = p[r]
				dst[d+1] = p[g]
				dst[d+2] = p[b]
				d += 3
				s += 4
			}
			s += pad
		}
		return
	}

	d, s := 0, 0
	for ; h > 0; h-- {
		for i := 0; i < w; i++ {
			p := pf.PixelFromBuffer(src[s : s+bpp])
			dst[d], dst[d+1], dst[d+2] = pf.RGBFromPixel(p, cm)
			d += 3
			s += bpp
		}
		s += pad
	}
}
