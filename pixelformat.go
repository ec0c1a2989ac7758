/*
Package pixelformat implements the pixel format descriptor negotiated by the
RFB (remote framebuffer) protocol and the conversion between packed pixel
values and 8-bit per channel RGB.

A pixel is 8, 16 or 32 bits wide. In true colour mode each of the red, green
and blue channels is a contiguous run of bits described by a maximum value
(2^n-1, at most 8 bits) and a shift giving the position of its lowest bit.
Otherwise a pixel is an index into a colour map supplied by the caller.

On the wire the descriptor is a 16 byte record:

	bpp, depth, big-endian flag, true colour flag     4 x u8
	red max, green max, blue max                      3 x u16
	red shift, green shift, blue shift                3 x u8
	padding                                           3 bytes

A PixelFormat is immutable once built, so a single value can be shared by
any number of goroutines converting pixel data.
*/
package pixelformat

import (
	"encoding/binary"
	"math/bits"
)

// Fields are the raw layout parameters of a pixel format, in wire order.
type Fields struct {
	BPP        uint8
	Depth      uint8
	BigEndian  bool
	TrueColour bool
	RedMax     uint16
	GreenMax   uint16
	BlueMax    uint16
	RedShift   uint8
	GreenShift uint8
	BlueShift  uint8
}

// PixelFormat is a validated pixel format together with state derived from
// its fields.
type PixelFormat struct {
	f Fields

	redBits, greenBits, blueBits int
	maxBits, minBits             int
	endianMismatch               bool
}

var hostBigEndian = binary.NativeEndian.Uint16([]byte{0x00, 0x01}) == 0x0001

// HostBigEndian reports whether the host stores multi-byte values most
// significant byte first.
func HostBigEndian() bool {
	return hostBigEndian
}

func channelBits(max uint16) int {
	return bits.Len16(max)
}

func build(f Fields) *PixelFormat {
	pf := &PixelFormat{
		f:         f,
		redBits:   channelBits(f.RedMax),
		greenBits: channelBits(f.GreenMax),
		blueBits:  channelBits(f.BlueMax),
	}

	pf.maxBits = pf.redBits
	if pf.greenBits > pf.maxBits {
		pf.maxBits = pf.greenBits
	}
	if pf.blueBits > pf.maxBits {
		pf.maxBits = pf.blueBits
	}

	pf.minBits = pf.redBits
	if pf.greenBits < pf.minBits {
		pf.minBits = pf.greenBits
	}
	if pf.blueBits < pf.minBits {
		pf.minBits = pf.blueBits
	}

	pf.endianMismatch = f.BigEndian != hostBigEndian

	return pf
}

// New returns a PixelFormat for f, or an error wrapping
// ErrInvalidPixelFormat if f does not describe a usable layout.
func New(f Fields) (*PixelFormat, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return build(f), nil
}

// NewUnchecked returns a PixelFormat for f without validating it. It is
// meant for fields that have already passed validation, such as those
// returned by the Fields method.
func NewUnchecked(f Fields) *PixelFormat {
	return build(f)
}

// MustNew is like New but panics if f is invalid.
func MustNew(f Fields) *PixelFormat {
	pf, err := New(f)
	if err != nil {
		panic(err)
	}
	return pf
}

// Default returns the 8-bit true colour format with 3 bits of red and green
// and 2 bits of blue, red in the lowest bits.
func Default() *PixelFormat {
	return build(Fields{
		BPP:        8,
		Depth:      8,
		TrueColour: true,
		RedMax:     7,
		GreenMax:   7,
		BlueMax:    3,
		RedShift:   0,
		GreenShift: 3,
		BlueShift:  6,
	})
}

// Common pixel formats. The multi-byte formats are little-endian.
var (
	RGB888 = MustNew(Fields{
		BPP:        32,
		Depth:      24,
		TrueColour: true,
		RedMax:     255,
		GreenMax:   255,
		BlueMax:    255,
		RedShift:   16,
		GreenShift: 8,
		BlueShift:  0,
	})
	BGR888 = MustNew(Fields{
		BPP:        32,
		Depth:      24,
		TrueColour: true,
		RedMax:     255,
		GreenMax:   255,
		BlueMax:    255,
		RedShift:   0,
		GreenShift: 8,
		BlueShift:  16,
	})
	RGB565 = MustNew(Fields{
		BPP:        16,
		Depth:      16,
		TrueColour: true,
		RedMax:     31,
		GreenMax:   63,
		BlueMax:    31,
		RedShift:   11,
		GreenShift: 5,
		BlueShift:  0,
	})
	RGB555 = MustNew(Fields{
		BPP:        16,
		Depth:      15,
		TrueColour: true,
		RedMax:     31,
		GreenMax:   31,
		BlueMax:    31,
		RedShift:   10,
		GreenShift: 5,
		BlueShift:  0,
	})
	ColourMap8 = MustNew(Fields{
		BPP:   8,
		Depth: 8,
	})
)

// BGR233 is the same layout as Default.
var BGR233 = Default()

// WithByteOrder returns a copy of pf using the given pixel byte order.
func (pf *PixelFormat) WithByteOrder(bigEndian bool) *PixelFormat {
	f := pf.f
	f.BigEndian = bigEndian
	return build(f)
}

// Fields returns the raw layout parameters.
func (pf *PixelFormat) Fields() Fields {
	return pf.f
}

// BPP returns the number of bits per pixel.
func (pf *PixelFormat) BPP() int {
	return int(pf.f.BPP)
}

// BytesPerPixel returns the size of a packed pixel in bytes.
func (pf *PixelFormat) BytesPerPixel() int {
	return int(pf.f.BPP) / 8
}

// Depth returns the number of significant bits in a pixel.
func (pf *PixelFormat) Depth() int {
	return int(pf.f.Depth)
}

// TrueColour reports whether pixels encode RGB directly rather than
// indexing a colour map.
func (pf *PixelFormat) TrueColour() bool {
	return pf.f.TrueColour
}

// BigEndian reports the byte order of multi-byte pixel values.
func (pf *PixelFormat) BigEndian() bool {
	return pf.f.BigEndian
}

// IsBigEndian is an alias for BigEndian.
func (pf *PixelFormat) IsBigEndian() bool {
	return pf.f.BigEndian
}

// IsLittleEndian reports whether multi-byte pixel values are stored least
// significant byte first.
func (pf *PixelFormat) IsLittleEndian() bool {
	return !pf.f.BigEndian
}

func (pf *PixelFormat) RedBits() int   { return pf.redBits }
func (pf *PixelFormat) GreenBits() int { return pf.greenBits }
func (pf *PixelFormat) BlueBits() int  { return pf.blueBits }

// MaxBits returns the width of the widest colour channel.
func (pf *PixelFormat) MaxBits() int {
	return pf.maxBits
}

// MinBits returns the width of the narrowest colour channel.
func (pf *PixelFormat) MinBits() int {
	return pf.minBits
}

// EndianMismatch reports whether the pixel byte order differs from the
// host's native byte order.
func (pf *PixelFormat) EndianMismatch() bool {
	return pf.endianMismatch
}

// Is888 reports whether pf is a 32 bits per pixel, depth 24 true colour
// format with three full 8-bit channels.
func (pf *PixelFormat) Is888() bool {
	f := &pf.f
	return f.TrueColour &&
		f.BPP == 32 &&
		f.Depth == 24 &&
		f.RedMax == 255 &&
		f.GreenMax == 255 &&
		f.BlueMax == 255
}

// Equal reports whether pf and other describe the same pixel layout. Byte
// order is ignored for 8 bits per pixel, and the colour fields are ignored
// for colour map formats.
func (pf *PixelFormat) Equal(other *PixelFormat) bool {
	a, b := &pf.f, &other.f
	return a.BPP == b.BPP &&
		a.Depth == b.Depth &&
		(a.BigEndian == b.BigEndian || a.BPP == 8) &&
		a.TrueColour == b.TrueColour &&
		(!a.TrueColour || (a.RedMax == b.RedMax &&
			a.GreenMax == b.GreenMax &&
			a.BlueMax == b.BlueMax &&
			a.RedShift == b.RedShift &&
			a.GreenShift == b.GreenShift &&
			a.BlueShift == b.BlueShift))
}
