package pixelformat

import (
	"fmt"
	"strings"
	"unicode"
)

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	return unicode.IsSpace(rune(c))
}

func trimSpace(s string) string {
	for len(s) > 0 && isSpace(s[0]) {
		s = s[1:]
	}
	return s
}

// scan splits s into a channel order tag of up to three characters followed
// by three single digit channel widths. White space may precede the tag and
// each digit. It returns the number of items scanned.
func scan(s string) (tag string, widths [3]int, n int) {
	s = trimSpace(s)

	i := 0
	for i < len(s) && i < 3 && !isSpace(s[i]) {
		i++
	}
	if i == 0 {
		return
	}
	tag, s, n = s[:i], s[i:], 1

	for k := range widths {
		s = trimSpace(s)
		if len(s) == 0 || !isDigit(s[0]) {
			return
		}
		widths[k], s = int(s[0]-'0'), s[1:]
		n++
	}

	return
}

// Parse builds a true colour pixel format from the compact notation used
// on command lines and in configuration: "rgb" or "bgr" followed by three
// digits giving the width of each channel in that order, for example
// "rgb565" or "bgr888". The first channel named occupies the most
// significant bits. The pixel byte order is that of the host. Parse reports
// false if s cannot be parsed or does not describe a valid format.
func Parse(s string) (*PixelFormat, bool) {
	tag, widths, n := scan(s)
	if n < 4 {
		return nil, false
	}

	depth := widths[0] + widths[1] + widths[2]
	f := Fields{
		Depth:      uint8(depth),
		TrueColour: true,
		BigEndian:  hostBigEndian,
		GreenShift: uint8(widths[2]),
		GreenMax:   1<<uint(widths[1]) - 1,
	}

	switch {
	case depth <= 8:
		f.BPP = 8
	case depth <= 16:
		f.BPP = 16
	default:
		f.BPP = 32
	}

	switch strings.ToLower(tag) {
	case "bgr":
		f.RedShift = 0
		f.RedMax = 1<<uint(widths[2]) - 1
		f.BlueShift = uint8(widths[2] + widths[1])
		f.BlueMax = 1<<uint(widths[0]) - 1
	case "rgb":
		f.BlueShift = 0
		f.BlueMax = 1<<uint(widths[2]) - 1
		f.RedShift = uint8(widths[2] + widths[1])
		f.RedMax = 1<<uint(widths[0]) - 1
	default:
		return nil, false
	}

	pf, err := New(f)
	if err != nil {
		return nil, false
	}
	return pf, true
}

// lowMask returns 2^n-1, or -1 for widths no channel can have.
func lowMask(n int) int {
	if n < 0 || n > 16 {
		return -1
	}
	return 1<<uint(n) - 1
}

// notation returns the compact "rgbXYZ" or "bgrXYZ" form of pf if its
// channels are packed contiguously from bit 0 up to the depth.
func (pf *PixelFormat) notation() (string, bool) {
	f := &pf.f
	if !f.TrueColour {
		return "", false
	}

	depth := int(f.Depth)
	rs, gs, bs := int(f.RedShift), int(f.GreenShift), int(f.BlueShift)

	if bs == 0 && gs > bs && rs > gs &&
		int(f.BlueMax) == lowMask(gs) &&
		int(f.GreenMax) == lowMask(rs-gs) &&
		int(f.RedMax) == lowMask(depth-rs) {
		return fmt.Sprintf("rgb%d%d%d", depth-rs, rs-gs, gs), true
	}

	if rs == 0 && gs > rs && bs > gs &&
		int(f.RedMax) == lowMask(gs) &&
		int(f.GreenMax) == lowMask(bs-gs) &&
		int(f.BlueMax) == lowMask(depth-bs) {
		return fmt.Sprintf("bgr%d%d%d", depth-bs, bs-gs, gs), true
	}

	return "", false
}

// String returns a human readable description of pf, such as
// "depth 16 (16bpp) little-endian rgb565". Layouts without a compact
// notation are described by their channel maxima and shifts.
func (pf *PixelFormat) String() string {
	f := &pf.f

	var b strings.Builder
	fmt.Fprintf(&b, "depth %d (%dbpp)", f.Depth, f.BPP)
	if f.BPP != 8 {
		if f.BigEndian {
			b.WriteString(" big-endian")
		} else {
			b.WriteString(" little-endian")
		}
	}

	if !f.TrueColour {
		b.WriteString(" color-map")
		return b.String()
	}

	if s, ok := pf.notation(); ok {
		b.WriteString(" " + s)
		return b.String()
	}

	fmt.Fprintf(&b, " rgb max %d,%d,%d shift %d,%d,%d",
		f.RedMax, f.GreenMax, f.BlueMax,
		f.RedShift, f.GreenShift, f.BlueShift)

	return b.String()
}

// Print writes the description returned by String into dst, truncating it
// to fit, and returns the number of bytes written.
func (pf *PixelFormat) Print(dst []byte) int {
	return copy(dst, pf.String())
}

// MarshalText returns the compact notation for pf, as accepted by Parse.
func (pf *PixelFormat) MarshalText() ([]byte, error) {
	s, ok := pf.notation()
	if !ok {
		return nil, fmt.Errorf("pixelformat: no compact notation for %s", pf)
	}
	return []byte(s), nil
}

// UnmarshalText replaces pf with the pixel format parsed from text. On
// error pf is left unchanged.
func (pf *PixelFormat) UnmarshalText(text []byte) error {
	n, ok := Parse(string(text))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnparseable, text)
	}
	*pf = *n
	return nil
}
