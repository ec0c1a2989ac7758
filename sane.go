package pixelformat

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPixelFormat is wrapped by every error describing a pixel
	// format that fails validation.
	ErrInvalidPixelFormat = errors.New("pixelformat: invalid pixel format")

	// ErrUnparseable is returned by UnmarshalText for text that is not a
	// recognised pixel format notation.
	ErrUnparseable = errors.New("pixelformat: unparseable pixel format")
)

// FormatError describes which rule a set of Fields violates.
type FormatError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s %v: %s", ErrInvalidPixelFormat, e.Field, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidPixelFormat.
func (e *FormatError) Unwrap() error {
	return ErrInvalidPixelFormat
}

func contiguous(max uint16) bool {
	return max&(max+1) == 0
}

// IsSane reports whether f describes a layout that can be converted
// unambiguously.
func (f Fields) IsSane() bool {
	return f.Validate() == nil
}

// Validate returns a *FormatError for the first rule f violates, or nil.
func (f Fields) Validate() error {
	switch f.BPP {
	case 8, 16, 32:
	default:
		return &FormatError{"bpp", f.BPP, "must be 8, 16 or 32"}
	}

	if f.Depth > f.BPP {
		return &FormatError{"depth", f.Depth, fmt.Sprintf("exceeds %d bits per pixel", f.BPP)}
	}

	if !f.TrueColour {
		if f.Depth != 8 {
			return &FormatError{"depth", f.Depth, "colour map formats must have depth 8"}
		}
		return nil
	}

	channels := []struct {
		name  string
		max   uint16
		shift uint8
	}{
		{"red", f.RedMax, f.RedShift},
		{"green", f.GreenMax, f.GreenShift},
		{"blue", f.BlueMax, f.BlueShift},
	}

	total := 0
	for _, c := range channels {
		if !contiguous(c.max) {
			return &FormatError{c.name + " max", c.max, "must be one less than a power of two"}
		}
		// Channels are limited to 8 bits to keep the conversion tables small
		if c.max > 0xff {
			return &FormatError{c.name + " max", c.max, "must not exceed 255"}
		}
		total += channelBits(c.max)
	}

	if total > int(f.BPP) {
		return &FormatError{"channel bits", total, fmt.Sprintf("exceed %d bits per pixel", f.BPP)}
	}

	for i := range channels {
		for j := i + 1; j < len(channels); j++ {
			a, b := channels[i], channels[j]
			if uint64(a.max)<<a.shift&(uint64(b.max)<<b.shift) != 0 {
				return &FormatError{a.name + " shift", a.shift, "overlaps " + b.name}
			}
		}
	}

	return nil
}
