package pixelformat

import (
	"bytes"
	"io"

	"github.com/bodgit/pixelformat/stream"
)

// Size is the length in bytes of the wire record.
const Size = 16

const padding = 3

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func readFields(r *stream.Reader) (f Fields, err error) {
	var flag uint8

	if f.BPP, err = r.ReadU8(); err != nil {
		return
	}
	if f.Depth, err = r.ReadU8(); err != nil {
		return
	}
	if flag, err = r.ReadU8(); err != nil {
		return
	}
	f.BigEndian = flag != 0
	if flag, err = r.ReadU8(); err != nil {
		return
	}
	f.TrueColour = flag != 0

	for _, v := range []*uint16{&f.RedMax, &f.GreenMax, &f.BlueMax} {
		if *v, err = r.ReadU16(); err != nil {
			return
		}
	}
	for _, v := range []*uint8{&f.RedShift, &f.GreenShift, &f.BlueShift} {
		if *v, err = r.ReadU8(); err != nil {
			return
		}
	}

	err = r.Skip(padding)
	return
}

// Read decodes a pixel format record from r. A record that decodes but
// fails validation returns an error wrapping ErrInvalidPixelFormat.
func Read(r io.Reader) (*PixelFormat, error) {
	f, err := readFields(stream.NewReader(r))
	if err != nil {
		return nil, err
	}
	return New(f)
}

// Write encodes pf as a wire record to w.
func (pf *PixelFormat) Write(w io.Writer) error {
	sw := stream.NewWriter(w)
	f := &pf.f

	for _, v := range []uint8{f.BPP, f.Depth, boolByte(f.BigEndian), boolByte(f.TrueColour)} {
		if err := sw.WriteU8(v); err != nil {
			return err
		}
	}
	for _, v := range []uint16{f.RedMax, f.GreenMax, f.BlueMax} {
		if err := sw.WriteU16(v); err != nil {
			return err
		}
	}
	for _, v := range []uint8{f.RedShift, f.GreenShift, f.BlueShift} {
		if err := sw.WriteU8(v); err != nil {
			return err
		}
	}

	return sw.Pad(padding)
}

// MarshalBinary returns the wire record for pf.
func (pf *PixelFormat) MarshalBinary() ([]byte, error) {
	b := bytes.NewBuffer(make([]byte, 0, Size))
	if err := pf.Write(b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// UnmarshalBinary replaces pf with the pixel format decoded from b. On
// error pf is left unchanged.
func (pf *PixelFormat) UnmarshalBinary(b []byte) error {
	n, err := Read(bytes.NewReader(b))
	if err != nil {
		return err
	}
	*pf = *n
	return nil
}
