/*
Package stream implements the byte stream used to exchange fixed layout
records with an RFB peer.

All multi-byte integers are transferred in network (big-endian) byte order,
regardless of the host or of any pixel byte order negotiated on the
connection.
*/
package stream

import (
	"encoding/binary"
	"io"
)

var order = binary.BigEndian

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Reader reads fixed width unsigned integers from an underlying io.Reader.
type Reader struct {
	r   io.Reader
	tmp [4]byte
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadU8 reads a single byte.
func (r *Reader) ReadU8() (uint8, error) {
	if err := readFull(r.r, r.tmp[:1]); err != nil {
		return 0, err
	}
	return r.tmp[0], nil
}

// ReadU16 reads a big-endian 16-bit value.
func (r *Reader) ReadU16() (uint16, error) {
	if err := readFull(r.r, r.tmp[:2]); err != nil {
		return 0, err
	}
	return order.Uint16(r.tmp[:2]), nil
}

// ReadU32 reads a big-endian 32-bit value.
func (r *Reader) ReadU32() (uint32, error) {
	if err := readFull(r.r, r.tmp[:4]); err != nil {
		return 0, err
	}
	return order.Uint32(r.tmp[:4]), nil
}

// Skip discards the next n bytes.
func (r *Reader) Skip(n int) error {
	copied, err := io.CopyN(io.Discard, r.r, int64(n))
	if err == io.EOF && copied < int64(n) {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Writer writes fixed width unsigned integers to an underlying io.Writer.
type Writer struct {
	w   io.Writer
	tmp [4]byte
}

// NewWriter returns a Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteU8 writes a single byte.
func (w *Writer) WriteU8(v uint8) error {
	w.tmp[0] = v
	_, err := w.w.Write(w.tmp[:1])
	return err
}

// WriteU16 writes v in big-endian order.
func (w *Writer) WriteU16(v uint16) error {
	order.PutUint16(w.tmp[:2], v)
	_, err := w.w.Write(w.tmp[:2])
	return err
}

// WriteU32 writes v in big-endian order.
func (w *Writer) WriteU32(v uint32) error {
	order.PutUint32(w.tmp[:4], v)
	_, err := w.w.Write(w.tmp[:4])
	return err
}

// Pad writes n zero bytes.
func (w *Writer) Pad(n int) error {
	for ; n > 0; n-- {
		if err := w.WriteU8(0); err != nil {
			return err
		}
	}
	return nil
}
