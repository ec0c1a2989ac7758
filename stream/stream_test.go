package stream

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	b := new(bytes.Buffer)
	w := NewWriter(b)

	require.Nil(t, w.WriteU8(0x01))
	require.Nil(t, w.WriteU16(0x0203))
	require.Nil(t, w.WriteU32(0x04050607))
	require.Nil(t, w.Pad(3))

	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x00, 0x00, 0x00}, b.Bytes())
}

func TestReader(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x01, 0x02, 0x03, 0xff, 0xff, 0x04, 0x05, 0x06, 0x07}))

	u8, err := r.ReadU8()
	require.Nil(t, err)
	assert.Equal(t, uint8(0x01), u8)

	u16, err := r.ReadU16()
	require.Nil(t, err)
	assert.Equal(t, uint16(0x0203), u16)

	require.Nil(t, r.Skip(2))

	u32, err := r.ReadU32()
	require.Nil(t, err)
	assert.Equal(t, uint32(0x04050607), u32)

	_, err = r.ReadU8()
	assert.Equal(t, io.ErrUnexpectedEOF, err)
}

func TestReaderShort(t *testing.T) {
	tests := []struct {
		name string
		read func(*Reader) error
	}{
		{
			"u16",
			func(r *Reader) error {
				_, err := r.ReadU16()
				return err
			},
		},
		{
			"u32",
			func(r *Reader) error {
				_, err := r.ReadU32()
				return err
			},
		},
		{
			"skip",
			func(r *Reader) error {
				return r.Skip(2)
			},
		},
	}

	for _, table := range tests {
		t.Run(table.name, func(t *testing.T) {
			r := NewReader(bytes.NewReader([]byte{0x01}))
			assert.Equal(t, io.ErrUnexpectedEOF, table.read(r))
		})
	}
}
