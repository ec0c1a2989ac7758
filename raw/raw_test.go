package raw

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/pixelformat"
	"github.com/bodgit/pixelformat/colourmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.RGBA{0xff, 0x00, 0x00, 0xff}
	green = color.RGBA{0x00, 0xff, 0x00, 0xff}
	blue  = color.RGBA{0x00, 0x00, 0xff, 0xff}
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

func testImage(r image.Rectangle) *image.RGBA {
	m := image.NewRGBA(r)
	colours := []color.RGBA{red, green, blue, white}
	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.SetRGBA(x, y, colours[i%len(colours)])
			i++
		}
	}
	return m
}

func TestEncode(t *testing.T) {
	m := testImage(image.Rect(0, 0, 2, 2))

	tests := []struct {
		name string
		pf   *pixelformat.PixelFormat
		want []byte
	}{
		{
			"rgb565 little-endian",
			pixelformat.RGB565,
			[]byte{0x00, 0xf8, 0xe0, 0x07, 0x1f, 0x00, 0xff, 0xff},
		},
		{
			"rgb565 big-endian",
			pixelformat.RGB565.WithByteOrder(true),
			[]byte{0xf8, 0x00, 0x07, 0xe0, 0x00, 0x1f, 0xff, 0xff},
		},
		{
			"bgr233",
			pixelformat.BGR233,
			[]byte{0x07, 0x38, 0xc0, 0xff},
		},
		{
			"rgb888 big-endian",
			pixelformat.RGB888.WithByteOrder(true),
			[]byte{
				0x00, 0xff, 0x00, 0x00,
				0x00, 0x00, 0xff, 0x00,
				0x00, 0x00, 0x00, 0xff,
				0x00, 0xff, 0xff, 0xff,
			},
		},
	}

	for _, table := range tests {
		t.Run(table.name, func(t *testing.T) {
			b := new(bytes.Buffer)
			require.Nil(t, Encode(b, m, table.pf, nil))
			assert.Equal(t, table.want, b.Bytes())
			assert.Equal(t, Size(table.pf, 2, 2), b.Len())

			out, err := Decode(bytes.NewReader(table.want), table.pf, nil, 2, 2)
			require.Nil(t, err)
			assert.Equal(t, m.Pix, out.Pix)
		})
	}
}

func TestEncodeRect(t *testing.T) {
	m := testImage(image.Rect(10, 10, 14, 13))

	b := new(bytes.Buffer)
	require.Nil(t, EncodeRect(b, m, image.Rect(11, 11, 13, 20), pixelformat.RGB888, nil))
	assert.Equal(t, Size(pixelformat.RGB888, 2, 2), b.Len())

	out, err := Decode(b, pixelformat.RGB888, nil, 2, 2)
	require.Nil(t, err)
	assert.Equal(t, m.RGBAAt(11, 11), out.RGBAAt(0, 0))
	assert.Equal(t, m.RGBAAt(12, 12), out.RGBAAt(1, 1))

	b.Reset()
	require.Nil(t, EncodeRect(b, m, image.Rect(0, 0, 5, 5), pixelformat.RGB888, nil))
	assert.Equal(t, 0, b.Len())
}

func TestColourMap(t *testing.T) {
	m := testImage(image.Rect(0, 0, 2, 2))

	assert.Equal(t, errNoColourMap, Encode(new(bytes.Buffer), m, pixelformat.ColourMap8, nil))
	_, err := Decode(bytes.NewReader(make([]byte, 4)), pixelformat.ColourMap8, nil, 2, 2)
	assert.Equal(t, errNoColourMap, err)

	cm := colourmap.Cube()

	b := new(bytes.Buffer)
	require.Nil(t, Encode(b, m, pixelformat.ColourMap8, cm))
	assert.Equal(t, []byte{0xe0, 0x1c, 0x03, 0xff}, b.Bytes())

	out, err := Decode(b, pixelformat.ColourMap8, cm, 2, 2)
	require.Nil(t, err)
	assert.Equal(t, m.Pix, out.Pix)
}

func TestDecodeShort(t *testing.T) {
	_, err := Decode(bytes.NewReader(make([]byte, 7)), pixelformat.RGB565, nil, 2, 2)
	assert.Equal(t, errNotEnough, err)

	_, err = Decode(bytes.NewReader(nil), pixelformat.RGB565, nil, -1, 2)
	assert.Equal(t, errBadSize, err)

	// The claimed size is never allocated up front
	_, err = Decode(bytes.NewReader(make([]byte, 16)), pixelformat.RGB888, nil, 0xffff, 0xffff)
	assert.Equal(t, errNotEnough, err)
}

func TestDecodeEmpty(t *testing.T) {
	for _, size := range []image.Point{{0, 2}, {2, 0}, {0, 0}} {
		out, err := Decode(bytes.NewReader(nil), pixelformat.RGB565, nil, size.X, size.Y)
		require.Nil(t, err)
		assert.True(t, out.Bounds().Empty())
	}
}

func TestFramebuffer(t *testing.T) {
	fb, err := NewFramebuffer(pixelformat.RGB565, nil, 4, 3)
	require.Nil(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), fb.Bounds())
	assert.Len(t, fb.Pix(), 24)

	src := testImage(image.Rect(0, 0, 4, 3))
	r := image.Rect(1, 1, 3, 3)
	require.Nil(t, fb.Draw(r, src))

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			want := color.RGBA{0, 0, 0, 0xff}
			if (image.Point{x, y}).In(r) {
				want = src.RGBAAt(x, y)
			}
			assert.Equal(t, want, fb.At(x, y), "(%d, %d)", x, y)
		}
	}

	sub, err := fb.SubImage(r)
	require.Nil(t, err)
	assert.Equal(t, r, sub.Bounds())
	assert.Equal(t, src.RGBAAt(2, 2), sub.RGBAAt(2, 2))

	assert.Equal(t, errBadSize, fb.Draw(image.Rect(3, 0, 5, 1), src))
	empty, err := fb.SubImage(image.Rectangle{})
	require.Nil(t, err)
	assert.True(t, empty.Bounds().Empty())
}

func TestFramebufferEmptyRect(t *testing.T) {
	fb, err := NewFramebuffer(pixelformat.RGB565, nil, 2, 2)
	require.Nil(t, err)

	before := append([]byte(nil), fb.Pix()...)
	empty := image.Rect(1, 1, 1, 2)

	assert.Nil(t, fb.Update(bytes.NewReader(nil), empty))
	assert.Nil(t, fb.Draw(empty, testImage(image.Rect(0, 0, 2, 2))))
	assert.Equal(t, before, fb.Pix())
}

func TestFramebufferUpdate(t *testing.T) {
	fb, err := NewFramebuffer(pixelformat.RGB888.WithByteOrder(true), nil, 3, 2)
	require.Nil(t, err)

	require.Nil(t, fb.Update(bytes.NewReader([]byte{
		0x00, 0x12, 0x34, 0x56,
		0x00, 0xab, 0xcd, 0xef,
	}), image.Rect(1, 0, 2, 2)))

	assert.Equal(t, []byte{
		0, 0, 0, 0, 0x00, 0x12, 0x34, 0x56, 0, 0, 0, 0,
		0, 0, 0, 0, 0x00, 0xab, 0xcd, 0xef, 0, 0, 0, 0,
	}, fb.Pix())
	assert.Equal(t, color.RGBA{0xab, 0xcd, 0xef, 0xff}, fb.At(1, 1))
	assert.Equal(t, color.RGBA{}, fb.At(3, 0))

	assert.Equal(t, errNotEnough, fb.Update(bytes.NewReader([]byte{0, 0}), image.Rect(0, 0, 1, 1)))
}

func TestSnapshot(t *testing.T) {
	m := testImage(image.Rect(0, 0, 3, 2))

	tests := []struct {
		name string
		pf   *pixelformat.PixelFormat
		cm   *colourmap.Map
	}{
		{"rgb565", pixelformat.RGB565, nil},
		{"bgr888", pixelformat.BGR888.WithByteOrder(true), nil},
		{"colour map", pixelformat.ColourMap8, colourmap.Cube()},
	}

	for _, table := range tests {
		t.Run(table.name, func(t *testing.T) {
			b := new(bytes.Buffer)
			require.Nil(t, WriteSnapshot(b, m, table.pf, table.cm))
			assert.Equal(t, []byte{0x00, 0x03, 0x00, 0x02}, b.Bytes()[:4])

			out, pf, err := ReadSnapshot(b)
			require.Nil(t, err)
			assert.True(t, pf.Equal(table.pf))
			assert.Equal(t, m.Pix, out.Pix)
			assert.Equal(t, 0, b.Len())
		})
	}
}

func TestSnapshotEmpty(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 0, 5))

	b := new(bytes.Buffer)
	require.Nil(t, WriteSnapshot(b, m, pixelformat.RGB888, nil))
	assert.Equal(t, 4+pixelformat.Size, b.Len())

	out, pf, err := ReadSnapshot(b)
	require.Nil(t, err)
	assert.True(t, pf.Equal(pixelformat.RGB888))
	assert.True(t, out.Bounds().Empty())
}

func TestSnapshotErrors(t *testing.T) {
	m := testImage(image.Rect(0, 0, 1, 1))

	assert.Equal(t, errNoColourMap, WriteSnapshot(new(bytes.Buffer), m, pixelformat.ColourMap8, nil))

	b := new(bytes.Buffer)
	require.Nil(t, WriteSnapshot(b, m, pixelformat.RGB565, nil))

	for _, n := range []int{0, 3, 10} {
		_, _, err := ReadSnapshot(bytes.NewReader(b.Bytes()[:n]))
		assert.Equal(t, errNotEnough, err, "%d bytes", n)
	}

	_, _, err := ReadSnapshot(bytes.NewReader(b.Bytes()[:21]))
	assert.Equal(t, errNotEnough, err)

	corrupt := append([]byte(nil), b.Bytes()...)
	corrupt[4] = 24
	_, _, err = ReadSnapshot(bytes.NewReader(corrupt))
	assert.ErrorIs(t, err, pixelformat.ErrInvalidPixelFormat)
}
