package convert_test

import (
	"image/color"
	"testing"

	"deedles.dev/bitmap"
	"deedles.dev/bitmap/convert"
	"deedles.dev/bitmap/format"
	"github.com/stretchr/testify/require"
)

// single returns a 1x1 bitmap of format f containing px.
func single(t testing.TB, f format.Format, px ...byte) *bitmap.Bitmap {
	t.Helper()

	b, err := bitmap.NewBitmap(1, 1, f)
	require.NoError(t, err)
	copy(b.Pix(), px)
	return b
}

func TestConvertPixel(t *testing.T) {
	gray := color.GrayModel.Convert(color.RGBA{R: 0xFF, A: 0xFF}).(color.Gray).Y

	tests := []struct {
		name string
		src  format.Format
		in   []byte
		dst  format.Format
		out  []byte
		opts []convert.Option
	}{
		{"Identical", format.RGB24, []byte{1, 2, 3}, format.RGB24, []byte{1, 2, 3}, nil},
		{"Swizzle", format.RGBA32, []byte{1, 2, 3, 4}, format.BGRA32, []byte{3, 2, 1, 4}, nil},
		{"SwizzleUndefined", format.RGB24, []byte{1, 2, 3}, format.BGRX32, []byte{3, 2, 1, 0xFF}, nil},
		{"Narrow16", format.Gray16BE, []byte{0x80, 0x80}, format.Gray8, []byte{0x80}, nil},
		{"NarrowRGBA64", format.RGBA64BE, []byte{0xFF, 0xFF, 0, 0, 0x80, 0x80, 0xFF, 0xFF}, format.RGBA32, []byte{0xFF, 0, 0x80, 0xFF}, nil},
		{"Widen565", format.RGB565, []byte{0xFF, 0xFF}, format.RGB24, []byte{0xFF, 0xFF, 0xFF}, nil},
		{"ColourToGrey", format.RGB24, []byte{0xFF, 0, 0}, format.Gray8, []byte{gray}, nil},
		{"GreyToColour", format.Gray8, []byte{0x40}, format.BGRA32, []byte{0x40, 0x40, 0x40, 0xFF}, nil},
		{"Opaque", format.RGB24, []byte{1, 2, 3}, format.RGBA32Premul, []byte{1, 2, 3, 0xFF}, nil},
		{"AlphaDrop", format.RGBA32, []byte{0xFF, 0, 0, 0x80}, format.RGB24, []byte{0xFF, 0, 0}, nil},
		{
			"AlphaComposite",
			format.RGBA32, []byte{0xFF, 0, 0, 0x80},
			format.RGB24, []byte{0xFF, 0x7F, 0x7F},
			[]convert.Option{convert.WithAlphaPolicy(convert.AlphaComposite), convert.WithBackground(color.White)},
		},
		{"Unpremultiply", format.RGBA32Premul, []byte{0x40, 0, 0, 0x80}, format.RGBA32, []byte{0x80, 0, 0, 0x80}, nil},
		{"Premultiply", format.RGBA32, []byte{0x80, 0, 0, 0x80}, format.RGBA32Premul, []byte{0x40, 0, 0, 0x80}, nil},
		{"Transparent", format.RGBA32Premul, []byte{0, 0, 0, 0}, format.RGBA32, []byte{0, 0, 0, 0}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := single(t, tt.src, tt.in...)
			dst, err := convert.Convert(src.View(), tt.dst, tt.opts...)
			require.NoError(t, err)
			require.Equal(t, tt.dst, dst.Format())
			require.Equal(t, tt.out, dst.Pix())
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	src, err := bitmap.NewBitmap(7, 5, format.RGBA32)
	require.NoError(t, err)
	for i := range src.Pix() {
		src.Pix()[i] = byte(i * 7)
	}

	for _, f := range []format.Format{format.BGRA32, format.ARGB32, format.RGBA64BE} {
		mid, err := convert.Convert(src.View(), f)
		require.NoError(t, err, "%v", f)
		back, err := convert.Convert(mid.View(), format.RGBA32)
		require.NoError(t, err, "%v", f)
		require.True(t, src.View().Equal(back.View()), "%v", f)
	}
}

func TestConvertErrors(t *testing.T) {
	src := single(t, format.Alpha8, 0x80)
	_, err := convert.Convert(src.View(), format.RGB24)
	require.ErrorIs(t, err, format.ErrNotSupported)

	var nse *format.NotSupportedError
	require.ErrorAs(t, err, &nse)
	require.Equal(t, format.Alpha8, nse.Src)
	require.Equal(t, format.RGB24, nse.Dst)

	dst, err := bitmap.NewBitmap(2, 1, format.Alpha8)
	require.NoError(t, err)
	require.ErrorIs(t, convert.ConvertInto(dst.View(), src.View()), convert.ErrSizeMismatch)
	require.ErrorIs(t, convert.ConvertInto(src.View().ReadOnly(), src.View()), bitmap.ErrReadOnly)
}

func TestConvertNilBackground(t *testing.T) {
	src := single(t, format.RGBA32, 0xFF, 0xFF, 0xFF, 0x80)
	dst, err := convert.Convert(src.View(), format.RGB24,
		convert.WithAlphaPolicy(convert.AlphaComposite),
		convert.WithBackground(nil),
	)
	require.NoError(t, err)
	require.Equal(t, []byte{0x80, 0x80, 0x80}, dst.Pix())
}

func TestConvertAllocs(t *testing.T) {
	src, err := bitmap.NewBitmap(100, 100, format.RGBA32)
	require.NoError(t, err)

	for _, f := range []format.Format{format.BGRA32, format.Gray8, format.RGB565} {
		dst, err := bitmap.NewBitmap(100, 100, f)
		require.NoError(t, err)

		allocs := testing.AllocsPerRun(10, func() {
			require.NoError(t, convert.ConvertInto(dst.View(), src.View()))
		})
		require.Less(t, allocs, float64(100), f.String())
	}
}

func TestResizeNearest(t *testing.T) {
	src, err := bitmap.NewBitmap(2, 2, format.Gray8)
	require.NoError(t, err)
	copy(src.Pix(), []byte{1, 2, 3, 4})

	up, err := convert.Resize(src.View(), 4, 4)
	require.NoError(t, err)
	require.Equal(t, []byte{
		1, 1, 2, 2,
		1, 1, 2, 2,
		3, 3, 4, 4,
		3, 3, 4, 4,
	}, up.Pix())

	down, err := convert.Resize(up.View(), 2, 2)
	require.NoError(t, err)
	require.True(t, src.View().Equal(down.View()))

	wide, err := convert.Resize(src.View(), 3, 1)
	require.NoError(t, err)
	require.Equal(t, []byte{3, 4, 4}, wide.Pix())

	other, err := bitmap.NewBitmap(2, 2, format.RGB24)
	require.NoError(t, err)
	require.ErrorIs(t, convert.ResizeInto(other.View(), src.View()), format.ErrNotSupported)
}

func TestResizeAverage(t *testing.T) {
	src, err := bitmap.NewBitmap(4, 2, format.RGBA32)
	require.NoError(t, err)
	copy(src.Pix(), []byte{
		10, 0, 0, 255, 20, 0, 0, 255, 0, 0, 0, 0, 0, 0, 0, 0,
		30, 0, 0, 255, 40, 0, 0, 255, 0, 0, 100, 0, 0, 0, 0, 0,
	})

	dst, err := convert.Resize(src.View(), 2, 1, convert.WithResizeMode(convert.Average))
	require.NoError(t, err)
	require.Equal(t, []byte{25, 0, 0, 255, 0, 0, 25, 0}, dst.Pix())
}

func TestMap(t *testing.T) {
	b := single(t, format.RGB24, 0x10, 0x20, 0x30)
	err := convert.Map(b.View(), func(r, g, b, a uint32) (uint32, uint32, uint32, uint32) {
		return a - r, a - g, a - b, a
	})
	require.NoError(t, err)
	require.Equal(t, []byte{0xEF, 0xDF, 0xCF}, b.Pix())

	noop := func(r, g, b, a uint32) (uint32, uint32, uint32, uint32) { return r, g, b, a }
	require.ErrorIs(t, convert.Map(b.View().ReadOnly(), noop), bitmap.ErrReadOnly)
}

func TestForEach(t *testing.T) {
	b, err := bitmap.NewBitmap(3, 2, format.RGB24)
	require.NoError(t, err)

	var n int
	err = convert.ForEach(b.View(), func(x, y int, px []byte) {
		require.Len(t, px, 3)
		px[0] = byte(y*3 + x)
		n++
	})
	require.NoError(t, err)
	require.Equal(t, 6, n)
	require.Equal(t, byte(5), b.View().Pixel(2, 1)[0])
}

func TestMosaic(t *testing.T) {
	dst, err := bitmap.NewBitmap(8, 4, format.RGB24)
	require.NoError(t, err)

	red, err := bitmap.NewBitmap(2, 2, format.RGB24)
	require.NoError(t, err)
	require.NoError(t, red.View().Fill(color.RGBA{R: 0xFF, A: 0xFF}))

	grey, err := bitmap.NewBitmap(1, 2, format.Gray8)
	require.NoError(t, err)
	require.NoError(t, grey.View().Fill(color.Gray{Y: 0x80}))

	require.NoError(t, convert.Mosaic(dst.View(), 2, red.View(), grey.View()))

	for y := range 4 {
		for x := range 4 {
			require.Equal(t, []byte{0xFF, 0, 0}, dst.View().Pixel(x, y), "(%v, %v)", x, y)
		}
	}

	// The grey source is 1x2, so it fits as a 2x4 column centered in
	// the right tile.
	for y := range 4 {
		require.Equal(t, []byte{0, 0, 0}, dst.View().Pixel(4, y))
		require.Equal(t, []byte{0x80, 0x80, 0x80}, dst.View().Pixel(5, y))
		require.Equal(t, []byte{0x80, 0x80, 0x80}, dst.View().Pixel(6, y))
		require.Equal(t, []byte{0, 0, 0}, dst.View().Pixel(7, y))
	}
}
