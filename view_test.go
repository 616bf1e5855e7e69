package bitmap_test

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"

	"deedles.dev/bitmap"
	"deedles.dev/bitmap/format"
	"github.com/stretchr/testify/require"
)

// pattern returns a Gray8 bitmap in which every pixel has a distinct,
// non-zero value.
func pattern(t testing.TB, w, h int) *bitmap.Bitmap {
	t.Helper()

	b, err := bitmap.NewBitmap(w, h, format.Gray8)
	require.NoError(t, err)
	for y := range h {
		row := b.View().Row(y)
		for x := range row {
			row[x] = byte(y*w + x + 1)
		}
	}
	return b
}

func TestNewInfo(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		f       format.Format
		wantErr error
	}{
		{"valid", 10, 10, format.BGRA32, nil},
		{"zero width", 0, 10, format.BGRA32, bitmap.ErrInvalidDimensions},
		{"negative height", 10, -1, format.BGRA32, bitmap.ErrInvalidDimensions},
		{"zero format", 10, 10, format.Format{}, bitmap.ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := bitmap.NewInfo(tt.w, tt.h, tt.f)
			require.ErrorIs(t, err, tt.wantErr)
			if err == nil {
				require.Equal(t, tt.w*tt.f.ByteSize(), info.Stride)
			}
		})
	}

	info := bitmap.MustInfo(10, 10, format.RGB24)
	_, err := info.WithStride(29)
	require.ErrorIs(t, err, bitmap.ErrInvalidStride)
	padded, err := info.WithStride(32)
	require.NoError(t, err)
	require.Equal(t, 32*9+30, padded.Len())
	require.NotEqual(t, info, padded)
	require.Equal(t, info, bitmap.MustInfo(10, 10, format.RGB24))

	_, err = bitmap.NewInfo(math.MaxInt/2, 1, format.RGBA32)
	require.ErrorIs(t, err, bitmap.ErrInvalidDimensions)

	huge := bitmap.Info{Width: 1, Height: 1 << 40, Stride: 1 << 40, Format: format.Gray8}
	require.ErrorIs(t, huge.Validate(), bitmap.ErrInvalidStride)
	_, err = bitmap.NewView(make([]byte, 16), huge)
	require.ErrorIs(t, err, bitmap.ErrInvalidStride)
	_, err = bitmap.New(huge)
	require.ErrorIs(t, err, bitmap.ErrInvalidStride)
}

func TestNewView(t *testing.T) {
	info, err := bitmap.MustInfo(4, 3, format.RGB24).WithStride(16)
	require.NoError(t, err)

	_, err = bitmap.NewView(make([]byte, 16*2+11), info)
	require.ErrorIs(t, err, bitmap.ErrDataTooSmall)

	v, err := bitmap.NewView(make([]byte, 16*2+12), info)
	require.NoError(t, err)
	require.True(t, v.Writable())
	require.Equal(t, bitmap.BorrowedMemory, v.Memory())
	require.Len(t, v.Row(2), 12)

	ro, err := bitmap.NewReadOnlyView(make([]byte, 16*3), info)
	require.NoError(t, err)
	require.False(t, ro.Writable())
	_, err = ro.MutableRow(0)
	require.ErrorIs(t, err, bitmap.ErrReadOnly)
	require.ErrorIs(t, ro.Clear(), bitmap.ErrReadOnly)
}

func TestSlice(t *testing.T) {
	b := pattern(t, 8, 8)
	orig := b.Clone()

	sub, err := b.Slice(2, 3, 4, 2)
	require.NoError(t, err)
	require.Equal(t, 4, sub.Width())
	require.Equal(t, 2, sub.Height())
	require.Equal(t, b.Stride(), sub.Stride())
	require.Equal(t, bitmap.OwnedMemory, sub.Memory())
	require.Equal(t, orig.View().Pixel(2, 3), sub.Pixel(0, 0))

	for y := range sub.Height() {
		row := sub.Row(y)
		for x := range row {
			row[x] = 0
		}
	}

	for y := range 8 {
		for x := range 8 {
			inside := x >= 2 && x < 6 && y >= 3 && y < 5
			if inside {
				require.Zero(t, b.View().Pixel(x, y)[0], "(%v, %v)", x, y)
				continue
			}
			require.Equal(t, orig.View().Pixel(x, y), b.View().Pixel(x, y), "(%v, %v)", x, y)
		}
	}

	for _, r := range [][4]int{
		{-1, 0, 2, 2},
		{0, 0, 9, 1},
		{7, 7, 2, 1},
		{0, 0, 0, 1},
	} {
		_, err := b.Slice(r[0], r[1], r[2], r[3])
		require.ErrorIs(t, err, bitmap.ErrOutOfBounds, "%v", r)
	}
}

func TestSetPixels(t *testing.T) {
	src := pattern(t, 8, 8).View()

	t.Run("Contained", func(t *testing.T) {
		dst, err := bitmap.NewBitmap(16, 16, format.Gray8)
		require.NoError(t, err)
		require.NoError(t, dst.SetPixels(4, 4, src))

		for y := range 16 {
			for x := range 16 {
				var want byte
				if x >= 4 && x < 12 && y >= 4 && y < 12 {
					want = src.Pixel(x-4, y-4)[0]
				}
				require.Equal(t, want, dst.View().Pixel(x, y)[0], "(%v, %v)", x, y)
			}
		}
	})

	t.Run("Clipped", func(t *testing.T) {
		dst, err := bitmap.NewBitmap(16, 16, format.Gray8)
		require.NoError(t, err)
		require.NoError(t, dst.SetPixels(-4, -4, src))

		for y := range 16 {
			for x := range 16 {
				var want byte
				if x < 4 && y < 4 {
					want = src.Pixel(x+4, y+4)[0]
				}
				require.Equal(t, want, dst.View().Pixel(x, y)[0], "(%v, %v)", x, y)
			}
		}
	})

	t.Run("Outside", func(t *testing.T) {
		dst, err := bitmap.NewBitmap(16, 16, format.Gray8)
		require.NoError(t, err)
		require.NoError(t, dst.SetPixels(16, 0, src))
		require.NoError(t, dst.SetPixels(-8, -8, src))
		require.Equal(t, make([]byte, 256), dst.Pix())
	})

	t.Run("Padded", func(t *testing.T) {
		info, err := bitmap.MustInfo(16, 16, format.Gray8).WithStride(20)
		require.NoError(t, err)
		dst, err := bitmap.New(info)
		require.NoError(t, err)
		require.NoError(t, dst.SetPixels(12, 12, src))

		require.Equal(t, src.Pixel(3, 3), dst.View().Pixel(15, 15))
		for y := range 16 {
			require.Equal(t, make([]byte, 4), dst.Pix()[y*20+16:y*20+20], "padding of row %v", y)
		}
	})

	t.Run("FormatMismatch", func(t *testing.T) {
		dst, err := bitmap.NewBitmap(16, 16, format.RGB24)
		require.NoError(t, err)
		require.ErrorIs(t, dst.SetPixels(0, 0, src), format.ErrNotSupported)
	})

	t.Run("ReadOnly", func(t *testing.T) {
		dst, err := bitmap.NewBitmap(16, 16, format.Gray8)
		require.NoError(t, err)
		require.ErrorIs(t, dst.View().ReadOnly().SetPixels(0, 0, src), bitmap.ErrReadOnly)
	})
}

func TestStrideIndependence(t *testing.T) {
	const w, h = 5, 4
	colors := func(x, y int) color.Color {
		return color.NRGBA{R: uint8(x * 40), G: uint8(y * 50), B: uint8(x + y), A: 0xFF}
	}

	var views []bitmap.View
	for _, pad := range []int{0, 1, 3, 16} {
		info, err := bitmap.MustInfo(w, h, format.BGR24).WithStride(w*3 + pad)
		require.NoError(t, err)
		b, err := bitmap.New(info)
		require.NoError(t, err)

		v := b.View()
		for y := range h {
			for x := range w {
				v.Set(x, y, colors(x, y))
			}
		}
		views = append(views, v)
	}

	for _, v := range views[1:] {
		require.True(t, views[0].Equal(v))
		for y := range h {
			for x := range w {
				require.Equal(t, views[0].At(x, y), v.At(x, y))
			}
		}
	}
}

func TestFill(t *testing.T) {
	info, err := bitmap.MustInfo(3, 2, format.BGRA32).WithStride(16)
	require.NoError(t, err)
	b, err := bitmap.New(info)
	require.NoError(t, err)

	require.NoError(t, b.View().Fill(color.NRGBA{R: 1, G: 2, B: 3, A: 0xFF}))
	for y := range 2 {
		require.Equal(t, []byte{3, 2, 1, 0xFF, 3, 2, 1, 0xFF, 3, 2, 1, 0xFF}, b.View().Row(y))
	}
	require.Equal(t, make([]byte, 4), b.Pix()[12:16])

	require.NoError(t, b.View().Clear())
	require.Equal(t, make([]byte, 32), b.Pix())
}

func TestDrawImage(t *testing.T) {
	b, err := bitmap.NewBitmap(4, 4, format.RGB565)
	require.NoError(t, err)

	var _ draw.Image = b
	var _ draw.Image = b.View()

	draw.Draw(b, b.Bounds(), image.NewUniform(color.RGBA{R: 0xFF, A: 0xFF}), image.Point{}, draw.Src)
	require.Equal(t, []byte{0x00, 0xF8}, b.View().Pixel(3, 3))

	r, g, bl, a := b.At(1, 1).RGBA()
	require.Equal(t, [4]uint32{0xFFFF, 0, 0, 0xFFFF}, [4]uint32{r, g, bl, a})

	r, g, bl, _ = b.At(10, 10).RGBA()
	require.Zero(t, r+g+bl)
}

func TestCopy(t *testing.T) {
	info, err := bitmap.MustInfo(8, 8, format.Gray8).WithStride(13)
	require.NoError(t, err)
	b, err := bitmap.New(info)
	require.NoError(t, err)
	require.NoError(t, b.SetPixels(0, 0, pattern(t, 8, 8).View()))

	c := b.View().Copy()
	require.Equal(t, 8, c.Stride())
	require.True(t, c.View().Equal(b.View()))

	c.View().Pixel(0, 0)[0] = 0
	require.NotZero(t, b.View().Pixel(0, 0)[0])

	require.Nil(t, bitmap.View{}.Copy())
}
