package bitmap

import (
	"fmt"
	"image"
	"math"

	"deedles.dev/bitmap/format"
	"deedles.dev/bitmap/geom"
)

// Info describes the layout of a bitmap in memory. Rows are stored
// top to bottom, Stride bytes apart. The last row only needs to be as
// long as the pixels in it, so the memory that an Info addresses is
// Len bytes long.
type Info struct {
	Width  int
	Height int
	Stride int
	Format format.Format
}

// NewInfo returns an Info with rows packed without padding.
func NewInfo(width, height int, f format.Format) (Info, error) {
	info := Info{
		Width:  width,
		Height: height,
		Stride: width * f.ByteSize(),
		Format: f,
	}
	return info, info.Validate()
}

// MustInfo is like NewInfo but panics on error.
func MustInfo(width, height int, f format.Format) Info {
	info, err := NewInfo(width, height, f)
	if err != nil {
		panic(err)
	}
	return info
}

// WithStride returns a copy of info with a different stride.
func (info Info) WithStride(stride int) (Info, error) {
	info.Stride = stride
	return info, info.Validate()
}

// Validate checks the geometry of info.
func (info Info) Validate() error {
	if !info.Format.Valid() {
		return ErrInvalidFormat
	}
	if info.Width <= 0 || info.Height <= 0 {
		return fmt.Errorf("%w: %vx%v", ErrInvalidDimensions, info.Width, info.Height)
	}
	if info.Width > math.MaxInt/info.Format.ByteSize() {
		return fmt.Errorf("%w: row of %v pixels overflows", ErrInvalidDimensions, info.Width)
	}
	if info.Stride < info.RowBytes() {
		return fmt.Errorf("%w: %v < %v", ErrInvalidStride, info.Stride, info.RowBytes())
	}
	// Owned bitmaps allocate Stride*Height bytes.
	if info.Stride > math.MaxInt/info.Height {
		return fmt.Errorf("%w: %v rows of %v bytes overflows", ErrInvalidStride, info.Height, info.Stride)
	}
	return nil
}

// PixelSize returns the number of bytes per pixel.
func (info Info) PixelSize() int { return info.Format.ByteSize() }

// RowBytes returns the number of bytes occupied by the pixels of a
// single row, excluding padding.
func (info Info) RowBytes() int { return info.Width * info.Format.ByteSize() }

// Len returns the minimum number of bytes needed to hold the bitmap.
func (info Info) Len() int {
	if info.Height <= 0 {
		return 0
	}
	return info.Stride*(info.Height-1) + info.RowBytes()
}

// Offset returns the offset of the first byte of the pixel at (x, y).
// It does not check bounds.
func (info Info) Offset(x, y int) int {
	return y*info.Stride + x*info.Format.ByteSize()
}

func (info Info) Rect() geom.Rect[int] {
	return geom.Rt(0, 0, info.Width, info.Height)
}

func (info Info) Bounds() image.Rectangle {
	return image.Rect(0, 0, info.Width, info.Height)
}

// slice returns the Info of a sub-rectangle and the offset of its
// first pixel.
func (info Info) slice(r geom.Rect[int]) (Info, int, error) {
	if r.Empty() || !info.Rect().Contains(r) {
		return Info{}, 0, fmt.Errorf("%w: %v in %vx%v", ErrOutOfBounds, r, info.Width, info.Height)
	}

	sub := info
	sub.Width, sub.Height = r.Dx(), r.Dy()
	return sub, info.Offset(r.Min.X, r.Min.Y), nil
}

func (info Info) String() string {
	return fmt.Sprintf("%vx%v %v stride %v", info.Width, info.Height, info.Format, info.Stride)
}
