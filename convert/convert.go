// Package convert converts, resizes and transforms pixels between
// bitmap views.
package convert

import (
	"errors"
	"fmt"

	"deedles.dev/bitmap"
	"deedles.dev/bitmap/format"
)

// ErrSizeMismatch is returned when a destination doesn't have the
// dimensions that an operation requires.
var ErrSizeMismatch = errors.New("convert: size mismatch")

// Convert returns a new Bitmap containing the pixels of src in format
// f.
func Convert(src bitmap.View, f format.Format, opts ...Option) (*bitmap.Bitmap, error) {
	dst, err := bitmap.NewBitmap(src.Width(), src.Height(), f)
	if err != nil {
		return nil, err
	}

	err = ConvertInto(dst.View(), src, opts...)
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// ConvertInto converts the pixels of src into dst, which must be the
// same size. If the formats are identical the rows are copied as is,
// if they are compatible the channels are rearranged, and otherwise
// every channel is rescaled, combined, or synthesized as needed.
func ConvertInto(dst, src bitmap.View, opts ...Option) error {
	if !dst.Writable() {
		return bitmap.ErrReadOnly
	}
	if dst.Width() != src.Width() || dst.Height() != src.Height() {
		return fmt.Errorf("%w: %vx%v into %vx%v", ErrSizeMismatch, src.Width(), src.Height(), dst.Width(), dst.Height())
	}

	c, err := newConverter(src.Format(), dst.Format(), collect(opts))
	if err != nil {
		return err
	}
	bitmap.Logger().Debug("convert", "path", c.path, "src", src.Format(), "dst", dst.Format())

	if c.path == pathCopy {
		return dst.SetPixels(0, 0, src)
	}

	ss, ds := src.Format().ByteSize(), dst.Format().ByteSize()
	for y := range src.Height() {
		srow := src.Row(y)
		drow, err := dst.MutableRow(y)
		if err != nil {
			return err
		}
		for x := range src.Width() {
			c.pixel(drow[x*ds:], srow[x*ss:])
		}
	}
	return nil
}
