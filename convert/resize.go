package convert

import (
	"fmt"

	"deedles.dev/bitmap"
	"deedles.dev/bitmap/format"
)

// Resize returns a new Bitmap containing src scaled to w by h pixels
// in the same format.
func Resize(src bitmap.View, w, h int, opts ...Option) (*bitmap.Bitmap, error) {
	dst, err := bitmap.NewBitmap(w, h, src.Format())
	if err != nil {
		return nil, err
	}

	err = ResizeInto(dst.View(), src, opts...)
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// ResizeInto scales src to fill dst. Both must have the same format.
// No filtering is done: with Nearest, every destination pixel is a copy
// of a source pixel chosen with integer arithmetic so that large images
// don't drift.
func ResizeInto(dst, src bitmap.View, opts ...Option) error {
	if !dst.Writable() {
		return bitmap.ErrReadOnly
	}
	if dst.Format() != src.Format() {
		return &format.NotSupportedError{Src: src.Format(), Dst: dst.Format()}
	}
	if src.IsZero() || dst.IsZero() {
		return fmt.Errorf("%w: cannot resize empty view", ErrSizeMismatch)
	}

	o := collect(opts)
	bitmap.Logger().Debug("resize", "mode", o.resize, "src", src.Info(), "dst", dst.Info())

	if dst.Width() == src.Width() && dst.Height() == src.Height() {
		return dst.SetPixels(0, 0, src)
	}

	switch o.resize {
	case Average:
		resizeAverage(dst, src)
	default:
		resizeNearest(dst, src)
	}
	return nil
}

// indices maps each of n destination positions to the source position
// under its centre in a source of length sn.
func indices(n, sn int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = (2*i + 1) * sn / (2 * n)
	}
	return s
}

func resizeNearest(dst, src bitmap.View) {
	size := src.Format().ByteSize()
	xs := indices(dst.Width(), src.Width())
	ys := indices(dst.Height(), src.Height())

	prev := -1
	for y, sy := range ys {
		drow, _ := dst.MutableRow(y)
		if sy == prev {
			copy(drow, dst.Row(y-1))
			continue
		}
		prev = sy

		srow := src.Row(sy)
		for x, sx := range xs {
			copy(drow[x*size:(x+1)*size], srow[sx*size:])
		}
	}
}

// span returns the range of source positions covered by destination
// position i, which always contains at least one position.
func span(i, n, sn int) (lo, hi int) {
	lo = i * sn / n
	hi = max((i+1)*sn/n, lo+1)
	return lo, hi
}

// resizeAverage averages the raw channel values of the source pixels
// under each destination pixel.
func resizeAverage(dst, src bitmap.View) {
	f := src.Format()
	size := f.ByteSize()
	channels := f.Channels()
	sums := make([]uint64, len(channels))

	for y := range dst.Height() {
		drow, _ := dst.MutableRow(y)
		y0, y1 := span(y, dst.Height(), src.Height())
		for x := range dst.Width() {
			x0, x1 := span(x, dst.Width(), src.Width())

			clear(sums)
			for sy := y0; sy < y1; sy++ {
				srow := src.Row(sy)
				for sx := x0; sx < x1; sx++ {
					w := f.Word(srow[sx*size:])
					for i, c := range channels {
						sums[i] += uint64(c.Extract(w))
					}
				}
			}

			n := uint64((y1 - y0) * (x1 - x0))
			var out uint64
			for i, c := range channels {
				out = c.Insert(out, uint32((sums[i]+n/2)/n))
			}
			f.PutWord(drow[x*size:], out)
		}
	}
}
