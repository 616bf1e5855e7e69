// Package raster converts convex polygons into horizontal spans of
// pixels.
package raster

import (
	"image/color"
	"iter"
	"math"

	"deedles.dev/bitmap"
	"deedles.dev/bitmap/format"
	"deedles.dev/bitmap/geom"
)

// Span is a run of pixels in row Y from X0 up to but not including
// X1.
type Span struct {
	Y, X0, X1 int
}

// Len returns the number of pixels in s.
func (s Span) Len() int { return s.X1 - s.X0 }

const unset = math.MinInt

// Rasterizer finds the spans covered by convex polygons in a raster of
// a fixed size. Its buffers are reused from one polygon to the next.
//
// A Rasterizer is not safe for concurrent use, and only one of the
// sequences returned by Spans may be iterated at a time.
type Rasterizer struct {
	width, height int
	left, right   []int
}

func New(width, height int) *Rasterizer {
	var r Rasterizer
	r.Resize(width, height)
	return &r
}

// Size returns the size of the raster.
func (r *Rasterizer) Size() (width, height int) {
	return r.width, r.height
}

// Resize changes the size of the raster. The existing buffers are
// kept if they are large enough.
func (r *Rasterizer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	r.width, r.height = width, height

	if cap(r.left) < height {
		r.left = make([]int, height)
		r.right = make([]int, height)
	}
	r.left = r.left[:height]
	r.right = r.right[:height]
}

// Spans yields the spans covered by the convex polygon with the given
// vertices, in order of increasing Y. Edges are sampled at the centres
// of rows, so a row is covered when y+0.5 lies inside of the polygon.
// Polygons that share an edge never share a pixel.
func (r *Rasterizer) Spans(vertices []geom.Point[float64]) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		minY, maxY := r.scan(vertices)
		for y := minY; y < maxY; y++ {
			left, right := r.left[y], r.right[y]
			if left == unset || right == unset || left == right {
				continue
			}
			if !yield(Span{Y: y, X0: min(left, right), X1: max(left, right)}) {
				return
			}
		}
	}
}

// scan walks the edges of the polygon and records their intersections
// with the rows that they cross. It returns the range of rows touched.
func (r *Rasterizer) scan(vertices []geom.Point[float64]) (minY, maxY int) {
	minY, maxY = r.height, 0
	for i, a := range vertices {
		b := vertices[(i+1)%len(vertices)]
		checkFinite(a, b)
		y0, y1 := r.rows(a.Y, b.Y)
		if y0 < y1 {
			minY, maxY = min(minY, y0), max(maxY, y1)
		}
	}
	if minY >= maxY {
		return 0, 0
	}

	for y := minY; y < maxY; y++ {
		r.left[y], r.right[y] = unset, unset
	}

	for i, a := range vertices {
		b := vertices[(i+1)%len(vertices)]
		y0, y1 := r.rows(a.Y, b.Y)
		if y0 >= y1 {
			continue
		}

		side := r.right
		if b.Y < a.Y {
			side = r.left
		}

		top, bottom := a, b
		if top.Y > bottom.Y {
			top, bottom = bottom, top
		}

		slope := (bottom.X - top.X) / (bottom.Y - top.Y)
		for y := y0; y < y1; y++ {
			x := top.X + (float64(y)+0.5-top.Y)*slope
			side[y] = r.col(x)
		}
	}
	return minY, maxY
}

// rows returns the rows whose centres lie in [min(y0, y1), max(y0,
// y1)), clamped to the raster. Horizontal edges cross no rows.
func (r *Rasterizer) rows(y0, y1 float64) (start, end int) {
	if y0 == y1 {
		return 0, 0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return r.row(math.Ceil(y0 - 0.5)), r.row(math.Ceil(y1 - 0.5))
}

// row clamps v to [0, height] and converts it to a row index.
func (r *Rasterizer) row(v float64) int {
	if !(v > 0) {
		return 0
	}
	if v > float64(r.height) {
		return r.height
	}
	return int(v)
}

// col clamps x to [0, width] and rounds it to the nearest pixel
// boundary, with halves rounding up.
func (r *Rasterizer) col(x float64) int {
	if !(x > 0) {
		return 0
	}
	if x > float64(r.width) {
		return r.width
	}
	return int(math.Floor(x + 0.5))
}

// FillFunc calls fn for every span covered by the polygon.
func (r *Rasterizer) FillFunc(vertices []geom.Point[float64], fn func(Span)) {
	for s := range r.Spans(vertices) {
		fn(s)
	}
}

// Fill sets every pixel of dst covered by the polygon to c. The
// rasterizer is resized to match dst.
func (r *Rasterizer) Fill(dst bitmap.View, vertices []geom.Point[float64], c color.Color) error {
	if !dst.Writable() {
		return bitmap.ErrReadOnly
	}
	r.Resize(dst.Width(), dst.Height())

	px := format.ColorOf(dst.Format(), c).Slice()
	size := len(px)
	for s := range r.Spans(vertices) {
		row, _ := dst.MutableRow(s.Y)
		for x := s.X0; x < s.X1; x++ {
			copy(row[x*size:], px)
		}
	}
	return nil
}
