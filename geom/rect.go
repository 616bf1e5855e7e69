package geom

import (
	"fmt"
	"image"
)

// Rect is a rectangle containing the points with Min.X <= X < Max.X
// and Min.Y <= Y < Max.Y.
type Rect[T Scalar] struct {
	Min, Max Point[T]
}

// Rt is shorthand for Rect[T]{Min: Pt(x0, y0), Max: Pt(x1, y1)}. The
// returned rectangle has its corners swapped if necessary so that it is
// well-formed.
func Rt[T Scalar](x0, y0, x1, y1 T) Rect[T] {
	return Rect[T]{Min: Pt(x0, y0), Max: Pt(x1, y1)}.Canon()
}

// RectAt returns a rectangle with its top-left corner at origin and the
// given size.
func RectAt[T Scalar](origin, size Point[T]) Rect[T] {
	return Rect[T]{Min: origin, Max: origin.Add(size)}
}

// FromImageRect converts an image.Rectangle.
func FromImageRect(r image.Rectangle) Rect[int] {
	return Rect[int]{Min: FromImagePoint(r.Min), Max: FromImagePoint(r.Max)}
}

func (r Rect[T]) String() string {
	return fmt.Sprintf("%v-%v", r.Min, r.Max)
}

func (r Rect[T]) Dx() T { return r.Max.X - r.Min.X }

func (r Rect[T]) Dy() T { return r.Max.Y - r.Min.Y }

func (r Rect[T]) Size() Point[T] { return Pt(r.Dx(), r.Dy()) }

// Empty reports whether r contains no points.
func (r Rect[T]) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Canon returns the canonical version of r, with Min and Max swapped
// where necessary.
func (r Rect[T]) Canon() Rect[T] {
	if r.Max.X < r.Min.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Max.Y < r.Min.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// Add translates r by p.
func (r Rect[T]) Add(p Point[T]) Rect[T] {
	return Rect[T]{Min: r.Min.Add(p), Max: r.Max.Add(p)}
}

// Sub translates r by -p.
func (r Rect[T]) Sub(p Point[T]) Rect[T] {
	return Rect[T]{Min: r.Min.Sub(p), Max: r.Max.Sub(p)}
}

// Resize returns r with its Min unchanged and its size set to size.
func (r Rect[T]) Resize(size Point[T]) Rect[T] {
	return Rect[T]{Min: r.Min, Max: r.Min.Add(size)}
}

func (r Rect[T]) Center() Point[T] {
	return r.Min.Add(r.Size().Div(2))
}

// CenterAt translates r so that its center is p.
func (r Rect[T]) CenterAt(p Point[T]) Rect[T] {
	return r.Add(p.Sub(r.Center()))
}

// Intersect returns the largest rectangle contained by both r and s.
// If they don't overlap, the zero rectangle is returned.
func (r Rect[T]) Intersect(s Rect[T]) Rect[T] {
	r.Min.X = max(r.Min.X, s.Min.X)
	r.Min.Y = max(r.Min.Y, s.Min.Y)
	r.Max.X = min(r.Max.X, s.Max.X)
	r.Max.Y = min(r.Max.Y, s.Max.Y)
	if r.Empty() {
		return Rect[T]{}
	}
	return r
}

// Union returns the smallest rectangle that contains both r and s.
// Empty rectangles are ignored.
func (r Rect[T]) Union(s Rect[T]) Rect[T] {
	switch {
	case r.Empty():
		return s
	case s.Empty():
		return r
	}

	r.Min.X = min(r.Min.X, s.Min.X)
	r.Min.Y = min(r.Min.Y, s.Min.Y)
	r.Max.X = max(r.Max.X, s.Max.X)
	r.Max.Y = max(r.Max.Y, s.Max.Y)
	return r
}

// Contains reports whether s is entirely inside of r. Empty rectangles
// are contained by everything.
func (r Rect[T]) Contains(s Rect[T]) bool {
	if s.Empty() {
		return true
	}
	return r.Min.X <= s.Min.X && s.Max.X <= r.Max.X &&
		r.Min.Y <= s.Min.Y && s.Max.Y <= r.Max.Y
}

// Fit returns the largest rectangle with the aspect ratio of size that
// fits inside of r, centered in r. Integer results are rounded down.
func (r Rect[T]) Fit(size Point[T]) Rect[T] {
	if size.X <= 0 || size.Y <= 0 || r.Empty() {
		return Rect[T]{Min: r.Center(), Max: r.Center()}
	}

	w, h := r.Dx(), size.Y*r.Dx()/size.X
	if h > r.Dy() {
		w, h = size.X*r.Dy()/size.Y, r.Dy()
	}
	return Align(r, Rect[T]{Max: Pt(w, h)}, EdgeNone)
}

func (r Rect[T]) ImageRect() image.Rectangle {
	return image.Rectangle{Min: r.Min.ImagePoint(), Max: r.Max.ImagePoint()}
}
