package geom

import (
	"fmt"
	"image"
	"math"
)

// Point is a two-dimensional point.
type Point[T Scalar] struct {
	X, Y T
}

// Pt is shorthand for Point[T]{X: x, Y: y}.
func Pt[T Scalar](x, y T) Point[T] {
	return Point[T]{X: x, Y: y}
}

// PointConv converts a point between coordinate types.
func PointConv[To, From Scalar](p Point[From]) Point[To] {
	return Point[To]{X: To(p.X), Y: To(p.Y)}
}

// FromImagePoint converts an image.Point.
func FromImagePoint(p image.Point) Point[int] {
	return Point[int]{X: p.X, Y: p.Y}
}

func (p Point[T]) String() string {
	return fmt.Sprintf("(%v,%v)", p.X, p.Y)
}

func (p Point[T]) Add(q Point[T]) Point[T] {
	return Point[T]{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point[T]) Sub(q Point[T]) Point[T] {
	return Point[T]{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point[T]) Mul(v T) Point[T] {
	return Point[T]{X: p.X * v, Y: p.Y * v}
}

func (p Point[T]) Div(v T) Point[T] {
	return Point[T]{X: p.X / v, Y: p.Y / v}
}

// In reports whether p is inside of r.
func (p Point[T]) In(r Rect[T]) bool {
	return r.Min.X <= p.X && p.X < r.Max.X && r.Min.Y <= p.Y && p.Y < r.Max.Y
}

// IsFinite reports whether both coordinates are neither infinite nor
// NaN.
func (p Point[T]) IsFinite() bool {
	x, y := float64(p.X), float64(p.Y)
	return !math.IsNaN(x) && !math.IsInf(x, 0) && !math.IsNaN(y) && !math.IsInf(y, 0)
}

func (p Point[T]) ImagePoint() image.Point {
	return image.Point{X: int(p.X), Y: int(p.Y)}
}
