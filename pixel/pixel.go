// Package pixel defines structs whose memory layout matches predefined
// pixel formats byte for byte, so that rows of pixel memory can be
// used as slices of them. Each type is also a color.Color.
package pixel

import (
	"image/color"

	"deedles.dev/bitmap/format"
)

// Pixel is implemented by types whose memory layout is exactly that
// of the format that they return.
type Pixel interface {
	comparable
	Format() format.Format
}

type Gray8 struct{ Y uint8 }

func (Gray8) Format() format.Format { return format.Gray8 }

func (p Gray8) RGBA() (r, g, b, a uint32) { return color.Gray{Y: p.Y}.RGBA() }

type Alpha8 struct{ A uint8 }

func (Alpha8) Format() format.Format { return format.Alpha8 }

func (p Alpha8) RGBA() (r, g, b, a uint32) { return color.Alpha{A: p.A}.RGBA() }

type RGB24 struct{ R, G, B uint8 }

func (RGB24) Format() format.Format { return format.RGB24 }

func (p RGB24) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xFF}.RGBA()
}

type BGR24 struct{ B, G, R uint8 }

func (BGR24) Format() format.Format { return format.BGR24 }

func (p BGR24) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xFF}.RGBA()
}

// RGBA32 has straight alpha.
type RGBA32 struct{ R, G, B, A uint8 }

func (RGBA32) Format() format.Format { return format.RGBA32 }

func (p RGBA32) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}.RGBA()
}

// BGRA32 has straight alpha.
type BGRA32 struct{ B, G, R, A uint8 }

func (BGRA32) Format() format.Format { return format.BGRA32 }

func (p BGRA32) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}.RGBA()
}

type ARGB32 struct{ A, R, G, B uint8 }

func (ARGB32) Format() format.Format { return format.ARGB32 }

func (p ARGB32) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}.RGBA()
}

type RGBA32Premul struct{ R, G, B, A uint8 }

func (RGBA32Premul) Format() format.Format { return format.RGBA32Premul }

func (p RGBA32Premul) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: p.A}.RGBA()
}

type BGRA32Premul struct{ B, G, R, A uint8 }

func (BGRA32Premul) Format() format.Format { return format.BGRA32Premul }

func (p BGRA32Premul) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: p.A}.RGBA()
}
