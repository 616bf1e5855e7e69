package format

import "image/color"

// Model implements color.Model using a Format.
type Model struct {
	Format Format
}

func (m Model) Convert(c color.Color) color.Color {
	if fc, ok := c.(*Color); ok && fc.Format == m.Format {
		return fc
	}

	fc := Color{Format: m.Format}
	r, g, b, a := c.RGBA()
	m.Format.Write(fc.Slice(), r, g, b, a)
	return &fc
}

// Color implements color.Color using a Format.
type Color struct {
	Format Format

	// Data contains the pixel data for the color. Only some bytes of
	// the array are used, dependant on the return value of
	// Format.ByteSize.
	Data [maxSize]byte
}

// ColorOf returns c converted to f.
func ColorOf(f Format, c color.Color) *Color {
	return Model{Format: f}.Convert(c).(*Color)
}

// Slice returns a slice of Data correctly sized for the color's format.
func (c *Color) Slice() []byte {
	size := c.Format.ByteSize()
	return c.Data[:size:size]
}

func (c *Color) RGBA() (r, g, b, a uint32) {
	return c.Format.Read(c.Slice())
}
