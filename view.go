package bitmap

import (
	"bytes"
	"image"
	"image/color"

	"deedles.dev/bitmap/format"
	"deedles.dev/bitmap/geom"
)

// MemoryKind identifies who owns the memory behind a View.
type MemoryKind uint8

const (
	// BorrowedMemory is memory handed to NewView by the caller.
	BorrowedMemory MemoryKind = iota

	// OwnedMemory belongs to a Bitmap.
	OwnedMemory

	// ForeignMemory was reached through a Pointer.
	ForeignMemory
)

func (k MemoryKind) String() string {
	switch k {
	case BorrowedMemory:
		return "Borrowed"
	case OwnedMemory:
		return "Owned"
	case ForeignMemory:
		return "Foreign"
	default:
		return "Unknown"
	}
}

// View is a non-owning reference to pixel memory. A View must not be
// used after the memory that it references has been released.
//
// View implements image.Image and draw.Image. Set silently does
// nothing on read-only views, just as it does for points out of
// bounds.
type View struct {
	info     Info
	pix      []byte
	writable bool
	kind     MemoryKind
}

// NewView returns a writable view of pix.
func NewView(pix []byte, info Info) (View, error) {
	return newView(pix, info, true, BorrowedMemory)
}

// NewReadOnlyView returns a view of pix that refuses to modify it.
func NewReadOnlyView(pix []byte, info Info) (View, error) {
	return newView(pix, info, false, BorrowedMemory)
}

func newView(pix []byte, info Info, writable bool, kind MemoryKind) (View, error) {
	if err := info.Validate(); err != nil {
		return View{}, err
	}
	n := info.Len()
	if len(pix) < n {
		return View{}, ErrDataTooSmall
	}

	return View{
		info:     info,
		pix:      pix[:n:n],
		writable: writable,
		kind:     kind,
	}, nil
}

func (v View) Info() Info { return v.info }

func (v View) Width() int { return v.info.Width }

func (v View) Height() int { return v.info.Height }

func (v View) Stride() int { return v.info.Stride }

func (v View) Format() format.Format { return v.info.Format }

func (v View) Writable() bool { return v.writable }

func (v View) Memory() MemoryKind { return v.kind }

// IsZero reports whether v is the zero View, which references no
// memory at all.
func (v View) IsZero() bool { return v.pix == nil }

// ReadOnly returns a read-only copy of v.
func (v View) ReadOnly() View {
	v.writable = false
	return v
}

// Bytes returns the memory referenced by v, from the first byte of the
// first pixel to the last byte of the last pixel. The bytes of a
// read-only view must not be modified.
func (v View) Bytes() []byte { return v.pix }

// Row returns the pixel bytes of row y, excluding padding. It panics
// if y is out of range. The bytes of a read-only view must not be
// modified.
func (v View) Row(y int) []byte {
	if y < 0 || y >= v.info.Height {
		panic("bitmap: row out of range")
	}
	off := y * v.info.Stride
	end := off + v.info.RowBytes()
	return v.pix[off:end:end]
}

// MutableRow is like Row but fails for read-only views.
func (v View) MutableRow(y int) ([]byte, error) {
	if !v.writable {
		return nil, ErrReadOnly
	}
	return v.Row(y), nil
}

// Pixel returns the bytes of the pixel at (x, y). It panics if the
// point is out of bounds.
func (v View) Pixel(x, y int) []byte {
	if !(geom.Pt(x, y).In(v.info.Rect())) {
		panic("bitmap: pixel out of bounds")
	}
	off := v.info.Offset(x, y)
	end := off + v.info.PixelSize()
	return v.pix[off:end:end]
}

// Slice returns a view of the w×h rectangle with its top-left corner
// at (x, y). The returned view shares memory and stride with v. It
// fails if the rectangle is empty or not entirely inside of v.
func (v View) Slice(x, y, w, h int) (View, error) {
	sub, off, err := v.info.slice(geom.RectAt(geom.Pt(x, y), geom.Pt(w, h)))
	if err != nil {
		return View{}, err
	}

	v.info = sub
	v.pix = v.pix[off : off+sub.Len() : off+sub.Len()]
	return v, nil
}

// SetPixels copies src into v with the top-left corner of src at
// (dstX, dstY). Parts of src that fall outside of v are clipped rather
// than treated as an error. The formats of v and src must be identical.
// v and src must not overlap.
func (v View) SetPixels(dstX, dstY int, src View) error {
	if !v.writable {
		return ErrReadOnly
	}
	if src.IsZero() {
		return nil
	}
	if src.info.Format != v.info.Format {
		return &format.NotSupportedError{Src: src.info.Format, Dst: v.info.Format}
	}

	dst := geom.RectAt(geom.Pt(dstX, dstY), geom.Pt(src.info.Width, src.info.Height))
	clip := dst.Intersect(v.info.Rect())
	if clip.Empty() {
		return nil
	}
	sp := clip.Min.Sub(dst.Min)

	n := clip.Dx() * v.info.PixelSize()
	for y := range clip.Dy() {
		s := src.info.Offset(sp.X, sp.Y+y)
		d := v.info.Offset(clip.Min.X, clip.Min.Y+y)
		copy(v.pix[d:d+n], src.pix[s:s+n])
	}
	return nil
}

// Fill sets every pixel of v to c.
func (v View) Fill(c color.Color) error {
	if !v.writable {
		return ErrReadOnly
	}

	px := format.ColorOf(v.info.Format, c).Slice()
	first := v.Row(0)
	for i := 0; i < len(first); i += len(px) {
		copy(first[i:], px)
	}
	for y := 1; y < v.info.Height; y++ {
		copy(v.Row(y), first)
	}
	return nil
}

// Clear sets every byte of every pixel of v to zero. Padding between
// rows is left alone.
func (v View) Clear() error {
	if !v.writable {
		return ErrReadOnly
	}
	for y := range v.info.Height {
		clear(v.Row(y))
	}
	return nil
}

// Equal reports whether v and o have the same size, format and pixel
// bytes. Strides and padding are ignored.
func (v View) Equal(o View) bool {
	if v.info.Width != o.info.Width || v.info.Height != o.info.Height || v.info.Format != o.info.Format {
		return false
	}
	for y := range v.info.Height {
		if !bytes.Equal(v.Row(y), o.Row(y)) {
			return false
		}
	}
	return true
}

// Copy returns a new Bitmap containing a packed copy of v, or nil if v
// is the zero View.
func (v View) Copy() *Bitmap {
	if v.IsZero() {
		return nil
	}
	b := newBitmap(Info{
		Width:  v.info.Width,
		Height: v.info.Height,
		Stride: v.info.RowBytes(),
		Format: v.info.Format,
	})
	b.View().SetPixels(0, 0, v)
	return b
}

func (v View) Bounds() image.Rectangle { return v.info.Bounds() }

func (v View) ColorModel() color.Model { return format.Model{Format: v.info.Format} }

func (v View) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(v.Bounds())) {
		return &format.Color{Format: v.info.Format}
	}

	c := format.Color{Format: v.info.Format}
	copy(c.Slice(), v.Pixel(x, y))
	return &c
}

func (v View) Set(x, y int, c color.Color) {
	if !v.writable || !(image.Point{x, y}.In(v.Bounds())) {
		return
	}
	copy(v.Pixel(x, y), format.ColorOf(v.info.Format, c).Slice())
}
