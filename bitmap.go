package bitmap

import (
	"image"
	"image/color"

	"deedles.dev/bitmap/format"
)

// Bitmap exclusively owns a region of pixel memory.
type Bitmap struct {
	info Info
	pix  []byte
}

// New allocates a zeroed Bitmap with the layout described by info.
func New(info Info) (*Bitmap, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	return newBitmap(info), nil
}

func newBitmap(info Info) *Bitmap {
	return &Bitmap{
		info: info,
		pix:  make([]byte, info.Stride*info.Height),
	}
}

// NewBitmap allocates a zeroed Bitmap without row padding.
func NewBitmap(width, height int, f format.Format) (*Bitmap, error) {
	info, err := NewInfo(width, height, f)
	if err != nil {
		return nil, err
	}
	return newBitmap(info), nil
}

// Adopt returns a Bitmap that takes ownership of pix. The caller must
// not use pix afterwards.
func Adopt(pix []byte, info Info) (*Bitmap, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	if len(pix) < info.Len() {
		return nil, ErrDataTooSmall
	}
	return &Bitmap{info: info, pix: pix}, nil
}

// View returns a writable view of the whole bitmap. It never copies.
func (b *Bitmap) View() View {
	n := b.info.Len()
	return View{
		info:     b.info,
		pix:      b.pix[:n:n],
		writable: true,
		kind:     OwnedMemory,
	}
}

func (b *Bitmap) Info() Info { return b.info }

func (b *Bitmap) Width() int { return b.info.Width }

func (b *Bitmap) Height() int { return b.info.Height }

func (b *Bitmap) Stride() int { return b.info.Stride }

func (b *Bitmap) Format() format.Format { return b.info.Format }

// Pix returns the bitmap's memory.
func (b *Bitmap) Pix() []byte { return b.pix }

func (b *Bitmap) Slice(x, y, w, h int) (View, error) {
	return b.View().Slice(x, y, w, h)
}

func (b *Bitmap) SetPixels(dstX, dstY int, src View) error {
	return b.View().SetPixels(dstX, dstY, src)
}

// Clone returns a deep copy of b with the same stride.
func (b *Bitmap) Clone() *Bitmap {
	return &Bitmap{
		info: b.info,
		pix:  append([]byte(nil), b.pix...),
	}
}

func (b *Bitmap) PinForRead(fn func(Pointer) error) error {
	return b.View().PinForRead(fn)
}

func (b *Bitmap) PinForWrite(fn func(Pointer) error) error {
	return b.View().PinForWrite(fn)
}

func (b *Bitmap) Bounds() image.Rectangle { return b.info.Bounds() }

func (b *Bitmap) ColorModel() color.Model { return format.Model{Format: b.info.Format} }

func (b *Bitmap) At(x, y int) color.Color { return b.View().At(x, y) }

func (b *Bitmap) Set(x, y int, c color.Color) { b.View().Set(x, y, c) }
