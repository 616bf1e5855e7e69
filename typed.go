package bitmap

import (
	"unsafe"

	"deedles.dev/bitmap/format"
	"deedles.dev/bitmap/pixel"
)

// Typed is a View whose rows can be accessed as slices of a pixel
// type.
type Typed[P pixel.Pixel] struct {
	view View
}

// NewTyped checks that v's format is exactly the one that P describes
// and that its memory is suitably aligned for P.
func NewTyped[P pixel.Pixel](v View) (Typed[P], error) {
	var zero P
	if f := zero.Format(); f != v.info.Format || uintptr(f.ByteSize()) != unsafe.Sizeof(zero) {
		return Typed[P]{}, &format.NotSupportedError{Src: v.info.Format, Dst: f}
	}

	align := unsafe.Alignof(zero)
	if uintptr(unsafe.Pointer(unsafe.SliceData(v.pix)))%align != 0 || uintptr(v.info.Stride)%align != 0 {
		return Typed[P]{}, ErrMisaligned
	}

	return Typed[P]{view: v}, nil
}

func (t Typed[P]) View() View { return t.view }

// Row returns row y as a slice of pixels. The pixels of a read-only
// view must not be modified.
func (t Typed[P]) Row(y int) []P {
	b := t.view.Row(y)
	return unsafe.Slice((*P)(unsafe.Pointer(unsafe.SliceData(b))), t.view.info.Width)
}

func (t Typed[P]) At(x, y int) P {
	return t.Row(y)[x]
}

// Set sets the pixel at (x, y). It does nothing for read-only views.
func (t Typed[P]) Set(x, y int, p P) {
	if !t.view.writable {
		return
	}
	t.Row(y)[x] = p
}
