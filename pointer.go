package bitmap

import (
	"unsafe"
)

// Pointer is a raw view of pixel memory for handing to and receiving
// from foreign code. A Pointer makes no promises about the lifetime of
// the memory it points to. Synchronized reports whether the memory
// belongs to an owner that must be unlocked after use.
type Pointer struct {
	ptr          unsafe.Pointer
	info         Info
	writable     bool
	synchronized bool
}

// NewPointer wraps memory starting at ptr. The caller guarantees that
// at least info.Len() bytes are addressable there for as long as the
// Pointer and anything derived from it are in use.
func NewPointer(ptr unsafe.Pointer, info Info, synchronized bool) (Pointer, error) {
	if ptr == nil {
		return Pointer{}, ErrNilPointer
	}
	if err := info.Validate(); err != nil {
		return Pointer{}, err
	}

	return Pointer{
		ptr:          ptr,
		info:         info,
		writable:     true,
		synchronized: synchronized,
	}, nil
}

func (p Pointer) Addr() unsafe.Pointer { return p.ptr }

func (p Pointer) Info() Info { return p.info }

func (p Pointer) Synchronized() bool { return p.synchronized }

func (p Pointer) Writable() bool { return p.writable }

func (p Pointer) IsNil() bool { return p.ptr == nil }

// Bytes returns the memory that p points to.
func (p Pointer) Bytes() []byte {
	if p.ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p.ptr), p.info.Len())
}

// Borrow returns a View of the memory. The view is only valid for as
// long as the memory is, which for a pinned or locked Pointer means
// until the pin or lock is released.
func (p Pointer) Borrow() View {
	if p.ptr == nil {
		return View{}
	}
	n := p.info.Len()
	return View{
		info:     p.info,
		pix:      unsafe.Slice((*byte)(p.ptr), n),
		writable: p.writable,
		kind:     ForeignMemory,
	}
}

// Copy copies the memory into a new Bitmap.
func (p Pointer) Copy() (*Bitmap, error) {
	if p.ptr == nil {
		return nil, ErrNilPointer
	}
	return p.Borrow().Copy(), nil
}
