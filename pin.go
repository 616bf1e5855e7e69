package bitmap

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"
)

// Access is the kind of access requested while memory is pinned or
// locked.
type Access uint8

const (
	ReadAccess Access = iota
	WriteAccess
)

func (a Access) String() string {
	if a == WriteAccess {
		return "write"
	}
	return "read"
}

// PinForRead pins the memory of v and calls fn with a read-only
// Pointer to it. The memory won't be moved or freed until fn returns,
// and the pin is released exactly once however fn exits.
func (v View) PinForRead(fn func(Pointer) error) error {
	return v.pin(false, fn)
}

// PinForWrite is like PinForRead but the Pointer may be written
// through. It fails for read-only views.
func (v View) PinForWrite(fn func(Pointer) error) error {
	if !v.writable {
		return ErrReadOnly
	}
	return v.pin(true, fn)
}

func (v View) pin(write bool, fn func(Pointer) error) error {
	if len(v.pix) == 0 {
		return ErrNilPointer
	}

	var pinner runtime.Pinner
	defer pinner.Unpin()

	first := &v.pix[0]
	pinner.Pin(first)

	return fn(Pointer{
		ptr:      unsafe.Pointer(first),
		info:     v.info,
		writable: write,
	})
}

// Lender is implemented by foreign owners of pixel memory that can
// lend it out without copying.
type Lender interface {
	// Lock acquires the memory. Every successful call must be paired
	// with exactly one call to Unlock.
	Lock() (Pointer, error)

	// Unlock releases the memory acquired by Lock.
	Unlock() error

	// NotifyChanged marks the locked memory as modified for owners
	// that need to be told about it.
	NotifyChanged()
}

// Lend locks the memory of l, calls fn with it, and unlocks it again.
// Unlock is called whether fn returns an error, succeeds, or panics.
// For WriteAccess, NotifyChanged is called before unlocking, since
// memory may have been changed even if fn failed part way.
func Lend(l Lender, access Access, fn func(Pointer) error) (err error) {
	p, err := l.Lock()
	if err != nil {
		return fmt.Errorf("lock: %w", err)
	}
	defer func() {
		if access == WriteAccess {
			l.NotifyChanged()
		}
		if uerr := l.Unlock(); uerr != nil {
			err = errors.Join(err, fmt.Errorf("unlock: %w", uerr))
		}
	}()

	p.writable = access == WriteAccess
	return fn(p)
}
