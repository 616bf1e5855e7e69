package bitmap

import (
	"errors"
	"runtime"
	"sync/atomic"
)

// State is the lifecycle state of a Foreign.
type State uint8

const (
	Uninitialized State = iota
	Initialized
	Disposed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Initialized:
		return "Initialized"
	case Disposed:
		return "Disposed"
	default:
		return "Unknown"
	}
}

var leakCheck atomic.Bool

// SetLeakCheck enables or disables a debugging check that logs a
// warning when a Foreign is garbage collected without having been
// disposed. It only affects Foreigns created after the call.
func SetLeakCheck(enabled bool) {
	leakCheck.Store(enabled)
}

// Foreign adapts memory owned outside of the package, such as a
// decoder's output or a device's framebuffer, into a Lender. It moves
// from Uninitialized to Initialized once Initialize hands it the
// memory, and to Disposed when Dispose is called. Every method except
// Dispose fails with ErrDisposed after that.
//
// A Foreign is not safe for concurrent use and its lock is not
// reentrant.
type Foreign struct {
	state  State
	ptr    Pointer
	locked bool
	dirty  bool

	release func(Pointer) error
	unlock  func(Pointer, bool) error
}

// ForeignOption configures a Foreign.
type ForeignOption func(*Foreign)

// WithRelease sets a function that hands the memory back to its owner
// when the Foreign is disposed.
func WithRelease(release func(Pointer) error) ForeignOption {
	return func(m *Foreign) {
		m.release = release
	}
}

// WithUnlockHook sets a function called on every Unlock with whether
// or not the memory was changed while locked. If the hook fails, the
// memory stays dirty.
func WithUnlockHook(unlock func(p Pointer, dirty bool) error) ForeignOption {
	return func(m *Foreign) {
		m.unlock = unlock
	}
}

func NewForeign(opts ...ForeignOption) *Foreign {
	m := &Foreign{}
	for _, opt := range opts {
		opt(m)
	}

	if leakCheck.Load() {
		runtime.SetFinalizer(m, (*Foreign).finalize)
	}
	return m
}

func (m *Foreign) finalize() {
	if m.state != Disposed {
		Logger().Warn("foreign memory was never disposed", "state", m.state, "info", m.ptr.info)
	}
}

// Initialize hands the Foreign the memory that it manages.
func (m *Foreign) Initialize(p Pointer) error {
	switch m.state {
	case Initialized:
		return ErrAlreadyInitialized
	case Disposed:
		return ErrDisposed
	}
	if p.IsNil() {
		return ErrNilPointer
	}

	p.synchronized = true
	m.ptr = p
	m.state = Initialized
	return nil
}

func (m *Foreign) check() error {
	switch m.state {
	case Uninitialized:
		return ErrNotInitialized
	case Disposed:
		return ErrDisposed
	}
	return nil
}

func (m *Foreign) State() State { return m.state }

// Dirty reports whether NotifyChanged has been called since the memory
// was last unlocked successfully.
func (m *Foreign) Dirty() bool { return m.dirty }

func (m *Foreign) Info() (Info, error) {
	if err := m.check(); err != nil {
		return Info{}, err
	}
	return m.ptr.info, nil
}

func (m *Foreign) Lock() (Pointer, error) {
	if err := m.check(); err != nil {
		return Pointer{}, err
	}
	if m.locked {
		return Pointer{}, ErrLocked
	}

	m.locked = true
	return m.ptr, nil
}

func (m *Foreign) Unlock() error {
	if err := m.check(); err != nil {
		return err
	}
	if !m.locked {
		return ErrNotLocked
	}

	m.locked = false
	if m.unlock != nil {
		err := m.unlock(m.ptr, m.dirty)
		if err != nil {
			return err
		}
	}
	m.dirty = false
	return nil
}

func (m *Foreign) NotifyChanged() {
	if m.state == Initialized {
		m.dirty = true
	}
}

func (m *Foreign) PinForRead(fn func(Pointer) error) error {
	return Lend(m, ReadAccess, fn)
}

func (m *Foreign) PinForWrite(fn func(Pointer) error) error {
	return Lend(m, WriteAccess, fn)
}

// Dispose unlocks the memory if necessary and hands it back to its
// owner. Disposing more than once does nothing.
func (m *Foreign) Dispose() error {
	if m.state == Disposed {
		return nil
	}

	var errs []error
	if m.locked && m.unlock != nil {
		errs = append(errs, m.unlock(m.ptr, m.dirty))
	}
	if m.state == Initialized && m.release != nil {
		errs = append(errs, m.release(m.ptr))
	}

	m.state = Disposed
	m.ptr = Pointer{}
	m.locked = false
	m.dirty = false
	runtime.SetFinalizer(m, nil)

	err := errors.Join(errs...)
	if err != nil {
		Logger().Warn("release foreign memory", "err", err)
	}
	return err
}

// Close implements io.Closer by calling Dispose.
func (m *Foreign) Close() error {
	return m.Dispose()
}
