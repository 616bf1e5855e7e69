package bitmap_test

import (
	"errors"
	"image/color"
	"testing"

	"deedles.dev/bitmap"
	"github.com/stretchr/testify/require"
)

func TestPin(t *testing.T) {
	b := pattern(t, 4, 4)

	err := b.PinForRead(func(p bitmap.Pointer) error {
		require.False(t, p.IsNil())
		require.False(t, p.Writable())
		require.Equal(t, b.Info(), p.Info())
		require.Equal(t, b.Pix(), p.Bytes())
		require.False(t, p.Borrow().Writable())
		require.Equal(t, bitmap.ForeignMemory, p.Borrow().Memory())
		return nil
	})
	require.NoError(t, err)

	err = b.PinForWrite(func(p bitmap.Pointer) error {
		p.Bytes()[0] = 0xAA
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, byte(0xAA), b.Pix()[0])

	err = b.View().ReadOnly().PinForWrite(func(bitmap.Pointer) error { return nil })
	require.ErrorIs(t, err, bitmap.ErrReadOnly)

	errCallback := errors.New("callback")
	err = b.PinForRead(func(bitmap.Pointer) error { return errCallback })
	require.ErrorIs(t, err, errCallback)

	err = bitmap.View{}.PinForRead(func(bitmap.Pointer) error { return nil })
	require.ErrorIs(t, err, bitmap.ErrNilPointer)
}

func TestPointerCopy(t *testing.T) {
	b := pattern(t, 4, 4)

	var c *bitmap.Bitmap
	err := b.PinForRead(func(p bitmap.Pointer) (err error) {
		c, err = p.Copy()
		return err
	})
	require.NoError(t, err)
	require.True(t, c.View().Equal(b.View()))
	require.NotSame(t, &c.Pix()[0], &b.Pix()[0])

	_, err = bitmap.Pointer{}.Copy()
	require.ErrorIs(t, err, bitmap.ErrNilPointer)
	_, err = bitmap.NewPointer(nil, b.Info(), false)
	require.ErrorIs(t, err, bitmap.ErrNilPointer)
}

// newForeign returns a Foreign lending the memory of b along with a
// count of the times that it was released.
func newForeign(t *testing.T, b *bitmap.Bitmap, opts ...bitmap.ForeignOption) (*bitmap.Foreign, *int) {
	t.Helper()

	var released int
	opts = append(opts, bitmap.WithRelease(func(bitmap.Pointer) error {
		released++
		return nil
	}))
	m := bitmap.NewForeign(opts...)

	err := b.PinForWrite(func(p bitmap.Pointer) error {
		return m.Initialize(p)
	})
	require.NoError(t, err)
	return m, &released
}

func TestForeignStates(t *testing.T) {
	b := pattern(t, 4, 4)

	m := bitmap.NewForeign()
	require.Equal(t, bitmap.Uninitialized, m.State())
	_, err := m.Lock()
	require.ErrorIs(t, err, bitmap.ErrNotInitialized)
	require.NoError(t, m.Dispose())

	m, released := newForeign(t, b)
	require.Equal(t, bitmap.Initialized, m.State())
	require.ErrorIs(t, m.Initialize(bitmap.Pointer{}), bitmap.ErrAlreadyInitialized)

	info, err := m.Info()
	require.NoError(t, err)
	require.Equal(t, b.Info(), info)

	p, err := m.Lock()
	require.NoError(t, err)
	require.True(t, p.Synchronized())
	_, err = m.Lock()
	require.ErrorIs(t, err, bitmap.ErrLocked)
	require.NoError(t, m.Unlock())
	require.ErrorIs(t, m.Unlock(), bitmap.ErrNotLocked)

	require.NoError(t, m.Dispose())
	require.Equal(t, bitmap.Disposed, m.State())
	require.Equal(t, 1, *released)

	_, err = m.Lock()
	require.ErrorIs(t, err, bitmap.ErrDisposed)
	require.ErrorIs(t, m.Unlock(), bitmap.ErrDisposed)
	_, err = m.Info()
	require.ErrorIs(t, err, bitmap.ErrDisposed)
	require.ErrorIs(t, m.Initialize(p), bitmap.ErrDisposed)
	err = m.PinForRead(func(bitmap.Pointer) error { return nil })
	require.ErrorIs(t, err, bitmap.ErrDisposed)

	require.NoError(t, m.Close())
	require.Equal(t, 1, *released)
}

func TestLendBalance(t *testing.T) {
	b := pattern(t, 4, 4)

	var unlocks []bool
	m, _ := newForeign(t, b, bitmap.WithUnlockHook(func(_ bitmap.Pointer, dirty bool) error {
		unlocks = append(unlocks, dirty)
		return nil
	}))
	defer m.Dispose()

	errCallback := errors.New("callback")
	err := m.PinForWrite(func(p bitmap.Pointer) error {
		p.Bytes()[0] = 0
		return errCallback
	})
	require.ErrorIs(t, err, errCallback)

	require.Panics(t, func() {
		m.PinForRead(func(bitmap.Pointer) error {
			panic("oops")
		})
	})

	p, err := m.Lock()
	require.NoError(t, err, "lock was not released")
	require.NoError(t, m.Unlock())
	require.Equal(t, b.Pix(), p.Bytes())

	err = m.PinForWrite(func(p bitmap.Pointer) error {
		require.True(t, p.Writable())
		return p.Borrow().Fill(color.Black)
	})
	require.NoError(t, err)
	require.Equal(t, []bool{true, false, false, true}, unlocks)
	require.False(t, m.Dirty())
}

func TestLendUnlockFailure(t *testing.T) {
	b := pattern(t, 2, 2)

	errFlush := errors.New("flush")
	fail := true
	m, _ := newForeign(t, b, bitmap.WithUnlockHook(func(_ bitmap.Pointer, dirty bool) error {
		if fail {
			return errFlush
		}
		return nil
	}))
	defer m.Dispose()

	err := bitmap.Lend(m, bitmap.WriteAccess, func(bitmap.Pointer) error { return nil })
	require.ErrorIs(t, err, errFlush)
	require.True(t, m.Dirty())

	fail = false
	_, err = m.Lock()
	require.NoError(t, err)
	require.NoError(t, m.Unlock())
	require.False(t, m.Dirty())
}

func TestDisposeWhileLocked(t *testing.T) {
	b := pattern(t, 2, 2)

	var dirtyOnUnlock bool
	m, released := newForeign(t, b, bitmap.WithUnlockHook(func(_ bitmap.Pointer, dirty bool) error {
		dirtyOnUnlock = dirty
		return nil
	}))

	_, err := m.Lock()
	require.NoError(t, err)
	m.NotifyChanged()
	require.NoError(t, m.Dispose())
	require.True(t, dirtyOnUnlock)
	require.Equal(t, 1, *released)
	require.False(t, m.Dirty())
}
