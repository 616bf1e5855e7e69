// Package framebuf keeps a bitmap in memory that mirrors the contents
// of a display device and pushes changes to the device when the bitmap
// is unlocked.
package framebuf

import (
	"errors"
	"fmt"
	"image/color"
	"unsafe"

	"deedles.dev/bitmap"
	"deedles.dev/bitmap/format"
	"deedles.dev/bitmap/geom"
	"periph.io/x/conn/v3/display"
)

// Option configures a Framebuffer.
type Option func(*options)

type options struct {
	format format.Format
}

// WithFormat sets the format of the in-memory bitmap instead of
// choosing one from the device's colour model.
func WithFormat(f format.Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// drawable are the formats whose views can be handed to a device as
// standard library images without a copy.
var drawable = []format.Format{
	format.RGBA32Premul,
	format.RGBA32,
	format.Gray8,
	format.Gray16BE,
	format.RGBA64BEPremul,
	format.RGBA64BE,
	format.Alpha8,
}

// Framebuffer lends out the memory of a bitmap the size of a display
// device. Changes made while the memory is locked for writing are sent
// to the device when it is unlocked.
//
// Like bitmap.Foreign, which it is built on, a Framebuffer is not safe
// for concurrent use.
type Framebuffer struct {
	dev    display.Drawer
	buf    *bitmap.Bitmap
	mem    *bitmap.Foreign
	damage geom.Rect[int]
}

// New returns a Framebuffer for dev. Unless a format is given with
// WithFormat, the bitmap uses the format closest to dev's colour
// model that can be drawn without conversion.
func New(dev display.Drawer, opts ...Option) (*Framebuffer, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	f := o.format
	if !f.Valid() {
		want := modelFormat(dev.ColorModel())
		var ok bool
		f, ok = format.GetCompatible(want, drawable)
		if !ok {
			return nil, &format.NotSupportedError{Src: want, Dst: drawable[0]}
		}
	}

	size := dev.Bounds().Size()
	buf, err := bitmap.NewBitmap(size.X, size.Y, f)
	if err != nil {
		return nil, fmt.Errorf("allocate bitmap: %w", err)
	}

	fb := Framebuffer{dev: dev, buf: buf}
	fb.mem = bitmap.NewForeign(bitmap.WithUnlockHook(fb.flush))

	p, err := bitmap.NewPointer(unsafe.Pointer(unsafe.SliceData(buf.Pix())), buf.Info(), true)
	if err != nil {
		return nil, err
	}
	err = fb.mem.Initialize(p)
	if err != nil {
		return nil, err
	}

	bitmap.Logger().Debug("framebuffer created", "device", dev.String(), "info", buf.Info())
	return &fb, nil
}

// modelFormat returns the format that best describes the pixels of m.
func modelFormat(m color.Model) format.Format {
	switch m {
	case color.GrayModel:
		return format.Gray8
	case color.Gray16Model:
		return format.Gray16BE
	case color.AlphaModel:
		return format.Alpha8
	case color.NRGBAModel:
		return format.RGBA32
	case color.RGBA64Model:
		return format.RGBA64BEPremul
	case color.NRGBA64Model:
		return format.RGBA64BE
	}
	if fm, ok := m.(format.Model); ok {
		return fm.Format
	}
	return format.RGBA32Premul
}

func (fb *Framebuffer) String() string {
	return fmt.Sprintf("framebuf(%v)", fb.dev)
}

func (fb *Framebuffer) Info() bitmap.Info { return fb.buf.Info() }

func (fb *Framebuffer) Format() format.Format { return fb.buf.Format() }

func (fb *Framebuffer) Lock() (bitmap.Pointer, error) { return fb.mem.Lock() }

// Unlock releases the memory. If it was changed, the damaged region, or
// the whole frame if no region was given, is drawn to the device.
func (fb *Framebuffer) Unlock() error { return fb.mem.Unlock() }

func (fb *Framebuffer) NotifyChanged() { fb.mem.NotifyChanged() }

// Damage marks r as changed. It is clipped to the bounds of the
// framebuffer.
func (fb *Framebuffer) Damage(r geom.Rect[int]) {
	r = r.Intersect(fb.buf.Info().Rect())
	if r.Empty() {
		return
	}
	fb.damage = fb.damage.Union(r)
	fb.mem.NotifyChanged()
}

func (fb *Framebuffer) PinForRead(fn func(bitmap.Pointer) error) error {
	return fb.mem.PinForRead(fn)
}

func (fb *Framebuffer) PinForWrite(fn func(bitmap.Pointer) error) error {
	return fb.mem.PinForWrite(fn)
}

// Flush draws the whole frame to the device.
func (fb *Framebuffer) Flush() error {
	return bitmap.Lend(fb, bitmap.WriteAccess, func(bitmap.Pointer) error {
		fb.damage = geom.Rect[int]{}
		return nil
	})
}

func (fb *Framebuffer) flush(p bitmap.Pointer, dirty bool) error {
	if !dirty {
		return nil
	}

	r := fb.damage
	if r.Empty() {
		r = p.Info().Rect()
	}

	origin := geom.FromImagePoint(fb.dev.Bounds().Min)
	err := fb.dev.Draw(r.Add(origin).ImageRect(), p.Borrow().Image(), r.Min.ImagePoint())
	if err != nil {
		return fmt.Errorf("draw to %v: %w", fb.dev, err)
	}

	bitmap.Logger().Debug("framebuffer flushed", "device", fb.dev.String(), "rect", r)
	fb.damage = geom.Rect[int]{}
	return nil
}

// Close releases the memory and halts the device.
func (fb *Framebuffer) Close() error {
	return errors.Join(fb.mem.Dispose(), fb.dev.Halt())
}
