package format

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidFormat is returned when a set of channels does not describe
// a usable pixel layout.
var ErrInvalidFormat = errors.New("invalid pixel format")

const (
	maxChannels = 4
	maxSize     = 8
	maxBits     = 16
)

// Semantic is the meaning of a single channel.
type Semantic uint8

const (
	Undefined Semantic = iota
	Red
	Green
	Blue
	Alpha
	Luminance

	semanticCount
)

func (s Semantic) String() string {
	switch s {
	case Undefined:
		return "Undefined"
	case Red:
		return "Red"
	case Green:
		return "Green"
	case Blue:
		return "Blue"
	case Alpha:
		return "Alpha"
	case Luminance:
		return "Luminance"
	default:
		return fmt.Sprintf("Semantic(%d)", uint8(s))
	}
}

// Order is the byte order used to load a pixel's bytes into a single
// word before channels are extracted from it.
type Order uint8

const (
	LittleEndian Order = iota
	BigEndian
)

func (o Order) String() string {
	if o == BigEndian {
		return "BigEndian"
	}
	return "LittleEndian"
}

// Channel describes where a channel lives inside of a pixel word.
// Shift is the position of the channel's least significant bit.
type Channel struct {
	Semantic Semantic
	Shift    uint8
	Bits     uint8
}

// Max returns the largest value that the channel can hold.
func (c Channel) Max() uint32 { return 1<<c.Bits - 1 }

func (c Channel) mask() uint64 { return 1<<c.Bits - 1 }

// Extract returns the channel's value from a pixel word.
func (c Channel) Extract(word uint64) uint32 {
	return uint32(word >> c.Shift & c.mask())
}

// Insert returns word with the channel's bits replaced by v.
func (c Channel) Insert(word uint64, v uint32) uint64 {
	m := c.mask()
	return word&^(m<<c.Shift) | (uint64(v)&m)<<c.Shift
}

// Format describes how the bytes of a single pixel are laid out.
// Formats are comparable, and two formats are equal only if their
// layouts are identical, byte order and alpha mode included.
//
// The zero Format is invalid.
type Format struct {
	kind   Kind
	size   uint8
	order  Order
	premul bool
	n      uint8
	ch     [maxChannels]Channel
}

// New builds a Format from a list of channels. If the layout matches
// one of the predefined formats, that format is returned.
func New(size int, order Order, premultiplied bool, channels ...Channel) (Format, error) {
	f, err := build(KindCustom, size, order, premultiplied, channels)
	if err != nil {
		return Format{}, err
	}

	for _, p := range predefined[1:] {
		if p.sameLayout(f) {
			return p, nil
		}
	}
	return f, nil
}

// MustNew is like New but panics on error.
func MustNew(size int, order Order, premultiplied bool, channels ...Channel) Format {
	f, err := New(size, order, premultiplied, channels...)
	if err != nil {
		panic(err)
	}
	return f
}

func build(kind Kind, size int, order Order, premul bool, channels []Channel) (Format, error) {
	if size < 1 || size > maxSize {
		return Format{}, fmt.Errorf("%w: byte size %v out of range", ErrInvalidFormat, size)
	}
	if len(channels) == 0 || len(channels) > maxChannels {
		return Format{}, fmt.Errorf("%w: %v channels", ErrInvalidFormat, len(channels))
	}
	if order > BigEndian {
		return Format{}, fmt.Errorf("%w: unknown byte order %v", ErrInvalidFormat, uint8(order))
	}

	f := Format{
		kind:   kind,
		size:   uint8(size),
		order:  order,
		premul: premul,
		n:      uint8(len(channels)),
	}
	copy(f.ch[:], channels)
	slices.SortFunc(f.ch[:f.n], func(a, b Channel) int { return cmp.Compare(a.Shift, b.Shift) })

	var used uint64
	var seen [semanticCount]bool
	for _, c := range f.ch[:f.n] {
		if c.Semantic >= semanticCount {
			return Format{}, fmt.Errorf("%w: unknown channel semantic %v", ErrInvalidFormat, c.Semantic)
		}
		if c.Bits == 0 || c.Bits > maxBits {
			return Format{}, fmt.Errorf("%w: %v channel has %v bits", ErrInvalidFormat, c.Semantic, c.Bits)
		}
		if int(c.Shift)+int(c.Bits) > size*8 {
			return Format{}, fmt.Errorf("%w: %v channel does not fit in %v bytes", ErrInvalidFormat, c.Semantic, size)
		}

		m := c.mask() << c.Shift
		if used&m != 0 {
			return Format{}, fmt.Errorf("%w: %v channel overlaps another channel", ErrInvalidFormat, c.Semantic)
		}
		used |= m

		if c.Semantic == Undefined {
			continue
		}
		if seen[c.Semantic] {
			return Format{}, fmt.Errorf("%w: duplicate %v channel", ErrInvalidFormat, c.Semantic)
		}
		seen[c.Semantic] = true
	}
	if premul && !seen[Alpha] {
		return Format{}, fmt.Errorf("%w: premultiplied format without alpha", ErrInvalidFormat)
	}

	return f, nil
}

func mustBuild(kind Kind, size int, order Order, premul bool, channels ...Channel) Format {
	f, err := build(kind, size, order, premul, channels)
	if err != nil {
		panic(err)
	}
	return f
}

func (f Format) sameLayout(o Format) bool {
	f.kind, o.kind = KindCustom, KindCustom
	return f == o
}

// Valid reports whether f describes a pixel layout. Only the zero
// Format is invalid.
func (f Format) Valid() bool { return f.size != 0 }

func (f Format) Kind() Kind { return f.kind }

// ByteSize returns the number of bytes per pixel.
func (f Format) ByteSize() int { return int(f.size) }

// Size is an alias for ByteSize.
func (f Format) Size() int { return int(f.size) }

func (f Format) Order() Order { return f.order }

func (f Format) IsPremultiplied() bool { return f.premul }

// BitsPerPixel returns the sum of the widths of all channels. It may be
// less than 8*ByteSize if the format has unassigned bits.
func (f Format) BitsPerPixel() int {
	var n int
	for _, c := range f.ch[:f.n] {
		n += int(c.Bits)
	}
	return n
}

// Channels returns the channels of f sorted by shift.
func (f Format) Channels() []Channel {
	return slices.Clone(f.ch[:f.n])
}

// ChannelAt returns the channel with the given semantic.
func (f Format) ChannelAt(s Semantic) (Channel, bool) {
	for _, c := range f.ch[:f.n] {
		if c.Semantic == s {
			return c, true
		}
	}
	return Channel{}, false
}

// Depth returns the number of bits of the channel with the given
// semantic, or 0 if there is no such channel.
func (f Format) Depth(s Semantic) int {
	c, ok := f.ChannelAt(s)
	if !ok {
		return 0
	}
	return int(c.Bits)
}

func (f Format) HasAlpha() bool {
	_, ok := f.ChannelAt(Alpha)
	return ok
}

// IsGreyscale reports whether f carries luminance and no colour
// channels.
func (f Format) IsGreyscale() bool {
	_, ok := f.ChannelAt(Luminance)
	return ok && !f.hasColor()
}

func (f Format) hasColor() bool {
	for _, c := range f.ch[:f.n] {
		switch c.Semantic {
		case Red, Green, Blue:
			return true
		}
	}
	return false
}

func (f Format) hasTone() bool {
	_, lum := f.ChannelAt(Luminance)
	return lum || f.hasColor()
}

func (f Format) hasSignal() bool {
	for _, c := range f.ch[:f.n] {
		if c.Semantic != Undefined {
			return true
		}
	}
	return false
}

// ByteOffset returns the offset into the pixel of a channel that
// occupies exactly one whole byte.
func (f Format) ByteOffset(c Channel) (int, bool) {
	if c.Bits != 8 || c.Shift%8 != 0 {
		return 0, false
	}
	i := int(c.Shift / 8)
	if f.order == BigEndian {
		i = int(f.size) - 1 - i
	}
	return i, true
}

// Compatible reports whether f and o have the same channels at the
// same depths with the same alpha mode, meaning that a pixel can be
// moved between them by rearranging bits alone.
func (f Format) Compatible(o Format) bool {
	if !f.Valid() || !o.Valid() || f.premul != o.premul {
		return false
	}
	for s := Red; s < semanticCount; s++ {
		if f.Depth(s) != o.Depth(s) {
			return false
		}
	}
	return true
}

// Convertible reports whether pixels can be converted from src to
// dst. Alpha-only sources can't produce colour or luminance.
func Convertible(src, dst Format) bool {
	if !src.Valid() || !dst.Valid() {
		return false
	}
	if !src.hasSignal() || !dst.hasSignal() {
		return false
	}
	return !dst.hasTone() || src.hasTone()
}

// Word loads the bytes of a single pixel into a word using f's byte
// order.
func (f Format) Word(px []byte) uint64 {
	px = px[:f.size:f.size]

	var v uint64
	if f.order == BigEndian {
		for _, b := range px {
			v = v<<8 | uint64(b)
		}
		return v
	}
	for i := len(px) - 1; i >= 0; i-- {
		v = v<<8 | uint64(px[i])
	}
	return v
}

// PutWord stores a pixel word into px using f's byte order.
func (f Format) PutWord(px []byte, v uint64) {
	px = px[:f.size:f.size]

	if f.order == BigEndian {
		for i := len(px) - 1; i >= 0; i-- {
			px[i] = byte(v)
			v >>= 8
		}
		return
	}
	for i := range px {
		px[i] = byte(v)
		v >>= 8
	}
}

// Rescale converts a channel value between bit depths, rounding to the
// nearest representable value.
func Rescale(v uint32, from, to uint8) uint32 {
	if from == to {
		return v
	}
	srcMax := uint64(1)<<from - 1
	dstMax := uint64(1)<<to - 1
	return uint32((uint64(v)*dstMax + srcMax/2) / srcMax)
}

// Luma returns the Rec. 601 luminance of 16-bit colour values, using
// the same weights as color.GrayModel.
func Luma(r, g, b uint32) uint32 {
	return (19595*r + 38470*g + 7471*b + 1<<15) >> 16
}

// Read reads raw pixel data and converts it to alpha-premultiplied
// 16-bit RGBA values, similar to color.Color's RGBA method.
func (f Format) Read(px []byte) (r, g, b, a uint32) {
	w := f.Word(px)

	a = 0xFFFF
	var l uint32
	var color, lum, alphaOnly bool
	for _, c := range f.ch[:f.n] {
		v := Rescale(c.Extract(w), c.Bits, 16)
		switch c.Semantic {
		case Red:
			r, color = v, true
		case Green:
			g, color = v, true
		case Blue:
			b, color = v, true
		case Alpha:
			a = v
		case Luminance:
			l, lum = v, true
		}
	}
	alphaOnly = !color && !lum
	switch {
	case alphaOnly:
		return a, a, a, a
	case lum && !color:
		r, g, b = l, l, l
	}

	if !f.premul && a != 0xFFFF {
		r = r * a / 0xFFFF
		g = g * a / 0xFFFF
		b = b * a / 0xFFFF
	}
	return r, g, b, a
}

// Write writes alpha-premultiplied 16-bit RGBA values into px. Formats
// without alpha receive the colour composited over black, and
// undefined channels are filled with ones.
func (f Format) Write(px []byte, r, g, b, a uint32) {
	if f.HasAlpha() && !f.premul {
		switch a {
		case 0:
			r, g, b = 0, 0, 0
		case 0xFFFF:
		default:
			r = min(r*0xFFFF/a, 0xFFFF)
			g = min(g*0xFFFF/a, 0xFFFF)
			b = min(b*0xFFFF/a, 0xFFFF)
		}
	}

	var w uint64
	for _, c := range f.ch[:f.n] {
		var v uint32
		switch c.Semantic {
		case Red:
			v = r
		case Green:
			v = g
		case Blue:
			v = b
		case Alpha:
			v = a
		case Luminance:
			v = Luma(r, g, b)
		default:
			v = 0xFFFF
		}
		w = c.Insert(w, Rescale(v, 16, c.Bits))
	}
	f.PutWord(px, w)
}

func (f Format) String() string {
	if f.kind != KindCustom {
		return f.kind.String()
	}
	if !f.Valid() {
		return "Invalid"
	}
	return f.Descriptor()
}
