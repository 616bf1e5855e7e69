package convert

import (
	"deedles.dev/bitmap/format"
)

type path uint8

const (
	pathCopy path = iota
	pathSwizzle
	pathGeneral
)

func (p path) String() string {
	switch p {
	case pathCopy:
		return "copy"
	case pathSwizzle:
		return "swizzle"
	case pathGeneral:
		return "general"
	default:
		return "unknown"
	}
}

const numSemantics = format.Luminance + 1

type srcChannel struct {
	format.Channel
	ok bool
}

// converter converts single pixels between two formats.
type converter struct {
	src, dst format.Format
	path     path

	// direct is set when colour values can move between the formats
	// without touching alpha.
	direct bool

	ch     [numSemantics]srcChannel
	out    []format.Channel
	policy AlphaPolicy
	bg     [3]uint32
}

func newConverter(src, dst format.Format, o options) (*converter, error) {
	if !format.Convertible(src, dst) {
		return nil, &format.NotSupportedError{Src: src, Dst: dst}
	}

	c := converter{
		src:    src,
		dst:    dst,
		path:   pathGeneral,
		out:    dst.Channels(),
		policy: o.alpha,
	}
	switch {
	case src == dst:
		c.path = pathCopy
	case src.Compatible(dst):
		c.path = pathSwizzle
	}

	for _, sc := range src.Channels() {
		c.ch[sc.Semantic] = srcChannel{Channel: sc, ok: true}
	}
	c.direct = !src.HasAlpha() || (dst.HasAlpha() && src.IsPremultiplied() == dst.IsPremultiplied())

	r, g, b, a := o.bg.RGBA()
	c.bg = [3]uint32{unpremul(r, a), unpremul(g, a), unpremul(b, a)}

	return &c, nil
}

func (c *converter) pixel(dst, src []byte) {
	switch c.path {
	case pathCopy:
		copy(dst[:c.dst.ByteSize()], src[:c.src.ByteSize()])
	case pathSwizzle:
		c.swizzle(dst, src)
	default:
		c.general(dst, src)
	}
}

func (c *converter) swizzle(dst, src []byte) {
	w := c.src.Word(src)

	var out uint64
	for _, dc := range c.out {
		if dc.Semantic == format.Undefined {
			out = dc.Insert(out, dc.Max())
			continue
		}
		out = dc.Insert(out, c.ch[dc.Semantic].Extract(w))
	}
	c.dst.PutWord(dst, out)
}

// value returns the channel with semantic s from the source word w at
// the given depth.
func (c *converter) value(w uint64, s format.Semantic, bits uint8) (uint32, bool) {
	sc := c.ch[s]
	if !sc.ok {
		return 0, false
	}
	return format.Rescale(sc.Extract(w), sc.Bits, bits), true
}

// tone returns a colour channel at the given depth, falling back to
// luminance for greyscale sources.
func (c *converter) tone(w uint64, s format.Semantic, bits uint8) uint32 {
	if v, ok := c.value(w, s, bits); ok {
		return v
	}
	v, _ := c.value(w, format.Luminance, bits)
	return v
}

// luma returns the luminance of the source at the given depth.
func (c *converter) luma(w uint64, bits uint8) uint32 {
	if v, ok := c.value(w, format.Luminance, bits); ok {
		return v
	}
	l := format.Luma(c.tone(w, format.Red, 16), c.tone(w, format.Green, 16), c.tone(w, format.Blue, 16))
	return format.Rescale(l, 16, bits)
}

func (c *converter) general(dst, src []byte) {
	w := c.src.Word(src)
	if c.direct {
		c.dst.PutWord(dst, c.generalDirect(w))
		return
	}
	c.dst.PutWord(dst, c.generalAlpha(w))
}

func (c *converter) generalDirect(w uint64) uint64 {
	var out uint64
	for _, dc := range c.out {
		var v uint32
		switch dc.Semantic {
		case format.Red, format.Green, format.Blue:
			v = c.tone(w, dc.Semantic, dc.Bits)
		case format.Luminance:
			v = c.luma(w, dc.Bits)
		case format.Alpha:
			var ok bool
			v, ok = c.value(w, format.Alpha, dc.Bits)
			if !ok {
				v = dc.Max()
			}
		default:
			v = dc.Max()
		}
		out = dc.Insert(out, v)
	}
	return out
}

// generalAlpha handles conversions where the colour has to be
// unpremultiplied, premultiplied, or has alpha removed from it.
func (c *converter) generalAlpha(w uint64) uint64 {
	a, _ := c.value(w, format.Alpha, 16)
	rgb := [3]uint32{
		c.tone(w, format.Red, 16),
		c.tone(w, format.Green, 16),
		c.tone(w, format.Blue, 16),
	}

	for i, v := range rgb {
		if c.src.IsPremultiplied() {
			v = unpremul(v, a)
		}
		switch {
		case !c.dst.HasAlpha() && c.policy == AlphaComposite:
			v = uint32((uint64(v)*uint64(a) + uint64(c.bg[i])*uint64(0xFFFF-a) + 0x7FFF) / 0xFFFF)
		case c.dst.HasAlpha() && c.dst.IsPremultiplied():
			v = uint32((uint64(v)*uint64(a) + 0x7FFF) / 0xFFFF)
		}
		rgb[i] = v
	}

	var out uint64
	for _, dc := range c.out {
		var v uint32
		switch dc.Semantic {
		case format.Red:
			v = rgb[0]
		case format.Green:
			v = rgb[1]
		case format.Blue:
			v = rgb[2]
		case format.Luminance:
			v = format.Luma(rgb[0], rgb[1], rgb[2])
		case format.Alpha:
			v = a
		default:
			v = 0xFFFF
		}
		out = dc.Insert(out, format.Rescale(v, 16, dc.Bits))
	}
	return out
}

func unpremul(v, a uint32) uint32 {
	switch a {
	case 0:
		return 0
	case 0xFFFF:
		return v
	default:
		return min((v*0xFFFF+a/2)/a, 0xFFFF)
	}
}
