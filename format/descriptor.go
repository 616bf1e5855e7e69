package format

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	bigEndianPrefix = "be:"
	premulSuffix    = "/p"
	gapLetter       = '_'
)

func (s Semantic) letter() byte {
	return "xrgbak"[s]
}

func semanticFromLetter(c byte) (Semantic, bool) {
	switch c {
	case 'r':
		return Red, true
	case 'g':
		return Green, true
	case 'b':
		return Blue, true
	case 'a':
		return Alpha, true
	case 'k', 'l':
		return Luminance, true
	case 'x':
		return Undefined, true
	default:
		return 0, false
	}
}

// Parse turns a descriptor such as "b8g8r8a8" into a Format. Channels
// are listed in memory order, each as a letter followed by a bit
// count: r, g, b and a for colour and alpha, k or l for luminance and x
// for an Undefined padding channel. An underscore skips bits that belong
// to no channel at all and doesn't count towards the channel limit. A
// "be:" prefix loads the pixel as a big-endian word and a "/p" suffix
// marks alpha as premultiplied.
//
// For little-endian formats the first channel occupies the least
// significant bits, so "b5g6r5" is RGB565.
func Parse(s string) (Format, error) {
	desc := s
	order := LittleEndian
	if rest, ok := strings.CutPrefix(desc, bigEndianPrefix); ok {
		order, desc = BigEndian, rest
	}
	var premul bool
	if rest, ok := strings.CutSuffix(desc, premulSuffix); ok {
		premul, desc = true, rest
	}

	type entry struct {
		sem  Semantic
		gap  bool
		bits int
	}
	var entries []entry
	var total int
	for len(desc) > 0 {
		e := entry{gap: desc[0] == gapLetter}
		limit := maxBits
		if e.gap {
			limit = maxSize * 8
		} else {
			var ok bool
			e.sem, ok = semanticFromLetter(desc[0])
			if !ok {
				return Format{}, fmt.Errorf("%w: malformed descriptor %q", ErrInvalidFormat, s)
			}
		}
		desc = desc[1:]

		i := 0
		for i < len(desc) && desc[i] >= '0' && desc[i] <= '9' {
			i++
		}
		bits, err := strconv.Atoi(desc[:i])
		if err != nil || bits < 1 || bits > limit {
			return Format{}, fmt.Errorf("%w: malformed descriptor %q", ErrInvalidFormat, s)
		}
		desc = desc[i:]

		e.bits = bits
		entries = append(entries, e)
		total += bits
	}
	if total > maxSize*8 {
		return Format{}, fmt.Errorf("%w: descriptor %q is wider than %v bits", ErrInvalidFormat, s, maxSize*8)
	}

	size := (total + 7) / 8
	channels := make([]Channel, 0, len(entries))
	shift := 0
	if order == BigEndian {
		shift = size * 8
	}
	for _, e := range entries {
		if order == BigEndian {
			shift -= e.bits
		}
		if !e.gap {
			channels = append(channels, Channel{Semantic: e.sem, Shift: uint8(shift), Bits: uint8(e.bits)})
		}
		if order == LittleEndian {
			shift += e.bits
		}
	}
	if len(channels) == 0 {
		return Format{}, fmt.Errorf("%w: no channels in descriptor %q", ErrInvalidFormat, s)
	}

	f, err := New(size, order, premul, channels...)
	if err != nil {
		return Format{}, fmt.Errorf("parse %q: %w", s, err)
	}
	return f, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Format {
	f, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return f
}

// Descriptor returns the descriptor string that Parse understands for
// f. Bits that belong to no channel are printed as a single gap.
func (f Format) Descriptor() string {
	if !f.Valid() {
		return ""
	}

	var sb strings.Builder
	if f.order == BigEndian {
		sb.WriteString(bigEndianPrefix)
	}

	pad := func(n int) {
		if n > 0 {
			sb.WriteByte(gapLetter)
			sb.WriteString(strconv.Itoa(n))
		}
	}
	write := func(c Channel) {
		sb.WriteByte(c.Semantic.letter())
		sb.WriteString(strconv.Itoa(int(c.Bits)))
	}

	chans := f.ch[:f.n]
	if f.order == BigEndian {
		chans = slices.Clone(chans)
		slices.Reverse(chans)

		cursor := int(f.size) * 8
		for _, c := range chans {
			pad(cursor - int(c.Shift) - int(c.Bits))
			write(c)
			cursor = int(c.Shift)
		}
		pad(cursor)
	} else {
		cursor := 0
		for _, c := range chans {
			pad(int(c.Shift) - cursor)
			write(c)
			cursor = int(c.Shift) + int(c.Bits)
		}
		pad(int(f.size)*8 - cursor)
	}

	if f.premul {
		sb.WriteString(premulSuffix)
	}
	return sb.String()
}
