package format

import "fmt"

// Kind identifies one of the predefined formats. Formats built with New
// that don't match a predefined layout have KindCustom.
type Kind uint8

const (
	KindCustom Kind = iota
	KindGray8
	KindGray16
	KindGray16BE
	KindAlpha8
	KindRGB565
	KindBGR565
	KindRGB24
	KindBGR24
	KindRGBA32
	KindBGRA32
	KindARGB32
	KindBGRX32
	KindRGBA32Premul
	KindBGRA32Premul
	KindRGBA64BE
	KindRGBA64BEPremul

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindCustom:
		return "Custom"
	case KindGray8:
		return "Gray8"
	case KindGray16:
		return "Gray16"
	case KindGray16BE:
		return "Gray16BE"
	case KindAlpha8:
		return "Alpha8"
	case KindRGB565:
		return "RGB565"
	case KindBGR565:
		return "BGR565"
	case KindRGB24:
		return "RGB24"
	case KindBGR24:
		return "BGR24"
	case KindRGBA32:
		return "RGBA32"
	case KindBGRA32:
		return "BGRA32"
	case KindARGB32:
		return "ARGB32"
	case KindBGRX32:
		return "BGRX32"
	case KindRGBA32Premul:
		return "RGBA32Premul"
	case KindBGRA32Premul:
		return "BGRA32Premul"
	case KindRGBA64BE:
		return "RGBA64BE"
	case KindRGBA64BEPremul:
		return "RGBA64BEPremul"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Format returns the predefined format for k. It returns the zero
// Format for KindCustom and unknown kinds.
func (k Kind) Format() Format {
	if k >= kindCount {
		return Format{}
	}
	return predefined[k]
}

// Predefined formats. Names list channels in memory order, so BGRA32 is
// stored as the bytes B, G, R, A. Packed 16-bit formats are named from
// the most significant bits of a little-endian word.
var (
	Gray8    = mustBuild(KindGray8, 1, LittleEndian, false, Channel{Luminance, 0, 8})
	Gray16   = mustBuild(KindGray16, 2, LittleEndian, false, Channel{Luminance, 0, 16})
	Gray16BE = mustBuild(KindGray16BE, 2, BigEndian, false, Channel{Luminance, 0, 16})
	Alpha8   = mustBuild(KindAlpha8, 1, LittleEndian, false, Channel{Alpha, 0, 8})

	RGB565 = mustBuild(KindRGB565, 2, LittleEndian, false,
		Channel{Blue, 0, 5}, Channel{Green, 5, 6}, Channel{Red, 11, 5})
	BGR565 = mustBuild(KindBGR565, 2, LittleEndian, false,
		Channel{Red, 0, 5}, Channel{Green, 5, 6}, Channel{Blue, 11, 5})

	RGB24 = mustBuild(KindRGB24, 3, LittleEndian, false, bytes8(Red, Green, Blue)...)
	BGR24 = mustBuild(KindBGR24, 3, LittleEndian, false, bytes8(Blue, Green, Red)...)

	RGBA32 = mustBuild(KindRGBA32, 4, LittleEndian, false, bytes8(Red, Green, Blue, Alpha)...)
	BGRA32 = mustBuild(KindBGRA32, 4, LittleEndian, false, bytes8(Blue, Green, Red, Alpha)...)
	ARGB32 = mustBuild(KindARGB32, 4, LittleEndian, false, bytes8(Alpha, Red, Green, Blue)...)
	BGRX32 = mustBuild(KindBGRX32, 4, LittleEndian, false, bytes8(Blue, Green, Red, Undefined)...)

	RGBA32Premul = mustBuild(KindRGBA32Premul, 4, LittleEndian, true, bytes8(Red, Green, Blue, Alpha)...)
	BGRA32Premul = mustBuild(KindBGRA32Premul, 4, LittleEndian, true, bytes8(Blue, Green, Red, Alpha)...)

	RGBA64BE = mustBuild(KindRGBA64BE, 8, BigEndian, false,
		Channel{Red, 48, 16}, Channel{Green, 32, 16}, Channel{Blue, 16, 16}, Channel{Alpha, 0, 16})
	RGBA64BEPremul = mustBuild(KindRGBA64BEPremul, 8, BigEndian, true,
		Channel{Red, 48, 16}, Channel{Green, 32, 16}, Channel{Blue, 16, 16}, Channel{Alpha, 0, 16})
)

// DRM fourcc names, which describe little-endian words from the most
// significant byte down.
var (
	ARGB8888 = BGRA32
	XRGB8888 = BGRX32
)

var predefined = [kindCount]Format{
	KindGray8:          Gray8,
	KindGray16:         Gray16,
	KindGray16BE:       Gray16BE,
	KindAlpha8:         Alpha8,
	KindRGB565:         RGB565,
	KindBGR565:         BGR565,
	KindRGB24:          RGB24,
	KindBGR24:          BGR24,
	KindRGBA32:         RGBA32,
	KindBGRA32:         BGRA32,
	KindARGB32:         ARGB32,
	KindBGRX32:         BGRX32,
	KindRGBA32Premul:   RGBA32Premul,
	KindBGRA32Premul:   BGRA32Premul,
	KindRGBA64BE:       RGBA64BE,
	KindRGBA64BEPremul: RGBA64BEPremul,
}

// Predefined returns all of the predefined formats.
func Predefined() []Format {
	return append([]Format(nil), predefined[1:]...)
}

// bytes8 lays out one byte per channel in memory order.
func bytes8(s ...Semantic) []Channel {
	c := make([]Channel, 0, len(s))
	for i, s := range s {
		c = append(c, Channel{Semantic: s, Shift: uint8(8 * i), Bits: 8})
	}
	return c
}
