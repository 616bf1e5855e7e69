//go:build go1.24

package convert_test

import (
	"testing"

	"deedles.dev/bitmap"
	"deedles.dev/bitmap/convert"
	"deedles.dev/bitmap/format"
	"github.com/stretchr/testify/require"
)

func BenchmarkConvert(b *testing.B) {
	src, err := bitmap.NewBitmap(256, 256, format.RGBA32)
	require.NoError(b, err)
	dst, err := bitmap.NewBitmap(256, 256, format.BGR24)
	require.NoError(b, err)

	b.ReportAllocs()
	for b.Loop() {
		err := convert.ConvertInto(dst.View(), src.View())
		if err != nil {
			b.Fatal(err)
		}
	}
}
