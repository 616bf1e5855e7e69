package codec

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"deedles.dev/bitmap"
	"deedles.dev/bitmap/format"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Std decodes every format registered with the image package. Images
// whose memory layout matches a predefined pixel format are adopted as
// is. Anything else, such as paletted or YCbCr images, is converted to
// RGBA32.
type Std struct{}

func (Std) TryRead(r io.Reader) (*bitmap.Bitmap, bool, error) {
	er := errReader{r: r}
	img, name, err := image.Decode(&er)
	if err != nil {
		switch {
		case er.err != nil:
			return nil, false, er.err
		case errors.Is(err, image.ErrFormat):
			return nil, false, nil
		default:
			return nil, false, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}

	b, err := adopt(img)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v: %w", ErrMalformed, name, err)
	}

	bitmap.Logger().Debug("decoded image", "format", name, "info", b.Info())
	return b, true, nil
}

func adopt(img image.Image) (*bitmap.Bitmap, error) {
	if v, ok := bitmap.Borrow(img); ok {
		return bitmap.Adopt(v.Bytes(), v.Info())
	}
	return bitmap.FromImage(img, format.RGBA32)
}

// errReader remembers the first error other than io.EOF returned by r
// so that it can be told apart from decoding errors.
type errReader struct {
	r   io.Reader
	err error
}

func (r *errReader) Read(buf []byte) (int, error) {
	n, err := r.r.Read(buf)
	if err != nil && err != io.EOF && r.err == nil {
		r.err = err
	}
	return n, err
}
