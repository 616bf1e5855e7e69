// Package codec moves bitmaps in and out of encoded image files. It
// wraps existing image codecs rather than implementing any itself.
//
// Importing the package registers the PNG, JPEG, GIF, BMP, TIFF and
// WebP decoders with the image package.
package codec

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"deedles.dev/bitmap"
)

var (
	// ErrMalformed is wrapped by errors returned for data that a
	// decoder recognized but could not decode.
	ErrMalformed = errors.New("codec: malformed image data")

	ErrNoDecoder = errors.New("codec: no decoder recognized the data")
	ErrNoEncoder = errors.New("codec: no encoder accepted the request")
)

// Kind identifies an encoded image format.
type Kind uint8

const (
	PNG Kind = iota
	JPEG
	GIF
	BMP
	TIFF
	WebP
)

func (k Kind) String() string {
	switch k {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case GIF:
		return "gif"
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	case WebP:
		return "webp"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// KindOf guesses the kind of an image file from the extension of its
// name.
func KindOf(name string) (Kind, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return PNG, true
	case ".jpg", ".jpeg":
		return JPEG, true
	case ".gif":
		return GIF, true
	case ".bmp":
		return BMP, true
	case ".tif", ".tiff":
		return TIFF, true
	case ".webp":
		return WebP, true
	default:
		return 0, false
	}
}

// Decoder decodes images into bitmaps.
type Decoder interface {
	// TryRead decodes an image from r. If the data is not something
	// that the decoder understands, it returns false and a nil error.
	// If the data is recognized but corrupt, the error wraps
	// ErrMalformed. Errors from r are returned as is.
	TryRead(r io.Reader) (*bitmap.Bitmap, bool, error)
}

// Encoder encodes bitmaps into images.
type Encoder interface {
	// TryWrite encodes src as kind into the stream returned by open.
	// If the encoder can't produce kind, it returns false without
	// calling open. Otherwise it returns true and the result of
	// encoding. The stream is closed before TryWrite returns.
	TryWrite(open func() (io.WriteCloser, error), kind Kind, src bitmap.View) (bool, error)
}
