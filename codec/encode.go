package codec

import (
	"errors"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"deedles.dev/bitmap"
	"deedles.dev/bitmap/convert"
	"deedles.dev/bitmap/format"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// prepare returns src as an image in whichever of supported it is
// closest to. The underlying encoders have fast paths for exactly
// these formats.
func prepare(src bitmap.View, supported []format.Format) (image.Image, error) {
	f, ok := format.GetCompatible(src.Format(), supported)
	if !ok {
		return nil, &format.NotSupportedError{Src: src.Format(), Dst: supported[0]}
	}
	if f != src.Format() {
		bitmap.Logger().Debug("converting for encoder", "src", src.Format(), "dst", f)
		b, err := convert.Convert(src, f)
		if err != nil {
			return nil, err
		}
		src = b.View()
	}
	return src.Image(), nil
}

// write opens the stream and closes it again after calling enc.
func write(open func() (io.WriteCloser, error), enc func(io.Writer) error) (err error) {
	w, err := open()
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, w.Close())
	}()

	return enc(w)
}

// encode is the shared implementation of the encoders' TryWrite
// methods.
func encode(open func() (io.WriteCloser, error), src bitmap.View, supported []format.Format, enc func(io.Writer, image.Image) error) error {
	img, err := prepare(src, supported)
	if err != nil {
		return err
	}
	return write(open, func(w io.Writer) error {
		return enc(w, img)
	})
}

var pngFormats = []format.Format{
	format.RGBA32,
	format.RGBA32Premul,
	format.Gray8,
	format.Gray16BE,
	format.RGBA64BE,
	format.RGBA64BEPremul,
}

// PNGEncoder writes PNG files.
type PNGEncoder struct {
	CompressionLevel png.CompressionLevel
}

func (e PNGEncoder) TryWrite(open func() (io.WriteCloser, error), kind Kind, src bitmap.View) (bool, error) {
	if kind != PNG {
		return false, nil
	}

	enc := png.Encoder{CompressionLevel: e.CompressionLevel}
	return true, encode(open, src, pngFormats, enc.Encode)
}

var jpegFormats = []format.Format{
	format.RGBA32Premul,
	format.Gray8,
}

// JPEGEncoder writes JPEG files. Alpha is discarded.
type JPEGEncoder struct {
	quality int
}

// JPEGOption configures a JPEGEncoder.
type JPEGOption func(*JPEGEncoder)

// WithQuality sets the quality of the encoded image, from 1 to 100.
// Out of range values are clamped.
func WithQuality(quality int) JPEGOption {
	return func(e *JPEGEncoder) {
		e.quality = min(max(quality, 1), 100)
	}
}

func NewJPEGEncoder(opts ...JPEGOption) JPEGEncoder {
	e := JPEGEncoder{quality: jpeg.DefaultQuality}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

func (e JPEGEncoder) TryWrite(open func() (io.WriteCloser, error), kind Kind, src bitmap.View) (bool, error) {
	if kind != JPEG {
		return false, nil
	}

	quality := e.quality
	if quality == 0 {
		quality = jpeg.DefaultQuality
	}
	return true, encode(open, src, jpegFormats, func(w io.Writer, img image.Image) error {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	})
}

var gifFormats = []format.Format{
	format.RGBA32Premul,
}

// GIFEncoder writes single frame GIF files, quantizing the image to at
// most NumColors colours. Zero means 256.
type GIFEncoder struct {
	NumColors int
}

func (e GIFEncoder) TryWrite(open func() (io.WriteCloser, error), kind Kind, src bitmap.View) (bool, error) {
	if kind != GIF {
		return false, nil
	}

	n := e.NumColors
	if n <= 0 || n > 256 {
		n = 256
	}
	return true, encode(open, src, gifFormats, func(w io.Writer, img image.Image) error {
		return gif.Encode(w, img, &gif.Options{NumColors: n})
	})
}

var bmpFormats = []format.Format{
	format.RGBA32Premul,
	format.RGBA32,
	format.Gray8,
}

// BMPEncoder writes BMP files.
type BMPEncoder struct{}

func (BMPEncoder) TryWrite(open func() (io.WriteCloser, error), kind Kind, src bitmap.View) (bool, error) {
	if kind != BMP {
		return false, nil
	}
	return true, encode(open, src, bmpFormats, bmp.Encode)
}

var tiffFormats = []format.Format{
	format.RGBA32Premul,
	format.RGBA32,
	format.Gray8,
	format.Gray16BE,
	format.RGBA64BEPremul,
	format.RGBA64BE,
}

// TIFFEncoder writes TIFF files.
type TIFFEncoder struct {
	Compression tiff.CompressionType
	Predictor   bool
}

func (e TIFFEncoder) TryWrite(open func() (io.WriteCloser, error), kind Kind, src bitmap.View) (bool, error) {
	if kind != TIFF {
		return false, nil
	}

	opts := tiff.Options{Compression: e.Compression, Predictor: e.Predictor}
	return true, encode(open, src, tiffFormats, func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &opts)
	})
}
