package codec

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"deedles.dev/bitmap"
)

// Registry tries a list of decoders and encoders in order.
type Registry struct {
	decoders []Decoder
	encoders []Encoder
}

// NewRegistry returns a Registry with the Std decoder and an encoder
// for every Kind that can be written.
func NewRegistry() *Registry {
	return &Registry{
		decoders: []Decoder{Std{}},
		encoders: []Encoder{
			PNGEncoder{},
			NewJPEGEncoder(),
			GIFEncoder{},
			BMPEncoder{},
			TIFFEncoder{},
		},
	}
}

// AddDecoder adds d ahead of the existing decoders.
func (r *Registry) AddDecoder(d Decoder) {
	r.decoders = append([]Decoder{d}, r.decoders...)
}

// AddEncoder adds e ahead of the existing encoders.
func (r *Registry) AddEncoder(e Encoder) {
	r.encoders = append([]Encoder{e}, r.encoders...)
}

// Decode reads all of rd and offers it to each decoder in turn. The
// first decoder to either recognize the data or fail decides the
// result.
func (r *Registry) Decode(rd io.Reader) (*bitmap.Bitmap, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}

	for _, d := range r.decoders {
		b, ok, err := d.TryRead(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%T: %w", d, err)
		}
		if ok {
			return b, nil
		}
		bitmap.Logger().Debug("decoder did not recognize data", "decoder", fmt.Sprintf("%T", d))
	}
	return nil, ErrNoDecoder
}

// DecodeFile decodes the file at path.
func (r *Registry) DecodeFile(path string) (*bitmap.Bitmap, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return r.Decode(file)
}

// Encode writes src as kind to the stream returned by open using the
// first encoder that accepts it.
func (r *Registry) Encode(open func() (io.WriteCloser, error), kind Kind, src bitmap.View) error {
	for _, e := range r.encoders {
		ok, err := e.TryWrite(open, kind, src)
		if ok {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrNoEncoder, kind)
}

// EncodeFile writes src as kind to the file at path. The file is only
// created once an encoder has accepted the request.
func (r *Registry) EncodeFile(path string, kind Kind, src bitmap.View) error {
	return r.Encode(func() (io.WriteCloser, error) {
		return os.Create(path)
	}, kind, src)
}
