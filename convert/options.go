package convert

import "image/color"

// AlphaPolicy decides what happens to alpha when converting to a
// format that has no alpha channel.
type AlphaPolicy uint8

const (
	// AlphaDrop discards alpha and keeps the unpremultiplied colour.
	AlphaDrop AlphaPolicy = iota

	// AlphaComposite blends the colour over the background set with
	// WithBackground.
	AlphaComposite
)

func (p AlphaPolicy) String() string {
	switch p {
	case AlphaDrop:
		return "drop"
	case AlphaComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// ResizeMode selects how Resize picks destination pixels.
type ResizeMode uint8

const (
	// Nearest copies the source pixel nearest to the centre of each
	// destination pixel.
	Nearest ResizeMode = iota

	// Average averages the source pixels covered by each destination
	// pixel. It is only useful when shrinking.
	Average
)

func (m ResizeMode) String() string {
	switch m {
	case Nearest:
		return "nearest"
	case Average:
		return "average"
	default:
		return "unknown"
	}
}

// Option configures a conversion or a resize.
type Option func(*options)

type options struct {
	alpha  AlphaPolicy
	bg     color.Color
	resize ResizeMode
}

func defaultOptions() options {
	return options{
		alpha:  AlphaDrop,
		bg:     color.Black,
		resize: Nearest,
	}
}

func collect(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithAlphaPolicy sets the policy for removing alpha. The default is
// AlphaDrop.
func WithAlphaPolicy(p AlphaPolicy) Option {
	return func(o *options) {
		o.alpha = p
	}
}

// WithBackground sets the colour that AlphaComposite blends over. Its
// own alpha is ignored. The default, also used for nil, is black.
func WithBackground(c color.Color) Option {
	if c == nil {
		c = color.Black
	}
	return func(o *options) {
		o.bg = c
	}
}

// WithResizeMode sets the sampling mode used by Resize and
// ResizeInto. The default is Nearest.
func WithResizeMode(m ResizeMode) Option {
	return func(o *options) {
		o.resize = m
	}
}
