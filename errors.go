package bitmap

import "errors"

var (
	// ErrInvalidDimensions is returned when width or height is not
	// positive.
	ErrInvalidDimensions = errors.New("bitmap: invalid dimensions")

	// ErrInvalidStride is returned when the stride is smaller than a
	// row of pixels.
	ErrInvalidStride = errors.New("bitmap: stride too small for width")

	// ErrInvalidFormat is returned for the zero format.
	ErrInvalidFormat = errors.New("bitmap: invalid pixel format")

	// ErrDataTooSmall is returned when memory is smaller than its Info
	// requires.
	ErrDataTooSmall = errors.New("bitmap: data buffer too small")

	// ErrOutOfBounds is returned when a rectangle isn't contained by a
	// bitmap.
	ErrOutOfBounds = errors.New("bitmap: rectangle out of bounds")

	ErrReadOnly   = errors.New("bitmap: view is read-only")
	ErrNilPointer = errors.New("bitmap: nil pointer")
	ErrMisaligned = errors.New("bitmap: memory misaligned for pixel type")

	// ErrDisposed is returned by any use of a Foreign after Dispose.
	ErrDisposed = errors.New("bitmap: object disposed")

	ErrNotInitialized     = errors.New("bitmap: not initialized")
	ErrAlreadyInitialized = errors.New("bitmap: already initialized")
	ErrLocked             = errors.New("bitmap: already locked")
	ErrNotLocked          = errors.New("bitmap: not locked")
)
