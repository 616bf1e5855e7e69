package format

import (
	"errors"
	"fmt"
)

// ErrNotSupported is matched by every NotSupportedError.
var ErrNotSupported = errors.New("pixel format not supported")

// NotSupportedError is returned when an operation is requested between
// two pixel formats that it can't handle.
type NotSupportedError struct {
	Src, Dst Format
}

func (err *NotSupportedError) Error() string {
	return fmt.Sprintf("pixel format not supported: %v to %v", err.Src, err.Dst)
}

func (err *NotSupportedError) Is(target error) bool {
	return target == ErrNotSupported
}
