package imagesource

import "errors"

var (
	// ErrEmptySource is returned when a zero-value Source is used.
	ErrEmptySource = errors.New("image source is empty")

	// ErrTypeMismatch is returned by FromValue for values that are neither a
	// path string nor a byte buffer.
	ErrTypeMismatch = errors.New("invalid input argument type, cannot create image source")

	// ErrClosed is returned when a Source reference is used after Close.
	ErrClosed = errors.New("image source is closed")
)
