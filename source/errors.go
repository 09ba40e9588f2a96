package source

import "errors"

var (
	// ErrMalformedInput is returned when the input is not valid JSON.
	ErrMalformedInput = errors.New("malformed input")

	// ErrDataShape is returned when the input has no location collection.
	ErrDataShape = errors.New("input has no location records")
)
