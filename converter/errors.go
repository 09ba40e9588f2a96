package converter

import "errors"

var (
	// ErrUnsupportedCombination is returned by Run when a streaming source is
	// combined with an option that needs every record in memory.
	ErrUnsupportedCombination = errors.New("unsupported combination of options")

	// ErrInvalidOptions is returned by New for inconsistent options.
	ErrInvalidOptions = errors.New("invalid converter options")
)
