package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/theoremus-urban-solutions/location-history-converter/location"
)

// Stream decodes the "locations" array of a Takeout export one element at a
// time.
type Stream struct {
	dec  *json.Decoder
	done bool
}

// OpenStream positions a decoder on the first element of the "locations"
// array. Top-level keys before it are skipped. Shape errors are reported
// here, before any record is read.
func OpenStream(r io.Reader) (*Stream, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrDataShape)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
		}
		if key, _ := tok.(string); key != "locations" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("%w: skipping %q: %w", ErrMalformedInput, key, err)
			}
			continue
		}

		tok, err = dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
		}
		if d, ok := tok.(json.Delim); !ok || d != '[' {
			return nil, fmt.Errorf("%w: \"locations\" is not an array", ErrDataShape)
		}
		return &Stream{dec: dec}, nil
	}

	return nil, ErrDataShape
}

// Next decodes the next record; it returns nil, nil at the end of the array.
func (s *Stream) Next(ctx context.Context) (*location.Record, error) {
	if s.done {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !s.dec.More() {
		s.done = true
		// closing ']'; also surfaces truncated input
		if _, err := s.dec.Token(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
		}
		return nil, nil
	}

	rec := new(location.Record)
	if err := s.dec.Decode(rec); err != nil {
		return nil, fmt.Errorf("%w: decoding location: %w", ErrMalformedInput, err)
	}
	return rec, nil
}

// Streaming is true: records are decoded lazily.
func (s *Stream) Streaming() bool { return true }
