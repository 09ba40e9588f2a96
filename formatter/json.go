package formatter

import (
	"io"
	"strconv"

	"github.com/mailru/easyjson/jwriter"

	"github.com/theoremus-urban-solutions/location-history-converter/location"
)

// jsonEmitter writes {"locations":[...]}, optionally assigned to a
// JavaScript variable so the file can be loaded with a script tag.
type jsonEmitter struct {
	full     bool
	variable string
}

func (e *jsonEmitter) WriteHeader(w io.Writer) error {
	header := `{"locations":[`
	if e.variable != "" {
		header = "window." + e.variable + " = " + header
	}
	_, err := io.WriteString(w, header)
	return err
}

func (e *jsonEmitter) WriteRecord(w io.Writer, rec *location.Record, first bool, _ *location.Record) error {
	out := jwriter.Writer{NoEscapeHTML: true}
	if !first {
		out.RawByte(',')
	}
	if e.full {
		rec.MarshalEasyJSON(&out)
	} else {
		out.RawString(`{"timestampMs":`)
		out.String(strconv.FormatInt(*rec.TimestampMs, 10))
		out.RawString(`,"latitudeE7":`)
		out.Int64(*rec.LatitudeE7)
		out.RawString(`,"longitudeE7":`)
		out.Int64(*rec.LongitudeE7)
		out.RawByte('}')
	}
	if out.Error != nil {
		return out.Error
	}
	_, err := out.DumpTo(w)
	return err
}

func (e *jsonEmitter) WriteFooter(w io.Writer) error {
	footer := "]}"
	if e.variable != "" {
		footer += ";"
	}
	_, err := io.WriteString(w, footer)
	return err
}
