package formatter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/theoremus-urban-solutions/location-history-converter/geo"
	"github.com/theoremus-urban-solutions/location-history-converter/location"
)

// Format names an output format.
type Format string

// Supported formats.
const (
	FormatKML        Format = "kml"
	FormatJSON       Format = "json"
	FormatJS         Format = "js"
	FormatJSONFull   Format = "jsonfull"
	FormatJSFull     Format = "jsfull"
	FormatCSV        Format = "csv"
	FormatCSVFull    Format = "csvfull"
	FormatCSVFullest Format = "csvfullest"
	FormatGPX        Format = "gpx"
	FormatGPXTracks  Format = "gpxtracks"
)

// Defaults applied by New when Settings leaves them empty.
const (
	DefaultVariable  = "locationJsonData"
	DefaultSeparator = ","
	DefaultTitle     = "Location History"
)

// ErrUnknownFormat is returned for format names that are not supported.
var ErrUnknownFormat = errors.New("unknown output format")

var formats = []Format{
	FormatKML, FormatJSON, FormatJS, FormatJSONFull, FormatJSFull,
	FormatCSV, FormatCSVFull, FormatCSVFullest, FormatGPX, FormatGPXTracks,
}

// Formats lists every supported format.
func Formats() []Format {
	return append([]Format(nil), formats...)
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// RequiresOrder reports whether records must be processed in chronological
// order for the output to be meaningful.
func (f Format) RequiresOrder() bool {
	return f == FormatGPXTracks
}

// Settings carries the format options.
type Settings struct {
	// Variable is the JavaScript variable assigned by js and jsfull.
	Variable string
	// Separator joins the columns of the csv formats.
	Separator string
	// Title names the KML document and the GPX metadata.
	Title string
	// Segmenter splits gpxtracks output; the zero value uses the defaults.
	Segmenter geo.Segmenter
}

// Emitter writes one output format. Records passed to WriteRecord always
// have a timestamp and both coordinates.
type Emitter interface {
	WriteHeader(w io.Writer) error
	// WriteRecord writes rec. first is true for the first record of the
	// output and prev is the previously written record, or nil.
	WriteRecord(w io.Writer, rec *location.Record, first bool, prev *location.Record) error
	WriteFooter(w io.Writer) error
}

// New returns the emitter for format f.
func New(f Format, s Settings) (Emitter, error) {
	if s.Variable == "" {
		s.Variable = DefaultVariable
	}
	if s.Separator == "" {
		s.Separator = DefaultSeparator
	}
	if s.Title == "" {
		s.Title = DefaultTitle
	}
	if s.Segmenter == (geo.Segmenter{}) {
		s.Segmenter = geo.DefaultSegmenter()
	}

	switch f {
	case FormatJSON:
		return &jsonEmitter{}, nil
	case FormatJS:
		return &jsonEmitter{variable: s.Variable}, nil
	case FormatJSONFull:
		return &jsonEmitter{full: true}, nil
	case FormatJSFull:
		return &jsonEmitter{full: true, variable: s.Variable}, nil
	case FormatCSV:
		return &csvEmitter{separator: s.Separator, columns: csvBasic}, nil
	case FormatCSVFull:
		return &csvEmitter{separator: s.Separator, columns: csvFull}, nil
	case FormatCSVFullest:
		return &csvEmitter{separator: s.Separator, columns: csvFullest}, nil
	case FormatKML:
		return &kmlEmitter{title: s.Title}, nil
	case FormatGPX:
		return &gpxEmitter{title: s.Title}, nil
	case FormatGPXTracks:
		return &gpxTrackEmitter{title: s.Title, segmenter: s.Segmenter}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}
