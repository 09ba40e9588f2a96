package converter

import (
	"context"
	"time"

	"github.com/theoremus-urban-solutions/location-history-converter/formatter"
	"github.com/theoremus-urban-solutions/location-history-converter/geo"
	"github.com/theoremus-urban-solutions/location-history-converter/location"
)

// Options contains everything a conversion needs. It has no dependency on
// config files; the CLI and config package fill it in.
type Options struct {
	// Format selects the output format.
	Format formatter.Format

	// Variable is the JavaScript variable name for js and jsfull.
	// Defaults to formatter.DefaultVariable.
	Variable string

	// Separator joins the columns of the csv formats. Defaults to ",".
	Separator string

	// Title names the KML document and the GPX metadata.
	Title string

	// Start and End bound the record timestamps, both inclusive. Callers
	// extend a date-only End to the end of that day.
	Start *time.Time
	End   *time.Time

	// MaxAccuracy drops records whose accuracy radius is larger.
	MaxAccuracy *float64

	// Region keeps only records inside it. Optional.
	Region Region

	// Chronological sorts records by timestamp before conversion. Requires a
	// non-streaming source.
	Chronological bool

	// AssumeSorted promises the input is already in ascending time order.
	// It allows stopping at the first record past End and allows gpxtracks
	// on a streaming source. Out-of-order input past End is dropped silently.
	AssumeSorted bool

	// FilteredDevices lists device tags whose records are dropped.
	FilteredDevices []int64

	// AutoDevices drops every device that ever reported an emulator
	// platform. Requires a non-streaming source.
	AutoDevices bool

	// Segmenter splits gpxtracks output. The zero value uses the defaults.
	Segmenter geo.Segmenter

	// ProgressEvery logs a progress line every n records read. Zero disables it.
	ProgressEvery int
}

// Region is a containment test on decimal degrees; *geo.Polygon implements it.
type Region interface {
	Contains(lat, lon float64) bool
}

// Source yields location records one at a time. Next returns nil, nil once
// the input is exhausted.
type Source interface {
	Next(ctx context.Context) (*location.Record, error)
	// Streaming reports whether records are decoded lazily from the input.
	Streaming() bool
}

// Stats counts the records seen by a run.
type Stats struct {
	Read    int
	Emitted int
	Skipped int
}
