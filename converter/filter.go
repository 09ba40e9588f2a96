package converter

import (
	"time"

	"github.com/theoremus-urban-solutions/location-history-converter/location"
)

// Skip reasons, used as the metrics label.
const (
	skipIncomplete = "incomplete"
	skipAccuracy   = "accuracy"
	skipDate       = "date"
	skipDevice     = "device"
	skipPlatform   = "platform"
	skipRegion     = "region"
)

// Filter decides which records are converted. Every configured predicate
// must hold. Records are expected to be normalized.
type Filter struct {
	Start       *time.Time
	End         *time.Time
	MaxAccuracy *float64
	Region      Region

	// Devices holds device tags to drop.
	Devices map[int64]bool

	// AnyPlatform disables the emulator platform blocklist.
	AnyPlatform bool
}

// Passes reports whether rec survives every predicate.
func (f *Filter) Passes(rec *location.Record) bool {
	return f.reject(rec) == ""
}

// PastEnd reports whether rec lies after the end bound.
func (f *Filter) PastEnd(rec *location.Record) bool {
	return f.End != nil && rec.HasTimestamp() && rec.Time().After(*f.End)
}

// reject returns the first failing predicate, or "" when rec passes.
func (f *Filter) reject(rec *location.Record) string {
	if !rec.HasCoordinates() || !rec.HasTimestamp() {
		return skipIncomplete
	}
	if f.MaxAccuracy != nil && rec.Accuracy != nil && *rec.Accuracy > *f.MaxAccuracy {
		return skipAccuracy
	}

	t := rec.Time()
	if f.Start != nil && t.Before(*f.Start) {
		return skipDate
	}
	if f.End != nil && t.After(*f.End) {
		return skipDate
	}

	if len(f.Devices) > 0 && rec.DeviceTag != nil && f.Devices[*rec.DeviceTag] {
		return skipDevice
	}
	if !f.AnyPlatform && !validPlatform(rec) {
		return skipPlatform
	}

	if f.Region != nil && !f.Region.Contains(rec.Latitude(), rec.Longitude()) {
		return skipRegion
	}
	return ""
}
