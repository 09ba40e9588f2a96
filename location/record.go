package location

import (
	"encoding/json"
	"slices"
	"time"
)

// E7 is the scale factor between E7 integers and decimal degrees.
const E7 = 10_000_000

// Record is one location observation.
type Record struct {
	TimestampMs *int64
	LatitudeE7  *int64
	LongitudeE7 *int64

	Accuracy         *float64 // meters; larger is worse
	Altitude         *float64 // meters
	Speed            *float64
	Heading          *float64 // degrees
	VerticalAccuracy *float64
	Velocity         *float64

	DeviceTag    *int64
	Platform     string
	PlatformType string // ANDROID, IOS or UNKNOWN

	Activity []ActivitySample

	// Extra holds every key the model does not know about, and every key
	// whose value is null, verbatim.
	Extra map[string]json.RawMessage

	timestampForm timestampForm
}

// timestampForm records how timestampMs appeared in the input so it can be
// written back the same way.
type timestampForm uint8

const (
	timestampString  timestampForm = iota // Takeout layout, also used for records built in code
	timestampNumber                       // JSON number
	timestampDerived                      // computed from "timestamp"; not written
)

// ActivitySample is one activity detection attached to a record.
type ActivitySample struct {
	TimestampMs string
	Timestamp   string
	Activity    []ActivityReading
	Extra       map[string]json.RawMessage

	numericTimestamp bool
}

// ActivityReading is the confidence (0-100) for one activity type. A nil
// Confidence means the key was absent.
type ActivityReading struct {
	Type       ActivityType
	Confidence *int
	Extra      map[string]json.RawMessage
}

// HasCoordinates reports whether both coordinates are present.
func (r *Record) HasCoordinates() bool {
	return r.LatitudeE7 != nil && r.LongitudeE7 != nil
}

// HasTimestamp reports whether the record carries a timestamp.
func (r *Record) HasTimestamp() bool {
	return r.TimestampMs != nil
}

// Time returns the record timestamp in UTC, or the zero time if absent.
func (r *Record) Time() time.Time {
	if r.TimestampMs == nil {
		return time.Time{}
	}
	return time.UnixMilli(*r.TimestampMs).UTC()
}

// Latitude returns the latitude in decimal degrees.
func (r *Record) Latitude() float64 {
	if r.LatitudeE7 == nil {
		return 0
	}
	return float64(*r.LatitudeE7) / E7
}

// Longitude returns the longitude in decimal degrees.
func (r *Record) Longitude() float64 {
	if r.LongitudeE7 == nil {
		return 0
	}
	return float64(*r.LongitudeE7) / E7
}

// Activities returns the confidences of the record's activity sample. Only a
// single-sample sequence is considered; anything else yields an empty map.
// Readings without a type or a confidence are ignored. When a type is
// reported twice the last reading wins.
func (r *Record) Activities() map[ActivityType]int {
	acts := make(map[ActivityType]int)
	if len(r.Activity) != 1 {
		return acts
	}
	for _, reading := range r.Activity[0].Activity {
		if reading.Type == "" || reading.Confidence == nil {
			continue
		}
		acts[reading.Type] = *reading.Confidence
	}
	return acts
}

// SortChronological orders records by ascending timestamp. The sort is
// stable so records sharing a timestamp keep their input order.
func SortChronological(records []*Record) {
	slices.SortStableFunc(records, func(a, b *Record) int {
		return compareInt64(a.TimestampMs, b.TimestampMs)
	})
}

// missing timestamps sort first
func compareInt64(a, b *int64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}
