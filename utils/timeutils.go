package utils

import (
	"time"
)

// Layouts used by the output formats.
const (
	LayoutISO8601 = "2006-01-02T15:04:05Z"
	LayoutCSV     = "2006-01-02 15:04:05"
)

// TimeFromMillis converts a millisecond Unix timestamp to UTC time.
func TimeFromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// Iso8601FromMillis formats a millisecond timestamp as second-precision
// ISO 8601 in UTC, e.g. 2017-10-06T22:30:47Z.
func Iso8601FromMillis(ms int64) string {
	return TimeFromMillis(ms).Format(LayoutISO8601)
}

// DateTimeFromMillis formats a millisecond timestamp as "2006-01-02 15:04:05"
// in UTC.
func DateTimeFromMillis(ms int64) string {
	return TimeFromMillis(ms).Format(LayoutCSV)
}

// EndOfDay returns the last microsecond of the day containing t.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_999_000, t.Location())
}
