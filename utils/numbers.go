package utils

import (
	"strconv"
	"strings"
)

// FixedDegrees formats decimal degrees with 8 fractional digits.
func FixedDegrees(deg float64) string {
	return strconv.FormatFloat(deg, 'f', 8, 64)
}

// PlainDegrees formats decimal degrees in their shortest form, keeping a
// trailing ".0" on integral values so the output always reads as a decimal.
func PlainDegrees(deg float64) string {
	s := strconv.FormatFloat(deg, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Number formats an optional measurement in its shortest form, or returns
// the empty string when it is absent.
func Number(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// Truncated formats a measurement as an integer, dropping any fraction.
func Truncated(v float64) string {
	return strconv.FormatInt(int64(v), 10)
}
