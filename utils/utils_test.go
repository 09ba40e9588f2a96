package utils

import (
	"testing"
	"time"
)

func TestIso8601FromMillis(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		expected string
	}{
		{name: "epoch", input: 0, expected: "1970-01-01T00:00:00Z"},
		{name: "milliseconds are dropped", input: 1999, expected: "1970-01-01T00:00:01Z"},
		{name: "specific timestamp", input: 1696320000000, expected: "2023-10-03T08:00:00Z"},
		{name: "negative timestamp", input: -86400000, expected: "1969-12-31T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Iso8601FromMillis(tt.input); result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestDateTimeFromMillis(t *testing.T) {
	if got := DateTimeFromMillis(1000); got != "1970-01-01 00:00:01" {
		t.Errorf("expected 1970-01-01 00:00:01, got %s", got)
	}
	if got := DateTimeFromMillis(1507329047193); got != "2017-10-06 22:30:47" {
		t.Errorf("expected 2017-10-06 22:30:47, got %s", got)
	}
}

func TestEndOfDay(t *testing.T) {
	day := time.Date(2020, 2, 29, 13, 14, 0, 0, time.UTC)
	end := EndOfDay(day)
	want := time.Date(2020, 2, 29, 23, 59, 59, 999_999_000, time.UTC)
	if !end.Equal(want) {
		t.Errorf("expected %v, got %v", want, end)
	}
	if !end.Add(time.Microsecond).Equal(time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("end of day should be one microsecond before midnight")
	}
}

func TestFixedDegrees(t *testing.T) {
	tests := map[float64]string{
		40:         "40.00000000",
		-70:        "-70.00000000",
		51.5074453: "51.50744530",
		-0.127826:  "-0.12782600",
	}
	for in, want := range tests {
		if got := FixedDegrees(in); got != want {
			t.Errorf("FixedDegrees(%v) = %s, expected %s", in, got, want)
		}
	}
}

func TestPlainDegrees(t *testing.T) {
	tests := map[float64]string{
		40:         "40.0",
		-70:        "-70.0",
		51.5074453: "51.5074453",
		0.00001:    "0.00001",
	}
	for in, want := range tests {
		if got := PlainDegrees(in); got != want {
			t.Errorf("PlainDegrees(%v) = %s, expected %s", in, got, want)
		}
	}
}

func TestNumber(t *testing.T) {
	v := 12.0
	frac := 3.25
	if got := Number(nil); got != "" {
		t.Errorf("absent value should be empty, got %q", got)
	}
	if got := Number(&v); got != "12" {
		t.Errorf("expected 12, got %s", got)
	}
	if got := Number(&frac); got != "3.25" {
		t.Errorf("expected 3.25, got %s", got)
	}
}

func TestTruncated(t *testing.T) {
	if got := Truncated(12.9); got != "12" {
		t.Errorf("expected 12, got %s", got)
	}
	if got := Truncated(-3.7); got != "-3" {
		t.Errorf("expected -3, got %s", got)
	}
}
