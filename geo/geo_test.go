package geo

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/location-history-converter/location"
)

func TestHaversineKM(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expected               float64
	}{
		{name: "same point", lat1: 40, lon1: -70, lat2: 40, lon2: -70, expected: 0},
		{name: "one degree along equator", lat1: 0, lon1: 0, lat2: 0, lon2: 1, expected: 111.19492664455873},
		{name: "one degree of latitude", lat1: 10, lon1: 5, lat2: 11, lon2: 5, expected: 111.19492664455873},
		{name: "pole to pole", lat1: 90, lon1: 0, lat2: -90, lon2: 0, expected: math.Pi * EarthRadiusKm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKM(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.expected) > 1e-6 {
				t.Errorf("expected %f km, got %f km", tt.expected, got)
			}
		})
	}
}

func TestHaversineKM_Symmetric(t *testing.T) {
	points := [][2]float64{{0, 0}, {51.5, -0.12}, {-33.86, 151.2}, {40.7, -74}, {89.9, 179.9}}
	for _, a := range points {
		for _, b := range points {
			ab := HaversineKM(a[0], a[1], b[0], b[1])
			ba := HaversineKM(b[0], b[1], a[0], a[1])
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("distance(%v,%v)=%f but distance(%v,%v)=%f", a, b, ab, b, a, ba)
			}
		}
		if d := HaversineKM(a[0], a[1], a[0], a[1]); d != 0 {
			t.Errorf("distance from %v to itself should be 0, got %f", a, d)
		}
	}
}

func record(ms int64, lat, lon float64) *location.Record {
	latE7 := int64(math.Round(lat * location.E7))
	lonE7 := int64(math.Round(lon * location.E7))
	return &location.Record{TimestampMs: &ms, LatitudeE7: &latE7, LongitudeE7: &lonE7}
}

func TestSegmenter_ShouldStartNewSegment(t *testing.T) {
	minute := int64(time.Minute / time.Millisecond)
	s := DefaultSegmenter()

	tests := []struct {
		name     string
		current  *location.Record
		previous *location.Record
		expected bool
	}{
		{
			name:     "11 minutes apart, same place",
			previous: record(0, 48.0, 11.0),
			current:  record(11*minute, 48.0, 11.0),
			expected: true,
		},
		{
			name:     "5 minutes apart, 41 km",
			previous: record(0, 48.0, 11.0),
			current:  record(5*minute, 48.37, 11.0),
			expected: true,
		},
		{
			name:     "5 minutes apart, 10 km",
			previous: record(0, 48.0, 11.0),
			current:  record(5*minute, 48.09, 11.0),
			expected: false,
		},
		{
			name:     "exactly 10 minutes is continuous",
			previous: record(0, 48.0, 11.0),
			current:  record(10*minute, 48.0, 11.0),
			expected: false,
		},
		{
			name:     "out of order uses absolute gap",
			previous: record(20*minute, 48.0, 11.0),
			current:  record(0, 48.0, 11.0),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.ShouldStartNewSegment(tt.current, tt.previous); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSegmenter_CustomThresholds(t *testing.T) {
	s := Segmenter{MaxGap: time.Minute, MaxJumpKM: 1}
	prev := record(0, 0, 0)
	if !s.ShouldStartNewSegment(record(90_000, 0, 0), prev) {
		t.Error("90s gap should split with a 1 minute threshold")
	}
	if !s.ShouldStartNewSegment(record(1000, 0.02, 0), prev) {
		t.Error("~2.2 km jump should split with a 1 km threshold")
	}
}

func TestPolygon_Contains(t *testing.T) {
	square, err := NewPolygon([]LatLon{{0, 0}, {0, 10}, {10, 10}, {10, 0}})
	if err != nil {
		t.Fatalf("NewPolygon failed: %v", err)
	}

	tests := []struct {
		name     string
		lat, lon float64
		expected bool
	}{
		{name: "inside", lat: 5, lon: 5, expected: true},
		{name: "on edge", lat: 0, lon: 5, expected: true},
		{name: "on vertex", lat: 10, lon: 10, expected: true},
		{name: "outside", lat: 11, lon: 5, expected: false},
		{name: "swapped axes outside", lat: 5, lon: -1, expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := square.Contains(tt.lat, tt.lon); got != tt.expected {
				t.Errorf("Contains(%f, %f) = %v, expected %v", tt.lat, tt.lon, got, tt.expected)
			}
		})
	}
}

func TestPolygon_Triangle(t *testing.T) {
	tri, err := NewPolygon([]LatLon{{0, 0}, {10, 0}, {0, 10}})
	if err != nil {
		t.Fatalf("NewPolygon failed: %v", err)
	}
	if !tri.Contains(2, 2) {
		t.Error("(2,2) should be inside the triangle")
	}
	if tri.Contains(8, 8) {
		t.Error("(8,8) should be outside the triangle")
	}
}

func TestNewPolygon_TooFewVertices(t *testing.T) {
	_, err := NewPolygon([]LatLon{{0, 0}, {1, 1}})
	if !errors.Is(err, ErrTooFewVertices) {
		t.Errorf("expected ErrTooFewVertices, got %v", err)
	}
}

func TestNewRectangle(t *testing.T) {
	rect, err := NewRectangle(LatLon{Lat: 52, Lon: 14}, LatLon{Lat: 51, Lon: 13})
	if err != nil {
		t.Fatalf("NewRectangle failed: %v", err)
	}
	if !rect.Contains(51.5, 13.5) {
		t.Error("center should be inside")
	}
	if rect.Contains(51.5, 14.5) {
		t.Error("point east of the rectangle should be outside")
	}
}
