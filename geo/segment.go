package geo

import (
	"time"

	"github.com/theoremus-urban-solutions/location-history-converter/location"
)

// Default gap thresholds for splitting tracks.
const (
	DefaultMaxGap    = 10 * time.Minute
	DefaultMaxJumpKM = 40.0
)

// Segmenter decides where a track is split. A gap in time or space larger
// than the thresholds means the device was not continuously recording, so
// the points on either side are not joined by a line.
//
// Segmentation assumes records arrive in time order; unsorted input yields
// segments that do not follow real travel.
type Segmenter struct {
	MaxGap    time.Duration
	MaxJumpKM float64
}

// DefaultSegmenter splits after 10 minutes or 40 km.
func DefaultSegmenter() Segmenter {
	return Segmenter{MaxGap: DefaultMaxGap, MaxJumpKM: DefaultMaxJumpKM}
}

// ShouldStartNewSegment reports whether current starts a new segment after
// previous. Both records must carry a timestamp and coordinates.
func (s Segmenter) ShouldStartNewSegment(current, previous *location.Record) bool {
	deltaMs := *current.TimestampMs - *previous.TimestampMs
	if deltaMs < 0 {
		deltaMs = -deltaMs
	}
	minutes := float64(deltaMs) / 60000
	distanceKM := HaversineKM(
		current.Latitude(), current.Longitude(),
		previous.Latitude(), previous.Longitude(),
	)
	return minutes > s.MaxGap.Minutes() || distanceKM > s.MaxJumpKM
}
