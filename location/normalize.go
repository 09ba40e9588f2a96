package location

const (
	// overflowThresholdE7 is above any valid E7 longitude (180 * 1e7).
	overflowThresholdE7 int64 = 1_800_000_000
	// uint32Range is 2^32.
	uint32Range int64 = 4_294_967_296
)

// NormalizeE7 reverses the unsigned/signed overflow found in some Takeout
// exports. Values that are already in range are returned unchanged, so the
// function is idempotent.
func NormalizeE7(v int64) int64 {
	for v > overflowThresholdE7 {
		v -= uint32Range
	}
	return v
}

// Normalize corrects both coordinates of r in place. Absent coordinates are
// left untouched.
func (r *Record) Normalize() {
	if r.LatitudeE7 != nil {
		lat := NormalizeE7(*r.LatitudeE7)
		r.LatitudeE7 = &lat
	}
	if r.LongitudeE7 != nil {
		lon := NormalizeE7(*r.LongitudeE7)
		r.LongitudeE7 = &lon
	}
}
