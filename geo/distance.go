package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by HaversineKM.
const EarthRadiusKm = 6371

// HaversineKM returns the great-circle distance in kilometers between two
// points given in decimal degrees.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLon := degreesToRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(lat1))*math.Cos(degreesToRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

func degreesToRadians(d float64) float64 {
	return d * (math.Pi / 180)
}
