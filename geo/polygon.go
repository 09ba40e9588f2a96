package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ErrTooFewVertices is returned for polygons with fewer than three vertices.
var ErrTooFewVertices = errors.New("polygon needs at least 3 vertices")

// LatLon is a vertex in decimal degrees.
type LatLon struct {
	Lat float64
	Lon float64
}

// Polygon is a closed boundary used to keep only the points inside it.
// Points on the boundary count as inside.
type Polygon struct {
	poly orb.Polygon
}

// NewPolygon builds a polygon from its vertices in order. The ring is closed
// automatically.
func NewPolygon(vertices []LatLon) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewVertices, len(vertices))
	}
	ring := make(orb.Ring, 0, len(vertices)+1)
	for _, v := range vertices {
		ring = append(ring, orb.Point{v.Lon, v.Lat})
	}
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return &Polygon{poly: orb.Polygon{ring}}, nil
}

// NewRectangle builds the axis-aligned rectangle spanned by two opposite
// corners.
func NewRectangle(a, b LatLon) (*Polygon, error) {
	minLat, maxLat := math.Min(a.Lat, b.Lat), math.Max(a.Lat, b.Lat)
	minLon, maxLon := math.Min(a.Lon, b.Lon), math.Max(a.Lon, b.Lon)
	return NewPolygon([]LatLon{
		{Lat: minLat, Lon: minLon},
		{Lat: maxLat, Lon: minLon},
		{Lat: maxLat, Lon: maxLon},
		{Lat: minLat, Lon: maxLon},
	})
}

// Contains reports whether the point lies inside or on the polygon.
func (p *Polygon) Contains(lat, lon float64) bool {
	return planar.PolygonContains(p.poly, orb.Point{lon, lat})
}
