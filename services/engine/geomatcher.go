// Package engine holds the availability and pricing computations. Every
// operation is a pure, synchronous function over snapshots the caller has
// already fetched; the package never touches the database, the cache or the
// clock on its own.
package engine

import (
	"math"

	"soothely/models"
)

const earthRadiusKm = 6371.0

// boundaryEpsilon bounds the cross-product test for a point lying exactly
// on a polygon edge. Boundary points count as inside.
const boundaryEpsilon = 1e-9

// IsServedBy reports whether the location falls inside the provider's
// declared service area. A polygon with at least 3 vertices is tried first
// and short-circuits the radius check on a hit; the radius around the
// provider's coordinates is the fallback. A provider with neither has no
// coverage and never matches.
func IsServedBy(loc models.GeoPoint, p models.Provider) bool {
	if p.ServiceArea == nil {
		return false
	}
	if len(p.ServiceArea.Polygon) >= 3 && pointInPolygon(loc, p.ServiceArea.Polygon) {
		return true
	}
	if p.ServiceArea.RadiusKm > 0 && p.Location != nil {
		return HaversineKm(loc, *p.Location) <= p.ServiceArea.RadiusKm
	}
	return false
}

// HaversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func HaversineKm(a, b models.GeoPoint) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)
	rLat1 := radians(a.Lat)
	rLat2 := radians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// pointInPolygon runs the ray-casting test: a horizontal ray from the test
// point crosses the ring's edges an odd number of times iff the point is
// inside. Points on an edge are treated as inside.
func pointInPolygon(pt models.GeoPoint, ring []models.GeoPoint) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := ring[j], ring[i]
		if pointOnSegment(pt, a, b) {
			return true
		}
		if (a.Lat > pt.Lat) != (b.Lat > pt.Lat) {
			crossLng := (b.Lng-a.Lng)*(pt.Lat-a.Lat)/(b.Lat-a.Lat) + a.Lng
			if pt.Lng < crossLng {
				inside = !inside
			}
		}
	}
	return inside
}

// pointOnSegment reports whether pt lies on the segment a-b, within
// boundaryEpsilon of collinearity.
func pointOnSegment(pt, a, b models.GeoPoint) bool {
	cross := (b.Lat-a.Lat)*(pt.Lng-a.Lng) - (b.Lng-a.Lng)*(pt.Lat-a.Lat)
	if math.Abs(cross) > boundaryEpsilon {
		return false
	}
	if pt.Lat < math.Min(a.Lat, b.Lat)-boundaryEpsilon || pt.Lat > math.Max(a.Lat, b.Lat)+boundaryEpsilon {
		return false
	}
	if pt.Lng < math.Min(a.Lng, b.Lng)-boundaryEpsilon || pt.Lng > math.Max(a.Lng, b.Lng)+boundaryEpsilon {
		return false
	}
	return true
}
