// Package geo holds the shared geographic value types and the small-area
// math used across waykit: haversine distances, bounding boxes over track
// points, and the equirectangular local projection that the grid index is
// built on.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// EarthRadiusM is the mean Earth radius in meters.
const EarthRadiusM = 6371008.8

// ErrInvalidBoundingBox reports a malformed bounding box, including one that
// would cross the antimeridian (min longitude greater than max longitude).
// Regional hiking areas never cross it, so wraparound is rejected rather
// than handled.
var ErrInvalidBoundingBox = errors.New("invalid bounding box")

// Point is a WGS-84 coordinate in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Projected is a point in local meter coordinates relative to a projection
// origin. X grows east, Y grows north.
type Projected struct {
	X float64
	Y float64
}

// ProjectLocal converts a lat/lon point to local meter coordinates using an
// equirectangular approximation around origin. One degree of latitude is
// always EarthRadiusM*radians(1) meters; longitude is scaled by cos(origin
// latitude). Accurate for regional extents, not for continental scale.
func ProjectLocal(p, origin Point) Projected {
	latR := p.Lat * math.Pi / 180
	lonR := p.Lon * math.Pi / 180
	lat0R := origin.Lat * math.Pi / 180
	lon0R := origin.Lon * math.Pi / 180

	return Projected{
		X: EarthRadiusM * (lonR - lon0R) * math.Cos(lat0R),
		Y: EarthRadiusM * (latR - lat0R),
	}
}

// HaversineM returns the great-circle distance between two points in meters.
func HaversineM(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusM * math.Asin(math.Sqrt(h))
}

// BoundingBox is an axis-aligned lat/lon rectangle. A valid box has
// MinLat <= MaxLat and MinLon <= MaxLon.
type BoundingBox struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Validate returns ErrInvalidBoundingBox when min exceeds max on either
// axis, with the offending values in the message.
func (b BoundingBox) Validate() error {
	if b.MinLat > b.MaxLat || b.MinLon > b.MaxLon {
		return fmt.Errorf("%w: (%.6f,%.6f)..(%.6f,%.6f)",
			ErrInvalidBoundingBox, b.MinLat, b.MinLon, b.MaxLat, b.MaxLon)
	}
	return nil
}

// Contains reports whether p lies inside the box, borders included.
func (b BoundingBox) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

// BoundsOf computes the bounding box of a point set. The second return value
// is false when points is empty. A single point yields a valid zero-area box.
func BoundsOf(points []Point) (BoundingBox, bool) {
	if len(points) == 0 {
		return BoundingBox{}, false
	}
	b := BoundingBox{
		MinLat: points[0].Lat, MaxLat: points[0].Lat,
		MinLon: points[0].Lon, MaxLon: points[0].Lon,
	}
	for _, p := range points[1:] {
		if p.Lat < b.MinLat {
			b.MinLat = p.Lat
		}
		if p.Lat > b.MaxLat {
			b.MaxLat = p.Lat
		}
		if p.Lon < b.MinLon {
			b.MinLon = p.Lon
		}
		if p.Lon > b.MaxLon {
			b.MaxLon = p.Lon
		}
	}
	return b, true
}

// ExpandMeters grows the box outward by margin meters on every side, using
// the same equirectangular degrees conversion as the projection. The cosine
// of the box's mid latitude is clamped to 0.1 so a box near the poles cannot
// blow up the longitude margin.
func (b BoundingBox) ExpandMeters(marginM float64) BoundingBox {
	midLat := (b.MinLat + b.MaxLat) / 2
	metersPerDegLat := EarthRadiusM * math.Pi / 180
	cosLat := math.Cos(math.Abs(midLat) * math.Pi / 180)
	if cosLat < 0.1 {
		cosLat = 0.1
	}
	dLat := marginM / metersPerDegLat
	dLon := marginM / (metersPerDegLat * cosLat)
	return BoundingBox{
		MinLat: b.MinLat - dLat,
		MinLon: b.MinLon - dLon,
		MaxLat: b.MaxLat + dLat,
		MaxLon: b.MaxLon + dLon,
	}
}
