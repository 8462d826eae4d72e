// Package gpx extracts track geometry from GPX files. Route points come
// first, then track segment points, preserving document order.
package gpx

import (
	"fmt"

	gpxgo "github.com/tkrajina/gpxgo/gpx"

	"github.com/hoffmann/waykit/pkg/geo"
)

// Points extracts all route and track points from a parsed GPX document.
func Points(doc *gpxgo.GPX) []geo.Point {
	var pts []geo.Point
	for _, route := range doc.Routes {
		for _, p := range route.Points {
			pts = append(pts, geo.Point{Lat: p.Latitude, Lon: p.Longitude})
		}
	}
	for _, track := range doc.Tracks {
		for _, seg := range track.Segments {
			for _, p := range seg.Points {
				pts = append(pts, geo.Point{Lat: p.Latitude, Lon: p.Longitude})
			}
		}
	}
	return pts
}

// ParseFile reads one GPX file and returns its ordered points.
func ParseFile(path string) ([]geo.Point, error) {
	doc, err := gpxgo.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse gpx %s: %w", path, err)
	}
	return Points(doc), nil
}

// ParseFiles pools the points of several GPX files into one sequence, in
// argument order. Tracks from multiple files share a single bounding box
// downstream, so one provider query covers them all.
func ParseFiles(paths []string) ([]geo.Point, error) {
	var all []geo.Point
	for _, path := range paths {
		pts, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, pts...)
	}
	return all, nil
}
