// Package output turns a track and its matched POIs into a GeoJSON feature
// collection. Pure shape transform; no matching logic lives here.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/hoffmann/waykit/internal/models"
)

// Assemble builds a feature collection with the track as a LineString
// feature followed by one Point feature per matched POI, in the matcher's
// sorted order. A track with fewer than two points contributes no track
// feature; an empty match list is a valid, empty enrichment.
func Assemble(track models.Track, matched []models.MatchedPOI) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	if len(track) >= 2 {
		line := make(orb.LineString, len(track))
		for i, p := range track {
			line[i] = orb.Point{p.Lon, p.Lat}
		}
		f := geojson.NewFeature(line)
		f.Properties["kind"] = "track"
		fc.Append(f)
	}

	for _, m := range matched {
		f := geojson.NewFeature(orb.Point{m.POI.Location.Lon, m.POI.Location.Lat})
		f.ID = m.POI.ID
		f.Properties["name"] = m.POI.Name
		f.Properties["kind"] = string(m.POI.Category)
		f.Properties["distance_m"] = round1(m.DistanceM)
		f.Properties["source"] = m.POI.Source
		f.Properties["source_id"] = m.POI.SourceID
		if m.POI.ElevationM != nil {
			f.Properties["ele_m"] = *m.POI.ElevationM
		}
		if m.POI.URL != "" {
			f.Properties["url"] = m.POI.URL
		}
		if len(m.POI.Tags) > 0 {
			f.Properties["osm_tags"] = m.POI.Tags
		}
		fc.Append(f)
	}
	return fc
}

// round1 truncates noise below a decimeter so output stays stable across
// platforms.
func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}

// Write marshals the collection fully before emitting a single write, so a
// marshal failure never leaves partial output behind.
func Write(w io.Writer, fc *geojson.FeatureCollection) error {
	data, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("marshal feature collection: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write feature collection: %w", err)
	}
	return nil
}

// WriteFile writes the collection to path, or to stdout when path is "-".
// The file is only created after the collection marshalled successfully.
func WriteFile(path string, fc *geojson.FeatureCollection) error {
	if path == "-" {
		return Write(os.Stdout, fc)
	}
	var buf bytes.Buffer
	if err := Write(&buf, fc); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
