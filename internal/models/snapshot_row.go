package models

import (
	"fmt"
	"strings"

	"github.com/hoffmann/waykit/pkg/geo"
)

// SnapshotRow is one line of the bundled JSONL snapshot: an OSM export row
// with minimal fields. Elevation may arrive as a JSON number or as a string
// like "2431 m", so it is decoded loosely and normalized in ToPOI.
type SnapshotRow struct {
	URI  string            `json:"uri"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Name string            `json:"name"`
	Ele  any               `json:"ele"`
	Type string            `json:"type"`
	URL  string            `json:"url"`
	Tags map[string]string `json:"tags"`
}

// ToPOI converts a snapshot row into a POI. Rows with an empty uri or
// out-of-range coordinates are rejected.
func (r SnapshotRow) ToPOI() (POI, error) {
	if r.URI == "" {
		return POI{}, fmt.Errorf("snapshot row missing uri")
	}
	if r.Lat < -90 || r.Lat > 90 || r.Lon < -180 || r.Lon > 180 {
		return POI{}, fmt.Errorf("snapshot row %s: coordinates (%f, %f) out of range", r.URI, r.Lat, r.Lon)
	}

	category := CategoryOther
	switch r.Type {
	case "alpine_hut":
		category = CategoryHut
	case "peak":
		category = CategoryPeak
	}

	// uri looks like "osm:node/12345"; the part after the prefix is the
	// source-local id.
	sourceID := strings.TrimPrefix(r.URI, "osm:")

	name := r.Name
	if name == "" {
		name = FallbackName(category, sourceID)
	}

	var ele *float64
	switch v := r.Ele.(type) {
	case float64:
		e := v
		ele = &e
	case string:
		ele = ParseElevationM(v)
	}

	p := POI{
		ID:         r.URI,
		Name:       name,
		Category:   category,
		Location:   geo.Point{Lat: r.Lat, Lon: r.Lon},
		ElevationM: ele,
		Source:     "osm",
		SourceID:   sourceID,
		URL:        r.URL,
		Tags:       TagsFromMap(r.Tags),
	}
	return p, nil
}
