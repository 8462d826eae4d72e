// Package models defines the domain records flowing through the waykit
// pipeline: points of interest, tracks, and matched results.
package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hoffmann/waykit/pkg/geo"
)

// Category classifies a point of interest.
type Category string

const (
	CategoryPeak  Category = "peak"
	CategoryHut   Category = "hut"
	CategoryOther Category = "other"
)

// POI is a single point of interest with its provenance.
type POI struct {
	// ID is the stable identifier, e.g. "osm:node/12345".
	ID         string
	Name       string
	Category   Category
	Location   geo.Point
	ElevationM *float64
	// Source names the originating dataset ("osm"), SourceID the record
	// within it ("node/12345").
	Source   string
	SourceID string
	URL      string
	// Tags carries raw source tags as sorted "key=value" strings.
	Tags []string
}

// MatchedPOI pairs a POI with its minimum distance to the track.
type MatchedPOI struct {
	POI       POI
	DistanceM float64
}

// Track is the ordered point sequence of a hiking route.
type Track []geo.Point

// ParseElevationM parses an elevation value as found in OSM "ele" tags.
// Accepts plain numbers and forms like "2431 m". Returns nil when the value
// is empty or unparsable.
func ParseElevationM(raw string) *float64 {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "m"))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// FallbackName builds a display name for an unnamed POI from its category
// and source id, e.g. "Hut node/12345".
func FallbackName(category Category, sourceID string) string {
	c := string(category)
	if c == "" {
		c = string(CategoryOther)
	}
	return fmt.Sprintf("%s%s %s", strings.ToUpper(c[:1]), c[1:], sourceID)
}

// TagsFromMap converts a raw tag map into the sorted "key=value" form used
// on POI.Tags.
func TagsFromMap(tags map[string]string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for k, v := range tags {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
