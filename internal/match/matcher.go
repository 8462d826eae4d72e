// Package match decides which provider POIs belong to a track. It expands
// the track's bounding box for the provider query, then keeps candidates by
// exact distance, deduplicates them, and orders the result reproducibly.
package match

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/hoffmann/waykit/internal/models"
	"github.com/hoffmann/waykit/internal/provider"
	"github.com/hoffmann/waykit/pkg/geo"
)

// Default tuning. The margin only bounds the provider query and must stay
// comfortably larger than the radius, which alone decides inclusion.
const (
	DefaultMarginM = 2000.0
	DefaultRadiusM = 500.0
)

// Config carries the matcher's two distances in meters.
type Config struct {
	// MarginM expands the track bounding box before querying the provider.
	MarginM float64
	// RadiusM is the maximum distance from any track point at which a POI
	// is kept.
	RadiusM float64
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{MarginM: DefaultMarginM, RadiusM: DefaultRadiusM}
}

// Matcher associates provider POIs with tracks.
type Matcher struct {
	provider provider.Provider
	cfg      Config
}

// New builds a Matcher over p. Non-positive config values fall back to the
// defaults.
func New(p provider.Provider, cfg Config) *Matcher {
	if cfg.MarginM <= 0 {
		cfg.MarginM = DefaultMarginM
	}
	if cfg.RadiusM <= 0 {
		cfg.RadiusM = DefaultRadiusM
	}
	return &Matcher{provider: p, cfg: cfg}
}

// Match returns the POIs within the configured radius of any track point,
// deduplicated by ID and sorted by ascending distance with the ID as the
// tie-breaker. An empty track or an empty candidate set yields an empty
// result. Provider errors propagate unchanged; there is no partial-result
// mode.
func (m *Matcher) Match(ctx context.Context, track models.Track) ([]models.MatchedPOI, error) {
	box, ok := geo.BoundsOf(track)
	if !ok {
		return nil, nil
	}
	expanded := box.ExpandMeters(m.cfg.MarginM)

	candidates, err := m.provider.QueryBBox(ctx, expanded)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}

	// Best (smallest) distance per POI id; a self-intersecting track must
	// not produce the same POI twice.
	best := make(map[string]models.MatchedPOI)
	for _, poi := range candidates {
		d := minDistanceM(poi.Location, track)
		if d > m.cfg.RadiusM {
			continue
		}
		if prev, seen := best[poi.ID]; !seen || d < prev.DistanceM {
			best[poi.ID] = models.MatchedPOI{POI: poi, DistanceM: d}
		}
	}

	matched := make([]models.MatchedPOI, 0, len(best))
	for _, mp := range best {
		matched = append(matched, mp)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].DistanceM != matched[j].DistanceM {
			return matched[i].DistanceM < matched[j].DistanceM
		}
		return matched[i].POI.ID < matched[j].POI.ID
	})

	log.Printf("Matcher: %d candidates from %s, %d within %.0f m",
		len(candidates), m.provider.Name(), len(matched), m.cfg.RadiusM)
	return matched, nil
}

// minDistanceM is the exact haversine distance from p to the nearest track
// point.
func minDistanceM(p geo.Point, track models.Track) float64 {
	min := geo.HaversineM(p, track[0])
	for _, tp := range track[1:] {
		if d := geo.HaversineM(p, tp); d < min {
			min = d
		}
	}
	return min
}
