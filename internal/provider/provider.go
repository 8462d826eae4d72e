// Package provider defines the capability shared by all POI sources: given a
// bounding box, return the POI records inside it. Implementations are
// otherwise unrelated; the matcher depends only on this interface.
package provider

import (
	"context"
	"fmt"

	"github.com/hoffmann/waykit/internal/models"
	"github.com/hoffmann/waykit/pkg/geo"
)

// Provider answers bounding-box POI queries.
//
// An empty result slice is a valid answer and never an error. Implementations
// must keep "no POIs found" distinct from "could not ask": a failing remote
// lookup returns an error wrapping overpass.ErrRemoteUnavailable, an
// unusable offline dataset one wrapping snapshot.ErrDatasetCorrupt.
type Provider interface {
	// Name identifies the provider in errors and logs.
	Name() string
	// QueryBBox returns the POIs inside b. Results may conservatively
	// include records slightly outside it; callers post-filter by exact
	// distance.
	QueryBBox(ctx context.Context, b geo.BoundingBox) ([]models.POI, error)
}

// Kind selects a Provider implementation at startup.
type Kind string

const (
	KindOpenStreetMap Kind = "openstreetmap"
	KindCached        Kind = "cached"
	KindPostgres      Kind = "postgres"
)

// ParseKind validates a provider selection string. The empty string selects
// KindOpenStreetMap, the default.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case "":
		return KindOpenStreetMap, nil
	case KindOpenStreetMap, KindCached, KindPostgres:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown provider %q (have: %s, %s, %s)",
		s, KindOpenStreetMap, KindCached, KindPostgres)
}
