package provider

import (
	"context"
	"fmt"
	"log"

	"github.com/hoffmann/waykit/internal/models"
	"github.com/hoffmann/waykit/pkg/geo"
	"github.com/hoffmann/waykit/pkg/overpass"
)

// OverpassProvider resolves POIs from a live Overpass-compatible endpoint.
// It performs no retries; that policy belongs to the caller.
type OverpassProvider struct {
	client *overpass.Client
}

func NewOverpassProvider(client *overpass.Client) *OverpassProvider {
	return &OverpassProvider{client: client}
}

func (p *OverpassProvider) Name() string { return string(KindOpenStreetMap) }

// QueryBBox fetches raw elements for b and maps the peaks and alpine huts
// among them into POI records. Elements of other kinds, and ways or
// relations without center coordinates, are skipped.
func (p *OverpassProvider) QueryBBox(ctx context.Context, b geo.BoundingBox) ([]models.POI, error) {
	elements, err := p.client.QueryBBox(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", p.Name(), err)
	}

	pois := make([]models.POI, 0, len(elements))
	for _, e := range elements {
		poi, ok := elementToPOI(e)
		if !ok {
			continue
		}
		pois = append(pois, poi)
	}
	log.Printf("Provider %s: %d elements, %d mapped to POIs", p.Name(), len(elements), len(pois))
	return pois, nil
}

// elementToPOI maps one Overpass element to a POI. The second return value
// is false for elements that are neither peaks nor huts, or that have no
// usable coordinates.
func elementToPOI(e overpass.Element) (models.POI, bool) {
	pos, ok := e.Position()
	if !ok {
		return models.POI{}, false
	}

	var category models.Category
	switch {
	case e.Tags["natural"] == "peak":
		category = models.CategoryPeak
	case e.Tags["tourism"] == "alpine_hut":
		category = models.CategoryHut
	default:
		return models.POI{}, false
	}

	sourceID := fmt.Sprintf("%s/%d", e.Type, e.ID)

	name := e.Tags["name"]
	if name == "" {
		name = e.Tags["ref"]
	}
	if name == "" {
		name = models.FallbackName(category, sourceID)
	}

	return models.POI{
		ID:         "osm:" + sourceID,
		Name:       name,
		Category:   category,
		Location:   pos,
		ElevationM: models.ParseElevationM(e.Tags["ele"]),
		Source:     "osm",
		SourceID:   sourceID,
		Tags:       models.TagsFromMap(e.Tags),
	}, true
}
