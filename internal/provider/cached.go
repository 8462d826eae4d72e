package provider

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/hoffmann/waykit/internal/models"
	"github.com/hoffmann/waykit/internal/snapshot"
	"github.com/hoffmann/waykit/pkg/geo"
	"github.com/hoffmann/waykit/pkg/grid"
)

// Defaults for the cached provider's grid. The origin sits in the central
// Alps and must stay constant across runs so cell IDs remain stable; the
// cell size balances bucket population against cells touched per query.
// Both affect performance only, never which POIs a query returns.
const DefaultCellSizeM = 200.0

var DefaultOrigin = geo.Point{Lat: 47.0, Lon: 10.0}

// CachedProvider answers queries from a bundled offline snapshot. The
// snapshot is loaded and indexed once, on first query, behind a sync.Once:
// concurrent first calls all observe the same completed index, which is
// read-only afterward and safe for any number of concurrent readers.
type CachedProvider struct {
	path      string
	cellSizeM float64
	origin    geo.Point

	once    sync.Once
	index   *grid.Index[models.POI]
	corrupt int
	loadErr error
}

// NewCachedProvider prepares a provider for the snapshot file at path.
// Nothing is read until the first query. A cellSizeM of zero selects
// DefaultCellSizeM; a zero origin selects DefaultOrigin.
func NewCachedProvider(path string, cellSizeM float64, origin geo.Point) *CachedProvider {
	if cellSizeM <= 0 {
		cellSizeM = DefaultCellSizeM
	}
	if origin == (geo.Point{}) {
		origin = DefaultOrigin
	}
	return &CachedProvider{path: path, cellSizeM: cellSizeM, origin: origin}
}

func (p *CachedProvider) Name() string { return string(KindCached) }

func (p *CachedProvider) load() {
	pois, corrupt, err := snapshot.ReadFile(p.path)
	p.corrupt = corrupt
	if err != nil {
		p.loadErr = fmt.Errorf("provider %s: %w", p.Name(), err)
		return
	}
	if corrupt > 0 {
		log.Printf("Provider %s: skipped %d corrupt snapshot lines, %d records loaded", p.Name(), corrupt, len(pois))
	}

	ix := grid.New[models.POI](p.cellSizeM, p.origin)
	ix.BulkInsert(pois, func(poi models.POI) geo.Point { return poi.Location })
	log.Printf("Provider %s: indexed %d POIs into %d grid cells", p.Name(), ix.Len(), ix.Buckets())
	p.index = ix
}

// QueryBBox returns the indexed POIs in the cells overlapping b. The first
// call triggers the one-time snapshot load and index build.
func (p *CachedProvider) QueryBBox(_ context.Context, b geo.BoundingBox) ([]models.POI, error) {
	p.once.Do(p.load)
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	pois, err := p.index.Query(b)
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", p.Name(), err)
	}
	return pois, nil
}

// CorruptLines reports how many snapshot lines were skipped during the
// one-time load. It is zero before the first query.
func (p *CachedProvider) CorruptLines() int {
	return p.corrupt
}
