package provider

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hoffmann/waykit/internal/models"
	"github.com/hoffmann/waykit/pkg/geo"
)

// PgxQuerier is the slice of pgxpool.Pool the provider needs. Declared as an
// interface so tests can stub the database away.
type PgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresProvider resolves POIs from a pois table with plain latitude and
// longitude columns. It exists for deployments that keep their OSM extract
// in Postgres instead of a bundled snapshot; the query is a simple BETWEEN
// range scan, no PostGIS required.
type PostgresProvider struct {
	db PgxQuerier
}

func NewPostgresProvider(db PgxQuerier) *PostgresProvider {
	return &PostgresProvider{db: db}
}

func (p *PostgresProvider) Name() string { return string(KindPostgres) }

const poisByBBoxSQL = `
SELECT id, name, category, lat, lon, elevation_m, source, source_id, url
FROM pois
WHERE lat BETWEEN $1 AND $2 AND lon BETWEEN $3 AND $4
ORDER BY id`

// QueryBBox selects all POIs whose coordinates fall inside b. Ordering by id
// keeps result slices deterministic across runs.
func (p *PostgresProvider) QueryBBox(ctx context.Context, b geo.BoundingBox) ([]models.POI, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("provider %s: %w", p.Name(), err)
	}

	rows, err := p.db.Query(ctx, poisByBBoxSQL, b.MinLat, b.MaxLat, b.MinLon, b.MaxLon)
	if err != nil {
		return nil, fmt.Errorf("provider %s: query failed: %w", p.Name(), err)
	}
	defer rows.Close()

	var pois []models.POI
	for rows.Next() {
		var (
			poi      models.POI
			category string
			lat, lon float64
		)
		if err := rows.Scan(&poi.ID, &poi.Name, &category, &lat, &lon,
			&poi.ElevationM, &poi.Source, &poi.SourceID, &poi.URL); err != nil {
			return nil, fmt.Errorf("provider %s: scan failed: %w", p.Name(), err)
		}
		poi.Category = models.Category(category)
		poi.Location = geo.Point{Lat: lat, Lon: lon}
		pois = append(pois, poi)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("provider %s: rows failed: %w", p.Name(), err)
	}
	return pois, nil
}
