// waykit enriches GPX tracks with nearby OpenStreetMap points of interest
// (peaks and alpine huts) and writes the result as a GeoJSON feature
// collection.
//
// Usage:
//
//	waykit [flags] track.gpx [more.gpx ...]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoffmann/waykit/internal/env"
	"github.com/hoffmann/waykit/internal/match"
	"github.com/hoffmann/waykit/internal/output"
	"github.com/hoffmann/waykit/internal/provider"
	"github.com/hoffmann/waykit/pkg/geo"
	"github.com/hoffmann/waykit/pkg/gpx"
	"github.com/hoffmann/waykit/pkg/graceful"
	"github.com/hoffmann/waykit/pkg/overpass"
)

func main() {
	providerName := flag.String("provider", string(provider.KindOpenStreetMap),
		"POI source: openstreetmap, cached, or postgres")
	out := flag.String("out", "-", "output file path, or - for stdout")
	radiusM := flag.Float64("radius", match.DefaultRadiusM,
		"max distance in meters from the track at which a POI is kept")
	marginM := flag.Float64("margin", match.DefaultMarginM,
		"bounding box expansion in meters for the provider query")
	cellSizeM := flag.Float64("cell-size", provider.DefaultCellSizeM,
		"grid cell size in meters for the cached provider")
	dataPath := flag.String("data", "", "snapshot file for the cached provider (default $WAYKIT_DATA or data/alps-huts.jsonl.gz)")
	timeout := flag.Duration("timeout", overpass.DefaultTimeout, "HTTP timeout for the openstreetmap provider")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: waykit [flags] track.gpx [more.gpx ...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	env.Load()
	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	kind, err := provider.ParseKind(*providerName)
	if err != nil {
		log.Fatal(err)
	}

	track, err := gpx.ParseFiles(flag.Args())
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Parsed %d track points from %d file(s)", len(track), flag.NArg())

	src, cleanup, err := buildProvider(ctx, kind, *cellSizeM, *dataPath, *timeout)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	matcher := match.New(src, match.Config{MarginM: *marginM, RadiusM: *radiusM})
	matched, err := matcher.Match(ctx, track)
	if err != nil {
		log.Fatal(err)
	}

	fc := output.Assemble(track, matched)
	if err := output.WriteFile(*out, fc); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %d matched POIs to %s", len(matched), *out)
}

// buildProvider constructs the selected provider and a cleanup function to
// release its resources. The cleanup function is non-nil even on error.
func buildProvider(ctx context.Context, kind provider.Kind, cellSizeM float64, dataPath string, timeout time.Duration) (provider.Provider, func(), error) {
	noop := func() {}
	switch kind {
	case provider.KindOpenStreetMap:
		endpoint := env.GetDefault("OVERPASS_URL", overpass.DefaultEndpoint)
		userAgent := env.GetDefault("WAYKIT_USER_AGENT", "")
		return provider.NewOverpassProvider(overpass.NewClient(endpoint, userAgent, timeout)), noop, nil

	case provider.KindCached:
		if dataPath == "" {
			dataPath = env.GetDefault("WAYKIT_DATA", "data/alps-huts.jsonl.gz")
		}
		return provider.NewCachedProvider(dataPath, cellSizeM, geo.Point{}), noop, nil

	case provider.KindPostgres:
		pool, err := pgxpool.New(ctx, env.MustGet("DATABASE_URL"))
		if err != nil {
			return nil, noop, fmt.Errorf("connect to postgres: %w", err)
		}
		return provider.NewPostgresProvider(pool), pool.Close, nil
	}
	return nil, noop, fmt.Errorf("unhandled provider kind %q", kind)
}
