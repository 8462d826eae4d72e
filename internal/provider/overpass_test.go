package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hoffmann/waykit/internal/models"
	"github.com/hoffmann/waykit/pkg/geo"
	"github.com/hoffmann/waykit/pkg/overpass"
)

func TestElementToPOI(t *testing.T) {
	cases := []struct {
		name     string
		elem     overpass.Element
		want     models.POI
		wantSkip bool
	}{
		{
			name: "named peak node",
			elem: overpass.Element{
				Type: "node", ID: 100, Lat: 46.1, Lon: 10.1,
				Tags: map[string]string{"natural": "peak", "name": "Cima Uno", "ele": "3021 m"},
			},
			want: models.POI{
				ID: "osm:node/100", Name: "Cima Uno", Category: models.CategoryPeak,
				Location: geo.Point{Lat: 46.1, Lon: 10.1},
				Source:   "osm", SourceID: "node/100",
			},
		},
		{
			name: "hut way uses center and ref fallback",
			elem: overpass.Element{
				Type: "way", ID: 200,
				Center: &overpass.Center{Lat: 46.2, Lon: 10.2},
				Tags:   map[string]string{"tourism": "alpine_hut", "ref": "CAI 77"},
			},
			want: models.POI{
				ID: "osm:way/200", Name: "CAI 77", Category: models.CategoryHut,
				Location: geo.Point{Lat: 46.2, Lon: 10.2},
				Source:   "osm", SourceID: "way/200",
			},
		},
		{
			name: "unnamed hut gets fallback name",
			elem: overpass.Element{
				Type: "node", ID: 300, Lat: 46.3, Lon: 10.3,
				Tags: map[string]string{"tourism": "alpine_hut"},
			},
			want: models.POI{
				ID: "osm:node/300", Name: "Hut node/300", Category: models.CategoryHut,
				Location: geo.Point{Lat: 46.3, Lon: 10.3},
				Source:   "osm", SourceID: "node/300",
			},
		},
		{
			name: "relation without center skipped",
			elem: overpass.Element{
				Type: "relation", ID: 400,
				Tags: map[string]string{"natural": "peak"},
			},
			wantSkip: true,
		},
		{
			name: "uninteresting tags skipped",
			elem: overpass.Element{
				Type: "node", ID: 500, Lat: 46.5, Lon: 10.5,
				Tags: map[string]string{"amenity": "parking"},
			},
			wantSkip: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := elementToPOI(tc.elem)
			if tc.wantSkip {
				if ok {
					t.Fatalf("elementToPOI = %+v; want skip", got)
				}
				return
			}
			if !ok {
				t.Fatal("elementToPOI skipped; want POI")
			}
			if got.ID != tc.want.ID || got.Name != tc.want.Name ||
				got.Category != tc.want.Category || got.Location != tc.want.Location ||
				got.Source != tc.want.Source || got.SourceID != tc.want.SourceID {
				t.Errorf("elementToPOI = %+v; want %+v", got, tc.want)
			}
		})
	}
}

func TestElementToPOIElevation(t *testing.T) {
	elem := overpass.Element{
		Type: "node", ID: 1, Lat: 46.0, Lon: 10.0,
		Tags: map[string]string{"natural": "peak", "name": "X", "ele": "2917"},
	}
	got, ok := elementToPOI(elem)
	if !ok || got.ElevationM == nil || *got.ElevationM != 2917 {
		t.Fatalf("elementToPOI elevation = %v; want 2917", got.ElevationM)
	}
}

func TestOverpassProviderQueryBBox(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"elements":[
			{"type":"node","id":1,"lat":46.1,"lon":10.1,"tags":{"natural":"peak","name":"A"}},
			{"type":"node","id":2,"lat":46.2,"lon":10.2,"tags":{"highway":"bus_stop"}}
		]}`))
	}))
	defer srv.Close()

	p := NewOverpassProvider(overpass.NewClient(srv.URL, "", time.Second))
	box := geo.BoundingBox{MinLat: 46.0, MinLon: 10.0, MaxLat: 46.5, MaxLon: 10.5}

	pois, err := p.QueryBBox(context.Background(), box)
	if err != nil {
		t.Fatalf("QueryBBox error: %v", err)
	}
	if len(pois) != 1 || pois[0].Name != "A" {
		t.Fatalf("QueryBBox = %+v; want the single peak", pois)
	}
}

func TestOverpassProviderPropagatesRemoteUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewOverpassProvider(overpass.NewClient(srv.URL, "", time.Second))
	box := geo.BoundingBox{MinLat: 46.0, MinLon: 10.0, MaxLat: 46.5, MaxLon: 10.5}

	if _, err := p.QueryBBox(context.Background(), box); !errors.Is(err, overpass.ErrRemoteUnavailable) {
		t.Fatalf("QueryBBox = %v; want ErrRemoteUnavailable", err)
	}
}
