package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseElevationM(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  *float64
	}{
		{"plain number", "2431", f(2431)},
		{"decimal", "2431.5", f(2431.5)},
		{"meters suffix", "2431 m", f(2431)},
		{"suffix no space", "2431m", f(2431)},
		{"padded", "  1800 ", f(1800)},
		{"empty", "", nil},
		{"garbage", "high", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseElevationM(tc.input)
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("ParseElevationM(%q) = %v; want %v", tc.input, got, tc.want)
			}
			if got != nil && *got != *tc.want {
				t.Fatalf("ParseElevationM(%q) = %f; want %f", tc.input, *got, *tc.want)
			}
		})
	}
}

func TestFallbackName(t *testing.T) {
	cases := []struct {
		category Category
		sourceID string
		want     string
	}{
		{CategoryHut, "node/12345", "Hut node/12345"},
		{CategoryPeak, "way/9", "Peak way/9"},
		{"", "node/1", "Other node/1"},
	}

	for _, tc := range cases {
		if got := FallbackName(tc.category, tc.sourceID); got != tc.want {
			t.Errorf("FallbackName(%q, %q) = %q; want %q", tc.category, tc.sourceID, got, tc.want)
		}
	}
}

func TestSnapshotRowToPOI(t *testing.T) {
	cases := []struct {
		name    string
		line    string
		want    POI
		wantErr bool
	}{
		{
			name: "full hut row",
			line: `{"uri":"osm:node/123","lat":46.5,"lon":10.5,"name":"Similaunhütte","ele":"3019 m","type":"alpine_hut","url":"https://example.org","tags":{"tourism":"alpine_hut","name":"Similaunhütte"}}`,
			want: POI{
				ID:         "osm:node/123",
				Name:       "Similaunhütte",
				Category:   CategoryHut,
				ElevationM: f(3019),
				Source:     "osm",
				SourceID:   "node/123",
				URL:        "https://example.org",
				Tags:       []string{"name=Similaunhütte", "tourism=alpine_hut"},
			},
		},
		{
			name: "numeric elevation and name fallback",
			line: `{"uri":"osm:node/77","lat":46.0,"lon":10.0,"ele":2200,"type":"alpine_hut"}`,
			want: POI{
				ID:         "osm:node/77",
				Name:       "Hut node/77",
				Category:   CategoryHut,
				ElevationM: f(2200),
				Source:     "osm",
				SourceID:   "node/77",
			},
		},
		{
			name: "unknown type maps to other",
			line: `{"uri":"osm:node/5","lat":46.0,"lon":10.0,"type":"viewpoint","name":"Belvedere"}`,
			want: POI{
				ID:       "osm:node/5",
				Name:     "Belvedere",
				Category: CategoryOther,
				Source:   "osm",
				SourceID: "node/5",
			},
		},
		{
			name:    "missing uri rejected",
			line:    `{"lat":46.0,"lon":10.0,"type":"peak"}`,
			wantErr: true,
		},
		{
			name:    "latitude out of range rejected",
			line:    `{"uri":"osm:node/9","lat":146.0,"lon":10.0,"type":"peak"}`,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var row SnapshotRow
			if err := json.Unmarshal([]byte(tc.line), &row); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			got, err := row.ToPOI()
			if tc.wantErr {
				if err == nil {
					t.Fatal("ToPOI() succeeded; want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ToPOI() error: %v", err)
			}
			// Location checked separately to keep the table readable.
			if got.Location.Lat != row.Lat || got.Location.Lon != row.Lon {
				t.Errorf("Location = %+v; want (%f, %f)", got.Location, row.Lat, row.Lon)
			}
			got.Location = tc.want.Location
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ToPOI() = %+v; want %+v", got, tc.want)
			}
		})
	}
}

func f(v float64) *float64 { return &v }
