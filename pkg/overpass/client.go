// Package overpass is a minimal client for Overpass-compatible OpenStreetMap
// query endpoints. It asks for peaks and alpine huts inside a bounding box
// and returns the raw elements; mapping into domain records is up to the
// caller.
package overpass

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hoffmann/waykit/pkg/geo"
)

// DefaultEndpoint is the public Overpass API interpreter.
const DefaultEndpoint = "https://overpass-api.de/api/interpreter"

// DefaultTimeout bounds a single Overpass request. The server-side QL
// timeout below is kept smaller so the server gives up first.
const DefaultTimeout = 30 * time.Second

// qlTimeoutSec is the [timeout:] passed inside the Overpass QL query.
const qlTimeoutSec = 25

// ErrRemoteUnavailable reports that the endpoint could not be asked or
// answered garbage. It is distinct from an empty result, which is a valid
// response.
var ErrRemoteUnavailable = errors.New("overpass unavailable")

// Element is one raw Overpass response element. Nodes carry their own
// coordinates; ways and relations carry a center computed by "out center".
type Element struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *Center           `json:"center,omitempty"`
	Tags   map[string]string `json:"tags"`
}

// Center holds the representative coordinates of a way or relation.
type Center struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Position returns the element's coordinates and whether it has any:
// nodes directly, ways and relations via their center.
func (e Element) Position() (geo.Point, bool) {
	switch e.Type {
	case "node":
		return geo.Point{Lat: e.Lat, Lon: e.Lon}, true
	case "way", "relation":
		if e.Center == nil {
			return geo.Point{}, false
		}
		return geo.Point{Lat: e.Center.Lat, Lon: e.Center.Lon}, true
	}
	return geo.Point{}, false
}

type response struct {
	Elements []Element `json:"elements"`
}

// Client issues bounding-box queries against one Overpass endpoint.
type Client struct {
	endpoint  string
	userAgent string
	http      *http.Client
}

// NewClient returns a client for the given endpoint. Empty arguments fall
// back to DefaultEndpoint, a "waykit/1.0" User-Agent, and DefaultTimeout.
func NewClient(endpoint, userAgent string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if userAgent == "" {
		userAgent = "waykit/1.0"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint:  endpoint,
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
	}
}

// QueryBBox builds and parses a QL query for natural=peak and
// tourism=alpine_hut nodes, ways, and relations inside b. Responses for ways
// and relations include center coordinates. Network failures, non-200
// statuses, and undecodable bodies all wrap ErrRemoteUnavailable.
func QueryBBoxQL(b geo.BoundingBox) string {
	bbox := fmt.Sprintf("%f,%f,%f,%f", b.MinLat, b.MinLon, b.MaxLat, b.MaxLon)
	var q strings.Builder
	fmt.Fprintf(&q, "[out:json][timeout:%d];\n(\n", qlTimeoutSec)
	for _, selector := range []string{`["natural"="peak"]`, `["tourism"="alpine_hut"]`} {
		for _, kind := range []string{"node", "way", "relation"} {
			fmt.Fprintf(&q, "  %s%s(%s);\n", kind, selector, bbox)
		}
	}
	q.WriteString(");\nout center;\n")
	return q.String()
}

// QueryBBox runs the peak/hut query for b and returns the raw elements.
func (c *Client) QueryBBox(ctx context.Context, b geo.BoundingBox) ([]Element, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("overpass query: %w", err)
	}

	body := strings.NewReader(QueryBBoxQL(b))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("overpass query: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRemoteUnavailable, c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ErrRemoteUnavailable, c.endpoint, resp.Status)
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %s sent a malformed response: %v", ErrRemoteUnavailable, c.endpoint, err)
	}
	return parsed.Elements, nil
}
