// Package grid implements a uniform square-grid spatial index over point
// data. Positions are projected to local meters with an equirectangular
// approximation and bucketed into fixed-size cells with deterministic,
// reversible string IDs.
//
// The index is a pre-filter, not a precise distance matcher: range queries
// return every item in the touched cells, which may include items slightly
// outside the requested region. Callers must post-filter with an exact
// distance check. Over-inclusion at cell edges is the contract;
// under-inclusion never happens.
package grid

import (
	"fmt"
	"math"

	"github.com/hoffmann/waykit/pkg/geo"
)

// Cell identifies one square grid cell by column (east) and row (north).
type Cell struct {
	Col int
	Row int
}

// Index buckets items of type T into a uniform square grid. Build it once,
// then query; the index is safe for unlimited concurrent readers once no
// more inserts happen.
type Index[T any] struct {
	cellSizeM float64
	origin    geo.Point
	cells     map[Cell][]T
	count     int
}

// New creates an empty index. cellSizeM is the side length of each square
// cell in meters (100-300 works well for hiking-scale data). The origin must
// stay constant across runs for cell IDs to remain stable; it only affects
// performance, never query results.
func New[T any](cellSizeM float64, origin geo.Point) *Index[T] {
	return &Index[T]{
		cellSizeM: cellSizeM,
		origin:    origin,
		cells:     make(map[Cell][]T),
	}
}

// CellOf returns the cell containing p. The mapping is total and
// deterministic: every valid point maps to exactly one cell.
func (ix *Index[T]) CellOf(p geo.Point) Cell {
	pr := geo.ProjectLocal(p, ix.origin)
	return Cell{
		Col: int(math.Floor(pr.X / ix.cellSizeM)),
		Row: int(math.Floor(pr.Y / ix.cellSizeM)),
	}
}

// Insert adds item at position p and returns the encoded ID of the cell it
// landed in. O(1) amortized.
func (ix *Index[T]) Insert(p geo.Point, item T) string {
	c := ix.CellOf(p)
	ix.cells[c] = append(ix.cells[c], item)
	ix.count++
	return EncodeCellID(c)
}

// BulkInsert inserts a batch of positioned items.
func (ix *Index[T]) BulkInsert(items []T, position func(T) geo.Point) {
	for _, item := range items {
		ix.Insert(position(item), item)
	}
}

// Query returns the union of all items stored in cells overlapping the
// bounding box. Results are conservative: a cell partially outside the box
// contributes all of its items. Iteration is in fixed column/row order with
// insertion order inside each cell, so repeated queries over the same index
// return identical slices.
func (ix *Index[T]) Query(b geo.BoundingBox) ([]T, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("grid query: %w", err)
	}
	lo := ix.CellOf(geo.Point{Lat: b.MinLat, Lon: b.MinLon})
	hi := ix.CellOf(geo.Point{Lat: b.MaxLat, Lon: b.MaxLon})

	var out []T
	for col := lo.Col; col <= hi.Col; col++ {
		for row := lo.Row; row <= hi.Row; row++ {
			out = append(out, ix.cells[Cell{Col: col, Row: row}]...)
		}
	}
	return out, nil
}

// CandidatesNear returns the items in the square neighborhood of cells that
// could overlap a circle of radiusM around p. Like Query, results may
// include items beyond the radius.
func (ix *Index[T]) CandidatesNear(p geo.Point, radiusM float64) []T {
	center := ix.CellOf(p)
	r := int(math.Ceil(radiusM / ix.cellSizeM))

	var out []T
	for dc := -r; dc <= r; dc++ {
		for dr := -r; dr <= r; dr++ {
			out = append(out, ix.cells[Cell{Col: center.Col + dc, Row: center.Row + dr}]...)
		}
	}
	return out
}

// Buckets reports the number of non-empty cells.
func (ix *Index[T]) Buckets() int {
	return len(ix.cells)
}

// Len reports the total number of stored items.
func (ix *Index[T]) Len() int {
	return ix.count
}
