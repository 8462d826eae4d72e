package grid

import (
	"fmt"
	"strings"
)

const alphabet36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// base36Encode encodes a non-negative integer as a lowercase base-36 string.
func base36Encode(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [14]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = alphabet36[n%36]
		n /= 36
	}
	return string(buf[i:])
}

// base36Decode is the inverse of base36Encode.
func base36Decode(s string) (uint64, error) {
	var n uint64
	for _, c := range s {
		idx := strings.IndexRune(alphabet36, c)
		if idx < 0 {
			return 0, fmt.Errorf("invalid base36 character %q", c)
		}
		n = n*36 + uint64(idx)
	}
	return n, nil
}

// zigzagEncode maps a signed integer to an unsigned one so that small
// magnitudes stay small: 0->0, -1->1, 1->2, -2->3, ...
func zigzagEncode(n int64) uint64 {
	return uint64((n << 1) ^ (n >> 63))
}

func zigzagDecode(n uint64) int64 {
	return int64(n>>1) ^ -int64(n&1)
}

// EncodeCellID converts integer grid coordinates into a compact, reversible,
// lowercase alphanumeric string. Each coordinate is zigzag-encoded, rendered
// in base-36, and length-prefixed:
//
//	<len(col)><col><len(row)><row>
//
// The origin cell (0,0) encodes as "1010". The result is safe for filenames,
// URLs, and map keys.
func EncodeCellID(c Cell) string {
	sc := base36Encode(zigzagEncode(int64(c.Col)))
	sr := base36Encode(zigzagEncode(int64(c.Row)))
	return base36Encode(uint64(len(sc))) + sc + base36Encode(uint64(len(sr))) + sr
}

// DecodeCellID is the inverse of EncodeCellID.
func DecodeCellID(id string) (Cell, error) {
	if len(id) < 4 {
		return Cell{}, fmt.Errorf("cell id %q too short", id)
	}
	lc, err := base36Decode(id[:1])
	if err != nil {
		return Cell{}, fmt.Errorf("cell id %q: %w", id, err)
	}
	if 1+int(lc)+1 > len(id) {
		return Cell{}, fmt.Errorf("cell id %q truncated", id)
	}
	sc := id[1 : 1+lc]
	lr, err := base36Decode(id[1+lc : 2+lc])
	if err != nil {
		return Cell{}, fmt.Errorf("cell id %q: %w", id, err)
	}
	if 2+int(lc)+int(lr) != len(id) {
		return Cell{}, fmt.Errorf("cell id %q has trailing data", id)
	}
	sr := id[2+lc : 2+lc+lr]

	col, err := base36Decode(sc)
	if err != nil {
		return Cell{}, fmt.Errorf("cell id %q: %w", id, err)
	}
	row, err := base36Decode(sr)
	if err != nil {
		return Cell{}, fmt.Errorf("cell id %q: %w", id, err)
	}
	return Cell{Col: int(zigzagDecode(col)), Row: int(zigzagDecode(row))}, nil
}

// NeighborsSquare returns the cell IDs of the (2r+1)^2 square neighborhood
// around the given cell, center included.
func NeighborsSquare(id string, r int) ([]string, error) {
	c, err := DecodeCellID(id)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, (2*r+1)*(2*r+1))
	for dc := -r; dc <= r; dc++ {
		for dr := -r; dr <= r; dr++ {
			out = append(out, EncodeCellID(Cell{Col: c.Col + dc, Row: c.Row + dr}))
		}
	}
	return out, nil
}
