package tilestitch

import (
	"errors"
	"fmt"
	"slices"
)

// cornerUnmatched is the number of distinct unmatched codes on a corner:
// two outer sides, each read in both directions.
const cornerUnmatched = 4

var ErrCornerCount = errors.New("unexpected number of corner tiles")

// TileKind classifies a tile by where it can sit in the finished square.
type TileKind int

const (
	Interior TileKind = iota
	Border
	Corner
)

func (k TileKind) String() string {
	switch k {
	case Interior:
		return "interior"
	case Border:
		return "border"
	case Corner:
		return "corner"
	}
	return fmt.Sprintf("TileKind(%d)", int(k))
}

// EdgeIndex records which tiles carry each edge code in any orientation.
// Tiles are referred to by their position in the slice given to
// BuildEdgeIndex.
type EdgeIndex struct {
	tiles     []*Tile
	owners    map[EdgeCode][]int
	unmatched [][]EdgeCode
}

// BuildEdgeIndex indexes every code of every view of tiles.
func BuildEdgeIndex(tiles []*Tile) *EdgeIndex {
	ix := &EdgeIndex{
		tiles:     tiles,
		owners:    make(map[EdgeCode][]int),
		unmatched: make([][]EdgeCode, len(tiles)),
	}

	for i, t := range tiles {
		for _, view := range t.views {
			for _, code := range view.edges {
				owners := ix.owners[code]
				if n := len(owners); n == 0 || owners[n-1] != i {
					ix.owners[code] = append(owners, i)
				}
			}
		}
	}

	for code, owners := range ix.owners {
		if len(owners) == 1 {
			ix.unmatched[owners[0]] = append(ix.unmatched[owners[0]], code)
		}
	}
	for _, codes := range ix.unmatched {
		slices.Sort(codes)
	}
	return ix
}

// Len returns the number of indexed tiles.
func (ix *EdgeIndex) Len() int {
	return len(ix.tiles)
}

// Owners returns the indices of the tiles carrying code, ascending.
func (ix *EdgeIndex) Owners(code EdgeCode) []int {
	return slices.Clone(ix.owners[code])
}

// Unmatched returns the codes of tile i that no other tile carries,
// ascending.
func (ix *EdgeIndex) Unmatched(i int) []EdgeCode {
	return slices.Clone(ix.unmatched[i])
}

// SharedElsewhere reports whether any tile other than i carries code.
func (ix *EdgeIndex) SharedElsewhere(code EdgeCode, i int) bool {
	for _, owner := range ix.owners[code] {
		if owner != i {
			return true
		}
	}
	return false
}

// Kind classifies tile i. A lone tile is its own corner.
func (ix *EdgeIndex) Kind(i int) TileKind {
	if len(ix.tiles) == 1 {
		return Corner
	}
	switch n := len(ix.unmatched[i]); {
	case n == cornerUnmatched:
		return Corner
	case n == 0:
		return Interior
	default:
		return Border
	}
}

// Corners returns the indices of the corner tiles, ascending.
func (ix *EdgeIndex) Corners() []int {
	var corners []int
	for i := range ix.tiles {
		if ix.Kind(i) == Corner {
			corners = append(corners, i)
		}
	}
	return corners
}

// CornerProduct multiplies the ids of the corner tiles. It fails unless
// there are exactly four corners, or one for a single-tile puzzle.
func (ix *EdgeIndex) CornerProduct() (uint64, error) {
	corners := ix.Corners()
	want := 4
	if len(ix.tiles) == 1 {
		want = 1
	}
	if len(corners) != want {
		return 0, fmt.Errorf("%w: found %d, expected %d", ErrCornerCount, len(corners), want)
	}
	product := uint64(1)
	for _, i := range corners {
		product *= ix.tiles[i].id
	}
	return product, nil
}
