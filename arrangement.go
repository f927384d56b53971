package tilestitch

import (
	"errors"
	"fmt"
)

var ErrInvalidArrangement = errors.New("invalid arrangement")

// Placement binds a grid cell to a tile, by its index in the solver's tile
// slice, and the orientation it is laid in.
type Placement struct {
	Tile        int
	Orientation Orientation
}

var emptyCell = Placement{Tile: -1}

// Arrangement is a size x size grid of placements, stored row-major.
type Arrangement struct {
	tiles []*Tile
	size  int
	cells []Placement
}

func newArrangement(tiles []*Tile, size int) *Arrangement {
	a := &Arrangement{
		tiles: tiles,
		size:  size,
		cells: make([]Placement, size*size),
	}
	for i := range a.cells {
		a.cells[i] = emptyCell
	}
	return a
}

// Size returns the number of tiles along one side.
func (a *Arrangement) Size() int {
	return a.size
}

// At returns the placement at row, col.
func (a *Arrangement) At(row, col int) Placement {
	return a.cells[row*a.size+col]
}

// Tile returns the tile placed at row, col.
func (a *Arrangement) Tile(row, col int) *Tile {
	return a.tiles[a.At(row, col).Tile]
}

// View returns the edges of the tile at row, col as it is laid.
func (a *Arrangement) View(row, col int) View {
	p := a.At(row, col)
	return a.tiles[p.Tile].View(p.Orientation)
}

// IDs returns the tile ids row by row.
func (a *Arrangement) IDs() [][]uint64 {
	ids := make([][]uint64, a.size)
	for row := range ids {
		ids[row] = make([]uint64, a.size)
		for col := range ids[row] {
			ids[row][col] = a.Tile(row, col).ID()
		}
	}
	return ids
}

// CornerIDs returns the ids at the top-left, top-right, bottom-left and
// bottom-right cells.
func (a *Arrangement) CornerIDs() [4]uint64 {
	last := a.size - 1
	return [4]uint64{
		a.Tile(0, 0).ID(),
		a.Tile(0, last).ID(),
		a.Tile(last, 0).ID(),
		a.Tile(last, last).ID(),
	}
}

// CornerProduct multiplies the distinct ids in the four corner cells, so a
// single tile counts once.
func (a *Arrangement) CornerProduct() uint64 {
	product := uint64(1)
	seen := make(map[uint64]bool, 4)
	for _, id := range a.CornerIDs() {
		if !seen[id] {
			seen[id] = true
			product *= id
		}
	}
	return product
}

// Validate checks that every tile is used exactly once and every shared
// edge carries the same code on both sides.
func (a *Arrangement) Validate() error {
	if len(a.cells) != len(a.tiles) {
		return fmt.Errorf("%w: %d cells for %d tiles", ErrInvalidArrangement, len(a.cells), len(a.tiles))
	}
	used := make([]bool, len(a.tiles))
	for i, p := range a.cells {
		row, col := i/a.size, i%a.size
		if p.Tile < 0 || p.Tile >= len(a.tiles) || !p.Orientation.Valid() {
			return fmt.Errorf("%w: cell (%d,%d) is empty", ErrInvalidArrangement, row, col)
		}
		if used[p.Tile] {
			return fmt.Errorf("%w: tile %d placed twice", ErrInvalidArrangement, a.tiles[p.Tile].ID())
		}
		used[p.Tile] = true

		view := a.View(row, col)
		if col > 0 && a.View(row, col-1).Edge(Right) != view.Edge(Left) {
			return fmt.Errorf("%w: cell (%d,%d) does not match its left neighbour", ErrInvalidArrangement, row, col)
		}
		if row > 0 && a.View(row-1, col).Edge(Bottom) != view.Edge(Top) {
			return fmt.Errorf("%w: cell (%d,%d) does not match its top neighbour", ErrInvalidArrangement, row, col)
		}
	}
	return nil
}
