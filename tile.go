package tilestitch

import (
	"errors"
	"fmt"
)

// MaxTileSide is the longest edge an EdgeCode can hold.
const MaxTileSide = 64

var ErrMalformedTile = errors.New("malformed tile")

// MalformedTileError describes a tile that cannot be used. Line is the
// input line it was found on, or 0 when the tile did not come from text.
type MalformedTileError struct {
	Line   int
	ID     uint64
	Reason string
}

func (e *MalformedTileError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%v: line %d: %s", ErrMalformedTile, e.Line, e.Reason)
	case e.ID != 0:
		return fmt.Sprintf("%v: tile %d: %s", ErrMalformedTile, e.ID, e.Reason)
	}
	return fmt.Sprintf("%v: %s", ErrMalformedTile, e.Reason)
}

func (e *MalformedTileError) Unwrap() error {
	return ErrMalformedTile
}

// Tile is an immutable square piece with its eight precomputed views.
type Tile struct {
	id    uint64
	grid  *Bitmap
	views [Orientations]View
}

// NewTile validates grid and derives the edge views for every orientation.
// The tile keeps its own copy of grid.
func NewTile(id uint64, grid *Bitmap) (*Tile, error) {
	if grid.Width() != grid.Height() {
		return nil, &MalformedTileError{ID: id,
			Reason: fmt.Sprintf("grid is %dx%d, not square", grid.Width(), grid.Height())}
	}
	if grid.Width() < 2 || grid.Width() > MaxTileSide {
		return nil, &MalformedTileError{ID: id,
			Reason: fmt.Sprintf("side %d outside [2, %d]", grid.Width(), MaxTileSide)}
	}

	t := &Tile{id: id, grid: grid.Clone()}
	base := ViewOf(t.grid)
	for o := Orientation(0); o < Orientations; o++ {
		t.views[o] = base.Apply(o)
	}
	return t, nil
}

// ID returns the tile identifier.
func (t *Tile) ID() uint64 {
	return t.id
}

// Side returns the tile edge length in pixels.
func (t *Tile) Side() int {
	return t.grid.Width()
}

// Grid returns a copy of the raw pixels.
func (t *Tile) Grid() *Bitmap {
	return t.grid.Clone()
}

// View returns the edge codes of the tile in orientation o.
func (t *Tile) View(o Orientation) View {
	return t.views[o%Orientations]
}

// Views returns all eight views, indexed by Orientation.
func (t *Tile) Views() [Orientations]View {
	return t.views
}
