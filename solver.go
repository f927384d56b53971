package tilestitch

import (
	"errors"
	"fmt"
	"io"
	"math"
)

var (
	ErrNoTiles            = errors.New("no tiles to place")
	ErrNonSquareTileCount = errors.New("tile count is not a perfect square")
	ErrNoMatch            = errors.New("no tile fits")
	ErrAmbiguousMatch     = errors.New("more than one tile fits")
)

// PlacementError reports the cell at which the search stopped and how many
// tile/orientation pairs fitted there. Start is set when no corner tile
// could be turned to begin the grid at (0,0).
type PlacementError struct {
	Row, Col   int
	Candidates int
	Start      bool
	// Corners is the number of corner tiles found when Start is set.
	Corners int
}

func (e *PlacementError) Error() string {
	if e.Start {
		return fmt.Sprintf("cell (0,0): %v: no corner tile can start the grid (%d corners found)",
			e.Unwrap(), e.Corners)
	}
	return fmt.Sprintf("cell (%d,%d): %v (%d candidates)", e.Row, e.Col, e.Unwrap(), e.Candidates)
}

func (e *PlacementError) Unwrap() error {
	if e.Candidates == 0 {
		return ErrNoMatch
	}
	return ErrAmbiguousMatch
}

// Solver lays tiles into a square so that every shared edge matches.
//
// By default it is greedy: each cell, visited row by row, must have exactly
// one fitting tile/orientation left in the pool, otherwise Solve returns a
// *PlacementError. WithBacktracking switches to an exhaustive search that
// tolerates ambiguity.
type Solver struct {
	tiles []*Tile
	index *EdgeIndex
	size  int

	backtrack bool
	trace     io.Writer
}

// SolverOption is a functional option for configuring a Solver.
type SolverOption func(*Solver)

// WithBacktracking enables the exhaustive search fallback.
func WithBacktracking(enabled bool) SolverOption {
	return func(s *Solver) {
		s.backtrack = enabled
	}
}

// WithTrace writes one line per placed cell to w.
func WithTrace(w io.Writer) SolverOption {
	return func(s *Solver) {
		s.trace = w
	}
}

// NewSolver checks that tiles can form a square and indexes their edges.
func NewSolver(tiles []*Tile, opts ...SolverOption) (*Solver, error) {
	if len(tiles) == 0 {
		return nil, ErrNoTiles
	}
	size := int(math.Sqrt(float64(len(tiles))))
	for size*size > len(tiles) {
		size--
	}
	for (size+1)*(size+1) <= len(tiles) {
		size++
	}
	if size*size != len(tiles) {
		return nil, fmt.Errorf("%w: %d tiles", ErrNonSquareTileCount, len(tiles))
	}

	seen := make(map[uint64]bool, len(tiles))
	for _, t := range tiles {
		if seen[t.ID()] {
			return nil, &MalformedTileError{ID: t.ID(), Reason: "duplicate id"}
		}
		seen[t.ID()] = true
		if t.Side() != tiles[0].Side() {
			return nil, &MalformedTileError{ID: t.ID(),
				Reason: fmt.Sprintf("side %d, expected %d", t.Side(), tiles[0].Side())}
		}
	}

	s := &Solver{
		tiles: tiles,
		index: BuildEdgeIndex(tiles),
		size:  size,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Index returns the edge index built over the solver's tiles.
func (s *Solver) Index() *EdgeIndex {
	return s.index
}

// Size returns the number of tiles along one side of the square.
func (s *Solver) Size() int {
	return s.size
}

// Solve fills the grid and returns the arrangement.
func (s *Solver) Solve() (*Arrangement, error) {
	if s.backtrack {
		return s.solveExhaustive()
	}
	return s.solveGreedy()
}

func (s *Solver) solveGreedy() (*Arrangement, error) {
	arr := newArrangement(s.tiles, s.size)
	pool := s.newPool()

	corners := s.index.Corners()
	if len(corners) == 0 {
		return nil, &PlacementError{Start: true}
	}
	start := Placement{Tile: corners[0]}
	if s.size > 1 {
		o, ok := s.startingOrientation(corners[0])
		if !ok {
			return nil, &PlacementError{Start: true, Corners: len(corners)}
		}
		start.Orientation = o
	}
	s.place(arr, pool, 0, start, 1)

	for cell := 1; cell < len(arr.cells); cell++ {
		row, col := cell/s.size, cell%s.size
		candidates := s.candidates(arr, pool, row, col)
		if len(candidates) != 1 {
			return nil, &PlacementError{Row: row, Col: col, Candidates: len(candidates)}
		}
		s.place(arr, pool, cell, candidates[0], 1)
	}
	return arr, nil
}

func (s *Solver) solveExhaustive() (*Arrangement, error) {
	arr := newArrangement(s.tiles, s.size)
	pool := s.newPool()
	deepest := &PlacementError{}
	deepestCell := -1

	var search func(cell int) bool
	search = func(cell int) bool {
		if cell == len(arr.cells) {
			return true
		}
		row, col := cell/s.size, cell%s.size

		var candidates []Placement
		if cell == 0 {
			candidates = s.starts()
		} else {
			candidates = s.candidates(arr, pool, row, col)
		}
		if len(candidates) == 0 {
			if cell > deepestCell {
				deepest, deepestCell = &PlacementError{Row: row, Col: col}, cell
				if cell == 0 {
					deepest.Start = true
					deepest.Corners = len(s.index.Corners())
				}
			}
			return false
		}

		for _, c := range candidates {
			s.place(arr, pool, cell, c, len(candidates))
			if search(cell + 1) {
				return true
			}
			arr.cells[cell] = emptyCell
			pool.Set(c.Tile, s.tiles[c.Tile])
		}
		return false
	}

	if !search(0) {
		return nil, deepest
	}
	if err := arr.Validate(); err != nil {
		return nil, err
	}
	return arr, nil
}

// newPool returns the tiles not yet placed, keyed by index, in input order.
func (s *Solver) newPool() *OrderedMap[int, *Tile] {
	pool := NewOrderedMap[int, *Tile]()
	for i, t := range s.tiles {
		pool.Set(i, t)
	}
	return pool
}

func (s *Solver) place(arr *Arrangement, pool *OrderedMap[int, *Tile], cell int, p Placement, candidates int) {
	arr.cells[cell] = p
	pool.Delete(p.Tile)
	if s.trace != nil {
		fmt.Fprintf(s.trace, "place (%d,%d): tile %d orientation %d [candidates %d]\n",
			cell/s.size, cell%s.size, s.tiles[p.Tile].ID(), p.Orientation, candidates)
	}
}

// startingOrientation finds the first orientation of tile i whose right
// and bottom edges are carried by some other tile, which turns its two
// unmatched sides to face up and left.
func (s *Solver) startingOrientation(i int) (Orientation, bool) {
	for o := Orientation(0); o < Orientations; o++ {
		v := s.tiles[i].View(o)
		if s.index.SharedElsewhere(v.Edge(Right), i) && s.index.SharedElsewhere(v.Edge(Bottom), i) {
			return o, true
		}
	}
	return 0, false
}

// starts lists every placement the exhaustive search may try at (0,0).
func (s *Solver) starts() []Placement {
	if s.size == 1 {
		return []Placement{{Tile: 0}}
	}
	tiles := s.index.Corners()
	if len(tiles) == 0 {
		for i := range s.tiles {
			tiles = append(tiles, i)
		}
	}
	var starts []Placement
	for _, i := range tiles {
		for o := Orientation(0); o < Orientations; o++ {
			v := s.tiles[i].View(o)
			if s.index.SharedElsewhere(v.Edge(Right), i) && s.index.SharedElsewhere(v.Edge(Bottom), i) {
				starts = append(starts, Placement{Tile: i, Orientation: o})
			}
		}
	}
	return starts
}

// candidates returns every pooled tile/orientation whose left and top
// edges match the already placed neighbours of row, col.
func (s *Solver) candidates(arr *Arrangement, pool *OrderedMap[int, *Tile], row, col int) []Placement {
	hasLeft, hasTop := col > 0, row > 0
	var wantLeft, wantTop EdgeCode
	if hasLeft {
		wantLeft = arr.View(row, col-1).Edge(Right)
	}
	if hasTop {
		wantTop = arr.View(row-1, col).Edge(Bottom)
	}

	var found []Placement
	pool.Iterate(func(i int, t *Tile) bool {
		for o := Orientation(0); o < Orientations; o++ {
			v := t.views[o]
			if hasLeft && v.Edge(Left) != wantLeft {
				continue
			}
			if hasTop && v.Edge(Top) != wantTop {
				continue
			}
			found = append(found, Placement{Tile: i, Orientation: o})
		}
		return true
	})
	return found
}
