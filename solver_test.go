package tilestitch

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestSolverSample(t *testing.T) {
	tiles := loadSample(t)
	solver, err := NewSolver(tiles)
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	if solver.Size() != 3 {
		t.Errorf("Expected size 3, got %d", solver.Size())
	}
	arr, err := solver.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if err := arr.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	corners := arr.CornerIDs()
	if !sameIDs(corners[:], idSet(1951, 3079, 2971, 1171)) {
		t.Errorf("Expected the corner tiles in the corners, got %v", corners)
	}
	if id := arr.Tile(1, 1).ID(); id != 1427 {
		t.Errorf("Expected 1427 in the centre, got %d", id)
	}
	ids := arr.IDs()
	if len(ids) != 3 || ids[1][1] != 1427 || ids[0][0] != corners[0] || ids[2][2] != corners[3] {
		t.Errorf("Expected IDs to agree with the placed tiles, got %v", ids)
	}
	if arr.CornerProduct() != sampleCornerProduct {
		t.Errorf("Expected corner product %d, got %d", uint64(sampleCornerProduct), arr.CornerProduct())
	}
}

func TestSolverSynthetic(t *testing.T) {
	for _, n := range []int{2, 4, 5} {
		rng := rand.New(rand.NewSource(int64(n)))
		tiles, _ := synthPuzzle(t, rng, n, 32)
		solver, err := NewSolver(tiles)
		if err != nil {
			t.Fatalf("n=%d: NewSolver: %v", n, err)
		}
		arr, err := solver.Solve()
		if err != nil {
			t.Fatalf("n=%d: Solve: %v", n, err)
		}
		if err := arr.Validate(); err != nil {
			t.Errorf("n=%d: Validate: %v", n, err)
		}
		corners := arr.CornerIDs()
		want := idSet(1000, uint64(1000+n-1), uint64(1000+n*(n-1)), uint64(1000+n*n-1))
		if !sameIDs(corners[:], want) {
			t.Errorf("n=%d: unexpected corners %v", n, corners)
		}
	}
}

func TestSolverRejectsInput(t *testing.T) {
	tiles := loadSample(t)

	if _, err := NewSolver(nil); !errors.Is(err, ErrNoTiles) {
		t.Errorf("Expected ErrNoTiles, got %v", err)
	}
	if _, err := NewSolver(tiles[:8]); !errors.Is(err, ErrNonSquareTileCount) {
		t.Errorf("Expected ErrNonSquareTileCount, got %v", err)
	}

	dup := append([]*Tile(nil), tiles...)
	dup[1] = dup[0]
	if _, err := NewSolver(dup); !errors.Is(err, ErrMalformedTile) {
		t.Errorf("Expected ErrMalformedTile for a duplicate id, got %v", err)
	}

	small, err := NewTile(99, NewBitmap(4, 4))
	if err != nil {
		t.Fatalf("NewTile: %v", err)
	}
	mixed := append([]*Tile(nil), tiles...)
	mixed[4] = small
	if _, err := NewSolver(mixed); !errors.Is(err, ErrMalformedTile) {
		t.Errorf("Expected ErrMalformedTile for a side mismatch, got %v", err)
	}
}

// corruptCentre replaces the middle tile of a 5x5 synthetic puzzle with
// noise, so the hole can be found from any start orientation.
func corruptCentre(t *testing.T, rng *rand.Rand) []*Tile {
	t.Helper()
	tiles, _ := synthPuzzle(t, rng, 5, 32)
	for i, tile := range tiles {
		if tile.ID() != 1012 {
			continue
		}
		noise, err := NewTile(tile.ID(), randomBitmap(rng, 32, 32))
		if err != nil {
			t.Fatalf("NewTile: %v", err)
		}
		tiles[i] = noise
	}
	return tiles
}

func TestSolverNoMatch(t *testing.T) {
	for _, backtrack := range []bool{false, true} {
		rng := rand.New(rand.NewSource(7))
		solver, err := NewSolver(corruptCentre(t, rng), WithBacktracking(backtrack))
		if err != nil {
			t.Fatalf("NewSolver: %v", err)
		}
		_, err = solver.Solve()
		if !errors.Is(err, ErrNoMatch) {
			t.Fatalf("backtrack=%v: expected ErrNoMatch, got %v", backtrack, err)
		}
		var pe *PlacementError
		if !errors.As(err, &pe) {
			t.Fatalf("backtrack=%v: expected *PlacementError, got %T", backtrack, err)
		}
		if pe.Row != 2 || pe.Col != 2 || pe.Candidates != 0 || pe.Start {
			t.Errorf("backtrack=%v: expected (2,2) with 0 candidates, got %+v", backtrack, *pe)
		}
	}
}

func TestSolverNoCorners(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	var tiles []*Tile
	for id := uint64(1); id <= 4; id++ {
		tile, err := NewTile(id, randomBitmap(rng, 32, 32))
		if err != nil {
			t.Fatalf("NewTile: %v", err)
		}
		tiles = append(tiles, tile)
	}
	for _, backtrack := range []bool{false, true} {
		solver, err := NewSolver(tiles, WithBacktracking(backtrack))
		if err != nil {
			t.Fatalf("NewSolver: %v", err)
		}
		_, err = solver.Solve()
		if !errors.Is(err, ErrNoMatch) {
			t.Fatalf("backtrack=%v: expected ErrNoMatch, got %v", backtrack, err)
		}
		var pe *PlacementError
		if !errors.As(err, &pe) || !pe.Start {
			t.Fatalf("backtrack=%v: expected a start failure, got %v", backtrack, err)
		}
		if !strings.Contains(err.Error(), "no corner tile can start the grid") {
			t.Errorf("backtrack=%v: unexpected message %q", backtrack, err.Error())
		}
	}
}

func TestSolverAmbiguous(t *testing.T) {
	tiles := ambiguousTiles(t)

	solver, err := NewSolver(tiles)
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	_, err = solver.Solve()
	if !errors.Is(err, ErrAmbiguousMatch) {
		t.Fatalf("Expected ErrAmbiguousMatch, got %v", err)
	}
	var pe *PlacementError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected *PlacementError, got %T", err)
	}
	if pe.Row != 0 || pe.Col != 1 || pe.Candidates != 12 {
		t.Errorf("Expected (0,1) with 12 candidates, got %+v", *pe)
	}

	solver, err = NewSolver(tiles, WithBacktracking(true))
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	arr, err := solver.Solve()
	if err != nil {
		t.Fatalf("Solve with backtracking: %v", err)
	}
	if err := arr.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestSolverBacktrackingAgreesOnSample(t *testing.T) {
	tiles := loadSample(t)
	solver, err := NewSolver(tiles, WithBacktracking(true))
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	arr, err := solver.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	corners := arr.CornerIDs()
	if !sameIDs(corners[:], idSet(1951, 3079, 2971, 1171)) {
		t.Errorf("Expected the corner tiles in the corners, got %v", corners)
	}
	if id := arr.Tile(1, 1).ID(); id != 1427 {
		t.Errorf("Expected 1427 in the centre, got %d", id)
	}
}

func TestSolverTrace(t *testing.T) {
	var trace bytes.Buffer
	solver, err := NewSolver(loadSample(t), WithTrace(&trace))
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	if _, err := solver.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(trace.String()), "\n")
	if len(lines) != 9 {
		t.Fatalf("Expected 9 trace lines, got %d:\n%s", len(lines), trace.String())
	}
	if !strings.HasPrefix(lines[0], "place (0,0): tile ") {
		t.Errorf("Unexpected first line %q", lines[0])
	}
	if !strings.HasPrefix(lines[8], "place (2,2): tile ") {
		t.Errorf("Unexpected last line %q", lines[8])
	}
}

func TestSolverSingleTile(t *testing.T) {
	tile, err := NewTile(5, mustBitmap(t, "#..", "...", "..#"))
	if err != nil {
		t.Fatalf("NewTile: %v", err)
	}
	for _, backtrack := range []bool{false, true} {
		solver, err := NewSolver([]*Tile{tile}, WithBacktracking(backtrack))
		if err != nil {
			t.Fatalf("NewSolver: %v", err)
		}
		arr, err := solver.Solve()
		if err != nil {
			t.Fatalf("backtrack=%v: Solve: %v", backtrack, err)
		}
		if p := arr.At(0, 0); p.Tile != 0 || p.Orientation != 0 {
			t.Errorf("backtrack=%v: expected tile 0 in rot0, got %+v", backtrack, p)
		}
		if arr.CornerProduct() != 5 {
			t.Errorf("backtrack=%v: expected corner product 5, got %d", backtrack, arr.CornerProduct())
		}
	}
}

func TestArrangementValidateCatchesMismatch(t *testing.T) {
	tiles := loadSample(t)
	solver, err := NewSolver(tiles)
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	arr, err := solver.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	arr.cells[4].Orientation = arr.cells[4].Orientation.Compose(2)
	if err := arr.Validate(); !errors.Is(err, ErrInvalidArrangement) {
		t.Errorf("Expected ErrInvalidArrangement, got %v", err)
	}

	arr.cells[4] = arr.cells[0]
	if err := arr.Validate(); !errors.Is(err, ErrInvalidArrangement) {
		t.Errorf("Expected ErrInvalidArrangement for a reused tile, got %v", err)
	}
}
