package tilestitch

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewTileRejectsBadGrids(t *testing.T) {
	tests := []struct {
		name string
		grid *Bitmap
	}{
		{"not square", NewBitmap(3, 4)},
		{"too small", NewBitmap(1, 1)},
		{"too large", NewBitmap(MaxTileSide+1, MaxTileSide+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTile(7, tt.grid)
			if !errors.Is(err, ErrMalformedTile) {
				t.Fatalf("Expected ErrMalformedTile, got %v", err)
			}
			var mt *MalformedTileError
			if !errors.As(err, &mt) || mt.ID != 7 {
				t.Errorf("Expected a MalformedTileError for tile 7, got %v", err)
			}
		})
	}
}

func TestNewTileViews(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	grid := randomBitmap(rng, MaxTileSide, MaxTileSide)
	tile, err := NewTile(42, grid)
	if err != nil {
		t.Fatalf("NewTile: %v", err)
	}
	if tile.ID() != 42 || tile.Side() != MaxTileSide {
		t.Errorf("Expected id 42 side %d, got id %d side %d", MaxTileSide, tile.ID(), tile.Side())
	}
	views := tile.Views()
	for o := Orientation(0); o < Orientations; o++ {
		if want := ViewOf(grid.Transform(o)); views[o] != want || tile.View(o) != want {
			t.Errorf("%v: view does not match the transformed grid", o)
		}
	}
}

func TestTileOwnsItsGrid(t *testing.T) {
	grid := mustBitmap(t, "#.", "..")
	tile, err := NewTile(1, grid)
	if err != nil {
		t.Fatalf("NewTile: %v", err)
	}
	grid.Set(1, 1, true)
	if tile.Grid().At(1, 1) {
		t.Error("Expected the tile to keep its own copy of the grid")
	}
	tile.Grid().Set(0, 0, false)
	if !tile.Grid().At(0, 0) {
		t.Error("Expected Grid to return a copy")
	}
}
