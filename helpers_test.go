package tilestitch

import (
	"math/rand"
	"os"
	"strings"
	"testing"
)

const (
	sampleCornerProduct = 20899048083289
	sampleRoughness     = 273
)

func loadSample(t *testing.T) []*Tile {
	t.Helper()
	tiles, err := LoadTiles("testdata/sample.txt")
	if err != nil {
		t.Fatalf("Failed to load sample: %v", err)
	}
	return tiles
}

func readTestdata(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", name, err)
	}
	return string(data)
}

func mustBitmap(t *testing.T, rows ...string) *Bitmap {
	t.Helper()
	b, err := ParseBitmap(rows)
	if err != nil {
		t.Fatalf("ParseBitmap: %v", err)
	}
	return b
}

func randomBitmap(rng *rand.Rand, width, height int) *Bitmap {
	b := NewBitmap(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			b.Set(x, y, rng.Intn(2) == 1)
		}
	}
	return b
}

// synthPuzzle cuts a random image into n x n tiles of the given side that
// overlap by one pixel, so neighbours share an edge exactly. Each tile is
// given a random orientation and the set is shuffled. It returns the tiles
// and the image their trimmed interiors form.
func synthPuzzle(t *testing.T, rng *rand.Rand, n, side int) ([]*Tile, *Bitmap) {
	t.Helper()
	step := side - 1
	return cutPuzzle(t, rng, randomBitmap(rng, n*step+1, n*step+1), n, side)
}

// cutPuzzle is synthPuzzle over a caller supplied image of side
// n*(side-1)+1. Tile ids are 1000 + row*n + col.
func cutPuzzle(t *testing.T, rng *rand.Rand, big *Bitmap, n, side int) ([]*Tile, *Bitmap) {
	t.Helper()
	step := side - 1
	inner := side - 2
	interior := NewBitmap(n*inner, n*inner)

	var tiles []*Tile
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			piece := NewBitmap(side, side)
			for y := 0; y < side; y++ {
				for x := 0; x < side; x++ {
					piece.Set(x, y, big.At(col*step+x, row*step+y))
				}
			}
			interior.blit(piece.Trim(), col*inner, row*inner)

			o := Orientation(rng.Intn(Orientations))
			tile, err := NewTile(uint64(1000+row*n+col), piece.Transform(o))
			if err != nil {
				t.Fatalf("NewTile: %v", err)
			}
			tiles = append(tiles, tile)
		}
	}
	rng.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})
	return tiles, interior
}

// ambiguousTiles builds four 5x5 tiles whose inner sides are all blank, so
// any of them fits next to any other.
func ambiguousTiles(t *testing.T) []*Tile {
	t.Helper()
	defs := []struct {
		id        uint64
		top, left string
	}{
		{11, "10000", "11000"},
		{13, "10100", "11100"},
		{17, "10010", "11010"},
		{19, "10110", "11110"},
	}
	bit := strings.NewReplacer("1", "#", "0", ".")

	var tiles []*Tile
	for _, s := range defs {
		rows := []string{bit.Replace(s.top)}
		for i := 1; i < 5; i++ {
			rows = append(rows, bit.Replace(s.left[i:i+1])+"....")
		}
		tile, err := NewTile(s.id, mustBitmap(t, rows...))
		if err != nil {
			t.Fatalf("NewTile: %v", err)
		}
		tiles = append(tiles, tile)
	}
	return tiles
}

func idSet(ids ...uint64) map[uint64]bool {
	set := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func sameIDs(got []uint64, want map[uint64]bool) bool {
	if len(got) != len(want) {
		return false
	}
	for _, id := range got {
		if !want[id] {
			return false
		}
	}
	return true
}
