package tilestitch

import (
	"image"
	"sync"
)

// Match is one occurrence of a pattern: the anchor of its box in b
// transformed by Orientation.
type Match struct {
	Orientation Orientation
	Row, Col    int

	baseW, baseH int
}

// Cells returns the pixels of the original, untransformed bitmap covered by
// the set cells of p at this match.
func (m Match) Cells(p Pattern) []image.Point {
	w, h := m.Orientation.size(m.baseW, m.baseH)
	back := dihedrals[m.Orientation.Inverse()]
	cells := make([]image.Point, 0, len(p.offsets))
	for _, off := range p.offsets {
		x, y := back.forward(m.Col+off.Col, m.Row+off.Row, w, h, m.baseW, m.baseH)
		cells = append(cells, image.Pt(x, y))
	}
	return cells
}

// ScanResult holds every match of a pattern across the eight orientations
// of a bitmap.
type ScanResult struct {
	Matches        []Match
	PerOrientation [Orientations]int
	// Pixels is the number of set pixels in the scanned bitmap.
	Pixels int
	// Weight is the number of set cells in the pattern.
	Weight int
}

// Count returns the total number of matches.
func (r ScanResult) Count() int {
	return len(r.Matches)
}

// Roughness returns the set pixels left after subtracting Weight for every
// match. Overlapping matches can over-subtract; the result stops at zero.
func (r ScanResult) Roughness() uint64 {
	covered := r.Count() * r.Weight
	if covered >= r.Pixels {
		return 0
	}
	return uint64(r.Pixels - covered)
}

// Covered returns the distinct pixels of the original bitmap that belong to
// at least one match of p.
func (r ScanResult) Covered(p Pattern) map[image.Point]bool {
	covered := make(map[image.Point]bool)
	for _, m := range r.Matches {
		for _, pt := range m.Cells(p) {
			covered[pt] = true
		}
	}
	return covered
}

type scanConfig struct {
	parallel bool
}

// ScanOption is a functional option for Scan.
type ScanOption func(*scanConfig)

// WithParallel scans each orientation in its own goroutine.
func WithParallel(enabled bool) ScanOption {
	return func(c *scanConfig) {
		c.parallel = enabled
	}
}

// Scan slides p over every anchor of every orientation of b.
func Scan(b *Bitmap, p Pattern, opts ...ScanOption) ScanResult {
	var cfg scanConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var found [Orientations][]Match
	if cfg.parallel {
		var wg sync.WaitGroup
		for o := Orientation(0); o < Orientations; o++ {
			wg.Add(1)
			go func(o Orientation) {
				defer wg.Done()
				found[o] = scanOrientation(b, p, o)
			}(o)
		}
		wg.Wait()
	} else {
		for o := Orientation(0); o < Orientations; o++ {
			found[o] = scanOrientation(b, p, o)
		}
	}

	result := ScanResult{Pixels: b.Count(), Weight: p.Weight()}
	for o, matches := range found {
		result.PerOrientation[o] = len(matches)
		result.Matches = append(result.Matches, matches...)
	}
	return result
}

func scanOrientation(b *Bitmap, p Pattern, o Orientation) []Match {
	if p.Weight() == 0 {
		return nil
	}
	view := b.Transform(o)
	var matches []Match
	for row := 0; row+p.height <= view.height; row++ {
		for col := 0; col+p.width <= view.width; col++ {
			if p.matchesAt(view, row, col) {
				matches = append(matches, Match{
					Orientation: o, Row: row, Col: col,
					baseW: b.width, baseH: b.height,
				})
			}
		}
	}
	return matches
}
