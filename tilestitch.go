// Package tilestitch reassembles a square image from shuffled square tiles
// that may each be rotated or mirrored, then searches the stitched image
// for a fixed pattern.
//
// The pipeline runs one way: tiles are parsed (ParseTiles), their edges are
// indexed (BuildEdgeIndex), a Solver lays them into an Arrangement,
// Assemble joins the trimmed interiors into a Bitmap, and Scan counts
// pattern matches over all eight orientations of that bitmap.
package tilestitch

import (
	"errors"
	"fmt"
)

// Result is the outcome of one end-to-end run.
type Result struct {
	Tiles         []*Tile
	Index         *EdgeIndex
	CornerProduct uint64
	Arrangement   *Arrangement
	Image         *Bitmap
	Pattern       Pattern
	Scan          ScanResult
}

// Roughness returns the set pixels of the image not claimed by pattern
// matches.
func (r *Result) Roughness() uint64 {
	return r.Scan.Roughness()
}

type reconstructConfig struct {
	solver []SolverOption
	scan   []ScanOption
}

// Option configures Reconstruct.
type Option func(*reconstructConfig)

// WithSolverOptions passes options through to NewSolver.
func WithSolverOptions(opts ...SolverOption) Option {
	return func(c *reconstructConfig) {
		c.solver = append(c.solver, opts...)
	}
}

// WithScanOptions passes options through to Scan.
func WithScanOptions(opts ...ScanOption) Option {
	return func(c *reconstructConfig) {
		c.scan = append(c.scan, opts...)
	}
}

// Reconstruct solves the puzzle formed by tiles, assembles the image and
// scans it for pattern.
func Reconstruct(tiles []*Tile, pattern Pattern, opts ...Option) (*Result, error) {
	var cfg reconstructConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	solver, err := NewSolver(tiles, cfg.solver...)
	if err != nil {
		return nil, err
	}
	arr, err := solver.Solve()
	if err != nil {
		return nil, fmt.Errorf("failed to place tiles: %w", err)
	}
	// Colliding edge codes can hide corners from the index even though the
	// search placed every tile; the arrangement then names them.
	product, err := solver.Index().CornerProduct()
	if errors.Is(err, ErrCornerCount) {
		product, err = arr.CornerProduct(), nil
	}
	if err != nil {
		return nil, err
	}

	img := Assemble(arr)
	return &Result{
		Tiles:         tiles,
		Index:         solver.Index(),
		CornerProduct: product,
		Arrangement:   arr,
		Image:         img,
		Pattern:       pattern,
		Scan:          Scan(img, pattern, cfg.scan...),
	}, nil
}
