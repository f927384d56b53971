package tilestitch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/wbrown/tilestitch/imageutil"
)

var (
	ErrEmptyPattern   = errors.New("pattern has no set cells")
	ErrInvalidPattern = errors.New("invalid pattern offset")
)

// darkThreshold separates set (dark) from clear pixels in pattern images.
const darkThreshold = 128

// Offset is a set cell of a Pattern relative to its top-left anchor.
type Offset struct {
	Row, Col int
}

// Pattern is a fixed shape of set cells inside a height x width box.
type Pattern struct {
	height, width int
	offsets       []Offset
}

// SeaMonster is the 3x20, 15 cell shape searched for by default:
//
//	                  #
//	#    ##    ##    ###
//	 #  #  #  #  #  #
var SeaMonster = mustParsePattern(
	"                  # \n" +
		"#    ##    ##    ###\n" +
		" #  #  #  #  #  #   ")

// NewPattern builds a pattern from its set cells. Duplicates are dropped
// and the box is the tightest one holding every offset from (0, 0).
func NewPattern(offsets []Offset) (Pattern, error) {
	if len(offsets) == 0 {
		return Pattern{}, ErrEmptyPattern
	}
	cells := slices.Clone(offsets)
	slices.SortFunc(cells, func(a, b Offset) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	cells = slices.Compact(cells)

	p := Pattern{offsets: cells}
	for _, c := range cells {
		if c.Row < 0 || c.Col < 0 {
			return Pattern{}, fmt.Errorf("%w: (%d,%d)", ErrInvalidPattern, c.Row, c.Col)
		}
		p.height = max(p.height, c.Row+1)
		p.width = max(p.width, c.Col+1)
	}
	return p, nil
}

// ParsePattern reads a pattern drawn with '#' for set cells. Any other
// character is empty; lines may be ragged.
func ParsePattern(text string) (Pattern, error) {
	var offsets []Offset
	for row, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		for col, r := range []rune(line) {
			if r == setPixel {
				offsets = append(offsets, Offset{Row: row, Col: col})
			}
		}
	}
	return NewPattern(offsets)
}

func mustParsePattern(text string) Pattern {
	p, err := ParsePattern(text)
	if err != nil {
		panic(err)
	}
	return p
}

// LoadPattern reads a pattern from a text file, or from an image where
// dark pixels are set cells. Images may be PNG, JPEG, GIF or TIFF.
func LoadPattern(path string) (Pattern, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff":
		img, err := imageutil.LoadImage(path)
		if err != nil {
			return Pattern{}, err
		}
		gray := imageutil.ToGrayscale(img)
		var offsets []Offset
		for y := 0; y < gray.Height(); y++ {
			for x := 0; x < gray.Width(); x++ {
				if gray.GetGray(x, y) < darkThreshold {
					offsets = append(offsets, Offset{Row: y, Col: x})
				}
			}
		}
		p, err := NewPattern(offsets)
		if err != nil {
			return Pattern{}, fmt.Errorf("%s: %w", path, err)
		}
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Pattern{}, fmt.Errorf("failed to read pattern: %w", err)
	}
	p, err := ParsePattern(string(data))
	if err != nil {
		return Pattern{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Height returns the number of rows in the pattern box.
func (p Pattern) Height() int { return p.height }

// Width returns the number of columns in the pattern box.
func (p Pattern) Width() int { return p.width }

// Weight returns the number of set cells.
func (p Pattern) Weight() int { return len(p.offsets) }

// Offsets returns the set cells in row-major order.
func (p Pattern) Offsets() []Offset { return slices.Clone(p.offsets) }

// matchesAt reports whether every set cell lands on a set pixel of b when
// the pattern box is anchored at row, col.
func (p Pattern) matchesAt(b *Bitmap, row, col int) bool {
	for _, off := range p.offsets {
		if !b.At(col+off.Col, row+off.Row) {
			return false
		}
	}
	return true
}

// String draws the pattern with '#' and spaces.
func (p Pattern) String() string {
	grid := make([][]byte, p.height)
	for r := range grid {
		grid[r] = []byte(strings.Repeat(" ", p.width))
	}
	for _, off := range p.offsets {
		grid[off.Row][off.Col] = setPixel
	}
	lines := make([]string, p.height)
	for r, row := range grid {
		lines[r] = string(row)
	}
	return strings.Join(lines, "\n")
}
