package tilestitch

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const tileHeader = "Tile"

// ParseTiles reads blocks of the form
//
//	Tile 2311:
//	..##.#..#.
//	##..#.....
//
// separated by blank lines. Every tile must be square, share one side
// length and carry a distinct id.
func ParseTiles(r io.Reader) ([]*Tile, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		tiles      []*Tile
		seen       = make(map[uint64]int)
		id         uint64
		headerLine int
		rows       []string
		inTile     bool
		lineNo     int
	)

	flush := func() error {
		if !inTile {
			return nil
		}
		inTile = false
		if len(rows) == 0 {
			return &MalformedTileError{Line: headerLine, ID: id, Reason: "tile has no rows"}
		}
		grid, err := ParseBitmap(rows)
		if err != nil {
			return &MalformedTileError{Line: headerLine, ID: id, Reason: err.Error()}
		}
		tile, err := NewTile(id, grid)
		if err != nil {
			var mt *MalformedTileError
			if errors.As(err, &mt) {
				mt.Line = headerLine
			}
			return err
		}
		if prev, dup := seen[id]; dup {
			return &MalformedTileError{Line: headerLine, ID: id,
				Reason: fmt.Sprintf("duplicate id, first seen on line %d", prev)}
		}
		if len(tiles) > 0 && tiles[0].Side() != tile.Side() {
			return &MalformedTileError{Line: headerLine, ID: id,
				Reason: fmt.Sprintf("side %d, expected %d", tile.Side(), tiles[0].Side())}
		}
		seen[id] = headerLine
		tiles = append(tiles, tile)
		rows = rows[:0]
		return nil
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case strings.TrimSpace(line) == "":
			if err := flush(); err != nil {
				return nil, err
			}
		case !inTile:
			parsed, err := parseHeader(line)
			if err != nil {
				return nil, &MalformedTileError{Line: lineNo, Reason: err.Error()}
			}
			id, headerLine, inTile = parsed, lineNo, true
		default:
			rows = append(rows, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tiles: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return tiles, nil
}

// parseHeader accepts "Tile <digits>:" with an optional space before the id.
func parseHeader(line string) (uint64, error) {
	rest, ok := strings.CutPrefix(line, tileHeader)
	if !ok {
		return 0, fmt.Errorf("expected %q header, got %q", tileHeader+" <id>:", line)
	}
	rest = strings.TrimPrefix(rest, " ")
	digits, ok := strings.CutSuffix(rest, ":")
	if !ok || digits == "" {
		return 0, fmt.Errorf("header %q is missing the id or trailing colon", line)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("header %q has a non-numeric id", line)
		}
	}
	id, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("header %q: %w", line, err)
	}
	return id, nil
}

// LoadTiles parses the tile file at path. Files ending in .gz or .zst are
// decompressed first.
func LoadTiles(path string) ([]*Tile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tiles: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gr.Close()
		r = gr
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
	}
	return ParseTiles(r)
}
