package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/wbrown/tilestitch"
)

func main() {
	inputFile := flag.String("input", "",
		"Path to the tile file, optionally .gz or .zst compressed (required)")
	patternFile := flag.String("pattern", "",
		"Path to a pattern text file or image (default: sea monster)")
	backtrack := flag.Bool("backtrack", false,
		"Search exhaustively when more than one tile fits a cell")
	parallel := flag.Bool("parallel", false,
		"Scan the eight orientations concurrently")
	pngFile := flag.String("png", "",
		"Write a PNG preview of the assembled image to this path")
	scale := flag.Int("scale", 4,
		"Output pixels per image pixel in the PNG preview")
	labels := flag.Bool("labels", false,
		"Draw tile ids on the PNG preview")
	borders := flag.Bool("borders", false,
		"Keep tile borders in the PNG preview so seams are visible")
	showAnsi := flag.Bool("ansi", false,
		"Print the assembled image to the terminal")
	trace := flag.Bool("trace", false,
		"Print each placement to stderr")
	flag.Parse()

	if *inputFile == "" {
		fmt.Println("Please provide the tiles using the -input flag")
		flag.PrintDefaults()
		os.Exit(1)
	}

	begin := time.Now()
	tiles, err := tilestitch.LoadTiles(*inputFile)
	if err != nil {
		fmt.Printf("Error loading tiles: %v\n", err)
		os.Exit(1)
	}

	pattern := tilestitch.SeaMonster
	if *patternFile != "" {
		pattern, err = tilestitch.LoadPattern(*patternFile)
		if err != nil {
			fmt.Printf("Error loading pattern: %v\n", err)
			os.Exit(1)
		}
	}
	endLoad := time.Now()

	solverOpts := []tilestitch.SolverOption{tilestitch.WithBacktracking(*backtrack)}
	if *trace {
		solverOpts = append(solverOpts, tilestitch.WithTrace(os.Stderr))
	}
	result, err := tilestitch.Reconstruct(tiles, pattern,
		tilestitch.WithSolverOptions(solverOpts...),
		tilestitch.WithScanOptions(tilestitch.WithParallel(*parallel)))
	if err != nil {
		if errors.Is(err, tilestitch.ErrAmbiguousMatch) && !*backtrack {
			fmt.Println("Several tiles fit the same cell; retry with -backtrack")
		}
		fmt.Printf("Error reconstructing image: %v\n", err)
		os.Exit(1)
	}
	endSolve := time.Now()

	if *showAnsi {
		fmt.Print(tilestitch.RenderToAnsi(result.Image, result.Scan.Covered(pattern)))
	}

	if *pngFile != "" {
		opts := tilestitch.RenderOptions{
			Scale:     *scale,
			Borders:   *borders,
			Labels:    *labels,
			Highlight: true,
		}
		if err := tilestitch.SavePNG(result, *pngFile, opts); err != nil {
			fmt.Printf("Error writing PNG: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("PNG output written to %s\n", *pngFile)
	}

	if *trace {
		fmt.Fprintln(os.Stderr, "Arrangement:")
		for _, row := range result.Arrangement.IDs() {
			for _, id := range row {
				fmt.Fprintf(os.Stderr, " %6d", id)
			}
			fmt.Fprintln(os.Stderr)
		}
	}

	side := result.Arrangement.Size()
	fmt.Printf("Tiles: %d (%dx%d), tile side %d\n",
		len(tiles), side, side, tiles[0].Side())
	fmt.Printf("Image: %dx%d, %d set pixels\n",
		result.Image.Width(), result.Image.Height(), result.Scan.Pixels)
	fmt.Printf("Corner product: %d\n", result.CornerProduct)
	fmt.Printf("Pattern matches: %d\n", result.Scan.Count())
	for o, n := range result.Scan.PerOrientation {
		if n > 0 {
			fmt.Printf("  %v: %d\n", tilestitch.Orientation(o), n)
		}
	}
	fmt.Printf("Roughness: %d\n", result.Roughness())
	fmt.Printf("Load time: %v\n", endLoad.Sub(begin))
	fmt.Printf("Solve and scan time: %v\n", endSolve.Sub(endLoad))
}
