package tilestitch

// Assemble trims the border ring off every placed tile, lays each interior
// in its placed orientation and joins them into one bitmap of side
// size*(tileSide-2).
func Assemble(a *Arrangement) *Bitmap {
	return stitch(a, true)
}

// AssembleWithBorders joins the placed tiles without trimming, so seams
// show up as doubled edge rows and columns. Useful for previews.
func AssembleWithBorders(a *Arrangement) *Bitmap {
	return stitch(a, false)
}

func stitch(a *Arrangement, trim bool) *Bitmap {
	if a.size == 0 {
		return NewBitmap(0, 0)
	}
	side := a.tiles[a.cells[0].Tile].Side()
	if trim {
		side -= 2
	}

	out := NewBitmap(a.size*side, a.size*side)
	for row := 0; row < a.size; row++ {
		for col := 0; col < a.size; col++ {
			p := a.At(row, col)
			piece := a.tiles[p.Tile].grid
			if trim {
				piece = piece.Trim()
			}
			out.blit(piece.Transform(p.Orientation), col*side, row*side)
		}
	}
	return out
}
