package tilestitch

import (
	"image"
	"strings"
)

const (
	ESC = "\u001b"

	ansiFgOn    = "97"
	ansiFgMatch = "91"
	ansiBg      = "40"
)

// quadrantBlocks maps a 2x2 pixel cell to a block character. The index
// bits are: 3 top-left, 2 top-right, 1 bottom-left, 0 bottom-right.
var quadrantBlocks = [16]rune{
	' ', '▗', '▖', '▄', '▝', '▐', '▞', '▟',
	'▘', '▚', '▌', '▙', '▀', '▜', '▛', '█',
}

type ansiCell struct {
	fg    string
	block rune
}

// RenderToAnsi draws b for a terminal with one quadrant block character per
// 2x2 pixels. Characters containing a highlighted pixel use a red
// foreground. Runs of identical characters share one escape sequence.
func RenderToAnsi(b *Bitmap, highlight map[image.Point]bool) string {
	var sb strings.Builder
	for y := 0; y < b.Height(); y += 2 {
		row := make([]ansiCell, 0, (b.Width()+1)/2)
		for x := 0; x < b.Width(); x += 2 {
			row = append(row, quadrantCell(b, highlight, x, y))
		}
		writeAnsiRow(&sb, row)
	}
	return sb.String()
}

func quadrantCell(b *Bitmap, highlight map[image.Point]bool, x, y int) ansiCell {
	cell := ansiCell{fg: ansiFgOn}
	idx := 0
	for i, d := range [4]image.Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		pt := image.Pt(x+d.X, y+d.Y)
		if b.At(pt.X, pt.Y) {
			idx |= 1 << (3 - i)
			if highlight[pt] {
				cell.fg = ansiFgMatch
			}
		}
	}
	cell.block = quadrantBlocks[idx]
	if cell.block == ' ' {
		cell.fg = ""
	}
	return cell
}

// writeAnsiRow writes one line, merging adjacent cells that share a
// foreground colour and block, and resets colours at the end.
func writeAnsiRow(sb *strings.Builder, row []ansiCell) {
	for i := 0; i < len(row); {
		j := i + 1
		for j < len(row) && row[j] == row[i] {
			j++
		}
		sb.WriteString(ESC + "[")
		if row[i].fg != "" {
			sb.WriteString(row[i].fg + ";")
		}
		sb.WriteString(ansiBg + "m")
		sb.WriteString(strings.Repeat(string(row[i].block), j-i))
		i = j
	}
	sb.WriteString(ESC + "[0m\n")
}
