package tilestitch

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/wbrown/tilestitch/imageutil"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	colorOn    = imageutil.RGB{R: 0x1f, G: 0x6f, B: 0xb5}
	colorOff   = imageutil.RGB{R: 0x0a, G: 0x1a, B: 0x2a}
	colorMatch = imageutil.RGB{R: 0xf0, G: 0x52, B: 0x4f}
	colorSeam  = imageutil.RGB{R: 0x57, G: 0x59, B: 0x59}
	colorLabel = color.RGBA{R: 0xff, G: 0xfc, B: 0x7f, A: 0xff}
)

// RenderOptions controls RenderImage.
type RenderOptions struct {
	// Scale is the size in output pixels of one bitmap pixel (min 1).
	Scale int
	// Borders keeps the untrimmed tile edges so seams stay visible.
	Borders bool
	// Labels draws each tile id in the top-left of its cell.
	Labels bool
	// Highlight paints pixels covered by pattern matches.
	Highlight bool
}

// RenderImage draws the assembled image of r as an RGBA picture.
func RenderImage(r *Result, opts RenderOptions) (*image.RGBA, error) {
	scale := max(opts.Scale, 1)

	src := r.Image
	cell := 0
	if r.Arrangement != nil && r.Arrangement.Size() > 0 {
		cell = src.Width() / r.Arrangement.Size()
		if opts.Borders {
			src = AssembleWithBorders(r.Arrangement)
			cell += 2
		}
	}

	canvas := imageutil.NewRGBAImage(src.Width(), src.Height())
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			c := colorOff
			switch {
			case src.At(x, y):
				c = colorOn
			case opts.Borders && cell > 0 && isSeam(x, y, cell):
				c = colorSeam
			}
			canvas.SetRGB(x, y, c)
		}
	}

	if opts.Highlight {
		for pt := range r.Scan.Covered(r.Pattern) {
			if opts.Borders && cell > 0 {
				pt = borderedPoint(pt, cell)
			}
			canvas.SetRGB(pt.X, pt.Y, colorMatch)
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, src.Width()*scale, src.Height()*scale))
	draw.NearestNeighbor.Scale(out, out.Bounds(), canvas.RGBA, canvas.Bounds(), draw.Src, nil)

	if opts.Labels && r.Arrangement != nil && cell > 0 {
		if err := drawLabels(out, r.Arrangement, cell*scale); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// SavePNG renders r and writes it to path.
func SavePNG(r *Result, path string, opts RenderOptions) error {
	img, err := RenderImage(r, opts)
	if err != nil {
		return err
	}
	return imageutil.SavePNG(img, path)
}

// isSeam reports whether x, y lies on the outer ring of its tile.
func isSeam(x, y, cell int) bool {
	cx, cy := x%cell, y%cell
	return cx == 0 || cy == 0 || cx == cell-1 || cy == cell-1
}

// borderedPoint moves a pixel of the trimmed image into the untrimmed one,
// where every tile of side cell carries a one pixel ring.
func borderedPoint(pt image.Point, cell int) image.Point {
	inner := cell - 2
	return image.Pt(
		pt.X/inner*cell+1+pt.X%inner,
		pt.Y/inner*cell+1+pt.Y%inner,
	)
}

// drawLabels writes tile ids with the Go Regular face, sized to a third of
// a cell and clipped to the image.
func drawLabels(img *image.RGBA, a *Arrangement, cellPx int) error {
	ttf, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse label font: %w", err)
	}
	size := max(float64(cellPx)/3, 6)

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()
	ascent := face.Metrics().Ascent.Ceil()

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(size)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(colorLabel))
	ctx.SetHinting(font.HintingFull)

	pad := max(cellPx/16, 1)
	for row := 0; row < a.Size(); row++ {
		for col := 0; col < a.Size(); col++ {
			label := strconv.FormatUint(a.Tile(row, col).ID(), 10)
			pt := freetype.Pt(col*cellPx+pad, row*cellPx+pad+ascent)
			if _, err := ctx.DrawString(label, pt); err != nil {
				return fmt.Errorf("failed to draw label %s: %w", label, err)
			}
		}
	}
	return nil
}
