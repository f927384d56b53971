package tilestitch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wbrown/tilestitch/imageutil"
)

const (
	setPixel   = '#'
	clearPixel = '.'
)

var ErrRaggedBitmap = errors.New("bitmap rows differ in width")

// Bitmap is a rectangular grid of on/off pixels, stored row-major.
type Bitmap struct {
	width, height int
	pix           []bool
}

// NewBitmap returns a cleared width x height bitmap.
func NewBitmap(width, height int) *Bitmap {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Bitmap{
		width:  width,
		height: height,
		pix:    make([]bool, width*height),
	}
}

// ParseBitmap builds a bitmap from rows of '#' (set) and '.' (clear).
func ParseBitmap(rows []string) (*Bitmap, error) {
	if len(rows) == 0 {
		return NewBitmap(0, 0), nil
	}
	width := len(rows[0])
	b := NewBitmap(width, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d",
				ErrRaggedBitmap, y, len(row), width)
		}
		for x := 0; x < len(row); x++ {
			switch row[x] {
			case setPixel:
				b.pix[y*width+x] = true
			case clearPixel:
			default:
				return nil, fmt.Errorf("row %d column %d: unexpected %q", y, x, row[x])
			}
		}
	}
	return b, nil
}

// Width returns the number of columns.
func (b *Bitmap) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Bitmap) Height() int {
	return b.height
}

// At reports whether the pixel at column x, row y is set. Out of range
// pixels read as clear.
func (b *Bitmap) At(x, y int) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false
	}
	return b.pix[y*b.width+x]
}

// Set changes the pixel at column x, row y. Out of range writes are ignored.
func (b *Bitmap) Set(x, y int, value bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.pix[y*b.width+x] = value
}

// Count returns the number of set pixels.
func (b *Bitmap) Count() int {
	n := 0
	for _, p := range b.pix {
		if p {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (b *Bitmap) Clone() *Bitmap {
	clone := NewBitmap(b.width, b.height)
	copy(clone.pix, b.pix)
	return clone
}

// Equal reports whether both bitmaps have the same size and pixels.
func (b *Bitmap) Equal(other *Bitmap) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}
	for i := range b.pix {
		if b.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// Trim returns the bitmap without its outermost ring of pixels.
func (b *Bitmap) Trim() *Bitmap {
	if b.width <= 2 || b.height <= 2 {
		return NewBitmap(0, 0)
	}
	out := NewBitmap(b.width-2, b.height-2)
	for y := 0; y < out.height; y++ {
		copy(out.pix[y*out.width:(y+1)*out.width],
			b.pix[(y+1)*b.width+1:(y+1)*b.width+1+out.width])
	}
	return out
}

// Transform returns a new bitmap with orientation o applied to b.
func (b *Bitmap) Transform(o Orientation) *Bitmap {
	w, h := o.size(b.width, b.height)
	out := NewBitmap(w, h)
	t := dihedrals[o%Orientations]
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx, sy := t.source(x, y, b.width, b.height, w, h)
			out.pix[y*w+x] = b.pix[sy*b.width+sx]
		}
	}
	return out
}

// Edge reads one boundary of the bitmap as a big-endian code: the top and
// bottom rows left to right, the left and right columns top to bottom.
func (b *Bitmap) Edge(s Side) EdgeCode {
	var code EdgeCode
	push := func(x, y int) {
		code <<= 1
		if b.At(x, y) {
			code |= 1
		}
	}
	switch s {
	case Top:
		for x := 0; x < b.width; x++ {
			push(x, 0)
		}
	case Bottom:
		for x := 0; x < b.width; x++ {
			push(x, b.height-1)
		}
	case Left:
		for y := 0; y < b.height; y++ {
			push(0, y)
		}
	case Right:
		for y := 0; y < b.height; y++ {
			push(b.width-1, y)
		}
	}
	return code
}

// blit copies src into b with its top-left corner at (x, y).
func (b *Bitmap) blit(src *Bitmap, x, y int) {
	for sy := 0; sy < src.height; sy++ {
		for sx := 0; sx < src.width; sx++ {
			b.Set(x+sx, y+sy, src.pix[sy*src.width+sx])
		}
	}
}

// Gray converts the bitmap to a grayscale image with set pixels painted
// on and clear pixels painted off.
func (b *Bitmap) Gray(on, off uint8) *imageutil.GrayImage {
	img := imageutil.NewGrayImage(b.width, b.height)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			v := off
			if b.pix[y*b.width+x] {
				v = on
			}
			img.Pix[y*img.Stride+x] = v
		}
	}
	return img
}

// String renders the bitmap as newline separated rows of '#' and '.'.
func (b *Bitmap) String() string {
	var sb strings.Builder
	sb.Grow((b.width + 1) * b.height)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.pix[y*b.width+x] {
				sb.WriteByte(setPixel)
			} else {
				sb.WriteByte(clearPixel)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
