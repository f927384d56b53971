package tilestitch

import (
	"fmt"
	"math/bits"
)

// EdgeCode is one boundary of a tile read as a big-endian bit string,
// '#' as 1 and '.' as 0. Codes are compared as integers, never by direction.
type EdgeCode uint64

// reverse returns the code of the same boundary read the other way.
func (c EdgeCode) reverse(width int) EdgeCode {
	if width <= 0 {
		return 0
	}
	return EdgeCode(bits.Reverse64(uint64(c)) >> (64 - width))
}

// Side indexes the edges of a View.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
)

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Opposite returns the side facing s across a shared edge.
func (s Side) Opposite() Side {
	return (s + 2) % 4
}

// View is the four edge codes of a tile in one orientation, indexed by Side.
type View struct {
	edges [4]EdgeCode
	width int
}

// ViewOf reads the edges of b as it stands.
func ViewOf(b *Bitmap) View {
	return View{
		edges: [4]EdgeCode{b.Edge(Top), b.Edge(Right), b.Edge(Bottom), b.Edge(Left)},
		width: b.Width(),
	}
}

// Edge returns the code on side s.
func (v View) Edge(s Side) EdgeCode {
	return v.edges[s&3]
}

// Codes returns the codes in top, right, bottom, left order.
func (v View) Codes() [4]EdgeCode {
	return v.edges
}

// Rotate turns the view a quarter clockwise. The old left edge becomes the
// top and the old right edge becomes the bottom; both change reading
// direction.
func (v View) Rotate() View {
	e := v.edges
	return View{
		edges: [4]EdgeCode{
			Top:    e[Left].reverse(v.width),
			Right:  e[Top],
			Bottom: e[Right].reverse(v.width),
			Left:   e[Bottom],
		},
		width: v.width,
	}
}

// Flip mirrors the view left to right.
func (v View) Flip() View {
	e := v.edges
	return View{
		edges: [4]EdgeCode{
			Top:    e[Top].reverse(v.width),
			Right:  e[Left],
			Bottom: e[Bottom].reverse(v.width),
			Left:   e[Right],
		},
		width: v.width,
	}
}

// Apply returns the view after orientation o, mirroring first when o is
// mirrored and then rotating, the same order Bitmap.Transform uses.
func (v View) Apply(o Orientation) View {
	if o.Mirrored() {
		v = v.Flip()
	}
	for i := 0; i < o.Turns(); i++ {
		v = v.Rotate()
	}
	return v
}
