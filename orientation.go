package tilestitch

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const (
	// Orientations is the order of the dihedral group of a square.
	Orientations = 8
	// Rotations is the number of quarter turns before a square repeats.
	Rotations = 4
)

// Orientation names one of the eight symmetries of a square tile.
// Orientations 0-3 rotate clockwise by 0, 90, 180 and 270 degrees.
// Orientations 4-7 mirror left to right first, then rotate the same way.
type Orientation uint8

// Turns returns the number of clockwise quarter turns.
func (o Orientation) Turns() int {
	return int(o) % Rotations
}

// Mirrored reports whether the orientation includes a left-right mirror.
func (o Orientation) Mirrored() bool {
	return o >= Rotations
}

// Valid reports whether o is in [0, Orientations).
func (o Orientation) Valid() bool {
	return o < Orientations
}

func (o Orientation) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Orientation(%d)", uint8(o))
	}
	if o.Mirrored() {
		return fmt.Sprintf("mirror+rot%d", o.Turns()*90)
	}
	return fmt.Sprintf("rot%d", o.Turns()*90)
}

// Compose returns the orientation equivalent to applying o and then next.
func (o Orientation) Compose(next Orientation) Orientation {
	var m mat.Dense
	m.Mul(next.matrix(), o.matrix())
	return orientationOf(&m)
}

// Inverse returns the orientation that undoes o.
func (o Orientation) Inverse() Orientation {
	// Dihedral matrices are orthogonal, so the inverse is the transpose.
	var m mat.Dense
	m.CloneFrom(o.matrix().T())
	return orientationOf(&m)
}

var (
	identity2 = mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	// Coordinates are centred on the grid with u growing right and v down,
	// so a clockwise quarter turn sends (u, v) to (-v, u).
	rotateCW = mat.NewDense(2, 2, []float64{0, -1, 1, 0})
	mirrorLR = mat.NewDense(2, 2, []float64{-1, 0, 0, 1})

	orientationMatrices [Orientations]*mat.Dense
	dihedrals           [Orientations]dihedral
)

func init() {
	for o := Orientation(0); o < Orientations; o++ {
		m := mat.DenseCopyOf(identity2)
		if o.Mirrored() {
			m = mat.DenseCopyOf(mirrorLR)
		}
		for i := 0; i < o.Turns(); i++ {
			var next mat.Dense
			next.Mul(rotateCW, m)
			m = &next
		}
		orientationMatrices[o] = m
		dihedrals[o] = dihedral{
			a: int(m.At(0, 0)), b: int(m.At(0, 1)),
			c: int(m.At(1, 0)), d: int(m.At(1, 1)),
		}
	}
}

func (o Orientation) matrix() *mat.Dense {
	return orientationMatrices[o%Orientations]
}

func orientationOf(m mat.Matrix) Orientation {
	for o, candidate := range orientationMatrices {
		if mat.Equal(candidate, m) {
			return Orientation(o)
		}
	}
	panic(fmt.Sprintf("tilestitch: matrix %v is not a square symmetry", mat.Formatted(m)))
}

// dihedral holds the integer coefficients of an orientation matrix. It maps
// doubled, centred pixel coordinates: u = 2x-(w-1), v = 2y-(h-1).
type dihedral struct {
	a, b, c, d int
}

// size returns the dimensions of a w x h grid after the transform.
func (o Orientation) size(w, h int) (int, int) {
	if o.Turns()%2 == 1 {
		return h, w
	}
	return w, h
}

// forward maps a pixel of a srcW x srcH grid to its position after the
// transform.
func (t dihedral) forward(x, y, srcW, srcH, dstW, dstH int) (int, int) {
	u, v := 2*x-(srcW-1), 2*y-(srcH-1)
	du, dv := t.a*u+t.b*v, t.c*u+t.d*v
	return (du + dstW - 1) / 2, (dv + dstH - 1) / 2
}

// source maps a destination pixel back to the pixel it was taken from.
func (t dihedral) source(x, y, srcW, srcH, dstW, dstH int) (int, int) {
	du, dv := 2*x-(dstW-1), 2*y-(dstH-1)
	u, v := t.a*du+t.c*dv, t.b*du+t.d*dv
	return (u + srcW - 1) / 2, (v + srcH - 1) / 2
}
