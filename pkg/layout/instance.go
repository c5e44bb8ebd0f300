package layout

import (
	"math"

	"github.com/matzehuels/waferlabel/pkg/geom"
)

// CellRef is the host's handle for a cell, typically its index.
type CellRef int

// InstArray is one instance record in a container: a reference to a cell
// placed at Disp, optionally repeated as a regular NA x NB array along the
// A and B vectors. Rotation and mirroring are not modelled.
//
// A singleton has NA = NB = 1. Counts below 1 are treated as 1.
type InstArray struct {
	Cell CellRef
	Disp geom.Point
	A, B geom.Point
	NA   int
	NB   int
}

// Single returns a non-arrayed instance of cell at disp.
func Single(cell CellRef, disp geom.Point) InstArray {
	return InstArray{Cell: cell, Disp: disp, NA: 1, NB: 1}
}

// Regular returns an na x nb array instance of cell.
func Regular(cell CellRef, disp, a, b geom.Point, na, nb int) InstArray {
	return InstArray{Cell: cell, Disp: disp, A: a, B: b, NA: na, NB: nb}
}

// IsRegular reports whether the instance stands for more than one placement.
func (i InstArray) IsRegular() bool {
	return i.na() > 1 || i.nb() > 1
}

// Size returns the number of placements the instance represents.
func (i InstArray) Size() int {
	return i.na() * i.nb()
}

// Transforms returns the displacement of every placement the instance
// represents. A singleton yields exactly [Disp]. For arrays the order is
// A index outer, B index inner.
func (i InstArray) Transforms() []geom.Point {
	out := make([]geom.Point, 0, i.Size())
	for a, na := 0, i.na(); a < na; a++ {
		for b, nb := 0, i.nb(); b < nb; b++ {
			out = append(out, i.Disp.Add(i.A.Mul(int64(a))).Add(i.B.Mul(int64(b))))
		}
	}
	return out
}

// InRange reports whether every placement of i lies within ±geom.MaxCoord.
// Placements are affine in the array indices, so checking the four corner
// placements covers all of them.
func (i InstArray) InRange() bool {
	for _, a := range []int{0, i.na() - 1} {
		for _, b := range []int{0, i.nb() - 1} {
			x := float64(i.Disp.X) + float64(i.A.X)*float64(a) + float64(i.B.X)*float64(b)
			y := float64(i.Disp.Y) + float64(i.A.Y)*float64(a) + float64(i.B.Y)*float64(b)
			if math.Abs(x) > geom.MaxCoord || math.Abs(y) > geom.MaxCoord {
				return false
			}
		}
	}
	return true
}

func (i InstArray) na() int { return max(i.NA, 1) }
func (i InstArray) nb() int { return max(i.NB, 1) }

// Container holds placed instances. It is the scan source and placement
// target of every pass.
type Container interface {
	// Name returns the container cell's name.
	Name() string

	// Instances returns the instances placed directly in the container, in
	// insertion order. Callers must not rely on that order.
	Instances() []InstArray

	// CellName resolves a cell handle to its name.
	CellName(ref CellRef) (string, bool)

	// Insert appends an instance to the container.
	Insert(inst InstArray) error
}

// LabelFactory resolves label styles to drawable cells. Implementations
// must return the same CellRef for equal styles.
type LabelFactory interface {
	LabelCell(style LabelStyle) (CellRef, error)
}
