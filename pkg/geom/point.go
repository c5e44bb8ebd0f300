package geom

import (
	"cmp"
	"fmt"
	"slices"
)

// MaxCoord bounds every coordinate waferlabel produces. Every integer up to
// it has an exact float64 form, so range checks done in float64 are exact
// and sums of two in-range values cannot overflow int64.
const MaxCoord = 1 << 53

// Point is an (x, y) position or displacement in grid units.
type Point struct {
	X, Y int64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int64) Point { return Point{X: x, Y: y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Mul returns p scaled by the integer k.
func (p Point) Mul(k int64) Point { return Point{X: p.X * k, Y: p.Y * k} }

// InRange reports whether both coordinates lie within ±MaxCoord.
func (p Point) InRange() bool {
	return p.X >= -MaxCoord && p.X <= MaxCoord && p.Y >= -MaxCoord && p.Y <= MaxCoord
}

// String formats p as "(x,y)".
func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// CompareRaster orders points by Y, then X, both ascending.
// It returns a negative number when a sorts before b, zero when the points
// are equal, and a positive number otherwise.
func CompareRaster(a, b Point) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}

// SortRaster returns a copy of pts sorted by [CompareRaster].
// Equal points keep their relative order. The input slice is not modified.
func SortRaster(pts []Point) []Point {
	out := slices.Clone(pts)
	slices.SortStableFunc(out, CompareRaster)
	return out
}
