// Package units converts real-world distances into database grid units.
//
// Every distance crossing a public API of waferlabel (array origins, step
// vectors, label offsets) is expressed in real-world units, typically
// micrometres. It is converted exactly once, at the entry point of the
// operation that consumes it, by a [Scale]. Callers never pre-divide.
package units

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/waferlabel/pkg/errors"
	"github.com/matzehuels/waferlabel/pkg/geom"
)

// DefaultDBU is the conventional database unit of 1 nm expressed in µm.
const DefaultDBU = 0.001

// Scale is the number of grid units per real-world unit.
// A layout with a database unit of 0.001 µm has a Scale of 1000.
type Scale float64

// FromDBU returns the Scale of a layout whose grid unit measures dbu
// real-world units.
func FromDBU(dbu float64) (Scale, error) {
	if !isPositive(dbu) {
		return 0, errors.New(errors.ErrCodeInvalidUnits, "database unit must be positive, got %v", dbu)
	}
	return Scale(1 / dbu), nil
}

// Validate reports whether s can convert distances.
func (s Scale) Validate() error {
	if !isPositive(float64(s)) {
		return errors.New(errors.ErrCodeInvalidUnits, "scale must be positive, got %v", float64(s))
	}
	return nil
}

// DBU returns the size of one grid unit in real-world units.
func (s Scale) DBU() float64 { return 1 / float64(s) }

// ToGrid converts a real-world distance to the nearest grid unit.
// Halves round away from zero. Distances that land outside ±geom.MaxCoord
// return an INVALID_UNITS error.
func (s Scale) ToGrid(v float64) (int64, error) {
	g := math.Round(v * float64(s))
	if math.IsNaN(g) || math.Abs(g) > geom.MaxCoord {
		return 0, errors.New(errors.ErrCodeInvalidUnits,
			"distance %v is outside the grid range at %v grid units per unit", v, float64(s))
	}
	return int64(g), nil
}

// FromGrid converts a grid distance back to real-world units.
func (s Scale) FromGrid(v int64) float64 {
	return float64(v) / float64(s)
}

// Point converts v to grid units component-wise.
func (s Scale) Point(v Vec) (geom.Point, error) {
	x, err := s.ToGrid(v.X)
	if err != nil {
		return geom.Point{}, err
	}
	y, err := s.ToGrid(v.Y)
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Point{X: x, Y: y}, nil
}

// Vec converts p back to real-world units.
func (s Scale) Vec(p geom.Point) Vec {
	return Vec{X: s.FromGrid(p.X), Y: s.FromGrid(p.Y)}
}

// Vec is an (x, y) position or displacement in real-world units.
type Vec struct {
	X, Y float64
}

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec { return Vec{X: x, Y: y} }

// Add returns v + w.
func (v Vec) Add(w Vec) Vec { return Vec{X: v.X + w.X, Y: v.Y + w.Y} }

// IsFinite reports whether both components are finite numbers.
func (v Vec) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// String formats v as "x,y", the same form ParseVec accepts.
func (v Vec) String() string {
	return strconv.FormatFloat(v.X, 'f', -1, 64) + "," + strconv.FormatFloat(v.Y, 'f', -1, 64)
}

// ParseVec parses "x,y" into a Vec. Whitespace around either number is ignored.
func ParseVec(s string) (Vec, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Vec{}, errors.New(errors.ErrCodeInvalidUnits, "invalid vector %q: want \"x,y\"", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return Vec{}, errors.Wrap(errors.ErrCodeInvalidUnits, err, "invalid vector %q", s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return Vec{}, errors.Wrap(errors.ErrCodeInvalidUnits, err, "invalid vector %q", s)
	}
	v := Vec{X: x, Y: y}
	if !v.IsFinite() {
		return Vec{}, errors.New(errors.ErrCodeInvalidUnits, "invalid vector %q: components must be finite", s)
	}
	return v, nil
}

func isPositive(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}
