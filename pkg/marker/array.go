package marker

import (
	"math"

	"github.com/matzehuels/waferlabel/pkg/errors"
	"github.com/matzehuels/waferlabel/pkg/geom"
	"github.com/matzehuels/waferlabel/pkg/layout"
	"github.com/matzehuels/waferlabel/pkg/units"
)

// MaxArrayLabels bounds the number of labels one array may produce.
const MaxArrayLabels = 1 << 24

// ArraySpec describes a rectangular array of one label.
// Origin and both steps are in real-world units.
type ArraySpec struct {
	Origin     units.Vec
	Rows       int
	Columns    int
	RowStep    units.Vec
	ColumnStep units.Vec
	Style      layout.LabelStyle
}

// Count returns the number of labels the array produces. Counts that do not
// fit an int saturate at math.MaxInt.
func (s ArraySpec) Count() int {
	if s.Rows <= 0 || s.Columns <= 0 {
		return 0
	}
	if s.Rows > math.MaxInt/s.Columns {
		return math.MaxInt
	}
	return s.Rows * s.Columns
}

// Validate returns an INVALID_SPEC error for negative or oversized counts,
// a bad label style, or non-finite coordinates.
func (s ArraySpec) Validate() error {
	if s.Rows < 0 {
		return errors.New(errors.ErrCodeInvalidSpec, "rows must not be negative: %d", s.Rows)
	}
	if s.Columns < 0 {
		return errors.New(errors.ErrCodeInvalidSpec, "columns must not be negative: %d", s.Columns)
	}
	vecs := []struct {
		name string
		v    units.Vec
	}{
		{"origin", s.Origin},
		{"row step", s.RowStep},
		{"column step", s.ColumnStep},
	}
	for _, f := range vecs {
		if !f.v.IsFinite() {
			return errors.New(errors.ErrCodeInvalidSpec, "%s must be finite: %s", f.name, f.v)
		}
	}
	if err := s.Style.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSpec, err, "label style")
	}
	return nil
}

// PlaceArray computes one request per array cell in row-major order.
//
// Every request carries spec.Style, so emitting them references a single
// label cell. A zero row or column count yields no requests. Nothing is
// returned when validation fails.
func PlaceArray(spec ArraySpec, scale units.Scale) ([]Request, error) {
	if err := scale.Validate(); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	origin, err := gridPoint(scale, "origin", spec.Origin)
	if err != nil {
		return nil, err
	}
	rowStep, err := gridPoint(scale, "row step", spec.RowStep)
	if err != nil {
		return nil, err
	}
	colStep, err := gridPoint(scale, "column step", spec.ColumnStep)
	if err != nil {
		return nil, err
	}
	if err := checkCorners(origin, rowStep, colStep, spec.Rows, spec.Columns); err != nil {
		return nil, err
	}

	reqs := make([]Request, 0, spec.Count())
	for r := 0; r < spec.Rows; r++ {
		for c := 0; c < spec.Columns; c++ {
			pos := origin.Add(colStep.Mul(int64(c))).Sub(rowStep.Mul(int64(r)))
			reqs = append(reqs, Request{Position: pos, Style: spec.Style})
		}
	}
	return reqs, nil
}

func gridPoint(scale units.Scale, name string, v units.Vec) (geom.Point, error) {
	p, err := scale.Point(v)
	if err != nil {
		return geom.Point{}, errors.Wrap(errors.ErrCodeInvalidSpec, err, "%s", name)
	}
	return p, nil
}

// checkCorners rejects arrays whose extreme positions leave the grid range.
// Each coordinate is affine in (row, column), so its extremes sit at the
// corners, and in-range corners bound every partial sum PlaceArray computes.
func checkCorners(origin, rowStep, colStep geom.Point, rows, cols int) error {
	if rows == 0 || cols == 0 {
		return nil
	}
	for _, r := range []int{0, rows - 1} {
		for _, c := range []int{0, cols - 1} {
			x := float64(origin.X) + float64(colStep.X)*float64(c) - float64(rowStep.X)*float64(r)
			y := float64(origin.Y) + float64(colStep.Y)*float64(c) - float64(rowStep.Y)*float64(r)
			if math.Abs(x) > geom.MaxCoord || math.Abs(y) > geom.MaxCoord {
				return errors.New(errors.ErrCodeInvalidSpec,
					"array cell (row %d, column %d) lies outside the grid range", r, c)
			}
		}
	}
	return nil
}
