package marker

import (
	"github.com/matzehuels/waferlabel/pkg/errors"
	"github.com/matzehuels/waferlabel/pkg/geom"
	"github.com/matzehuels/waferlabel/pkg/layout"
	"github.com/matzehuels/waferlabel/pkg/units"
)

// LabelSpec configures a serial-number labelling pass.
type LabelSpec struct {
	// Template is the name of the cell whose placements are labelled.
	Template string

	// Offset from each placement to its label, in real-world units.
	Offset units.Vec

	Layer         layout.LayerInfo
	Magnification float64

	// Format is a printf-style format with one integer verb, e.g. "AGK%03d".
	Format string

	// Start is the serial number of the first label.
	Start int
}

// Validate checks the spec without touching any container.
func (s LabelSpec) Validate() error {
	if err := errors.ValidateCellName(s.Template); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSpec, err, "template")
	}
	if !s.Offset.IsFinite() {
		return errors.New(errors.ErrCodeInvalidSpec, "offset must be finite: %s", s.Offset)
	}
	f, err := NewFormatter(s.Format)
	if err != nil {
		return err
	}
	return s.style(f.Format(s.Start)).Validate()
}

func (s LabelSpec) style(text string) layout.LabelStyle {
	return layout.LabelStyle{Layer: s.Layer, Magnification: s.Magnification, Text: text}
}

// Scan returns the displacement of every placement of the template cell
// among the instances placed directly in c. Arrayed instances contribute
// one point per array element. Duplicates are kept.
//
// Scan does not modify c. A template that matches nothing yields an empty,
// non-nil result.
func Scan(c layout.Container, template string) ([]geom.Point, error) {
	if c == nil {
		return nil, errors.New(errors.ErrCodeNoActiveContainer, "no container to scan")
	}
	pts := []geom.Point{}
	for _, inst := range c.Instances() {
		if name, ok := c.CellName(inst.Cell); !ok || name != template {
			continue
		}
		pts = append(pts, inst.Transforms()...)
	}
	return pts, nil
}

// Order returns pts sorted by Y, then X. The input is not modified.
func Order(pts []geom.Point) []geom.Point {
	return geom.SortRaster(pts)
}

// Label assigns serial numbers to pts in the given order, starting at
// spec.Start, and returns the requests together with the next unused
// serial. The first point receives spec.Start exactly; an empty input
// returns spec.Start unchanged. Labels that would leave the grid range fail
// the whole call.
func Label(pts []geom.Point, spec LabelSpec, scale units.Scale) ([]Request, int, error) {
	if err := scale.Validate(); err != nil {
		return nil, spec.Start, err
	}
	if err := spec.Validate(); err != nil {
		return nil, spec.Start, err
	}
	f, _ := NewFormatter(spec.Format)
	offset, err := gridPoint(scale, "offset", spec.Offset)
	if err != nil {
		return nil, spec.Start, err
	}

	serial := spec.Start
	reqs := make([]Request, 0, len(pts))
	for _, p := range pts {
		if !p.InRange() {
			return nil, spec.Start, errors.New(errors.ErrCodeInvalidSpec,
				"placement %v lies outside the grid range", p)
		}
		pos := p.Add(offset)
		if !pos.InRange() {
			return nil, spec.Start, errors.New(errors.ErrCodeInvalidSpec,
				"label for placement %v lies outside the grid range", p)
		}
		reqs = append(reqs, Request{Position: pos, Style: spec.style(f.Format(serial))})
		serial++
	}
	return reqs, serial, nil
}

// LabelResult is the outcome of [LabelByScan].
type LabelResult struct {
	// Coordinates are the scanned placements in raster order.
	Coordinates []geom.Point

	// Requests holds one label request per coordinate, in the same order.
	Requests []Request

	// NextSerial is the first serial number not assigned.
	NextSerial int
}

// LabelByScan scans c for placements of spec.Template, orders them in
// raster order, and labels them. Validation happens before the scan, so an
// invalid spec fails even when the template matches nothing.
func LabelByScan(c layout.Container, spec LabelSpec, scale units.Scale) (*LabelResult, error) {
	if err := scale.Validate(); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	pts, err := Scan(c, spec.Template)
	if err != nil {
		return nil, err
	}
	ordered := Order(pts)
	reqs, next, err := Label(ordered, spec, scale)
	if err != nil {
		return nil, err
	}
	return &LabelResult{Coordinates: ordered, Requests: reqs, NextSerial: next}, nil
}
