package layoutdb

import (
	"slices"

	"github.com/matzehuels/waferlabel/pkg/errors"
	"github.com/matzehuels/waferlabel/pkg/layout"
)

// Cell is a named cell of a [Layout]. It implements [layout.Container].
type Cell struct {
	owner     *Layout
	index     layout.CellRef
	name      string
	label     *layout.LabelStyle
	instances []layout.InstArray
}

// Name returns the cell name.
func (c *Cell) Name() string { return c.name }

// Ref returns the cell handle.
func (c *Cell) Ref() layout.CellRef { return c.index }

// Label returns the style of a label cell.
func (c *Cell) Label() (layout.LabelStyle, bool) {
	if c.label == nil {
		return layout.LabelStyle{}, false
	}
	return *c.label, true
}

// IsLabel reports whether the cell was created by [Layout.LabelCell].
func (c *Cell) IsLabel() bool { return c.label != nil }

// Instances returns a copy of the instances placed in the cell.
func (c *Cell) Instances() []layout.InstArray {
	return slices.Clone(c.instances)
}

// CellName resolves a handle through the owning layout.
func (c *Cell) CellName(ref layout.CellRef) (string, bool) {
	return c.owner.CellName(ref)
}

// Insert places an instance in the cell. The referenced cell must exist
// and must not contain this cell, directly or indirectly.
func (c *Cell) Insert(inst layout.InstArray) error {
	if c.label != nil {
		return errors.New(errors.ErrCodeInvalidSpec, "cannot place instances in label cell %q", c.name)
	}
	if _, ok := c.owner.CellByRef(inst.Cell); !ok {
		return errors.New(errors.ErrCodeNotFound, "unknown cell reference %d", inst.Cell)
	}
	if inst.NA < 0 || inst.NB < 0 {
		return errors.New(errors.ErrCodeInvalidSpec, "array counts must not be negative: %dx%d", inst.NA, inst.NB)
	}
	if !inst.InRange() {
		return errors.New(errors.ErrCodeInvalidSpec, "instance at %v lies outside the grid range", inst.Disp)
	}
	if c.owner.reaches(inst.Cell, c.index) {
		name, _ := c.owner.CellName(inst.Cell)
		return errors.New(errors.ErrCodeInvalidSpec, "placing %q in %q would create a cycle", name, c.name)
	}
	if inst.NA == 0 {
		inst.NA = 1
	}
	if inst.NB == 0 {
		inst.NB = 1
	}
	c.instances = append(c.instances, inst)
	return nil
}

var _ layout.Container = (*Cell)(nil)
