package layoutdb

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/waferlabel/pkg/errors"
	"github.com/matzehuels/waferlabel/pkg/layout"
	"github.com/matzehuels/waferlabel/pkg/units"
)

// Layout is an in-memory cell database.
//
// The zero value is not usable; create layouts with [New].
type Layout struct {
	// ID identifies the design across exports.
	ID uuid.UUID

	dbu    float64
	cells  []*Cell
	byName map[string]*Cell
	labels map[layout.LabelStyle]layout.CellRef
}

// New creates an empty layout whose grid unit measures dbu real-world units.
func New(dbu float64) (*Layout, error) {
	if _, err := units.FromDBU(dbu); err != nil {
		return nil, err
	}
	return &Layout{
		ID:     uuid.New(),
		dbu:    dbu,
		byName: make(map[string]*Cell),
		labels: make(map[layout.LabelStyle]layout.CellRef),
	}, nil
}

// DBU returns the size of one grid unit in real-world units.
func (l *Layout) DBU() float64 { return l.dbu }

// Scale returns the grid units per real-world unit.
func (l *Layout) Scale() units.Scale { return units.Scale(1 / l.dbu) }

// CreateCell adds an empty cell. Names must be unique within the layout.
func (l *Layout) CreateCell(name string) (*Cell, error) {
	if err := errors.ValidateCellName(name); err != nil {
		return nil, err
	}
	if _, exists := l.byName[name]; exists {
		return nil, errors.New(errors.ErrCodeInvalidName, "duplicate cell name %q", name)
	}
	return l.addCell(name, nil), nil
}

func (l *Layout) addCell(name string, label *layout.LabelStyle) *Cell {
	c := &Cell{
		owner: l,
		index: layout.CellRef(len(l.cells)),
		name:  name,
		label: label,
	}
	l.cells = append(l.cells, c)
	l.byName[name] = c
	if label != nil {
		l.labels[*label] = c.index
	}
	return c
}

// Cell looks up a cell by name.
func (l *Layout) Cell(name string) (*Cell, bool) {
	c, ok := l.byName[name]
	return c, ok
}

// CellByRef looks up a cell by handle.
func (l *Layout) CellByRef(ref layout.CellRef) (*Cell, bool) {
	if ref < 0 || int(ref) >= len(l.cells) {
		return nil, false
	}
	return l.cells[ref], true
}

// CellName resolves a cell handle to its name.
func (l *Layout) CellName(ref layout.CellRef) (string, bool) {
	c, ok := l.CellByRef(ref)
	if !ok {
		return "", false
	}
	return c.name, true
}

// Cells returns all cells in index order.
func (l *Layout) Cells() []*Cell {
	return slices.Clone(l.cells)
}

// TopCells returns the cells no other cell instantiates, in index order.
// Label cells are never top cells.
func (l *Layout) TopCells() []*Cell {
	used := make(map[layout.CellRef]bool)
	for _, c := range l.cells {
		for _, inst := range c.instances {
			used[inst.Cell] = true
		}
	}
	var tops []*Cell
	for _, c := range l.cells {
		if !used[c.index] && c.label == nil {
			tops = append(tops, c)
		}
	}
	return tops
}

// Top returns the single top cell, or nil when there is none or more than one.
func (l *Layout) Top() *Cell {
	tops := l.TopCells()
	if len(tops) != 1 {
		return nil
	}
	return tops[0]
}

// Container resolves the cell that passes scan and place into. An empty
// name selects the top cell. The result is never a label cell.
func (l *Layout) Container(name string) (*Cell, error) {
	if name == "" {
		top := l.Top()
		if top == nil {
			return nil, errors.New(errors.ErrCodeNoActiveContainer,
				"layout has %d top cells; name the container explicitly", len(l.TopCells()))
		}
		return top, nil
	}
	c, ok := l.byName[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeNoActiveContainer, "no cell named %q", name)
	}
	if c.label != nil {
		return nil, errors.New(errors.ErrCodeNoActiveContainer, "cell %q is a label cell", name)
	}
	return c, nil
}

// LabelCell returns the label cell for style, creating it on first use.
// Equal styles always resolve to the same cell.
func (l *Layout) LabelCell(style layout.LabelStyle) (layout.CellRef, error) {
	if ref, ok := l.labels[style]; ok {
		return ref, nil
	}
	if err := style.Validate(); err != nil {
		return 0, err
	}
	s := style
	c := l.addCell(l.uniqueName(layout.LabelCellKind), &s)
	return c.index, nil
}

// uniqueName returns base, or base$1, base$2, ... whichever is free first.
func (l *Layout) uniqueName(base string) string {
	if _, taken := l.byName[base]; !taken {
		return base
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s$%d", base, i)
		if _, taken := l.byName[name]; !taken {
			return name
		}
	}
}

// Stats summarizes the size of a layout.
type Stats struct {
	Cells      int
	LabelCells int
	Instances  int // instance records
	Placements int // instance records expanded by their array size
}

// Stats counts cells and instances.
func (l *Layout) Stats() Stats {
	s := Stats{Cells: len(l.cells), LabelCells: len(l.labels)}
	for _, c := range l.cells {
		s.Instances += len(c.instances)
		for _, inst := range c.instances {
			s.Placements += inst.Size()
		}
	}
	return s
}

// reaches reports whether cell from (transitively) instantiates cell to.
func (l *Layout) reaches(from, to layout.CellRef) bool {
	seen := make(map[layout.CellRef]bool)
	stack := []layout.CellRef{from}
	for len(stack) > 0 {
		ref := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if ref == to {
			return true
		}
		if seen[ref] {
			continue
		}
		seen[ref] = true
		for _, inst := range l.cells[ref].instances {
			stack = append(stack, inst.Cell)
		}
	}
	return false
}

var _ layout.LabelFactory = (*Layout)(nil)
