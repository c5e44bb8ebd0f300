package layoutdb

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/matzehuels/waferlabel/pkg/buildinfo"
	"github.com/matzehuels/waferlabel/pkg/errors"
	"github.com/matzehuels/waferlabel/pkg/geom"
	"github.com/matzehuels/waferlabel/pkg/layout"
)

type design struct {
	ID        string    `json:"id,omitempty"`
	Generator string    `json:"generator,omitempty"`
	DBU       float64   `json:"dbu"`
	Cells     []cellDoc `json:"cells"`
}

type cellDoc struct {
	Name      string             `json:"name"`
	Kind      string             `json:"kind,omitempty"`
	Label     *layout.LabelStyle `json:"label,omitempty"`
	Instances []instDoc          `json:"instances,omitempty"`
}

type instDoc struct {
	Cell string    `json:"cell"`
	X    int64     `json:"x"`
	Y    int64     `json:"y"`
	A    *[2]int64 `json:"a,omitempty"`
	B    *[2]int64 `json:"b,omitempty"`
	NA   int       `json:"na,omitempty"`
	NB   int       `json:"nb,omitempty"`
}

// ReadJSON decodes a design from r.
//
// Cells are created in file order, so cell handles are stable across a
// read/write round trip. Instances may reference cells declared later in
// the file. Cells with kind "TEXT" must carry a label style and are
// registered in the label cache.
//
// ReadJSON returns an INVALID_DESIGN error if the JSON is malformed, a
// name is duplicated, an instance references an unknown cell, or the
// hierarchy contains a cycle. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Layout, error) {
	var d design
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDesign, err, "decode")
	}

	l, err := New(d.DBU)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDesign, err, "dbu")
	}
	if d.ID != "" {
		id, err := uuid.Parse(d.ID)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDesign, err, "id %q", d.ID)
		}
		l.ID = id
	}

	for _, cd := range d.Cells {
		if err := readCell(l, cd); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDesign, err, "cell %q", cd.Name)
		}
	}
	for _, cd := range d.Cells {
		c, _ := l.Cell(cd.Name)
		for i, id := range cd.Instances {
			if err := readInstance(l, c, id); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidDesign, err, "cell %q instance %d", cd.Name, i)
			}
		}
	}
	return l, nil
}

func readCell(l *Layout, cd cellDoc) error {
	switch cd.Kind {
	case "":
		_, err := l.CreateCell(cd.Name)
		return err
	case layout.LabelCellKind:
		if cd.Label == nil {
			return fmt.Errorf("label cell without label style")
		}
		if err := errors.ValidateCellName(cd.Name); err != nil {
			return err
		}
		if _, exists := l.byName[cd.Name]; exists {
			return fmt.Errorf("duplicate cell name")
		}
		if err := cd.Label.Validate(); err != nil {
			return err
		}
		if _, exists := l.labels[*cd.Label]; exists {
			return fmt.Errorf("duplicate label style %s", cd.Label)
		}
		if len(cd.Instances) > 0 {
			return fmt.Errorf("label cells cannot hold instances")
		}
		style := *cd.Label
		l.addCell(cd.Name, &style)
		return nil
	default:
		return fmt.Errorf("unknown cell kind %q", cd.Kind)
	}
}

func readInstance(l *Layout, c *Cell, id instDoc) error {
	child, ok := l.Cell(id.Cell)
	if !ok {
		return fmt.Errorf("unknown cell %q", id.Cell)
	}
	inst := layout.InstArray{
		Cell: child.index,
		Disp: geom.Pt(id.X, id.Y),
		NA:   id.NA,
		NB:   id.NB,
	}
	if id.A != nil {
		inst.A = geom.Pt(id.A[0], id.A[1])
	}
	if id.B != nil {
		inst.B = geom.Pt(id.B[0], id.B[1])
	}
	return c.Insert(inst)
}

// WriteJSON encodes l to w as indented JSON, stamped with the name and
// version of the writing program. The stamp is ignored on read.
func WriteJSON(w io.Writer, l *Layout) error {
	d := design{
		ID:        l.ID.String(),
		Generator: buildinfo.Generator(),
		DBU:       l.dbu,
		Cells:     make([]cellDoc, 0, len(l.cells)),
	}
	for _, c := range l.cells {
		cd := cellDoc{Name: c.name}
		if c.label != nil {
			style := *c.label
			cd.Kind = layout.LabelCellKind
			cd.Label = &style
		}
		for _, inst := range c.instances {
			cd.Instances = append(cd.Instances, writeInstance(l, inst))
		}
		d.Cells = append(d.Cells, cd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

func writeInstance(l *Layout, inst layout.InstArray) instDoc {
	name, _ := l.CellName(inst.Cell)
	id := instDoc{Cell: name, X: inst.Disp.X, Y: inst.Disp.Y}
	if inst.IsRegular() {
		id.A = &[2]int64{inst.A.X, inst.A.Y}
		id.B = &[2]int64{inst.B.X, inst.B.Y}
		id.NA = inst.NA
		id.NB = inst.NB
	}
	return id
}

// ImportJSON reads the design file at path.
//
// A missing file yields a FILE_NOT_FOUND error; decoding problems yield
// the INVALID_DESIGN errors of [ReadJSON], prefixed with the path.
func ImportJSON(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "design %s", path)
		}
		return nil, err
	}
	defer f.Close()

	l, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// ExportJSON writes l to path, replacing any existing file.
func ExportJSON(l *Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(f, l); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
