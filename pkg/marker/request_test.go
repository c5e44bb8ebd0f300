package marker

import (
	"testing"

	"github.com/matzehuels/waferlabel/pkg/errors"
	"github.com/matzehuels/waferlabel/pkg/geom"
	"github.com/matzehuels/waferlabel/pkg/layout"
	"github.com/matzehuels/waferlabel/pkg/units"
)

func TestEmitSharesLabelCell(t *testing.T) {
	c := newFakeContainer()
	f := newFakeFactory()

	spec := ArraySpec{Rows: 3, Columns: 5, RowStep: units.V(0, 200), ColumnStep: units.V(300, 0), Style: digitZero}
	reqs, err := PlaceArray(spec, 1000)
	if err != nil {
		t.Fatalf("PlaceArray() error: %v", err)
	}

	stats, err := Emit(c, f, reqs)
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	if stats.Instances != 15 || stats.LabelCells != 1 {
		t.Errorf("stats = %+v, want 15 instances, 1 label cell", stats)
	}
	if f.calls != 1 {
		t.Errorf("factory calls = %d, want 1", f.calls)
	}

	first := c.instances[0].Cell
	for i, inst := range c.instances {
		if inst.Cell != first {
			t.Errorf("instance %d cell = %d, want %d", i, inst.Cell, first)
		}
		if inst.IsRegular() {
			t.Errorf("instance %d is an array, want singleton", i)
		}
		if inst.Disp != reqs[i].Position {
			t.Errorf("instance %d at %v, want %v", i, inst.Disp, reqs[i].Position)
		}
	}
}

func TestEmitDistinctStyles(t *testing.T) {
	c := newFakeContainer()
	c.instances = []layout.InstArray{
		layout.Single(0, geom.Pt(0, 0)),
		layout.Single(0, geom.Pt(10, 0)),
	}
	f := newFakeFactory()

	res, err := LabelByScan(c, serialSpec(), 1)
	if err != nil {
		t.Fatalf("LabelByScan() error: %v", err)
	}
	stats, err := Emit(c, f, res.Requests)
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	if stats.LabelCells != 2 {
		t.Errorf("LabelCells = %d, want 2", stats.LabelCells)
	}
	if len(c.instances) != 4 {
		t.Errorf("container holds %d instances, want 4", len(c.instances))
	}
}

func TestEmitValidatesBeforeInserting(t *testing.T) {
	c := newFakeContainer()
	f := newFakeFactory()
	f.reject = "AGK003"

	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(2, 0)}
	reqs, _, err := Label(pts, serialSpec(), 1)
	if err != nil {
		t.Fatalf("Label() error: %v", err)
	}

	_, err = Emit(c, f, reqs)
	if !errors.Is(err, errors.ErrCodeInvalidSpec) {
		t.Fatalf("Emit() error = %v, want %v", err, errors.ErrCodeInvalidSpec)
	}
	if len(c.instances) != 0 {
		t.Errorf("Emit() inserted %d instances before failing", len(c.instances))
	}
}

func TestEmitRejectsInvalidStyle(t *testing.T) {
	c := newFakeContainer()
	f := newFakeFactory()
	reqs := []Request{
		{Position: geom.Pt(0, 0), Style: digitZero},
		{Position: geom.Pt(0, 0), Style: layout.LabelStyle{Layer: layout.Layer(1, 0), Text: "X"}},
	}
	if _, err := Emit(c, f, reqs); err == nil {
		t.Fatal("Emit() error = nil, want error")
	}
	if len(c.instances) != 0 {
		t.Errorf("Emit() inserted %d instances", len(c.instances))
	}
}

func TestEmitEmptyBatch(t *testing.T) {
	stats, err := Emit(newFakeContainer(), newFakeFactory(), nil)
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	if stats != (EmitStats{}) {
		t.Errorf("stats = %+v, want zero", stats)
	}
}

func TestEmitNilTargets(t *testing.T) {
	if _, err := Emit(nil, newFakeFactory(), nil); !errors.Is(err, errors.ErrCodeNoActiveContainer) {
		t.Errorf("Emit(nil container) error = %v", err)
	}
	if _, err := Emit(newFakeContainer(), nil, nil); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("Emit(nil factory) error = %v", err)
	}
}

func TestEmitInsertFailure(t *testing.T) {
	c := newFakeContainer()
	c.failAfter = 2
	reqs := []Request{
		{Position: geom.Pt(0, 0), Style: digitZero},
		{Position: geom.Pt(1, 0), Style: digitZero},
		{Position: geom.Pt(2, 0), Style: digitZero},
	}
	stats, err := Emit(c, newFakeFactory(), reqs)
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Fatalf("Emit() error = %v, want %v", err, errors.ErrCodeInternal)
	}
	if stats.Instances != 2 {
		t.Errorf("Instances = %d, want 2", stats.Instances)
	}
}
