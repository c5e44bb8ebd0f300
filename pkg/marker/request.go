package marker

import (
	"github.com/matzehuels/waferlabel/pkg/errors"
	"github.com/matzehuels/waferlabel/pkg/geom"
	"github.com/matzehuels/waferlabel/pkg/layout"
)

// Request asks for one label instance at Position (grid units).
type Request struct {
	Position geom.Point
	Style    layout.LabelStyle
}

// EmitStats reports what [Emit] created.
type EmitStats struct {
	Instances  int // instances inserted
	LabelCells int // distinct label styles referenced
}

// Emit resolves the label cell of every distinct style in reqs, then
// inserts one instance per request into c.
//
// All styles are resolved before the first insertion. If the factory
// rejects any of them, Emit returns that error and c is unchanged. An
// empty batch is valid and inserts nothing.
func Emit(c layout.Container, f layout.LabelFactory, reqs []Request) (EmitStats, error) {
	if c == nil {
		return EmitStats{}, errors.New(errors.ErrCodeNoActiveContainer, "no container to place labels in")
	}
	if f == nil {
		return EmitStats{}, errors.New(errors.ErrCodeInternal, "no label cell factory")
	}

	cells := make(map[layout.LabelStyle]layout.CellRef)
	for _, r := range reqs {
		if _, ok := cells[r.Style]; ok {
			continue
		}
		if err := r.Style.Validate(); err != nil {
			return EmitStats{}, err
		}
		ref, err := f.LabelCell(r.Style)
		if err != nil {
			return EmitStats{}, errors.Wrap(errors.ErrCodeInvalidSpec, err, "label cell for %s", r.Style)
		}
		cells[r.Style] = ref
	}

	stats := EmitStats{LabelCells: len(cells)}
	for _, r := range reqs {
		if err := c.Insert(layout.Single(cells[r.Style], r.Position)); err != nil {
			return stats, errors.Wrap(errors.ErrCodeInternal, err,
				"insert into %s after %d of %d instances", c.Name(), stats.Instances, len(reqs))
		}
		stats.Instances++
	}
	return stats, nil
}
