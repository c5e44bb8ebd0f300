package job

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/waferlabel/pkg/errors"
	"github.com/matzehuels/waferlabel/pkg/layout"
	"github.com/matzehuels/waferlabel/pkg/marker"
	"github.com/matzehuels/waferlabel/pkg/units"
)

// DefaultStart is the first serial number when a serial pass omits start.
const DefaultStart = 1

// Job is a parsed job file.
type Job struct {
	// DBU is the database unit the job was written for, in real-world
	// units. Zero accepts any design; otherwise the design must match.
	DBU float64 `toml:"dbu"`

	// Container names the cell receiving labels. Empty selects the
	// design's unique top cell.
	Container string `toml:"container"`

	Arrays  []Array  `toml:"array"`
	Serials []Serial `toml:"serial"`
}

// Array is one array pass.
type Array struct {
	Name       string           `toml:"name"`
	Text       string           `toml:"text"`
	Layer      layout.LayerInfo `toml:"layer"`
	Mag        float64          `toml:"mag"`
	Origin     [2]float64       `toml:"origin"`
	Rows       int              `toml:"rows"`
	Columns    int              `toml:"columns"`
	RowStep    [2]float64       `toml:"row_step"`
	ColumnStep [2]float64       `toml:"column_step"`

	RepeatX     int        `toml:"repeat_x"`
	RepeatY     int        `toml:"repeat_y"`
	RepeatPitch [2]float64 `toml:"repeat_pitch"`
}

// Serial is one serial-numbering pass.
type Serial struct {
	Name     string           `toml:"name"`
	Template string           `toml:"template"`
	Format   string           `toml:"format"`
	Start    *int             `toml:"start"`
	Offset   [2]float64       `toml:"offset"`
	Layer    layout.LayerInfo `toml:"layer"`
	Mag      float64          `toml:"mag"`
}

// Load reads and validates the job file at path.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "job file not found: %s", path)
		}
		return nil, fmt.Errorf("read job: %w", err)
	}
	j, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return j, nil
}

// Parse decodes a job from TOML, fills in defaults and validates it.
// Unknown keys are rejected so that typos do not silently drop settings.
func Parse(data []byte) (*Job, error) {
	var j Job
	md, err := toml.Decode(string(data), &j)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidJob, err, "parse job")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidJob, "unknown keys: %s", strings.Join(keys, ", "))
	}
	j.SetDefaults()
	if err := j.Validate(); err != nil {
		return nil, err
	}
	return &j, nil
}

// SetDefaults names unnamed passes and fills serial defaults.
func (j *Job) SetDefaults() {
	for i := range j.Arrays {
		if j.Arrays[i].Name == "" {
			j.Arrays[i].Name = fmt.Sprintf("array-%d", i+1)
		}
	}
	for i := range j.Serials {
		s := &j.Serials[i]
		if s.Name == "" {
			s.Name = fmt.Sprintf("serial-%d", i+1)
		}
		if s.Format == "" {
			s.Format = marker.DefaultSerialFormat
		}
		if s.Start == nil {
			start := DefaultStart
			s.Start = &start
		}
	}
}

// Validate checks the whole job. Every pass is converted to its marker
// spec and validated, so a job that validates can only fail at run time
// because of the design it runs against.
func (j *Job) Validate() error {
	if j.DBU != 0 {
		if _, err := units.FromDBU(j.DBU); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidJob, err, "dbu")
		}
	}
	if len(j.Arrays)+len(j.Serials) == 0 {
		return errors.New(errors.ErrCodeInvalidJob, "job has no passes")
	}

	seen := make(map[string]bool)
	unique := func(name string) error {
		if seen[name] {
			return errors.New(errors.ErrCodeInvalidJob, "duplicate pass name %q", name)
		}
		seen[name] = true
		return nil
	}

	for _, a := range j.Arrays {
		if err := unique(a.Name); err != nil {
			return err
		}
		if a.RepeatX < 0 || a.RepeatY < 0 {
			return errors.New(errors.ErrCodeInvalidJob, "array %q: repeat counts must not be negative", a.Name)
		}
		if err := a.checkSize(); err != nil {
			return err
		}
		for _, spec := range a.Specs() {
			if err := spec.Validate(); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidJob, err, "array %q", a.Name)
			}
		}
	}
	for _, s := range j.Serials {
		if err := unique(s.Name); err != nil {
			return err
		}
		if err := s.Spec().Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidJob, err, "serial %q", s.Name)
		}
	}
	return nil
}

// dbuTolerance is the relative difference below which two database units
// are the same grid.
const dbuTolerance = 1e-9

// Scale returns the unit scale of a design with database unit designDBU.
// A job that names its own dbu only runs against designs on that grid, since
// the requests it produces are inserted in design grid units.
func (j *Job) Scale(designDBU float64) (units.Scale, error) {
	scale, err := units.FromDBU(designDBU)
	if err != nil {
		return 0, err
	}
	if j.DBU != 0 && math.Abs(j.DBU-designDBU) > dbuTolerance*designDBU {
		return 0, errors.New(errors.ErrCodeInvalidUnits,
			"job dbu %v does not match design dbu %v", j.DBU, designDBU)
	}
	return scale, nil
}

// ArraySpecs returns the specs of every array pass, repeats expanded.
func (j *Job) ArraySpecs() []marker.ArraySpec {
	var specs []marker.ArraySpec
	for _, a := range j.Arrays {
		specs = append(specs, a.Specs()...)
	}
	return specs
}

// LabelSpecs returns the spec of every serial pass.
func (j *Job) LabelSpecs() []marker.LabelSpec {
	specs := make([]marker.LabelSpec, len(j.Serials))
	for i, s := range j.Serials {
		specs[i] = s.Spec()
	}
	return specs
}

// Specs expands a into one spec per repeat origin, repeat rows outermost.
// Without repeats it returns a single spec.
func (a Array) Specs() []marker.ArraySpec {
	nx, ny := max(a.RepeatX, 1), max(a.RepeatY, 1)
	base := marker.ArraySpec{
		Origin:     vec(a.Origin),
		Rows:       a.Rows,
		Columns:    a.Columns,
		RowStep:    vec(a.RowStep),
		ColumnStep: vec(a.ColumnStep),
		Style:      layout.LabelStyle{Layer: a.Layer, Magnification: a.Mag, Text: a.Text},
	}

	specs := make([]marker.ArraySpec, 0, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			spec := base
			spec.Origin = base.Origin.Add(units.V(
				a.RepeatPitch[0]*float64(i),
				-a.RepeatPitch[1]*float64(j),
			))
			specs = append(specs, spec)
		}
	}
	return specs
}

// checkSize rejects passes whose repeats and array together exceed
// marker.MaxArrayLabels, before any expansion takes place.
func (a Array) checkSize() error {
	n := 1
	for _, k := range []int{a.RepeatX, a.RepeatY, a.Rows, a.Columns} {
		k = max(k, 1)
		if k > marker.MaxArrayLabels/n {
			return errors.New(errors.ErrCodeInvalidJob,
				"array %q exceeds %d labels", a.Name, marker.MaxArrayLabels)
		}
		n *= k
	}
	return nil
}

// Count returns the number of labels the pass places.
func (a Array) Count() int {
	n := 0
	for _, spec := range a.Specs() {
		n += spec.Count()
	}
	return n
}

// Spec converts s to a marker spec. Defaults must have been applied.
func (s Serial) Spec() marker.LabelSpec {
	start := DefaultStart
	if s.Start != nil {
		start = *s.Start
	}
	return marker.LabelSpec{
		Template:      s.Template,
		Offset:        vec(s.Offset),
		Layer:         s.Layer,
		Magnification: s.Mag,
		Format:        s.Format,
		Start:         start,
	}
}

func vec(v [2]float64) units.Vec { return units.V(v[0], v[1]) }
