package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/waferlabel/pkg/errors"
	"github.com/matzehuels/waferlabel/pkg/geom"
	"github.com/matzehuels/waferlabel/pkg/job"
	"github.com/matzehuels/waferlabel/pkg/layout"
	"github.com/matzehuels/waferlabel/pkg/layoutdb"
	"github.com/matzehuels/waferlabel/pkg/observability"
)

const testJob = `
[[array]]
name = "zeros"
text = "0"
layer = "1/0"
mag = 10
origin = [0, 0]
rows = 1
columns = 3
row_step = [0, 0]
column_step = [300, 0]

[[serial]]
template = "sample_7x7"
offset = [2500, 6300]
layer = "1/0"
mag = 600
`

// newWafer returns a design with three chips placed out of raster order.
func newWafer(t *testing.T) (*layoutdb.Layout, *layoutdb.Cell) {
	t.Helper()
	l, err := layoutdb.New(0.001)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	wafer, err := l.CreateCell("WAFER")
	if err != nil {
		t.Fatalf("CreateCell() error: %v", err)
	}
	chip, err := l.CreateCell("sample_7x7")
	if err != nil {
		t.Fatalf("CreateCell() error: %v", err)
	}
	for _, p := range []geom.Point{geom.Pt(5000000, 2000000), geom.Pt(1000000, 2000000), geom.Pt(1000000, 1000000)} {
		if err := wafer.Insert(layout.Single(chip.Ref(), p)); err != nil {
			t.Fatalf("Insert() error: %v", err)
		}
	}
	return l, wafer
}

func parseJob(t *testing.T, data string) *job.Job {
	t.Helper()
	j, err := job.Parse([]byte(data))
	if err != nil {
		t.Fatalf("job.Parse() error: %v", err)
	}
	return j
}

func TestExecute(t *testing.T) {
	design, wafer := newWafer(t)
	r := NewRunner(nil)

	result, err := r.Execute(context.Background(), design, parseJob(t, testJob), Options{})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.Container != "WAFER" {
		t.Errorf("Container = %q, want WAFER", result.Container)
	}
	if result.DesignID != design.ID {
		t.Errorf("DesignID = %v, want %v", result.DesignID, design.ID)
	}
	if len(result.Passes) != 2 {
		t.Fatalf("Passes = %d, want 2", len(result.Passes))
	}
	if result.Stats.Requests != 6 || result.Stats.Instances != 6 {
		t.Errorf("Stats = %+v, want 6 requests and 6 instances", result.Stats)
	}
	if result.Stats.LabelCells != 4 {
		t.Errorf("LabelCells = %d, want 4", result.Stats.LabelCells)
	}
	if got := len(wafer.Instances()); got != 9 {
		t.Errorf("wafer instances = %d, want 9", got)
	}

	serial := result.Passes[1]
	if serial.Kind != KindSerial || serial.Name != "serial-1" {
		t.Errorf("pass = %s %s, want serial serial-1", serial.Kind, serial.Name)
	}
	wantCoords := []geom.Point{geom.Pt(1000000, 1000000), geom.Pt(1000000, 2000000), geom.Pt(5000000, 2000000)}
	if !slices.Equal(serial.Coordinates, wantCoords) {
		t.Errorf("Coordinates = %v, want %v", serial.Coordinates, wantCoords)
	}
	wantTexts := []string{"AGK001", "AGK002", "AGK003"}
	for i, req := range serial.Requests {
		if req.Style.Text != wantTexts[i] {
			t.Errorf("request %d text = %q, want %q", i, req.Style.Text, wantTexts[i])
		}
		want := wantCoords[i].Add(geom.Pt(2500000, 6300000))
		if req.Position != want {
			t.Errorf("request %d position = %v, want %v", i, req.Position, want)
		}
	}
	if serial.NextSerial != 4 {
		t.Errorf("NextSerial = %d, want 4", serial.NextSerial)
	}

	zeros := result.Passes[0]
	wantPos := []geom.Point{geom.Pt(0, 0), geom.Pt(300000, 0), geom.Pt(600000, 0)}
	for i, req := range zeros.Requests {
		if req.Position != wantPos[i] {
			t.Errorf("zeros[%d] = %v, want %v", i, req.Position, wantPos[i])
		}
	}
}

func TestExecuteDryRun(t *testing.T) {
	design, wafer := newWafer(t)

	result, err := NewRunner(nil).Execute(context.Background(), design, parseJob(t, testJob), Options{DryRun: true})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !result.DryRun {
		t.Error("DryRun = false, want true")
	}
	if result.Stats.Requests != 6 {
		t.Errorf("Requests = %d, want 6", result.Stats.Requests)
	}
	if result.Stats.Instances != 0 {
		t.Errorf("Instances = %d, want 0", result.Stats.Instances)
	}
	if got := len(wafer.Instances()); got != 3 {
		t.Errorf("wafer instances = %d, want 3", got)
	}
	if design.Stats().LabelCells != 0 {
		t.Errorf("Stats().LabelCells = %d, want 0", design.Stats().LabelCells)
	}
}

func TestExecuteFailedPassLeavesDesignUntouched(t *testing.T) {
	design, wafer := newWafer(t)
	j := parseJob(t, testJob)
	j.Serials[0].Format = "AGK%s"

	_, err := NewRunner(nil).Execute(context.Background(), design, j, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Fatalf("Execute() error = %v, want %v", err, errors.ErrCodeInvalidFormat)
	}
	if got := len(wafer.Instances()); got != 3 {
		t.Errorf("wafer instances = %d, want 3", got)
	}
	if design.Stats().LabelCells != 0 {
		t.Errorf("Stats().LabelCells = %d, want 0", design.Stats().LabelCells)
	}
}

func TestExecuteContainer(t *testing.T) {
	tests := []struct {
		name      string
		job       string
		override  string
		wantCode  errors.Code
		wantCells string
	}{
		{"top cell", "", "", "", "WAFER"},
		{"job container", "WAFER", "", "", "WAFER"},
		{"override", "missing", "WAFER", "", "WAFER"},
		{"missing", "missing", "", errors.ErrCodeNoActiveContainer, ""},
		{"override missing", "", "missing", errors.ErrCodeNoActiveContainer, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			design, _ := newWafer(t)
			j := parseJob(t, testJob)
			j.Container = tt.job

			result, err := NewRunner(nil).Execute(context.Background(), design, j, Options{Container: tt.override, DryRun: true})
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Errorf("Execute() error = %v, want %v", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() error: %v", err)
			}
			if result.Container != tt.wantCells {
				t.Errorf("Container = %q, want %q", result.Container, tt.wantCells)
			}
		})
	}
}

func TestExecuteNoTopCell(t *testing.T) {
	design, _ := newWafer(t)
	if _, err := design.CreateCell("RETICLE"); err != nil {
		t.Fatalf("CreateCell() error: %v", err)
	}

	_, err := NewRunner(nil).Execute(context.Background(), design, parseJob(t, testJob), Options{})
	if !errors.Is(err, errors.ErrCodeNoActiveContainer) {
		t.Errorf("Execute() error = %v, want %v", err, errors.ErrCodeNoActiveContainer)
	}
}

func TestExecuteCancelled(t *testing.T) {
	design, wafer := newWafer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(nil).Execute(ctx, design, parseJob(t, testJob), Options{})
	if !errors.Is(err, errors.ErrCodeCancelled) {
		t.Errorf("Execute() error = %v, want %v", err, errors.ErrCodeCancelled)
	}
	if got := len(wafer.Instances()); got != 3 {
		t.Errorf("wafer instances = %d, want 3", got)
	}
}

func TestExecuteNilInputs(t *testing.T) {
	design, _ := newWafer(t)
	r := NewRunner(nil)

	if _, err := r.Execute(context.Background(), nil, parseJob(t, testJob), Options{}); !errors.Is(err, errors.ErrCodeInvalidDesign) {
		t.Errorf("Execute(nil design) error = %v", err)
	}
	if _, err := r.Execute(context.Background(), design, nil, Options{}); !errors.Is(err, errors.ErrCodeInvalidJob) {
		t.Errorf("Execute(nil job) error = %v", err)
	}
}

func TestExecuteJobScale(t *testing.T) {
	tests := []struct {
		name    string
		dbu     string
		wantErr bool
	}{
		{"design grid", "dbu = 0.001\n", false},
		{"unset", "", false},
		{"coarser grid", "dbu = 0.01\n", true},
		{"finer grid", "dbu = 0.0001\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			design, wafer := newWafer(t)
			before := len(wafer.Instances())
			j := parseJob(t, tt.dbu+testJob)

			result, err := NewRunner(nil).Execute(context.Background(), design, j, Options{})
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidUnits) {
					t.Fatalf("Execute() error = %v, want INVALID_UNITS", err)
				}
				if got := len(wafer.Instances()); got != before {
					t.Errorf("wafer instances = %d, want %d", got, before)
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() error: %v", err)
			}
			if got := result.Passes[0].Requests[1].Position; got != geom.Pt(300000, 0) {
				t.Errorf("position = %v, want (300000,0)", got)
			}
		})
	}
}

func TestExecuteHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)

	design, _ := newWafer(t)
	if _, err := NewRunner(nil).Execute(context.Background(), design, parseJob(t, testJob), Options{}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	want := []string{
		"start array zeros",
		"complete array zeros 3",
		"start serial serial-1",
		"complete serial serial-1 3",
		"emit WAFER 6",
		"emitted WAFER 6",
	}
	if !slices.Equal(hooks.events, want) {
		t.Errorf("events = %v, want %v", hooks.events, want)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(format string, args ...any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, fmt.Sprintf(format, args...))
}

func (h *recordingHooks) OnPassStart(_ context.Context, kind, name string) {
	h.record("start %s %s", kind, name)
}

func (h *recordingHooks) OnPassComplete(_ context.Context, kind, name string, requests int, _ time.Duration, _ error) {
	h.record("complete %s %s %d", kind, name, requests)
}

func (h *recordingHooks) OnEmitStart(_ context.Context, container string, requests int) {
	h.record("emit %s %d", container, requests)
}

func (h *recordingHooks) OnEmitComplete(_ context.Context, container string, instances int, _ time.Duration, _ error) {
	h.record("emitted %s %d", container, instances)
}

func TestExampleJobs(t *testing.T) {
	tests := []struct {
		file   string
		labels int
	}{
		{"digit-0.toml", 5*9 + 3*6},
		{"digit-4.toml", 21*3 + 5*9},
		{"digit-8.toml", 5*9 + 5*9},
		{"serial.toml", 11},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			design, err := layoutdb.ImportJSON(filepath.Join("..", "..", "examples", "wafer.json"))
			if err != nil {
				t.Fatalf("ImportJSON() error: %v", err)
			}
			j, err := job.Load(filepath.Join("..", "..", "examples", "jobs", tt.file))
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}

			result, err := NewRunner(nil).Execute(context.Background(), design, j, Options{})
			if err != nil {
				t.Fatalf("Execute() error: %v", err)
			}
			if result.Stats.Instances != tt.labels {
				t.Errorf("Instances = %d, want %d", result.Stats.Instances, tt.labels)
			}
		})
	}
}
