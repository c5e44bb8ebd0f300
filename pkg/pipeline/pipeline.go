// Package pipeline runs label placement jobs against a design.
//
// A run has two phases. The build phase turns every pass of the job into
// label requests: array passes via [marker.PlaceArray], serial passes via
// [marker.LabelByScan]. The emit phase hands all requests to [marker.Emit]
// in one batch. Any failure during the build phase leaves the design
// untouched, so a job with one bad pass never half-applies.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	j, err := job.Load("wafer.toml")
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, design, j, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Stats.Instances, "labels placed")
//
// Set [Options.DryRun] to compute requests without inserting anything.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/waferlabel/pkg/geom"
	"github.com/matzehuels/waferlabel/pkg/marker"
)

// Pass kinds reported in results and hooks.
const (
	KindArray  = "array"
	KindSerial = "serial"
)

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options configures a single run.
type Options struct {
	// Container overrides the job's container. Empty keeps the job's
	// choice, which in turn defaults to the design's top cell.
	Container string

	// DryRun builds every pass but inserts nothing.
	DryRun bool

	// Logger receives progress messages. Defaults to the runner's logger.
	Logger *log.Logger
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// =============================================================================
// Results
// =============================================================================

// Result describes a finished run.
type Result struct {
	// RunID identifies this run in logs.
	RunID uuid.UUID

	// DesignID is the ID of the design the run was applied to.
	DesignID uuid.UUID

	// Container is the name of the cell labels were placed in.
	Container string

	// DryRun is set when nothing was inserted.
	DryRun bool

	// Passes holds one entry per pass in execution order.
	Passes []PassResult

	Stats Stats
}

// PassResult describes one pass of a run.
type PassResult struct {
	Kind string
	Name string

	// Requests are the labels the pass asked for, in emission order.
	Requests []marker.Request

	// Coordinates are the scanned template placements of a serial pass,
	// in raster order. Nil for array passes.
	Coordinates []geom.Point

	// NextSerial is the first unused serial number of a serial pass.
	NextSerial int

	Duration time.Duration
}

// Stats contains run statistics.
type Stats struct {
	Requests   int
	Instances  int // zero for dry runs
	LabelCells int // zero for dry runs
	BuildTime  time.Duration
	EmitTime   time.Duration
}

// Requests returns the requests of all passes in emission order.
func (r *Result) Requests() []marker.Request {
	var reqs []marker.Request
	for _, p := range r.Passes {
		reqs = append(reqs, p.Requests...)
	}
	return reqs
}
