package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/waferlabel/pkg/errors"
	"github.com/matzehuels/waferlabel/pkg/job"
	"github.com/matzehuels/waferlabel/pkg/layoutdb"
	"github.com/matzehuels/waferlabel/pkg/marker"
	"github.com/matzehuels/waferlabel/pkg/observability"
	"github.com/matzehuels/waferlabel/pkg/units"
)

// Runner executes jobs. It holds no per-run state, but the designs it runs
// against are not safe for concurrent use.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs every pass of j against design.
//
// All passes are built before anything is inserted. If any pass fails, or
// ctx is cancelled before the emit phase starts, design is unchanged.
func (r *Runner) Execute(ctx context.Context, design *layoutdb.Layout, j *job.Job, opts Options) (*Result, error) {
	if design == nil {
		return nil, errors.New(errors.ErrCodeInvalidDesign, "no design loaded")
	}
	if j == nil {
		return nil, errors.New(errors.ErrCodeInvalidJob, "no job given")
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	opts.SetDefaults()

	containerName := j.Container
	if opts.Container != "" {
		containerName = opts.Container
	}
	container, err := design.Container(containerName)
	if err != nil {
		return nil, err
	}
	scale, err := j.Scale(design.DBU())
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:     uuid.New(),
		DesignID:  design.ID,
		Container: container.Name(),
		DryRun:    opts.DryRun,
	}
	logger := opts.Logger.With("run", result.RunID.String()[:8])

	// Phase 1: build
	buildStart := time.Now()
	for _, a := range j.Arrays {
		pass, err := r.buildArray(ctx, logger, a, scale)
		if err != nil {
			return nil, err
		}
		result.addPass(pass)
		logger.Info("built array pass", "name", a.Name, "labels", len(pass.Requests), "duration", pass.Duration)
	}
	for _, s := range j.Serials {
		pass, err := r.buildSerial(ctx, logger, container, s, scale)
		if err != nil {
			return nil, err
		}
		result.addPass(pass)
		logger.Info("built serial pass", "name", s.Name,
			"template", s.Template, "labels", len(pass.Requests), "next", pass.NextSerial,
			"duration", pass.Duration)
	}
	result.Stats.BuildTime = time.Since(buildStart)

	if opts.DryRun {
		logger.Info("dry run, nothing inserted", "requests", result.Stats.Requests)
		return result, nil
	}

	// Phase 2: emit
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	reqs := result.Requests()
	hooks := observability.Pipeline()
	hooks.OnEmitStart(ctx, container.Name(), len(reqs))

	emitStart := time.Now()
	stats, err := marker.Emit(container, design, reqs)
	result.Stats.EmitTime = time.Since(emitStart)
	hooks.OnEmitComplete(ctx, container.Name(), stats.Instances, result.Stats.EmitTime, err)
	if err != nil {
		return nil, fmt.Errorf("emit: %w", err)
	}
	result.Stats.Instances = stats.Instances
	result.Stats.LabelCells = stats.LabelCells

	logger.Info("placed labels",
		"container", container.Name(),
		"instances", stats.Instances,
		"label_cells", stats.LabelCells,
		"duration", result.Stats.EmitTime)

	return result, nil
}

func (r *Runner) buildArray(ctx context.Context, logger *log.Logger, a job.Array, scale units.Scale) (PassResult, error) {
	if err := checkContext(ctx); err != nil {
		return PassResult{}, err
	}
	hooks := observability.Pipeline()
	hooks.OnPassStart(ctx, KindArray, a.Name)

	start := time.Now()
	pass := PassResult{Kind: KindArray, Name: a.Name}
	var err error
	for i, spec := range a.Specs() {
		var reqs []marker.Request
		reqs, err = marker.PlaceArray(spec, scale)
		if err != nil {
			err = fmt.Errorf("array %q, repeat %d: %w", a.Name, i, err)
			break
		}
		logger.Debug("placed array", "name", a.Name, "repeat", i, "origin", spec.Origin, "labels", len(reqs))
		pass.Requests = append(pass.Requests, reqs...)
	}
	pass.Duration = time.Since(start)

	hooks.OnPassComplete(ctx, KindArray, a.Name, len(pass.Requests), pass.Duration, err)
	return pass, err
}

func (r *Runner) buildSerial(ctx context.Context, logger *log.Logger, c *layoutdb.Cell, s job.Serial, scale units.Scale) (PassResult, error) {
	if err := checkContext(ctx); err != nil {
		return PassResult{}, err
	}
	hooks := observability.Pipeline()
	hooks.OnPassStart(ctx, KindSerial, s.Name)

	start := time.Now()
	pass := PassResult{Kind: KindSerial, Name: s.Name}
	res, err := marker.LabelByScan(c, s.Spec(), scale)
	if err != nil {
		err = fmt.Errorf("serial %q: %w", s.Name, err)
	} else {
		pass.Requests = res.Requests
		pass.Coordinates = res.Coordinates
		pass.NextSerial = res.NextSerial
		if len(res.Coordinates) == 0 {
			logger.Warn("template not placed in container", "template", s.Template, "container", c.Name())
		}
	}
	pass.Duration = time.Since(start)

	hooks.OnPassComplete(ctx, KindSerial, s.Name, len(pass.Requests), pass.Duration, err)
	return pass, err
}

func (r *Result) addPass(p PassResult) {
	r.Passes = append(r.Passes, p)
	r.Stats.Requests += len(p.Requests)
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeCancelled, err, "run cancelled")
	}
	return nil
}
