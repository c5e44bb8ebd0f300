package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/matzehuels/waferlabel/pkg/job"
	"github.com/matzehuels/waferlabel/pkg/pipeline"
)

// applyOpts holds the flags shared by every command that changes a design.
type applyOpts struct {
	output    string // output design path; empty overwrites the input
	container string // cell to place labels in; empty selects the top cell
	dryRun    bool   // compute labels without writing anything
}

// applyJob runs j against the design at designPath and saves the result.
func (c *CLI) applyJob(ctx context.Context, designPath string, j *job.Job, opts applyOpts) (*pipeline.Result, error) {
	design, err := loadDesign(ctx, designPath)
	if err != nil {
		return nil, err
	}
	ctx = withDesign(ctx, designPath, design)

	result, err := c.newRunner().Execute(ctx, design, j, pipeline.Options{
		Container: opts.container,
		DryRun:    opts.dryRun,
		Logger:    loggerFromContext(ctx),
	})
	if err != nil {
		return nil, err
	}
	ctx = withRun(ctx, result)

	printResult(result)
	if opts.dryRun {
		loggerFromContext(ctx).Debug("dry run, design not written")
		printDetail("rerun without --dry-run to write the design")
		return result, nil
	}

	out := opts.output
	if out == "" {
		out = designPath
	}
	if err := saveDesign(ctx, design, out); err != nil {
		return nil, err
	}
	printFile(out)
	return result, nil
}

// printResult prints a per-pass summary table and the run totals.
func printResult(r *pipeline.Result) {
	rows := make([][]string, 0, len(r.Passes))
	for _, p := range r.Passes {
		next := ""
		if p.Kind == pipeline.KindSerial {
			next = strconv.Itoa(p.NextSerial)
		}
		rows = append(rows, []string{p.Kind, p.Name, strconv.Itoa(len(p.Requests)), next})
	}

	if r.DryRun {
		printInfo("Planned labels in %s", StyleHighlight.Render(r.Container))
	} else {
		printSuccess("Placed labels in %s", StyleHighlight.Render(r.Container))
	}
	printStats(r.Stats.Requests, r.Stats.LabelCells, r.DryRun)
	if len(rows) > 0 {
		fmt.Println(renderTable([]string{"Kind", "Pass", "Labels", "Next serial"}, rows, 2, 3))
	}
	for _, p := range r.Passes {
		if p.Kind == pipeline.KindSerial && len(p.Coordinates) == 0 {
			printWarning("pass %s found no template placements", p.Name)
		}
	}
	printDetail("run %s", r.RunID)
}
