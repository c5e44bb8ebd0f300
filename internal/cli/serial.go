package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/waferlabel/pkg/job"
	"github.com/matzehuels/waferlabel/pkg/layout"
	"github.com/matzehuels/waferlabel/pkg/marker"
	"github.com/matzehuels/waferlabel/pkg/units"
)

// serialOpts holds the command-line flags for the serial command.
type serialOpts struct {
	applyOpts
	template string
	format   string
	start    int
	offset   units.Vec
	layer    layout.LayerInfo
	mag      float64
}

// job converts the flags into a single-pass job.
func (o *serialOpts) job() (*job.Job, error) {
	start := o.start
	j := &job.Job{
		Serials: []job.Serial{{
			Name:     "serial",
			Template: o.template,
			Format:   o.format,
			Start:    &start,
			Offset:   pair(o.offset),
			Layer:    o.layer,
			Mag:      o.mag,
		}},
	}
	j.SetDefaults()
	if err := j.Validate(); err != nil {
		return nil, err
	}
	return j, nil
}

// serialCommand creates the serial command for numbering template placements.
func (c *CLI) serialCommand() *cobra.Command {
	opts := serialOpts{
		format: marker.DefaultSerialFormat,
		start:  job.DefaultStart,
		layer:  layout.Layer(1, 0),
		mag:    defaultSerialMag,
	}

	cmd := &cobra.Command{
		Use:   "serial DESIGN",
		Short: "Number every placement of a template cell",
		Long: `Number every placement of a template cell.

Placements are collected from the container (array placements count once
per element), sorted by y then x, and labelled in that order with
consecutive serial numbers rendered through --format. Each label sits at
the placement position plus --offset, in real-world units.`,
		Example: `  waferlabel serial wafer.json --template sample_7x7 --offset 2500,6300`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := opts.job()
			if err != nil {
				return err
			}
			_, err = c.applyJob(cmd.Context(), args[0], j, opts.applyOpts)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.template, "template", "", "name of the cell to number")
	f.StringVar(&opts.format, "format", opts.format, "serial format with one integer verb")
	f.IntVar(&opts.start, "start", opts.start, "first serial number")
	f.Var(vecFlag{&opts.offset}, "offset", "label offset from each placement")
	f.Var(layerFlag{&opts.layer}, "layer", "label layer")
	f.Float64Var(&opts.mag, "mag", opts.mag, "label magnification")
	addApplyFlags(cmd, &opts.applyOpts)
	_ = cmd.MarkFlagRequired("template")

	return cmd
}
