package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/waferlabel/pkg/job"
	"github.com/matzehuels/waferlabel/pkg/layout"
	"github.com/matzehuels/waferlabel/pkg/units"
)

const (
	defaultArrayMag  = 10  // magnification of the digit markers
	defaultSerialMag = 600 // magnification of serial numbers
)

// placeOpts holds the command-line flags for the place command.
type placeOpts struct {
	applyOpts
	text        string
	layer       layout.LayerInfo
	mag         float64
	origin      units.Vec
	rows        int
	columns     int
	rowStep     units.Vec
	columnStep  units.Vec
	repeatX     int
	repeatY     int
	repeatPitch units.Vec
}

// job converts the flags into a single-pass job.
func (o *placeOpts) job() (*job.Job, error) {
	j := &job.Job{
		Arrays: []job.Array{{
			Name:        "place",
			Text:        o.text,
			Layer:       o.layer,
			Mag:         o.mag,
			Origin:      pair(o.origin),
			Rows:        o.rows,
			Columns:     o.columns,
			RowStep:     pair(o.rowStep),
			ColumnStep:  pair(o.columnStep),
			RepeatX:     o.repeatX,
			RepeatY:     o.repeatY,
			RepeatPitch: pair(o.repeatPitch),
		}},
	}
	j.SetDefaults()
	if err := j.Validate(); err != nil {
		return nil, err
	}
	return j, nil
}

// placeCommand creates the place command for stamping a label array.
func (c *CLI) placeCommand() *cobra.Command {
	opts := placeOpts{
		layer:   layout.Layer(1, 0),
		mag:     defaultArrayMag,
		rows:    1,
		columns: 1,
	}

	cmd := &cobra.Command{
		Use:   "place DESIGN",
		Short: "Place a rectangular array of one label",
		Long: `Place a rectangular array of one label into a design.

The label at row r, column c sits at

  origin + column-step*c - row-step*r

so rows advance against the row step. All distances are in the design's
real-world unit (usually µm). The --repeat flags stamp the whole array
again on a grid of origins, moving repeat-pitch.x right per repeat column
and repeat-pitch.y down per repeat row.`,
		Example: `  waferlabel place wafer.json --text 0 --origin 1501.7,5341.53 \
      --rows 5 --row-step 0,200 --repeat-x 3 --repeat-y 3 --repeat-pitch 1400,1400`,
		Args: cobra.ExactArgs(1),
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
	f.StringVarP(&opts.text, "text", "t", "", "label text")
	f.Var(layerFlag{&opts.layer}, "layer", "label layer")
	f.Float64Var(&opts.mag, "mag", opts.mag, "label magnification")
	f.Var(vecFlag{&opts.origin}, "origin", "position of the first label")
	f.IntVar(&opts.rows, "rows", opts.rows, "number of rows")
	f.IntVar(&opts.columns, "columns", opts.columns, "number of columns")
	f.Var(vecFlag{&opts.rowStep}, "row-step", "distance between rows")
	f.Var(vecFlag{&opts.columnStep}, "column-step", "distance between columns")
	f.IntVar(&opts.repeatX, "repeat-x", 0, "repeat the array this many times across")
	f.IntVar(&opts.repeatY, "repeat-y", 0, "repeat the array this many times down")
	f.Var(vecFlag{&opts.repeatPitch}, "repeat-pitch", "distance between array repeats")
	addApplyFlags(cmd, &opts.applyOpts)
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

// addApplyFlags registers the output flags of every command that changes a design.
func addApplyFlags(cmd *cobra.Command, opts *applyOpts) {
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output design file (default: overwrite DESIGN)")
	cmd.Flags().StringVar(&opts.container, "container", "", "cell to place labels in (default: the top cell)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "show what would be placed without writing")
}
