package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/waferlabel/pkg/job"
)

// runCommand creates the run command for executing job files.
func (c *CLI) runCommand() *cobra.Command {
	var opts applyOpts

	cmd := &cobra.Command{
		Use:   "run JOB DESIGN",
		Short: "Run every pass of a TOML job file against a design",
		Long: `Run every pass of a TOML job file against a design.

All passes are computed before the design is touched; if any pass fails
nothing is written. Array passes run before serial passes.`,
		Example: `  waferlabel run digits.toml wafer.json -o wafer-labelled.json`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))

			j, err := job.Load(args[0])
			if err != nil {
				return err
			}
			prog.done("loaded job", "path", args[0], "arrays", len(j.Arrays), "serials", len(j.Serials))

			_, err = c.applyJob(ctx, args[1], j, opts)
			return err
		},
	}

	addApplyFlags(cmd, &opts)
	return cmd
}
