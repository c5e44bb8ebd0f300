package cli

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/waferlabel/pkg/buildinfo"
	"github.com/matzehuels/waferlabel/pkg/errors"
	"github.com/matzehuels/waferlabel/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "waferlabel"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Process exit codes returned by ExitCode.
const (
	ExitOK          = 0
	ExitFailure     = 1   // I/O and internal errors
	ExitInvalid     = 2   // rejected job, design, units or label spec
	ExitInterrupted = 130 // SIGINT, as shells report it
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
//
// The root's persistent flags set the log level and format before any
// subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		verbose   bool
		logFormat string
	)

	root := &cobra.Command{
		Use:   appName,
		Short: "Waferlabel places identifier labels on wafer layouts",
		Long: `Waferlabel places text labels onto IC layout designs: rectangular arrays of
fixed markers, and serial numbers next to every placement of a chip cell.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			if err := setLogFormat(c.Logger, logFormat); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text, logfmt or json")

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.placeCommand())
	root.AddCommand(c.serialCommand())
	root.AddCommand(c.scanCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Exit Codes
// =============================================================================

// ExitCode maps the error returned by a command to a process exit code.
// Cancellation wins over any code attached on the way up.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled), errors.Is(err, errors.ErrCodeCancelled):
		return ExitInterrupted
	}
	switch errors.GetCode(err) {
	case "", errors.ErrCodeInternal, errors.ErrCodeFileNotFound:
		return ExitFailure
	}
	return ExitInvalid
}
