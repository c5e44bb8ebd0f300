// Package cli implements the waferlabel command-line interface.
//
// This package provides commands for placing label arrays and serial
// numbers into JSON design files, either one pass at a time from flags or
// as a batch from a TOML job file. The CLI is built using cobra and logs
// through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - place: Stamp a rectangular array of one label
//   - serial: Number every placement of a template cell
//   - scan: List the placements of a template cell in raster order
//   - run: Execute a job file
//   - info: Summarize a design file
//
// # Logging
//
// Logs go to stderr, styled terminal output to stdout. --verbose (-v)
// enables debug lines and --log-format selects text, logfmt or json.
// The logger travels in context.Context and picks up fields as a command
// proceeds: the design file and ID once it is loaded, then the run ID and
// container once a job has run, so every later line names both.
package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/waferlabel/pkg/layoutdb"
	"github.com/matzehuels/waferlabel/pkg/pipeline"
)

// logFormats maps --log-format values to formatters.
var logFormats = map[string]log.Formatter{
	"text":   log.TextFormatter,
	"logfmt": log.LogfmtFormatter,
	"json":   log.JSONFormatter,
}

// newLogger creates a logger writing to w at level, with "HH:MM:SS.ms"
// timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// setLogFormat switches l to the named formatter.
func setLogFormat(l *log.Logger, name string) error {
	f, ok := logFormats[name]
	if !ok {
		names := make([]string, 0, len(logFormats))
		for n := range logFormats {
			names = append(names, n)
		}
		slices.Sort(names)
		return fmt.Errorf("unknown log format %q (want %s)", name, strings.Join(names, ", "))
	}
	l.SetFormatter(f)
	return nil
}

// progress times one step of a command.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) elapsed() time.Duration {
	return time.Since(p.start)
}

// done logs msg with keyvals and the elapsed time, rounded to milliseconds.
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg, append(keyvals, "elapsed", p.elapsed().Round(time.Millisecond))...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// withDesign tags the context logger with the design file name and ID.
func withDesign(ctx context.Context, path string, d *layoutdb.Layout) context.Context {
	l := loggerFromContext(ctx).With("design", filepath.Base(path), "design_id", shortID(d.ID))
	return withLogger(ctx, l)
}

// withRun tags the context logger with the run ID and container of r.
func withRun(ctx context.Context, r *pipeline.Result) context.Context {
	l := loggerFromContext(ctx).With("run", shortID(r.RunID), "container", r.Container)
	return withLogger(ctx, l)
}

// shortID is the first block of id, enough to tell runs apart in a log.
func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
