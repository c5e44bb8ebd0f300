package cli

import (
	"context"
	"fmt"

	"github.com/matzehuels/waferlabel/pkg/layoutdb"
	"github.com/matzehuels/waferlabel/pkg/observability"
)

// loadDesign imports the design file at path, reporting to the design hooks.
func loadDesign(ctx context.Context, path string) (*layoutdb.Layout, error) {
	prog := newProgress(loggerFromContext(ctx))

	design, err := layoutdb.ImportJSON(path)
	cells := 0
	if design != nil {
		cells = len(design.Cells())
	}
	observability.Design().OnDesignRead(ctx, path, cells, prog.elapsed(), err)
	if err != nil {
		return nil, err
	}

	prog.done("loaded design", "path", path, "cells", cells, "dbu", design.DBU())
	return design, nil
}

// saveDesign exports design to path, reporting to the design hooks.
func saveDesign(ctx context.Context, design *layoutdb.Layout, path string) error {
	prog := newProgress(loggerFromContext(ctx))

	err := layoutdb.ExportJSON(design, path)
	observability.Design().OnDesignWrite(ctx, path, prog.elapsed(), err)
	if err != nil {
		return fmt.Errorf("write design: %w", err)
	}

	prog.done("saved design", "path", path)
	return nil
}
