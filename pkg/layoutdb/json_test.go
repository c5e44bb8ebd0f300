package layoutdb

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/waferlabel/pkg/buildinfo"
	"github.com/matzehuels/waferlabel/pkg/errors"
	"github.com/matzehuels/waferlabel/pkg/geom"
	"github.com/matzehuels/waferlabel/pkg/layout"
)

const waferJSON = `{
  "id": "9f1c5d2e-7a43-4b8e-9a51-0c2d7e6f8a10",
  "dbu": 0.001,
  "cells": [
    {"name": "WAFER", "instances": [
      {"cell": "sample_7x7", "x": 0, "y": 0, "a": [7000000, 0], "b": [0, 7000000], "na": 3, "nb": 2},
      {"cell": "sample_7x7", "x": -7000000, "y": 0},
      {"cell": "TEXT", "x": 1, "y": 2}
    ]},
    {"name": "sample_7x7"},
    {"name": "TEXT", "kind": "TEXT", "label": {"layer": "1/0", "mag": 600, "text": "AGK001"}}
  ]
}`

func TestReadJSON(t *testing.T) {
	l, err := ReadJSON(strings.NewReader(waferJSON))
	require.NoError(t, err)

	require.Equal(t, "9f1c5d2e-7a43-4b8e-9a51-0c2d7e6f8a10", l.ID.String())
	require.Equal(t, 0.001, l.DBU())
	require.Len(t, l.Cells(), 3)

	wafer, err := l.Container("")
	require.NoError(t, err)
	require.Equal(t, "WAFER", wafer.Name())

	insts := wafer.Instances()
	require.Len(t, insts, 3)
	require.True(t, insts[0].IsRegular())
	require.Equal(t, 6, insts[0].Size())
	require.Equal(t, geom.Pt(7000000, 0), insts[0].A)
	require.False(t, insts[1].IsRegular())

	// The declared label cell joins the cache.
	ref, err := l.LabelCell(layout.LabelStyle{Layer: layout.Layer(1, 0), Magnification: 600, Text: "AGK001"})
	require.NoError(t, err)
	require.Equal(t, layout.CellRef(2), ref)
	require.Equal(t, 1, l.Stats().LabelCells)
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", `{"dbu":`},
		{"zero dbu", `{"dbu": 0, "cells": []}`},
		{"bad id", `{"id": "nope", "dbu": 0.001, "cells": []}`},
		{"duplicate cell", `{"dbu": 0.001, "cells": [{"name": "A"}, {"name": "A"}]}`},
		{"unknown reference", `{"dbu": 0.001, "cells": [{"name": "A", "instances": [{"cell": "B", "x": 0, "y": 0}]}]}`},
		{"cycle", `{"dbu": 0.001, "cells": [
			{"name": "A", "instances": [{"cell": "B", "x": 0, "y": 0}]},
			{"name": "B", "instances": [{"cell": "A", "x": 0, "y": 0}]}]}`},
		{"label without style", `{"dbu": 0.001, "cells": [{"name": "TEXT", "kind": "TEXT"}]}`},
		{"array past grid range", `{"dbu": 0.001, "cells": [
			{"name": "A", "instances": [{"cell": "B", "x": 9007199254740992, "y": 0, "a": [1, 0], "b": [0, 0], "na": 2, "nb": 1}]},
			{"name": "B"}]}`},
		{"unknown kind", `{"dbu": 0.001, "cells": [{"name": "X", "kind": "PCELL"}]}`},
		{"invalid label", `{"dbu": 0.001, "cells": [{"name": "TEXT", "kind": "TEXT", "label": {"layer": "1/0", "mag": 0, "text": "A"}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.doc))
			require.Error(t, err)
			require.True(t, errors.Is(err, errors.ErrCodeInvalidDesign), "got %v", err)
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	l, err := ReadJSON(strings.NewReader(waferJSON))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, l))
	require.Contains(t, buf.String(), `"generator": "`+buildinfo.Generator()+`"`)

	back, err := ReadJSON(&buf)
	require.NoError(t, err)
	require.Equal(t, l.ID, back.ID)
	require.Equal(t, l.Stats(), back.Stats())

	for _, c := range l.Cells() {
		other, ok := back.Cell(c.Name())
		require.True(t, ok, c.Name())
		require.Equal(t, c.Ref(), other.Ref())
		require.Equal(t, c.Instances(), other.Instances())
	}
}

func TestImportExportJSON(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "wafer.json")
	require.NoError(t, os.WriteFile(in, []byte(waferJSON), 0644))

	l, err := ImportJSON(in)
	require.NoError(t, err)

	out := filepath.Join(dir, "out.json")
	require.NoError(t, ExportJSON(l, out))

	back, err := ImportJSON(out)
	require.NoError(t, err)
	require.Equal(t, l.Stats(), back.Stats())

	_, err = ImportJSON(filepath.Join(dir, "missing.json"))
	require.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}
