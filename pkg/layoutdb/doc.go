// Package layoutdb is a small in-memory layout database implementing the
// host side of package layout.
//
// It stores a flat list of cells addressed by index and name. Each cell
// holds the instances placed in it. Label cells (kind "TEXT") are created
// on demand by [Layout.LabelCell] and cached by their [layout.LabelStyle],
// so every placement of the same label text, layer and magnification
// shares one cell.
//
// Designs are exchanged as JSON with [ReadJSON], [WriteJSON], [ImportJSON]
// and [ExportJSON]:
//
//	{
//	  "id": "2b6f0cc9-...",
//	  "dbu": 0.001,
//	  "cells": [
//	    {"name": "TOP", "instances": [
//	      {"cell": "sample_7x7", "x": 0, "y": 0, "a": [7000000, 0], "b": [0, 7000000], "na": 3, "nb": 2}
//	    ]},
//	    {"name": "sample_7x7"},
//	    {"name": "TEXT", "kind": "TEXT", "label": {"layer": "1/0", "mag": 600, "text": "AGK001"}}
//	  ]
//	}
//
// A Layout is not safe for concurrent use. Passes against one layout must
// run one at a time.
package layoutdb
