// Package pkg provides the core libraries for waferlabel.
//
// # Overview
//
// Waferlabel places text labels onto a 2-D IC layout: fixed markers stamped
// over rectangular arrays, and serial numbers next to every placement of a
// chip cell. The pkg directory is organized into four areas:
//
//  1. Geometry and units ([geom], [units]) - integer grid points and the
//     conversion from real-world distances
//  2. Host abstraction ([layout], [layoutdb]) - what a layout database must
//     offer, and an in-memory implementation with JSON design files
//  3. Algorithms ([marker]) - array placement, scan/order/label, emission
//  4. Orchestration ([job], [pipeline]) - TOML job files and their execution
//
// # Architecture
//
// The typical data flow:
//
//	job.toml / CLI flags
//	         ↓
//	    [job] package (passes with real-world distances)
//	         ↓
//	    [pipeline] package (build every pass, then emit)
//	         ↓
//	    [marker] package (PlaceArray, LabelByScan, Emit)
//	         ↓
//	    [layoutdb] package (label cells + instances, JSON out)
//
// # Quick Start
//
// Number every chip on a wafer:
//
//	design, _ := layoutdb.ImportJSON("wafer.json")
//	wafer, _ := design.Container("")
//
//	res, _ := marker.LabelByScan(wafer, marker.LabelSpec{
//	    Template:      "sample_7x7",
//	    Offset:        units.V(2500, 6300),
//	    Layer:         layout.Layer(1, 0),
//	    Magnification: 600,
//	    Format:        "AGK%03d",
//	    Start:         1,
//	}, design.Scale())
//
//	marker.Emit(wafer, design, res.Requests)
//	layoutdb.ExportJSON(design, "wafer.json")
//
// # Main Packages
//
// [marker] - The two label algorithms. [marker.PlaceArray] computes one
// request per array cell at origin + columnStep*c - rowStep*r.
// [marker.LabelByScan] collects placements of a template cell, sorts them by
// (y, x) and assigns consecutive serials. [marker.Emit] resolves label cells
// before inserting anything.
//
// [layout] - Host interfaces ([layout.Container], [layout.LabelFactory]) and
// value types (layers, label styles, instance arrays).
//
// [layoutdb] - In-memory cell database implementing the host interfaces.
//
// [job] - TOML job files listing array and serial passes.
//
// [pipeline] - Runs a job against a design with all-or-nothing semantics.
//
// [observability] - Hooks for pass and design file events.
//
// [errors] - Coded errors (INVALID_SPEC, NO_ACTIVE_CONTAINER, ...).
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/marker/...   # Specific package
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/waferlabel/pkg/geom
// [units]: https://pkg.go.dev/github.com/matzehuels/waferlabel/pkg/units
// [layout]: https://pkg.go.dev/github.com/matzehuels/waferlabel/pkg/layout
// [layoutdb]: https://pkg.go.dev/github.com/matzehuels/waferlabel/pkg/layoutdb
// [marker]: https://pkg.go.dev/github.com/matzehuels/waferlabel/pkg/marker
// [job]: https://pkg.go.dev/github.com/matzehuels/waferlabel/pkg/job
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/waferlabel/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/waferlabel/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/waferlabel/pkg/errors
package pkg
