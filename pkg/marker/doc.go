// Package marker computes where identifier labels go on a layout.
//
// # Overview
//
// Two algorithms produce placement requests ([Request]): a position in grid
// units and the [layout.LabelStyle] of the label to place there.
//
//   - [PlaceArray] lays one label out as a rows x columns array from an
//     origin and two step vectors.
//   - [LabelByScan] finds every placement of a template cell in a
//     container, orders the positions in raster order, and labels each one
//     with an incrementing serial number at a fixed offset.
//
// Neither algorithm touches the container. [Emit] turns a batch of
// requests into label cells and instances in one step, after every style
// in the batch has been resolved, so a bad batch leaves the container
// untouched.
//
// # Units
//
// Origins, step vectors and offsets are given in real-world units and
// converted to grid units once, inside the function that consumes them,
// with the caller's [units.Scale].
//
// # Array geometry
//
// The cell at row r and column c of an array sits at
//
//	origin + c*ColumnStep - r*RowStep
//
// Rows advance against RowStep: a RowStep of (0, 200) stacks rows
// downwards from the origin.
//
// # Concurrency
//
// Functions in this package are pure apart from [Emit]. Emit assumes a
// single writer: no other pass may use the same container until it
// returns.
package marker
