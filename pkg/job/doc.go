// Package job reads label placement jobs from TOML files.
//
// A job describes a batch of passes to run against one design: array passes
// that stamp a fixed label over a rectangular grid, and serial passes that
// number every placement of a template cell. All distances are given in
// real-world units (typically micrometres) and converted by the layout's
// database unit when the job runs. A job that sets dbu refuses to run
// against a design on a different grid.
//
// # File Format
//
//	dbu = 0.001
//	container = "WAFER"
//
//	[[array]]
//	name = "digit-0"
//	text = "0"
//	layer = "1/0"
//	mag = 10
//	origin = [1501.7, 5341.53]
//	rows = 5
//	columns = 1
//	row_step = [0, 200]
//	column_step = [0, 0]
//	repeat_x = 3
//	repeat_y = 3
//	repeat_pitch = [1400, 1400]
//
//	[[serial]]
//	template = "sample_7x7"
//	format = "AGK%03d"
//	start = 1
//	offset = [2500, 6300]
//	layer = "1/0"
//	mag = 600
//
// The optional repeat keys replicate an array pass over a grid of origins.
// Repeat column i and repeat row j move the origin by
// (repeat_pitch.x*i, -repeat_pitch.y*j), so repeat rows advance downwards
// like array rows do.
//
// Array passes run before serial passes, each group in file order.
package job
