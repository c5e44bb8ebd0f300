// Package geom provides integer grid coordinates for layout databases.
//
// All values are in database grid units: the smallest addressable distance
// of a layout. Conversion from real-world distances lives in package units.
//
// Points order in raster order with [CompareRaster]: by Y first, then by X,
// both ascending. This is the order in which serial numbers are assigned to
// discovered instances, independent of the order those instances were
// inserted into their container.
package geom
