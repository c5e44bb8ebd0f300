// Package layout defines the boundary between waferlabel and a host layout
// database.
//
// # Overview
//
// A host database owns a hierarchy of cells. A cell placed inside another
// cell is an instance; an instance may itself stand for a regular array of
// placements ([InstArray]). waferlabel never edits geometry directly. It
// only:
//
//  1. Reads the instances placed in a [Container] (scan).
//  2. Asks a [LabelFactory] for a drawable text cell per [LabelStyle].
//  3. Inserts new instances of those cells into the container.
//
// # Label cells
//
// A label cell is the host's cached drawable representation of one string
// at one layer and magnification (kind [LabelCellKind] from library
// [LabelCellLibrary]). Two requests with an identical [LabelStyle] must
// resolve to the same [CellRef], so N placements of a label share one
// geometry.
//
// # Concurrency
//
// Containers are single-writer. A placement or labelling pass runs to
// completion against one container before another pass may start; no
// implementation in this module guards against concurrent passes.
package layout
