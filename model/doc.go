// Package model defines the data types shared across table extraction.
//
// The types fall into three groups:
//
// # Inputs
//
//   - [DetectedCell] - one table-element detection (row, column, cell,
//     spanning cell or column header) from structure recognition
//   - [Word] - a positioned word from the PDF text layer
//   - [PageImage] - a rendered page, used only for OCR fallback
//
// # Grid
//
// The [TableGrid] type holds the constructed grid: n_rows+1 row
// boundaries, n_cols+1 column boundaries, and exactly one [GridCell]
// per position. The mapping is total by construction; positions with
// no underlying detection hold a synthesized cell.
//
// # Outputs
//
// A [DetectedTable] pairs a table's detection metadata with its grid.
// Grids convert to presentation formats via ToRows(), ToCSV() and
// ToMarkdown().
//
// # Geometry
//
// [BBox] is the shared bounding-box primitive, using page-pixel
// coordinates with a top-left origin. Construction through [NewBBox]
// normalizes inverted coordinates instead of rejecting them.
package model
