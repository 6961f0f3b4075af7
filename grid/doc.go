// Package grid builds dense table grids from noisy structure
// detections.
//
// Grid construction runs in three stages:
//
//  1. [FilterCandidates] removes spurious wide "super-column"
//     detections that would otherwise collapse several true columns.
//  2. Candidate edges are clustered per axis into row and column
//     boundaries (see the cluster package).
//  3. Content candidates are assigned to every grid position they
//     overlap, with the highest confidence winning each position.
//
// The single overlap-then-arbitrate mechanism handles duplicate
// detections, merged cells spanning several positions, and missing
// detections without separate code paths. The resulting grid is always
// total: every position holds exactly one cell, synthesized from
// boundary geometry when nothing was detected there.
package grid
