// Package engine orchestrates table extraction across a document.
//
// The engine depends on three collaborators supplied by the caller:
// a [PageRenderer] for page images and text-layer words, a
// [TableDetector] for locating table regions, and a
// [StructureRecognizer] for the elements inside each region. Model
// inference itself happens behind those interfaces; the engine owns
// only the deterministic reconstruction: candidate filtering, boundary
// clustering, grid assignment and text fill.
//
// Tables are independent, so pages run on a bounded worker pool with
// results re-ordered by page number. A collaborator failure on one
// page is recorded as a [PageFailure] and the remaining pages continue.
package engine
