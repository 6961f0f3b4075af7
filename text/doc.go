// Package text fills constructed table grids with cell text.
//
// Extraction is two-staged. The primary path reads the PDF's embedded
// text layer: words overlapping a cell are sorted into reading order
// and joined. The fallback path crops the rendered page image to the
// cell and hands the region to an OCR collaborator; it runs only for
// cells the text layer left blank and only when a [RecognizeFunc] is
// configured.
//
// OCR calls within one table run on a bounded worker pool since cells
// are independent; results are written to indexed positions, so output
// stays deterministic regardless of scheduling.
package text
