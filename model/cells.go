package model

// CellType identifies the kind of table element a structure-recognition
// model detected.
type CellType string

const (
	CellTypeRow          CellType = "row"
	CellTypeColumn       CellType = "column"
	CellTypeCell         CellType = "cell"
	CellTypeSpanningCell CellType = "spanning_cell"
	CellTypeColumnHeader CellType = "column_header"
)

// IsColumnLike reports whether the type contributes column structure.
func (t CellType) IsColumnLike() bool {
	return t == CellTypeColumn || t == CellTypeColumnHeader
}

// IsContentCandidate reports whether detections of this type compete for
// grid positions. Row and column bands describe structure only; cells,
// spanning cells and column headers carry content.
func (t CellType) IsContentCandidate() bool {
	return t == CellTypeCell || t == CellTypeSpanningCell || t == CellTypeColumnHeader
}

// DetectedCell is a single table-element detection produced by the
// structure-recognition collaborator, in absolute page coordinates.
// Detections are immutable inputs; they are consumed during grid
// construction and discarded.
type DetectedCell struct {
	Box        BBox
	Type       CellType
	Confidence float64 // in [0,1]
}

// GridCell is one position of a constructed table grid.
type GridCell struct {
	Row        int
	Col        int
	Box        BBox
	Text       string
	Confidence float64
	// Detected is true when the cell's geometry came from a real
	// detection, false when it was synthesized from boundary geometry
	// to fill a gap.
	Detected bool
}

// IsEmpty returns true if the cell holds no non-whitespace text.
func (c GridCell) IsEmpty() bool {
	for _, r := range c.Text {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
