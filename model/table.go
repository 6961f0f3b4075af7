package model

// DetectedTable represents one table region found on a page, together
// with its constructed grid. It is created after detection, structure
// recognition and grid construction complete, and is immutable after
// text fill finishes.
type DetectedTable struct {
	Box        BBox
	Score      float64 // detection confidence in [0,1]
	PageNumber int
	SourceFile string
	Grid       *TableGrid
}

// TableMetadata is the serialized metadata block for one table.
type TableMetadata struct {
	DetectionScore float64    `json:"detection_score"`
	PageNumber     int        `json:"page_number"`
	SourceFile     string     `json:"source_file"`
	Box            [4]float64 `json:"box"`
	NRows          int        `json:"n_rows"`
	NCols          int        `json:"n_cols"`
}

// Metadata returns the table's metadata in serialized form.
func (t *DetectedTable) Metadata() TableMetadata {
	m := TableMetadata{
		DetectionScore: t.Score,
		PageNumber:     t.PageNumber,
		SourceFile:     t.SourceFile,
		Box:            t.Box.ToList(),
	}
	if t.Grid != nil {
		m.NRows = t.Grid.NRows()
		m.NCols = t.Grid.NCols()
	}
	return m
}
