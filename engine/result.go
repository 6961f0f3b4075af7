package engine

import "github.com/tsawler/pdftables/model"

// TableResult is the serialized form of one extracted table.
type TableResult struct {
	Metadata model.TableMetadata `json:"metadata"`
	Data     []map[string]string `json:"data"`
}

// PageFailure records a page, or a single table region on a page,
// whose extraction failed while the rest of the document continued
// processing.
type PageFailure struct {
	PageNumber int    `json:"page_number"`
	Error      string `json:"error"`
}

// Result is the canonical output for one source document.
type Result struct {
	Success    bool          `json:"success"`
	SourceFile string        `json:"source_file"`
	Tables     []TableResult `json:"tables"`
	Failures   []PageFailure `json:"failures,omitempty"`
	Error      string        `json:"error,omitempty"`

	// SkippedTables counts detected regions whose structure was too
	// sparse to form a grid.
	SkippedTables int `json:"-"`
}

// ErrorResult creates a failed Result for a source that could not be
// processed at all.
func ErrorResult(sourceFile string, err error) *Result {
	return &Result{
		Success:    false,
		SourceFile: sourceFile,
		Tables:     []TableResult{},
		Error:      err.Error(),
	}
}

// tableResult serializes one detected table.
func tableResult(t *model.DetectedTable) TableResult {
	res := TableResult{
		Metadata: t.Metadata(),
		Data:     []map[string]string{},
	}
	if t.Grid != nil {
		res.Data = t.Grid.ToRows()
	}
	return res
}
