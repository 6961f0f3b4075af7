package pdftables

import (
	"fmt"
	"strings"
)

// WarningCode classifies non-fatal issues encountered during
// extraction.
type WarningCode string

const (
	// WarnPageFailed indicates a page whose extraction failed while
	// the rest of the document continued.
	WarnPageFailed WarningCode = "page_failed"

	// WarnTablesSkipped indicates detected table regions whose
	// structure was too sparse to form a grid.
	WarnTablesSkipped WarningCode = "tables_skipped"
)

// Warning describes a non-fatal issue. Extraction that produces
// warnings still returns a usable result; warnings exist so callers
// can surface degradations instead of silently accepting them.
type Warning struct {
	Code    WarningCode
	Page    int // -1 when not page-specific
	Message string
}

// String returns a human-readable form of the warning.
func (w Warning) String() string {
	if w.Page >= 0 {
		return fmt.Sprintf("[%s] page %d: %s", w.Code, w.Page, w.Message)
	}
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}

// FormatWarnings joins warnings into a single printable string, one
// warning per line.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
