package grid

import (
	"sort"

	"github.com/tsawler/pdftables/model"
)

// WideColumnFactor is the multiple of the median column width above
// which a column candidate is treated as a possible detection artifact.
const WideColumnFactor = 1.5

// FilterCandidates removes spurious "super-column" detections: a known
// model failure mode where a single wide column box spans several true
// columns. A column candidate is dropped when its width exceeds
// WideColumnFactor times the median column width and its horizontal
// extent fully contains another, narrower column candidate.
//
// Rows are never filtered; the artifact is column-specific. The filter
// degrades to safe: if every column candidate would be removed, it is
// skipped entirely and the input passes through unfiltered.
func FilterCandidates(cells []model.DetectedCell) []model.DetectedCell {
	var columns []model.DetectedCell
	for _, c := range cells {
		if c.Type == model.CellTypeColumn {
			columns = append(columns, c)
		}
	}
	if len(columns) < 2 {
		return cells
	}

	median := medianColumnWidth(columns)
	limit := median * WideColumnFactor

	drop := make(map[model.BBox]bool)
	for _, col := range columns {
		if col.Box.Width() <= limit {
			continue
		}
		if containsNarrowerColumn(col, columns) {
			drop[col.Box] = true
		}
	}

	if len(drop) == 0 || len(drop) == len(columns) {
		return cells
	}

	out := make([]model.DetectedCell, 0, len(cells))
	for _, c := range cells {
		if c.Type == model.CellTypeColumn && drop[c.Box] {
			continue
		}
		out = append(out, c)
	}
	return out
}

// containsNarrowerColumn reports whether another, narrower column
// candidate lies entirely within col's horizontal extent.
func containsNarrowerColumn(col model.DetectedCell, columns []model.DetectedCell) bool {
	for _, other := range columns {
		if other.Box == col.Box {
			continue
		}
		if other.Box.Width() >= col.Box.Width() {
			continue
		}
		if other.Box.XMin >= col.Box.XMin && other.Box.XMax <= col.Box.XMax {
			return true
		}
	}
	return false
}

func medianColumnWidth(columns []model.DetectedCell) float64 {
	widths := make([]float64, len(columns))
	for i, c := range columns {
		widths[i] = c.Box.Width()
	}
	sort.Float64s(widths)
	mid := len(widths) / 2
	if len(widths)%2 == 0 {
		return (widths[mid-1] + widths[mid]) / 2
	}
	return widths[mid]
}
