package grid

import (
	"testing"

	"github.com/tsawler/pdftables/model"
)

func column(xMin, xMax float64, score float64) model.DetectedCell {
	return model.DetectedCell{
		Box:        model.NewBBox(xMin, 0, xMax, 100),
		Type:       model.CellTypeColumn,
		Confidence: score,
	}
}

func row(yMin, yMax float64) model.DetectedCell {
	return model.DetectedCell{
		Box:        model.NewBBox(0, yMin, 100, yMax),
		Type:       model.CellTypeRow,
		Confidence: 0.9,
	}
}

func TestFilterCandidates_RemovesSuperColumn(t *testing.T) {
	cells := []model.DetectedCell{
		column(0, 30, 0.9),
		column(30, 60, 0.9),
		column(60, 90, 0.9),
		// Spans all three true columns: 90 wide against a median of 30.
		column(0, 90, 0.8),
	}

	got := FilterCandidates(cells)

	if len(got) != 3 {
		t.Fatalf("Expected 3 candidates after filtering, got %d", len(got))
	}
	for _, c := range got {
		if c.Box.Width() > 30 {
			t.Errorf("Super-column survived filtering: %+v", c.Box)
		}
	}
}

func TestFilterCandidates_KeepsWideColumnWithoutContainment(t *testing.T) {
	// The last column is wide but does not contain any other column,
	// so it is a legitimately wide column, not an artifact.
	cells := []model.DetectedCell{
		column(0, 20, 0.9),
		column(20, 40, 0.9),
		column(40, 120, 0.9),
	}

	got := FilterCandidates(cells)
	if len(got) != 3 {
		t.Errorf("Expected all 3 candidates kept, got %d", len(got))
	}
}

func TestFilterCandidates_NeverRemovesAllColumns(t *testing.T) {
	inputs := [][]model.DetectedCell{
		// Nested shrinking columns.
		{column(0, 100, 0.9), column(10, 80, 0.9), column(20, 70, 0.9)},
		// Identical columns, nothing narrower to contain.
		{column(0, 50, 0.9), column(0, 50, 0.8)},
		// Super-column over three true columns.
		{column(0, 30, 0.9), column(35, 65, 0.9), column(70, 100, 0.9), column(0, 100, 0.8)},
	}

	for i, cells := range inputs {
		got := FilterCandidates(cells)
		columns := 0
		for _, c := range got {
			if c.Type == model.CellTypeColumn {
				columns++
			}
		}
		if columns == 0 {
			t.Errorf("input %d: filter removed every column candidate", i)
		}
	}
}

func TestFilterCandidates_EvenCountMedianAveragesMiddles(t *testing.T) {
	// Widths sorted are [10, 20, 40, 58]: the median is (20+40)/2 = 30,
	// so the cutoff is 45 and the 58-wide containing column is dropped.
	// Taking the upper middle (40, cutoff 60) would wrongly keep it.
	cells := []model.DetectedCell{
		column(0, 10, 0.9),
		column(12, 32, 0.9),
		column(40, 80, 0.9),
		column(0, 58, 0.8),
	}

	got := FilterCandidates(cells)

	if len(got) != 3 {
		t.Fatalf("Expected 3 candidates after filtering, got %d", len(got))
	}
	for _, c := range got {
		if c.Box.Width() == 58 {
			t.Errorf("Containing column above the median cutoff survived: %+v", c.Box)
		}
	}
}

func TestFilterCandidates_RowsUntouched(t *testing.T) {
	// A row spanning the full table width must never be filtered,
	// even though a column of that width would be.
	cells := []model.DetectedCell{
		column(0, 30, 0.9),
		column(30, 60, 0.9),
		column(0, 60, 0.8),
		row(0, 20),
		row(20, 40),
	}

	got := FilterCandidates(cells)

	rows := 0
	for _, c := range got {
		if c.Type == model.CellTypeRow {
			rows++
		}
	}
	if rows != 2 {
		t.Errorf("Expected 2 rows after filtering, got %d", rows)
	}
}

func TestFilterCandidates_SingleColumnPassthrough(t *testing.T) {
	cells := []model.DetectedCell{column(0, 200, 0.9)}
	got := FilterCandidates(cells)
	if len(got) != 1 {
		t.Errorf("Single column candidate must pass through, got %d", len(got))
	}
}
