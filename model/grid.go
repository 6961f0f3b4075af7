package model

import (
	"fmt"
	"strings"
)

// TableGrid is the dense grid constructed for one detected table. It
// holds n_rows+1 row boundaries, n_cols+1 column boundaries and exactly
// one GridCell for every (row, col) position. The mapping is total from
// construction: NewTableGrid seeds every position with a synthesized
// cell, and grid building overwrites the positions a detection covers.
type TableGrid struct {
	RowBoundaries []float64
	ColBoundaries []float64

	// cells is row-major with length NRows()*NCols().
	cells []GridCell
}

// NewTableGrid creates a grid from clustered boundary coordinates. Each
// axis needs at least two boundaries. Every position starts as a
// synthesized cell whose box is its boundary rectangle.
func NewTableGrid(rowBoundaries, colBoundaries []float64) (*TableGrid, error) {
	if len(rowBoundaries) < 2 {
		return nil, fmt.Errorf("table grid needs at least 2 row boundaries, got %d", len(rowBoundaries))
	}
	if len(colBoundaries) < 2 {
		return nil, fmt.Errorf("table grid needs at least 2 column boundaries, got %d", len(colBoundaries))
	}

	g := &TableGrid{
		RowBoundaries: append([]float64(nil), rowBoundaries...),
		ColBoundaries: append([]float64(nil), colBoundaries...),
	}
	g.cells = make([]GridCell, g.NRows()*g.NCols())
	for r := 0; r < g.NRows(); r++ {
		for c := 0; c < g.NCols(); c++ {
			g.cells[r*g.NCols()+c] = GridCell{
				Row: r,
				Col: c,
				Box: g.BoundaryRect(r, c),
			}
		}
	}
	return g, nil
}

// NRows returns the number of grid rows.
func (g *TableGrid) NRows() int {
	return len(g.RowBoundaries) - 1
}

// NCols returns the number of grid columns.
func (g *TableGrid) NCols() int {
	return len(g.ColBoundaries) - 1
}

// Cell returns the cell at the given position, or nil if out of range.
func (g *TableGrid) Cell(row, col int) *GridCell {
	if row < 0 || row >= g.NRows() || col < 0 || col >= g.NCols() {
		return nil
	}
	return &g.cells[row*g.NCols()+col]
}

// SetCell replaces the cell at the given position.
func (g *TableGrid) SetCell(row, col int, cell GridCell) error {
	if row < 0 || row >= g.NRows() {
		return fmt.Errorf("row index %d out of bounds", row)
	}
	if col < 0 || col >= g.NCols() {
		return fmt.Errorf("col index %d out of bounds", col)
	}
	cell.Row = row
	cell.Col = col
	g.cells[row*g.NCols()+col] = cell
	return nil
}

// BoundaryRect returns the rectangle enclosed by the boundaries around
// the given position.
func (g *TableGrid) BoundaryRect(row, col int) BBox {
	if row < 0 || row >= g.NRows() || col < 0 || col >= g.NCols() {
		return BBox{}
	}
	return BBox{
		XMin: g.ColBoundaries[col],
		YMin: g.RowBoundaries[row],
		XMax: g.ColBoundaries[col+1],
		YMax: g.RowBoundaries[row+1],
	}
}

// AverageConfidence returns the mean confidence across all grid cells.
// Synthesized cells contribute zero.
func (g *TableGrid) AverageConfidence() float64 {
	if len(g.cells) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range g.cells {
		total += c.Confidence
	}
	return total / float64(len(g.cells))
}

// Headers returns the header strings taken from row 0. An empty header
// is replaced with a positional placeholder so every record carries a
// complete, unique key set.
func (g *TableGrid) Headers() []string {
	headers := make([]string, g.NCols())
	for c := 0; c < g.NCols(); c++ {
		h := strings.TrimSpace(g.Cell(0, c).Text)
		if h == "" {
			h = fmt.Sprintf("Column_%d", c)
		}
		headers[c] = h
	}
	return headers
}

// ToRows converts the grid to an ordered sequence of header-keyed
// records, one per data row (rows 1..NRows-1). This is a lossy,
// presentation-oriented view; the grid remains the authoritative
// structure.
func (g *TableGrid) ToRows() []map[string]string {
	headers := g.Headers()
	rows := make([]map[string]string, 0, g.NRows()-1)
	for r := 1; r < g.NRows(); r++ {
		record := make(map[string]string, g.NCols())
		for c := 0; c < g.NCols(); c++ {
			record[headers[c]] = strings.TrimSpace(g.Cell(r, c).Text)
		}
		rows = append(rows, record)
	}
	return rows
}

// ToCSV renders the grid, header row included, as CSV.
func (g *TableGrid) ToCSV() string {
	var sb strings.Builder
	for r := 0; r < g.NRows(); r++ {
		for c := 0; c < g.NCols(); c++ {
			text := g.Cell(r, c).Text
			if strings.ContainsAny(text, ",\"\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if c < g.NCols()-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToMarkdown renders the grid as a markdown table with row 0 as the
// header row.
func (g *TableGrid) ToMarkdown() string {
	var sb strings.Builder

	for c := 0; c < g.NCols(); c++ {
		sb.WriteString("| ")
		sb.WriteString(strings.ReplaceAll(g.Cell(0, c).Text, "\n", " "))
		sb.WriteString(" ")
	}
	sb.WriteString("|\n")

	for c := 0; c < g.NCols(); c++ {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")

	for r := 1; r < g.NRows(); r++ {
		for c := 0; c < g.NCols(); c++ {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(g.Cell(r, c).Text, "\n", " "))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	return sb.String()
}
