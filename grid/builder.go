package grid

import (
	"errors"

	"github.com/tsawler/pdftables/cluster"
	"github.com/tsawler/pdftables/model"
)

// ErrNoCandidates is returned when structure recognition produced no
// candidates at all for a table. This is a contract violation by the
// recognition collaborator, distinct from data-quality degradation,
// which never errors.
var ErrNoCandidates = errors.New("grid: no structure candidates for table")

// Builder constructs a dense table grid from detected table elements.
type Builder struct {
	// Clusterer merges candidate edges into boundary lines.
	Clusterer *cluster.Clusterer
}

// NewBuilder creates a builder with default settings.
func NewBuilder() *Builder {
	return &Builder{
		Clusterer: cluster.NewClusterer(),
	}
}

// BuildGrid turns detected candidates for one table into a complete
// grid. Candidate boxes must be in absolute page coordinates.
//
// Boundaries come from clustering the y-edges (rows) and x-edges
// (columns) of all surviving candidates; both min and max edges
// contribute, since each edge is itself a candidate boundary line. An
// axis with fewer than two usable boundaries is synthesized from the
// table box, degrading to a single row or column instead of failing.
//
// Every content candidate (cell, spanning cell, column header) is then
// mapped to each grid position its box overlaps with non-zero area,
// and the highest-confidence candidate wins each position. A spanning
// cell naturally maps to several positions; this is the intended
// representation of merged cells. Positions left unmapped keep their
// synthesized cell.
func (b *Builder) BuildGrid(cells []model.DetectedCell, tableBox model.BBox) (*model.TableGrid, error) {
	if len(cells) == 0 {
		return nil, ErrNoCandidates
	}

	candidates := FilterCandidates(cells)

	yEdges := make([]float64, 0, len(candidates)*2)
	xEdges := make([]float64, 0, len(candidates)*2)
	for _, c := range candidates {
		yEdges = append(yEdges, c.Box.YMin, c.Box.YMax)
		xEdges = append(xEdges, c.Box.XMin, c.Box.XMax)
	}

	rowBoundaries := b.Clusterer.Cluster(yEdges)
	colBoundaries := b.Clusterer.Cluster(xEdges)

	// A table whose internal structure cannot be recovered degrades
	// to a single cell spanning the table box.
	if len(rowBoundaries) < 2 {
		rowBoundaries = []float64{tableBox.YMin, tableBox.YMax}
	}
	if len(colBoundaries) < 2 {
		colBoundaries = []float64{tableBox.XMin, tableBox.XMax}
	}

	g, err := model.NewTableGrid(rowBoundaries, colBoundaries)
	if err != nil {
		return nil, err
	}

	b.assign(g, candidates)
	return g, nil
}

// assign maps content candidates to grid positions by overlap, keeping
// the highest-confidence candidate per position.
func (b *Builder) assign(g *model.TableGrid, candidates []model.DetectedCell) {
	for _, c := range candidates {
		if !c.Type.IsContentCandidate() {
			continue
		}
		for r := 0; r < g.NRows(); r++ {
			// Vertical overlap gate before scanning columns.
			if c.Box.YMax <= g.RowBoundaries[r] || c.Box.YMin >= g.RowBoundaries[r+1] {
				continue
			}
			for col := 0; col < g.NCols(); col++ {
				rect := g.BoundaryRect(r, col)
				if !c.Box.Intersects(rect) {
					continue
				}
				cur := g.Cell(r, col)
				if cur.Detected && cur.Confidence >= c.Confidence {
					continue
				}
				g.SetCell(r, col, model.GridCell{
					Box:        c.Box.Intersection(rect),
					Confidence: c.Confidence,
					Detected:   true,
				})
			}
		}
	}
}
