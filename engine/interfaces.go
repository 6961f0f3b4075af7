package engine

import (
	"context"

	"github.com/tsawler/pdftables/model"
)

// Detection is one table region found on a page by the detection
// collaborator, already filtered by the caller's detection threshold.
type Detection struct {
	Box   model.BBox
	Score float64
}

// PageRenderer supplies rendered pages and their text-layer words.
type PageRenderer interface {
	// PageCount returns the number of pages in the source document.
	PageCount(ctx context.Context) (int, error)

	// RenderPage renders one page to an image. Implementations may
	// return a PageImage with a nil Image when rendering is not
	// available; OCR fallback is then skipped for that page.
	RenderPage(ctx context.Context, pageNumber int) (*model.PageImage, error)

	// Words returns the embedded text-layer words for one page.
	Words(ctx context.Context, pageNumber int) ([]model.Word, error)
}

// TableDetector locates table regions on a rendered page.
type TableDetector interface {
	DetectTables(ctx context.Context, page *model.PageImage) ([]Detection, error)
}

// StructureRecognizer detects the table elements inside one table
// region. Returned cells must be in absolute page coordinates; the
// recognizer adds the table's top-left offset before handing cells to
// the engine.
type StructureRecognizer interface {
	RecognizeStructure(ctx context.Context, page *model.PageImage, tableBox model.BBox) ([]model.DetectedCell, error)
}
