package text

import (
	"context"
	"fmt"
	"image"
	"sort"
	"strings"
	"sync"

	"github.com/tsawler/pdftables/model"
)

// RecognizeFunc maps a cropped image region to recognized text. It is
// the OCR collaborator's contract; a nil RecognizeFunc means OCR is
// disabled.
type RecognizeFunc func(ctx context.Context, img image.Image) (string, error)

// Filler populates grid cell text using a two-stage strategy: direct
// extraction from the PDF text layer first, then OCR on the cell's
// image region for cells the text layer left empty.
type Filler struct {
	// OCR is the optional fallback recognizer. Nil disables stage 2.
	OCR RecognizeFunc

	// Workers caps concurrent OCR calls within one table.
	Workers int
}

// NewFiller creates a filler with default settings and no OCR.
func NewFiller() *Filler {
	return &Filler{
		Workers: 4,
	}
}

// Fill populates the text of every cell in the grid, in place.
//
// Stage 1 collects each word whose box overlaps the cell with non-zero
// area, orders the matches by ascending y then x (reading order) and
// joins them with single spaces. Stage 2 runs only for cells stage 1
// left blank, and only when OCR is configured and a page image is
// available: the page is cropped to the cell box and handed to the
// recognizer, whose trimmed output is used verbatim. An OCR failure or
// empty result leaves the cell empty; that is a content gap, not an
// error.
func (f *Filler) Fill(ctx context.Context, g *model.TableGrid, words []model.Word, page *model.PageImage) error {
	if g == nil {
		return fmt.Errorf("text: nil grid")
	}

	type position struct{ row, col int }
	var pending []position

	for r := 0; r < g.NRows(); r++ {
		for c := 0; c < g.NCols(); c++ {
			cell := g.Cell(r, c)
			cell.Text = DirectText(cell.Box, words)
			if cell.IsEmpty() {
				pending = append(pending, position{r, c})
			}
		}
	}

	if f.OCR == nil || len(pending) == 0 || page == nil || page.Image == nil {
		return nil
	}

	workers := f.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(pending) {
		workers = len(pending)
	}

	jobs := make(chan position, len(pending))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pos := range jobs {
				cell := g.Cell(pos.row, pos.col)
				cell.Text = f.recognize(ctx, page, cell.Box)
			}
		}()
	}
	for _, pos := range pending {
		jobs <- pos
	}
	close(jobs)
	wg.Wait()

	return nil
}

// recognize crops the page to the cell box and invokes the OCR
// collaborator. Any failure, including context timeout or
// cancellation, yields an empty string.
func (f *Filler) recognize(ctx context.Context, page *model.PageImage, box model.BBox) string {
	if err := ctx.Err(); err != nil {
		return ""
	}
	crop := page.Crop(box)
	if crop == nil {
		return ""
	}
	text, err := f.OCR(ctx, crop)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// DirectText extracts text for one cell box from the page's word list.
// Words overlapping the box with non-zero area are ordered by ascending
// y_min then x_min and joined with single spaces. The result is
// deterministic for identical inputs.
func DirectText(box model.BBox, words []model.Word) string {
	var matched []model.Word
	for _, w := range words {
		if box.Intersects(w.Box) {
			matched = append(matched, w)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Box.YMin != matched[j].Box.YMin {
			return matched[i].Box.YMin < matched[j].Box.YMin
		}
		return matched[i].Box.XMin < matched[j].Box.XMin
	})

	parts := make([]string, len(matched))
	for i, w := range matched {
		parts[i] = w.Text
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
