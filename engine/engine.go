package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/tsawler/pdftables/grid"
	"github.com/tsawler/pdftables/model"
	"github.com/tsawler/pdftables/text"
)

// Config holds engine settings.
type Config struct {
	// OCR is the optional fallback recognizer for cells without
	// embedded text. Nil disables OCR.
	OCR text.RecognizeFunc

	// Workers caps pages processed concurrently. Defaults to 4.
	Workers int

	// OCRWorkers caps concurrent OCR calls within one table.
	// Defaults to 4.
	OCRWorkers int

	// Logger receives structured progress and degradation events.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

// Engine runs the full table extraction pipeline: detection, structure
// recognition, grid construction and text fill. It holds no per-table
// state, so one Engine is safe for concurrent use across tables and
// pages.
type Engine struct {
	renderer   PageRenderer
	detector   TableDetector
	recognizer StructureRecognizer
	builder    *grid.Builder
	filler     *text.Filler
	workers    int
	logger     *slog.Logger
}

// New creates an engine around the three collaborators.
func New(renderer PageRenderer, detector TableDetector, recognizer StructureRecognizer, cfg Config) *Engine {
	workers := cfg.Workers
	if workers < 1 {
		workers = 4
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	filler := text.NewFiller()
	filler.OCR = cfg.OCR
	if cfg.OCRWorkers > 0 {
		filler.Workers = cfg.OCRWorkers
	}

	return &Engine{
		renderer:   renderer,
		detector:   detector,
		recognizer: recognizer,
		builder:    grid.NewBuilder(),
		filler:     filler,
		workers:    workers,
		logger:     logger,
	}
}

// ExtractAll extracts tables from every page of the source. Pages are
// processed by a bounded worker pool; a failure on one page or on one
// table is recorded and the remaining pages and tables continue
// independently. The result lists tables in page order regardless of
// scheduling.
func (e *Engine) ExtractAll(ctx context.Context, sourceFile string) *Result {
	pageCount, err := e.renderer.PageCount(ctx)
	if err != nil {
		e.logger.Error("page count failed", "source", sourceFile, "error", err)
		return ErrorResult(sourceFile, fmt.Errorf("failed to read page count: %w", err))
	}

	type pageOutcome struct {
		pageNumber int
		tables     []*model.DetectedTable
		skipped    int
		failures   []PageFailure
		err        error
	}

	workers := e.workers
	if workers > pageCount {
		workers = pageCount
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int, pageCount)
	outcomes := make(chan pageOutcome, pageCount)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pageNumber := range jobs {
				tables, skipped, failures, err := e.extractPage(ctx, sourceFile, pageNumber)
				outcomes <- pageOutcome{pageNumber: pageNumber, tables: tables, skipped: skipped, failures: failures, err: err}
			}
		}()
	}
	for p := 0; p < pageCount; p++ {
		jobs <- p
	}
	close(jobs)
	wg.Wait()
	close(outcomes)

	collected := make([]pageOutcome, 0, pageCount)
	for o := range outcomes {
		collected = append(collected, o)
	}
	sort.Slice(collected, func(i, j int) bool {
		return collected[i].pageNumber < collected[j].pageNumber
	})

	result := &Result{
		Success:    true,
		SourceFile: sourceFile,
		Tables:     []TableResult{},
	}
	for _, o := range collected {
		if o.err != nil {
			e.logger.Warn("page extraction failed", "source", sourceFile, "page", o.pageNumber, "error", o.err)
			result.Failures = append(result.Failures, PageFailure{
				PageNumber: o.pageNumber,
				Error:      o.err.Error(),
			})
			continue
		}
		result.Failures = append(result.Failures, o.failures...)
		result.SkippedTables += o.skipped
		for _, t := range o.tables {
			result.Tables = append(result.Tables, tableResult(t))
		}
	}
	return result
}

// ExtractPage extracts all tables from a single page. A failure on one
// table region is logged and the remaining regions continue; only
// page-level collaborator failures return an error.
func (e *Engine) ExtractPage(ctx context.Context, sourceFile string, pageNumber int) ([]*model.DetectedTable, error) {
	tables, _, _, err := e.extractPage(ctx, sourceFile, pageNumber)
	return tables, err
}

// extractPage processes every detected region on one page. Page-level
// collaborator failures (render, detect, text layer) return an error;
// a failure on a single table is recorded as a PageFailure and the
// page's remaining tables continue independently.
func (e *Engine) extractPage(ctx context.Context, sourceFile string, pageNumber int) ([]*model.DetectedTable, int, []PageFailure, error) {
	page, err := e.renderer.RenderPage(ctx, pageNumber)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("failed to render page %d: %w", pageNumber, err)
	}

	detections, err := e.detector.DetectTables(ctx, page)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("table detection failed on page %d: %w", pageNumber, err)
	}
	if len(detections) == 0 {
		return nil, 0, nil, nil
	}

	words, err := e.renderer.Words(ctx, pageNumber)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("failed to read text layer on page %d: %w", pageNumber, err)
	}

	var tables []*model.DetectedTable
	var failures []PageFailure
	skipped := 0
	for _, det := range detections {
		t, err := e.processTable(ctx, sourceFile, page, words, det)
		if err != nil {
			e.logger.Warn("table extraction failed",
				"source", sourceFile, "page", pageNumber, "box", det.Box.ToList(), "error", err)
			failures = append(failures, PageFailure{
				PageNumber: pageNumber,
				Error:      fmt.Sprintf("table at %v: %v", det.Box.ToList(), err),
			})
			continue
		}
		if t == nil {
			skipped++
			continue
		}
		tables = append(tables, t)
	}
	return tables, skipped, failures, nil
}

// processTable runs structure recognition, grid construction and text
// fill for one detected table region. A nil table with nil error means
// the region's structure was too sparse and the table was skipped.
func (e *Engine) processTable(ctx context.Context, sourceFile string, page *model.PageImage, words []model.Word, det Detection) (*model.DetectedTable, error) {
	cells, err := e.recognizer.RecognizeStructure(ctx, page, det.Box)
	if err != nil {
		return nil, fmt.Errorf("structure recognition failed: %w", err)
	}

	if !validStructure(cells) {
		e.logger.Debug("skipping table with sparse structure",
			"source", sourceFile, "page", page.Number, "candidates", len(cells))
		return nil, nil
	}

	g, err := e.builder.BuildGrid(cells, det.Box)
	if err != nil {
		return nil, fmt.Errorf("grid construction failed: %w", err)
	}

	if err := e.filler.Fill(ctx, g, words, page); err != nil {
		return nil, fmt.Errorf("text fill failed: %w", err)
	}

	return &model.DetectedTable{
		Box:        det.Box,
		Score:      det.Score,
		PageNumber: page.Number,
		SourceFile: sourceFile,
		Grid:       g,
	}, nil
}

// validStructure applies the minimum structure rule: at least two
// candidates, and either a row/column indicator among them or enough
// plain cells to suggest a real table.
func validStructure(cells []model.DetectedCell) bool {
	if len(cells) < 2 {
		return false
	}
	for _, c := range cells {
		switch c.Type {
		case model.CellTypeRow, model.CellTypeColumn, model.CellTypeColumnHeader:
			return true
		}
	}
	return len(cells) >= 4
}
