// Package pdftables provides a fluent API for extracting structured
// tables from PDF pages.
//
// The package layers a deterministic grid-construction engine over
// caller-supplied collaborators: a page renderer, a table detector and
// a structure recognizer. Detections go in, a clean rectangular grid
// with addressed, text-filled cells comes out.
//
// Basic usage:
//
//	result, warnings, err := pdftables.New(renderer, detector, recognizer).
//	    Extract(ctx, "report.pdf")
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pdftables.FormatWarnings(warnings))
//	}
//
// With OCR fallback and custom concurrency:
//
//	client, err := ocr.New()
//	if err != nil {
//	    // OCR support not compiled in; continue without it
//	}
//	result, _, err := pdftables.New(renderer, detector, recognizer).
//	    WithOCR(client.Recognize).
//	    Workers(8).
//	    Extract(ctx, "report.pdf")
//
// For advanced use cases, the lower-level engine package is also
// available.
package pdftables

import (
	"context"
	"fmt"

	"github.com/tsawler/pdftables/engine"
	"github.com/tsawler/pdftables/model"
)

// Extractor provides a fluent interface for configuring and running
// table extraction. Each configuration method returns a new Extractor
// instance, making it safe for concurrent use and allowing method
// chaining.
type Extractor struct {
	renderer   engine.PageRenderer
	detector   engine.TableDetector
	recognizer engine.StructureRecognizer

	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// New creates an Extractor around the three collaborators.
func New(renderer engine.PageRenderer, detector engine.TableDetector, recognizer engine.StructureRecognizer) *Extractor {
	e := &Extractor{
		renderer:   renderer,
		detector:   detector,
		recognizer: recognizer,
		options:    defaultOptions(),
	}
	if renderer == nil || detector == nil || recognizer == nil {
		e.err = fmt.Errorf("pdftables: all three collaborators are required")
	}
	return e
}

// clone creates a shallow copy of the Extractor with a deep copy of
// options. This ensures immutability - each chain method returns a new
// instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		renderer:   e.renderer,
		detector:   e.detector,
		recognizer: e.recognizer,
		options:    e.options.clone(),
		err:        e.err,
	}
}

// Extract runs the full pipeline over the source document and returns
// the canonical result. Warnings report non-fatal degradations: failed
// pages and skipped sparse tables.
func (e *Extractor) Extract(ctx context.Context, sourceFile string) (*engine.Result, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	res := e.engine().ExtractAll(ctx, sourceFile)

	var warnings []Warning
	for _, f := range res.Failures {
		warnings = append(warnings, Warning{
			Code:    WarnPageFailed,
			Page:    f.PageNumber,
			Message: f.Error,
		})
	}
	if res.SkippedTables > 0 {
		warnings = append(warnings, Warning{
			Code:    WarnTablesSkipped,
			Page:    -1,
			Message: fmt.Sprintf("%d detected table(s) had too little structure to form a grid", res.SkippedTables),
		})
	}
	return res, warnings, nil
}

// Tables extracts from a single page and returns the detected tables
// with their grids, for callers who want the structural form rather
// than the serialized rows.
func (e *Extractor) Tables(ctx context.Context, sourceFile string, pageNumber int) ([]*model.DetectedTable, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.engine().ExtractPage(ctx, sourceFile, pageNumber)
}

func (e *Extractor) engine() *engine.Engine {
	return engine.New(e.renderer, e.detector, e.recognizer, engine.Config{
		OCR:        e.options.ocr,
		Workers:    e.options.workers,
		OCRWorkers: e.options.ocrWorkers,
		Logger:     e.options.logger,
	})
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
