package pdftables

import (
	"log/slog"

	"github.com/tsawler/pdftables/text"
)

// ExtractOptions holds configuration for table extraction.
type ExtractOptions struct {
	ocr        text.RecognizeFunc
	workers    int
	ocrWorkers int
	logger     *slog.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		ocr:        nil, // OCR disabled
		workers:    4,
		ocrWorkers: 4,
		logger:     nil, // slog.Default()
	}
}

// clone creates a copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	return ExtractOptions{
		ocr:        o.ocr,
		workers:    o.workers,
		ocrWorkers: o.ocrWorkers,
		logger:     o.logger,
	}
}

// WithOCR enables the OCR fallback for cells whose region carries no
// embedded text. Pass nil to disable.
func (e *Extractor) WithOCR(fn text.RecognizeFunc) *Extractor {
	n := e.clone()
	n.options.ocr = fn
	return n
}

// Workers sets the number of pages processed concurrently.
func (e *Extractor) Workers(n int) *Extractor {
	c := e.clone()
	c.options.workers = n
	return c
}

// OCRWorkers caps concurrent OCR calls within one table.
func (e *Extractor) OCRWorkers(n int) *Extractor {
	c := e.clone()
	c.options.ocrWorkers = n
	return c
}

// Logger sets the structured logger used during extraction.
func (e *Extractor) Logger(l *slog.Logger) *Extractor {
	c := e.clone()
	c.options.logger = l
	return c
}
