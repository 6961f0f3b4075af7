package pdftables

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/tsawler/pdftables/engine"
	"github.com/tsawler/pdftables/model"
)

// stubSource is a minimal collaborator set: two pages, page 0 holding
// one sparse table region, page 1 failing to render.
type stubSource struct{}

func (s *stubSource) PageCount(ctx context.Context) (int, error) { return 2, nil }

func (s *stubSource) RenderPage(ctx context.Context, pageNumber int) (*model.PageImage, error) {
	if pageNumber == 1 {
		return nil, errors.New("render failed")
	}
	return &model.PageImage{Number: pageNumber, SourceFile: "doc.pdf"}, nil
}

func (s *stubSource) Words(ctx context.Context, pageNumber int) ([]model.Word, error) {
	return nil, nil
}

func (s *stubSource) DetectTables(ctx context.Context, page *model.PageImage) ([]engine.Detection, error) {
	return []engine.Detection{{Box: model.NewBBox(0, 0, 100, 50), Score: 0.9}}, nil
}

func (s *stubSource) RecognizeStructure(ctx context.Context, page *model.PageImage, tableBox model.BBox) ([]model.DetectedCell, error) {
	// A single candidate is below the minimum structure rule, so the
	// region is skipped rather than gridded.
	return []model.DetectedCell{
		{Box: model.NewBBox(0, 0, 100, 25), Type: model.CellTypeCell, Confidence: 0.9},
	}, nil
}

func TestNew_RequiresCollaborators(t *testing.T) {
	e := New(nil, nil, nil)
	if _, _, err := e.Extract(context.Background(), "doc.pdf"); err == nil {
		t.Error("expected error for missing collaborators")
	}
	if _, err := e.Tables(context.Background(), "doc.pdf", 0); err == nil {
		t.Error("expected error for missing collaborators")
	}
}

func TestChainMethodsDoNotMutateReceiver(t *testing.T) {
	src := &stubSource{}
	base := New(src, src, src)

	derived := base.Workers(8).OCRWorkers(2)
	if derived == base {
		t.Fatal("chain methods should return a new instance")
	}
	if base.options.workers != 4 {
		t.Errorf("base workers mutated to %d", base.options.workers)
	}
	if derived.options.workers != 8 || derived.options.ocrWorkers != 2 {
		t.Errorf("derived options = %+v", derived.options)
	}

	withOCR := base.WithOCR(func(ctx context.Context, img image.Image) (string, error) {
		return "", nil
	})
	if withOCR.options.ocr == nil {
		t.Error("WithOCR should set the recognize function on the new instance")
	}
	if base.options.ocr != nil {
		t.Error("WithOCR should leave the receiver untouched")
	}
}

func TestExtract_ReportsDegradationsAsWarnings(t *testing.T) {
	src := &stubSource{}

	result, warnings, err := New(src, src, src).Workers(1).Extract(context.Background(), "doc.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Success {
		t.Error("per-page failures should not mark the whole result failed")
	}
	if len(result.Tables) != 0 {
		t.Errorf("expected no tables, got %d", len(result.Tables))
	}

	var pageFailed, skipped bool
	for _, w := range warnings {
		switch w.Code {
		case WarnPageFailed:
			pageFailed = true
			if w.Page != 1 {
				t.Errorf("expected failure on page 1, got %d", w.Page)
			}
		case WarnTablesSkipped:
			skipped = true
		}
	}
	if !pageFailed {
		t.Error("expected a page failure warning")
	}
	if !skipped {
		t.Error("expected a skipped tables warning")
	}

	if FormatWarnings(warnings) == "" {
		t.Error("expected non-empty formatted warnings")
	}
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Must = %d, want 42", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Must should panic on error")
		}
	}()
	Must(0, errors.New("boom"))
}
