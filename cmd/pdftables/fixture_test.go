package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/pdftables/model"
)

const sampleFixture = `{
  "source_file": "invoice.pdf",
  "pages": [
    {
      "page_number": 0,
      "words": [
        {"box": [12, 12, 40, 18], "text": "Name"},
        {"box": [62, 12, 90, 18], "text": "Amount"},
        {"box": [12, 32, 44, 38], "text": "Widget"},
        {"box": [62, 32, 72, 38], "text": "42"}
      ],
      "tables": [
        {
          "box": [10, 10, 110, 50],
          "score": 0.97,
          "cells": [
            {"box": [10, 10, 110, 25], "type": "row", "score": 0.9},
            {"box": [10, 30, 110, 45], "type": "row", "score": 0.9},
            {"box": [10, 10, 55, 45], "type": "column", "score": 0.9},
            {"box": [60, 10, 110, 45], "type": "column", "score": 0.9}
          ]
        },
        {"box": [200, 200, 250, 250], "score": 0.3, "cells": []}
      ]
    }
  ]
}`

func writeFixture(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.json")
	if err := os.WriteFile(path, []byte(sampleFixture), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadFixture(t *testing.T) {
	src, err := loadFixture(writeFixture(t), 0.5)
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	ctx := context.Background()

	if src.SourceFile() != "invoice.pdf" {
		t.Errorf("unexpected source file %q", src.SourceFile())
	}

	n, err := src.PageCount(ctx)
	if err != nil || n != 1 {
		t.Fatalf("PageCount = %d, %v", n, err)
	}

	page, err := src.RenderPage(ctx, 0)
	if err != nil {
		t.Fatalf("rendering page: %v", err)
	}
	if page.Image != nil {
		t.Error("page without image path should render with nil Image")
	}

	words, err := src.Words(ctx, 0)
	if err != nil {
		t.Fatalf("reading words: %v", err)
	}
	if len(words) != 4 || words[0].Text != "Name" {
		t.Errorf("unexpected words %v", words)
	}
}

func TestDetectTables_AppliesThreshold(t *testing.T) {
	src, err := loadFixture(writeFixture(t), 0.5)
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	ctx := context.Background()

	page, err := src.RenderPage(ctx, 0)
	if err != nil {
		t.Fatalf("rendering page: %v", err)
	}

	detections, err := src.DetectTables(ctx, page)
	if err != nil {
		t.Fatalf("detecting tables: %v", err)
	}
	if len(detections) != 1 {
		t.Fatalf("expected 1 detection above threshold, got %d", len(detections))
	}
	if detections[0].Score != 0.97 {
		t.Errorf("unexpected score %v", detections[0].Score)
	}
}

func TestRecognizeStructure_MatchesTableByBox(t *testing.T) {
	src, err := loadFixture(writeFixture(t), 0.5)
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	ctx := context.Background()

	page, err := src.RenderPage(ctx, 0)
	if err != nil {
		t.Fatalf("rendering page: %v", err)
	}

	cells, err := src.RecognizeStructure(ctx, page, model.NewBBox(10, 10, 110, 50))
	if err != nil {
		t.Fatalf("recognizing structure: %v", err)
	}
	if len(cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(cells))
	}
	if cells[0].Type != model.CellTypeRow {
		t.Errorf("unexpected first cell type %q", cells[0].Type)
	}

	if _, err := src.RecognizeStructure(ctx, page, model.NewBBox(0, 0, 1, 1)); err == nil {
		t.Error("expected error for unknown table box")
	}
}

func TestFixture_UnknownPage(t *testing.T) {
	src, err := loadFixture(writeFixture(t), 0.5)
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	ctx := context.Background()

	if _, err := src.RenderPage(ctx, 7); err == nil {
		t.Error("expected error for unknown page")
	}
	if _, err := src.Words(ctx, 7); err == nil {
		t.Error("expected error for unknown page")
	}
}
