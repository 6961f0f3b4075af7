package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/tsawler/pdftables/engine"
	"github.com/tsawler/pdftables/model"
)

// fixtureDocument is the JSON input consumed by the extract command:
// precomputed detection, structure and word data for one document, as
// produced by an upstream detection pipeline.
type fixtureDocument struct {
	SourceFile string        `json:"source_file"`
	Pages      []fixturePage `json:"pages"`
}

type fixturePage struct {
	PageNumber int            `json:"page_number"`
	Image      string         `json:"image,omitempty"`
	Words      []fixtureWord  `json:"words"`
	Tables     []fixtureTable `json:"tables"`
}

type fixtureWord struct {
	Box  [4]float64 `json:"box"`
	Text string     `json:"text"`
}

type fixtureTable struct {
	Box   [4]float64    `json:"box"`
	Score float64       `json:"score"`
	Cells []fixtureCell `json:"cells"`
}

type fixtureCell struct {
	Box   [4]float64 `json:"box"`
	Type  string     `json:"type"`
	Score float64    `json:"score"`
}

// fixtureSource serves a fixtureDocument as the three extraction
// collaborators. Image paths are resolved relative to the fixture
// file; pages without an image render with a nil Image, which disables
// OCR fallback for that page.
type fixtureSource struct {
	doc       fixtureDocument
	baseDir   string
	threshold float64
	pages     map[int]fixturePage
}

func loadFixture(path string, threshold float64) (*fixtureSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}

	var doc fixtureDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}
	if doc.SourceFile == "" {
		doc.SourceFile = filepath.Base(path)
	}

	pages := make(map[int]fixturePage, len(doc.Pages))
	for _, p := range doc.Pages {
		pages[p.PageNumber] = p
	}

	return &fixtureSource{
		doc:       doc,
		baseDir:   filepath.Dir(path),
		threshold: threshold,
		pages:     pages,
	}, nil
}

func (s *fixtureSource) SourceFile() string {
	return s.doc.SourceFile
}

func (s *fixtureSource) PageCount(ctx context.Context) (int, error) {
	return len(s.doc.Pages), nil
}

func (s *fixtureSource) RenderPage(ctx context.Context, pageNumber int) (*model.PageImage, error) {
	p, ok := s.pages[pageNumber]
	if !ok {
		return nil, fmt.Errorf("page %d not in fixture", pageNumber)
	}

	page := &model.PageImage{
		Number:     pageNumber,
		SourceFile: s.doc.SourceFile,
	}
	if p.Image != "" {
		img, err := loadImage(filepath.Join(s.baseDir, p.Image))
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNumber, err)
		}
		page.Image = img
	}
	return page, nil
}

func (s *fixtureSource) Words(ctx context.Context, pageNumber int) ([]model.Word, error) {
	p, ok := s.pages[pageNumber]
	if !ok {
		return nil, fmt.Errorf("page %d not in fixture", pageNumber)
	}

	words := make([]model.Word, 0, len(p.Words))
	for _, w := range p.Words {
		words = append(words, model.Word{
			Box:  boxFromList(w.Box),
			Text: w.Text,
		})
	}
	return words, nil
}

func (s *fixtureSource) DetectTables(ctx context.Context, page *model.PageImage) ([]engine.Detection, error) {
	p, ok := s.pages[page.Number]
	if !ok {
		return nil, fmt.Errorf("page %d not in fixture", page.Number)
	}

	var detections []engine.Detection
	for _, t := range p.Tables {
		if t.Score < s.threshold {
			continue
		}
		detections = append(detections, engine.Detection{
			Box:   boxFromList(t.Box),
			Score: t.Score,
		})
	}
	return detections, nil
}

func (s *fixtureSource) RecognizeStructure(ctx context.Context, page *model.PageImage, tableBox model.BBox) ([]model.DetectedCell, error) {
	p, ok := s.pages[page.Number]
	if !ok {
		return nil, fmt.Errorf("page %d not in fixture", page.Number)
	}

	// Cells belong to the fixture table whose box matches the query.
	for _, t := range p.Tables {
		if boxFromList(t.Box) != tableBox {
			continue
		}
		cells := make([]model.DetectedCell, 0, len(t.Cells))
		for _, c := range t.Cells {
			cells = append(cells, model.DetectedCell{
				Box:        boxFromList(c.Box),
				Type:       model.CellType(c.Type),
				Confidence: c.Score,
			})
		}
		return cells, nil
	}
	return nil, fmt.Errorf("page %d: no fixture table at %v", page.Number, tableBox.ToList())
}

func boxFromList(b [4]float64) model.BBox {
	return model.NewBBox(b[0], b[1], b[2], b[3])
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}
