package model

import "image"

// Word is a single word from the PDF's embedded text layer, with its
// position in page-pixel coordinates. Words are read-only inputs; the
// engine never mutates them.
type Word struct {
	Box  BBox
	Text string
}

// PageImage is a rendered page supplied by the PDF rendering
// collaborator. The image is only needed when OCR fallback is enabled.
type PageImage struct {
	Number     int
	SourceFile string
	Image      image.Image
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Crop returns the region of the page image covered by box, clamped to
// the image bounds. It returns nil when the page has no image or the
// clamped region is empty.
func (p *PageImage) Crop(box BBox) image.Image {
	if p == nil || p.Image == nil {
		return nil
	}
	bounds := p.Image.Bounds()
	rect := image.Rect(int(box.XMin), int(box.YMin), int(box.XMax), int(box.YMax)).Intersect(bounds)
	if rect.Empty() {
		return nil
	}
	if si, ok := p.Image.(subImager); ok {
		return si.SubImage(rect)
	}
	// Fallback for image types without SubImage.
	out := image.NewRGBA(rect)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			out.Set(x, y, p.Image.At(x, y))
		}
	}
	return out
}
