package ocr

import (
	"image"

	"golang.org/x/image/draw"
)

// MinRegionHeight is the pixel height below which a cell crop is
// upscaled before recognition. Tesseract accuracy degrades sharply on
// text rendered under roughly 30 px tall.
const MinRegionHeight = 32

// MaxUpscale caps the scaling factor for very small regions.
const MaxUpscale = 4

// Prepare readies a cell crop for recognition. Regions shorter than
// MinRegionHeight are upscaled with Catmull-Rom interpolation; larger
// regions pass through unchanged.
func Prepare(img image.Image) image.Image {
	if img == nil {
		return nil
	}
	bounds := img.Bounds()
	if bounds.Dy() <= 0 || bounds.Dx() <= 0 {
		return img
	}
	if bounds.Dy() >= MinRegionHeight {
		return img
	}

	scale := (MinRegionHeight + bounds.Dy() - 1) / bounds.Dy()
	if scale > MaxUpscale {
		scale = MaxUpscale
	}
	if scale <= 1 {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*scale, bounds.Dy()*scale))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
