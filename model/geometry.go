package model

import "math"

// BBox represents an axis-aligned bounding box in page-pixel coordinates.
// The origin is the top-left corner of the page, with Y growing downward.
type BBox struct {
	XMin float64 `json:"x_min"`
	YMin float64 `json:"y_min"`
	XMax float64 `json:"x_max"`
	YMax float64 `json:"y_max"`
}

// NewBBox creates a bounding box from two corner coordinates.
// Inverted coordinates are swapped rather than rejected; upstream
// detection models occasionally emit boxes with min/max reversed.
func NewBBox(xMin, yMin, xMax, yMax float64) BBox {
	if xMin > xMax {
		xMin, xMax = xMax, xMin
	}
	if yMin > yMax {
		yMin, yMax = yMax, yMin
	}
	return BBox{XMin: xMin, YMin: yMin, XMax: xMax, YMax: yMax}
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 {
	return b.XMax - b.XMin
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	return b.YMax - b.YMin
}

// Area returns the area of the bounding box.
func (b BBox) Area() float64 {
	return b.Width() * b.Height()
}

// CenterX returns the horizontal center coordinate.
func (b BBox) CenterX() float64 {
	return (b.XMin + b.XMax) / 2
}

// CenterY returns the vertical center coordinate.
func (b BBox) CenterY() float64 {
	return (b.YMin + b.YMax) / 2
}

// Intersects reports whether two boxes share a region of non-zero area.
// Boxes that merely touch at an edge or corner do not intersect.
func (b BBox) Intersects(other BBox) bool {
	return b.XMax > other.XMin && other.XMax > b.XMin &&
		b.YMax > other.YMin && other.YMax > b.YMin
}

// Intersection returns the overlapping region of two boxes, or the zero
// BBox if they do not intersect.
func (b BBox) Intersection(other BBox) BBox {
	if !b.Intersects(other) {
		return BBox{}
	}
	return BBox{
		XMin: math.Max(b.XMin, other.XMin),
		YMin: math.Max(b.YMin, other.YMin),
		XMax: math.Min(b.XMax, other.XMax),
		YMax: math.Min(b.YMax, other.YMax),
	}
}

// Union returns the smallest box containing both boxes.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		XMin: math.Min(b.XMin, other.XMin),
		YMin: math.Min(b.YMin, other.YMin),
		XMax: math.Max(b.XMax, other.XMax),
		YMax: math.Max(b.YMax, other.YMax),
	}
}

// IsEmpty returns true if the box has zero area.
func (b BBox) IsEmpty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// ToList returns the box as [x_min, y_min, x_max, y_max], the form used
// in serialized table metadata.
func (b BBox) ToList() [4]float64 {
	return [4]float64{b.XMin, b.YMin, b.XMax, b.YMax}
}
