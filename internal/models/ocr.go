package models

import "image"

// Box is the canonical axis-aligned bounding box for an OCR detection.
// Engine-specific location types are normalized into a Box at the engine
// boundary so nothing downstream branches on representation.
type Box struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// BoxFromRect builds a Box from a stdlib rectangle.
func BoxFromRect(r image.Rectangle) Box {
	r = r.Canon()
	return Box{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

// Left returns the leftmost x coordinate of the box, used to restore
// left-to-right reading order of OCR tokens.
func (b Box) Left() int {
	if b.X2 < b.X1 {
		return b.X2
	}
	return b.X1
}

// OCRResult is one recognized text token with its location and the engine's
// confidence in the recognition.
type OCRResult struct {
	Box        Box     `json:"box"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}
