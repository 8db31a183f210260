// Package ocr recognizes batter names out of the at-bat overlay graphic.
//
// The recognition engine sits behind the Reader interface so the scan loop
// can be tested with a double and so the engine handle is constructed and
// owned explicitly by the caller rather than hiding behind package state.
// Engine-specific location shapes and confidence scales are normalized here,
// at the boundary; downstream code only ever sees models.OCRResult.
package ocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"

	"github.com/lightsout-hb/batscan/internal/models"
)

// Reader recognizes text tokens in an image region.
type Reader interface {
	// Read returns one result per recognized token, with the canonical
	// bounding box and a confidence in [0, 1].
	Read(region gocv.Mat) ([]models.OCRResult, error)
	Close() error
}

// TesseractReader is the production Reader backed by a Tesseract client.
type TesseractReader struct {
	client *gosseract.Client
}

// NewTesseractReader constructs a Tesseract-backed reader. The returned
// reader owns the client and must be Closed.
func NewTesseractReader() (*TesseractReader, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage("eng"); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to configure OCR language: %w", err)
	}
	return &TesseractReader{client: client}, nil
}

// Read runs word-level recognition over the region. Engine failures
// propagate; fabricating a plausible-looking name is worse than failing the
// scan.
func (r *TesseractReader) Read(region gocv.Mat) ([]models.OCRResult, error) {
	if region.Empty() {
		return nil, fmt.Errorf("OCR region is empty")
	}

	buf, err := gocv.IMEncode(".png", region)
	if err != nil {
		return nil, fmt.Errorf("failed to encode OCR region: %w", err)
	}
	defer buf.Close()

	if err := r.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return nil, fmt.Errorf("failed to hand region to OCR engine: %w", err)
	}

	boxes, err := r.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR recognition failed: %w", err)
	}

	results := make([]models.OCRResult, 0, len(boxes))
	for _, b := range boxes {
		results = append(results, models.OCRResult{
			Box:  models.BoxFromRect(b.Box),
			Text: b.Word,
			// Tesseract reports confidence on a 0-100 scale.
			Confidence: b.Confidence / 100.0,
		})
	}
	return results, nil
}

// Close releases the underlying Tesseract client.
func (r *TesseractReader) Close() error {
	return r.client.Close()
}
