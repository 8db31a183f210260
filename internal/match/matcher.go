package match

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/lightsout-hb/batscan/internal/models"
)

// TemplateMatcher evaluates successive frames against one fixed template.
// Construction validates the method and threshold once; each Evaluate call
// runs a fresh Scanner so no score surface outlives its frame.
type TemplateMatcher struct {
	template gocv.Mat
	method   string
	override *float64
}

// NewTemplateMatcher prepares a matcher for the given grayscale template.
func NewTemplateMatcher(template gocv.Mat, method string, override *float64) (*TemplateMatcher, error) {
	if template.Empty() {
		return nil, fmt.Errorf("template image is empty")
	}
	if _, err := ResolveThreshold(method, override); err != nil {
		return nil, err
	}
	return &TemplateMatcher{template: template, method: method, override: override}, nil
}

// Evaluate scores one grayscale frame against the template.
func (m *TemplateMatcher) Evaluate(frame gocv.Mat) (models.MatchResult, error) {
	scanner, err := NewScanner(frame, m.template, m.method, m.override)
	if err != nil {
		return models.MatchResult{}, err
	}
	defer scanner.Close()
	return scanner.Result(), nil
}

// TemplateSize reports the template dimensions, used to locate the overlay's
// bounding box once a match is found.
func (m *TemplateMatcher) TemplateSize() models.Size {
	return models.Size{Height: m.template.Rows(), Width: m.template.Cols()}
}

// Close releases the template mat.
func (m *TemplateMatcher) Close() error {
	return m.template.Close()
}
