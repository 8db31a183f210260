package ocr

import (
	"image"
	"regexp"
	"sort"
	"strings"

	"github.com/lightsout-hb/batscan/internal/models"
)

// DefaultConfidenceThreshold drops OCR tokens at or below this confidence.
const DefaultConfidenceThreshold = 0.2

// HeadshotStripPx is the width of the strip at the left edge of the overlay
// reserved for the batter headshot graphic. It is cropped off before OCR so
// the portrait never pollutes recognition.
const HeadshotStripPx = 100

var (
	jerseyPattern = regexp.MustCompile(`#\d+`)
	spaceRun      = regexp.MustCompile(`\s+`)
)

// ExtractName reconstructs a canonical "name + jersey number" string from
// raw OCR results.
//
// Tokens at or below the confidence threshold are discarded, the survivors
// are re-sorted by their leftmost x coordinate (OCR engines frequently
// return multi-token names out of reading order), and every "#<digits>"
// substring is hoisted out of its token and appended after the name
// fragments. Sorting before hoisting guarantees jersey numbers never land
// mid-name, whether the engine returned them as separate tokens or fused
// into a name token.
//
// An empty result is not an error: it means "unknown batter".
func ExtractName(results []models.OCRResult, confidenceThreshold float64) string {
	kept := make([]models.OCRResult, 0, len(results))
	for _, r := range results {
		if r.Confidence > confidenceThreshold {
			kept = append(kept, r)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Box.Left() < kept[j].Box.Left()
	})

	var fragments []string
	var jerseys []string
	for _, r := range kept {
		jerseys = append(jerseys, jerseyPattern.FindAllString(r.Text, -1)...)

		fragment := jerseyPattern.ReplaceAllString(r.Text, "")
		fragment = strings.TrimSpace(spaceRun.ReplaceAllString(fragment, " "))
		if fragment != "" {
			fragments = append(fragments, fragment)
		}
	}

	return strings.Join(append(fragments, jerseys...), " ")
}

// NameRegion returns the rectangle holding the batter name inside a matched
// overlay: the template's bounding box at its match location, minus the
// leading headshot strip, clamped to the frame.
func NameRegion(topLeft models.Point, tmpl, frame models.Size) image.Rectangle {
	r := image.Rect(
		topLeft.X+HeadshotStripPx,
		topLeft.Y,
		topLeft.X+tmpl.Width,
		topLeft.Y+tmpl.Height,
	)
	return r.Intersect(image.Rect(0, 0, frame.Width, frame.Height))
}
