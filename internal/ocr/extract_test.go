package ocr

import (
	"image"
	"testing"

	"github.com/lightsout-hb/batscan/internal/models"
)

func result(x int, text string, confidence float64) models.OCRResult {
	return models.OCRResult{
		Box:        models.Box{X1: x, Y1: 0, X2: x + 20, Y2: 20},
		Text:       text,
		Confidence: confidence,
	}
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name    string
		results []models.OCRResult
		want    string
	}{
		{
			"jersey fused into single token",
			[]models.OCRResult{result(0, "#21 Lucy Del Toro", 0.89)},
			"Lucy Del Toro #21",
		},
		{
			"multiple tokens and jerseys",
			[]models.OCRResult{
				result(0, "#12 Jane", 0.95),
				result(100, "Doe", 0.92),
				result(200, "#34", 0.88),
			},
			"Jane Doe #12 #34",
		},
		{
			"all below threshold",
			[]models.OCRResult{
				result(0, "Jane", 0.1),
				result(50, "Doe", 0.2), // at threshold, also dropped
			},
			"",
		},
		{
			"detection order violates reading order",
			[]models.OCRResult{
				result(200, "Martinez", 0.9),
				result(0, "Emma", 0.9),
			},
			"Emma Martinez",
		},
		{
			"jersey mid-token with messy whitespace",
			[]models.OCRResult{result(0, "Sarah  #7  Johnson", 0.9)},
			"Sarah Johnson #7",
		},
		{
			"jersey only",
			[]models.OCRResult{result(0, "#42", 0.9)},
			"#42",
		},
		{
			"low-confidence token dropped, rest kept",
			[]models.OCRResult{
				result(0, "Lily", 0.9),
				result(60, "smudge", 0.05),
				result(120, "Garcia", 0.9),
			},
			"Lily Garcia",
		},
		{"no results", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractName(tt.results, DefaultConfidenceThreshold); got != tt.want {
				t.Errorf("ExtractName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractNameJerseyOrderIsFirstEncountered(t *testing.T) {
	// Jersey tokens keep reading order even when interleaved with names.
	results := []models.OCRResult{
		result(100, "#34 Doe", 0.9),
		result(0, "#12 Jane", 0.9),
	}
	if got := ExtractName(results, DefaultConfidenceThreshold); got != "Jane Doe #12 #34" {
		t.Errorf("ExtractName = %q, want %q", got, "Jane Doe #12 #34")
	}
}

func TestNameRegion(t *testing.T) {
	frame := models.Size{Height: 1080, Width: 1920}
	tmpl := models.Size{Height: 120, Width: 600}

	got := NameRegion(models.Point{X: 50, Y: 800}, tmpl, frame)
	want := image.Rect(50+HeadshotStripPx, 800, 650, 920)
	if got != want {
		t.Errorf("NameRegion = %v, want %v", got, want)
	}
}

func TestNameRegionClampsToFrame(t *testing.T) {
	frame := models.Size{Height: 400, Width: 500}
	tmpl := models.Size{Height: 120, Width: 600}

	got := NameRegion(models.Point{X: 0, Y: 350}, tmpl, frame)
	if got.Max.X > frame.Width || got.Max.Y > frame.Height {
		t.Errorf("region %v exceeds frame bounds", got)
	}
}
