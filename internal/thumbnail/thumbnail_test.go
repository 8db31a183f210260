package thumbnail

import (
	"math"
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"
)

func gradientMat(t *testing.T, rows, cols int) gocv.Mat {
	t.Helper()
	m := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8U)
	t.Cleanup(func() { _ = m.Close() })
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			m.SetUCharAt(y, x, uint8((x*255)/cols))
		}
	}
	return m
}

func TestSSIMIdenticalImages(t *testing.T) {
	a := gradientMat(t, 64, 64)
	if got := SSIM(a, a); math.Abs(got-1.0) > 0.01 {
		t.Errorf("SSIM of an image with itself = %v, want ~1.0", got)
	}
}

func TestSSIMDissimilarImages(t *testing.T) {
	a := gradientMat(t, 64, 64)
	b := gocv.NewMatWithSize(64, 64, gocv.MatTypeCV8U)
	t.Cleanup(func() { _ = b.Close() })

	got := SSIM(a, b)
	if got > 0.5 {
		t.Errorf("SSIM of a gradient against flat black = %v, want low", got)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		video string
		want  string
	}{
		{"/path/to/game.mp4", "game-thumbnail.jpg"},
		{"softball.mp4", "softball-thumbnail.jpg"},
		{"clip.tape.mkv", "clip.tape-thumbnail.jpg"},
	}
	for _, tt := range tests {
		if got := DefaultOutputPath(tt.video); got != tt.want {
			t.Errorf("DefaultOutputPath(%q) = %q, want %q", tt.video, got, tt.want)
		}
	}
}

func TestExtractRejectsEmptyTemplate(t *testing.T) {
	if _, _, err := Extract(nil, gocv.NewMat(), "game.mp4", Options{}); err == nil {
		t.Error("expected error for empty template")
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.Threshold != DefaultThreshold || o.ScanDuration != DefaultScanDuration || o.Resolution != DefaultResolution {
		t.Errorf("unexpected defaults: %+v", o)
	}

	custom := Options{Threshold: 0.8, ScanDuration: 30, Resolution: 1, OutputPath: filepath.Join("out", "t.jpg")}.withDefaults()
	if custom.Threshold != 0.8 || custom.ScanDuration != 30 || custom.Resolution != 1 {
		t.Errorf("explicit options overridden: %+v", custom)
	}
}
