// Package thumbnail extracts a representative thumbnail frame from a game
// video by scoring sampled frames against a reference image with SSIM and
// saving the first frame that clears the threshold.
package thumbnail

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	"github.com/lightsout-hb/batscan/internal/logger"
	"github.com/lightsout-hb/batscan/internal/sample"
	"github.com/lightsout-hb/batscan/internal/video"
)

// Defaults for thumbnail extraction.
const (
	DefaultThreshold    = 0.35
	DefaultScanDuration = 120 // seconds scanned from the start of the video
	DefaultResolution   = 3   // sampled frames per second
)

// Options tune an extraction. Zero values select the defaults.
type Options struct {
	Threshold    float64
	ScanDuration int
	Resolution   int
	OutputPath   string
	// OnProgress fires after each sampled frame with the number of frames
	// passed and the scan ceiling.
	OnProgress func(processed, total int)
}

func (o Options) withDefaults() Options {
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if o.ScanDuration == 0 {
		o.ScanDuration = DefaultScanDuration
	}
	if o.Resolution == 0 {
		o.Resolution = DefaultResolution
	}
	return o
}

// Result describes a successful extraction.
type Result struct {
	FrameNumber int
	TimestampMS float64
	Score       float64
	OutputPath  string
}

// DefaultOutputPath derives the thumbnail path from the video file name:
// "game.mp4" becomes "game-thumbnail.jpg" in the working directory.
func DefaultOutputPath(videoPath string) string {
	stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	return stem + "-thumbnail.jpg"
}

// Extract scans the opening stretch of the video and saves the first sampled
// frame whose SSIM score against the template clears the threshold. The
// boolean result reports whether any frame qualified; scanning the whole
// window without a hit is a valid outcome, not an error.
func Extract(source video.Source, templateGray gocv.Mat, videoPath string, opts Options) (Result, bool, error) {
	if templateGray.Empty() {
		return Result{}, false, fmt.Errorf("thumbnail template is empty")
	}
	opts = opts.withDefaults()

	interval, err := sample.Interval(source.FrameRate(), opts.Resolution)
	if err != nil {
		return Result{}, false, fmt.Errorf("cannot sample video: %w", err)
	}
	maxFrames := int(float64(opts.ScanDuration) * source.FrameRate())
	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = DefaultOutputPath(videoPath)
	}

	logger.Debug("thumbnail: interval=%d maxFrames=%d threshold=%.2f", interval, maxFrames, opts.Threshold)

	tmplDims := image.Pt(templateGray.Cols(), templateGray.Rows())
	frameCount := 0
	for frameCount < maxFrames {
		source.Skip(interval - 1)
		frame, ok := source.Read()
		if !ok {
			break
		}
		frameCount += interval

		score := scoreFrame(frame, templateGray, tmplDims)
		logger.Debug("thumbnail: frame %d SSIM=%.4f", frameCount, score)

		if opts.OnProgress != nil {
			opts.OnProgress(frameCount, maxFrames)
		}

		if score >= opts.Threshold {
			ts := source.PositionMS()
			saved := gocv.IMWrite(outputPath, frame)
			_ = frame.Close()
			if !saved {
				return Result{}, false, fmt.Errorf("failed to write thumbnail to %s", outputPath)
			}
			logger.Info("thumbnail: frame=%d timestamp=%.0fms score=%.4f path=%s",
				frameCount, ts, score, outputPath)
			return Result{
				FrameNumber: frameCount,
				TimestampMS: ts,
				Score:       score,
				OutputPath:  outputPath,
			}, true, nil
		}
		_ = frame.Close()
	}

	logger.Warn("thumbnail: no frame cleared threshold %.2f within %ds", opts.Threshold, opts.ScanDuration)
	return Result{}, false, nil
}

// scoreFrame resizes the frame to the template dimensions, converts it to
// grayscale, and computes SSIM against the template.
func scoreFrame(frame, templateGray gocv.Mat, tmplDims image.Point) float64 {
	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(frame, &resized, tmplDims, 0, 0, gocv.InterpolationLinear)

	gray := video.ToGray(resized)
	defer gray.Close()

	return SSIM(gray, templateGray)
}
