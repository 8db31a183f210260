// Package video provides ordered frame access to a recorded game file.
//
// The decoder sits behind the Source interface; the production
// implementation wraps an OpenCV VideoCapture. Frames are only ever handed
// out in recording order, which the scan pipeline depends on.
package video

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Source yields frames from a video in recording order.
type Source interface {
	// Read decodes the next frame. Returns false at end of stream. The
	// caller owns the returned mat.
	Read() (gocv.Mat, bool)
	// Skip advances n frames without decoding them. Skipping past the end
	// of stream is reported by the following Read.
	Skip(n int)
	// FrameRate reports the stream's frames per second.
	FrameRate() float64
	// TotalFrames reports the stream length in frames, 0 when unknown.
	TotalFrames() int
	// PositionMS reports the current position in milliseconds.
	PositionMS() float64
	Close() error
}

// Capture is the gocv-backed Source.
type Capture struct {
	capture *gocv.VideoCapture
	path    string
}

// Open opens a video file for scanning. Unreadable or unsupported files are
// an input error, surfaced immediately.
func Open(path string) (*Capture, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open video %s: %w", path, err)
	}
	if !capture.IsOpened() {
		_ = capture.Close()
		return nil, fmt.Errorf("failed to open video %s: decoder rejected file", path)
	}
	return &Capture{capture: capture, path: path}, nil
}

// Read decodes the next frame.
func (c *Capture) Read() (gocv.Mat, bool) {
	frame := gocv.NewMat()
	if !c.capture.Read(&frame) || frame.Empty() {
		_ = frame.Close()
		return gocv.Mat{}, false
	}
	return frame, true
}

// Skip advances the decoder without the decode cost of Read.
func (c *Capture) Skip(n int) {
	if n > 0 {
		c.capture.Grab(n)
	}
}

// FrameRate reports the video's frames per second.
func (c *Capture) FrameRate() float64 {
	return c.capture.Get(gocv.VideoCaptureFPS)
}

// TotalFrames reports the stream length in frames.
func (c *Capture) TotalFrames() int {
	return int(c.capture.Get(gocv.VideoCaptureFrameCount))
}

// PositionMS reports the current decode position in milliseconds.
func (c *Capture) PositionMS() float64 {
	return c.capture.Get(gocv.VideoCapturePosMsec)
}

// Close releases the decoder handle.
func (c *Capture) Close() error {
	return c.capture.Close()
}

// ToGray converts a decoded BGR frame to grayscale. The caller owns the
// returned mat.
func ToGray(frame gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)
	return gray
}

// LoadTemplateGray reads a template image from disk as grayscale.
func LoadTemplateGray(path string) (gocv.Mat, error) {
	tmpl := gocv.IMRead(path, gocv.IMReadGrayScale)
	if tmpl.Empty() {
		return gocv.Mat{}, fmt.Errorf("failed to read template image %s", path)
	}
	return tmpl, nil
}
