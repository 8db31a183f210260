// Package scan runs the detection pipeline over a video: sample frames at a
// reduced cadence, score each sampled frame against the overlay template,
// fold the match stream into new-batter events, and OCR the batter name out
// of each confirmed event frame.
//
// The frame loop is strictly sequential. Frames are evaluated in recording
// order because the rising-edge/debounce state and the chapter renderer's
// zero-start rule both depend on it; callbacks fire synchronously from the
// loop, once per sampled frame, before the next frame is touched.
package scan

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/lightsout-hb/batscan/internal/logger"
	"github.com/lightsout-hb/batscan/internal/models"
	"github.com/lightsout-hb/batscan/internal/ocr"
	"github.com/lightsout-hb/batscan/internal/sample"
	"github.com/lightsout-hb/batscan/internal/track"
	"github.com/lightsout-hb/batscan/internal/video"
)

// DefaultResolution is the number of frames analyzed per second of video.
const DefaultResolution = 3

// Matcher scores a grayscale frame against the overlay template.
type Matcher interface {
	Evaluate(frame gocv.Mat) (models.MatchResult, error)
	TemplateSize() models.Size
}

// Callbacks are the per-frame outward signals of a scan. Both are optional
// and both fire synchronously from the scan loop.
type Callbacks struct {
	// OnEvent fires once per confirmed new batter.
	OnEvent func(models.EventFrame)
	// OnProgress fires after every sampled frame with the number of video
	// frames passed so far and the stream total (0 when unknown).
	OnProgress func(processed, total int)
}

// Options tune the scan. Zero values select the defaults.
type Options struct {
	Resolution   int     // sampled frames per second of video
	DebounceMS   float64 // minimum gap between accepted events
	OCRThreshold float64 // confidence floor for OCR tokens
}

func (o Options) withDefaults() Options {
	if o.Resolution == 0 {
		o.Resolution = DefaultResolution
	}
	if o.DebounceMS == 0 {
		o.DebounceMS = track.DefaultDebounceMS
	}
	if o.OCRThreshold == 0 {
		o.OCRThreshold = ocr.DefaultConfidenceThreshold
	}
	return o
}

// Scanner owns one scan over one video. It is not safe for concurrent use;
// run at most one scan per source.
type Scanner struct {
	source    video.Source
	matcher   Matcher
	reader    ocr.Reader // nil leaves event names empty ("unknown batter")
	opts      Options
	callbacks Callbacks

	frames []models.EventFrame
}

// New validates the configuration and prepares a scan.
func New(source video.Source, matcher Matcher, reader ocr.Reader, opts Options, callbacks Callbacks) (*Scanner, error) {
	if source == nil {
		return nil, fmt.Errorf("video source is required")
	}
	if matcher == nil {
		return nil, fmt.Errorf("template matcher is required")
	}
	opts = opts.withDefaults()
	if opts.Resolution < 0 {
		return nil, fmt.Errorf("resolution must be positive, got %d", opts.Resolution)
	}
	return &Scanner{
		source:    source,
		matcher:   matcher,
		reader:    reader,
		opts:      opts,
		callbacks: callbacks,
	}, nil
}

// Run executes the scan to end of stream or ctx cancellation. Backend
// failures (decode, match, OCR) abort the scan; finding no events is a
// valid, empty outcome.
func (s *Scanner) Run(ctx context.Context) error {
	interval, err := sample.Interval(s.source.FrameRate(), s.opts.Resolution)
	if err != nil {
		return fmt.Errorf("cannot sample video: %w", err)
	}
	total := s.source.TotalFrames()
	tracker := track.New(s.opts.DebounceMS)
	logger.Info("scan: interval=%d frames, total=%d frames, debounce=%.0fms",
		interval, total, s.opts.DebounceMS)

	processed := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.source.Skip(interval - 1)
		frame, ok := s.source.Read()
		if !ok {
			break
		}
		processed += interval

		record, err := s.processFrame(frame, tracker)
		_ = frame.Close()
		if err != nil {
			return err
		}

		s.frames = append(s.frames, record)
		if record.IsNewEvent {
			logger.Info("scan: new batter %q at %s (score %.3f)",
				record.Name, record.Timestamp, record.MatchScore)
			if s.callbacks.OnEvent != nil {
				s.callbacks.OnEvent(record)
			}
		}
		if s.callbacks.OnProgress != nil {
			s.callbacks.OnProgress(processed, total)
		}
	}

	logger.Info("scan: finished, %d batters in %d sampled frames", s.Count(), len(s.frames))
	return nil
}

// processFrame evaluates one decoded frame and folds it into the event
// stream.
func (s *Scanner) processFrame(frame gocv.Mat, tracker *track.Tracker) (models.EventFrame, error) {
	ts, err := models.NewMillis(s.source.PositionMS())
	if err != nil {
		return models.EventFrame{}, fmt.Errorf("invalid frame timestamp: %w", err)
	}

	gray := video.ToGray(frame)
	defer gray.Close()

	res, err := s.matcher.Evaluate(gray)
	if err != nil {
		return models.EventFrame{}, fmt.Errorf("template match failed at %s: %w", ts, err)
	}

	isNew := tracker.Record(ts, res.IsMatch)

	name := ""
	if isNew && s.reader != nil {
		name, err = s.readName(gray, res.TopLeft)
		if err != nil {
			return models.EventFrame{}, fmt.Errorf("name extraction failed at %s: %w", ts, err)
		}
	}

	return models.EventFrame{
		ID:         uuid.New().String(),
		Timestamp:  ts,
		MatchScore: res.Score,
		IsMatch:    res.IsMatch,
		IsNewEvent: isNew,
		Name:       name,
	}, nil
}

// readName crops the overlay's name region out of the frame and runs it
// through the OCR reader.
func (s *Scanner) readName(gray gocv.Mat, topLeft models.Point) (string, error) {
	frameSize := models.Size{Height: gray.Rows(), Width: gray.Cols()}
	rect := ocr.NameRegion(topLeft, s.matcher.TemplateSize(), frameSize)
	if rect.Empty() {
		return "", nil
	}

	region := gray.Region(rect)
	defer region.Close()

	results, err := s.reader.Read(region)
	if err != nil {
		return "", err
	}
	return ocr.ExtractName(results, s.opts.OCRThreshold), nil
}

// Frames returns every sampled frame record in timestamp order.
func (s *Scanner) Frames() []models.EventFrame {
	return s.frames
}

// Events returns the new-event subsequence, the input to chapter rendering.
func (s *Scanner) Events() []models.EventFrame {
	return models.NewEvents(s.frames)
}

// Count returns the number of batters found.
func (s *Scanner) Count() int {
	return len(s.Events())
}
