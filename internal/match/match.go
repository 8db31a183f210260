// Package match scores video frames against a reference template image and
// decides whether the at-bat overlay graphic is present.
//
// A match decision is the conjunction of two tests over the OpenCV score
// surface: the method's score threshold, and a spatial gate restricting the
// match to the bottom-left quadrant of the frame (the overlay only ever
// appears there, which suppresses false positives from similar content
// elsewhere in frame).
package match

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"github.com/lightsout-hb/batscan/internal/logger"
	"github.com/lightsout-hb/batscan/internal/models"
)

// Prefer selects which extreme of the score surface is the optimal match.
type Prefer string

const (
	// PreferMin methods (squared difference) score best at the minimum.
	PreferMin Prefer = "min"
	// PreferMax methods (correlation) score best at the maximum.
	PreferMax Prefer = "max"
)

// MethodDefault holds the per-method decision configuration. Methods without
// a configured threshold can produce a score surface but cannot make a match
// decision on their own.
type MethodDefault struct {
	Threshold *float64
	Prefer    Prefer
	Mode      gocv.TemplateMatchMode
}

func threshold(v float64) *float64 { return &v }

// methodDefaults maps OpenCV template match method names to their decision
// defaults. Only TM_CCOEFF_NORMED has a calibrated threshold; the others
// require an explicit override.
var methodDefaults = map[string]MethodDefault{
	"TM_SQDIFF":        {Threshold: nil, Prefer: PreferMin, Mode: gocv.TmSqdiff},
	"TM_SQDIFF_NORMED": {Threshold: nil, Prefer: PreferMin, Mode: gocv.TmSqdiffNormed},
	"TM_CCORR":         {Threshold: nil, Prefer: PreferMax, Mode: gocv.TmCcorr},
	"TM_CCORR_NORMED":  {Threshold: nil, Prefer: PreferMax, Mode: gocv.TmCcorrNormed},
	"TM_CCOEFF":        {Threshold: nil, Prefer: PreferMax, Mode: gocv.TmCcoeff},
	"TM_CCOEFF_NORMED": {Threshold: threshold(0.43), Prefer: PreferMax, Mode: gocv.TmCcoeffNormed},
}

// DefaultMethod is the match method used when none is configured.
const DefaultMethod = "TM_CCOEFF_NORMED"

// ErrUnknownMethod is returned for method names absent from the defaults table.
var ErrUnknownMethod = errors.New("unknown template match method")

// ErrNoThreshold is returned when a method has no configured threshold and no
// override was supplied. Unthresholded methods are rejected at construction
// time rather than evaluation time, so a misconfigured scan fails before any
// frame is processed.
var ErrNoThreshold = errors.New("method has no configured threshold")

// Lookup returns the decision defaults for a method name.
func Lookup(method string) (MethodDefault, error) {
	def, ok := methodDefaults[method]
	if !ok {
		return MethodDefault{}, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	return def, nil
}

// ResolveThreshold returns the effective threshold for a method, preferring
// an explicit override over the method default.
func ResolveThreshold(method string, override *float64) (float64, error) {
	def, err := Lookup(method)
	if err != nil {
		return 0, err
	}
	if override != nil {
		return *override, nil
	}
	if def.Threshold == nil {
		return 0, fmt.Errorf("%w: %q requires an explicit threshold", ErrNoThreshold, method)
	}
	return *def.Threshold, nil
}

// decide interprets the extremes of a score surface for the given preference
// and threshold, yielding the relevant score, whether it clears the
// threshold, and the best-match location.
func decide(prefer Prefer, minVal, maxVal float64, minLoc, maxLoc models.Point, thresh float64) (float64, bool, models.Point) {
	switch prefer {
	case PreferMin:
		return minVal, minVal <= thresh, minLoc
	default:
		return maxVal, maxVal >= thresh, maxLoc
	}
}

// inQuadrant applies the spatial gate: the match's bottom-left corner must
// fall strictly inside the bottom-left quadrant of the frame.
func inQuadrant(topLeft models.Point, tmpl, frame models.Size) bool {
	return topLeft.BottomLeft(tmpl).InBottomLeftQuadrant(frame)
}

// Scanner evaluates one frame/template pair. The score surface is computed
// once and memoized for the life of the scanner, since the threshold test
// and the quadrant gate both consume it. A Scanner must be Closed to release
// the surface.
type Scanner struct {
	frame    gocv.Mat
	template gocv.Mat
	method   string
	def      MethodDefault
	thresh   float64

	surface  gocv.Mat
	surfaced bool
}

// NewScanner validates the inputs and prepares an evaluation. Both mats must
// be non-empty grayscale images, the template must fit inside the frame, and
// the method must resolve to a usable threshold (see ResolveThreshold).
func NewScanner(frame, template gocv.Mat, method string, override *float64) (*Scanner, error) {
	if frame.Empty() {
		return nil, errors.New("frame image is empty")
	}
	if template.Empty() {
		return nil, errors.New("template image is empty")
	}
	if template.Rows() > frame.Rows() || template.Cols() > frame.Cols() {
		return nil, fmt.Errorf("template %dx%d exceeds frame %dx%d",
			template.Cols(), template.Rows(), frame.Cols(), frame.Rows())
	}

	def, err := Lookup(method)
	if err != nil {
		return nil, err
	}
	thresh, err := ResolveThreshold(method, override)
	if err != nil {
		return nil, err
	}

	return &Scanner{
		frame:    frame,
		template: template,
		method:   method,
		def:      def,
		thresh:   thresh,
	}, nil
}

// match returns the memoized score surface, computing it on first use.
func (s *Scanner) match() gocv.Mat {
	if !s.surfaced {
		s.surface = gocv.NewMat()
		mask := gocv.NewMat()
		defer mask.Close()
		gocv.MatchTemplate(s.frame, s.template, &s.surface, s.def.Mode, mask)
		s.surfaced = true
	}
	return s.surface
}

// Result extracts the best score and location from the score surface and
// applies the threshold test and the quadrant gate.
func (s *Scanner) Result() models.MatchResult {
	minVal, maxVal, minLoc, maxLoc := gocv.MinMaxLoc(s.match())

	score, meetsThreshold, topLeft := decide(
		s.def.Prefer,
		float64(minVal), float64(maxVal),
		models.Point{X: minLoc.X, Y: minLoc.Y},
		models.Point{X: maxLoc.X, Y: maxLoc.Y},
		s.thresh,
	)

	tmplSize := models.Size{Height: s.template.Rows(), Width: s.template.Cols()}
	frameSize := models.Size{Height: s.frame.Rows(), Width: s.frame.Cols()}
	gated := inQuadrant(topLeft, tmplSize, frameSize)

	isMatch := meetsThreshold && gated
	logger.Debug("match %s: score=%.4f threshold=%.4f gated=%v is_match=%v",
		s.method, score, s.thresh, gated, isMatch)

	return models.MatchResult{IsMatch: isMatch, Score: score, TopLeft: topLeft}
}

// Close releases the memoized score surface.
func (s *Scanner) Close() error {
	if s.surfaced {
		s.surfaced = false
		return s.surface.Close()
	}
	return nil
}
