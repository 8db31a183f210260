// Package track folds the ordered stream of per-frame match decisions into
// new-batter events.
//
// The overlay graphic typically stays on screen across several consecutive
// sampled frames, so one real at-bat produces a run of matching frames. A
// frame starts a new event only on a rising edge (it matches, the previous
// sampled frame did not), and only when the gap since the most recent
// matching frame exceeds a debounce threshold. The rising edge collapses
// each run into one event; the debounce tolerates brief match dropouts
// (a missed frame mid-overlay) without double-counting the at-bat.
package track

import (
	"github.com/lightsout-hb/batscan/internal/logger"
	"github.com/lightsout-hb/batscan/internal/models"
)

// DefaultDebounceMS is the minimum gap between accepted events.
const DefaultDebounceMS = 2000

// Tracker carries the O(1) fold state: the previous frame's match flag and
// the latest matching timestamp seen so far. Frames must be recorded in
// increasing timestamp order; the debounce and rising-edge decisions depend
// on that total order.
type Tracker struct {
	debounce models.Millis

	prevIsMatch bool
	hasMatch    bool
	lastMatch   models.Millis
}

// New creates a Tracker with the given debounce window in milliseconds.
// A non-positive debounce falls back to DefaultDebounceMS.
func New(debounceMS float64) *Tracker {
	if debounceMS <= 0 {
		debounceMS = DefaultDebounceMS
	}
	return &Tracker{debounce: models.Millis(debounceMS)}
}

// Record consumes one sampled frame and reports whether it starts a new
// event. The decision is made against the state prior to this frame; the
// frame then updates the cursor regardless of the outcome.
func (t *Tracker) Record(ts models.Millis, isMatch bool) bool {
	risingEdge := isMatch && !t.prevIsMatch

	newEvent := risingEdge
	if risingEdge && t.hasMatch {
		newEvent = ts-t.lastMatch > t.debounce
		if !newEvent {
			logger.Debug("track: rising edge at %s inside debounce window (last match %s)",
				ts, t.lastMatch)
		}
	}

	t.prevIsMatch = isMatch
	if isMatch {
		// Matching the reference semantics: the latest timestamp among all
		// matching frames, which for in-order input is simply this one.
		if !t.hasMatch || ts > t.lastMatch {
			t.lastMatch = ts
		}
		t.hasMatch = true
	}

	return newEvent
}
