package track

import (
	"testing"

	"github.com/lightsout-hb/batscan/internal/models"
)

// step is one sampled frame fed to the tracker.
type step struct {
	ts      float64
	isMatch bool
	want    bool
}

func runSteps(t *testing.T, tr *Tracker, steps []step) {
	t.Helper()
	for i, s := range steps {
		if got := tr.Record(models.Millis(s.ts), s.isMatch); got != s.want {
			t.Errorf("step %d (ts=%v match=%v): Record = %v, want %v", i, s.ts, s.isMatch, got, s.want)
		}
	}
}

func TestFirstMatchStartsEvent(t *testing.T) {
	runSteps(t, New(DefaultDebounceMS), []step{
		{0, true, true},
	})
}

func TestContiguousRunIsOneEvent(t *testing.T) {
	// Matches at t=0,1,2 collapse into exactly one event at t=0.
	runSteps(t, New(DefaultDebounceMS), []step{
		{0, true, true},
		{1, true, false},
		{2, true, false},
	})
}

func TestSecondEventAfterDebounceGap(t *testing.T) {
	runSteps(t, New(DefaultDebounceMS), []step{
		{0, true, true},
		{1, true, false},
		{2, true, false},
		{500, false, false},
		{2500, true, true}, // 2500-2 > 2000
	})
}

func TestRisingEdgeInsideDebounceWindowIgnored(t *testing.T) {
	runSteps(t, New(DefaultDebounceMS), []step{
		{0, true, true},
		{1, true, false},
		{2, true, false},
		{700, false, false},
		{1500, true, false}, // 1500-2 < 2000: same at-bat, dropped frame
	})
}

func TestGapExactlyAtDebounceRejected(t *testing.T) {
	// The gap must strictly exceed the debounce window.
	runSteps(t, New(DefaultDebounceMS), []step{
		{0, true, true},
		{300, false, false},
		{2000, true, false},
	})
}

func TestNonMatchingFramesNeverStartEvents(t *testing.T) {
	runSteps(t, New(DefaultDebounceMS), []step{
		{0, false, false},
		{300, false, false},
		{600, false, false},
	})
}

func TestDebounceCountsFromLastMatchNotEventStart(t *testing.T) {
	// A long overlay run pushes the debounce anchor forward: the gap is
	// measured from the final matching frame, not the event's first frame.
	runSteps(t, New(DefaultDebounceMS), []step{
		{0, true, true},
		{1000, true, false},
		{3000, true, false}, // still the same run, no rising edge
		{4000, false, false},
		{4900, true, false}, // 4900-3000 < 2000
		{5000, true, false},
		{5200, false, false},
		{7300, true, true}, // 7300-5000 > 2000
	})
}

func TestCustomDebounce(t *testing.T) {
	runSteps(t, New(500), []step{
		{0, true, true},
		{200, false, false},
		{600, true, true}, // 600-0 > 500
	})
}

func TestZeroDebounceFallsBackToDefault(t *testing.T) {
	tr := New(0)
	if tr.debounce != models.Millis(DefaultDebounceMS) {
		t.Errorf("debounce = %v, want %v", tr.debounce, DefaultDebounceMS)
	}
}
