package chapters

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lightsout-hb/batscan/internal/models"
)

func event(t *testing.T, ts float64, name string) models.EventFrame {
	t.Helper()
	return models.EventFrame{
		ID:         fmt.Sprintf("frame-%v", ts),
		Timestamp:  models.Millis(ts),
		MatchScore: 0.85,
		IsMatch:    true,
		IsNewEvent: true,
		Name:       name,
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render(nil); got != "" {
		t.Errorf("Render(nil) = %q, want empty string", got)
	}
	if got := Render([]models.EventFrame{}); got != "" {
		t.Errorf("Render(empty) = %q, want empty string", got)
	}
}

func TestRenderRewritesEarlyFirstEventToZero(t *testing.T) {
	events := []models.EventFrame{
		event(t, 5000, "Jane Doe #12"),
		event(t, 35_000, "Emma Martinez #7"),
	}

	got := Render(events)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "00:00 Jane Doe #12" {
		t.Errorf("first line = %q, want %q", lines[0], "00:00 Jane Doe #12")
	}
	if lines[1] != "00:35 Emma Martinez #7" {
		t.Errorf("second line = %q, want %q", lines[1], "00:35 Emma Martinez #7")
	}
	// The rewrite is destructive and in place.
	if events[0].Timestamp != 0 {
		t.Errorf("first event timestamp should be rewritten to 0, got %v", events[0].Timestamp)
	}
}

func TestRenderInsertsLeadingChapterForLateFirstEvent(t *testing.T) {
	events := []models.EventFrame{
		event(t, 15_000, "Jane Doe #12"),
	}

	got := Render(events)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "00:00 Game Time" {
		t.Errorf("leading line = %q, want %q", lines[0], "00:00 Game Time")
	}
	if lines[1] != "00:15 Jane Doe #12" {
		t.Errorf("real event line = %q, want %q", lines[1], "00:15 Jane Doe #12")
	}
	// The real event keeps its own timestamp.
	if events[0].Timestamp != 15_000 {
		t.Errorf("event timestamp mutated to %v, want 15000", events[0].Timestamp)
	}
}

func TestRenderBoundaryAtLeadingWindow(t *testing.T) {
	// Exactly 10s is not "> 10s": the event is rewritten, not prefixed.
	events := []models.EventFrame{event(t, LeadingWindowMS, "Jane Doe #12")}
	got := Render(events)
	if got != "00:00 Jane Doe #12" {
		t.Errorf("Render = %q, want %q", got, "00:00 Jane Doe #12")
	}
}

func TestRenderHourLongGame(t *testing.T) {
	events := []models.EventFrame{
		event(t, 2000, "Jane Doe #12"),
		event(t, 5_274_832, "Lucy Del Toro #21"),
	}
	got := Render(events)
	lines := strings.Split(got, "\n")
	if lines[1] != "01:27:54 Lucy Del Toro #21" {
		t.Errorf("line = %q, want %q", lines[1], "01:27:54 Lucy Del Toro #21")
	}
}

func TestRenderParseRoundTrip(t *testing.T) {
	events := []models.EventFrame{
		event(t, 15_000, "Jane Doe #12"),
		event(t, 95_000, "Emma Martinez #7"),
		event(t, 185_000, ""), // unknown batter renders as bare timestamp
	}

	parsed, err := Parse(Render(events))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Synthetic leading chapter plus the three real events.
	if len(parsed) != 4 {
		t.Fatalf("expected 4 chapters after round trip, got %d", len(parsed))
	}
	wantNames := []string{LeadingTitle, "Jane Doe #12", "Emma Martinez #7", ""}
	for i, want := range wantNames {
		if parsed[i].Name != want {
			t.Errorf("chapter %d name = %q, want %q", i, parsed[i].Name, want)
		}
	}
	for i := 1; i < len(parsed); i++ {
		if parsed[i].Timestamp < parsed[i-1].Timestamp {
			t.Errorf("chapters out of order at %d: %v after %v", i, parsed[i].Timestamp, parsed[i-1].Timestamp)
		}
	}
}

func TestParseRejectsMalformedLines(t *testing.T) {
	for _, text := range []string{
		"not-a-timestamp Jane",
		"1:2:3:4 Jane",
		"00:-1 Jane",
		"00:00",
	} {
		if _, err := Parse(text); err == nil {
			t.Errorf("Parse(%q) should fail", text)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	events, err := Parse("")
	if err != nil {
		t.Fatalf("Parse(\"\") failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}
