// Package chapters renders a finished event list as YouTube chapter markers,
// one "<timestamp> <batter name>" line per event.
//
// YouTube requires the first chapter to start at 00:00. When the first real
// event begins within the leading window the renderer rewrites its timestamp
// to zero; when it begins later, a synthetic "Game Time" chapter is inserted
// at zero instead so the real event keeps its own timestamp.
package chapters

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/lightsout-hb/batscan/internal/models"
)

// LeadingWindowMS is the cutoff deciding between rewriting the first event
// to zero and inserting a synthetic leading chapter.
const LeadingWindowMS = 10_000

// LeadingTitle names the synthetic chapter covering play before the first
// detected at-bat.
const LeadingTitle = "Game Time"

// Render assembles the chapter text for an ordered event list. An empty list
// renders as an empty string; detecting "no events" is the caller's job.
//
// The zero-start rule mutates the first element of events in place when its
// timestamp is at or below the leading window. This is the single sanctioned
// mutation of a scan's event records.
func Render(events []models.EventFrame) string {
	if len(events) == 0 {
		return ""
	}

	if events[0].Timestamp > LeadingWindowMS {
		lead := models.EventFrame{
			ID:         uuid.New().String(),
			Timestamp:  0,
			IsMatch:    true,
			IsNewEvent: true,
			Name:       LeadingTitle,
		}
		events = append([]models.EventFrame{lead}, events...)
	} else {
		events[0].Timestamp = 0
	}

	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, fmt.Sprintf("%s %s", e.Timestamp.Format(), e.Name))
	}
	return strings.Join(lines, "\n")
}

// Parse reads chapter text back into an event list. It accepts exactly the
// shape Render emits: one "<MM:SS or HH:MM:SS> <name>" line per chapter.
func Parse(text string) ([]models.EventFrame, error) {
	if strings.TrimSpace(text) == "" {
		return []models.EventFrame{}, nil
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	events := make([]models.EventFrame, 0, len(lines))
	for i, line := range lines {
		stamp, name, found := strings.Cut(line, " ")
		if !found {
			return nil, fmt.Errorf("line %d: expected \"<timestamp> <name>\", got %q", i+1, line)
		}
		ms, err := parseTimestamp(stamp)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		events = append(events, models.EventFrame{
			ID:         uuid.New().String(),
			Timestamp:  ms,
			IsMatch:    true,
			IsNewEvent: true,
			Name:       name,
		})
	}
	return events, nil
}

// parseTimestamp reads "MM:SS" or "HH:MM:SS" into a millisecond offset.
func parseTimestamp(s string) (models.Millis, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("malformed timestamp %q", s)
	}

	var total int
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("malformed timestamp %q", s)
		}
		total = total*60 + n
	}
	return models.NewMillis(float64(total) * 1000)
}
