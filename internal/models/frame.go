package models

import "errors"

// EventFrame is one record per sampled frame. Records are appended in
// timestamp order during a scan and never mutated afterwards, with one
// exception: the chapter renderer may rewrite the first record's timestamp
// to zero when assembling output.
type EventFrame struct {
	ID         string  `json:"id"`
	Timestamp  Millis  `json:"timestamp_ms"`
	MatchScore float64 `json:"match_score"`
	IsMatch    bool    `json:"is_match"`
	IsNewEvent bool    `json:"is_new_event"`
	Name       string  `json:"name,omitempty"` // empty means "unknown batter"
}

// Validate checks that the frame record is internally consistent.
func (f *EventFrame) Validate() error {
	if f.ID == "" {
		return errors.New("event frame ID must not be empty")
	}
	if f.Timestamp < 0 {
		return errors.New("timestamp must not be negative")
	}
	if f.IsNewEvent && !f.IsMatch {
		return errors.New("a new-event frame must also be a matching frame")
	}
	if f.Name != "" && !f.IsNewEvent {
		return errors.New("only new-event frames carry a batter name")
	}
	return nil
}

// NewEvents returns the filtered subsequence of frames marking new events,
// preserving timestamp order. This is the artifact the chapter renderer
// consumes.
func NewEvents(frames []EventFrame) []EventFrame {
	events := make([]EventFrame, 0)
	for _, f := range frames {
		if f.IsNewEvent {
			events = append(events, f)
		}
	}
	return events
}
