package models

import (
	"fmt"
	"time"
)

// Millis is a non-negative video offset in milliseconds.
type Millis float64

// NewMillis validates and constructs a Millis value. Negative offsets are a
// fatal input error, never coerced.
func NewMillis(v float64) (Millis, error) {
	if v < 0 {
		return 0, fmt.Errorf("millisecond offset cannot be %v, it must be a non-negative number", v)
	}
	return Millis(v), nil
}

// Duration converts the offset to a time.Duration.
func (m Millis) Duration() time.Duration {
	return time.Duration(float64(m) * float64(time.Millisecond))
}

// Format renders the offset as a YouTube chapter timestamp, truncated to
// whole seconds: "MM:SS" below one hour, "HH:MM:SS" from one hour on.
func (m Millis) Format() string {
	d := m.Duration()

	hours := int(d / time.Hour)
	minutes := int(d/time.Minute) % 60
	seconds := int(d/time.Second) % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// String implements fmt.Stringer using the chapter timestamp format.
func (m Millis) String() string {
	return m.Format()
}
