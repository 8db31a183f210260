// Package sample decides the frame sampling cadence for a scan: given a
// video's frame rate and a desired number of analyzed frames per second, it
// yields the stride between analyzed frames.
package sample

import (
	"errors"
	"fmt"
)

// ErrDegenerate is returned when the requested sampling rate exceeds the
// video frame rate, leaving no valid stride. Using a zero stride as a
// modulus would divide by zero, so callers must treat this as a
// configuration error before entering the frame loop.
var ErrDegenerate = errors.New("sampling rate exceeds frame rate")

// Interval returns the number of frames to advance between analyzed frames,
// the integer floor of frameRate/perSecond. A stride of 0 is reported
// together with ErrDegenerate.
func Interval(frameRate float64, perSecond int) (int, error) {
	if frameRate <= 0 {
		return 0, fmt.Errorf("frame rate must be positive, got %v", frameRate)
	}
	if perSecond <= 0 {
		return 0, fmt.Errorf("frames per second must be positive, got %d", perSecond)
	}

	interval := int(frameRate / float64(perSecond))
	if interval == 0 {
		return 0, fmt.Errorf("%w: %d/s requested from a %v fps video", ErrDegenerate, perSecond, frameRate)
	}
	return interval, nil
}
