// Package models defines the core domain entities for the batscan application.
// These models represent pixel geometry, video timestamps, template match
// results, and the per-frame records produced by a scan.
//
// Terminology:
//   - Batter: one appearance of the at-bat overlay graphic, demarcating a new at-bat.
//   - Chapter: a single "timestamp + batter name" output line in the rendered result.
package models

// Point is a 2D pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size holds pixel dimensions of an image or frame.
type Size struct {
	Height int `json:"height"`
	Width  int `json:"width"`
}

// BottomLeft returns the bottom-left corner of a region whose top-left corner
// is p and whose extent is sz.
func (p Point) BottomLeft(sz Size) Point {
	return Point{X: p.X, Y: p.Y + sz.Height}
}

// InBottomLeftQuadrant reports whether p lies strictly inside the bottom-left
// quadrant of a frame of the given size. Points exactly on either midline are
// excluded.
func (p Point) InBottomLeftQuadrant(frame Size) bool {
	return float64(p.X) < 0.5*float64(frame.Width) &&
		float64(p.Y) > 0.5*float64(frame.Height)
}
