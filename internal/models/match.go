package models

// MatchResult holds the outcome of one template match evaluation against one
// frame. IsMatch is the conjunction of the score threshold test and the
// bottom-left quadrant gate.
type MatchResult struct {
	IsMatch bool    `json:"is_match"`
	Score   float64 `json:"score"`
	TopLeft Point   `json:"top_left"`
}
