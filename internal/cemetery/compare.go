package cemetery

import "math"

const (
	// TieThreshold is the score difference below which two images tie.
	TieThreshold = 0.05
	// confidenceFloor keeps the confidence denominator away from zero.
	confidenceFloor = 0.001
)

// Winner identifies the stronger image of a comparison.
type Winner string

const (
	WinnerA   Winner = "A"
	WinnerB   Winner = "B"
	WinnerTie Winner = "tie"
)

// Comparison is the verdict for two scores.
type Comparison struct {
	ScoreA            float64 `json:"scoreA"`
	ScoreB            float64 `json:"scoreB"`
	Winner            Winner  `json:"winner"`
	ConfidencePercent float64 `json:"confidencePercent"`
	Difference        float64 `json:"difference"`
}

// Compare reduces two scores to a verdict. A difference under TieThreshold is
// a tie with confidence 0; otherwise the higher score wins and confidence is
// the difference as a percentage of the winning score.
//
// Swapping the arguments swaps the winner label and leaves the confidence
// unchanged.
func Compare(scoreA, scoreB float64) Comparison {
	diff := math.Abs(scoreA - scoreB)
	c := Comparison{ScoreA: scoreA, ScoreB: scoreB, Difference: diff, Winner: WinnerTie}
	if diff < TieThreshold {
		return c
	}

	winning := scoreA
	c.Winner = WinnerA
	if scoreB > scoreA {
		winning = scoreB
		c.Winner = WinnerB
	}
	c.ConfidencePercent = diff / math.Max(winning, confidenceFloor) * 100
	return c
}
