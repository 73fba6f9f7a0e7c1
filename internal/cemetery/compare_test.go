package cemetery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name       string
		a, b       float64
		winner     Winner
		confidence float64
	}{
		{"identical", 0.42, 0.42, WinnerTie, 0},
		{"just under tie threshold", 0.50, 0.46, WinnerTie, 0},
		{"A wins", 0.60, 0.30, WinnerA, 50},
		{"B wins", 0.20, 0.80, WinnerB, 75},
		{"floor keeps denominator positive", 0.0, -0.1, WinnerA, 10000},
		{"both zero", 0, 0, WinnerTie, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Compare(tt.a, tt.b)
			assert.Equal(t, tt.winner, c.Winner)
			assert.InDelta(t, tt.confidence, c.ConfidencePercent, 1e-9)
			assert.Equal(t, tt.a, c.ScoreA)
			assert.Equal(t, tt.b, c.ScoreB)
		})
	}
}

func TestCompare_Symmetric(t *testing.T) {
	scores := []float64{0, 0.01, 0.049, 0.05, 0.2, 0.33, 0.5, 0.75, 1}
	for _, a := range scores {
		for _, b := range scores {
			ab := Compare(a, b)
			ba := Compare(b, a)
			mirrored := map[Winner]Winner{WinnerA: WinnerB, WinnerB: WinnerA, WinnerTie: WinnerTie}
			assert.Equal(t, mirrored[ab.Winner], ba.Winner, "compare(%v, %v)", a, b)
			assert.Equal(t, ab.ConfidencePercent, ba.ConfidencePercent)
			assert.Equal(t, ab.Difference, ba.Difference)
		}
	}
}

func TestCompare_TieBoundary(t *testing.T) {
	// A difference of exactly TieThreshold is decisive.
	c := Compare(0.1, 0.05)
	assert.Equal(t, TieThreshold, c.Difference)
	assert.Equal(t, WinnerA, c.Winner)
	assert.InDelta(t, 50, c.ConfidencePercent, 1e-9)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		score float64
		want  Likelihood
	}{
		{0, LikelihoodLow},
		{0.29, LikelihoodLow},
		{0.3, LikelihoodMedium},
		{0.59, LikelihoodMedium},
		{0.6, LikelihoodHigh},
		{1, LikelihoodHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.score), "score %v", tt.score)
	}
}
