package cemetery

// Likelihood is a coarse reading of a score.
type Likelihood string

const (
	LikelihoodHigh   Likelihood = "high"
	LikelihoodMedium Likelihood = "medium"
	LikelihoodLow    Likelihood = "low"
)

// Band boundaries, inclusive at the lower end.
const (
	HighThreshold   = 0.6
	MediumThreshold = 0.3
)

// Classify maps a score to its likelihood band.
func Classify(score float64) Likelihood {
	switch {
	case score >= HighThreshold:
		return LikelihoodHigh
	case score >= MediumThreshold:
		return LikelihoodMedium
	default:
		return LikelihoodLow
	}
}
