package cemetery

import (
	"fmt"
	"math"

	apperrors "github.com/ironsheep/cemetery-detector/internal/errors"
)

// weightTolerance bounds how far a weight table may drift from summing to 1.
const weightTolerance = 1e-9

// WeightTable holds one weight per feature. The zero value is unusable; build
// tables with DefaultWeights or NewWeightTable. Tables are values and are
// never modified after construction.
type WeightTable struct {
	w [numFeatures]float64
}

// DefaultWeights returns the fixed combiner weights:
// regularity 0.25, textureUniformity 0.20, structuralPeriodicity 0.20,
// rectangularDensity 0.15, greenPercentage 0.10, colorUniformity 0.10.
func DefaultWeights() WeightTable {
	return WeightTable{w: [numFeatures]float64{0.25, 0.20, 0.20, 0.15, 0.10, 0.10}}
}

// NewWeightTable builds a table from a name->weight map. Every feature must be
// present, no unknown names are allowed, weights must be non-negative and
// they must sum to 1 within 1e-9.
func NewWeightTable(weights map[string]float64) (WeightTable, error) {
	var t WeightTable
	var seen [numFeatures]bool
	for name, w := range weights {
		i, ok := featureIndex(name)
		if !ok {
			return WeightTable{}, apperrors.NewValidationError(fmt.Sprintf("unknown feature %q in weight table", name), nil)
		}
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return WeightTable{}, apperrors.NewValidationError(fmt.Sprintf("invalid weight %v for %q", w, name), nil)
		}
		t.w[i] = w
		seen[i] = true
	}
	for i, ok := range seen {
		if !ok {
			return WeightTable{}, apperrors.NewValidationError(fmt.Sprintf("weight table is missing %q", featureNames[i]), nil)
		}
	}
	if sum := t.Sum(); math.Abs(sum-1) > weightTolerance {
		return WeightTable{}, apperrors.NewValidationError(fmt.Sprintf("weights sum to %v, want 1", sum), nil)
	}
	return t, nil
}

// Weight returns the weight of the named feature, or 0 for unknown names.
func (t WeightTable) Weight(name string) float64 {
	if i, ok := featureIndex(name); ok {
		return t.w[i]
	}
	return 0
}

// Sum returns the total of all weights.
func (t WeightTable) Sum() float64 {
	var s float64
	for _, w := range t.w {
		s += w
	}
	return s
}

// Contributions returns each feature's weighted share of the score. The
// shares sum to Combine(fv).
func (t WeightTable) Contributions(fv FeatureVector) map[string]float64 {
	out := make(map[string]float64, numFeatures)
	for _, name := range featureNames {
		out[name] = t.Weight(name) * fv[name]
	}
	return out
}

// Combine returns the weighted dot product of fv with the table. Missing
// features count as 0 and unknown entries are ignored; there is no clamping
// or re-normalization.
func (t WeightTable) Combine(fv FeatureVector) float64 {
	var score float64
	for i, name := range featureNames {
		score += t.w[i] * fv[name]
	}
	return score
}
