package cemetery

import "fmt"

// Feature names. Every successful analysis fills exactly these six entries.
const (
	FeatureRegularity            = "regularity"
	FeatureTextureUniformity     = "textureUniformity"
	FeatureStructuralPeriodicity = "structuralPeriodicity"
	FeatureRectangularDensity    = "rectangularDensity"
	FeatureGreenPercentage       = "greenPercentage"
	FeatureColorUniformity       = "colorUniformity"
)

const numFeatures = 6

// featureNames fixes the canonical order used for weights and reporting.
var featureNames = [numFeatures]string{
	FeatureRegularity,
	FeatureTextureUniformity,
	FeatureStructuralPeriodicity,
	FeatureRectangularDensity,
	FeatureGreenPercentage,
	FeatureColorUniformity,
}

// FeatureNames returns the six feature names in canonical order.
func FeatureNames() []string {
	out := make([]string, numFeatures)
	copy(out, featureNames[:])
	return out
}

func featureIndex(name string) (int, bool) {
	for i, n := range featureNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// FeatureVector maps feature names to scores.
type FeatureVector map[string]float64

// Complete reports an error unless fv holds exactly the six feature names.
func (fv FeatureVector) Complete() error {
	if len(fv) != numFeatures {
		return fmt.Errorf("feature vector has %d entries, want %d", len(fv), numFeatures)
	}
	for _, name := range featureNames {
		if _, ok := fv[name]; !ok {
			return fmt.Errorf("feature vector is missing %q", name)
		}
	}
	return nil
}
