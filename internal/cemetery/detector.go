package cemetery

import (
	apperrors "github.com/ironsheep/cemetery-detector/internal/errors"
	"github.com/ironsheep/cemetery-detector/internal/imaging"
)

// Sample is the per-call input every detector reads: the decoded raster and
// its intensity plane. Neither is modified by detectors.
type Sample struct {
	Raster    *imaging.Raster
	Intensity *imaging.Plane
}

// NewSample derives the intensity plane for r. Zero-area rasters are rejected
// with a computation error.
func NewSample(r *imaging.Raster) (*Sample, error) {
	if r == nil || r.Empty() {
		return nil, apperrors.NewComputationError("sample", "image has zero area", nil)
	}
	return &Sample{Raster: r, Intensity: imaging.Intensity(r)}, nil
}

// Area returns the pixel count of the sample.
func (s *Sample) Area() int {
	return s.Raster.Area()
}

// Count keys reported in Measurement.Counts.
const (
	CountRectangles      = "rectangles"
	CountHorizontalLines = "horizontalLines"
	CountVerticalLines   = "verticalLines"
	CountGreenPixels     = "greenPixels"
)

// Measurement is what a detector returns: the feature entries it owns and
// any raw counts worth reporting alongside them.
type Measurement struct {
	Features FeatureVector
	Counts   map[string]int
}

// Detector computes one or more feature entries from a sample.
//
// Features lists exactly the entries Detect fills. An analyzer never lets two
// detectors own the same entry.
type Detector interface {
	Name() string
	Features() []string
	Detect(s *Sample) (Measurement, error)
}

func measurement(features FeatureVector) Measurement {
	return Measurement{Features: features, Counts: map[string]int{}}
}

// computationError wraps a toolkit failure with the detector that hit it.
func computationError(detector string, err error) error {
	return apperrors.NewComputationError(detector, "toolkit operation failed", err)
}
