package cemetery

import (
	"errors"

	"github.com/ironsheep/cemetery-detector/internal/detection"
	"github.com/ironsheep/cemetery-detector/internal/imaging"
)

// BlurFilter smooths an intensity plane with a size x size Gaussian kernel.
type BlurFilter interface {
	Blur(p *imaging.Plane, size int) (*imaging.Plane, error)
}

// EdgeDetector produces a binary (0/255) edge map with dual-threshold
// hysteresis.
type EdgeDetector interface {
	Edges(p *imaging.Plane, low, high float64) (*imaging.Plane, error)
}

// MorphologicalOpen opens a plane with a kw x kh rectangular element.
type MorphologicalOpen interface {
	Open(p *imaging.Plane, kw, kh int) (*imaging.Plane, error)
}

// Binarizer thresholds a plane against its Gaussian-weighted local mean.
type Binarizer interface {
	AdaptiveThreshold(p *imaging.Plane, blockSize int, offset float64) (*imaging.Plane, error)
}

// ContourExtractor traces the outer boundaries of outermost foreground regions.
type ContourExtractor interface {
	ExternalContours(mask *imaging.Plane) ([]detection.Contour, error)
}

// LineDetector finds straight lines in an edge map.
type LineDetector interface {
	Lines(edges *imaging.Plane, rhoStep, thetaStep float64, threshold int) ([]detection.Line, error)
}

// FrequencyTransform computes the centred log-magnitude spectrum of a plane.
type FrequencyTransform interface {
	MagnitudeSpectrum(p *imaging.Plane) (*imaging.Plane, error)
}

// Toolkit bundles the primitives the detectors are built from, so a whole
// analysis can be rebound to a different numeric backend.
type Toolkit struct {
	Blur      BlurFilter
	Edges     EdgeDetector
	Open      MorphologicalOpen
	Binarize  Binarizer
	Contours  ContourExtractor
	Lines     LineDetector
	Frequency FrequencyTransform
}

// Validate reports an error if any capability is missing.
func (t Toolkit) Validate() error {
	var errs []error
	if t.Blur == nil {
		errs = append(errs, errors.New("toolkit has no BlurFilter"))
	}
	if t.Edges == nil {
		errs = append(errs, errors.New("toolkit has no EdgeDetector"))
	}
	if t.Open == nil {
		errs = append(errs, errors.New("toolkit has no MorphologicalOpen"))
	}
	if t.Binarize == nil {
		errs = append(errs, errors.New("toolkit has no Binarizer"))
	}
	if t.Contours == nil {
		errs = append(errs, errors.New("toolkit has no ContourExtractor"))
	}
	if t.Lines == nil {
		errs = append(errs, errors.New("toolkit has no LineDetector"))
	}
	if t.Frequency == nil {
		errs = append(errs, errors.New("toolkit has no FrequencyTransform"))
	}
	return errors.Join(errs...)
}

// NativeToolkit returns the pure-Go toolkit backed by internal/imaging and
// internal/detection.
func NativeToolkit() Toolkit {
	n := native{}
	return Toolkit{
		Blur:      n,
		Edges:     n,
		Open:      n,
		Binarize:  n,
		Contours:  n,
		Lines:     n,
		Frequency: n,
	}
}

type native struct{}

func (native) Blur(p *imaging.Plane, size int) (*imaging.Plane, error) {
	return imaging.GaussianBlur(p, float64(size-1)/2), nil
}

func (native) Edges(p *imaging.Plane, low, high float64) (*imaging.Plane, error) {
	return imaging.Canny(p, low, high), nil
}

func (native) Open(p *imaging.Plane, kw, kh int) (*imaging.Plane, error) {
	return imaging.Open(p, kw, kh), nil
}

func (native) AdaptiveThreshold(p *imaging.Plane, blockSize int, offset float64) (*imaging.Plane, error) {
	return imaging.AdaptiveThreshold(p, blockSize, offset), nil
}

func (native) ExternalContours(mask *imaging.Plane) ([]detection.Contour, error) {
	return detection.FindExternalContours(mask), nil
}

func (native) Lines(edges *imaging.Plane, rhoStep, thetaStep float64, threshold int) ([]detection.Line, error) {
	return detection.HoughLines(edges, rhoStep, thetaStep, threshold), nil
}

func (native) MagnitudeSpectrum(p *imaging.Plane) (*imaging.Plane, error) {
	return imaging.MagnitudeSpectrum(p), nil
}
