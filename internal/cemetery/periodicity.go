package cemetery

import (
	"fmt"
	"math"

	"github.com/ironsheep/cemetery-detector/internal/detection"
	"github.com/ironsheep/cemetery-detector/internal/imaging"
)

// PeriodicityStrategy names an implementation of the structuralPeriodicity
// feature.
type PeriodicityStrategy string

const (
	// PeriodicityLines balances near-horizontal against near-vertical Hough
	// lines and scales by line density.
	PeriodicityLines PeriodicityStrategy = "lines"
	// PeriodicityFrequency measures how much spectral energy sits in a disc
	// around (but not on) the zero frequency.
	PeriodicityFrequency PeriodicityStrategy = "frequency"
)

// ParsePeriodicityStrategy accepts "lines" or "frequency".
func ParsePeriodicityStrategy(s string) (PeriodicityStrategy, error) {
	switch PeriodicityStrategy(s) {
	case PeriodicityLines, PeriodicityFrequency:
		return PeriodicityStrategy(s), nil
	}
	return "", fmt.Errorf("unknown periodicity strategy %q (want %q or %q)", s, PeriodicityLines, PeriodicityFrequency)
}

// NewPeriodicityDetector returns the detector for strategy.
func NewPeriodicityDetector(strategy PeriodicityStrategy, toolkit Toolkit, params Params) (Detector, error) {
	switch strategy {
	case PeriodicityLines:
		return NewLinePeriodicity(toolkit, params), nil
	case PeriodicityFrequency:
		return NewFrequencyPeriodicity(toolkit, params), nil
	}
	return nil, fmt.Errorf("unknown periodicity strategy %q", strategy)
}

// LinePeriodicity is the line-orientation strategy.
//
// Canny runs on the unsmoothed intensity plane, the edges go through the
// standard Hough transform, and each line is classified by its direction:
// horizontal when within AxisTolerance of 0° or 180°, vertical when within
// AxisTolerance of 90°. The score is
//
//	(1 - |h - v| / total) * min(total / LineDensityScale, 1)
//
// and 0 when no lines are found.
type LinePeriodicity struct {
	toolkit Toolkit
	params  Params
}

// NewLinePeriodicity returns the line-orientation detector.
func NewLinePeriodicity(toolkit Toolkit, params Params) *LinePeriodicity {
	return &LinePeriodicity{toolkit: toolkit, params: params}
}

func (d *LinePeriodicity) Name() string { return "line-periodicity" }

func (d *LinePeriodicity) Features() []string { return []string{FeatureStructuralPeriodicity} }

func (d *LinePeriodicity) Detect(s *Sample) (Measurement, error) {
	lines, err := d.Lines(s)
	if err != nil {
		return Measurement{}, err
	}

	var horizontal, vertical int
	for _, l := range lines {
		switch d.classify(l) {
		case axisHorizontal:
			horizontal++
		case axisVertical:
			vertical++
		}
	}

	score := 0.0
	if total := len(lines); total > 0 {
		balance := 1 - math.Abs(float64(horizontal-vertical))/float64(total)
		density := math.Min(float64(total)/d.params.LineDensityScale, 1)
		score = balance * density
	}

	m := measurement(FeatureVector{FeatureStructuralPeriodicity: score})
	m.Counts[CountHorizontalLines] = horizontal
	m.Counts[CountVerticalLines] = vertical
	return m, nil
}

// Lines returns the Hough lines of the edge map, strongest first.
func (d *LinePeriodicity) Lines(s *Sample) ([]detection.Line, error) {
	edges, err := d.toolkit.Edges.Edges(s.Intensity, d.params.CannyLow, d.params.CannyHigh)
	if err != nil {
		return nil, computationError(d.Name(), err)
	}
	lines, err := d.toolkit.Lines.Lines(edges, d.params.HoughRhoStep, d.params.HoughThetaStep, d.params.HoughThreshold)
	if err != nil {
		return nil, computationError(d.Name(), err)
	}
	return lines, nil
}

type axis int

const (
	axisOther axis = iota
	axisHorizontal
	axisVertical
)

func (d *LinePeriodicity) classify(l detection.Line) axis {
	dir := l.DirectionDegrees()
	tol := d.params.AxisTolerance
	switch {
	case dir < tol || dir > 180-tol:
		return axisHorizontal
	case dir > 90-tol && dir < 90+tol:
		return axisVertical
	}
	return axisOther
}

// FrequencyPeriodicity is the frequency-domain strategy.
//
// It sums the log-magnitude spectrum inside a disc of radius
// min(width, height) / SpectrumRadiusDivisor centred on the zero frequency,
// excluding the zero-frequency term itself, and divides by the sum over the
// whole spectrum. The score is 0 when the spectrum has no energy.
type FrequencyPeriodicity struct {
	toolkit Toolkit
	params  Params
}

// NewFrequencyPeriodicity returns the frequency-domain detector.
func NewFrequencyPeriodicity(toolkit Toolkit, params Params) *FrequencyPeriodicity {
	return &FrequencyPeriodicity{toolkit: toolkit, params: params}
}

func (d *FrequencyPeriodicity) Name() string { return "frequency-periodicity" }

func (d *FrequencyPeriodicity) Features() []string { return []string{FeatureStructuralPeriodicity} }

func (d *FrequencyPeriodicity) Detect(s *Sample) (Measurement, error) {
	spectrum, err := d.Spectrum(s)
	if err != nil {
		return Measurement{}, err
	}

	w, h := spectrum.Width, spectrum.Height
	cx, cy := w/2, h/2
	r := min(w, h) / d.params.SpectrumRadiusDivisor
	r2 := r * r

	var inside, total float64
	for y := 0; y < h; y++ {
		dy := y - cy
		for x := 0; x < w; x++ {
			v := spectrum.Pix[y*w+x]
			total += v
			dx := x - cx
			if d2 := dx*dx + dy*dy; d2 > 0 && d2 <= r2 {
				inside += v
			}
		}
	}

	score := 0.0
	if total > 0 {
		score = inside / total
	}
	return measurement(FeatureVector{FeatureStructuralPeriodicity: score}), nil
}

// Spectrum returns the centred log-magnitude spectrum of the intensity plane.
func (d *FrequencyPeriodicity) Spectrum(s *Sample) (*imaging.Plane, error) {
	spectrum, err := d.toolkit.Frequency.MagnitudeSpectrum(s.Intensity)
	if err != nil {
		return nil, computationError(d.Name(), err)
	}
	return spectrum, nil
}
