package cemetery

import (
	"fmt"
	"math"

	apperrors "github.com/ironsheep/cemetery-detector/internal/errors"
	"github.com/ironsheep/cemetery-detector/internal/imaging"
)

// Params is the canonical constant set shared by every detector. It is a
// plain value: analyzers copy it at construction and never change it.
type Params struct {
	// Grid regularity
	BlurSize      int     // Gaussian pre-blur kernel size (odd)
	CannyLow      float64 // hysteresis low threshold on the 0..255 gradient scale
	CannyHigh     float64 // hysteresis high threshold
	OpeningLength int     // length of the 1-pixel-wide opening elements

	// Texture uniformity
	TextureWindow int     // box window for local mean and variance
	VarianceScale float64 // uniformity = 1 / (1 + avgVariance/VarianceScale)

	// Rectangular structures
	ThresholdBlock  int     // adaptive threshold window (odd)
	ThresholdOffset float64 // subtracted from the local mean
	PlotAreaMin     float64 // exclusive lower bound of plausible plot area
	PlotAreaMax     float64 // exclusive upper bound
	PlotDensityArea float64 // image area (px²) that one plot per unit density represents
	ApproxTolerance float64 // polygon tolerance as a fraction of perimeter

	// Vegetation
	GreenBand      imaging.HSVBand
	MinGreenPixels int     // colorUniformity is 0 below this count
	ColorStdScale  float64 // colorUniformity = 1 / (1 + meanStd/ColorStdScale)

	// Line-orientation periodicity
	HoughRhoStep     float64 // pixels
	HoughThetaStep   float64 // radians
	HoughThreshold   int     // minimum votes (exclusive)
	AxisTolerance    float64 // degrees from horizontal/vertical
	LineDensityScale float64 // line count that saturates density

	// Frequency-domain periodicity
	SpectrumRadiusDivisor int // disc radius = min(width, height) / divisor
}

// DefaultParams returns the canonical constants.
func DefaultParams() Params {
	return Params{
		BlurSize:      5,
		CannyLow:      50,
		CannyHigh:     150,
		OpeningLength: 25,

		TextureWindow: 9,
		VarianceScale: 1000,

		ThresholdBlock:  11,
		ThresholdOffset: 2,
		PlotAreaMin:     100,
		PlotAreaMax:     10000,
		PlotDensityArea: 100000,
		ApproxTolerance: 0.02,

		// Hue 35-85 and saturation/value 40-255 on OpenCV's 8-bit HSV scale.
		GreenBand: imaging.HSVBand{
			HueMin: 70, HueMax: 170,
			SatMin: 40.0 / 255, SatMax: 1,
			ValMin: 40.0 / 255, ValMax: 1,
		},
		MinGreenPixels: 4,
		ColorStdScale:  50,

		HoughRhoStep:     1,
		HoughThetaStep:   math.Pi / 180,
		HoughThreshold:   100,
		AxisTolerance:    10,
		LineDensityScale: 100,

		SpectrumRadiusDivisor: 8,
	}
}

// Validate rejects parameter sets that would make a detector divide by zero
// or loop over an empty window.
func (p Params) Validate() error {
	checks := []struct {
		ok   bool
		name string
	}{
		{p.BlurSize > 0 && p.BlurSize%2 == 1, "BlurSize must be a positive odd number"},
		{p.CannyLow >= 0 && p.CannyHigh >= p.CannyLow, "Canny thresholds must satisfy 0 <= low <= high"},
		{p.OpeningLength > 0, "OpeningLength must be positive"},
		{p.TextureWindow > 0, "TextureWindow must be positive"},
		{p.VarianceScale > 0, "VarianceScale must be positive"},
		{p.ThresholdBlock > 1 && p.ThresholdBlock%2 == 1, "ThresholdBlock must be an odd number > 1"},
		{p.PlotAreaMax > p.PlotAreaMin, "PlotAreaMax must exceed PlotAreaMin"},
		{p.PlotDensityArea > 0, "PlotDensityArea must be positive"},
		{p.ApproxTolerance > 0, "ApproxTolerance must be positive"},
		{p.MinGreenPixels >= 0, "MinGreenPixels must not be negative"},
		{p.ColorStdScale > 0, "ColorStdScale must be positive"},
		{p.HoughRhoStep > 0 && p.HoughThetaStep > 0, "Hough resolutions must be positive"},
		{p.AxisTolerance >= 0 && p.AxisTolerance < 45, "AxisTolerance must be in [0, 45)"},
		{p.LineDensityScale > 0, "LineDensityScale must be positive"},
		{p.SpectrumRadiusDivisor > 0, "SpectrumRadiusDivisor must be positive"},
	}
	for _, c := range checks {
		if !c.ok {
			return apperrors.NewValidationError(fmt.Sprintf("invalid parameters: %s", c.name), nil)
		}
	}
	return nil
}
