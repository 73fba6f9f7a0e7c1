package cemetery

import (
	"math"

	"github.com/ironsheep/cemetery-detector/internal/detection"
)

// RectangularStructure counts plot-sized quadrilaterals.
//
// The intensity plane is binarized with an adaptive threshold, the external
// contours of the foreground are simplified to polygons, and every polygon
// with exactly four vertices whose contour area lies strictly inside
// (PlotAreaMin, PlotAreaMax) counts as a plot. A contour whose bounds span
// the whole frame is the thresholded background and never counts. Density
// is the count per PlotDensityArea pixels, capped at 1.
type RectangularStructure struct {
	toolkit Toolkit
	params  Params
}

// NewRectangularStructure returns the rectangle detector.
func NewRectangularStructure(toolkit Toolkit, params Params) *RectangularStructure {
	return &RectangularStructure{toolkit: toolkit, params: params}
}

func (d *RectangularStructure) Name() string { return "rectangular-structure" }

func (d *RectangularStructure) Features() []string { return []string{FeatureRectangularDensity} }

func (d *RectangularStructure) Detect(s *Sample) (Measurement, error) {
	plots, err := d.Plots(s)
	if err != nil {
		return Measurement{}, err
	}
	count := len(plots)
	density := 0.0
	if count > 0 {
		density = math.Min(float64(count)/(float64(s.Area())/d.params.PlotDensityArea), 1)
	}
	m := measurement(FeatureVector{FeatureRectangularDensity: density})
	m.Counts[CountRectangles] = count
	return m, nil
}

// Plots returns the simplified quadrilaterals that pass the area band.
func (d *RectangularStructure) Plots(s *Sample) ([][]detection.Point, error) {
	binary, err := d.toolkit.Binarize.AdaptiveThreshold(s.Intensity, d.params.ThresholdBlock, d.params.ThresholdOffset)
	if err != nil {
		return nil, computationError(d.Name(), err)
	}
	contours, err := d.toolkit.Contours.ExternalContours(binary)
	if err != nil {
		return nil, computationError(d.Name(), err)
	}

	frame := detection.Bounds{X1: 0, Y1: 0, X2: binary.Width - 1, Y2: binary.Height - 1}

	var plots [][]detection.Point
	for _, c := range contours {
		if c.Bounds == frame {
			continue
		}
		poly := detection.ApproxPolygon(c.Points, d.params.ApproxTolerance*detection.ArcLength(c.Points))
		if len(poly) != 4 {
			continue
		}
		// Area of the traced boundary, not of the simplified polygon.
		area := detection.Area(c.Points)
		if area > d.params.PlotAreaMin && area < d.params.PlotAreaMax {
			plots = append(plots, poly)
		}
	}
	return plots, nil
}
