package cemetery

import (
	"github.com/ironsheep/cemetery-detector/internal/imaging"
)

// GridRegularity measures how much of the image is covered by long
// axis-aligned edges.
//
// The intensity plane is blurred, run through Canny, and opened twice with
// OpeningLength x 1 and 1 x OpeningLength elements. The two openings are
// averaged into a grid mask whose normalized mass is the regularity score.
type GridRegularity struct {
	toolkit Toolkit
	params  Params
}

// NewGridRegularity returns the regularity detector.
func NewGridRegularity(toolkit Toolkit, params Params) *GridRegularity {
	return &GridRegularity{toolkit: toolkit, params: params}
}

func (d *GridRegularity) Name() string { return "grid-regularity" }

func (d *GridRegularity) Features() []string { return []string{FeatureRegularity} }

func (d *GridRegularity) Detect(s *Sample) (Measurement, error) {
	grid, err := d.GridMask(s)
	if err != nil {
		return Measurement{}, err
	}
	score := grid.Sum() / (float64(grid.Area()) * 255)
	return measurement(FeatureVector{FeatureRegularity: score}), nil
}

// EdgeMap returns the Canny edges of the blurred intensity plane.
func (d *GridRegularity) EdgeMap(s *Sample) (*imaging.Plane, error) {
	blurred, err := d.toolkit.Blur.Blur(s.Intensity, d.params.BlurSize)
	if err != nil {
		return nil, computationError(d.Name(), err)
	}
	edges, err := d.toolkit.Edges.Edges(blurred, d.params.CannyLow, d.params.CannyHigh)
	if err != nil {
		return nil, computationError(d.Name(), err)
	}
	return edges, nil
}

// GridMask returns the equal-weight merge of the horizontal and vertical
// openings of the edge map.
func (d *GridRegularity) GridMask(s *Sample) (*imaging.Plane, error) {
	edges, err := d.EdgeMap(s)
	if err != nil {
		return nil, err
	}
	n := d.params.OpeningLength
	horizontal, err := d.toolkit.Open.Open(edges, n, 1)
	if err != nil {
		return nil, computationError(d.Name(), err)
	}
	vertical, err := d.toolkit.Open.Open(edges, 1, n)
	if err != nil {
		return nil, computationError(d.Name(), err)
	}
	return imaging.Blend(horizontal, 0.5, vertical, 0.5), nil
}
