package cemetery

import (
	"fmt"
	"strings"

	apperrors "github.com/ironsheep/cemetery-detector/internal/errors"
	"github.com/ironsheep/cemetery-detector/internal/imaging"
)

// FeatureMapKind names an intermediate plane that can be rendered.
type FeatureMapKind string

const (
	MapGrid       FeatureMapKind = "grid"       // merged directional openings
	MapEdges      FeatureMapKind = "edges"      // Canny edges of the blurred intensity
	MapVariance   FeatureMapKind = "variance"   // local variance, stretched
	MapSpectrum   FeatureMapKind = "spectrum"   // centred log magnitude, stretched
	MapVegetation FeatureMapKind = "vegetation" // green band mask
	MapOverlay    FeatureMapKind = "overlay"    // grid mask painted over the image
)

// FeatureMapKinds lists every kind RenderFeatureMap accepts.
func FeatureMapKinds() []FeatureMapKind {
	return []FeatureMapKind{MapGrid, MapEdges, MapVariance, MapSpectrum, MapVegetation, MapOverlay}
}

// FeatureMap loads path and renders the requested intermediate plane as PNG.
func (a *Analyzer) FeatureMap(path string, kind FeatureMapKind, overlayColor string) (*imaging.RenderResult, error) {
	raster, err := imaging.Load(path)
	if err != nil {
		return nil, err
	}
	sample, err := a.sample(raster)
	if err != nil {
		return nil, apperrors.WithPath(err, path)
	}
	out, err := a.RenderFeatureMap(sample, kind, overlayColor)
	if err != nil {
		return nil, apperrors.WithPath(err, path)
	}
	return out, nil
}

// RenderFeatureMap renders one intermediate plane of s. overlayColor is only
// used by MapOverlay; an empty string selects semi-transparent red.
func (a *Analyzer) RenderFeatureMap(s *Sample, kind FeatureMapKind, overlayColor string) (*imaging.RenderResult, error) {
	tk, params := a.opts.Toolkit, a.opts.Params

	var (
		plane     *imaging.Plane
		normalize bool
		err       error
	)
	switch FeatureMapKind(strings.ToLower(string(kind))) {
	case MapGrid:
		plane, err = NewGridRegularity(tk, params).GridMask(s)
		normalize = true
	case MapEdges:
		plane, err = NewGridRegularity(tk, params).EdgeMap(s)
	case MapVariance:
		plane = NewTextureUniformity(params).VarianceMap(s)
		normalize = true
	case MapSpectrum:
		plane, err = NewFrequencyPeriodicity(tk, params).Spectrum(s)
		normalize = true
	case MapVegetation:
		plane, _ = NewVegetation(params).GreenMask(s)
	case MapOverlay:
		grid, gerr := NewGridRegularity(tk, params).GridMask(s)
		if gerr != nil {
			return nil, gerr
		}
		return imaging.Overlay(s.Raster, grid, overlayColor)
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown feature map %q", kind), nil)
	}
	if err != nil {
		return nil, err
	}
	return imaging.RenderPlane(plane, normalize)
}
