package cemetery

import (
	"github.com/ironsheep/cemetery-detector/internal/imaging"
)

// TextureUniformity scores how smooth the intensity plane is from its mean
// local variance over TextureWindow x TextureWindow boxes.
type TextureUniformity struct {
	params Params
}

// NewTextureUniformity returns the texture detector.
func NewTextureUniformity(params Params) *TextureUniformity {
	return &TextureUniformity{params: params}
}

func (d *TextureUniformity) Name() string { return "texture-uniformity" }

func (d *TextureUniformity) Features() []string { return []string{FeatureTextureUniformity} }

func (d *TextureUniformity) Detect(s *Sample) (Measurement, error) {
	avg := d.VarianceMap(s).Mean()
	uniformity := 1 / (1 + avg/d.params.VarianceScale)
	return measurement(FeatureVector{FeatureTextureUniformity: uniformity}), nil
}

// VarianceMap returns mean(I²) - mean(I)² per pixel.
func (d *TextureUniformity) VarianceMap(s *Sample) *imaging.Plane {
	return imaging.LocalVariance(s.Intensity, d.params.TextureWindow)
}
