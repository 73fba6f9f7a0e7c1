package cemetery

import (
	"github.com/ironsheep/cemetery-detector/internal/imaging"
)

// Vegetation measures green cover and how consistent its color is.
//
// greenPercentage is the fraction of pixels inside GreenBand. colorUniformity
// is 1 / (1 + s/ColorStdScale), where s is the mean of the per-channel
// standard deviations over the green pixels; it is 0 when fewer than
// MinGreenPixels pixels are green.
type Vegetation struct {
	params Params
}

// NewVegetation returns the vegetation detector.
func NewVegetation(params Params) *Vegetation {
	return &Vegetation{params: params}
}

func (d *Vegetation) Name() string { return "vegetation" }

func (d *Vegetation) Features() []string {
	return []string{FeatureGreenPercentage, FeatureColorUniformity}
}

func (d *Vegetation) Detect(s *Sample) (Measurement, error) {
	mask, count := d.GreenMask(s)

	uniformity := 0.0
	if count >= d.params.MinGreenPixels && count > 0 {
		std := imaging.ChannelStdDev(s.Raster, mask)
		meanStd := (std[0] + std[1] + std[2]) / 3
		uniformity = 1 / (1 + meanStd/d.params.ColorStdScale)
	}

	m := measurement(FeatureVector{
		FeatureGreenPercentage: float64(count) / float64(s.Area()),
		FeatureColorUniformity: uniformity,
	})
	m.Counts[CountGreenPixels] = count
	return m, nil
}

// GreenMask returns the 0/255 vegetation mask and its pixel count.
func (d *Vegetation) GreenMask(s *Sample) (*imaging.Plane, int) {
	return imaging.BandMask(s.Raster, d.params.GreenBand)
}
