package imaging

import (
	"github.com/disintegration/imaging"
)

// Fit downscales r so that its longer side is at most maxDimension, keeping
// the aspect ratio, using Lanczos resampling. Rasters already within the limit
// and a maxDimension of 0 or less return r unchanged.
func Fit(r *Raster, maxDimension int) *Raster {
	if maxDimension <= 0 || r.Empty() {
		return r
	}
	if r.Width <= maxDimension && r.Height <= maxDimension {
		return r
	}
	return FromImage(imaging.Fit(r.Image(), maxDimension, maxDimension, imaging.Lanczos))
}
