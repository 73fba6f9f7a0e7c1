package imaging

import (
	"github.com/anthonynsimon/bild/blur"
)

// BlurRadius is the bild Gaussian radius that yields a 5-tap kernel.
const BlurRadius = 2.0

// GaussianBlur smooths p with bild's separable Gaussian filter.
//
// The plane is quantized to 8 bits before filtering, matching the precision
// of an 8-bit intensity image. radius controls the kernel length
// (ceil(2*radius+1) taps); BlurRadius gives the 5x5 blur used before edge
// detection.
func GaussianBlur(p *Plane, radius float64) *Plane {
	if p.Empty() {
		return NewPlane(p.Width, p.Height)
	}
	return planeFromRed(blur.Gaussian(p.Gray(), radius))
}
