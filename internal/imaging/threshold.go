package imaging

// AdaptiveThreshold binarizes p against a Gaussian-weighted local mean.
//
// A pixel becomes 255 when its value exceeds (local mean - offset) and 0
// otherwise. The local mean is taken over a blockSize x blockSize window
// (see GaussianMean). Both sides are rounded to integers, as for 8-bit images.
// A positive offset therefore marks flat regions as foreground.
func AdaptiveThreshold(p *Plane, blockSize int, offset float64) *Plane {
	mean := GaussianMean(p, blockSize)
	out := NewPlane(p.Width, p.Height)
	for i, v := range p.Pix {
		if float64(toByte(v)) > float64(toByte(mean.Pix[i]))-offset {
			out.Pix[i] = 255
		}
	}
	return out
}
