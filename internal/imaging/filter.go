package imaging

import (
	"math"
)

// BoxMean returns the mean over a size x size window centred on every pixel.
// size should be odd; even sizes are rounded up.
func BoxMean(p *Plane, size int) *Plane {
	if size < 1 {
		size = 1
	}
	if size%2 == 0 {
		size++
	}
	kernel := make([]float64, size)
	for i := range kernel {
		kernel[i] = 1 / float64(size)
	}
	return convolveSeparable(p, kernel)
}

// GaussianMean returns the Gaussian-weighted mean over a size x size window.
//
// The standard deviation is derived from the window size the way OpenCV does
// when sigma is left at zero: sigma = 0.3*((size-1)*0.5 - 1) + 0.8.
func GaussianMean(p *Plane, size int) *Plane {
	return convolveSeparable(p, GaussianKernel(size))
}

// GaussianKernel returns a normalized 1-D Gaussian kernel of odd length size.
func GaussianKernel(size int) []float64 {
	if size < 1 {
		size = 1
	}
	if size%2 == 0 {
		size++
	}
	sigma := 0.3*((float64(size)-1)*0.5-1) + 0.8
	half := size / 2
	kernel := make([]float64, size)
	var sum float64
	for i := range kernel {
		x := float64(i - half)
		kernel[i] = math.Exp(-(x * x) / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// Square returns a plane holding the square of every value.
func Square(p *Plane) *Plane {
	out := NewPlane(p.Width, p.Height)
	for i, v := range p.Pix {
		out.Pix[i] = v * v
	}
	return out
}

// LocalVariance computes mean(I²) - mean(I)² over a size x size box window.
// Tiny negative values from floating-point cancellation are clamped to 0.
func LocalVariance(p *Plane, size int) *Plane {
	mean := BoxMean(p, size)
	sqMean := BoxMean(Square(p), size)
	out := NewPlane(p.Width, p.Height)
	for i := range out.Pix {
		v := sqMean.Pix[i] - mean.Pix[i]*mean.Pix[i]
		if v < 0 {
			v = 0
		}
		out.Pix[i] = v
	}
	return out
}

// convolveSeparable applies kernel horizontally then vertically. Taps outside
// the plane replicate the nearest edge pixel.
func convolveSeparable(p *Plane, kernel []float64) *Plane {
	w, h := p.Width, p.Height
	half := len(kernel) / 2

	tmp := NewPlane(w, h)
	for y := 0; y < h; y++ {
		row := p.Pix[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			var sum float64
			for k, kv := range kernel {
				sum += row[clamp(x+k-half, 0, w-1)] * kv
			}
			tmp.Pix[y*w+x] = sum
		}
	}

	out := NewPlane(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for k, kv := range kernel {
				sum += tmp.Pix[clamp(y+k-half, 0, h-1)*w+x] * kv
			}
			out.Pix[y*w+x] = sum
		}
	}
	return out
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
