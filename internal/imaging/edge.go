package imaging

import (
	"math"
)

// Canny performs Canny edge detection on an intensity plane and returns a
// binary plane where edges are 255 and everything else is 0.
//
// The input is expected to be smoothed already; Canny does not blur.
//
// Parameters:
//   - p: Intensity plane on the 0..255 scale.
//   - thresholdLow: Gradient magnitude below which pixels are discarded.
//     Typical value: 50.
//   - thresholdHigh: Gradient magnitude above which pixels are strong edges.
//     Typical value: 150.
//
// # Algorithm
//
//  1. Gradient computation: 3x3 Sobel operators for X and Y gradients,
//     magnitude = sqrt(Gx² + Gy²), direction = atan2(Gy, Gx)
//
//  2. Non-maximum suppression: thin edges to 1-pixel width by keeping only
//     local maxima along the gradient direction, quantized to 0°, 45°, 90°
//     and 135°
//
//  3. Hysteresis thresholding:
//     - Pixels above thresholdHigh are strong edges (always kept)
//     - Pixels between thresholdLow and thresholdHigh are weak edges, kept
//     only if 8-connected (directly or through other weak edges) to a
//     strong edge
//     - Pixels at or below thresholdLow are discarded
//
// Border pixels never become edges.
func Canny(p *Plane, thresholdLow, thresholdHigh float64) *Plane {
	width := p.Width
	height := p.Height
	result := NewPlane(width, height)
	if width < 3 || height < 3 {
		return result
	}

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	magnitude := make([]float64, width*height)
	direction := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := p.Pix[clamp(y+ky, 0, height-1)*width+clamp(x+kx, 0, width-1)]
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y*width+x] = math.Sqrt(gx*gx + gy*gy)
			direction[y*width+x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression. With Y pointing down, a gradient at +45°
	// runs toward (x+1, y+1).
	suppressed := make([]float64, width*height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			i := y*width + x
			mag := magnitude[i]
			if mag <= thresholdLow {
				continue
			}

			angle := direction[i]
			if angle < 0 {
				angle += math.Pi
			}

			var n1, n2 float64
			switch {
			case angle < math.Pi/8 || angle >= 7*math.Pi/8:
				n1 = magnitude[i-1]
				n2 = magnitude[i+1]
			case angle < 3*math.Pi/8:
				n1 = magnitude[i-width-1]
				n2 = magnitude[i+width+1]
			case angle < 5*math.Pi/8:
				n1 = magnitude[i-width]
				n2 = magnitude[i+width]
			default:
				n1 = magnitude[i-width+1]
				n2 = magnitude[i+width-1]
			}

			// Ties are broken toward the earlier pixel so plateaus stay one pixel wide.
			if mag > n1 && mag >= n2 {
				suppressed[i] = mag
			}
		}
	}

	// Hysteresis: grow strong edges through connected weak ones.
	stack := make([]int, 0, 1024)
	for i, v := range suppressed {
		if v > thresholdHigh && result.Pix[i] == 0 {
			result.Pix[i] = 255
			stack = append(stack, i)
		}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			cx, cy := cur%width, cur/width
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := cx+dx, cy+dy
					if nx < 0 || nx >= width || ny < 0 || ny >= height {
						continue
					}
					j := ny*width + nx
					if result.Pix[j] == 0 && suppressed[j] > thresholdLow {
						result.Pix[j] = 255
						stack = append(stack, j)
					}
				}
			}
		}
	}

	return result
}
