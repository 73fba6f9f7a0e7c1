package detection

import (
	"math"
	"sort"

	"github.com/ironsheep/cemetery-detector/internal/imaging"
)

// Line is an infinite line in normal form: x*cos(Theta) + y*sin(Theta) = Rho.
//
// Theta is the angle of the line's normal in radians, in [0, π). A line
// with Theta = 0 is vertical; Theta = π/2 is horizontal.
type Line struct {
	Rho   float64 `json:"rho"`
	Theta float64 `json:"theta"`
	Votes int     `json:"votes"`
}

// DirectionDegrees returns the direction of the line itself (not its
// normal) in degrees, in [0, 180). Horizontal lines are near 0 or 180.
func (l Line) DirectionDegrees() float64 {
	deg := math.Mod(l.Theta*180/math.Pi+90, 180)
	if deg < 0 {
		deg += 180
	}
	return deg
}

// HoughLines finds lines in a binary edge map using the standard Hough
// transform. A pixel votes when its value is non-zero.
//
// Parameters:
//   - edges: Binary edge map.
//   - rhoStep: Distance resolution of the accumulator in pixels. Typical: 1.
//   - thetaStep: Angle resolution in radians. Typical: π/180.
//   - threshold: A line is reported only with more than threshold votes.
//
// Returns lines sorted by votes, highest first. Lines with equal votes keep
// accumulator order (by angle, then distance).
//
// # Algorithm
//
//  1. Voting: every edge pixel votes for each quantized angle θ at
//     ρ = round((x*cos θ + y*sin θ) / rhoStep).
//  2. Peak search: an accumulator cell is a peak when it exceeds threshold,
//     is strictly greater than its lower neighbours along both axes and at
//     least equal to its upper neighbours.
func HoughLines(edges *imaging.Plane, rhoStep, thetaStep float64, threshold int) []Line {
	width, height := edges.Width, edges.Height
	if width <= 0 || height <= 0 || rhoStep <= 0 || thetaStep <= 0 {
		return nil
	}

	numAngle := int(math.Round(math.Pi / thetaStep))
	numRho := int(math.Round(float64((width+height)*2+1) / rhoStep))
	if numAngle < 1 || numRho < 1 {
		return nil
	}

	cosTab := make([]float64, numAngle)
	sinTab := make([]float64, numAngle)
	for n := 0; n < numAngle; n++ {
		angle := float64(n) * thetaStep
		cosTab[n] = math.Cos(angle) / rhoStep
		sinTab[n] = math.Sin(angle) / rhoStep
	}

	// Padded by one cell on every side so the peak test needs no bounds checks.
	stride := numRho + 2
	accum := make([]int, (numAngle+2)*stride)
	offset := (numRho - 1) / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if edges.Pix[y*width+x] == 0 {
				continue
			}
			for n := 0; n < numAngle; n++ {
				r := int(math.Round(float64(x)*cosTab[n]+float64(y)*sinTab[n])) + offset
				if r < 0 || r >= numRho {
					continue
				}
				accum[(n+1)*stride+r+1]++
			}
		}
	}

	type peak struct {
		base  int
		votes int
	}
	peaks := make([]peak, 0)
	for r := 0; r < numRho; r++ {
		for n := 0; n < numAngle; n++ {
			base := (n+1)*stride + r + 1
			v := accum[base]
			if v > threshold &&
				v > accum[base-1] && v >= accum[base+1] &&
				v > accum[base-stride] && v >= accum[base+stride] {
				peaks = append(peaks, peak{base: base, votes: v})
			}
		}
	}

	sort.SliceStable(peaks, func(i, j int) bool {
		if peaks[i].votes != peaks[j].votes {
			return peaks[i].votes > peaks[j].votes
		}
		return peaks[i].base < peaks[j].base
	})

	lines := make([]Line, 0, len(peaks))
	for _, p := range peaks {
		n := p.base/stride - 1
		r := p.base - (n+1)*stride - 1
		lines = append(lines, Line{
			Rho:   (float64(r) - float64(numRho-1)*0.5) * rhoStep,
			Theta: float64(n) * thetaStep,
			Votes: p.votes,
		})
	}
	return lines
}
