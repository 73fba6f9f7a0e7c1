package imaging

import (
	"image"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Plane is a single-channel image stored row-major as float64.
//
// Intensity planes and masks use the 0..255 scale; derived planes such as
// spectra may hold arbitrary non-negative values.
type Plane struct {
	Width  int
	Height int
	Pix    []float64
}

// NewPlane allocates a zero-filled plane.
func NewPlane(width, height int) *Plane {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Plane{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height),
	}
}

// At returns the value at (x, y). The caller guarantees the coordinates are in range.
func (p *Plane) At(x, y int) float64 {
	return p.Pix[y*p.Width+x]
}

// Set stores v at (x, y).
func (p *Plane) Set(x, y int, v float64) {
	p.Pix[y*p.Width+x] = v
}

// Area returns the number of pixels.
func (p *Plane) Area() int {
	return p.Width * p.Height
}

// Empty reports whether the plane has zero area.
func (p *Plane) Empty() bool {
	return p.Width <= 0 || p.Height <= 0
}

// Sum returns the sum of all values.
func (p *Plane) Sum() float64 {
	var s float64
	for _, v := range p.Pix {
		s += v
	}
	return s
}

// Mean returns the average value, or 0 for an empty plane.
func (p *Plane) Mean() float64 {
	if len(p.Pix) == 0 {
		return 0
	}
	return stat.Mean(p.Pix, nil)
}

// CountAbove returns the number of pixels strictly greater than t.
func (p *Plane) CountAbove(t float64) int {
	n := 0
	for _, v := range p.Pix {
		if v > t {
			n++
		}
	}
	return n
}

// Gray converts the plane to an 8-bit image, rounding and clamping each value
// to 0..255.
func (p *Plane) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, p.Width, p.Height))
	for i, v := range p.Pix {
		img.Pix[i] = toByte(v)
	}
	return img
}

// Normalized returns the plane rescaled linearly so its maximum maps to 255.
// A plane whose maximum is not positive is returned as zeros.
func (p *Plane) Normalized() *Plane {
	out := NewPlane(p.Width, p.Height)
	maxVal := 0.0
	for _, v := range p.Pix {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		return out
	}
	for i, v := range p.Pix {
		out.Pix[i] = v / maxVal * 255
	}
	return out
}

// PlaneFromGray reads an 8-bit grayscale image into a plane.
func PlaneFromGray(img *image.Gray) *Plane {
	b := img.Bounds()
	p := NewPlane(b.Dx(), b.Dy())
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			p.Pix[y*p.Width+x] = float64(img.GrayAt(x+b.Min.X, y+b.Min.Y).Y)
		}
	}
	return p
}

// planeFromRed reads the red channel of an arbitrary image. Grayscale images
// promoted to RGBA carry the luminance in every channel.
func planeFromRed(img image.Image) *Plane {
	b := img.Bounds()
	p := NewPlane(b.Dx(), b.Dy())
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			r, _, _, _ := img.At(x+b.Min.X, y+b.Min.Y).RGBA()
			p.Pix[y*p.Width+x] = float64(r >> 8)
		}
	}
	return p
}

func toByte(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}
