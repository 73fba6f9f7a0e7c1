package imaging

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// MagnitudeSpectrum returns log(1 + |F|) of the 2-D discrete Fourier transform
// of p, shifted so the zero-frequency term sits at (Width/2, Height/2).
//
// go-dsp handles arbitrary sizes (Bluestein for non powers of two), so no
// padding is applied.
func MagnitudeSpectrum(p *Plane) *Plane {
	out := NewPlane(p.Width, p.Height)
	if p.Empty() {
		return out
	}

	rows := make([][]float64, p.Height)
	for y := range rows {
		rows[y] = p.Pix[y*p.Width : (y+1)*p.Width]
	}
	freq := fft.FFT2Real(rows)

	w, h := p.Width, p.Height
	for y := 0; y < h; y++ {
		sy := (y + h/2) % h
		for x := 0; x < w; x++ {
			sx := (x + w/2) % w
			out.Pix[sy*w+sx] = math.Log1p(cmplx.Abs(freq[y][x]))
		}
	}
	return out
}
