package imaging

// Erode replaces every pixel with the minimum over a kw x kh rectangle
// anchored at its centre. Taps outside the plane are ignored.
func Erode(p *Plane, kw, kh int) *Plane {
	return rectFilter(p, kw, kh, func(a, b float64) bool { return a < b })
}

// Dilate replaces every pixel with the maximum over a kw x kh rectangle
// anchored at its centre. Taps outside the plane are ignored.
func Dilate(p *Plane, kw, kh int) *Plane {
	return rectFilter(p, kw, kh, func(a, b float64) bool { return a > b })
}

// Open performs morphological opening (erosion followed by dilation) with a
// kw x kh rectangular structuring element. Opening a binary edge map with a
// long thin element keeps only runs at least as long as the element in its
// direction.
func Open(p *Plane, kw, kh int) *Plane {
	return Dilate(Erode(p, kw, kh), kw, kh)
}

// Blend returns alpha*a + beta*b element-wise. The planes must match in size.
func Blend(a *Plane, alpha float64, b *Plane, beta float64) *Plane {
	out := NewPlane(a.Width, a.Height)
	for i := range out.Pix {
		out.Pix[i] = alpha*a.Pix[i] + beta*b.Pix[i]
	}
	return out
}

// rectFilter is a separable rank filter: the rectangle extremum equals the
// row extremum of column extrema.
func rectFilter(p *Plane, kw, kh int, better func(a, b float64) bool) *Plane {
	w, h := p.Width, p.Height
	if kw < 1 {
		kw = 1
	}
	if kh < 1 {
		kh = 1
	}

	tmp := NewPlane(w, h)
	ax := kw / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lo, hi := max(x-ax, 0), min(x-ax+kw-1, w-1)
			best := p.Pix[y*w+lo]
			for k := lo + 1; k <= hi; k++ {
				if v := p.Pix[y*w+k]; better(v, best) {
					best = v
				}
			}
			tmp.Pix[y*w+x] = best
		}
	}

	out := NewPlane(w, h)
	ay := kh / 2
	for y := 0; y < h; y++ {
		lo, hi := max(y-ay, 0), min(y-ay+kh-1, h-1)
		for x := 0; x < w; x++ {
			best := tmp.Pix[lo*w+x]
			for k := lo + 1; k <= hi; k++ {
				if v := tmp.Pix[k*w+x]; better(v, best) {
					best = v
				}
			}
			out.Pix[y*w+x] = best
		}
	}
	return out
}
