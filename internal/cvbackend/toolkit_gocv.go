//go:build gocv

package cvbackend

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ironsheep/cemetery-detector/internal/cemetery"
	"github.com/ironsheep/cemetery-detector/internal/detection"
	"github.com/ironsheep/cemetery-detector/internal/imaging"
)

// Available reports whether the binary was built with OpenCV support.
const Available = true

// Toolkit returns a cemetery.Toolkit whose filtering, edge, morphology,
// threshold, contour and line primitives run in OpenCV. The spectrum stays on
// the native FFT.
func Toolkit() (cemetery.Toolkit, error) {
	cv := openCV{}
	native := cemetery.NativeToolkit()
	return cemetery.Toolkit{
		Blur:      cv,
		Edges:     cv,
		Open:      cv,
		Binarize:  cv,
		Contours:  cv,
		Lines:     cv,
		Frequency: native.Frequency,
	}, nil
}

type openCV struct{}

// toMat copies a plane into an 8-bit single-channel Mat. The caller closes it.
func toMat(p *imaging.Plane) (gocv.Mat, error) {
	gray := p.Gray()
	mat, err := gocv.NewMatFromBytes(p.Height, p.Width, gocv.MatTypeCV8UC1, gray.Pix)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("failed to create Mat: %w", err)
	}
	return mat, nil
}

func fromMat(mat gocv.Mat) *imaging.Plane {
	w, h := mat.Cols(), mat.Rows()
	gray := &image.Gray{Pix: mat.ToBytes(), Stride: w, Rect: image.Rect(0, 0, w, h)}
	return imaging.PlaneFromGray(gray)
}

// apply runs op from a Mat of p into a fresh Mat and converts the result back.
func apply(p *imaging.Plane, op func(src gocv.Mat, dst *gocv.Mat)) (*imaging.Plane, error) {
	src, err := toMat(p)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	op(src, &dst)
	if dst.Empty() {
		return nil, fmt.Errorf("OpenCV returned an empty result")
	}
	return fromMat(dst), nil
}

func (openCV) Blur(p *imaging.Plane, size int) (*imaging.Plane, error) {
	return apply(p, func(src gocv.Mat, dst *gocv.Mat) {
		gocv.GaussianBlur(src, dst, image.Point{X: size, Y: size}, 0, 0, gocv.BorderDefault)
	})
}

func (openCV) Edges(p *imaging.Plane, low, high float64) (*imaging.Plane, error) {
	return apply(p, func(src gocv.Mat, dst *gocv.Mat) {
		gocv.Canny(src, dst, float32(low), float32(high))
	})
}

func (openCV) Open(p *imaging.Plane, kw, kh int) (*imaging.Plane, error) {
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: kw, Y: kh})
	defer kernel.Close()
	return apply(p, func(src gocv.Mat, dst *gocv.Mat) {
		gocv.MorphologyEx(src, dst, gocv.MorphOpen, kernel)
	})
}

func (openCV) AdaptiveThreshold(p *imaging.Plane, blockSize int, offset float64) (*imaging.Plane, error) {
	return apply(p, func(src gocv.Mat, dst *gocv.Mat) {
		gocv.AdaptiveThreshold(src, dst, 255, gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinary, blockSize, float32(offset))
	})
}

func (openCV) ExternalContours(mask *imaging.Plane) ([]detection.Contour, error) {
	src, err := toMat(mask)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	contours := gocv.FindContours(src, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	out := make([]detection.Contour, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		pts := contours.At(i).ToPoints()
		c := detection.Contour{Points: make([]detection.Point, len(pts))}
		for j, pt := range pts {
			c.Points[j] = detection.Point{X: pt.X, Y: pt.Y}
		}
		if len(pts) > 0 {
			c.Bounds = detection.Bounds{X1: pts[0].X, Y1: pts[0].Y, X2: pts[0].X, Y2: pts[0].Y}
			for _, pt := range pts[1:] {
				c.Bounds.X1 = min(c.Bounds.X1, pt.X)
				c.Bounds.Y1 = min(c.Bounds.Y1, pt.Y)
				c.Bounds.X2 = max(c.Bounds.X2, pt.X)
				c.Bounds.Y2 = max(c.Bounds.Y2, pt.Y)
			}
		}
		out = append(out, c)
	}
	return out, nil
}

// Lines runs the standard Hough transform. OpenCV does not report vote
// counts, so Votes is left at 0.
func (openCV) Lines(edges *imaging.Plane, rhoStep, thetaStep float64, threshold int) ([]detection.Line, error) {
	src, err := toMat(edges)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	lines := gocv.NewMat()
	defer lines.Close()
	gocv.HoughLines(src, &lines, float32(rhoStep), float32(thetaStep), threshold)

	out := make([]detection.Line, 0, lines.Rows())
	for i := 0; i < lines.Rows(); i++ {
		v := lines.GetVecfAt(i, 0)
		out = append(out, detection.Line{Rho: float64(v[0]), Theta: float64(v[1])})
	}
	return out, nil
}
