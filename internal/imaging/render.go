package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
)

// RenderResult contains an image encoded as base64 PNG.
type RenderResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes img as base64 PNG.
func EncodePNG(img image.Image) (*RenderResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &RenderResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// RenderPlane encodes p as a grayscale PNG. When normalize is set the plane
// is first stretched so its maximum is white.
func RenderPlane(p *Plane, normalize bool) (*RenderResult, error) {
	if normalize {
		p = p.Normalized()
	}
	return EncodePNG(p.Gray())
}

// Overlay paints every pixel where mask is non-zero over a copy of r using
// colorHex ("#RRGGBB" or "#RRGGBBAA"). An unparsable color falls back to
// semi-transparent red.
func Overlay(r *Raster, mask *Plane, colorHex string) (*RenderResult, error) {
	if mask.Width != r.Width || mask.Height != r.Height {
		return nil, fmt.Errorf("mask size %dx%d does not match image %dx%d",
			mask.Width, mask.Height, r.Width, r.Height)
	}

	paint := color.NRGBA{255, 0, 0, 128} // Default: semi-transparent red
	if c, a, err := ParseHexColor(colorHex); err == nil {
		cr, cg, cb := c.RGB255()
		paint = color.NRGBA{cr, cg, cb, a}
	}

	bounds := image.Rect(0, 0, r.Width, r.Height)
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, r.Image(), image.Point{}, draw.Src)

	alpha := image.NewAlpha(bounds)
	for i, v := range mask.Pix {
		if v != 0 {
			alpha.Pix[i] = paint.A
		}
	}
	paint.A = 255
	draw.DrawMask(result, bounds, image.NewUniform(paint), image.Point{}, alpha, image.Point{}, draw.Over)

	return EncodePNG(result)
}
