package imaging

import (
	"bytes"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder

	apperrors "github.com/ironsheep/cemetery-detector/internal/errors"
)

// Raster is a decoded image held as packed 8-bit RGB.
//
// Pix stores three bytes per pixel, row-major, without padding: the red
// component of (x, y) is Pix[3*(y*Width+x)]. A Raster is never modified after
// it is created; derived data is always written to new values.
type Raster struct {
	Width  int
	Height int
	Pix    []uint8
}

// RGB returns the components at (x, y).
func (r *Raster) RGB(x, y int) (uint8, uint8, uint8) {
	i := 3 * (y*r.Width + x)
	return r.Pix[i], r.Pix[i+1], r.Pix[i+2]
}

// Area returns the number of pixels.
func (r *Raster) Area() int {
	return r.Width * r.Height
}

// Empty reports whether the raster has zero area.
func (r *Raster) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Image returns an opaque RGBA copy suitable for encoding or drawing.
func (r *Raster) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for i, j := 0, 0; i < len(r.Pix); i, j = i+3, j+4 {
		img.Pix[j] = r.Pix[i]
		img.Pix[j+1] = r.Pix[i+1]
		img.Pix[j+2] = r.Pix[i+2]
		img.Pix[j+3] = 255
	}
	return img
}

// Load reads and decodes the image file at path.
//
// # Errors
//
//   - A load error (apperrors.ErrLoad) if the file cannot be opened or read.
//   - A decode error (apperrors.ErrDecode) if the bytes are not a supported
//     raster encoding or are corrupt.
func Load(path string) (*Raster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewLoadError(path, err)
	}
	return Decode(data, path)
}

// Decode parses encoded image bytes. name is used only for error reporting.
//
// Supported encodings are PNG, JPEG, GIF (first frame), BMP, TIFF and WebP.
// Any alpha channel is discarded.
func Decode(data []byte, name string) (*Raster, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewDecodeError(name, err)
	}
	return FromImage(img), nil
}

// FromImage converts any image.Image to a Raster, flattening it to
// non-premultiplied RGB.
func FromImage(img image.Image) *Raster {
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	r := &Raster{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]uint8, 3*b.Dx()*b.Dy()),
	}
	for i, j := 0, 0; j < len(r.Pix); i, j = i+4, j+3 {
		r.Pix[j] = nrgba.Pix[i]
		r.Pix[j+1] = nrgba.Pix[i+1]
		r.Pix[j+2] = nrgba.Pix[i+2]
	}
	return r
}

// Intensity derives the luma plane using ITU-R BT.601 weights
// (0.299*R + 0.587*G + 0.114*B) on the 0..255 scale.
func Intensity(r *Raster) *Plane {
	p := NewPlane(r.Width, r.Height)
	for i, j := 0, 0; i < len(p.Pix); i, j = i+1, j+3 {
		p.Pix[i] = 0.299*float64(r.Pix[j]) + 0.587*float64(r.Pix[j+1]) + 0.114*float64(r.Pix[j+2])
	}
	return p
}

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the encoding reported by the decoder: "png", "jpeg", "gif",
	// "bmp", "tiff" or "webp". Detection is based on file contents.
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the decoded color model carries alpha.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// DominantColors lists the most common quantized colors.
	DominantColors []ColorFrequency `json:"dominant_colors,omitempty"`
}

// LoadImageInfo reads the file at path and returns its metadata together with
// up to colorCount dominant colors (0 skips the color analysis).
//
// # Color Depth Detection
//
// Color depth is determined by the decoded Go image type:
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - All other types -> "8-bit"
func LoadImageInfo(path string, colorCount int) (*ImageInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewLoadError(path, err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewDecodeError(path, err)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewDecodeError(path, err)
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	bounds := img.Bounds()
	info := &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: int64(len(data)),
	}
	if colorCount > 0 {
		info.DominantColors = DominantColors(FromImage(img), colorCount)
	}
	return info, nil
}
