package imaging

import (
	"fmt"
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"
)

// HSVBand is an inclusive hue/saturation/value box.
//
// Hue is in degrees [0, 360); saturation and value are fractions in [0, 1].
type HSVBand struct {
	HueMin float64
	HueMax float64
	SatMin float64
	SatMax float64
	ValMin float64
	ValMax float64
}

// Contains reports whether (h, s, v) lies inside the band.
func (b HSVBand) Contains(h, s, v float64) bool {
	return h >= b.HueMin && h <= b.HueMax &&
		s >= b.SatMin && s <= b.SatMax &&
		v >= b.ValMin && v <= b.ValMax
}

// BandMask converts every pixel to HSV and marks those inside band with 255.
// It returns the mask and the number of marked pixels.
func BandMask(r *Raster, band HSVBand) (*Plane, int) {
	mask := NewPlane(r.Width, r.Height)
	count := 0
	for i, j := 0, 0; i < len(mask.Pix); i, j = i+1, j+3 {
		c := colorful.Color{
			R: float64(r.Pix[j]) / 255,
			G: float64(r.Pix[j+1]) / 255,
			B: float64(r.Pix[j+2]) / 255,
		}
		h, s, v := c.Hsv()
		if band.Contains(h, s, v) {
			mask.Pix[i] = 255
			count++
		}
	}
	return mask, count
}

// ChannelStdDev returns the population standard deviation of each RGB channel
// over the pixels where mask is non-zero. A nil mask selects every pixel.
// All three values are 0 when nothing is selected.
func ChannelStdDev(r *Raster, mask *Plane) [3]float64 {
	var channels [3][]float64
	for i, j := 0, 0; j < len(r.Pix); i, j = i+1, j+3 {
		if mask != nil && mask.Pix[i] == 0 {
			continue
		}
		channels[0] = append(channels[0], float64(r.Pix[j]))
		channels[1] = append(channels[1], float64(r.Pix[j+1]))
		channels[2] = append(channels[2], float64(r.Pix[j+2]))
	}

	var out [3]float64
	for c := range channels {
		if len(channels[c]) == 0 {
			continue
		}
		out[c] = math.Sqrt(stat.PopVariance(channels[c], nil))
	}
	return out
}

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSVColor is a color in HSV space.
type HSVColor struct {
	H float64 `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S float64 `json:"s"` // Saturation: 0-1
	V float64 `json:"v"` // Value: 0-1
}

// ColorFrequency represents a color and its occurrence frequency in an image.
type ColorFrequency struct {
	Hex        string   `json:"hex"`        // Hex color "#rrggbb" (quantized)
	Percentage float64  `json:"percentage"` // Percentage of pixels with this color (0-100)
	RGB        RGBColor `json:"rgb"`        // RGB components (quantized)
	HSV        HSVColor `json:"hsv"`        // HSV of the quantized color
}

// DominantColors returns up to count of the most common colors in r, sorted
// by frequency in descending order.
//
// # Color Quantization
//
// To group similar colors, each component is quantized to a multiple of 16:
//
//	quantized = (original / 16) * 16
//
// For example, colors #F0F0F0 and #FAFAFA both quantize to #F0F0F0.
func DominantColors(r *Raster, count int) []ColorFrequency {
	total := r.Area()
	if total == 0 || count <= 0 {
		return nil
	}

	counts := make(map[[3]uint8]int)
	for j := 0; j < len(r.Pix); j += 3 {
		key := [3]uint8{r.Pix[j] / 16 * 16, r.Pix[j+1] / 16 * 16, r.Pix[j+2] / 16 * 16}
		counts[key]++
	}

	colors := make([]ColorFrequency, 0, len(counts))
	for key, n := range counts {
		c := colorful.Color{R: float64(key[0]) / 255, G: float64(key[1]) / 255, B: float64(key[2]) / 255}
		h, s, v := c.Hsv()
		colors = append(colors, ColorFrequency{
			Hex:        c.Hex(),
			Percentage: float64(n) / float64(total) * 100,
			RGB:        RGBColor{R: key[0], G: key[1], B: key[2]},
			HSV:        HSVColor{H: h, S: s, V: v},
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if len(colors) > count {
		colors = colors[:count]
	}
	return colors
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA" (the leading # is optional).
// The alpha component defaults to 255.
func ParseHexColor(hex string) (colorful.Color, uint8, error) {
	if len(hex) == 0 {
		return colorful.Color{}, 0, fmt.Errorf("empty color string")
	}
	if hex[0] != '#' {
		hex = "#" + hex
	}

	switch len(hex) {
	case 7:
		c, err := colorful.Hex(hex)
		if err != nil {
			return colorful.Color{}, 0, err
		}
		return c, 255, nil
	case 9:
		c, err := colorful.Hex(hex[:7])
		if err != nil {
			return colorful.Color{}, 0, err
		}
		var a uint8
		if _, err := fmt.Sscanf(hex[7:], "%02x", &a); err != nil {
			return colorful.Color{}, 0, fmt.Errorf("invalid alpha in %q: %w", hex, err)
		}
		return c, a, nil
	default:
		return colorful.Color{}, 0, fmt.Errorf("invalid hex color length")
	}
}
