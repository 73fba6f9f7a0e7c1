package cemetery

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/cemetery-detector/internal/imaging"
)

// rasterOf builds a raster from a per-pixel color function.
func rasterOf(width, height int, f func(x, y int) (uint8, uint8, uint8)) *imaging.Raster {
	r := &imaging.Raster{Width: width, Height: height, Pix: make([]uint8, 3*width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := 3 * (y*width + x)
			r.Pix[i], r.Pix[i+1], r.Pix[i+2] = f(x, y)
		}
	}
	return r
}

func flatRaster(width, height int, v uint8) *imaging.Raster {
	return rasterOf(width, height, func(int, int) (uint8, uint8, uint8) { return v, v, v })
}

// gridRaster draws 3-pixel dark lines every 40 pixels on a light background,
// starting 20 pixels in, in both directions.
func gridRaster() *imaging.Raster {
	onLine := func(c int) bool { return c >= 20 && (c-20)%40 < 3 }
	return rasterOf(400, 400, func(x, y int) (uint8, uint8, uint8) {
		if onLine(x) || onLine(y) {
			return 50, 50, 50
		}
		return 200, 200, 200
	})
}

// plotRaster draws a cols x rows field of bright 30x20 plots separated by
// 8-pixel dark paths, 4 pixels from the top-left corner. Ground beyond the
// field stays dark.
func plotRaster(width, height, cols, rows int) *imaging.Raster {
	return rasterOf(width, height, func(x, y int) (uint8, uint8, uint8) {
		px, py := x-4, y-4
		if px >= 0 && py >= 0 && px/38 < cols && py/28 < rows && px%38 < 30 && py%28 < 20 {
			return 210, 210, 210
		}
		return 60, 60, 60
	})
}

func greenRaster(width, height int) *imaging.Raster {
	return rasterOf(width, height, func(int, int) (uint8, uint8, uint8) { return 60, 160, 60 })
}

// writeRaster saves r as a PNG under a test temp dir.
func writeRaster(t *testing.T, dir, name string, r *imaging.Raster) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, r.Image()))
	return path
}

func mustSample(t *testing.T, r *imaging.Raster) *Sample {
	t.Helper()
	s, err := NewSample(r)
	require.NoError(t, err)
	return s
}

func mustAnalyzer(t *testing.T, opts Options) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(opts)
	require.NoError(t, err)
	return a
}
