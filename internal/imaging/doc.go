// Package imaging provides the raster primitives the cemetery feature
// detectors are built from.
//
// Images enter the package through Load or Decode and are held as a Raster: a
// packed 8-bit RGB buffer that is never modified after loading. Every numeric
// operation works on a Plane, a row-major single-channel float64 buffer on the
// 0..255 scale, so that intermediate results (squared intensities, local
// means, spectra) keep full precision.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Plane.Pix[y*Width+x] holds
// the value at (x, y).
//
// # Border Handling
//
// Neighbourhood operations (blur, local means, Sobel gradients) replicate the
// nearest edge pixel for taps that fall outside the image. Morphological
// erosion and dilation ignore out-of-bounds taps instead, so an opening never
// invents structure at the border.
//
// # Thread Safety
//
// Rasters and Planes are plain values. Every function in this package reads
// its inputs and returns freshly allocated outputs, so independent images can
// be processed concurrently without coordination. Nothing is cached between
// calls.
//
// # Libraries
//
//   - github.com/disintegration/imaging decodes PNG, JPEG, GIF, BMP and TIFF and
//     performs Lanczos downscaling.
//   - github.com/anthonynsimon/bild supplies the Gaussian pre-blur.
//   - github.com/lucasb-eyer/go-colorful converts RGB to HSV for band masking.
//   - gonum.org/v1/gonum/stat computes plane and channel statistics.
//   - github.com/mjibson/go-dsp/fft computes 2-D spectra.
//
// # Error Handling
//
// Load and Decode return typed errors from internal/errors (load and decode
// categories). The numeric operations do not fail; they accept any plane,
// including empty ones, and return an output of the same size.
package imaging
