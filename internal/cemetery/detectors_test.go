package cemetery

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detect(t *testing.T, d Detector, s *Sample) Measurement {
	t.Helper()
	m, err := d.Detect(s)
	require.NoError(t, err)
	for _, name := range d.Features() {
		require.Contains(t, m.Features, name, "%s did not fill %s", d.Name(), name)
	}
	assert.Len(t, m.Features, len(d.Features()), "%s filled entries it does not own", d.Name())
	return m
}

func TestGridRegularity(t *testing.T) {
	d := NewGridRegularity(NativeToolkit(), DefaultParams())

	flat := detect(t, d, mustSample(t, flatRaster(200, 200, 128)))
	assert.InDelta(t, 0, flat.Features[FeatureRegularity], 1e-12)

	grid := detect(t, d, mustSample(t, gridRaster()))
	got := grid.Features[FeatureRegularity]
	assert.Greater(t, got, 0.02)
	assert.LessOrEqual(t, got, 1.0)
}

func TestGridRegularity_ShortEdgesRemoved(t *testing.T) {
	// Scattered 10-pixel dashes produce edges but no run long enough to
	// survive a 25-pixel opening.
	r := rasterOf(200, 200, func(x, y int) (uint8, uint8, uint8) {
		if (y/20)%2 == 0 && y%20 < 3 && x%30 < 10 && x > 5 {
			return 0, 0, 0
		}
		return 220, 220, 220
	})
	m := detect(t, NewGridRegularity(NativeToolkit(), DefaultParams()), mustSample(t, r))
	assert.InDelta(t, 0, m.Features[FeatureRegularity], 1e-12)
}

func TestTextureUniformity(t *testing.T) {
	d := NewTextureUniformity(DefaultParams())

	flat := detect(t, d, mustSample(t, flatRaster(64, 64, 90)))
	assert.InDelta(t, 1, flat.Features[FeatureTextureUniformity], 1e-9)

	noisy := rasterOf(64, 64, func(x, y int) (uint8, uint8, uint8) {
		if (x+y)%2 == 0 {
			return 0, 0, 0
		}
		return 255, 255, 255
	})
	n := detect(t, d, mustSample(t, noisy)).Features[FeatureTextureUniformity]
	assert.Greater(t, n, 0.0)
	assert.Less(t, n, 0.2)
}

func TestRectangularStructure(t *testing.T) {
	d := NewRectangularStructure(NativeToolkit(), DefaultParams())

	// The threshold turns a flat plane entirely foreground; its frame-sized
	// contour falls inside the plot band for images up to 100x100.
	for _, size := range []int{32, 64, 100, 101, 200, 400} {
		t.Run(fmt.Sprintf("flat %dx%d has no plots", size, size), func(t *testing.T) {
			m := detect(t, d, mustSample(t, flatRaster(size, size, 128)))
			assert.Equal(t, 0.0, m.Features[FeatureRectangularDensity])
			assert.Equal(t, 0, m.Counts[CountRectangles])

			plots, err := d.Plots(mustSample(t, flatRaster(size, size, 128)))
			require.NoError(t, err)
			assert.Empty(t, plots)
		})
	}

	t.Run("plot field", func(t *testing.T) {
		m := detect(t, d, mustSample(t, plotRaster(380, 280, 10, 10)))
		assert.InDelta(t, 100, m.Counts[CountRectangles], 5)
		assert.Equal(t, 1.0, m.Features[FeatureRectangularDensity])
	})

	t.Run("density is capped", func(t *testing.T) {
		m := detect(t, d, mustSample(t, gridRaster()))
		assert.Greater(t, m.Counts[CountRectangles], 2)
		assert.Equal(t, 1.0, m.Features[FeatureRectangularDensity])
	})

	t.Run("density below cap", func(t *testing.T) {
		// Four plots in a 1000x1000 image: 4 / (1e6/1e5) = 0.4.
		m := detect(t, d, mustSample(t, plotRaster(1000, 1000, 2, 2)))
		assert.Equal(t, 4, m.Counts[CountRectangles])
		assert.InDelta(t, 0.4, m.Features[FeatureRectangularDensity], 1e-12)
	})
}

func TestVegetation(t *testing.T) {
	d := NewVegetation(DefaultParams())

	t.Run("gray has no vegetation", func(t *testing.T) {
		m := detect(t, d, mustSample(t, flatRaster(50, 50, 128)))
		assert.Equal(t, 0.0, m.Features[FeatureGreenPercentage])
		assert.Equal(t, 0.0, m.Features[FeatureColorUniformity])
	})

	t.Run("uniform green field", func(t *testing.T) {
		m := detect(t, d, mustSample(t, greenRaster(50, 50)))
		assert.InDelta(t, 1, m.Features[FeatureGreenPercentage], 1e-12)
		assert.InDelta(t, 1, m.Features[FeatureColorUniformity], 1e-12)
		assert.Equal(t, 2500, m.Counts[CountGreenPixels])
	})

	t.Run("half green", func(t *testing.T) {
		r := rasterOf(40, 40, func(x, _ int) (uint8, uint8, uint8) {
			if x < 20 {
				return 60, 160, 60
			}
			return 40, 40, 160
		})
		m := detect(t, d, mustSample(t, r))
		assert.InDelta(t, 0.5, m.Features[FeatureGreenPercentage], 1e-12)
		assert.InDelta(t, 1, m.Features[FeatureColorUniformity], 1e-12)
	})

	t.Run("mottled green is less uniform", func(t *testing.T) {
		r := rasterOf(40, 40, func(x, y int) (uint8, uint8, uint8) {
			if (x+y)%2 == 0 {
				return 30, 200, 30
			}
			return 90, 130, 80
		})
		m := detect(t, d, mustSample(t, r))
		assert.InDelta(t, 1, m.Features[FeatureGreenPercentage], 1e-12)
		u := m.Features[FeatureColorUniformity]
		assert.Greater(t, u, 0.0)
		assert.Less(t, u, 1.0)
	})

	t.Run("too few green pixels", func(t *testing.T) {
		r := rasterOf(30, 30, func(x, y int) (uint8, uint8, uint8) {
			if y == 0 && x < 3 {
				return 60, 160, 60
			}
			return 128, 128, 128
		})
		m := detect(t, d, mustSample(t, r))
		assert.InDelta(t, 3.0/900, m.Features[FeatureGreenPercentage], 1e-12)
		assert.Equal(t, 0.0, m.Features[FeatureColorUniformity])
	})
}

func TestLinePeriodicity(t *testing.T) {
	d := NewLinePeriodicity(NativeToolkit(), DefaultParams())

	flat := detect(t, d, mustSample(t, flatRaster(200, 200, 128)))
	assert.Equal(t, 0.0, flat.Features[FeatureStructuralPeriodicity])

	grid := detect(t, d, mustSample(t, gridRaster()))
	got := grid.Features[FeatureStructuralPeriodicity]
	assert.Greater(t, got, 0.2)
	assert.LessOrEqual(t, got, 1.0)
	assert.Greater(t, grid.Counts[CountHorizontalLines], 0)
	assert.Greater(t, grid.Counts[CountVerticalLines], 0)
}

func TestLinePeriodicity_Unbalanced(t *testing.T) {
	// Horizontal stripes only: every line is horizontal, so balance is 0.
	r := rasterOf(300, 300, func(_, y int) (uint8, uint8, uint8) {
		if (y/30)%2 == 0 {
			return 30, 30, 30
		}
		return 220, 220, 220
	})
	m := detect(t, NewLinePeriodicity(NativeToolkit(), DefaultParams()), mustSample(t, r))
	assert.Greater(t, m.Counts[CountHorizontalLines], 0)
	assert.Equal(t, 0, m.Counts[CountVerticalLines])
	assert.InDelta(t, 0, m.Features[FeatureStructuralPeriodicity], 1e-12)
}

func TestFrequencyPeriodicity(t *testing.T) {
	d := NewFrequencyPeriodicity(NativeToolkit(), DefaultParams())

	flat := detect(t, d, mustSample(t, flatRaster(64, 64, 128)))
	assert.InDelta(t, 0, flat.Features[FeatureStructuralPeriodicity], 1e-6)

	grid := detect(t, d, mustSample(t, gridRaster()))
	got := grid.Features[FeatureStructuralPeriodicity]
	assert.Greater(t, got, flat.Features[FeatureStructuralPeriodicity])
	assert.LessOrEqual(t, got, 1.0)
}

func TestPeriodicityStrategy(t *testing.T) {
	for _, s := range []string{"lines", "frequency"} {
		got, err := ParsePeriodicityStrategy(s)
		require.NoError(t, err)
		assert.Equal(t, PeriodicityStrategy(s), got)

		d, err := NewPeriodicityDetector(got, NativeToolkit(), DefaultParams())
		require.NoError(t, err)
		assert.Equal(t, []string{FeatureStructuralPeriodicity}, d.Features())
	}

	_, err := ParsePeriodicityStrategy("wavelet")
	assert.Error(t, err)
	_, err = NewPeriodicityDetector("wavelet", NativeToolkit(), DefaultParams())
	assert.Error(t, err)
}
