package cemetery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ironsheep/cemetery-detector/internal/errors"
	"github.com/ironsheep/cemetery-detector/internal/imaging"
)

func assertFeatureRanges(t *testing.T, fv FeatureVector) {
	t.Helper()
	require.NoError(t, fv.Complete())
	for _, name := range FeatureNames() {
		assert.GreaterOrEqual(t, fv[name], 0.0, name)
		assert.LessOrEqual(t, fv[name], 1.0, name)
	}
	assert.Greater(t, fv[FeatureTextureUniformity], 0.0)
}

func TestNewAnalyzer_Defaults(t *testing.T) {
	a := mustAnalyzer(t, DefaultOptions())
	assert.Len(t, a.detectors, 5)
	assert.Equal(t, PeriodicityLines, a.Options().Periodicity)
}

func TestNewAnalyzer_Validation(t *testing.T) {
	broken := DefaultParams()
	broken.BlurSize = 4

	tests := []struct {
		name string
		opts Options
	}{
		{"incomplete toolkit", DefaultOptions().WithToolkit(Toolkit{})},
		{"bad params", DefaultOptions().WithParams(broken)},
		{"zero weights", DefaultOptions().WithWeights(WeightTable{})},
		{"negative max dimension", DefaultOptions().WithMaxDimension(-1)},
		{"unknown strategy", DefaultOptions().WithPeriodicity("wavelet")},
		{"feature owned twice", DefaultOptions().WithDetectors(
			NewGridRegularity(NativeToolkit(), DefaultParams()),
			NewGridRegularity(NativeToolkit(), DefaultParams()),
			NewTextureUniformity(DefaultParams()),
			NewLinePeriodicity(NativeToolkit(), DefaultParams()),
			NewRectangularStructure(NativeToolkit(), DefaultParams()),
			NewVegetation(DefaultParams()),
		)},
		{"feature unowned", DefaultOptions().WithDetectors(
			NewGridRegularity(NativeToolkit(), DefaultParams()),
			NewTextureUniformity(DefaultParams()),
			NewRectangularStructure(NativeToolkit(), DefaultParams()),
			NewVegetation(DefaultParams()),
		)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAnalyzer(tt.opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrValidation), "got %v", err)
		})
	}
}

func TestAnalyzeRaster_SmallFlatGray(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		r    *imaging.Raster
	}{
		{"32x32", DefaultOptions(), flatRaster(32, 32, 128)},
		{"64x64", DefaultOptions(), flatRaster(64, 64, 200)},
		{"100x100", DefaultOptions(), flatRaster(100, 100, 128)},
		{"downscaled to 80", DefaultOptions().WithMaxDimension(80), flatRaster(400, 300, 128)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := mustAnalyzer(t, tt.opts).AnalyzeRaster(tt.r)
			require.NoError(t, err)
			assert.Equal(t, 0.0, result.Features[FeatureRectangularDensity])
			assert.Equal(t, 0, result.RectangleCount)
			assert.InDelta(t, 0.2, result.Score, 1e-9)
			assert.Equal(t, LikelihoodLow, result.Likelihood)
		})
	}
}

func TestAnalyzeRaster_FlatGray(t *testing.T) {
	a := mustAnalyzer(t, DefaultOptions())

	result, err := a.AnalyzeRaster(flatRaster(200, 200, 128))
	require.NoError(t, err)
	assertFeatureRanges(t, result.Features)

	f := result.Features
	assert.InDelta(t, 0, f[FeatureRegularity], 1e-9)
	assert.InDelta(t, 0, f[FeatureRectangularDensity], 1e-9)
	assert.InDelta(t, 0, f[FeatureGreenPercentage], 1e-9)
	assert.InDelta(t, 0, f[FeatureStructuralPeriodicity], 1e-9)
	assert.InDelta(t, 1, f[FeatureTextureUniformity], 1e-9)
	// No vegetation to measure.
	assert.Equal(t, 0.0, f[FeatureColorUniformity])

	assert.InDelta(t, 0.2, result.Score, 1e-9)
	assert.Equal(t, LikelihoodLow, result.Likelihood)
	assert.Equal(t, 0, result.RectangleCount)
}

func TestAnalyzeRaster_GridBeatsFlat(t *testing.T) {
	for _, strategy := range []PeriodicityStrategy{PeriodicityLines, PeriodicityFrequency} {
		t.Run(string(strategy), func(t *testing.T) {
			a := mustAnalyzer(t, DefaultOptions().WithPeriodicity(strategy))

			flat, err := a.AnalyzeRaster(flatRaster(400, 400, 128))
			require.NoError(t, err)
			grid, err := a.AnalyzeRaster(gridRaster())
			require.NoError(t, err)
			assertFeatureRanges(t, grid.Features)

			assert.Greater(t, grid.Features[FeatureRegularity], flat.Features[FeatureRegularity])
			assert.Greater(t, grid.Features[FeatureStructuralPeriodicity], flat.Features[FeatureStructuralPeriodicity])
			assert.Greater(t, grid.Features[FeatureRectangularDensity], 0.5)
			assert.Greater(t, grid.RectangleCount, 0)
		})
	}
}

func TestAnalyzeRaster_ScoreIsWeightedSum(t *testing.T) {
	custom, err := NewWeightTable(map[string]float64{
		FeatureRegularity:            0.5,
		FeatureTextureUniformity:     0.1,
		FeatureStructuralPeriodicity: 0.1,
		FeatureRectangularDensity:    0.1,
		FeatureGreenPercentage:       0.1,
		FeatureColorUniformity:       0.1,
	})
	require.NoError(t, err)

	rasters := map[string]*imaging.Raster{
		"flat":  flatRaster(200, 200, 100),
		"grid":  gridRaster(),
		"plots": plotRaster(380, 280, 10, 10),
		"green": greenRaster(120, 80),
	}
	for _, weights := range []WeightTable{DefaultWeights(), custom} {
		a := mustAnalyzer(t, DefaultOptions().WithWeights(weights))
		for name, r := range rasters {
			result, err := a.AnalyzeRaster(r)
			require.NoError(t, err, name)
			assertFeatureRanges(t, result.Features)

			var want, shares float64
			for _, f := range FeatureNames() {
				want += weights.Weight(f) * result.Features[f]
				shares += result.Contributions[f]
			}
			assert.InDelta(t, want, result.Score, 1e-9, name)
			assert.InDelta(t, result.Score, shares, 1e-9, name)
			assert.Equal(t, Classify(result.Score), result.Likelihood, name)
		}
	}
}

func TestAnalyzeRaster_GreenField(t *testing.T) {
	a := mustAnalyzer(t, DefaultOptions())
	result, err := a.AnalyzeRaster(greenRaster(200, 200))
	require.NoError(t, err)
	assert.InDelta(t, 1, result.Features[FeatureGreenPercentage], 1e-12)
	assert.InDelta(t, 1, result.Features[FeatureColorUniformity], 1e-12)
	// texture 0.20 + green 0.10 + color 0.10
	assert.InDelta(t, 0.4, result.Score, 1e-9)
	assert.Equal(t, LikelihoodMedium, result.Likelihood)
}

func TestAnalyzeRaster_ZeroArea(t *testing.T) {
	a := mustAnalyzer(t, DefaultOptions())
	_, err := a.AnalyzeRaster(&imaging.Raster{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrComputation))
}

func TestAnalyzeRaster_Downscale(t *testing.T) {
	a := mustAnalyzer(t, DefaultOptions().WithMaxDimension(100))
	result, err := a.AnalyzeRaster(flatRaster(400, 200, 128))
	require.NoError(t, err)
	assert.Equal(t, 100, result.Width)
	assert.Equal(t, 50, result.Height)
}

func TestScore(t *testing.T) {
	a := mustAnalyzer(t, DefaultOptions())
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := writeRaster(t, dir, "grid.png", gridRaster())
		result, err := a.Score(path)
		require.NoError(t, err)
		assert.Equal(t, path, result.Path)
		assert.Equal(t, 400, result.Width)

		direct, err := a.AnalyzeRaster(gridRaster())
		require.NoError(t, err)
		assert.InDelta(t, direct.Score, result.Score, 1e-12)
	})

	t.Run("missing file", func(t *testing.T) {
		result, err := a.Score(filepath.Join(dir, "missing.png"))
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, apperrors.ErrLoad))
		assert.False(t, errors.Is(err, apperrors.ErrDecode))
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt.png")
		require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))
		_, err := a.Score(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrDecode))
		assert.Equal(t, apperrors.ErrorTypeDecode, apperrors.TypeOf(err))
	})
}

type failingBlur struct{}

func (failingBlur) Blur(*imaging.Plane, int) (*imaging.Plane, error) {
	return nil, errors.New("backend unavailable")
}

func TestAnalyze_ToolkitFailure(t *testing.T) {
	tk := NativeToolkit()
	tk.Blur = failingBlur{}
	a := mustAnalyzer(t, DefaultOptions().WithToolkit(tk))

	_, err := a.AnalyzeRaster(flatRaster(50, 50, 10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrComputation))
	assert.Contains(t, err.Error(), "backend unavailable")
}

func TestAnalyzerCompare(t *testing.T) {
	a := mustAnalyzer(t, DefaultOptions())
	dir := t.TempDir()
	grid := writeRaster(t, dir, "grid.png", gridRaster())
	flat := writeRaster(t, dir, "flat.png", flatRaster(400, 400, 128))

	t.Run("same image is a tie", func(t *testing.T) {
		report, err := a.Compare(grid, grid)
		require.NoError(t, err)
		assert.Equal(t, WinnerTie, report.Winner)
		assert.Equal(t, 0.0, report.ConfidencePercent)
		assert.Equal(t, report.A.Score, report.B.Score)
	})

	t.Run("symmetric", func(t *testing.T) {
		ab, err := a.Compare(grid, flat)
		require.NoError(t, err)
		ba, err := a.Compare(flat, grid)
		require.NoError(t, err)
		assert.Equal(t, WinnerA, ab.Winner)
		assert.Equal(t, WinnerB, ba.Winner)
		assert.Equal(t, ab.ScoreA, ba.ScoreB)
		assert.Equal(t, ab.ConfidencePercent, ba.ConfidencePercent)
	})

	t.Run("failure is reported", func(t *testing.T) {
		_, err := a.Compare(grid, filepath.Join(dir, "missing.png"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrLoad))
	})
}
