package cemetery

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "github.com/ironsheep/cemetery-detector/internal/errors"
	"github.com/ironsheep/cemetery-detector/internal/imaging"
	"github.com/ironsheep/cemetery-detector/internal/logger"
)

// Result is the outcome of analyzing one image.
type Result struct {
	Path           string         `json:"path,omitempty"`
	Width          int            `json:"width"`
	Height         int            `json:"height"`
	Score          float64        `json:"score"`
	Likelihood     Likelihood     `json:"likelihood"`
	Features       FeatureVector  `json:"features"`
	RectangleCount int            `json:"rectangleCount"`
	Counts         map[string]int `json:"counts,omitempty"`

	// Contributions is each feature's weighted share of Score.
	Contributions map[string]float64 `json:"contributions"`
}

// ComparisonReport is a Comparison together with both analyses.
type ComparisonReport struct {
	Comparison
	A *Result `json:"a"`
	B *Result `json:"b"`
}

// Analyzer runs the detector set over images and combines their features.
// It holds no mutable state, so one Analyzer may serve concurrent calls.
type Analyzer struct {
	opts      Options
	detectors []Detector
}

// NewAnalyzer validates opts and assembles the detectors.
//
// Unless opts.Detectors overrides them, the detectors are grid regularity,
// texture uniformity, rectangular structure, vegetation and the periodicity
// strategy named by opts.Periodicity. Every feature must be owned by exactly
// one detector.
func NewAnalyzer(opts Options) (*Analyzer, error) {
	if err := opts.Toolkit.Validate(); err != nil {
		return nil, apperrors.NewValidationError("incomplete toolkit", err)
	}
	if err := opts.Params.Validate(); err != nil {
		return nil, err
	}
	if math.Abs(opts.Weights.Sum()-1) > weightTolerance {
		return nil, apperrors.NewValidationError(fmt.Sprintf("weights sum to %v, want 1", opts.Weights.Sum()), nil)
	}
	if opts.MaxDimension < 0 {
		return nil, apperrors.NewValidationError("MaxDimension must not be negative", nil)
	}

	detectors := opts.Detectors
	if detectors == nil {
		periodicity, err := NewPeriodicityDetector(opts.Periodicity, opts.Toolkit, opts.Params)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error(), nil)
		}
		detectors = []Detector{
			NewGridRegularity(opts.Toolkit, opts.Params),
			NewTextureUniformity(opts.Params),
			periodicity,
			NewRectangularStructure(opts.Toolkit, opts.Params),
			NewVegetation(opts.Params),
		}
	}
	if err := checkOwnership(detectors); err != nil {
		return nil, err
	}

	return &Analyzer{opts: opts, detectors: detectors}, nil
}

func checkOwnership(detectors []Detector) error {
	owner := make(map[string]string, numFeatures)
	for _, d := range detectors {
		for _, f := range d.Features() {
			if _, ok := featureIndex(f); !ok {
				return apperrors.NewValidationError(fmt.Sprintf("detector %s fills unknown feature %q", d.Name(), f), nil)
			}
			if prev, ok := owner[f]; ok {
				return apperrors.NewValidationError(fmt.Sprintf("feature %q is owned by both %s and %s", f, prev, d.Name()), nil)
			}
			owner[f] = d.Name()
		}
	}
	var missing []string
	for _, f := range featureNames {
		if _, ok := owner[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("no detector owns "+strings.Join(missing, ", "), nil)
	}
	return nil
}

// Options returns the options the analyzer was built with.
func (a *Analyzer) Options() Options {
	return a.opts
}

// Score loads the image at path and analyzes it.
//
// # Errors
//
//   - apperrors.ErrLoad when the file cannot be read.
//   - apperrors.ErrDecode when it is not a supported image.
//   - apperrors.ErrComputation for degenerate images or toolkit failures.
func (a *Analyzer) Score(path string) (*Result, error) {
	raster, err := imaging.Load(path)
	if err != nil {
		return nil, err
	}
	result, err := a.AnalyzeRaster(raster)
	if err != nil {
		return nil, apperrors.WithPath(err, path)
	}
	result.Path = path
	return result, nil
}

// AnalyzeRaster scores an already decoded image.
func (a *Analyzer) AnalyzeRaster(r *imaging.Raster) (*Result, error) {
	sample, err := a.sample(r)
	if err != nil {
		return nil, err
	}
	return a.Analyze(sample)
}

// Analyze runs every detector over s and combines the features.
func (a *Analyzer) Analyze(s *Sample) (*Result, error) {
	start := time.Now()
	features := make(FeatureVector, numFeatures)
	counts := make(map[string]int)

	for _, d := range a.detectors {
		m, err := d.Detect(s)
		if err != nil {
			return nil, err
		}
		for _, name := range d.Features() {
			v, ok := m.Features[name]
			if !ok {
				return nil, apperrors.NewComputationError(d.Name(), fmt.Sprintf("detector did not fill %q", name), nil)
			}
			features[name] = v
		}
		for k, v := range m.Counts {
			counts[k] = v
		}
	}

	if err := features.Complete(); err != nil {
		return nil, apperrors.NewComputationError("analyze", err.Error(), nil)
	}

	score := a.opts.Weights.Combine(features)
	result := &Result{
		Width:          s.Raster.Width,
		Height:         s.Raster.Height,
		Score:          score,
		Likelihood:     Classify(score),
		Features:       features,
		RectangleCount: counts[CountRectangles],
		Contributions:  a.opts.Weights.Contributions(features),
		Counts:         counts,
	}

	if logger.Logger.IsLevelEnabled(logrus.DebugLevel) {
		fields := logrus.Fields{
			"width":      s.Raster.Width,
			"height":     s.Raster.Height,
			"score":      score,
			"elapsed_ms": time.Since(start).Milliseconds(),
		}
		for name, v := range features {
			fields[name] = v
		}
		logger.WithFields(fields).Debug("image analyzed")
	}
	return result, nil
}

// Compare scores both images and reports which shows the stronger cemetery
// signature. Both analyses always run to completion; if either fails the
// joined errors are returned.
func (a *Analyzer) Compare(pathA, pathB string) (*ComparisonReport, error) {
	var (
		wg         sync.WaitGroup
		resA, resB *Result
		errA, errB error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		resA, errA = a.Score(pathA)
	}()
	go func() {
		defer wg.Done()
		resB, errB = a.Score(pathB)
	}()
	wg.Wait()

	if err := errors.Join(errA, errB); err != nil {
		return nil, err
	}
	return &ComparisonReport{
		Comparison: Compare(resA.Score, resB.Score),
		A:          resA,
		B:          resB,
	}, nil
}

func (a *Analyzer) sample(r *imaging.Raster) (*Sample, error) {
	if r == nil || r.Empty() {
		return nil, apperrors.NewComputationError("sample", "image has zero area", nil)
	}
	return NewSample(imaging.Fit(r, a.opts.MaxDimension))
}
