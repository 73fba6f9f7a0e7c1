package cemetery

// Options configures an Analyzer. Build one with DefaultOptions and the With
// methods; the zero value is not valid.
type Options struct {
	// Strategy selecting the structuralPeriodicity detector
	Periodicity PeriodicityStrategy

	// Numeric primitives and constants shared by all detectors
	Toolkit Toolkit
	Params  Params
	Weights WeightTable

	// Longest side after downscaling; 0 analyzes images at full size
	MaxDimension int

	// Batch ranking
	Workers int // 0 = one per CPU
	Lenient bool

	// Detectors overrides the standard set when non-nil.
	Detectors []Detector
}

// DefaultOptions returns the line-orientation strategy on the native toolkit
// with the canonical constants and weights.
func DefaultOptions() Options {
	return Options{
		Periodicity:  PeriodicityLines,
		Toolkit:      NativeToolkit(),
		Params:       DefaultParams(),
		Weights:      DefaultWeights(),
		MaxDimension: 0,
		Workers:      0,
		Lenient:      false,
	}
}

// WithPeriodicity selects the structuralPeriodicity strategy.
func (opts Options) WithPeriodicity(strategy PeriodicityStrategy) Options {
	opts.Periodicity = strategy
	return opts
}

// WithToolkit binds the detectors to a different numeric backend.
func (opts Options) WithToolkit(toolkit Toolkit) Options {
	opts.Toolkit = toolkit
	return opts
}

// WithParams replaces the detector constants.
func (opts Options) WithParams(params Params) Options {
	opts.Params = params
	return opts
}

// WithWeights replaces the combiner weights.
func (opts Options) WithWeights(weights WeightTable) Options {
	opts.Weights = weights
	return opts
}

// WithMaxDimension downscales images whose longest side exceeds n.
func (opts Options) WithMaxDimension(n int) Options {
	opts.MaxDimension = n
	return opts
}

// WithWorkers bounds batch parallelism.
func (opts Options) WithWorkers(n int) Options {
	opts.Workers = n
	return opts
}

// WithLenientBatch makes Rank substitute a zero score for failed images
// instead of leaving them unranked.
func (opts Options) WithLenientBatch() Options {
	opts.Lenient = true
	return opts
}

// WithDetectors replaces the standard detector set.
func (opts Options) WithDetectors(detectors ...Detector) Options {
	opts.Detectors = detectors
	return opts
}
