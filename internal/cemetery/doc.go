// Package cemetery scores aerial and satellite images by how strongly they
// show the layout of a planned cemetery.
//
// Five detectors fill six features, each in [0, 1]:
//
//	regularity             long axis-aligned edges (GridRegularity)
//	textureUniformity      low local variance (TextureUniformity)
//	structuralPeriodicity  line balance or spectral concentration
//	rectangularDensity     plot-sized quadrilaterals (RectangularStructure)
//	greenPercentage        vegetation cover (Vegetation)
//	colorUniformity        consistency of the vegetation color (Vegetation)
//
// The score is the dot product of the features with a WeightTable. It is not
// clamped or re-normalized, and Compare reduces two scores to a winner and a
// confidence percentage.
//
// Detectors never touch pixels directly for filtering, edges, morphology,
// thresholding, contours, lines or spectra; they go through a Toolkit so the
// whole pipeline can run on the pure-Go primitives in internal/imaging and
// internal/detection or on another backend.
//
// An Analyzer is immutable after NewAnalyzer and safe for concurrent use.
// Every call loads its own image and shares nothing but the Options.
package cemetery
