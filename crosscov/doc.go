// SPDX-License-Identifier: MIT

// Package crosscov estimates the cross-covariance between two jackknife
// correlation-function measurements.
//
// Estimate runs the whole pipeline on two datasets:
//
//	Align -> Joint -> WeightedCovariance -> Extract -> CheckPositiveDefinite
//
// and returns a Result holding the full covariance and correlation
// matrices together with their cross blocks (rows of the first dataset,
// columns of the second). Numerical degeneracies never abort a run: NaN
// correlations are counted and a covariance that fails Cholesky is reported
// through Result.PositiveDefinite. Structural problems (shape, duplicate
// pixels, bins without weight) are returned as errors.
package crosscov
