// Package matrix offers the dense numeric kernels behind the cross-covariance
// export.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with safe At/Set, Induced sub-block
//     copies and an optional NaN/Inf rejection policy.
//   - HStack for concatenating feature matrices along the bin axis.
//   - WeightedMeans and WeightedCovariance, the weighted jackknife estimator
//     where each row is one spatial resampling realization.
//   - CorrelationFromCovariance, which normalizes by sqrt(outer(diag, diag))
//     and propagates NaN for zero-variance bins.
//   - Cholesky, a positive-definiteness diagnostic backed by gonum.
//   - SymmetricEigenvalues, gonum-backed eigenvalues used to describe a
//     covariance that fails Cholesky.
//
// All kernels are deterministic: fixed loop orders, no map iteration and no
// randomness, so identical inputs give bit-identical outputs.
//
// See example_test.go for usage patterns.
package matrix
