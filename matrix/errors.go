// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors and the typed error
// carried by the weighted estimator. Algorithms return these sentinels and
// tests check them via errors.Is / errors.As. No algorithm panics on
// user-triggered error conditions.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for easy grepping across logs.
// Context is added at the operation facade with matrixErrorf(op, err); callers
// still match with errors.Is.

var (
	// ErrOutOfRange indicates that an index (row, column or block boundary)
	// is outside valid bounds. Public indexers (At/Set) return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. features and weights of different shapes, or HStack on different row counts.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated symmetry
	// within the requested tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within tolerance")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required
	// by the numeric policy (ingestion, Set).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrDegenerateBin is returned by the weighted estimator when a bin has zero
	// total weight (mean undefined) or a bin pair has a zero normalization
	// denominator (covariance entry undefined). See DegenerateBinError.
	ErrDegenerateBin = errors.New("matrix: degenerate bin (zero total weight)")

	// ErrNotPositiveDefinite is returned by Cholesky when the factorization fails.
	ErrNotPositiveDefinite = errors.New("matrix: matrix is not positive definite")

	// ErrEigenFailed is returned if the eigen decomposition does not converge.
	ErrEigenFailed = errors.New("matrix: eigen decomposition did not converge")
)

// DegenerateBinError reports the first offending bin pair found by
// WeightedCovariance in i→j order. Bin == Partner for an undefined mean or a
// zero diagonal denominator. It unwraps to ErrDegenerateBin.
type DegenerateBinError struct {
	Bin     int // row index of the offending entry
	Partner int // column index of the offending entry
}

// Error implements error.
func (e *DegenerateBinError) Error() string {
	if e.Bin == e.Partner {
		return fmt.Sprintf("%s: bin %d", ErrDegenerateBin, e.Bin)
	}
	return fmt.Sprintf("%s: bins %d,%d", ErrDegenerateBin, e.Bin, e.Partner)
}

// Unwrap exposes the sentinel for errors.Is.
func (e *DegenerateBinError) Unwrap() error { return ErrDegenerateBin }
