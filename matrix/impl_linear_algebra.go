// SPDX-License-Identifier: MIT
// Package matrix provides structural operations on any Matrix implementation.
// All functions perform strict fail-fast validation and return clear errors on
// dimension mismatches.
//
// Purpose:
//   - Define operation tags and the shared error wrapper used across the package.
//   - Provide HStack (bin-axis concatenation) and the flat-buffer helpers the
//     statistics kernels build on.
//
// Notes:
//   - All kernels use central validators and wrap via matrixErrorf at the facade.

package matrix

import "fmt"

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opHStack             = "HStack"
	opWeightedMeans      = "WeightedMeans"
	opWeightedCovariance = "WeightedCovariance"
	opCorrelation        = "CorrelationFromCovariance"
	opCholesky           = "Cholesky"
	opEigen              = "SymmetricEigenvalues"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// HStack concatenates a and b along the column axis: [a | b].
// MAIN DESCRIPTION:
//   - Builds the joint matrix of two aligned datasets; columns [0, a.Cols())
//     come from a and [a.Cols(), a.Cols()+b.Cols()) from b.
//
// Implementation:
//   - Stage 1: validate both operands and equal row counts.
//   - Stage 2: copy row by row (Dense fast-path; At fallback).
//
// Behavior highlights:
//   - The result keeps the strict numeric policy only if both inputs do.
//   - Operands are not mutated.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (row counts differ).
//
// Complexity:
//   - Time O(r*(ca+cb)), Space O(r*(ca+cb)).
func HStack(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opHStack, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opHStack, err)
	}
	if a.Rows() != b.Rows() {
		return nil, matrixErrorf(opHStack, ErrDimensionMismatch)
	}

	r, ca, cb := a.Rows(), a.Cols(), b.Cols()
	out, err := newDenseWithPolicy(r, ca+cb, policyOf(a) && policyOf(b))
	if err != nil {
		return nil, matrixErrorf(opHStack, err)
	}

	ad, err := flatten(a)
	if err != nil {
		return nil, matrixErrorf(opHStack, err)
	}
	bd, err := flatten(b)
	if err != nil {
		return nil, matrixErrorf(opHStack, err)
	}

	c := ca + cb
	var i int
	for i = 0; i < r; i++ {
		copy(out.data[i*c:i*c+ca], ad[i*ca:(i+1)*ca])
		copy(out.data[i*c+ca:(i+1)*c], bd[i*cb:(i+1)*cb])
	}

	return out, nil
}

// policyOf reports the numeric policy of m; non-Dense matrices count as strict.
func policyOf(m Matrix) bool {
	if d, ok := m.(*Dense); ok {
		return d.validateNaNInf
	}

	return true
}

// flatten returns the row-major contents of m. For *Dense the backing slice is
// returned as-is (callers must treat it as read-only); other implementations
// are read through At in fixed i→j order.
func flatten(m Matrix) ([]float64, error) {
	if d, ok := m.(*Dense); ok {
		return d.data, nil
	}

	r, c := m.Rows(), m.Cols()
	out := make([]float64, r*c)
	var i, j int
	var err error
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if out[i*c+j], err = m.At(i, j); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
