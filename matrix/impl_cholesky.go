// SPDX-License-Identifier: MIT

package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// CholeskyReport summarizes a successful factorization.
type CholeskyReport struct {
	N      int     // order of the factorized matrix
	LogDet float64 // log of the determinant
	Cond   float64 // 2-norm condition number estimate
}

// Cholesky attempts the Cholesky factorization of the symmetric matrix m
// (upper triangle is used) through gonum's LAPACK-backed mat.Cholesky.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square).
//   - ErrNaNInf if any upper-triangle entry is not finite.
//   - ErrNotPositiveDefinite when the factorization fails.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func Cholesky(m Matrix) (*CholeskyReport, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	src, err := flatten(m)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}

	n := m.Rows()
	data := make([]float64, n*n) // gonum takes ownership; never hand it our buffer
	copy(data, src)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			if v := data[i*n+j]; math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, matrixErrorf(opCholesky, denseErrorf(ctxAt, i, j, ErrNaNInf))
			}
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(mat.NewSymDense(n, data)); !ok {
		return nil, matrixErrorf(opCholesky, ErrNotPositiveDefinite)
	}

	return &CholeskyReport{N: n, LogDet: chol.LogDet(), Cond: chol.Cond()}, nil
}
