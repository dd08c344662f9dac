// SPDX-License-Identifier: MIT

package matrix

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// SymmetricEigenvalues returns the eigenvalues of the symmetric matrix m in
// ascending order, through gonum's LAPACK-backed mat.EigenSym. Only the upper
// triangle of m is read.
// MAIN DESCRIPTION:
//   - Used as a diagnostic when Cholesky fails: the smallest eigenvalue tells
//     how far a covariance is from positive definite.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square).
//   - ErrNaNInf if any upper-triangle entry is not finite.
//   - ErrEigenFailed when the decomposition does not converge.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func SymmetricEigenvalues(m Matrix) ([]float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opEigen, err)
	}
	src, err := flatten(m)
	if err != nil {
		return nil, matrixErrorf(opEigen, err)
	}

	n := m.Rows()
	data := make([]float64, n*n)
	copy(data, src)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			if v := data[i*n+j]; math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, matrixErrorf(opEigen, denseErrorf(ctxAt, i, j, ErrNaNInf))
			}
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(mat.NewSymDense(n, data), false); !ok {
		return nil, matrixErrorf(opEigen, ErrEigenFailed)
	}
	eigs := es.Values(nil)
	sort.Float64s(eigs)

	return eigs, nil
}
