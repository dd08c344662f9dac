// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the weighted jackknife statistics: weighted column means, the
//     weighted covariance across realizations (rows), and the normalization of
//     a covariance into a correlation matrix.
//
// Exposed API:
//   - WeightedMeans(X, W)              -> (means, weightSums)
//   - WeightedCovariance(X, W, opts)   -> Cov (c×c), exact mirror symmetry
//   - CorrelationFromCovariance(Cov)   -> (Corr, nanCount)
//
// Determinism & Performance:
//   - Fixed i→j→k traversal; k (realization) is always summed in ascending order.
//   - Residuals are laid out column-major once so the O(r*c²) Gram loop walks
//     contiguous memory.
//   - Only the upper triangle is computed; the lower triangle is a bitwise mirror.
//
// AI-Hints:
//   - Rows are realizations (spatial regions), columns are bins.
//   - A zero weight removes a realization from a bin; padding rows are all-zero.

package matrix

import "math"

// WeightedMeans returns mean_j = Σ_k w_kj·x_kj / Σ_k w_kj and the weight sums Σ_k w_kj.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (shapes differ).
//   - *DegenerateBinError{Bin: j, Partner: j} when Σ_k w_kj == 0.
//
// Complexity:
//   - Time O(r*c), Space O(c).
func WeightedMeans(X, W Matrix) ([]float64, []float64, error) {
	if err := ValidateBinarySameShape(X, W); err != nil {
		return nil, nil, matrixErrorf(opWeightedMeans, err)
	}
	xs, err := flatten(X)
	if err != nil {
		return nil, nil, matrixErrorf(opWeightedMeans, err)
	}
	ws, err := flatten(W)
	if err != nil {
		return nil, nil, matrixErrorf(opWeightedMeans, err)
	}

	means, sums, err := weightedMeans(xs, ws, X.Rows(), X.Cols())
	if err != nil {
		return nil, nil, matrixErrorf(opWeightedMeans, err)
	}

	return means, sums, nil
}

// weightedMeans is the flat-buffer kernel behind WeightedMeans.
func weightedMeans(xs, ws []float64, r, c int) ([]float64, []float64, error) {
	means := make([]float64, c)
	sums := make([]float64, c)

	var k, j, base int
	for k = 0; k < r; k++ {
		base = k * c
		for j = 0; j < c; j++ {
			means[j] += ws[base+j] * xs[base+j]
			sums[j] += ws[base+j]
		}
	}
	for j = 0; j < c; j++ {
		if sums[j] == 0 {
			return nil, nil, &DegenerateBinError{Bin: j, Partner: j}
		}
		means[j] /= sums[j]
	}

	return means, sums, nil
}

// WeightedCovariance computes the weighted covariance of the columns of X,
// treating every row as one resampling realization.
// MAIN DESCRIPTION:
//
//	mean_i   = Σ_k w_ki·x_ki / Σ_k w_ki
//	num(i,j) = Σ_k (w_ki·(x_ki − mean_i)) · (w_kj·(x_kj − mean_j))
//	cov(i,j) = num(i,j) / Σ_k w_ki·w_kj          (PairwiseWeight, default)
//	cov(i,j) = num(i,j) / (Σ_k w_ki · Σ_k w_kj)  (WeightSumProduct)
//
// Implementation:
//   - Stage 1: validate X, W (non-nil, same shape) and resolve options.
//   - Stage 2: weighted means; a zero weight sum fails fast.
//   - Stage 3: build column-major weighted residual panels A[j][k] and weight panels.
//   - Stage 4: Gram loop over the upper triangle i≤j, k ascending; mirror into (j,i).
//
// Behavior highlights:
//   - cov(i,j) and cov(j,i) are the same float64 value (not merely close).
//   - Two bit-identical input columns yield bit-identical covariance rows.
//
// Inputs:
//   - X: features (r×c), W: weights (r×c). r realizations, c bins.
//   - opts: WithNormalization.
//
// Returns:
//   - *Dense (c×c) with the strict numeric policy.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//   - *DegenerateBinError (unwraps to ErrDegenerateBin) for the first zero
//     denominator in i→j order.
//   - ErrNaNInf when an entry overflows.
//
// Determinism:
//   - Fixed accumulation order; repeated runs are bit-identical.
//
// Complexity:
//   - Time O(r*c²), Space O(r*c + c²).
func WeightedCovariance(X, W Matrix, opts ...Option) (*Dense, error) {
	if err := ValidateBinarySameShape(X, W); err != nil {
		return nil, matrixErrorf(opWeightedCovariance, err)
	}
	o := gatherOptions(opts...)

	r, c := X.Rows(), X.Cols()
	xs, err := flatten(X)
	if err != nil {
		return nil, matrixErrorf(opWeightedCovariance, err)
	}
	ws, err := flatten(W)
	if err != nil {
		return nil, matrixErrorf(opWeightedCovariance, err)
	}

	// Stage 2: means; the mean of a bin without weight is undefined.
	means, sums, err := weightedMeans(xs, ws, r, c)
	if err != nil {
		return nil, matrixErrorf(opWeightedCovariance, err)
	}

	// Stage 3: column-major panels, panel j occupies [j*r, (j+1)*r).
	resid := make([]float64, r*c)
	wpan := make([]float64, r*c)
	var i, j, k int
	for k = 0; k < r; k++ {
		for j = 0; j < c; j++ {
			w := ws[k*c+j]
			resid[j*r+k] = w * (xs[k*c+j] - means[j])
			wpan[j*r+k] = w
		}
	}

	cov, err := NewDense(c, c)
	if err != nil {
		return nil, matrixErrorf(opWeightedCovariance, err)
	}

	// Stage 4: upper-triangle Gram products with mirrored fill.
	var num, den, v float64
	for i = 0; i < c; i++ {
		ai := resid[i*r : (i+1)*r]
		wi := wpan[i*r : (i+1)*r]
		for j = i; j < c; j++ {
			aj := resid[j*r : (j+1)*r]
			wj := wpan[j*r : (j+1)*r]

			num, den = 0, 0
			for k = 0; k < r; k++ {
				num += ai[k] * aj[k]
				den += wi[k] * wj[k]
			}
			if o.normalization == WeightSumProduct {
				den = sums[i] * sums[j]
			}
			if den == 0 {
				return nil, matrixErrorf(opWeightedCovariance, &DegenerateBinError{Bin: i, Partner: j})
			}

			v = num / den
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, matrixErrorf(opWeightedCovariance, denseErrorf(ctxSet, i, j, ErrNaNInf))
			}
			cov.data[i*c+j] = v
			cov.data[j*c+i] = v
		}
	}

	return cov, nil
}

// CorrelationFromCovariance normalizes cov entrywise by sqrt(outer(diag, diag)):
// Corr[i,j] = Cov[i,j] / sqrt(Cov[i,i]·Cov[j,j]).
//
// Behavior highlights:
//   - Where Cov[i,i] == 0 or Cov[j,j] == 0 the entry is NaN (never substituted); the
//     count of NaN entries is returned so callers can report it.
//   - The result is created with the numeric policy OFF so NaN is representable.
//   - Corr[i,i] == 1 exactly for every i with Cov[i,i] > 0.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square).
//
// Complexity:
//   - Time O(n²), Space O(n²).
func CorrelationFromCovariance(cov Matrix) (*Dense, int, error) {
	if err := ValidateSquareNonNil(cov); err != nil {
		return nil, 0, matrixErrorf(opCorrelation, err)
	}
	cs, err := flatten(cov)
	if err != nil {
		return nil, 0, matrixErrorf(opCorrelation, err)
	}

	n := cov.Rows()
	out, err := newDenseWithPolicy(n, n, false)
	if err != nil {
		return nil, 0, matrixErrorf(opCorrelation, err)
	}

	diag := make([]float64, n)
	var i, j, nan int
	for i = 0; i < n; i++ {
		diag[i] = cs[i*n+i]
	}

	// Square roots are taken per factor: the product of two variances
	// underflows below ~1e-162 and overflows above ~1e154.
	sd := make([]float64, n)
	for i = 0; i < n; i++ {
		sd[i] = math.Sqrt(diag[i])
	}

	var v float64
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			switch {
			case diag[i] == 0 || diag[j] == 0:
				v = math.NaN()
			case i == j && diag[i] > 0:
				v = 1
			default:
				v = cs[i*n+j] / (sd[i] * sd[j])
			}
			if math.IsNaN(v) {
				nan++
			}
			out.data[i*n+j] = v
		}
	}

	return out, nan, nil
}
