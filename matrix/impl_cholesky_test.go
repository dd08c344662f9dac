// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/crosscov/matrix"
)

func TestCholesky_PositiveDefinite(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 2, 2, []float64{4, 2, 2, 3})
	rep, err := matrix.Cholesky(m)
	if err != nil {
		t.Fatalf("Cholesky: %v", err)
	}
	if rep.N != 2 {
		t.Fatalf("N: got %d", rep.N)
	}
	// det = 4*3 - 2*2 = 8
	if math.Abs(rep.LogDet-math.Log(8)) > 1e-12 {
		t.Fatalf("LogDet: got %g want %g", rep.LogDet, math.Log(8))
	}
	if rep.Cond < 1 {
		t.Fatalf("Cond must be >= 1, got %g", rep.Cond)
	}
}

func TestCholesky_Failures(t *testing.T) {
	t.Parallel()

	singular := NewFilledDense(t, 2, 2, []float64{1, 1, 1, 1})
	_, err := matrix.Cholesky(singular)
	AssertErrorIs(t, err, matrix.ErrNotPositiveDefinite)

	indefinite := NewFilledDense(t, 2, 2, []float64{1, 0, 0, -1})
	_, err = matrix.Cholesky(indefinite)
	AssertErrorIs(t, err, matrix.ErrNotPositiveDefinite)

	_, err = matrix.Cholesky(MustDense(t, 2, 3))
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)

	cov := NewFilledDense(t, 2, 2, []float64{4, 0, 0, 0})
	cor, _, _ := matrix.CorrelationFromCovariance(cov)
	_, err = matrix.Cholesky(cor)
	AssertErrorIs(t, err, matrix.ErrNaNInf)
}

func TestCholesky_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 2, 2, []float64{4, 2, 2, 3})
	if _, err := matrix.Cholesky(m); err != nil {
		t.Fatalf("Cholesky: %v", err)
	}
	CompareExact(t, [][]float64{{4, 2}, {2, 3}}, m)
}
