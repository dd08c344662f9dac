// SPDX-License-Identifier: MIT

package crosscov_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/crosscov/crosscov"
	"github.com/katalvlaran/crosscov/jackknife"
	"github.com/katalvlaran/crosscov/logging"
	"github.com/katalvlaran/crosscov/matrix"
)

func newDataset(t *testing.T, ids []int64, bins int, feat, wts []float64) jackknife.Dataset {
	t.Helper()
	F, err := matrix.NewDenseFrom(len(ids), bins, feat)
	require.NoError(t, err)
	W, err := matrix.NewDenseFrom(len(ids), bins, wts)
	require.NoError(t, err)
	d, err := jackknife.NewDataset(F, W, ids)
	require.NoError(t, err)

	return d
}

// randomDataset draws features in [-1,1) and weights in [0.5,1.5).
func randomDataset(t *testing.T, rng *rand.Rand, ids []int64, bins int) jackknife.Dataset {
	t.Helper()
	n := len(ids) * bins
	feat, wts := make([]float64, n), make([]float64, n)
	for k := 0; k < n; k++ {
		feat[k] = 2*rng.Float64() - 1
		wts[k] = 0.5 + rng.Float64()
	}

	return newDataset(t, ids, bins, feat, wts)
}

func seq(from, n int64) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = from + int64(i)
	}

	return out
}

func at(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

func requireBitEqual(t *testing.T, want, got matrix.Matrix) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows())
	require.Equal(t, want.Cols(), got.Cols())
	for i := 0; i < want.Rows(); i++ {
		for j := 0; j < want.Cols(); j++ {
			require.Equal(t, math.Float64bits(at(t, want, i, j)), math.Float64bits(at(t, got, i, j)),
				"entry (%d,%d)", i, j)
		}
	}
}

func TestEstimate_ScenarioA(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	d0 := newDataset(t, []int64{1, 2, 3}, 1, []float64{10, 20, 30}, []float64{1, 1, 1})
	d1 := newDataset(t, []int64{2, 3, 4}, 1, []float64{20, 30, 40}, []float64{1, 1, 1})

	res, err := crosscov.Estimate(d0, d1, crosscov.WithLogger(logging.NewFromCore(core)))
	require.NoError(t, err)

	require.Equal(t, []int64{1, 2, 3, 4}, res.PixelIDs)
	require.Equal(t, 1, res.N1)
	require.Equal(t, 1, res.N2)
	require.Equal(t, []int64{4}, res.InjectedFirst)
	require.Equal(t, []int64{1}, res.InjectedSecond)

	// residuals [-10,0,10,0] and [0,-10,0,10]; overlap weight 2.
	require.Equal(t, 200.0/3, at(t, res.Covariance, 0, 0))
	require.Equal(t, 200.0/3, at(t, res.Covariance, 1, 1))
	require.Equal(t, 0.0, at(t, res.CrossCovariance, 0, 0))
	require.Equal(t, 0.0, at(t, res.CrossCorrelation, 0, 0))
	require.True(t, res.PositiveDefinite)
	require.Zero(t, res.NaNCorrelations)

	require.Len(t, logs.FilterMessage("some healpix are unshared").All(), 2)
	require.Len(t, logs.FilterMessage("cross covariance estimated").All(), 1)
}

func TestEstimate_ScenarioB_DisjointIsDegenerate(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	d0 := randomDataset(t, rng, seq(0, 5), 1)
	d1 := randomDataset(t, rng, seq(100, 5), 1)

	_, err := crosscov.Estimate(d0, d1)
	require.ErrorIs(t, err, matrix.ErrDegenerateBin)
	var de *matrix.DegenerateBinError
	require.True(t, errors.As(err, &de))
	require.Equal(t, 0, de.Bin)
	require.Equal(t, 1, de.Partner)

	// The sum-product denominator never vanishes here; the cross term is zero.
	res, err := crosscov.Estimate(d0, d1, crosscov.WithNormalization(matrix.WeightSumProduct))
	require.NoError(t, err)
	require.Len(t, res.PixelIDs, 10)
	require.Equal(t, 0.0, at(t, res.CrossCovariance, 0, 0))
}

func TestEstimate_ScenarioC_IdenticalDatasets(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	d := randomDataset(t, rng, seq(10, 40), 5)

	auto, err := matrix.WeightedCovariance(d.Features, d.Weights)
	require.NoError(t, err)

	res, err := crosscov.Estimate(d, d)
	require.NoError(t, err)
	require.Empty(t, res.InjectedFirst)
	require.Empty(t, res.InjectedSecond)
	requireBitEqual(t, auto, res.CrossCovariance)
	for i := 0; i < 5; i++ {
		require.Equal(t, 1.0, at(t, res.CrossCorrelation, i, i))
	}
}

func TestEstimate_CrossBlockIsSliceOfCovariance(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	d0 := randomDataset(t, rng, seq(0, 30), 3)
	d1 := randomDataset(t, rng, seq(4, 30), 4)

	res, err := crosscov.Estimate(d0, d1)
	require.NoError(t, err)
	require.Equal(t, 3, res.N1)
	require.Equal(t, 4, res.N2)
	for i := 0; i < res.N1; i++ {
		for j := 0; j < res.N2; j++ {
			require.Equal(t,
				math.Float64bits(at(t, res.Covariance, i, res.N1+j)),
				math.Float64bits(at(t, res.CrossCovariance, i, j)))
			require.Equal(t,
				math.Float64bits(at(t, res.Correlation, i, res.N1+j)),
				math.Float64bits(at(t, res.CrossCorrelation, i, j)))
		}
	}
	for i := 0; i < res.N1+res.N2; i++ {
		require.Equal(t, 1.0, at(t, res.Correlation, i, i))
	}
	require.NoError(t, matrix.ValidateSymmetric(res.Covariance, 1e-10))
}

func TestEstimate_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	d0 := randomDataset(t, rng, seq(0, 25), 4)
	d1 := randomDataset(t, rng, seq(10, 25), 2)

	a, err := crosscov.Estimate(d0, d1)
	require.NoError(t, err)
	b, err := crosscov.Estimate(d0, d1)
	require.NoError(t, err)
	requireBitEqual(t, a.Covariance, b.Covariance)
	requireBitEqual(t, a.Correlation, b.Correlation)
	require.Equal(t, a.PositiveDefinite, b.PositiveDefinite)
}

func TestEstimate_ZeroVarianceBin(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ids := seq(0, 6)
	// bin 1 of the first dataset is constant, so its variance is exactly zero.
	d0 := newDataset(t, ids, 2,
		[]float64{1, 5, 2, 5, 3, 5, 4, 5, 5, 5, 6, 5},
		[]float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1})
	d1 := newDataset(t, ids, 1, []float64{3, 1, 4, 1, 5, 9}, []float64{1, 1, 1, 1, 1, 1})

	res, err := crosscov.Estimate(d0, d1, crosscov.WithLogger(logging.NewFromCore(core)))
	require.NoError(t, err)
	require.Equal(t, 1, res.NaNCorrelations)
	require.True(t, math.IsNaN(at(t, res.CrossCorrelation, 1, 0)))
	require.False(t, math.IsNaN(at(t, res.CrossCorrelation, 0, 0)))
	require.False(t, res.PositiveDefinite)

	require.Len(t, logs.FilterMessage("cross correlation contains NaN entries").All(), 1)
	warn := logs.FilterMessage("matrix is not positive definite").All()
	require.Len(t, warn, 1)
	require.Equal(t, zapcore.WarnLevel, warn[0].Level)
}

func TestEstimate_ExtremeFeatureScales(t *testing.T) {
	for _, scale := range []float64{1e-90, 1e90} {
		feat := []float64{1 * scale, 2 * scale, 3 * scale, 5 * scale}
		d := newDataset(t, seq(1, 4), 1, feat, []float64{1, 1, 1, 1})

		res, err := crosscov.Estimate(d, d)
		require.NoError(t, err, "scale %g", scale)
		require.Zero(t, res.NaNCorrelations, "scale %g", scale)
		require.Equal(t, 1.0, at(t, res.Correlation, 0, 0), "scale %g", scale)
		require.InDelta(t, 1.0, at(t, res.CrossCorrelation, 0, 0), 1e-12, "scale %g", scale)
	}
}

func TestEstimate_StructuralErrors(t *testing.T) {
	d := newDataset(t, []int64{1, 2}, 1, []float64{1, 2}, []float64{1, 1})
	_, err := crosscov.Estimate(d, jackknife.Dataset{})
	require.ErrorIs(t, err, jackknife.ErrEmptyDataset)

	// a bin with no weight anywhere cannot have a mean
	z := newDataset(t, []int64{1, 2}, 1, []float64{1, 2}, []float64{0, 0})
	_, err = crosscov.Estimate(d, z)
	require.ErrorIs(t, err, matrix.ErrDegenerateBin)
}

func TestExtract(t *testing.T) {
	cov, err := matrix.NewDenseFrom(3, 3, []float64{
		4, 2, 1,
		2, 9, 3,
		1, 3, 16,
	})
	require.NoError(t, err)

	b, err := crosscov.Extract(cov, 1)
	require.NoError(t, err)
	require.Equal(t, 1, b.CrossCovariance.Rows())
	require.Equal(t, 2, b.CrossCovariance.Cols())
	require.Equal(t, 2.0, at(t, b.CrossCovariance, 0, 0))
	require.Equal(t, 1.0, at(t, b.CrossCovariance, 0, 1))
	require.InDelta(t, 2.0/6, at(t, b.CrossCorrelation, 0, 0), 1e-15)
	require.InDelta(t, 1.0/8, at(t, b.CrossCorrelation, 0, 1), 1e-15)

	for _, n1 := range []int{0, 3, -1} {
		_, err = crosscov.Extract(cov, n1)
		require.ErrorIs(t, err, matrix.ErrOutOfRange, "n1=%d", n1)
	}
	rect, _ := matrix.NewDense(2, 3)
	_, err = crosscov.Extract(rect, 1)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = crosscov.Extract(nil, 1)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestCheckPositiveDefinite(t *testing.T) {
	pd, _ := matrix.NewDenseFrom(2, 2, []float64{2, 1, 1, 2})
	require.True(t, crosscov.CheckPositiveDefinite(pd, nil))

	core, logs := observer.New(zapcore.WarnLevel)
	npd, _ := matrix.NewDenseFrom(2, 2, []float64{1, 2, 2, 1})
	require.False(t, crosscov.CheckPositiveDefinite(npd, logging.NewFromCore(core)))
	warn := logs.FilterMessage("matrix is not positive definite").All()
	require.Len(t, warn, 1)
	ctx := warn[0].ContextMap()
	require.InDelta(t, -1.0, ctx["min_eigenvalue"], 1e-12)
	require.EqualValues(t, 1, ctx["non_positive_eigenvalues"])
}

func TestOptions_Panics(t *testing.T) {
	require.Panics(t, func() { crosscov.WithSymmetryTolerance(-1) })
	require.Panics(t, func() { crosscov.WithSymmetryTolerance(math.NaN()) })
	require.PanicsWithValue(t, "crosscov: WithNormalization: unknown normalization",
		func() { crosscov.WithNormalization(matrix.Normalization(7)) })
	require.PanicsWithValue(t, "crosscov: WithNormalization: unknown normalization",
		func() { crosscov.WithNormalization(matrix.Normalization(-1)) })
	require.NotPanics(t, func() { crosscov.WithNormalization(matrix.WeightSumProduct) })
	require.NotPanics(t, func() { crosscov.WithSymmetryTolerance(0) })
}
