// SPDX-License-Identifier: MIT

package crosscov

import (
	"fmt"

	"github.com/katalvlaran/crosscov/jackknife"
	"github.com/katalvlaran/crosscov/logging"
	"github.com/katalvlaran/crosscov/matrix"
)

const opEstimate = "crosscov.Estimate"

// Result is the outcome of one cross-covariance estimation.
type Result struct {
	Covariance       *matrix.Dense // (n1+n2)×(n1+n2)
	Correlation      *matrix.Dense // (n1+n2)×(n1+n2)
	CrossCovariance  *matrix.Dense // n1×n2
	CrossCorrelation *matrix.Dense // n1×n2

	N1, N2   int
	PixelIDs []int64 // aligned ascending pixel sequence

	PositiveDefinite bool
	NaNCorrelations  int

	InjectedFirst  []int64
	InjectedSecond []int64
}

// Estimate computes the cross-covariance of first (rows) and second (columns).
// Implementation:
//   - Stage 1: align the two datasets on the union of their pixel ids.
//   - Stage 2: build the joint matrices [F1|F2], [W1|W2].
//   - Stage 3: weighted covariance with the configured normalization,
//     followed by a symmetry check.
//   - Stage 4: extract the cross blocks and the correlation matrix.
//   - Stage 5: positive-definiteness diagnostic on the full covariance.
//
// Errors:
//   - jackknife.ErrShapeMismatch, jackknife.ErrDuplicatePixel, jackknife.ErrEmptyDataset.
//   - matrix.ErrDegenerateBin (as *matrix.DegenerateBinError).
//   - matrix.ErrAsymmetry, matrix.ErrNaNInf.
//
// NaN correlations and a non positive definite covariance are reported in
// the Result and logged, not returned as errors.
func Estimate(first, second jackknife.Dataset, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)

	pair, err := jackknife.Align(first, second, jackknife.WithLogger(o.log))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opEstimate, err)
	}
	X, W, n1, err := pair.Joint()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opEstimate, err)
	}

	cov, err := matrix.WeightedCovariance(X, W, matrix.WithNormalization(o.normalization))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opEstimate, err)
	}
	if err = matrix.ValidateSymmetric(cov, o.symmetryTol); err != nil {
		return nil, fmt.Errorf("%s: %w", opEstimate, err)
	}

	blocks, err := Extract(cov, n1)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opEstimate, err)
	}
	if blocks.NaNCorrelations > 0 {
		o.log.Warn("cross correlation contains NaN entries",
			logging.Int("count", blocks.NaNCorrelations))
	}

	res := &Result{
		Covariance:       cov,
		Correlation:      blocks.Correlation,
		CrossCovariance:  blocks.CrossCovariance,
		CrossCorrelation: blocks.CrossCorrelation,
		N1:               n1,
		N2:               cov.Rows() - n1,
		PixelIDs:         pair.PixelIDs(),
		PositiveDefinite: CheckPositiveDefinite(cov, o.log),
		NaNCorrelations:  blocks.NaNCorrelations,
		InjectedFirst:    pair.InjectedFirst,
		InjectedSecond:   pair.InjectedSecond,
	}

	o.log.Info("cross covariance estimated",
		logging.Int("n_spatial", len(res.PixelIDs)),
		logging.Int("n1", res.N1),
		logging.Int("n2", res.N2),
		logging.String("normalization", o.normalization.String()),
		logging.Int("nan_correlations", res.NaNCorrelations),
		logging.Bool("positive_definite", res.PositiveDefinite),
	)

	return res, nil
}
