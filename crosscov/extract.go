// SPDX-License-Identifier: MIT

package crosscov

import (
	"fmt"
	"math"

	"github.com/katalvlaran/crosscov/matrix"
)

const opExtract = "crosscov.Extract"

// Blocks holds the correlation matrix and the cross blocks of a joint covariance.
type Blocks struct {
	Correlation      *matrix.Dense // n×n, NaN where a variance is zero
	CrossCovariance  *matrix.Dense // n1×n2, Cov[0:n1, n1:n]
	CrossCorrelation *matrix.Dense // n1×n2, Corr[0:n1, n1:n]
	NaNCorrelations  int           // NaN entries in CrossCorrelation
}

// Extract slices the cross block out of the joint covariance cov, whose
// first n1 rows/columns belong to the first dataset, and normalizes cov
// into a correlation matrix.
//
// The cross covariance is a bit-exact copy of cov[0:n1, n1:]. Correlation
// entries with a zero variance on either side are NaN and are counted,
// never replaced.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (cov not square).
//   - matrix.ErrOutOfRange when n1 is not in (0, n).
func Extract(cov *matrix.Dense, n1 int) (*Blocks, error) {
	if err := matrix.ValidateSquareNonNil(cov); err != nil {
		return nil, fmt.Errorf("%s: %w", opExtract, err)
	}
	n := cov.Rows()
	if n1 <= 0 || n1 >= n {
		return nil, fmt.Errorf("%s: split %d for order %d: %w", opExtract, n1, n, matrix.ErrOutOfRange)
	}
	n2 := n - n1

	crossCov, err := cov.Block(0, n1, n1, n2)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opExtract, err)
	}
	cor, _, err := matrix.CorrelationFromCovariance(cov)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opExtract, err)
	}
	crossCor, err := cor.Block(0, n1, n1, n2)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opExtract, err)
	}

	var nan int
	crossCor.Do(func(_, _ int, v float64) bool {
		if math.IsNaN(v) {
			nan++
		}
		return true
	})

	return &Blocks{
		Correlation:      cor,
		CrossCovariance:  crossCov,
		CrossCorrelation: crossCor,
		NaNCorrelations:  nan,
	}, nil
}
