// SPDX-License-Identifier: MIT

package crosscov

import (
	"github.com/katalvlaran/crosscov/logging"
	"github.com/katalvlaran/crosscov/matrix"
)

const msgNotPositiveDefinite = "matrix is not positive definite"

// CheckPositiveDefinite attempts a Cholesky factorization of cov and
// reports whether it succeeded. A failure is logged at Warn level, with the
// smallest eigenvalue and the number of non-positive eigenvalues when they
// can be computed, and is never returned as an error. A nil log discards
// diagnostics.
func CheckPositiveDefinite(cov matrix.Matrix, log logging.Logger) bool {
	if log == nil {
		log = logging.NewNop()
	}

	rep, err := matrix.Cholesky(cov)
	if err == nil {
		log.Debug("cholesky factorization succeeded",
			logging.Int("order", rep.N),
			logging.Float64("log_det", rep.LogDet),
			logging.Float64("cond", rep.Cond),
		)
		return true
	}

	fields := []logging.Field{logging.Err(err)}
	if eig, eerr := matrix.SymmetricEigenvalues(cov); eerr == nil {
		var nonPositive int
		for _, v := range eig {
			if v <= 0 {
				nonPositive++
			}
		}
		fields = append(fields,
			logging.Float64("min_eigenvalue", eig[0]),
			logging.Int("non_positive_eigenvalues", nonPositive),
		)
	}
	log.Warn(msgNotPositiveDefinite, fields...)

	return false
}
