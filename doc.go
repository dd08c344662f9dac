// Package crosscov is the root of the cross-covariance export module: it turns
// two jackknife correlation-function measurements into the cross-covariance
// matrix used when fitting them jointly.
//
// 🚀 What does it do?
//
//	Two measurements (say Lyα×Lyα and Lyα×QSO) are each resampled over the
//	same sky pixels. Their covariance is estimated from the spread across
//	pixels:
//		• Align     – put both datasets on the union of their HEALPix ids
//		• Estimate  – weighted covariance of the joint [data1 | data2] bins
//		• Extract   – cross block and its correlation, NaN-propagating
//		• Check     – Cholesky positive-definiteness diagnostic
//		• Export    – CO / COR columns in a FITS binary table
//
// Under the hood the module is organized as:
//
//	matrix/    — Dense, weighted covariance, correlation, Cholesky and eigenvalue kernels
//	jackknife/ — Dataset, pixel alignment and the joint matrix
//	crosscov/  — the estimation pipeline and its Result
//	fitstable/ — FITS binary-table reader and writer
//	config/    — YAML + XCOV_* environment configuration
//	logging/   — structured logging contract (zap)
//	cmd/export-cross-covariance — the command-line tool
//
// 📦 Installation:
//
//	go install github.com/katalvlaran/crosscov/cmd/export-cross-covariance@latest
//
// 🔧 Usage:
//
//	export-cross-covariance --data1 cf.fits --data2 xcf.fits --out xcov.fits
package crosscov
