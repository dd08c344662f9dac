// SPDX-License-Identifier: MIT

// Package jackknife holds spatially-indexed jackknife datasets and aligns
// two of them onto a common pixel sequence.
//
// A Dataset has one row per spatial resampling region (a HEALPix pixel id)
// and one column per radial bin. Align takes the union of both id sets,
// pads each side with zero-feature, zero-weight rows for ids it lacks, and
// orders both by ascending id. Joint then concatenates the two aligned
// matrices side by side for the covariance estimator in package matrix.
//
//	pair, err := jackknife.Align(d0, d1, jackknife.WithLogger(log))
//	X, W, n1, err := pair.Joint()
//	cov, err := matrix.WeightedCovariance(X, W)
//
// Padding rows carry Present == false; Joint forces their weights to zero
// so a padding row can never contribute to any sum.
package jackknife
